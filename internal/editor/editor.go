// Package editor opens files in the user's preferred text editor.
package editor

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/runner"
)

// Editor launches an editor through a runner.Runner.
type Editor struct {
	runner   runner.Runner
	getenv   func(string) string
	lookPath func(string) (string, error)
	goos     string
}

// New returns an Editor that runs commands with r.
func New(r runner.Runner) *Editor {
	return &Editor{
		runner:   r,
		getenv:   os.Getenv,
		lookPath: exec.LookPath,
		goos:     runtime.GOOS,
	}
}

// Command returns the editor invocation for path. $EDITOR and $VISUAL may
// carry arguments, as in "code --wait". Fallback chain: $EDITOR, $VISUAL,
// nano, vi (notepad on Windows).
func (e *Editor) Command(path string) runner.Command {
	argv := e.detect()
	return runner.Cmd(argv[0], append(argv[1:], path)...).Streaming()
}

func (e *Editor) detect() []string {
	for _, key := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(e.getenv(key)); len(fields) > 0 {
			return fields
		}
	}
	if e.goos == "windows" {
		return []string{"notepad"}
	}
	if _, err := e.lookPath("nano"); err == nil {
		return []string{"nano"}
	}
	return []string{"vi"}
}

// Open blocks until the editor on path exits.
func (e *Editor) Open(ctx context.Context, path string) error {
	cmd := e.Command(path)
	if _, err := e.runner.Run(ctx, cmd); err != nil {
		return errors.Wrapf(err, "running editor %s", cmd.Name)
	}
	return nil
}
