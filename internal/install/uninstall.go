package install

import (
	"context"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/logging"
	"github.com/thoreinstein/zcf/internal/probe"
	"github.com/thoreinstein/zcf/internal/runner"
	"github.com/thoreinstein/zcf/internal/tool"
)

// ErrBinaryNotFound indicates manual removal could not locate the binary.
var ErrBinaryNotFound = errors.New("could not locate binary")

// MethodSource says how an uninstall method was chosen.
type MethodSource string

const (
	SourceRecord  MethodSource = "record"
	SourceProbe   MethodSource = "homebrew-probe"
	SourceDefault MethodSource = "default"
)

// Outcome describes an uninstall.
type Outcome struct {
	Tool    tool.Tool
	Method  tool.Method
	Source  MethodSource
	Command runner.Command
	// Binary is the path removed in manual mode.
	Binary   string
	Elevated bool
	Removed  bool
}

func brewListCommand(info tool.Info) runner.Command {
	if info.BrewCask {
		return runner.Cmd("brew", "list", "--cask", info.BrewName)
	}
	return runner.Cmd("brew", "list", info.BrewName)
}

func (e *Executor) brewHas(ctx context.Context, info tool.Info) bool {
	_, err := e.runner.Run(ctx, brewListCommand(info))
	return err == nil
}

// resolveUninstallMethod picks the removal strategy: the installation
// record, else homebrew when brew lists the tool, else npm.
//
// A native record (written by the standalone installer) is mapped at this
// point: homebrew if brew lists the tool on macOS or Linux, manual removal
// otherwise. Script methods also remove manually. The brew probe can
// misclassify a script install that happens to coexist with a brew package.
func (e *Executor) resolveUninstallMethod(ctx context.Context, t tool.Tool) (tool.Method, MethodSource) {
	info := tool.MustInfo(t)
	logger := logging.FromContext(ctx)

	method, source := tool.Method(""), SourceDefault
	if m, ok, err := e.records.ReadMethod(t); err != nil {
		logger.Debug("install record unreadable", "tool", t, "error", err)
	} else if ok {
		method, source = m, SourceRecord
	}

	if method == "" {
		if e.brewHas(ctx, info) {
			return tool.Homebrew, SourceProbe
		}
		return tool.NPM, SourceDefault
	}

	switch method {
	case tool.Native:
		p := e.env.Platform()
		if (p == probe.MacOS || p == probe.Linux) && e.brewHas(ctx, info) {
			return tool.Homebrew, source
		}
		return tool.Manual, source
	case tool.Curl, tool.PowerShell, tool.CMD:
		return tool.Manual, source
	}
	return method, source
}

// Uninstall removes t using the resolved method. A failure is terminal;
// nothing is retried.
func (e *Executor) Uninstall(ctx context.Context, t tool.Tool) (Outcome, error) {
	info, ok := tool.Lookup(t)
	if !ok {
		return Outcome{}, errors.Wrapf(errors.ErrUnknownTool, "%q", t)
	}
	method, source := e.resolveUninstallMethod(ctx, t)
	out := Outcome{Tool: t, Method: method, Source: source}
	logger := logging.FromContext(ctx).With("tool", t, "method", method, "source", source)

	switch method {
	case tool.Homebrew:
		if info.BrewCask {
			out.Command = runner.Cmd("brew", "uninstall", "--cask", info.BrewName)
		} else {
			out.Command = runner.Cmd("brew", "uninstall", info.BrewName)
		}
	case tool.Manual:
		return e.removeManually(ctx, info, out)
	default:
		out.Command, out.Elevated = e.env.WrapElevated(runner.Cmd("npm", "uninstall", "-g", info.NPMPackage))
	}

	logger.Info("uninstalling")
	if _, err := e.runner.Run(ctx, out.Command.Streaming()); err != nil {
		return out, errors.Wrapf(err, "uninstalling %s with %s", info.DisplayName, method)
	}
	out.Removed = true
	return out, nil
}

// removeManually locates the binary with which or where and deletes it.
func (e *Executor) removeManually(ctx context.Context, info tool.Info, out Outcome) (Outcome, error) {
	windows := e.env.Platform() == probe.Windows
	lookup := "which"
	if windows {
		lookup = "where"
	}

	res, err := e.runner.Run(ctx, runner.Cmd(lookup, info.Binary))
	out.Binary = res.FirstLine()
	if err != nil || out.Binary == "" {
		return out, errors.Mark(errors.Wrapf(ErrBinaryNotFound, "%s", info.Binary), errors.ErrNotFound)
	}

	if windows {
		out.Command = runner.Cmd("cmd", "/c", "del", "/f", "/q", `"`+out.Binary+`"`)
	} else {
		out.Command, out.Elevated = e.env.WrapElevated(runner.Cmd("rm", "-f", out.Binary))
	}

	logging.FromContext(ctx).Info("removing binary", "tool", info.Tool, "path", out.Binary, "elevated", out.Elevated)
	if _, err := e.runner.Run(ctx, out.Command); err != nil {
		return out, errors.Wrapf(err, "removing %s", out.Binary)
	}
	out.Removed = true
	return out, nil
}
