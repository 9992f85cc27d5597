package cli

import (
	"strings"

	"github.com/thoreinstein/zcf/internal/config"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/tool"
)

// ResolveTool picks the tool a command acts on: the --tool flag, else the
// configured default, else Claude Code.
func ResolveTool(flag string, cfg *config.Config) (tool.Tool, error) {
	name := strings.TrimSpace(flag)
	if name == "" && cfg != nil {
		name = cfg.DefaultTool
	}
	if name == "" {
		return tool.Claude, nil
	}
	t, err := tool.Parse(name)
	if err != nil {
		return "", errors.NewUserError(err, "Valid tools: "+toolList())
	}
	return t, nil
}

// ResolveTools parses a list of tool names. An empty list means every
// tool.
func ResolveTools(names []string) ([]tool.Tool, error) {
	if len(names) == 0 {
		return tool.All(), nil
	}
	out := make([]tool.Tool, 0, len(names))
	for _, n := range names {
		t, err := tool.Parse(n)
		if err != nil {
			return nil, errors.NewUserError(err, "Valid tools: "+toolList())
		}
		out = append(out, t)
	}
	return out, nil
}

func toolList() string {
	names := make([]string, 0, 3)
	for _, t := range tool.All() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
