// Package flags provides shared flag accessors for CLI commands.
// This package exists to avoid import cycles between the root command
// and noun subpackages (profile, mcp, backup, etc.).
package flags

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd"
	"github.com/thoreinstein/zcf/internal/cli"
	"github.com/thoreinstein/zcf/internal/config"
	"github.com/thoreinstein/zcf/internal/tool"
)

// toolFlag holds the value of the --tool flag.
var toolFlag string

// cfg is the configuration loaded by the root command.
var cfg *config.Config

// app is built on first use from cfg.
var app *cli.App

// AddToolFlag registers --tool on c's persistent flags.
func AddToolFlag(c *cobra.Command) {
	c.PersistentFlags().StringVarP(&toolFlag, "tool", "t", "",
		"target tool: claude-code, codex, gemini (default from config)")
}

// GetToolFlag returns the raw --tool value.
func GetToolFlag() string {
	return toolFlag
}

// SetToolFlag overrides the --tool value.
func SetToolFlag(v string) {
	toolFlag = v
}

// SetConfig installs the loaded configuration and drops any cached App.
func SetConfig(c *config.Config) {
	cfg = c
	app = nil
}

// Config returns the loaded configuration, or the defaults.
func Config() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// Tool resolves the target tool from --tool and the configuration.
func Tool() (tool.Tool, error) {
	return cli.ResolveTool(toolFlag, Config())
}

// App returns the shared dependencies.
func App() *cli.App {
	if app == nil {
		app = cli.NewApp(Config(), cmd.Version)
	}
	return app
}
