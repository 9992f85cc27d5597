// Package commands implements the CLI commands for zcf.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/zcf/cmd"
	"github.com/thoreinstein/zcf/cmd/zcf/commands/backup"
	"github.com/thoreinstein/zcf/cmd/zcf/commands/command"
	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/cmd/zcf/commands/mcp"
	"github.com/thoreinstein/zcf/cmd/zcf/commands/profile"
	"github.com/thoreinstein/zcf/internal/config"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default ~/.config/zcf/config.yaml)")
	flags.AddToolFlag(rootCmd)

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("zcf version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(profile.Cmd, mcp.Cmd, command.Cmd, backup.Cmd)
}

var rootCmd = &cobra.Command{
	Use:   "zcf",
	Short: "Install and configure AI coding assistant CLIs",
	Long: `zcf installs, updates and removes Claude Code, Codex and Gemini CLI,
and manages their configuration: API profiles, MCP servers, custom
commands and settings backups.

Use --tool to pick the target; the default comes from default_tool in
~/.config/zcf/config.yaml.`,
	Example: `  # Install Claude Code, choosing an install method
  zcf install

  # Add and activate an API profile for Codex
  zcf profile add work --type api_key --key sk-... --tool codex --default

  # Add preset MCP servers to Gemini
  zcf mcp presets install github filesystem --tool gemini

  See Also: zcf status, zcf config, zcf backup`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("ZCF_DEBUG"); ok && (val == "1" || val == "true") {
				v = 2
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	primary := logging.NewHandlerFor(logging.Config{
		Level:  level,
		Format: logging.ParseFormat(logFormat),
		Output: cmd.ErrOrStderr(),
	})
	handler := primary

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		// File output uses JSON format
		handler = logging.NewMultiHandler(primary, logging.NewHandlerFor(logging.Config{
			Level:  level,
			Format: logging.FormatJSON,
			Output: f,
		}))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// loadConfig reads the configuration file. Help, version, doctor and
// config edit work even when it is broken.
func loadConfig(cmd *cobra.Command) error {
	config.Init()
	cfg, err := config.Load(configFile)
	if err != nil {
		switch cmd.Name() {
		case "help", "version", "doctor", "edit":
			slog.Debug("continuing with default config", "command", cmd.Name(), "error", err)
			flags.SetConfig(nil)
			return nil
		}
		return errors.NewUserError(err, "Fix it with zcf config edit, or reset it with: zcf config init --force")
	}
	flags.SetConfig(cfg)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which cancels running
// installers when done. Errors are returned unwrapped so main prints the
// command's own message.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
