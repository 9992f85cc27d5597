package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/zcf/cmd/zcf/commands/flags"
	"github.com/thoreinstein/zcf/internal/config"
	"github.com/thoreinstein/zcf/internal/editor"
	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/paths"
	"github.com/thoreinstein/zcf/pkg/fileutil"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage zcf configuration",
	Long: `Manage zcf configuration stored in ~/.config/zcf/config.yaml.

Every key can also be set from the environment with the ZCF_ prefix,
for example ZCF_DEFAULT_TOOL=codex.

Without a subcommand, shows the effective configuration.`,
	Example: `  # Show the effective configuration
  zcf config

  # Make Gemini the default tool
  zcf config set default_tool gemini

  # Keep only 3 backups per tool
  zcf config set backup.retention 3

See Also: zcf config init, zcf config edit`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Show the effective configuration, after defaults and environment overrides, in YAML format.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write the config file.

Keys:
  default_tool                   claude-code, codex or gemini
  language                       en or zh-CN
  backup.retention               backups kept per tool, 0 keeps all
  install.skip_method_selection  true or false
  tools.<tool>.config_dir        relocate a tool's configuration directory`,
	Example: `  zcf config set tools.gemini.config_dir /opt/gemini

See Also: zcf config show`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the defaults",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in your editor",
	Long: `Open the config file in $EDITOR, falling back to $VISUAL, nano and vi.

The file is created with the defaults when missing and validated after
the editor exits. edit works even when the current file is broken.`,
	Example: `  EDITOR="code --wait" zcf config edit`,
	Args:    cobra.NoArgs,
	RunE:    runConfigEdit,
}

// configPath returns the file config writes go to.
func configPath() string {
	if configFile != "" {
		return configFile
	}
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return paths.AppConfigFile()
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	data, err := yaml.Marshal(flags.Config())
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], strings.TrimSpace(args[1])
	cfg := *flags.Config()

	switch {
	case key == "default_tool":
		cfg.DefaultTool = value
	case key == "language":
		cfg.Language = value
	case key == "backup.retention":
		n, err := strconv.Atoi(value)
		if err != nil {
			return errors.NewValidationError(key, "%q is not a number", value)
		}
		cfg.Backup.Retention = n
	case key == "install.skip_method_selection":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.NewValidationError(key, "%q is not a boolean", value)
		}
		cfg.Install.SkipMethodSelection = b
	case strings.HasPrefix(key, "tools.") && strings.HasSuffix(key, ".config_dir"):
		t := strings.TrimSuffix(strings.TrimPrefix(key, "tools."), ".config_dir")
		tools := make(map[string]config.ToolOverride, len(cfg.Tools)+1)
		for k, v := range cfg.Tools {
			tools[k] = v
		}
		tools[t] = config.ToolOverride{ConfigDir: value}
		cfg.Tools = tools
	default:
		return errors.NewUserError(errors.Newf("unknown config key %q", key), "Run: zcf config set --help")
	}

	if err := config.Save(configPath(), &cfg); err != nil {
		return err
	}
	flags.SetConfig(&cfg)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configPath()
	if fileutil.Exists(path) && !configInitForce {
		return errors.NewUserError(errors.Newf("config file already exists at %s", path), "Use --force to overwrite it")
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", green("✓"), path)
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	path := configPath()
	if !fileutil.Exists(path) {
		if err := config.Save(path, config.Default()); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", path)
	if err := editor.New(flags.App().Runner).Open(cmd.Context(), path); err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to your editor command")
	}

	config.Init()
	cfg, err := config.Load(path)
	if err != nil {
		return errors.NewUserError(err, "Run zcf config edit again to fix it")
	}
	flags.SetConfig(cfg)
	fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration is valid\n", green("✓"))
	return nil
}
