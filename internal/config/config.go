package config

import (
	"github.com/spf13/viper"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/paths"
	"github.com/thoreinstein/zcf/pkg/fileutil"
)

// EnvPrefix is the environment variable prefix for overrides.
const EnvPrefix = "ZCF"

// CurrentVersion is the only supported config schema version.
const CurrentVersion = 1

// Config is the top-level zcf configuration.
type Config struct {
	Version     int                     `mapstructure:"version" yaml:"version"`
	DefaultTool string                  `mapstructure:"default_tool" yaml:"default_tool"`
	Language    string                  `mapstructure:"language" yaml:"language"`
	Backup      BackupConfig            `mapstructure:"backup" yaml:"backup"`
	Install     InstallConfig           `mapstructure:"install" yaml:"install"`
	Tools       map[string]ToolOverride `mapstructure:"tools" yaml:"tools,omitempty"`
}

// BackupConfig controls settings backups.
type BackupConfig struct {
	// Retention is the number of backups kept per tool. Zero keeps all.
	Retention int `mapstructure:"retention" yaml:"retention"`
}

// InstallConfig controls the installer.
type InstallConfig struct {
	// SkipMethodSelection installs with npm directly, without prompting or retrying.
	SkipMethodSelection bool `mapstructure:"skip_method_selection" yaml:"skip_method_selection"`
}

// ToolOverride relocates a tool's configuration directory.
type ToolOverride struct {
	ConfigDir string `mapstructure:"config_dir" yaml:"config_dir"`
}

// Init resets Viper and registers search paths, env overrides and defaults.
// Call once at startup before Load.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.AppConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("version", CurrentVersion)
	viper.SetDefault("default_tool", paths.ToolClaude)
	viper.SetDefault("language", "en")
	viper.SetDefault("backup.retention", 10)
	viper.SetDefault("install.skip_method_selection", false)
}

// Load reads the configuration file and validates it.
// An empty path searches the default locations and tolerates a missing file.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load, defaults apply
		case path != "" && !fileutil.Exists(path):
			return nil, errors.ConfigIO(err, "config file not found at "+path)
		default:
			return nil, errors.ConfigIO(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.ConfigIO(err, "unmarshaling config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "validating config")
	}
	return &cfg, nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version:     CurrentVersion,
		DefaultTool: paths.ToolClaude,
		Language:    "en",
		Backup:      BackupConfig{Retention: 10},
	}
}

// ConfigDir returns the override directory for tool, or "" for the tool default.
func (c *Config) ConfigDir(tool string) string {
	if c == nil {
		return ""
	}
	return c.Tools[tool].ConfigDir
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return errors.Wrap(err, "validating config")
	}
	if err := fileutil.AtomicWriteYAMLWithPerm(path, cfg, 0o600); err != nil {
		return errors.ConfigIO(err, "writing config file")
	}
	return nil
}
