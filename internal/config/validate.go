package config

import (
	"path/filepath"
	"strings"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/paths"
)

var supportedLanguages = map[string]bool{
	"en":    true,
	"zh-CN": true,
}

// Validate checks cfg and joins every problem found into one error.
// Each joined error is a *errors.ValidationError.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.NewValidationError("", "config is nil")
	}

	var errs []error
	if cfg.Version != CurrentVersion {
		errs = append(errs, errors.NewValidationError("version", "unsupported config version: %d", cfg.Version))
	}
	if cfg.DefaultTool != "" && !paths.ValidTool(cfg.DefaultTool) {
		errs = append(errs, errors.NewValidationError("default_tool", "unknown tool: %s", cfg.DefaultTool))
	}
	if cfg.Language != "" && !supportedLanguages[cfg.Language] {
		errs = append(errs, errors.NewValidationError("language", "unsupported language: %s", cfg.Language))
	}
	if cfg.Backup.Retention < 0 {
		errs = append(errs, errors.NewValidationError("backup.retention", "must be >= 0"))
	}
	for tool, o := range cfg.Tools {
		if !paths.ValidTool(tool) {
			errs = append(errs, errors.NewValidationError("tools", "unknown tool: %s", tool))
			continue
		}
		if !validPath(o.ConfigDir) {
			errs = append(errs, errors.NewValidationError("tools."+tool+".config_dir", "invalid path: %q", o.ConfigDir))
		}
	}
	return errors.Join(errs...)
}

// validPath accepts empty (use default) and syntactically sane paths.
func validPath(p string) bool {
	if p == "" {
		return true
	}
	if strings.ContainsRune(p, '\x00') {
		return false
	}
	cleaned := filepath.Clean(p)
	return cleaned != "" && cleaned != "."
}
