// Package config loads zcf's own settings with Viper.
//
// The configuration file is YAML, searched in the current directory and in
// <xdg config>/zcf/config.yaml. Every key can be overridden with a ZCF_
// prefixed environment variable (ZCF_DEFAULT_TOOL, ZCF_LANGUAGE, ...).
//
// A missing implicit file is not an error; defaults apply. An explicit path
// passed to [Load] must exist.
//
// Example:
//
//	version: 1
//	default_tool: claude-code
//	language: en
//	backup:
//	  retention: 5
//	install:
//	  skip_method_selection: false
//	tools:
//	  gemini:
//	    config_dir: /opt/gemini-home
package config
