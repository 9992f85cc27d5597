// Package logging configures structured logging for zcf on top of [log/slog].
//
// Terminal output goes through [Handler], a compact colored format that
// masks credentials (API keys, auth tokens) using the redact package.
// JSON output is available for scripting and log files.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// Library packages retrieve the logger with [FromContext] and never call
// slog.SetDefault themselves. Tests use [ForTest].
package logging
