// Package logging provides structured logging for thumbcfg.
//
// This package wraps zap with package-level convenience functions. Logging
// is silent by default so that CLI output stays clean; it is enabled by
// setting the THUMBCFG_LOG_LEVEL environment variable or by calling
// Initialize with an explicit level.
//
// # Log Levels
//
//   - Debug: detailed tracing (blob contents, detection lookups)
//   - Info: normal operations (load, save, discovery results)
//   - Warn: recovered problems (malformed blob, failed detection)
//   - Error: failures surfaced to the user (save errors)
//
// # Usage
//
//	logging.Warn("Stored settings blob is malformed, using defaults",
//	    zap.Error(err),
//	)
//
// All logging functions are safe for concurrent use.
package logging
