// Package logging provides structured logging utilities for atlasctl.
//
// It wraps the standard library slog package with project defaults: JSON
// output to stderr, module/version context on every record, LOG_LEVEL
// environment configuration, and source location tracking for debug logs.
//
// Setting the default logger (recommended, early in main):
//
//	logging.SetDefaultStructuredLogger("atlasctl", version)
//
// Setting an explicit level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("atlasctl", version, "debug")
//
// After that, use slog as normal:
//
//	slog.Info("image built", "image", "atlas-app:latest", "duration", d)
//	slog.Error("rollout failed", "error", err, "namespace", ns)
//
// The LOG_LEVEL environment variable controls verbosity when no explicit
// level is given:
//
//	LOG_LEVEL=debug atlasctl up
//
// If LOG_LEVEL is not set, the level defaults to INFO.
package logging
