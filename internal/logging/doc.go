// Package logging provides structured logging with per-module log level configuration.
//
// # Overview
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to systemd journal when available (Linux systems with journald)
//   - Logs to stdout (or stderr, see Config.Stderr) when a terminal, pipe, or file is connected
//   - Logs to both when both are available
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		Modules: map[string]string{
//			"filter":  "debug",
//			"presets": "warn",
//		},
//	})
//
// Filter instances log through a logger carrying their identity:
//
//	logger := logging.ForFilter("frei0r.brightness", id.String())
//	logger.Debug("Undo command pushed", "kind", "parameter_changed")
//
// # Modules
//
//	filter  - parameter edits, keyframes, undo brackets
//	presets - preset file loading and reloads
//	cli     - command line front end
//
// # Configuration
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	filter = "debug"
//
// Journal entries are tagged SYSLOG_IDENTIFIER=filterbind:
//
//	journalctl -t filterbind MODULE=filter
package logging
