// Package logging provides the service's own structured logging with
// per-module log level configuration. It is separate from the log files the
// service writes on behalf of clients.
//
// # Overview
//
// The logging system uses Go's slog package with automatic output routing:
//   - Logs to systemd journal when available (Linux systems with journald)
//   - Logs to stdout when a terminal, pipe, or file is connected
//   - Logs to a size-rotated file when Config.File is set
//
// # Usage
//
// Initialize the logging system once at startup:
//
//	logging.Initialize(logging.Config{
//		Level:  "info",
//		Format: "text",
//		File:   "/var/log/openlogger/service.log",
//		Modules: map[string]string{
//			"logs": "debug",
//			"api":  "warn",
//		},
//	})
//	defer logging.Close()
//
// Get a logger for your module:
//
//	logger := logging.GetLogger("logs")
//	logger.Info("Entry written", "file", name)
//
// # Log Levels
//
//	debug - Verbose debugging information
//	info  - General operational messages (notice is accepted as an alias)
//	warn  - Warning conditions
//	error - Error conditions (critical, alert and emergency map here)
//
// # Viewing Logs
//
// When running under systemd:
//
//	journalctl -t openlogger -f
//	journalctl -t openlogger MODULE=api
//
// # Configuration
//
// Example TOML configuration:
//
//	[logging]
//	level = "info"
//	format = "text"
//	file = "service.log"
//	file_max_size = 50
//	api = "warn"
//	logs = "debug"
package logging
