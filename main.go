package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/openlogger/cmd"
	"github.com/smazurov/openlogger/internal/api"
	"github.com/smazurov/openlogger/internal/config"
	"github.com/smazurov/openlogger/internal/events"
	"github.com/smazurov/openlogger/internal/logfile"
	"github.com/smazurov/openlogger/internal/logging"
	"github.com/smazurov/openlogger/internal/logs"
	"github.com/smazurov/openlogger/internal/metrics"
	"github.com/smazurov/openlogger/internal/metrics/exporters"
	"github.com/smazurov/openlogger/internal/version"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file (.toml, .yaml or .yml)" short:"c" default:"config.toml"`

	// Server settings
	Port        string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`
	WatchConfig bool   `help:"Reload logger settings when the config file changes" default:"true" toml:"server.watch_config" env:"WATCH_CONFIG"`

	// Logger settings
	LogDirectory   string `help:"Directory for log files, or stdout/stderr" default:"customlogs" toml:"logger.directory" env:"LOGDIRECTORY"`
	LogLevel       string `help:"Least severe level written (emergency..debug)" default:"debug" toml:"logger.level" env:"LOGLEVEL"`
	FileExtension  string `help:"Log file extension" default:"log" toml:"logger.extension" env:"FILEEXTENTION"`
	DateFormat     string `help:"Timestamp layout in Go reference time" default:"2006-01-02 15:04:05" toml:"logger.date_format" env:"DATEFORMAT"`
	FileName       string `help:"Fixed file name instead of the dated one" toml:"logger.filename" env:"FILENAME"`
	FlushFrequency int    `help:"Sync to disk every N lines, 0 disables" default:"1000" toml:"logger.flush_frequency" env:"FLUSHFREQUENCY"`
	Prefix         string `help:"Prefix for dated file names" default:"log_" toml:"logger.prefix" env:"PREFIX"`
	LogFormat      string `help:"Line template using {date} {level} {level-padding} {priority} {message} {context}" toml:"logger.format" env:"LOGFORMAT"`
	AppendContext  bool   `help:"Append the context block below each entry" default:"true" toml:"logger.append_context" env:"APPENDCONTEXT"`

	// Auth settings
	AuthUsername string `help:"Basic auth username (auth disabled when empty)" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Metrics settings
	MetricsEnabled bool `help:"Expose Prometheus metrics on /metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Logging settings
	LoggingLevel         string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat        string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingFile          string `help:"Also write service logs to this file, rotated by size" toml:"logging.file" env:"LOGGING_FILE"`
	LoggingFileMaxSize   int    `help:"Rotate the service log file after this many megabytes" default:"100" toml:"logging.file_max_size" env:"LOGGING_FILE_MAX_SIZE"`
	LoggingFileBackups   int    `help:"Rotated service log files to keep" default:"3" toml:"logging.file_backups" env:"LOGGING_FILE_BACKUPS"`
	LoggingFileMaxAge    int    `help:"Days to keep rotated service log files" default:"28" toml:"logging.file_max_age" env:"LOGGING_FILE_MAX_AGE"`
	LoggingAPI           string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingHTTP          string `help:"HTTP request logging level" default:"info" toml:"logging.http" env:"LOGGING_HTTP"`
	LoggingLogs          string `help:"Log service logging level" default:"info" toml:"logging.logs" env:"LOGGING_LOGS"`
	LoggingConfigWatcher string `help:"Config watcher logging level" default:"info" toml:"logging.config" env:"LOGGING_CONFIG"`
}

// logger extracts the [logger] section.
func (o *Options) logger() config.Logger {
	return config.Logger{
		Directory:      o.LogDirectory,
		Level:          o.LogLevel,
		Extension:      o.FileExtension,
		DateFormat:     o.DateFormat,
		Filename:       o.FileName,
		FlushFrequency: o.FlushFrequency,
		Prefix:         o.Prefix,
		Format:         o.LogFormat,
		AppendContext:  o.AppendContext,
	}
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"api":    opts.LoggingAPI,
				"http":   opts.LoggingHTTP,
				"logs":   opts.LoggingLogs,
				"config": opts.LoggingConfigWatcher,
			},
			File:       opts.LoggingFile,
			MaxSizeMB:  opts.LoggingFileMaxSize,
			MaxBackups: opts.LoggingFileBackups,
			MaxAgeDays: opts.LoggingFileMaxAge,
		})
		logger := logging.GetLogger("main")

		loggerOpts, err := opts.logger().Options()
		if err != nil {
			logger.Error("Invalid logger configuration", "error", err)
			os.Exit(1)
		}

		eventBus := events.New()
		history := events.NewHistory(500)
		unsubHistory := history.Record(eventBus)

		var unsubMetrics func()
		if opts.MetricsEnabled {
			unsubMetrics = metrics.Subscribe(eventBus)
		}

		logService := logs.NewService(logs.ServiceOptions{
			Options: loggerOpts,
			Bus:     eventBus,
		})
		metrics.SetGeneration(1)

		apiOpts := &api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			LogService:   logService,
			EventBus:     eventBus,
			History:      history,
		}
		if opts.MetricsEnabled {
			apiOpts.PrometheusHandler = exporters.HTTPHandler()
		}
		server := api.NewServer(apiOpts)

		var watcher *config.Watcher[logfile.Options]
		if opts.WatchConfig && opts.Config != "" {
			base := *opts
			watcher = config.NewConfigWatcher(opts.Config, func(path string) (logfile.Options, error) {
				reloaded, reloadErr := config.Reload(path, base, cli.Root())
				if reloadErr != nil {
					return logfile.Options{}, reloadErr
				}
				return reloaded.logger().Options()
			}, logging.GetLogger("config"))
			watcher.OnReload(func(next logfile.Options) {
				logService.Reconfigure(next)
			})
		}

		hooks.OnStart(func() {
			if watcher != nil {
				if startErr := watcher.Start(); startErr != nil {
					logger.Warn("Config hot reload disabled", "path", opts.Config, "error", startErr)
					watcher = nil
				}
			}

			logger.Info("Starting HTTP server",
				"port", opts.Port,
				"directory", loggerOpts.Directory,
				"threshold", loggerOpts.Threshold.String())
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if stopErr := server.Stop(ctx); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}

			if watcher != nil {
				if stopErr := watcher.Stop(); stopErr != nil {
					logger.Warn("Error stopping config watcher", "error", stopErr)
				}
			}
			unsubHistory()
			if unsubMetrics != nil {
				unsubMetrics()
			}
			if closeErr := logging.Close(); closeErr != nil {
				slog.Warn("Error closing service log file", "error", closeErr)
			}
		})
	})

	cli.Root().Use = "openlogger"
	cli.Root().Short = "Leveled file-backed log engine with an HTTP API"
	cli.Root().Version = version.Full()

	cli.Root().AddCommand(cmd.CreateWriteCmd())
	cli.Root().AddCommand(cmd.CreateSearchCmd())
	cli.Root().AddCommand(cmd.CreateReadCmd())
	cli.Root().AddCommand(cmd.CreateListCmd())

	cli.Run()
}
