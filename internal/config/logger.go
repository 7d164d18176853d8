package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/smazurov/openlogger/internal/logfile"
	"github.com/smazurov/openlogger/internal/severity"
)

// Logger is the [logger] section of the config file. The server flattens
// the same keys into its CLI options; subcommands load it directly.
type Logger struct {
	Directory      string `toml:"logger.directory" env:"LOGDIRECTORY"`
	Level          string `toml:"logger.level" env:"LOGLEVEL"`
	Extension      string `toml:"logger.extension" env:"FILEEXTENTION"`
	DateFormat     string `toml:"logger.date_format" env:"DATEFORMAT"`
	Filename       string `toml:"logger.filename" env:"FILENAME"`
	FlushFrequency int    `toml:"logger.flush_frequency" env:"FLUSHFREQUENCY"`
	Prefix         string `toml:"logger.prefix" env:"PREFIX"`
	Format         string `toml:"logger.format" env:"LOGFORMAT"`
	AppendContext  bool   `toml:"logger.append_context" env:"APPENDCONTEXT"`
}

// DefaultLogger returns the section with every key at its default.
func DefaultLogger() Logger {
	return Logger{
		Directory:      logfile.DefaultDirectory,
		Level:          severity.Debug.String(),
		Extension:      logfile.DefaultExtension,
		DateFormat:     logfile.DefaultDateFormat,
		FlushFrequency: logfile.DefaultFlushFrequency,
		Prefix:         logfile.DefaultPrefix,
		AppendContext:  true,
	}
}

// LoadLogger reads the [logger] section from path on top of the defaults and
// applies OPENLOGGER_ environment overrides. An empty path or a missing file
// yields defaults plus environment.
func LoadLogger(path string) (Logger, error) {
	l := DefaultLogger()
	v := reflect.ValueOf(&l).Elem()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := applyFile(v, path, data, nil); err != nil {
				return l, err
			}
		case !os.IsNotExist(err):
			return l, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	applyEnv(v, nil)
	return l, nil
}

// Options converts the section into engine options.
func (l Logger) Options() (logfile.Options, error) {
	threshold := severity.Debug
	if level := strings.TrimSpace(l.Level); level != "" {
		s, err := severity.Parse(level)
		if err != nil {
			return logfile.Options{}, logfile.NewError(logfile.ErrCodeInvalidSeverity,
				fmt.Sprintf("invalid logger.level %q", l.Level), err)
		}
		threshold = s
	}

	opts := logfile.Options{
		Directory:      l.Directory,
		Threshold:      threshold,
		Extension:      l.Extension,
		DateFormat:     l.DateFormat,
		Filename:       l.Filename,
		FlushFrequency: l.FlushFrequency,
		Prefix:         l.Prefix,
		NoPrefix:       l.Prefix == "",
		Format:         l.Format,
		OmitContext:    !l.AppendContext,
	}
	return opts.WithDefaults(), nil
}
