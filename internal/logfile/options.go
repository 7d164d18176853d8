package logfile

import (
	"strings"

	"github.com/smazurov/openlogger/internal/severity"
)

// Defaults applied by Options.WithDefaults.
const (
	DefaultDirectory      = "customlogs"
	DefaultExtension      = "log"
	DefaultDateFormat     = "2006-01-02 15:04:05"
	DefaultFlushFrequency = 1000
	DefaultPrefix         = "log_"
)

// Options configures an engine. A value is treated as one immutable generation:
// setters on Engine copy it rather than mutating it in place.
type Options struct {
	// Directory holds the log files. "stdout" or "stderr" (optionally with a
	// "php://" scheme) redirects output to the process stream instead.
	Directory string `toml:"directory" yaml:"directory"`

	// Threshold is the least severe level that is still written.
	Threshold severity.Severity `toml:"level" yaml:"level"`

	Extension  string `toml:"extension" yaml:"extension"`
	DateFormat string `toml:"date_format" yaml:"date_format"`

	// Filename replaces the dated file name when set.
	Filename string `toml:"filename" yaml:"filename"`

	// FlushFrequency forces a sync every N written lines. Zero disables it.
	FlushFrequency int `toml:"flush_frequency" yaml:"flush_frequency"`

	// Prefix starts every dated file name. An empty Prefix means the default
	// unless NoPrefix is set.
	Prefix   string `toml:"prefix" yaml:"prefix"`
	NoPrefix bool   `toml:"no_prefix" yaml:"no_prefix"`

	// Format is an optional template using {date}, {level}, {level-padding},
	// {priority}, {message} and {context} placeholders.
	Format string `toml:"format" yaml:"format"`

	// OmitContext drops the indented context block below each entry.
	OmitContext bool `toml:"omit_context" yaml:"omit_context"`
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		Directory:      DefaultDirectory,
		Threshold:      severity.Debug,
		Extension:      DefaultExtension,
		DateFormat:     DefaultDateFormat,
		FlushFrequency: DefaultFlushFrequency,
		Prefix:         DefaultPrefix,
	}
}

// WithDefaults fills empty fields from DefaultOptions, so a zero Options
// behaves exactly like DefaultOptions. Filename and Format values of "false"
// are treated as unset, matching how they are commonly written in
// environment files.
func (o Options) WithDefaults() Options {
	def := DefaultOptions()
	if o.Directory == "" {
		o.Directory = def.Directory
	}
	if !o.Threshold.Valid() {
		o.Threshold = def.Threshold
	}
	if o.Extension == "" {
		o.Extension = def.Extension
	}
	o.Extension = strings.TrimPrefix(o.Extension, ".")
	if o.DateFormat == "" {
		o.DateFormat = def.DateFormat
	}
	switch {
	case o.NoPrefix:
		o.Prefix = ""
	case o.Prefix == "":
		o.Prefix = def.Prefix
	}
	if o.FlushFrequency < 0 {
		o.FlushFrequency = 0
	}
	if isUnset(o.Filename) {
		o.Filename = ""
	}
	if isUnset(o.Format) {
		o.Format = ""
	}
	return o
}

// StreamTarget reports whether Directory names a standard stream, returning
// the stream name ("stdout" or "stderr").
func (o Options) StreamTarget() (string, bool) {
	name := strings.TrimPrefix(strings.ToLower(o.Directory), "php://")
	switch name {
	case "stdout", "stderr", "output":
		if name == "output" {
			name = "stdout"
		}
		return name, true
	}
	return "", false
}

func isUnset(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "false")
}
