package logs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/smazurov/openlogger/internal/events"
	"github.com/smazurov/openlogger/internal/logfile"
	"github.com/smazurov/openlogger/internal/logging"
	"github.com/smazurov/openlogger/internal/severity"
)

// LogService defines the operations exposed over HTTP and the CLI.
type LogService interface {
	Write(ctx context.Context, params WriteParams) (*WriteResult, error)
	ListFiles(ctx context.Context) ([]logfile.FileInfo, error)
	Search(ctx context.Context, params SearchParams) ([]logfile.FileInfo, error)
	Read(ctx context.Context, filename string) ([]string, error)
	Options() (logfile.Options, uint64)
	Reconfigure(opts logfile.Options) uint64
}

// WriteParams is one entry submitted by a client.
type WriteParams struct {
	Severity string
	Message  string
	// Context is a JSON object encoded as a string. Blank means no context.
	Context string
}

// WriteResult describes what happened to a submitted entry.
type WriteResult struct {
	Written    bool
	Severity   severity.Severity
	File       string
	Line       string
	Generation uint64
}

// SearchParams selects dated log files. Month and day are two-digit strings.
type SearchParams struct {
	Year  string
	Month string
	Day   string
}

// ServiceOptions contains optional configuration for ServiceImpl.
type ServiceOptions struct {
	Options logfile.Options
	Bus     *events.Bus        // Receives entry events; nil disables publishing
	Locks   *logfile.PathLocks // Shared path locks; a private registry is created when nil
	Clock   func() time.Time   // Defaults to time.Now
}

type generation struct {
	id   uint64
	opts logfile.Options
}

// ServiceImpl implements LogService. Each Write opens its own engine against
// the generation current at call time and closes it before returning.
type ServiceImpl struct {
	current atomic.Pointer[generation]
	locks   *logfile.PathLocks
	bus     *events.Bus
	now     func() time.Time
	logger  *slog.Logger
}

// NewService creates a log service from opts.
func NewService(opts ServiceOptions) *ServiceImpl {
	s := &ServiceImpl{
		locks:  opts.Locks,
		bus:    opts.Bus,
		now:    opts.Clock,
		logger: logging.GetLogger("logs"),
	}
	if s.locks == nil {
		s.locks = logfile.NewPathLocks()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.current.Store(&generation{id: 1, opts: opts.Options.WithDefaults()})
	return s
}

// Options returns the current options generation and its number.
func (s *ServiceImpl) Options() (logfile.Options, uint64) {
	g := s.current.Load()
	return g.opts, g.id
}

// Reconfigure installs opts as a new generation. Writes already in flight
// finish with the generation they started with.
func (s *ServiceImpl) Reconfigure(opts logfile.Options) uint64 {
	opts = opts.WithDefaults()
	for {
		prev := s.current.Load()
		next := &generation{id: prev.id + 1, opts: opts}
		if s.current.CompareAndSwap(prev, next) {
			s.logger.Info("Logger options reloaded",
				"generation", next.id,
				"directory", opts.Directory,
				"threshold", opts.Threshold.String())
			s.publish(events.OptionsReloadedEvent{
				Generation: next.id,
				Threshold:  opts.Threshold.String(),
				Timestamp:  s.now().Format(time.RFC3339),
			})
			return next.id
		}
	}
}

// Write validates and submits one entry.
func (s *ServiceImpl) Write(ctx context.Context, params WriteParams) (*WriteResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sev, err := severity.Parse(params.Severity)
	if err != nil {
		return nil, logfile.NewError(logfile.ErrCodeInvalidSeverity,
			fmt.Sprintf("unknown severity %q, want one of %s",
				params.Severity, strings.Join(severity.Names(), ", ")), err)
	}
	entryCtx, err := logfile.ParseContext(params.Context)
	if err != nil {
		return nil, err
	}

	g := s.current.Load()
	result := &WriteResult{Severity: sev, Generation: g.id}

	engine, err := logfile.New(g.opts, logfile.WithPathLocks(s.locks), logfile.WithClock(s.now))
	if err != nil {
		s.failed(sev, err)
		return nil, err
	}
	defer func() {
		if closeErr := engine.Close(); closeErr != nil {
			s.logger.Warn("Failed to close log file", "path", engine.Path(), "error", closeErr)
		}
	}()

	written, err := engine.Log(sev, params.Message, entryCtx)
	if err != nil {
		s.failed(sev, err)
		return nil, err
	}

	if !written {
		s.logger.Debug("Entry below threshold", "severity", sev.String(), "threshold", g.opts.Threshold.String())
		s.publish(events.EntryFilteredEvent{
			Severity:  sev.String(),
			Threshold: g.opts.Threshold.String(),
			Timestamp: s.now().Format(time.RFC3339),
		})
		return result, nil
	}

	result.Written = true
	result.File = filepath.Base(engine.Path())
	result.Line = engine.LastLine()

	s.publish(events.EntryWrittenEvent{
		Severity:  sev.String(),
		Message:   params.Message,
		Line:      result.Line,
		File:      result.File,
		Timestamp: s.now().Format(time.RFC3339),
	})
	return result, nil
}

// ListFiles lists the regular files in the configured directory.
func (s *ServiceImpl) ListFiles(ctx context.Context) ([]logfile.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts, _ := s.Options()
	return logfile.ListFiles(opts.Directory)
}

// Search returns dated files matching the given date prefix.
func (s *ServiceImpl) Search(ctx context.Context, params SearchParams) ([]logfile.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateSearch(params, s.now()); err != nil {
		return nil, err
	}
	opts, _ := s.Options()
	return logfile.Search(opts, params.Year, params.Month, params.Day)
}

// Read returns the lines of a file in the configured directory.
func (s *ServiceImpl) Read(ctx context.Context, filename string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts, _ := s.Options()
	return logfile.ReadLines(opts.Directory, filename)
}

// ValidateSearch checks the date parts of a search. Year, when given, must lie
// between 1900 and the current year; month and day must be two digits in range.
func ValidateSearch(params SearchParams, now time.Time) error {
	if params.Year != "" {
		if err := checkPart("year", params.Year, 4, 1900, now.Year()); err != nil {
			return err
		}
	}
	if params.Month != "" {
		if err := checkPart("month", params.Month, 2, 1, 12); err != nil {
			return err
		}
	}
	if params.Day != "" {
		if err := checkPart("day", params.Day, 2, 1, 31); err != nil {
			return err
		}
	}
	return nil
}

func checkPart(name, value string, width, lo, hi int) error {
	n, err := strconv.Atoi(value)
	if err != nil || len(value) != width || n < lo || n > hi {
		return logfile.NewError(logfile.ErrCodeValidationFailed,
			fmt.Sprintf("%s must be %d digits between %0*d and %0*d, got %q", name, width, width, lo, width, hi, value), err)
	}
	return nil
}

func (s *ServiceImpl) failed(sev severity.Severity, err error) {
	s.logger.Error("Failed to write log entry", "severity", sev.String(), "error", err)
	s.publish(events.WriteFailedEvent{
		Severity:  sev.String(),
		Code:      logfile.Code(err),
		Error:     err.Error(),
		Timestamp: s.now().Format(time.RFC3339),
	})
}

func (s *ServiceImpl) publish(ev events.Event) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}
