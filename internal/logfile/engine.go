package logfile

import (
	"fmt"
	"sync"
	"time"

	"github.com/smazurov/openlogger/internal/severity"
)

// Engine filters, formats and appends log entries to a single target.
//
// An engine moves from open to closed exactly once. It opens its target in New
// and keeps it until Close; there is no reopen. Methods are safe to call from
// multiple goroutines, and appends to the same path from different engines are
// serialized when they share a PathLocks registry.
type Engine struct {
	mu     sync.Mutex
	opts   Options
	path   string
	writer *Writer
	locks  *PathLocks
	now    func() time.Time
	closed bool
}

// EngineOption configures optional Engine collaborators.
type EngineOption func(*Engine)

// WithPathLocks serializes appends through the shared registry l.
func WithPathLocks(l *PathLocks) EngineOption {
	return func(e *Engine) {
		e.locks = l
	}
}

// WithClock replaces time.Now for timestamps and dated file names.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New validates opts, fills defaults and opens the target. When the target
// cannot be opened New returns an OPEN_FAILED error and no engine.
func New(opts Options, engineOpts ...EngineOption) (*Engine, error) {
	e := &Engine{
		opts: opts.WithDefaults(),
		now:  time.Now,
	}
	for _, opt := range engineOpts {
		opt(e)
	}

	var (
		w   *Writer
		err error
	)
	if stream, ok := e.opts.StreamTarget(); ok {
		w, err = OpenWriter(stream, ModeTruncate, e.opts.FlushFrequency)
	} else {
		e.path = ResolvePath(e.opts, e.now())
		w, err = OpenWriter(e.path, ModeAppend, e.opts.FlushFrequency)
	}
	if err != nil {
		return nil, err
	}
	if e.path == "" {
		e.path = w.Path()
	}
	e.writer = w
	return e, nil
}

// Log writes message at level s if s passes the threshold. It reports whether
// a line was written; entries below the threshold return (false, nil).
func (e *Engine) Log(s severity.Severity, message string, ctx *Context) (bool, error) {
	if !s.Valid() {
		return false, NewError(ErrCodeInvalidSeverity, fmt.Sprintf("unknown severity %d", int(s)), nil)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return false, NewError(ErrCodeClosed, "engine is closed", nil)
	}
	if !s.AtLeast(e.opts.Threshold) {
		return false, nil
	}

	line := Format(e.opts, Entry{Severity: s, Message: message, Context: ctx}, e.now())
	if err := e.appendLocked(line); err != nil {
		return false, err
	}
	return true, nil
}

// Write appends line verbatim, without a timestamp, severity or terminator.
func (e *Engine) Write(line string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return NewError(ErrCodeClosed, "engine is closed", nil)
	}
	return e.appendLocked(line)
}

func (e *Engine) appendLocked(line string) error {
	if e.locks != nil {
		unlock := e.locks.Lock(e.path)
		defer unlock()
	}
	_, err := e.writer.Write([]byte(line))
	return err
}

// Emergency logs at emergency severity.
func (e *Engine) Emergency(message string, ctx *Context) (bool, error) {
	return e.Log(severity.Emergency, message, ctx)
}

// Alert logs at alert severity.
func (e *Engine) Alert(message string, ctx *Context) (bool, error) {
	return e.Log(severity.Alert, message, ctx)
}

// Critical logs at critical severity.
func (e *Engine) Critical(message string, ctx *Context) (bool, error) {
	return e.Log(severity.Critical, message, ctx)
}

// Error logs at error severity.
func (e *Engine) Error(message string, ctx *Context) (bool, error) {
	return e.Log(severity.Error, message, ctx)
}

// Warning logs at warning severity.
func (e *Engine) Warning(message string, ctx *Context) (bool, error) {
	return e.Log(severity.Warning, message, ctx)
}

// Notice logs at notice severity.
func (e *Engine) Notice(message string, ctx *Context) (bool, error) {
	return e.Log(severity.Notice, message, ctx)
}

// Info logs at info severity.
func (e *Engine) Info(message string, ctx *Context) (bool, error) {
	return e.Log(severity.Info, message, ctx)
}

// Debug logs at debug severity.
func (e *Engine) Debug(message string, ctx *Context) (bool, error) {
	return e.Log(severity.Debug, message, ctx)
}

// SetThreshold installs a new options generation with threshold s.
func (e *Engine) SetThreshold(s severity.Severity) error {
	if !s.Valid() {
		return NewError(ErrCodeInvalidSeverity, fmt.Sprintf("unknown severity %d", int(s)), nil)
	}
	e.swap(func(o *Options) { o.Threshold = s })
	return nil
}

// SetDateFormat installs a new options generation with the given time layout.
func (e *Engine) SetDateFormat(layout string) {
	e.swap(func(o *Options) { o.DateFormat = layout })
}

// swap copies the current generation, applies fn and installs the result.
// The file target is unaffected.
func (e *Engine) swap(fn func(*Options)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := e.opts
	fn(&next)
	e.opts = next.WithDefaults()
}

// Options returns the current options generation.
func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// Path returns the resolved file path, or the stream name.
func (e *Engine) Path() string {
	return e.path
}

// LastLine returns the most recently written line, trimmed.
func (e *Engine) LastLine() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.writer.LastLine()
}

// LineCount returns the number of lines written by this engine.
func (e *Engine) LineCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.writer.LineCount()
}

// Close releases the target. It is safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	return e.writer.Close()
}
