package logfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// Mode selects how OpenWriter acquires its target.
type Mode int

const (
	// ModeAppend opens a file for appending, creating it if needed.
	ModeAppend Mode = iota
	// ModeTruncate creates or truncates the target. The names "stdout" and
	// "stderr" select the process streams, which are used as they are.
	ModeTruncate
)

// dirPerm is applied (through the umask) to directories created for log files.
const dirPerm = 0o777

// filePerm is applied (through the umask) to newly created log files.
const filePerm = 0o666

// Writer owns one open output target and applies the flush policy.
// It is not safe for concurrent use; Engine serializes access.
type Writer struct {
	path           string
	file           *os.File
	ownsFile       bool
	flushFrequency int
	lineCount      int
	flushes        int
	lastLine       string
	closed         bool
}

// OpenWriter opens path in the given mode. Missing parent directories are
// created. A target that exists but is a directory or has no write permission
// bits is rejected here rather than on the first write.
func OpenWriter(path string, mode Mode, flushFrequency int) (*Writer, error) {
	if mode == ModeTruncate {
		if w, ok := openStream(path, flushFrequency); ok {
			return w, nil
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, NewError(ErrCodeOpenFailed, fmt.Sprintf("cannot create log directory %s", dir), err)
	}

	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return nil, NewError(ErrCodeOpenFailed, fmt.Sprintf("log path %s is a directory", path), nil)
		}
		if info.Mode().Perm()&0o222 == 0 {
			return nil, NewError(ErrCodeOpenFailed,
				fmt.Sprintf("the file at location [%s] could not be written to, check permissions", path), nil)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE
	switch mode {
	case ModeTruncate:
		flags |= os.O_TRUNC
	default:
		flags |= os.O_APPEND
	}

	f, err := os.OpenFile(path, flags, filePerm)
	if err != nil {
		return nil, NewError(ErrCodeOpenFailed, fmt.Sprintf("the file %s could not be opened", path), err)
	}

	return &Writer{
		path:           path,
		file:           f,
		ownsFile:       true,
		flushFrequency: max(flushFrequency, 0),
	}, nil
}

// openStream returns a Writer on the process's stdout or stderr. Closing it
// does not close the underlying stream.
func openStream(name string, flushFrequency int) (*Writer, bool) {
	var f *os.File
	switch strings.ToLower(name) {
	case "stdout":
		f = os.Stdout
	case "stderr":
		f = os.Stderr
	default:
		return nil, false
	}
	return &Writer{
		path:           name,
		file:           f,
		flushFrequency: max(flushFrequency, 0),
	}, true
}

// Write appends p to the target. Every successful call counts as one line; when
// the count reaches a multiple of the flush frequency the target is synced.
func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, NewError(ErrCodeClosed, "writer is closed", nil)
	}

	n, err := w.file.Write(p)
	if err != nil {
		return n, NewError(ErrCodeWriteFailed,
			fmt.Sprintf("the file %s could not be written to", w.path), err)
	}

	w.lastLine = strings.TrimSpace(string(p))
	w.lineCount++

	if w.flushFrequency > 0 && w.lineCount%w.flushFrequency == 0 {
		if syncErr := w.Flush(); syncErr != nil {
			return n, syncErr
		}
	}
	return n, nil
}

// Flush forces buffered data to stable storage. Standard streams and targets
// that do not support fsync, such as /dev/null, count as flushed.
func (w *Writer) Flush() error {
	if w.closed {
		return NewError(ErrCodeClosed, "writer is closed", nil)
	}
	w.flushes++
	if !w.ownsFile {
		return nil
	}
	if err := w.file.Sync(); err != nil && !syncUnsupported(err) {
		return NewError(ErrCodeWriteFailed, fmt.Sprintf("the file %s could not be synced", w.path), err)
	}
	return nil
}

func syncUnsupported(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, errors.ErrUnsupported)
}

// Close releases the target. Calling Close more than once is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if !w.ownsFile {
		return nil
	}
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", w.path, err)
	}
	return nil
}

// Path returns the path the writer was opened on.
func (w *Writer) Path() string { return w.path }

// LineCount returns the number of writes since the target was opened.
func (w *Writer) LineCount() int { return w.lineCount }

// Flushes returns how many times the target has been synced.
func (w *Writer) Flushes() int { return w.flushes }

// LastLine returns the most recent write with surrounding whitespace removed.
func (w *Writer) LastLine() string { return w.lastLine }

// Closed reports whether Close has been called.
func (w *Writer) Closed() bool { return w.closed }
