package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smazurov/openlogger/internal/logfile"
	"github.com/smazurov/openlogger/internal/severity"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func loadLoggerOptions(path string) (logfile.Options, error) {
	l, err := LoadLogger(path)
	if err != nil {
		return logfile.Options{}, err
	}
	return l.Options()
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func startWatcher(t *testing.T, path string, debounce time.Duration, opts ...WatcherOption[logfile.Options]) *Watcher[logfile.Options] {
	t.Helper()
	opts = append([]WatcherOption[logfile.Options]{WithDebounce[logfile.Options](debounce)}, opts...)
	w := NewConfigWatcher(path, loadLoggerOptions, newTestLogger(), opts...)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := w.Stop(); err != nil {
			t.Errorf("watcher.Stop failed: %v", err)
		}
	})
	time.Sleep(100 * time.Millisecond)
	return w
}

func TestConfigWatcher_ReloadsLoggerSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "[logger]\nlevel = \"debug\"\n")

	received := make(chan logfile.Options, 1)
	w := startWatcher(t, path, 50*time.Millisecond)
	w.OnReload(func(opts logfile.Options) { received <- opts })

	writeConfig(t, path, "[logger]\nlevel = \"warning\"\nprefix = \"svc_\"\n")

	select {
	case opts := <-received:
		if opts.Threshold != severity.Warning {
			t.Errorf("threshold = %v, want warning", opts.Threshold)
		}
		if opts.Prefix != "svc_" {
			t.Errorf("prefix = %q, want svc_", opts.Prefix)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for config reload")
	}
	if w.Reloads() != 1 {
		t.Errorf("Reloads() = %d, want 1", w.Reloads())
	}
}

func TestConfigWatcher_RenameOverOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeConfig(t, path, "[logger]\nlevel = \"info\"\n")

	received := make(chan logfile.Options, 1)
	w := startWatcher(t, path, 50*time.Millisecond)
	w.OnReload(func(opts logfile.Options) { received <- opts })

	tmp := filepath.Join(dir, ".config.toml.swp")
	writeConfig(t, tmp, "[logger]\nlevel = \"error\"\n")
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	select {
	case opts := <-received:
		if opts.Threshold != severity.Error {
			t.Errorf("threshold = %v, want error", opts.Threshold)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for reload after rename")
	}
}

func TestConfigWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	writeConfig(t, path, "[logger]\n")

	var count atomic.Int32
	w := startWatcher(t, path, 50*time.Millisecond)
	w.OnReload(func(logfile.Options) { count.Add(1) })

	writeConfig(t, filepath.Join(dir, "other.toml"), "[logger]\nlevel = \"error\"\n")
	time.Sleep(300 * time.Millisecond)

	if got := count.Load(); got != 0 {
		t.Errorf("expected no reloads for sibling writes, got %d", got)
	}
}

func TestConfigWatcher_ErrorHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "[logger]\nlevel = \"info\"\n")

	errs := make(chan error, 1)
	configs := make(chan logfile.Options, 1)
	w := startWatcher(t, path, 50*time.Millisecond,
		WithErrorHandler[logfile.Options](func(err error) { errs <- err }))
	w.OnReload(func(opts logfile.Options) { configs <- opts })

	writeConfig(t, path, "[logger]\nlevel = \"verbose\"\n")

	select {
	case err := <-errs:
		if logfile.Code(err) != logfile.ErrCodeInvalidSeverity {
			t.Errorf("code = %q, want %q", logfile.Code(err), logfile.ErrCodeInvalidSeverity)
		}
	case <-configs:
		t.Fatal("handler should not run when the level is invalid")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for error handler")
	}
}

func TestConfigWatcher_Debounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "[logger]\nflush_frequency = 0\n")

	var count atomic.Int32
	var last atomic.Int32
	w := startWatcher(t, path, 200*time.Millisecond)
	w.OnReload(func(opts logfile.Options) {
		count.Add(1)
		last.Store(int32(opts.FlushFrequency))
	})

	for i := 1; i <= 5; i++ {
		writeConfig(t, path, fmt.Sprintf("[logger]\nflush_frequency = %d\n", i))
		time.Sleep(50 * time.Millisecond)
	}
	time.Sleep(500 * time.Millisecond)

	if got := count.Load(); got != 1 {
		t.Errorf("expected 1 debounced call, got %d", got)
	}
	if got := last.Load(); got != 5 {
		t.Errorf("expected final flush frequency 5, got %d", got)
	}
}

func TestConfigWatcher_Unsubscribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "[logger]\n")

	var first, second atomic.Int32
	w := startWatcher(t, path, 50*time.Millisecond)
	w.OnReload(func(logfile.Options) { first.Add(1) })
	unsub := w.OnReload(func(logfile.Options) { second.Add(1) })

	writeConfig(t, path, "[logger]\nlevel = \"info\"\n")
	time.Sleep(250 * time.Millisecond)
	unsub()
	writeConfig(t, path, "[logger]\nlevel = \"notice\"\n")
	time.Sleep(250 * time.Millisecond)

	if got := first.Load(); got != 2 {
		t.Errorf("first handler: expected 2 calls, got %d", got)
	}
	if got := second.Load(); got != 1 {
		t.Errorf("second handler: expected 1 call, got %d", got)
	}
}

func TestConfigWatcher_Stop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "[logger]\n")

	var count atomic.Int32
	w := NewConfigWatcher(path, loadLoggerOptions, newTestLogger(),
		WithDebounce[logfile.Options](50*time.Millisecond))
	w.OnReload(func(logfile.Options) { count.Add(1) })

	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := w.Stop(); err != nil {
		t.Fatal(err)
	}

	writeConfig(t, path, "[logger]\nlevel = \"alert\"\n")
	time.Sleep(200 * time.Millisecond)

	if got := count.Load(); got != 0 {
		t.Errorf("expected 0 calls after stop, got %d", got)
	}
}

func TestConfigWatcher_StopWithoutStart(t *testing.T) {
	w := NewConfigWatcher("config.toml", loadLoggerOptions, newTestLogger())
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() = %v, want nil", err)
	}
}
