package logs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/smazurov/openlogger/internal/events"
	"github.com/smazurov/openlogger/internal/logfile"
	"github.com/smazurov/openlogger/internal/severity"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 5, 14, 2, 11, 0, time.Local)
}

func newTestService(t *testing.T, bus *events.Bus, mutate func(*logfile.Options)) *ServiceImpl {
	t.Helper()
	opts := logfile.DefaultOptions()
	opts.Directory = t.TempDir()
	if mutate != nil {
		mutate(&opts)
	}
	return NewService(ServiceOptions{Options: opts, Bus: bus, Clock: fixedClock})
}

func receive[T any](t *testing.T, ch <-chan any) T {
	t.Helper()
	select {
	case ev := <-ch:
		typed, ok := ev.(T)
		if !ok {
			t.Fatalf("got event %T, want %T", ev, *new(T))
		}
		return typed
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for %T", *new(T))
	}
	panic("unreachable")
}

func TestServiceWrite(t *testing.T) {
	bus := events.New()
	ch := make(chan any, 4)
	defer events.SubscribeToChannel[events.EntryWrittenEvent](bus, ch)()

	svc := newTestService(t, bus, nil)
	res, err := svc.Write(context.Background(), WriteParams{
		Severity: "ERROR",
		Message:  "disk full",
		Context:  `{"disk":"/dev/sda1"}`,
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	if !res.Written || res.Severity != severity.Error {
		t.Errorf("result = %+v, want written error entry", res)
	}
	if res.File != "log_2024-03-05.log" {
		t.Errorf("File = %q", res.File)
	}
	if res.Generation != 1 {
		t.Errorf("Generation = %d, want 1", res.Generation)
	}

	opts, _ := svc.Options()
	data, err := os.ReadFile(filepath.Join(opts.Directory, res.File))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "[2024-03-05 14:02:11] [ERROR] disk full\n") {
		t.Errorf("file content = %q", data)
	}

	ev := receive[events.EntryWrittenEvent](t, ch)
	if ev.Severity != "error" || ev.Message != "disk full" || ev.File != res.File {
		t.Errorf("event = %+v", ev)
	}
}

func TestServiceWriteBelowThreshold(t *testing.T) {
	bus := events.New()
	ch := make(chan any, 4)
	defer events.SubscribeToChannel[events.EntryFilteredEvent](bus, ch)()

	svc := newTestService(t, bus, func(o *logfile.Options) { o.Threshold = severity.Warning })
	res, err := svc.Write(context.Background(), WriteParams{Severity: "info", Message: "x"})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if res.Written {
		t.Error("info entry should be filtered at warning threshold")
	}

	ev := receive[events.EntryFilteredEvent](t, ch)
	if ev.Severity != "info" || ev.Threshold != "warning" {
		t.Errorf("event = %+v", ev)
	}

	opts, _ := svc.Options()
	lines, err := logfile.ReadLines(opts.Directory, "log_2024-03-05.log")
	if !errors.Is(err, logfile.ErrEmptyFile) {
		t.Errorf("ReadLines = %v, %v; want EMPTY_FILE", lines, err)
	}
}

func TestServiceWriteRejectsBadInput(t *testing.T) {
	svc := newTestService(t, nil, nil)

	tests := []struct {
		name   string
		params WriteParams
		code   string
	}{
		{"unknown severity", WriteParams{Severity: "fatal", Message: "x"}, logfile.ErrCodeInvalidSeverity},
		{"empty severity", WriteParams{Message: "x"}, logfile.ErrCodeInvalidSeverity},
		{"context not json", WriteParams{Severity: "info", Message: "x", Context: "{oops"}, logfile.ErrCodeValidationFailed},
		{"context not object", WriteParams{Severity: "info", Message: "x", Context: "[1,2]"}, logfile.ErrCodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Write(context.Background(), tt.params)
			if logfile.Code(err) != tt.code {
				t.Errorf("code = %q, want %q (err %v)", logfile.Code(err), tt.code, err)
			}
		})
	}
}

func TestServiceWriteListsSeverities(t *testing.T) {
	svc := newTestService(t, nil, nil)
	_, err := svc.Write(context.Background(), WriteParams{Severity: "fatal", Message: "x"})
	if err == nil || !strings.Contains(err.Error(), "emergency, alert, critical, error, warning, notice, info, debug") {
		t.Errorf("error = %v, want the accepted severity names", err)
	}
}

func TestServiceWriteOpenFailure(t *testing.T) {
	bus := events.New()
	ch := make(chan any, 4)
	defer events.SubscribeToChannel[events.WriteFailedEvent](bus, ch)()

	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	svc := newTestService(t, bus, func(o *logfile.Options) { o.Directory = blocker })

	_, err := svc.Write(context.Background(), WriteParams{Severity: "error", Message: "x"})
	if !errors.Is(err, logfile.ErrOpenFailed) {
		t.Fatalf("Write err = %v, want OPEN_FAILED", err)
	}

	ev := receive[events.WriteFailedEvent](t, ch)
	if ev.Code != logfile.ErrCodeOpenFailed {
		t.Errorf("event code = %q", ev.Code)
	}
}

func TestServiceWriteFailure(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs /dev/full")
	}
	bus := events.New()
	ch := make(chan any, 4)
	defer events.SubscribeToChannel[events.WriteFailedEvent](bus, ch)()

	svc := newTestService(t, bus, func(o *logfile.Options) {
		if err := os.Symlink("/dev/full", filepath.Join(o.Directory, "log_2024-03-05.log")); err != nil {
			t.Fatal(err)
		}
	})

	res, err := svc.Write(context.Background(), WriteParams{Severity: "error", Message: "x"})
	if res != nil || !errors.Is(err, logfile.ErrWriteFailed) {
		t.Fatalf("Write = %+v, %v; want nil, WRITE_FAILED", res, err)
	}
	if ev := receive[events.WriteFailedEvent](t, ch); ev.Code != logfile.ErrCodeWriteFailed {
		t.Errorf("event code = %q", ev.Code)
	}
}

func TestServiceWriteCanceledContext(t *testing.T) {
	svc := newTestService(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Write(ctx, WriteParams{Severity: "info", Message: "x"}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestServiceReconfigure(t *testing.T) {
	bus := events.New()
	ch := make(chan any, 4)
	defer events.SubscribeToChannel[events.OptionsReloadedEvent](bus, ch)()

	svc := newTestService(t, bus, nil)
	opts, gen := svc.Options()
	if gen != 1 {
		t.Fatalf("initial generation = %d", gen)
	}

	opts.Threshold = severity.Critical
	if got := svc.Reconfigure(opts); got != 2 {
		t.Errorf("Reconfigure = %d, want 2", got)
	}

	ev := receive[events.OptionsReloadedEvent](t, ch)
	if ev.Generation != 2 || ev.Threshold != "critical" {
		t.Errorf("event = %+v", ev)
	}

	res, err := svc.Write(context.Background(), WriteParams{Severity: "error", Message: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Written || res.Generation != 2 {
		t.Errorf("result = %+v, want filtered under generation 2", res)
	}
}

func TestServiceConcurrentWritesStayWhole(t *testing.T) {
	svc := newTestService(t, nil, nil)

	const n = 64
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msg := fmt.Sprintf("entry-%02d %s", i, strings.Repeat("x", 200))
			if _, err := svc.Write(context.Background(), WriteParams{Severity: "info", Message: msg}); err != nil {
				t.Errorf("Write: %v", err)
			}
		}()
	}
	wg.Wait()

	lines, err := svc.Read(context.Background(), "log_2024-03-05.log")
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != n {
		t.Fatalf("got %d lines, want %d", len(lines), n)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "[2024-03-05 14:02:11] [INFO] entry-") || !strings.HasSuffix(line, "x\n") {
			t.Errorf("interleaved line: %q", line)
		}
	}
}

func TestServiceReadListSearch(t *testing.T) {
	svc := newTestService(t, nil, nil)
	ctx := context.Background()

	for _, sev := range []string{"error", "warning", "info"} {
		if _, err := svc.Write(ctx, WriteParams{Severity: sev, Message: sev}); err != nil {
			t.Fatal(err)
		}
	}

	lines, err := svc.Read(ctx, "log_2024-03-05.log")
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 3 || !strings.Contains(lines[1], "[WARNING] warning") {
		t.Errorf("lines = %q", lines)
	}

	files, err := svc.ListFiles(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0].Name != "log_2024-03-05.log" || files[0].Extension != "log" {
		t.Errorf("ListFiles = %+v", files)
	}

	found, err := svc.Search(ctx, SearchParams{Year: "2024", Month: "03"})
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 {
		t.Errorf("Search = %+v, want one file", found)
	}

	none, err := svc.Search(ctx, SearchParams{Year: "2023"})
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("Search 2023 = %+v, want none", none)
	}

	if _, err := svc.Read(ctx, "log_1999-01-01.log"); !errors.Is(err, logfile.ErrNotFound) {
		t.Errorf("Read missing = %v, want NOT_FOUND", err)
	}
}

func TestValidateSearch(t *testing.T) {
	now := fixedClock()
	tests := []struct {
		name   string
		params SearchParams
		ok     bool
	}{
		{"year only", SearchParams{Year: "2024"}, true},
		{"full date", SearchParams{Year: "1900", Month: "12", Day: "31"}, true},
		{"month without year", SearchParams{Month: "03"}, true},
		{"future year", SearchParams{Year: "2025"}, false},
		{"year too early", SearchParams{Year: "1899"}, false},
		{"short year", SearchParams{Year: "24"}, false},
		{"month out of range", SearchParams{Year: "2024", Month: "13"}, false},
		{"single digit month", SearchParams{Year: "2024", Month: "3"}, false},
		{"day zero", SearchParams{Year: "2024", Day: "00"}, false},
		{"day not numeric", SearchParams{Year: "2024", Day: "ab"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSearch(tt.params, now)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && logfile.Code(err) != logfile.ErrCodeValidationFailed {
				t.Errorf("err = %v, want VALIDATION_FAILED", err)
			}
		})
	}
}
