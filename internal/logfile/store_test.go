package logfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smazurov/openlogger/internal/severity"
)

func TestReadLinesReadBack(t *testing.T) {
	e := newTestEngine(t, nil)
	for _, msg := range []string{"one", "two", "three"} {
		if _, err := e.Notice(msg, nil); err != nil {
			t.Fatalf("Notice: %v", err)
		}
	}
	e.Close()

	lines, err := ReadLines(filepath.Dir(e.Path()), filepath.Base(e.Path()))
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, msg := range []string{"one", "two", "three"} {
		if !strings.HasSuffix(lines[i], "] "+msg+"\n") {
			t.Errorf("line %d = %q", i, lines[i])
		}
	}
}

func TestReadLinesEmptyFile(t *testing.T) {
	e := newTestEngine(t, nil)
	e.Close()

	_, err := ReadLines(filepath.Dir(e.Path()), filepath.Base(e.Path()))
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("ReadLines() error = %v, want EMPTY_FILE", err)
	}
}

func TestReadLinesMissingAndInvalid(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadLines(dir, "absent.log"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file error = %v, want NOT_FOUND", err)
	}
	for _, name := range []string{"../etc/passwd", "..", "/abs.log", `sub\x.log`} {
		if _, err := ReadLines(dir, name); !errors.Is(err, ErrValidationFailed) {
			t.Errorf("ReadLines(%q) error = %v, want VALIDATION_FAILED", name, err)
		}
	}
}

func TestReadLinesKeepsUnterminatedTail(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "x.log"), []byte("a\nb"), 0o644); err != nil {
		t.Fatal(err)
	}
	lines, err := ReadLines(dir, "x.log")
	if err != nil {
		t.Fatalf("ReadLines: %v", err)
	}
	if len(lines) != 2 || lines[0] != "a\n" || lines[1] != "b" {
		t.Errorf("lines = %q", lines)
	}
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.log", "a.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := ListFiles(dir)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2: %+v", len(files), files)
	}
	if files[0].Name != "a.txt" || files[0].Extension != "txt" || files[0].Path != filepath.Join(dir, "a.txt") {
		t.Errorf("files[0] = %+v", files[0])
	}

	if _, err := ListFiles(filepath.Join(dir, "missing")); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing dir error = %v, want NOT_FOUND", err)
	}
}

func TestSearch(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.Directory = dir

	days := []time.Time{
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local),
		time.Date(2024, 3, 6, 0, 0, 0, 0, time.Local),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local),
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.Local),
	}
	for _, day := range days {
		at := day
		e, err := New(opts, WithClock(func() time.Time { return at }))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		e.Log(severity.Info, "x", nil)
		e.Close()
	}

	tests := []struct {
		year, month, day string
		want             []string
	}{
		{"2024", "", "", []string{"log_2024-03-05.log", "log_2024-03-06.log", "log_2024-04-01.log"}},
		{"2024", "03", "", []string{"log_2024-03-05.log", "log_2024-03-06.log"}},
		{"2024", "03", "06", []string{"log_2024-03-06.log"}},
		{"2022", "", "", nil},
		{"", "03", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.year+"-"+tt.month+"-"+tt.day, func(t *testing.T) {
			files, err := Search(opts, tt.year, tt.month, tt.day)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(files) != len(tt.want) {
				t.Fatalf("got %+v, want %v", files, tt.want)
			}
			for i, name := range tt.want {
				if files[i].Name != name || files[i].Extension != "log" {
					t.Errorf("files[%d] = %+v, want %s", i, files[i], name)
				}
			}
		})
	}
}
