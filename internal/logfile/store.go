package logfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileInfo describes a log file on disk.
type FileInfo struct {
	Name      string
	Extension string
	Path      string
}

func newFileInfo(path string) FileInfo {
	return FileInfo{
		Name:      filepath.Base(path),
		Extension: strings.TrimPrefix(filepath.Ext(path), "."),
		Path:      path,
	}
}

// ListFiles returns the regular files in dir sorted by name.
func ListFiles(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewError(ErrCodeNotFound, fmt.Sprintf("log directory %s does not exist", dir), err)
		}
		return nil, fmt.Errorf("failed to read log directory: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		files = append(files, newFileInfo(filepath.Join(dir, entry.Name())))
	}
	return files, nil
}

// Search returns the regular files whose dated name starts with the given
// year, month and day parts. See SearchPattern for how parts combine.
func Search(opts Options, year, month, day string) ([]FileInfo, error) {
	pattern := SearchPattern(opts, year, month, day)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, NewError(ErrCodeValidationFailed, "invalid search pattern", err)
	}
	sort.Strings(matches)

	files := make([]FileInfo, 0, len(matches))
	for _, m := range matches {
		info, statErr := os.Stat(m)
		if statErr != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, newFileInfo(m))
	}
	return files, nil
}

// ValidateFileName rejects names that would escape the log directory.
func ValidateFileName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return NewError(ErrCodeValidationFailed, "file name is required", nil)
	case filepath.IsAbs(name), strings.ContainsAny(name, `/\`):
		return NewError(ErrCodeValidationFailed, "file name must not contain a path", nil)
	}
	return nil
}

// ReadLines returns the lines of dir/name in order, each keeping its line
// terminator. A missing file is NOT_FOUND and a file without content is
// EMPTY_FILE.
func ReadLines(dir, name string) ([]string, error) {
	if err := ValidateFileName(name); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewError(ErrCodeNotFound, "File not found.", err)
		}
		return nil, NewError(ErrCodeOpenFailed, "File open failed.", err)
	}
	defer f.Close()

	if info, statErr := f.Stat(); statErr == nil && info.IsDir() {
		return nil, NewError(ErrCodeNotFound, "File not found.", nil)
	}

	var lines []string
	r := bufio.NewReader(f)
	for {
		line, readErr := r.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, readErr)
		}
	}

	if len(lines) == 0 {
		return nil, NewError(ErrCodeEmptyFile,
			fmt.Sprintf("Nothing to read. The file %s is empty.", name), nil)
	}
	return lines, nil
}
