package logfile

import (
	"path/filepath"
	"strings"
	"time"
)

// fileDateLayout is the date embedded in generated file names.
const fileDateLayout = "2006-01-02"

// knownExtensions are kept verbatim when a filename override already has one.
var knownExtensions = []string{".log", ".txt"}

// FileName returns the base name of the file written at time at.
func FileName(opts Options, at time.Time) string {
	if opts.Filename != "" {
		lower := strings.ToLower(opts.Filename)
		for _, ext := range knownExtensions {
			if strings.HasSuffix(lower, ext) {
				return opts.Filename
			}
		}
		return opts.Filename + "." + opts.Extension
	}
	return opts.Prefix + at.Format(fileDateLayout) + "." + opts.Extension
}

// ResolvePath returns the file the engine writes to at time at.
func ResolvePath(opts Options, at time.Time) string {
	return filepath.Join(opts.Directory, FileName(opts, at))
}

// SearchPattern builds a glob matching dated files whose date starts with the
// given parts. Empty parts are skipped; the parts are not re-ordered, so a
// month without a year yields a pattern that matches nothing useful.
func SearchPattern(opts Options, year, month, day string) string {
	var date strings.Builder
	if year != "" {
		date.WriteString(year)
		date.WriteByte('-')
	}
	if month != "" {
		date.WriteString(month)
		date.WriteByte('-')
	}
	date.WriteString(day)
	return filepath.Join(opts.Directory, opts.Prefix+date.String()+"*")
}
