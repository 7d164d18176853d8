package logfile

import (
	"strconv"
	"strings"
	"time"

	"github.com/smazurov/openlogger/internal/severity"
)

// levelColumn is the width {level-padding} pads severity names to.
const levelColumn = 9

// lineTerminator ends every formatted entry.
const lineTerminator = "\n"

// Entry is a single log call. It is formatted and written immediately and
// never retained by the engine.
type Entry struct {
	Severity severity.Severity
	Message  string
	Context  *Context
}

// Format renders e as it will be appended to the log file. The output depends
// only on opts, e and at.
func Format(opts Options, e Entry, at time.Time) string {
	stamp := Timestamp(opts, at)

	var line string
	if opts.Format != "" {
		name := e.Severity.String()
		r := strings.NewReplacer(
			"{date}", stamp,
			"{level}", e.Severity.Upper(),
			"{level-padding}", strings.Repeat(" ", max(0, levelColumn-len(name))),
			"{priority}", strconv.Itoa(e.Severity.Rank()),
			"{message}", e.Message,
			"{context}", contextJSON(e.Context),
		)
		line = r.Replace(opts.Format)
	} else {
		line = "[" + stamp + "] [" + e.Severity.Upper() + "] " + e.Message
	}

	if !opts.OmitContext && contextLen(e.Context) > 0 {
		line += lineTerminator + indent(contextDump(e.Context))
	}

	return line + lineTerminator
}

// Timestamp renders at with microsecond precision using opts.DateFormat.
func Timestamp(opts Options, at time.Time) string {
	layout := opts.DateFormat
	if layout == "" {
		layout = DefaultDateFormat
	}
	return at.Truncate(time.Microsecond).Format(layout)
}
