package logging

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/coreos/go-systemd/v22/journal"

	"github.com/smazurov/openlogger/internal/severity"
)

const journalIdentifier = "openlogger"

// JournalHandler forwards records to the systemd journal. Attributes become
// upper-case journal fields, with group names joined by underscores.
type JournalHandler struct {
	level  slog.Leveler
	fields map[string]string
	prefix string
}

func NewJournalHandler(level slog.Leveler) *JournalHandler {
	return &JournalHandler{level: level, fields: map[string]string{}}
}

func (h *JournalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle sends r to the journal. A record carrying a "severity" attribute
// with an engine severity name uses that severity as the journal priority,
// since both follow the syslog numbering.
func (h *JournalHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]string, len(h.fields)+r.NumAttrs()+2)
	for k, v := range h.fields {
		fields[k] = v
	}
	r.Attrs(func(a slog.Attr) bool {
		flatten(fields, h.prefix, a)
		return true
	})
	fields["SYSLOG_IDENTIFIER"] = journalIdentifier

	priority := mapLevelToPriority(r.Level)
	if name, ok := fields[h.prefix+"SEVERITY"]; ok {
		if sev, err := severity.Parse(name); err == nil {
			priority = journal.Priority(sev.Rank())
		}
	}
	return journal.Send(r.Message, priority, fields)
}

func (h *JournalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	fields := make(map[string]string, len(h.fields)+len(attrs))
	for k, v := range h.fields {
		fields[k] = v
	}
	for _, a := range attrs {
		flatten(fields, h.prefix, a)
	}
	return &JournalHandler{level: h.level, fields: fields, prefix: h.prefix}
}

func (h *JournalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &JournalHandler{level: h.level, fields: h.fields, prefix: h.prefix + journalKey(name) + "_"}
}

func mapLevelToPriority(level slog.Level) journal.Priority {
	switch {
	case level >= slog.LevelError:
		return journal.PriErr
	case level >= slog.LevelWarn:
		return journal.PriWarning
	case level >= slog.LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

// flatten writes a into fields under prefix, descending into groups.
func flatten(fields map[string]string, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := prefix + journalKey(a.Key)

	switch a.Value.Kind() {
	case slog.KindGroup:
		inner := key + "_"
		if a.Key == "" {
			inner = prefix
		}
		for _, ga := range a.Value.Group() {
			flatten(fields, inner, ga)
		}
	case slog.KindFloat64:
		fields[key] = strconv.FormatFloat(a.Value.Float64(), 'f', -1, 64)
	case slog.KindTime:
		fields[key] = a.Value.Time().Format(time.RFC3339Nano)
	default:
		fields[key] = a.Value.String()
	}
}

// journalKey upper-cases k and replaces characters the journal rejects in
// field names.
func journalKey(k string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, k)
}

// IsJournalAvailable reports whether the journal socket is reachable.
func IsJournalAvailable() bool {
	return journal.Enabled()
}
