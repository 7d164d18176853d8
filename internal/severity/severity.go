// Package severity defines the eight syslog-style severities accepted by the
// log engine and the total order used for threshold filtering.
package severity

import (
	"fmt"
	"strings"
)

// Severity is a log severity. Lower values are more severe. The zero value is
// not a valid severity and stands for "unset".
type Severity int

// Severities in rank order, most severe first.
const (
	Emergency Severity = iota + 1
	Alert
	Critical
	Error
	Warning
	Notice
	Info
	Debug
)

// ErrInvalid is returned by Parse for names outside the fixed set.
var ErrInvalid = fmt.Errorf("invalid severity")

var names = [...]string{
	"",
	Emergency: "emergency",
	Alert:     "alert",
	Critical:  "critical",
	Error:     "error",
	Warning:   "warning",
	Notice:    "notice",
	Info:      "info",
	Debug:     "debug",
}

// All returns every severity in rank order.
func All() []Severity {
	return []Severity{Emergency, Alert, Critical, Error, Warning, Notice, Info, Debug}
}

// Names returns the lower-case names of all severities in rank order.
func Names() []string {
	out := make([]string, 0, len(names)-1)
	return append(out, names[1:]...)
}

// Parse converts a severity name to a Severity. Matching is case-insensitive.
func Parse(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "emergency":
		return Emergency, nil
	case "alert":
		return Alert, nil
	case "critical":
		return Critical, nil
	case "error":
		return Error, nil
	case "warning":
		return Warning, nil
	case "notice":
		return Notice, nil
	case "info":
		return Info, nil
	case "debug":
		return Debug, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalid, name)
	}
}

// Valid reports whether s is one of the eight defined severities.
func (s Severity) Valid() bool {
	return s >= Emergency && s <= Debug
}

// Rank returns the integer priority, 0 for emergency through 7 for debug.
func (s Severity) Rank() int {
	return int(s) - 1
}

// AtLeast reports whether s is at least as severe as threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return s.Rank() <= threshold.Rank()
}

// String returns the lower-case severity name.
func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return names[s]
}

// Upper returns the upper-case severity name as used in log templates.
func (s Severity) Upper() string {
	return strings.ToUpper(s.String())
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalid, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
