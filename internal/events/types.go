package events

// Event type constants for kelindar/event.
const (
	TypeEntryWritten uint32 = iota + 1
	TypeEntryFiltered
	TypeWriteFailed
	TypeOptionsReloaded
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// EntryWrittenEvent is published after an entry has been appended to a log file.
type EntryWrittenEvent struct {
	Severity  string `json:"severity" example:"error" doc:"Severity of the entry"`
	Message   string `json:"message" example:"disk full" doc:"Message as submitted"`
	Line      string `json:"line" example:"[2024-03-05 14:02:11] [ERROR] disk full" doc:"Formatted entry, trimmed"`
	File      string `json:"file" example:"log_2024-03-05.log" doc:"Name of the file written to"`
	Timestamp string `json:"timestamp" example:"2024-03-05T14:02:11Z" doc:"Time the entry was written"`
}

// Type returns the event type identifier for EntryWrittenEvent.
func (e EntryWrittenEvent) Type() uint32 { return TypeEntryWritten }

// EntryFilteredEvent is published when an entry is below the severity threshold.
type EntryFilteredEvent struct {
	Severity  string `json:"severity" example:"debug" doc:"Severity of the entry"`
	Threshold string `json:"threshold" example:"warning" doc:"Threshold in effect"`
	Timestamp string `json:"timestamp" example:"2024-03-05T14:02:11Z" doc:"Time the entry was dropped"`
}

// Type returns the event type identifier for EntryFilteredEvent.
func (e EntryFilteredEvent) Type() uint32 { return TypeEntryFiltered }

// WriteFailedEvent is published when opening or appending to a log file fails.
type WriteFailedEvent struct {
	Severity  string `json:"severity" example:"error" doc:"Severity of the entry"`
	Code      string `json:"code" example:"OPEN_FAILED" doc:"Failure code"`
	Error     string `json:"error" doc:"Failure description"`
	Timestamp string `json:"timestamp" example:"2024-03-05T14:02:11Z" doc:"Time of the failure"`
}

// Type returns the event type identifier for WriteFailedEvent.
func (e WriteFailedEvent) Type() uint32 { return TypeWriteFailed }

// OptionsReloadedEvent is published when a new logger options generation is installed.
type OptionsReloadedEvent struct {
	Generation uint64 `json:"generation" example:"2" doc:"Generation number"`
	Threshold  string `json:"threshold" example:"warning" doc:"Threshold of the new generation"`
	Timestamp  string `json:"timestamp" example:"2024-03-05T14:02:11Z" doc:"Time of the reload"`
}

// Type returns the event type identifier for OptionsReloadedEvent.
func (e OptionsReloadedEvent) Type() uint32 { return TypeOptionsReloaded }
