package model

import (
	"fmt"
	"time"
)

type Action string

const (
	ActionCreated  Action = "Created"
	ActionModified Action = "Modified"
	ActionDeleted  Action = "Deleted"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCreated, ActionModified, ActionDeleted:
		return true
	default:
		return false
	}
}

func (a *Action) UnmarshalText(text []byte) error {
	v := Action(text)
	if !v.Valid() {
		return fmt.Errorf("unknown action: %q", string(text))
	}

	*a = v
	return nil
}

// LogEntry records one filesystem mutation performed during a pass.
// FilePath is the base name of the file inside the synchronized pair.
type LogEntry struct {
	FilePath  string    `json:"filePath" xml:"filePath"`
	Action    Action    `json:"action" xml:"action"`
	Timestamp time.Time `json:"timestamp" xml:"timestamp"`
}

// SyncRun is the ordered list of entries produced by one reconciliation pass.
type SyncRun []LogEntry

func (r SyncRun) Count(action Action) int {
	n := 0
	for _, e := range r {
		if e.Action == action {
			n++
		}
	}

	return n
}

// Equal compares two runs entry by entry, treating timestamps as instants.
func (r SyncRun) Equal(other SyncRun) bool {
	if len(r) != len(other) {
		return false
	}

	for i := range r {
		if r[i].FilePath != other[i].FilePath ||
			r[i].Action != other[i].Action ||
			!r[i].Timestamp.Equal(other[i].Timestamp) {
			return false
		}
	}

	return true
}
