package model

import "time"

type EventType string

const (
	EventCreate EventType = "CREATE"
	EventWrite  EventType = "WRITE"
	EventRemove EventType = "REMOVE"
	EventRename EventType = "RENAME"
	EventChmod  EventType = "CHMOD"
)

// FileEvent is a change observed in the watched source directory.
type FileEvent struct {
	Type      EventType
	Path      string
	Timestamp time.Time
}
