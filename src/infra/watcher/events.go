package watcher

import (
	"time"
)

// FileEventType represents the type of file system event
type FileEventType string

const (
	FileCreated FileEventType = "created"
)

// FileEvent represents a file that appeared in the watched folder
type FileEvent struct {
	Path      string
	EventType FileEventType
	Timestamp time.Time
}
