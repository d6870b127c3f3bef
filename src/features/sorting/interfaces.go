package sorting

import (
	"context"
	"time"

	"github.com/contre95/soundsort/src/sound"
)

// Relocator moves a file to an already disambiguated destination and returns where it ended up.
type Relocator interface {
	Relocate(ctx context.Context, source, destination string) (string, error)
}

// Player plays one file at a time and holds a handle on it while doing so.
type Player interface {
	Play(path string) error
	Stop()
	// TogglePause pauses or resumes and returns whether playback is now paused.
	TogglePause() (bool, error)
	Busy() bool
	// Release drops every handle on the loaded file. It is idempotent.
	Release() error
}

// Organizer lists and lays out the folder being sorted.
type Organizer interface {
	ListSounds(ctx context.Context, filter sound.ExtensionFilter) ([]string, error)
	CategoryDir(folder string) (string, error)
	Exists(path string) bool
}

// TagReader reads whatever metadata a file carries for display purposes.
type TagReader interface {
	ReadSound(ctx context.Context, path string) (*sound.Sound, error)
}

// JournalAction is what happened to a file.
type JournalAction string

const (
	ActionMove JournalAction = "move"
	ActionUndo JournalAction = "undo"
)

// JournalEntry is one line of the audit journal.
type JournalEntry struct {
	ID          string        `json:"id"`
	RecordID    string        `json:"record_id"`
	Action      JournalAction `json:"action"`
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	Category    string        `json:"category"`
	At          time.Time     `json:"at"`
}

// Journal keeps a write-only audit trail of relocations. It is never replayed into History.
type Journal interface {
	Append(ctx context.Context, entry JournalEntry) error
	List(ctx context.Context, limit int) ([]JournalEntry, error)
}

// Observer is notified of completed session operations, used for metrics.
type Observer interface {
	Categorized(category string)
	Undone()
	Skipped()
}
