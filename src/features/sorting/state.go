package sorting

import "github.com/contre95/soundsort/src/sound"

// State is the mutable session state, owned by Service and guarded by its mutex.
type State struct {
	Index     int
	Current   string
	Paused    bool
	LastError string
	sound     *sound.Sound
}

// Status is a read-only snapshot of the session for the UI and the API.
type Status struct {
	Current    *sound.Sound     `json:"current,omitempty"`
	Index      int              `json:"index"`
	Processed  int              `json:"processed"`
	Remaining  int              `json:"remaining"`
	Total      int              `json:"total"`
	Paused     bool             `json:"paused"`
	Playing    bool             `json:"playing"`
	Done       bool             `json:"done"`
	CanUndo    bool             `json:"can_undo"`
	LastError  string           `json:"last_error,omitempty"`
	SourceDir  string           `json:"source_dir"`
	Categories sound.Categories `json:"categories"`
}

// Progress renders the progress line shown under the current file.
func (s Status) Progress() string {
	if s.Done {
		return "done, nothing left to sort"
	}
	return formatProgress(s.Processed, s.Remaining)
}
