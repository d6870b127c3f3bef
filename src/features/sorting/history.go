package sorting

import "time"

// RelocationRecord describes a completed relocation that can be reversed.
type RelocationRecord struct {
	ID                  string    `json:"id"`
	ResolvedDestination string    `json:"resolved_destination"`
	OriginalSource      string    `json:"original_source"`
	Category            string    `json:"category"`
	At                  time.Time `json:"at"`
}

// History is the last-in-first-out log of relocations done in this run.
type History struct {
	records []RelocationRecord
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Record appends a completed relocation.
func (h *History) Record(rec RelocationRecord) {
	h.records = append(h.records, rec)
}

// Pop removes and returns the most recent record.
func (h *History) Pop() (RelocationRecord, bool) {
	if len(h.records) == 0 {
		return RelocationRecord{}, false
	}
	last := h.records[len(h.records)-1]
	h.records = h.records[:len(h.records)-1]
	return last, true
}

// Peek returns the most recent record without removing it.
func (h *History) Peek() (RelocationRecord, bool) {
	if len(h.records) == 0 {
		return RelocationRecord{}, false
	}
	return h.records[len(h.records)-1], true
}

// Len returns the number of undoable records.
func (h *History) Len() int {
	return len(h.records)
}
