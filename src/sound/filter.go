package sound

import (
	"path/filepath"
	"strings"
)

// ExtensionFilter decides which files take part in a sorting session.
// An empty filter accepts every file.
type ExtensionFilter struct {
	exts map[string]struct{}
}

// NewExtensionFilter builds a filter from extensions such as "wav", ".mp3" or ".FLAC".
func NewExtensionFilter(exts ...string) ExtensionFilter {
	f := ExtensionFilter{}
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if f.exts == nil {
			f.exts = make(map[string]struct{})
		}
		f.exts[e] = struct{}{}
	}
	return f
}

// AcceptsAll reports whether the filter has no restriction.
func (f ExtensionFilter) AcceptsAll() bool {
	return len(f.exts) == 0
}

// Accepts reports whether the file at path passes the filter. Matching is case-insensitive.
func (f ExtensionFilter) Accepts(path string) bool {
	if f.AcceptsAll() {
		return true
	}
	_, ok := f.exts[strings.ToLower(filepath.Ext(path))]
	return ok
}
