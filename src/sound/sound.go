package sound

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Sound represents a single audio file, either on disk waiting to be sorted
// or a search result coming from a remote provider.
type Sound struct {
	ID       string                    `json:"id,omitempty"`
	Path     string                    `json:"path,omitempty"`
	Name     string                    `json:"name"`
	Title    string                    `json:"title,omitempty"`
	Author   string                    `json:"author,omitempty"`
	Format   string                    `json:"format,omitempty"`
	License  string                    `json:"license,omitempty"`
	Tags     []string                  `json:"tags,omitempty"`
	Previews map[PreviewQuality]string `json:"previews,omitempty"`
	// WaveformURL points to a rendered waveform image when the provider has one.
	WaveformURL string `json:"waveform_url,omitempty"`
}

// PreviewQuality names one of the encoded previews a provider serves.
type PreviewQuality string

const (
	PreviewLQMP3 PreviewQuality = "lq_mp3"
	PreviewHQMP3 PreviewQuality = "hq_mp3"
	PreviewLQOGG PreviewQuality = "lq_ogg"
	PreviewHQOGG PreviewQuality = "hq_ogg"
)

// Ext returns the file extension (with dot) of a preview quality.
func (q PreviewQuality) Ext() string {
	if strings.HasSuffix(string(q), "ogg") {
		return ".ogg"
	}
	return ".mp3"
}

// Valid reports whether q is one of the known preview qualities.
func (q PreviewQuality) Valid() bool {
	switch q {
	case PreviewLQMP3, PreviewHQMP3, PreviewLQOGG, PreviewHQOGG:
		return true
	}
	return false
}

// FromPath builds a Sound for a local file. Format is derived from the extension.
func FromPath(path string) Sound {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return Sound{
		Path:   path,
		Name:   base,
		Title:  strings.TrimSuffix(base, ext),
		Format: strings.TrimPrefix(strings.ToLower(ext), "."),
	}
}

// DisplayName is what the sorter shows for the sound.
func (s Sound) DisplayName() string {
	if s.Title != "" && s.Author != "" {
		return fmt.Sprintf("%s - %s (%s)", s.Author, s.Title, s.Name)
	}
	if s.Name != "" {
		return s.Name
	}
	return filepath.Base(s.Path)
}
