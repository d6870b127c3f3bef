package tag

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/contre95/soundsort/src/features/sorting"
	"github.com/contre95/soundsort/src/sound"
	"github.com/dhowden/tag"
)

// TagReader reads embedded metadata with the dhowden/tag library.
type TagReader struct{}

// NewTagReader creates a new TagReader
func NewTagReader() sorting.TagReader {
	return &TagReader{}
}

// ReadSound returns the sound at filePath with whatever its tags tell about it.
// Files without tags are an error; callers fall back to sound.FromPath.
func (r *TagReader) ReadSound(ctx context.Context, filePath string) (*sound.Sound, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	tags, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	snd := sound.FromPath(filePath)
	if title := strings.TrimSpace(tags.Title()); title != "" {
		snd.Title = title
	}
	snd.Author = strings.TrimSpace(tags.Artist())
	snd.License = strings.TrimSpace(tags.Comment())
	if genre := strings.TrimSpace(tags.Genre()); genre != "" {
		snd.Tags = []string{genre}
	}
	return &snd, nil
}
