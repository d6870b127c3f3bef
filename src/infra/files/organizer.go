package files

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/contre95/soundsort/src/sound"
)

// FileOrganizer is the infrastructure implementation of the sorting.Organizer interface.
type FileOrganizer struct {
	sourceDir string
}

// NewFileOrganizer creates a new file organizer rooted at the folder being sorted.
func NewFileOrganizer(sourceDir string) *FileOrganizer {
	return &FileOrganizer{sourceDir: sourceDir}
}

// ListSounds returns the regular files directly under the source folder that pass the filter, sorted by name.
func (o *FileOrganizer) ListSounds(ctx context.Context, filter sound.ExtensionFilter) ([]string, error) {
	entries, err := os.ReadDir(o.sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", o.sourceDir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if strings.HasPrefix(entry.Name(), ".") || strings.HasSuffix(entry.Name(), ".part") {
			continue
		}
		path := filepath.Join(o.sourceDir, entry.Name())
		if !filter.Accepts(path) {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	slog.DebugContext(ctx, "Listed sounds", "dir", o.sourceDir, "count", len(paths))
	return paths, nil
}

// CategoryDir returns the folder for a category, creating it if needed.
func (o *FileOrganizer) CategoryDir(folder string) (string, error) {
	dir := filepath.Join(o.sourceDir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return dir, nil
}

// Exists reports whether something already occupies path.
func (o *FileOrganizer) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
