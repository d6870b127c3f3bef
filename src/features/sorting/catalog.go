package sorting

import (
	"errors"
	"fmt"
)

var ErrIndexOutOfRange = errors.New("catalog index out of range")

// Catalog is the ordered list of files still waiting to be sorted.
// Entries are addressed by position, so the same path may appear twice.
type Catalog struct {
	paths []string
}

// NewCatalog creates a catalog holding a copy of paths.
func NewCatalog(paths []string) *Catalog {
	cp := make([]string, len(paths))
	copy(cp, paths)
	return &Catalog{paths: cp}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.paths)
}

// At returns the entry at i.
func (c *Catalog) At(i int) (string, bool) {
	if i < 0 || i >= len(c.paths) {
		return "", false
	}
	return c.paths[i], true
}

// RemoveAt removes and returns the entry at i.
func (c *Catalog) RemoveAt(i int) (string, error) {
	if i < 0 || i >= len(c.paths) {
		return "", fmt.Errorf("%w: remove %d of %d", ErrIndexOutOfRange, i, len(c.paths))
	}
	path := c.paths[i]
	c.paths = append(c.paths[:i], c.paths[i+1:]...)
	return path, nil
}

// InsertAt inserts path before the entry at i. i == Len() appends.
func (c *Catalog) InsertAt(i int, path string) error {
	if i < 0 || i > len(c.paths) {
		return fmt.Errorf("%w: insert %d of %d", ErrIndexOutOfRange, i, len(c.paths))
	}
	c.paths = append(c.paths, "")
	copy(c.paths[i+1:], c.paths[i:])
	c.paths[i] = path
	return nil
}

// Append adds path at the end.
func (c *Catalog) Append(path string) {
	c.paths = append(c.paths, path)
}

// Contains reports whether path is anywhere in the catalog.
func (c *Catalog) Contains(path string) bool {
	for _, p := range c.paths {
		if p == path {
			return true
		}
	}
	return false
}

// Paths returns a copy of the entries in order.
func (c *Catalog) Paths() []string {
	cp := make([]string, len(c.paths))
	copy(cp, c.paths)
	return cp
}
