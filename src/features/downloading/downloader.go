package downloading

import (
	"context"
	"io"

	"github.com/contre95/soundsort/src/sound"
)

// Provider is a remote sound library previews can be downloaded from.
type Provider interface {
	// Search returns at most pageSize sounds matching query.
	Search(ctx context.Context, query string, pageSize int) ([]sound.Sound, error)
	// Fetch writes the resource at url to w and returns the number of bytes written.
	Fetch(ctx context.Context, url string, w io.Writer) (int64, error)
	Name() string
}
