package downloading

import (
	"context"

	"github.com/contre95/soundsort/src/sound"
)

// TagWriter writes metadata into a downloaded preview. artwork may be nil.
type TagWriter interface {
	WriteSoundTags(ctx context.Context, filePath string, snd *sound.Sound, genre string, artwork []byte) error
}
