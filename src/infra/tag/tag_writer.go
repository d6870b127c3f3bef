package tag

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/contre95/soundsort/src/features/config"
	"github.com/contre95/soundsort/src/features/downloading"
	"github.com/contre95/soundsort/src/sound"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
	_ "image/gif"
)

// TagWriter writes ID3v2 tags into downloaded MP3 previews.
type TagWriter struct {
	config *config.Manager
}

// NewTagWriter creates a new TagWriter.
func NewTagWriter(cfg *config.Manager) downloading.TagWriter {
	return &TagWriter{config: cfg}
}

// resizeImage resizes image data to fit within maxSize pixels, maintaining aspect ratio.
// It returns the encoded image and its mime type.
func resizeImage(imgData []byte, maxSize int) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if maxSize > 0 && (width > maxSize || height > maxSize) {
		if width > height {
			height = (height * maxSize) / width
			width = maxSize
		} else {
			width = (width * maxSize) / height
			height = maxSize
		}
		img = resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
	} else if format == "png" || format == "jpeg" {
		return imgData, "image/" + format, nil
	}

	// Waveforms are line art, PNG keeps them sharp
	var buf bytes.Buffer
	if format == "jpeg" {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	} else {
		format = "png"
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode resized image: %w", err)
	}
	return buf.Bytes(), "image/" + format, nil
}

// WriteSoundTags tags an MP3 file: title, artist (uploader), comment (license),
// genre and, when given, the waveform as front cover.
func (t *TagWriter) WriteSoundTags(ctx context.Context, filePath string, snd *sound.Sound, genre string, artwork []byte) error {
	if ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(filePath, ".part"))); ext != ".mp3" {
		return fmt.Errorf("unsupported format: %s", ext)
	}

	tag, err := id3v2.Open(filePath, id3v2.Options{Parse: false})
	if err != nil {
		return fmt.Errorf("failed to open MP3 file for tagging: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(snd.Title)
	tag.SetArtist(snd.Author)
	if genre != "" {
		tag.SetGenre(genre)
	}
	if snd.License != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "license",
			Text:        snd.License,
		})
	}
	if snd.ID != "" {
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: "FREESOUND_ID",
			Value:       snd.ID,
		})
	}

	if len(artwork) > 0 {
		maxSize := 0
		if t.config != nil {
			maxSize = t.config.Get().Download.WaveformSize
		}
		imgData, mimeType, err := resizeImage(artwork, maxSize)
		if err != nil {
			slog.Warn("Skipping waveform artwork", "filePath", filePath, "error", err)
		} else {
			tag.AddAttachedPicture(id3v2.PictureFrame{
				Encoding:    id3v2.EncodingUTF8,
				MimeType:    mimeType,
				PictureType: id3v2.PTFrontCover,
				Description: "waveform",
				Picture:     imgData,
			})
			slog.Debug("Embedded waveform", "filePath", filePath, "size", len(imgData), "type", mimeType)
		}
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save MP3 tags: %w", err)
	}
	slog.Debug("Tagged MP3 file", "filePath", filePath, "title", snd.Title)
	return nil
}
