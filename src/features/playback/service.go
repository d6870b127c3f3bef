package playback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// MaxStreamSize caps what is served; sound effects are small.
const MaxStreamSize = 64 << 20

var (
	ErrNothingLoaded = errors.New("no sound loaded")
	ErrTooLarge      = errors.New("sound is too large to stream")
)

// CurrentProvider tells which file the sorting session has loaded.
type CurrentProvider interface {
	CurrentPath() (string, bool)
}

// Service serves the loaded sound to HTTP clients.
type Service struct {
	current CurrentProvider
}

// NewService creates a new playback service
func NewService(current CurrentProvider) *Service {
	return &Service{current: current}
}

// Stream is a loaded sound ready to be sent.
type Stream struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Name        string
}

// GetCurrent reads the loaded sound into memory. The file is closed before
// returning so an open stream never holds up a move.
func (s *Service) GetCurrent(ctx context.Context) (*Stream, error) {
	path, ok := s.current.CurrentPath()
	if !ok {
		return nil, ErrNothingLoaded
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if info.Size() > MaxStreamSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, info.Size())
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxStreamSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read sound: %w", err)
	}
	slog.Debug("Streaming current sound", "path", path, "size", len(data))

	return &Stream{
		Reader:      bytes.NewReader(data),
		Size:        int64(len(data)),
		ContentType: contentType(path),
		Name:        filepath.Base(path),
	}, nil
}

func contentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3":
		return "audio/mpeg"
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
