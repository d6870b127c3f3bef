package config

import (
	"time"

	"github.com/contre95/soundsort/src/sound"
)

// Config holds the application configuration.
type Config struct {
	Sort       Sort       `yaml:"sort"`
	Relocation Relocation `yaml:"relocation"`
	Player     Player     `yaml:"player"`
	Download   Download   `yaml:"download"`
	Journal    Journal    `yaml:"journal"`
	Server     Server     `yaml:"server"`
	Logger     Logger     `yaml:"logger"`
}

// Sort holds the configuration of a sorting session.
type Sort struct {
	SourceDir  string           `yaml:"source_dir" validate:"required"`
	Categories sound.Categories `yaml:"categories" validate:"required,min=1,dive"`
	Extensions []string         `yaml:"extensions"` // Empty accepts every file
	Shuffle    bool             `yaml:"shuffle"`
	Watch      bool             `yaml:"watch"` // Append files that show up while sorting
}

// Relocation tunes the move retry loop.
type Relocation struct {
	Retries int           `yaml:"retries" validate:"min=1,max=50"`
	Backoff time.Duration `yaml:"backoff" validate:"min=0"`
}

// Player holds the external audio player command. "{file}" is replaced by the sound path.
type Player struct {
	Command []string `yaml:"command"`
}

// Download holds the configuration for the preview downloader.
type Download struct {
	Token         string `yaml:"token"`
	BaseURL       string `yaml:"base_url" validate:"omitempty,url"`
	Query         string `yaml:"query"`
	PageSize      int    `yaml:"page_size" validate:"min=1,max=150"`
	OutputDir     string `yaml:"output_dir" validate:"required"`
	Preview       string `yaml:"preview" validate:"oneof=lq_mp3 hq_mp3 lq_ogg hq_ogg"`
	TagFiles      bool   `yaml:"tag_files"`
	EmbedWaveform bool   `yaml:"embed_waveform"`
	WaveformSize  int    `yaml:"waveform_size" validate:"min=0,max=2000"`
}

// Journal holds the configuration for the sqlite audit journal.
type Journal struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path" validate:"required_if=Enabled true"`
}

// Server hold the configuration for the Fiber server Config
type Server struct {
	Enabled     bool   `yaml:"enabled"`
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json text logfmt"`
	File   string `yaml:"file"` // Used while the terminal UI owns stdout
}
