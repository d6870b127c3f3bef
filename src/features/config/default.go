package config

import (
	"time"

	"github.com/contre95/soundsort/src/sound"
)

// createDefaultConfig creates a new Config with sensible default values
func createDefaultConfig() *Config {
	return &Config{
		Sort: Sort{
			SourceDir: "./sounds",
			Categories: []sound.Category{
				{Key: "1", Folder: "gunshot"},
				{Key: "2", Folder: "noise"},
				{Key: "3", Folder: "other"},
			},
			Extensions: []string{},
			Shuffle:    true,
			Watch:      false,
		},
		Relocation: Relocation{
			Retries: 6,
			Backoff: 250 * time.Millisecond,
		},
		Player: Player{
			Command: []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", "{file}"},
		},
		Download: Download{
			Token:         "", // Can be obtained at https://freesound.org/apiv2/apply
			BaseURL:       "https://freesound.org/apiv2",
			Query:         "gunshot",
			PageSize:      15,
			OutputDir:     "./freesound_gunshots",
			Preview:       "lq_mp3",
			TagFiles:      true,
			EmbedWaveform: false,
			WaveformSize:  500,
		},
		Journal: Journal{
			Enabled: false,
			Path:    "./soundsort.db",
		},
		Server: Server{
			Enabled:     false,
			PrintRoutes: false,
			Port:        3536,
		},
		Logger: Logger{
			Level:  "info",
			Format: "text",
			File:   "./soundsort.log",
		},
	}
}
