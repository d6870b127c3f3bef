package downloading

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/contre95/soundsort/src/features/config"
	"github.com/contre95/soundsort/src/sound"
)

// DefaultProvider is used when a request names none.
const DefaultProvider = "freesound"

var (
	ErrNoPreview  = errors.New("no preview available")
	ErrEmptyQuery = errors.New("search query is empty")
)

// Request selects what to download. Empty fields fall back to the configuration.
type Request struct {
	Provider string `json:"provider" form:"provider"`
	Query    string `json:"query" form:"query"`
	PageSize int    `json:"page_size" form:"page_size"`
}

// Result is the outcome for a single sound.
type Result struct {
	Index   int           `json:"index"`
	Total   int           `json:"total"`
	Sound   sound.Sound   `json:"sound"`
	Path    string        `json:"path,omitempty"`
	Bytes   int64         `json:"bytes"`
	Skipped bool          `json:"skipped"`
	Err     error         `json:"-"`
	Error   string        `json:"error,omitempty"`
	Took    time.Duration `json:"took"`
}

// Summary is the outcome of a whole run.
type Summary struct {
	Provider string   `json:"provider"`
	Query    string   `json:"query"`
	Saved    int      `json:"saved"`
	Skipped  int      `json:"skipped"`
	Failed   int      `json:"failed"`
	Results  []Result `json:"results"`
}

// Observer is told about every finished download, used for metrics.
type Observer interface {
	Downloaded(provider string, bytes int64)
	DownloadFailed(provider string)
}

// Service downloads previews from a provider into the output folder.
type Service struct {
	configManager *config.Manager
	registry      *Registry
	tagWriter     TagWriter
	observer      Observer
}

// NewService creates a new downloading service. tagWriter and observer may be nil.
func NewService(cfgManager *config.Manager, registry *Registry, tagWriter TagWriter, observer Observer) *Service {
	return &Service{
		configManager: cfgManager,
		registry:      registry,
		tagWriter:     tagWriter,
		observer:      observer,
	}
}

// Run searches the provider and saves every result. Failures of single sounds are
// counted in the summary and never stop the run; progress is called after each sound.
func (s *Service) Run(ctx context.Context, req Request, progress func(Result)) (*Summary, error) {
	cfg := s.configManager.Get().Download
	if req.Provider == "" {
		req.Provider = DefaultProvider
	}
	if strings.TrimSpace(req.Query) == "" {
		req.Query = cfg.Query
	}
	if req.PageSize <= 0 {
		req.PageSize = cfg.PageSize
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}

	provider, err := s.registry.Get(req.Provider)
	if err != nil {
		return nil, err
	}
	if err := s.configManager.EnsureDownloadDirectory(); err != nil {
		return nil, err
	}

	slog.Info("Searching sounds", "provider", provider.Name(), "query", req.Query, "page_size", req.PageSize)
	sounds, err := provider.Search(ctx, req.Query, req.PageSize)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	slog.Info("Search done", "provider", provider.Name(), "results", len(sounds))

	summary := &Summary{Provider: provider.Name(), Query: req.Query, Results: make([]Result, 0, len(sounds))}
	for i := range sounds {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		res := s.download(ctx, provider, cfg, req.Query, sounds[i])
		res.Index = i + 1
		res.Total = len(sounds)

		switch {
		case res.Err != nil:
			summary.Failed++
			res.Error = res.Err.Error()
			slog.Error("Failed to download sound", "id", res.Sound.ID, "name", res.Sound.Name, "error", res.Err)
			if s.observer != nil {
				s.observer.DownloadFailed(provider.Name())
			}
		case res.Skipped:
			summary.Skipped++
			slog.Debug("Sound already downloaded", "path", res.Path)
		default:
			summary.Saved++
			slog.Info("Saved sound", "path", res.Path, "bytes", res.Bytes)
			if s.observer != nil {
				s.observer.Downloaded(provider.Name(), res.Bytes)
			}
		}
		summary.Results = append(summary.Results, res)
		if progress != nil {
			progress(res)
		}
	}

	slog.Info("Download finished", "saved", summary.Saved, "skipped", summary.Skipped, "failed", summary.Failed, "output", cfg.OutputDir)
	return summary, nil
}

func (s *Service) download(ctx context.Context, provider Provider, cfg config.Download, query string, snd sound.Sound) Result {
	start := time.Now()
	res := Result{Sound: snd}

	quality := sound.PreviewQuality(cfg.Preview)
	link, ok := snd.Previews[quality]
	if !ok || link == "" {
		res.Err = fmt.Errorf("%w: %s", ErrNoPreview, quality)
		return res
	}

	final := filepath.Join(cfg.OutputDir, FileName(snd.ID, snd.Name, quality.Ext()))
	res.Path = final
	if _, err := os.Stat(final); err == nil {
		res.Skipped = true
		return res
	}

	part := final + ".part"
	n, err := s.fetchTo(ctx, provider, link, part)
	if err != nil {
		os.Remove(part)
		res.Err = err
		return res
	}
	res.Bytes = n

	if cfg.TagFiles && s.tagWriter != nil && quality.Ext() == ".mp3" {
		snd.Path = final
		snd.Format = strings.TrimPrefix(quality.Ext(), ".")
		var artwork []byte
		if cfg.EmbedWaveform && snd.WaveformURL != "" {
			var buf bytes.Buffer
			if _, err := provider.Fetch(ctx, snd.WaveformURL, &buf); err != nil {
				slog.Warn("Failed to fetch waveform", "id", snd.ID, "error", err)
			} else {
				artwork = buf.Bytes()
			}
		}
		if err := s.tagWriter.WriteSoundTags(ctx, part, &snd, query, artwork); err != nil {
			slog.Warn("Failed to tag sound, keeping it untagged", "id", snd.ID, "error", err)
		}
	}

	if err := os.Rename(part, final); err != nil {
		os.Remove(part)
		res.Err = fmt.Errorf("failed to finalize %s: %w", filepath.Base(final), err)
		return res
	}
	res.Sound.Path = final
	res.Took = time.Since(start)
	return res
}

func (s *Service) fetchTo(ctx context.Context, provider Provider, link, path string) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	n, err := provider.Fetch(ctx, link, f)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, cerr)
	}
	return n, err
}

// OutputDir returns where previews are saved.
func (s *Service) OutputDir() string {
	return s.configManager.Get().Download.OutputDir
}

// Providers lists the registered provider names.
func (s *Service) Providers() []string {
	return s.registry.Names()
}
