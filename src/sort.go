package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/contre95/soundsort/src/features/config"
	"github.com/contre95/soundsort/src/features/downloading"
	"github.com/contre95/soundsort/src/features/hosting"
	"github.com/contre95/soundsort/src/features/metrics"
	"github.com/contre95/soundsort/src/features/playback"
	"github.com/contre95/soundsort/src/features/sorting"
	"github.com/contre95/soundsort/src/features/ui"
	"github.com/contre95/soundsort/src/infra/database"
	"github.com/contre95/soundsort/src/infra/files"
	"github.com/contre95/soundsort/src/infra/freesound"
	"github.com/contre95/soundsort/src/infra/player"
	"github.com/contre95/soundsort/src/infra/tag"
	"github.com/contre95/soundsort/src/infra/watcher"
)

// runSort wires a sorting session and drives it from the keyboard, the HTTP API or both.
func runSort(ctx context.Context, cfgManager *config.Manager, interactive bool) error {
	cfg := cfgManager.Get()
	if err := cfgManager.EnsureCategoryDirectories(); err != nil {
		return err
	}

	audioPlayer, err := player.NewExecPlayer(cfg.Player.Command)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder()
	relocator := files.NewRelocator(cfg.Relocation.Retries, cfg.Relocation.Backoff,
		files.WithHolder(audioPlayer),
		files.WithObserver(recorder),
	)

	opts := []sorting.Option{sorting.WithObserver(recorder)}
	if cfg.Journal.Enabled {
		journal, err := database.NewSqliteJournal(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer journal.Close()
		opts = append(opts, sorting.WithJournal(journal))
	}

	sortingService := sorting.NewService(cfgManager, files.NewFileOrganizer(cfg.Sort.SourceDir), relocator, audioPlayer, tag.NewTagReader(), opts...)
	if err := sortingService.Start(ctx); err != nil {
		return err
	}
	defer sortingService.Close(context.Background())

	if cfg.Sort.Watch {
		events := make(chan watcher.FileEvent, 64)
		w, err := watcher.NewWatcher(events, watcher.DefaultDebounce)
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		if err := w.Start(ctx, cfg.Sort.SourceDir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", cfg.Sort.SourceDir, err)
		}
		defer w.Stop()
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case ev := <-events:
					sortingService.Add(ctx, ev.Path)
				}
			}
		}()
	}

	if cfg.Server.Enabled || !interactive {
		dl := cfgManager.Get().Download
		downloadingService := downloading.NewService(cfgManager,
			downloading.NewRegistry(freesound.NewClient(dl.BaseURL, dl.Token, nil)),
			tag.NewTagWriter(cfgManager), recorder)
		server := hosting.NewServer(cfgManager, hosting.Services{
			Sorting:     sortingService,
			Playback:    playback.NewService(sortingService),
			Downloading: downloadingService,
			Metrics:     metrics.NewService(recorder),
		})
		go func() {
			if err := server.Start(); err != nil {
				slog.Error("Server stopped", "error", err)
			}
		}()
		defer func() {
			if err := server.Shutdown(); err != nil {
				slog.Error("Failed to shutdown server", "error", err)
			}
		}()
	}

	if interactive {
		return ui.NewTerminal(sortingService, os.Stdout).Run(ctx)
	}

	slog.Info("Sorting session served over HTTP. Press Ctrl+C to shut down.", "port", cfg.Server.Port)
	<-ctx.Done()
	slog.Info("Shutting down")
	return nil
}
