package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/contre95/soundsort/src/features/config"
	"github.com/contre95/soundsort/src/features/downloading"
	"github.com/contre95/soundsort/src/infra/freesound"
	"github.com/contre95/soundsort/src/infra/tag"
	"github.com/schollz/progressbar/v3"
)

// runFetch downloads one page of search results with a progress bar.
func runFetch(ctx context.Context, cfgManager *config.Manager, args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	query := fs.String("query", "", "search query (default download.query)")
	limit := fs.Int("limit", 0, "number of results (default download.page_size)")
	provider := fs.String("provider", downloading.DefaultProvider, "provider to download from")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := cfgManager.Get().Download
	registry := downloading.NewRegistry(freesound.NewClient(cfg.BaseURL, cfg.Token, nil))
	service := downloading.NewService(cfgManager, registry, tag.NewTagWriter(cfgManager), nil)

	var bar *progressbar.ProgressBar
	summary, err := service.Run(ctx, downloading.Request{Provider: *provider, Query: *query, PageSize: *limit}, func(res downloading.Result) {
		if bar == nil {
			bar = progressbar.NewOptions(res.Total,
				progressbar.OptionSetDescription("Downloading previews"),
				progressbar.OptionSetItsString("sound"),
				progressbar.OptionShowIts(),
				progressbar.OptionShowCount(),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "=",
					SaucerHead:    ">",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
			)
		}
		bar.Add(1)
	})
	if bar != nil {
		bar.Finish()
		fmt.Println()
	}
	if err != nil {
		return err
	}

	fmt.Printf("Saved %d, skipped %d, failed %d into %s\n", summary.Saved, summary.Skipped, summary.Failed, service.OutputDir())
	for _, res := range summary.Results {
		if res.Err != nil {
			fmt.Printf("  failed %s (%s): %v\n", res.Sound.ID, res.Sound.Name, res.Err)
		}
	}
	return nil
}
