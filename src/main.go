package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/contre95/soundsort/src/features/config"
	"github.com/contre95/soundsort/src/features/logging"
)

const usage = `Usage: soundsort [-config config.yaml] <command> [flags]

Commands:
  sort    listen to every sound in sort.source_dir and file it with a key press (default)
  serve   run the sorting session behind the HTTP API only
  fetch   download previews from Freesound into download.output_dir
`

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	cfgManager, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := "sort"
	args := flag.Args()
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	if err := run(ctx, cfgManager, command, args); err != nil {
		slog.Error("Command failed", "command", command, "error", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", command, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgManager *config.Manager, command string, args []string) error {
	switch command {
	case "sort":
		// The terminal belongs to the keyboard loop, logs go to a file
		logger, closer := logging.SetupFileLogger(cfgManager)
		slog.SetDefault(logger)
		defer closer.Close()
		return runSort(ctx, cfgManager, true)
	case "serve":
		slog.SetDefault(logging.SetupLogger(cfgManager))
		return runSort(ctx, cfgManager, false)
	case "fetch":
		slog.SetDefault(logging.SetupLogger(cfgManager))
		return runFetch(ctx, cfgManager, args)
	default:
		flag.Usage()
		os.Exit(2)
	}
	return nil
}
