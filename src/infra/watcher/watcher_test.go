package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_EmitsSettledFiles(t *testing.T) {
	dir := t.TempDir()
	events := make(chan FileEvent, 10)
	w, err := NewWatcher(events, 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx, dir); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	for _, name := range []string{".hidden.wav", "pending.mp3.part", "shot.wav"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "gunshot"), 0o755); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		if ev.Path != filepath.Join(dir, "shot.wav") || ev.EventType != FileCreated {
			t.Errorf("unexpected event %+v", ev)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	select {
	case ev := <-events:
		t.Errorf("expected a single event, got another %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestIgnored(t *testing.T) {
	cases := map[string]bool{
		"/a/.DS_Store":   true,
		"/a/x.mp3.part":  true,
		"/a/shot.wav":    false,
		"/a/.part/a.wav": false,
	}
	for path, want := range cases {
		if got := ignored(path); got != want {
			t.Errorf("ignored(%q) = %v, want %v", path, got, want)
		}
	}
}
