package hosting

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/contre95/soundsort/src/features/config"
	"github.com/contre95/soundsort/src/features/metrics"
	"github.com/contre95/soundsort/src/features/playback"
	"github.com/contre95/soundsort/src/features/sorting"
	"github.com/contre95/soundsort/src/infra/files"
	"github.com/contre95/soundsort/src/sound"
)

type silentPlayer struct{}

func (silentPlayer) Play(string) error          { return nil }
func (silentPlayer) Stop()                      {}
func (silentPlayer) TogglePause() (bool, error) { return true, nil }
func (silentPlayer) Busy() bool                 { return false }
func (silentPlayer) Release() error             { return nil }

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"a.wav", "b.wav"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := config.NewManager(&config.Config{
		Sort: config.Sort{
			SourceDir:  dir,
			Categories: sound.Categories{{Key: "1", Folder: "gunshot"}},
		},
	})
	recorder := metrics.NewRecorder()
	relocator := files.NewRelocator(2, 0, files.WithSleep(func(time.Duration) {}), files.WithObserver(recorder))
	sortSvc := sorting.NewService(cfg, files.NewFileOrganizer(dir), relocator, silentPlayer{}, nil, sorting.WithObserver(recorder))
	if err := sortSvc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	srv := NewServer(cfg, Services{
		Sorting:  sortSvc,
		Playback: playback.NewService(sortSvc),
		Metrics:  metrics.NewService(recorder),
	})
	return srv, dir
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := srv.App().Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 || string(body) != "OK" {
		t.Errorf("unexpected health response %d %q", resp.StatusCode, body)
	}
}

func TestServer_SortingFlow(t *testing.T) {
	srv, dir := newTestServer(t)
	app := srv.App()

	resp, err := app.Test(httptest.NewRequest("POST", "/session/categorize/1", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if _, err := os.Stat(filepath.Join(dir, "gunshot", "a.wav")); err != nil {
		t.Errorf("expected a.wav to be moved: %v", err)
	}

	resp, err = app.Test(httptest.NewRequest("POST", "/session/categorize/9", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("expected 404 for unknown category, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("POST", "/session/undo", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200 on undo, got %d", resp.StatusCode)
	}
	resp, err = app.Test(httptest.NewRequest("POST", "/session/undo", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 204 {
		t.Errorf("expected 204 with nothing to undo, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/session/", nil))
	if err != nil {
		t.Fatal(err)
	}
	var status struct {
		Remaining int    `json:"remaining"`
		Progress  string `json:"progress"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatal(err)
	}
	if status.Remaining != 2 || status.Progress != "0 of 2 processed | 2 left" {
		t.Errorf("unexpected session %+v", status)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/playback/current", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "a.wav" {
		t.Errorf("expected restored a.wav to stream, got %q", body)
	}
}
