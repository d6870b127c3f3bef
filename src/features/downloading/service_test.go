package downloading

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/contre95/soundsort/src/features/config"
	"github.com/contre95/soundsort/src/sound"
)

// MockProvider serves canned search results and bodies
type MockProvider struct {
	sounds    []sound.Sound
	bodies    map[string]string
	searchErr error
	fetched   []string
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Search(ctx context.Context, query string, pageSize int) ([]sound.Sound, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if len(m.sounds) > pageSize {
		return m.sounds[:pageSize], nil
	}
	return m.sounds, nil
}

func (m *MockProvider) Fetch(ctx context.Context, url string, w io.Writer) (int64, error) {
	m.fetched = append(m.fetched, url)
	body, ok := m.bodies[url]
	if !ok {
		return 0, fmt.Errorf("download failed with status 404")
	}
	n, err := io.WriteString(w, body)
	return int64(n), err
}

// MockTagWriter records tagging calls
type MockTagWriter struct {
	paths   []string
	genres  []string
	artwork [][]byte
}

func (m *MockTagWriter) WriteSoundTags(ctx context.Context, filePath string, snd *sound.Sound, genre string, artwork []byte) error {
	m.paths = append(m.paths, filePath)
	m.genres = append(m.genres, genre)
	m.artwork = append(m.artwork, artwork)
	return nil
}

// MockObserver counts outcomes
type MockObserver struct {
	saved, failed int
	bytes         int64
}

func (m *MockObserver) Downloaded(provider string, n int64) { m.saved++; m.bytes += n }
func (m *MockObserver) DownloadFailed(provider string)      { m.failed++ }

func preview(url string) map[sound.PreviewQuality]string {
	return map[sound.PreviewQuality]string{sound.PreviewLQMP3: url}
}

func newDownloadService(t *testing.T, provider *MockProvider, download config.Download) (*Service, *MockTagWriter, *MockObserver) {
	t.Helper()
	if download.OutputDir == "" {
		download.OutputDir = filepath.Join(t.TempDir(), "out")
	}
	if download.Preview == "" {
		download.Preview = string(sound.PreviewLQMP3)
	}
	if download.PageSize == 0 {
		download.PageSize = 15
	}
	if download.Query == "" {
		download.Query = "gunshot"
	}
	cfg := config.NewManager(&config.Config{Download: download})
	tagger := &MockTagWriter{}
	observer := &MockObserver{}
	return NewService(cfg, NewRegistry(provider), tagger, observer), tagger, observer
}

func TestService_RunSavesAndCountsFailures(t *testing.T) {
	provider := &MockProvider{
		sounds: []sound.Sound{
			{ID: "1", Name: "Pistol shot.wav", Previews: preview("u1")},
			{ID: "2", Name: "no preview"},
			{ID: "3", Name: "broken", Previews: preview("missing")},
			{ID: "4", Name: "Rifle", Previews: preview("u4")},
		},
		bodies: map[string]string{"u1": "one", "u4": "four"},
	}
	svc, _, observer := newDownloadService(t, provider, config.Download{})

	var seen []int
	summary, err := svc.Run(context.Background(), Request{Provider: "mock"}, func(r Result) {
		seen = append(seen, r.Index)
		if r.Total != 4 {
			t.Errorf("expected total 4, got %d", r.Total)
		}
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.Saved != 2 || summary.Failed != 2 || summary.Skipped != 0 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if len(seen) != 4 || seen[3] != 4 {
		t.Errorf("expected progress for every sound, got %v", seen)
	}
	if !errors.Is(summary.Results[1].Err, ErrNoPreview) {
		t.Errorf("expected ErrNoPreview, got %v", summary.Results[1].Err)
	}

	out := svc.OutputDir()
	data, err := os.ReadFile(filepath.Join(out, "1_Pistol_shot.mp3"))
	if err != nil || string(data) != "one" {
		t.Errorf("expected saved preview, got %q, %v", data, err)
	}
	entries, _ := os.ReadDir(out)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".part") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
	if observer.saved != 2 || observer.failed != 2 || observer.bytes != int64(len("one")+len("four")) {
		t.Errorf("unexpected observer counts %+v", observer)
	}
}

func TestService_RunSkipsExisting(t *testing.T) {
	provider := &MockProvider{
		sounds: []sound.Sound{{ID: "1", Name: "shot", Previews: preview("u1")}},
		bodies: map[string]string{"u1": "fresh"},
	}
	svc, _, _ := newDownloadService(t, provider, config.Download{})
	if err := os.MkdirAll(svc.OutputDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	existing := filepath.Join(svc.OutputDir(), "1_shot.mp3")
	if err := os.WriteFile(existing, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	summary, err := svc.Run(context.Background(), Request{Provider: "mock"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 1 || summary.Saved != 0 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if data, _ := os.ReadFile(existing); string(data) != "old" {
		t.Error("existing file must be kept")
	}
	if len(provider.fetched) != 0 {
		t.Errorf("expected no downloads, got %v", provider.fetched)
	}
}

func TestService_RunTagsMP3WithWaveform(t *testing.T) {
	provider := &MockProvider{
		sounds: []sound.Sound{{ID: "7", Name: "boom", Previews: preview("u7"), WaveformURL: "w7"}},
		bodies: map[string]string{"u7": "audio", "w7": "png"},
	}
	svc, tagger, _ := newDownloadService(t, provider, config.Download{TagFiles: true, EmbedWaveform: true})

	if _, err := svc.Run(context.Background(), Request{Provider: "mock", Query: "explosion"}, nil); err != nil {
		t.Fatal(err)
	}
	if len(tagger.paths) != 1 || !strings.HasSuffix(tagger.paths[0], ".part") {
		t.Fatalf("expected the temporary file to be tagged, got %v", tagger.paths)
	}
	if tagger.genres[0] != "explosion" || string(tagger.artwork[0]) != "png" {
		t.Errorf("unexpected tag call genre=%q artwork=%q", tagger.genres[0], tagger.artwork[0])
	}
}

func TestService_RunErrors(t *testing.T) {
	provider := &MockProvider{searchErr: errors.New("boom")}
	svc, _, _ := newDownloadService(t, provider, config.Download{})

	if _, err := svc.Run(context.Background(), Request{Provider: "nope"}, nil); !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("expected ErrProviderNotFound, got %v", err)
	}
	if _, err := svc.Run(context.Background(), Request{Provider: "mock"}, nil); err == nil {
		t.Error("expected search error")
	}
}

func TestFileName(t *testing.T) {
	cases := []struct {
		id, name, ext, want string
	}{
		{"101", "Pistol shot.wav", ".mp3", "101_Pistol_shot.mp3"},
		{"5", "a/b c", ".ogg", "5_a_b_c.ogg"},
		{"6", "Café señal", ".mp3", "6_Cafe_senal.mp3"},
		{"7", "  ", ".mp3", "7_sound.mp3"},
		{"", "plain", ".mp3", "plain.mp3"},
	}
	for _, c := range cases {
		if got := FileName(c.id, c.name, c.ext); got != c.want {
			t.Errorf("FileName(%q, %q, %q) = %q, want %q", c.id, c.name, c.ext, got, c.want)
		}
	}
}
