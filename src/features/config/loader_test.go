package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_CreatesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	manager, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}

	cfg := manager.Get()
	if cfg.Relocation.Retries != 6 {
		t.Errorf("expected 6 retries, got %d", cfg.Relocation.Retries)
	}
	if cfg.Relocation.Backoff != 250*time.Millisecond {
		t.Errorf("expected 250ms backoff, got %s", cfg.Relocation.Backoff)
	}
	if len(cfg.Sort.Categories) != 3 {
		t.Errorf("expected 3 default categories, got %d", len(cfg.Sort.Categories))
	}

	// The written default must load back
	again, err := Load(path)
	if err != nil {
		t.Fatalf("expected saved default config to load, got %v", err)
	}
	if again.Get().Relocation.Backoff != 250*time.Millisecond {
		t.Errorf("backoff did not round trip, got %s", again.Get().Relocation.Backoff)
	}
}

func TestLoad_ParsesAndOverridesToken(t *testing.T) {
	t.Setenv("FREESOUND_TOKEN", "from-env")
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
sort:
  source_dir: /tmp/sfx
  categories:
    - key: "1"
      folder: hits
    - key: "2"
      folder: misses
  extensions: [wav]
relocation:
  retries: 3
  backoff: 10ms
download:
  token: from-file
  output_dir: /tmp/out
  page_size: 5
  preview: hq_ogg
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	manager, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cfg := manager.Get()
	if cfg.Sort.SourceDir != "/tmp/sfx" {
		t.Errorf("unexpected source dir %q", cfg.Sort.SourceDir)
	}
	if cfg.Relocation.Retries != 3 || cfg.Relocation.Backoff != 10*time.Millisecond {
		t.Errorf("unexpected relocation config %+v", cfg.Relocation)
	}
	if cfg.Download.Token != "from-env" {
		t.Errorf("expected env token to win, got %q", cfg.Download.Token)
	}
	if cfg.Download.Preview != "hq_ogg" {
		t.Errorf("unexpected preview %q", cfg.Download.Preview)
	}
	// Unset fields keep their defaults
	if cfg.Server.Port != 3536 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"zero retries": `
relocation:
  retries: 0
`,
		"duplicate keys": `
sort:
  categories:
    - key: "1"
      folder: a
    - key: "1"
      folder: b
`,
		"bad preview": `
download:
  preview: flac
`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestManager_RedactsToken(t *testing.T) {
	cfg := createDefaultConfig()
	cfg.Download.Token = "secret"
	manager := NewManager(cfg)

	if strings.Contains(manager.GetYAML(), "secret") {
		t.Error("token leaked in YAML output")
	}
	if strings.Contains(manager.GetJSON(), "secret") {
		t.Error("token leaked in JSON output")
	}
	if manager.Get().Download.Token != "secret" {
		t.Error("redaction must not modify the live config")
	}
}

func TestManager_EnsureCategoryDirectories(t *testing.T) {
	cfg := createDefaultConfig()
	cfg.Sort.SourceDir = t.TempDir()
	manager := NewManager(cfg)

	if err := manager.EnsureCategoryDirectories(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, cat := range cfg.Sort.Categories {
		info, err := os.Stat(filepath.Join(cfg.Sort.SourceDir, cat.Folder))
		if err != nil || !info.IsDir() {
			t.Errorf("expected directory for %s", cat.Folder)
		}
	}
}
