package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Manager holds the application configuration and provides thread-safe access to it.
type Manager struct {
	mu     sync.RWMutex
	config *Config
}

// NewManager creates a new ConfigManager.
func NewManager(config *Config) *Manager {
	return &Manager{config: config}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Update updates the configuration.
func (m *Manager) Update(config *Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldConfig := m.config
	m.config = config

	if oldConfig != nil {
		slog.Debug("Configuration updated",
			"source_dir_changed", oldConfig.Sort.SourceDir != config.Sort.SourceDir,
			"retries_changed", oldConfig.Relocation.Retries != config.Relocation.Retries,
			"server_enabled_changed", oldConfig.Server.Enabled != config.Server.Enabled,
			"journal_enabled_changed", oldConfig.Journal.Enabled != config.Journal.Enabled,
		)
	}
}

// Save writes the current configuration to the specified file path.
func (m *Manager) Save(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create config file", "path", path, "error", err)
		return err
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(m.config); err != nil {
		slog.Error("failed to encode config", "path", path, "error", err)
		return err
	}

	slog.Info("Configuration saved successfully", "path", path)
	return nil
}

// EnsureCategoryDirectories creates the category folders under the source directory.
func (m *Manager) EnsureCategoryDirectories() error {
	cfg := m.Get()
	for _, cat := range cfg.Sort.Categories {
		dir := filepath.Join(cfg.Sort.SourceDir, cat.Folder)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create category directory %s: %w", dir, err)
		}
	}
	slog.Info("Category directories created/verified", "source", cfg.Sort.SourceDir, "count", len(cfg.Sort.Categories))
	return nil
}

// EnsureDownloadDirectory creates the preview output directory if it doesn't exist.
func (m *Manager) EnsureDownloadDirectory() error {
	dir := m.Get().Download.OutputDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create download directory %s: %w", dir, err)
	}
	return nil
}

// redactedCfg gets a redacted copy of the Config
func (m *Manager) redactedCfg() Config {
	var cfgCpy = *m.config
	if cfgCpy.Download.Token != "" {
		cfgCpy.Download.Token = "<redacted>"
	}
	return cfgCpy
}

// GetJSON returns the current configuration as a JSON string.
func (m *Manager) GetJSON() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	jsonBytes, err := json.Marshal(m.redactedCfg())
	if err != nil {
		slog.Error("failed to marshal config to JSON", "error", err)
		return err.Error()
	}
	return string(jsonBytes)
}

func (m *Manager) GetYAML() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	yamlBytes, err := yaml.Marshal(m.redactedCfg())
	if err != nil {
		slog.Error("failed to marshal config to YAML", "error", err)
		return err.Error()
	}
	return string(yamlBytes)
}
