package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Manager handles game configuration loading and caching.
type Manager struct {
	configDir     string
	defaultConfig *GameConfig
	configs       map[string]*GameConfig
	mu            sync.RWMutex
}

// NewManager creates a configuration manager rooted at configDir.
func NewManager(configDir string) (*Manager, error) {
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*GameConfig),
	}
	m.loadDefaultConfig()
	return m, nil
}

// LoadConfig loads a configuration by name, consulting the cache first.
func (m *Manager) LoadConfig(name string) (*GameConfig, error) {
	m.mu.RLock()
	if config, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the write lock.
	if config, exists := m.configs[name]; exists {
		return config, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}
	configPath := filepath.Join(m.configDir, filename)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	m.configs[name] = &config
	return &config, nil
}

// ListConfigs returns information about all loadable configurations.
func (m *Manager) ListConfigs() ([]*ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*ConfigInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		config, err := m.LoadConfig(name)
		if err != nil {
			// Skip invalid configs rather than failing the whole listing.
			continue
		}

		configs = append(configs, &ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			Language:    config.Language,
			WordCount:   len(config.Words),
			MaxRounds:   config.MaxRounds,
			TurnSeconds: config.TurnSeconds,
		})
	}
	return configs, nil
}

// GetDefault returns the default configuration.
func (m *Manager) GetDefault() *GameConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// SetDefault sets the default configuration by name.
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	return nil
}

// SaveConfig validates and writes a configuration to disk.
func (m *Manager) SaveConfig(name string, config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}
	configPath := filepath.Join(m.configDir, filename)

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[strings.TrimSuffix(filename, ".json")] = config
	m.mu.Unlock()
	return nil
}

// loadDefaultConfig prefers classic.json, then the first loadable config,
// then the built-in word list.
func (m *Manager) loadDefaultConfig() {
	if config, err := m.LoadConfig("classic"); err == nil {
		m.mu.Lock()
		m.defaultConfig = config
		m.mu.Unlock()
		return
	}

	if configs, err := m.ListConfigs(); err == nil && len(configs) > 0 {
		if config, err := m.LoadConfig(configs[0].ConfigID); err == nil {
			m.mu.Lock()
			m.defaultConfig = config
			m.mu.Unlock()
			return
		}
	}

	m.mu.Lock()
	m.defaultConfig = builtinDefault()
	m.mu.Unlock()
}
