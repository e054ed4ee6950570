// Package config provides persisted settings for the timescipher CLI
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/caarlos0/env/v11"
)

const (
	defaultGridSize = 12
	defaultSeed     = 1
)

// Config represents the main configuration structure
type Config struct {
	Version  string          `json:"version"`
	Defaults DefaultSettings `json:"defaults"`
	Session  SessionState    `json:"session"`
	UI       UIConfig        `json:"ui"`
	Storage  StorageConfig   `json:"storage"`
}

// DefaultSettings holds the cipher parameters
type DefaultSettings struct {
	GridSize int   `json:"grid_size"` // Default: 12, valid 8-20
	Seed     int32 `json:"seed"`      // Default: 1
}

// SessionState is the last text the user worked on, stored verbatim
type SessionState struct {
	Input string `json:"input"`
	Mode  string `json:"mode"` // encode or decode
}

// UIConfig contains user interface settings
type UIConfig struct {
	UseColor     bool `json:"use_color"`
	FactsPerLine int  `json:"facts_per_line"` // Worksheet columns, 0 for one line
}

// StorageConfig contains answer-key settings
type StorageConfig struct {
	KeyDir              string `json:"key_dir"`
	MinPassphraseLength int    `json:"min_passphrase_length"`
}

// Preset is a named grid size and seed, e.g. one per classroom
type Preset struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	GridSize    int    `json:"grid_size"`
	Seed        int32  `json:"seed"`
}

// EnvOverrides are applied on top of the file without being saved
type EnvOverrides struct {
	GridSize *int   `env:"TIMESCIPHER_GRID_SIZE"`
	Seed     *int32 `env:"TIMESCIPHER_SEED"`
	NoColor  string `env:"NO_COLOR"`
}

// ConfigManager manages configuration loading and saving
type ConfigManager struct {
	config     *Config
	configPath string
	presets    map[string]*Preset
}

// NewConfigManager creates a configuration manager at the default path
func NewConfigManager() (*ConfigManager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewConfigManagerAt(configPath)
}

// NewConfigManagerAt creates a configuration manager for configPath,
// writing defaults when the file does not exist yet
func NewConfigManagerAt(configPath string) (*ConfigManager, error) {
	cm := &ConfigManager{
		configPath: configPath,
		presets:    make(map[string]*Preset),
	}

	if err := cm.LoadConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cm.config = DefaultConfig()
		if err := cm.SaveConfig(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	// Presets are optional
	if err := cm.LoadPresets(); err != nil {
		cm.presets = make(map[string]*Preset)
	}

	return cm, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			GridSize: defaultGridSize,
			Seed:     defaultSeed,
		},
		Session: SessionState{
			Mode: "encode",
		},
		UI: UIConfig{
			UseColor:     true,
			FactsPerLine: 8,
		},
		Storage: StorageConfig{
			KeyDir:              "",
			MinPassphraseLength: 8,
		},
	}
}

// Path returns the configuration file path
func (cm *ConfigManager) Path() string {
	return cm.configPath
}

// LoadConfig loads the configuration from disk
func (cm *ConfigManager) LoadConfig() error {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	cm.config = config
	return nil
}

// SaveConfig saves the configuration to disk
func (cm *ConfigManager) SaveConfig() error {
	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig updates the configuration
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

// Reset restores and saves the default configuration
func (cm *ConfigManager) Reset() error {
	cm.config = DefaultConfig()
	return cm.SaveConfig()
}

// Effective returns a copy of the configuration with environment
// overrides applied
func (cm *ConfigManager) Effective() (*Config, error) {
	var overrides EnvOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	effective := *cm.config
	if overrides.GridSize != nil {
		effective.Defaults.GridSize = *overrides.GridSize
	}
	if overrides.Seed != nil {
		effective.Defaults.Seed = *overrides.Seed
	}
	if overrides.NoColor != "" {
		effective.UI.UseColor = false
	}
	return &effective, nil
}

func (cm *ConfigManager) presetsPath() string {
	return filepath.Join(filepath.Dir(cm.configPath), "presets.json")
}

// LoadPresets loads saved presets
func (cm *ConfigManager) LoadPresets() error {
	data, err := os.ReadFile(cm.presetsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	presets := make(map[string]*Preset)
	if err := json.Unmarshal(data, &presets); err != nil {
		return fmt.Errorf("failed to parse presets: %w", err)
	}

	cm.presets = presets
	return nil
}

// SavePresets saves presets to disk
func (cm *ConfigManager) SavePresets() error {
	data, err := json.MarshalIndent(cm.presets, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}

	if err := os.WriteFile(cm.presetsPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write presets: %w", err)
	}

	return nil
}

// AddPreset adds or replaces a preset
func (cm *ConfigManager) AddPreset(preset *Preset) error {
	if preset.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}

	cm.presets[preset.Name] = preset
	return cm.SavePresets()
}

// GetPreset retrieves a preset by name
func (cm *ConfigManager) GetPreset(name string) (*Preset, error) {
	preset, exists := cm.presets[name]
	if !exists {
		return nil, fmt.Errorf("preset '%s' not found", name)
	}
	return preset, nil
}

// ListPresets returns all presets sorted by name
func (cm *ConfigManager) ListPresets() []*Preset {
	presets := make([]*Preset, 0, len(cm.presets))
	for _, preset := range cm.presets {
		presets = append(presets, preset)
	}
	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Name < presets[j].Name
	})
	return presets
}

// DeletePreset removes a preset
func (cm *ConfigManager) DeletePreset(name string) error {
	if _, exists := cm.presets[name]; !exists {
		return fmt.Errorf("preset '%s' not found", name)
	}

	delete(cm.presets, name)
	return cm.SavePresets()
}

// ApplyPreset copies a preset's settings into the configuration and saves it
func (cm *ConfigManager) ApplyPreset(name string) error {
	preset, err := cm.GetPreset(name)
	if err != nil {
		return err
	}

	cm.config.Defaults.GridSize = preset.GridSize
	cm.config.Defaults.Seed = preset.Seed
	return cm.SaveConfig()
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	if customPath := os.Getenv("TIMESCIPHER_CONFIG"); customPath != "" {
		return customPath, nil
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "timescipher", "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "timescipher", "config.json"), nil
}
