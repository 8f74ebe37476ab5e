/*
Package config manages the TOML config for glyphref builds.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/glyphref/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Mapping MappingConfig `toml:"mapping"`
	RefSet  RefSetConfig  `toml:"refset"`
	Split   SplitConfig   `toml:"split"`
	Output  OutputConfig  `toml:"output"`
}

// MappingConfig has content/reference mapping options.
// Ranking scores direct components only, so MaxDepth does not change the
// built mapping; it bounds the coverage shown by the inspect command.
type MappingConfig struct {
	TopK        int    `toml:"top_k"`
	MaxDepth    int    `toml:"max_depth"` // inspect coverage depth
	Workers     int    `toml:"workers"`
	SkipMissing bool   `toml:"skip_missing"`
	Format      string `toml:"format"`
}

// RefSetConfig holds greedy reference set options.
type RefSetConfig struct {
	MaxCount int `toml:"max_count"`
	MaxDepth int `toml:"max_depth"`
}

// SplitConfig holds train/valid split options.
type SplitConfig struct {
	Seed       int     `toml:"seed"`
	TrainRatio float64 `toml:"train_ratio"`
}

// OutputConfig holds artifact locations.
type OutputConfig struct {
	Dir string `toml:"dir"`
}

// GetConfigDir returns the first writable config directory of:
// 1. $XDG_CONFIG_HOME/glyphref
// 2. ~/.config/glyphref
// 3. .glyphref in the working directory, next to the generated artifacts
func GetConfigDir() (string, error) {
	var candidates []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, "glyphref"))
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(homeDir, ".config", "glyphref"))
	} else {
		log.Warnf("Failed to get home directory: %v", err)
	}
	for _, dir := range candidates {
		if result := utils.CheckDirStatus(dir); result.Writable {
			return dir, nil
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		log.Errorf("Failed to get working directory: %v", err)
		return "", err
	}
	return filepath.Join(wd, ".glyphref"), nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/glyphref/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Mapping: MappingConfig{
			TopK:        3,
			MaxDepth:    1,
			Workers:     4,
			SkipMissing: false,
			Format:      "json",
		},
		RefSet: RefSetConfig{
			MaxCount: 18,
			MaxDepth: 1,
		},
		Split: SplitConfig{
			Seed:       42,
			TrainRatio: 0.8,
		},
		Output: OutputConfig{
			Dir: ".",
		},
	}
}

// Validate reports values no build can run with.
func (c *Config) Validate() error {
	switch {
	case c.Mapping.TopK < 1:
		return fmt.Errorf("config: mapping.top_k must be >= 1, got %d", c.Mapping.TopK)
	case c.Mapping.Workers < 1:
		return fmt.Errorf("config: mapping.workers must be >= 1, got %d", c.Mapping.Workers)
	case c.RefSet.MaxCount < 0:
		return fmt.Errorf("config: refset.max_count must be >= 0, got %d", c.RefSet.MaxCount)
	case !(c.Split.TrainRatio >= 0 && c.Split.TrainRatio <= 1):
		return fmt.Errorf("config: split.train_ratio must be within [0, 1], got %g", c.Split.TrainRatio)
	}
	return nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps whatever sections of a broken TOML file still decode
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "mapping"); ok {
		extractMappingConfig(section, &config.Mapping)
	}
	if section, ok := utils.ExtractSection(tempConfig, "refset"); ok {
		extractRefSetConfig(section, &config.RefSet)
	}
	if section, ok := utils.ExtractSection(tempConfig, "split"); ok {
		extractSplitConfig(section, &config.Split)
	}
	if section, ok := utils.ExtractSection(tempConfig, "output"); ok {
		if val, ok := utils.ExtractString(section, "dir"); ok {
			config.Output.Dir = val
		}
	}
	return config, nil
}

func extractMappingConfig(data map[string]any, m *MappingConfig) {
	if val, ok := utils.ExtractInt64(data, "top_k"); ok {
		m.TopK = val
	}
	if val, ok := utils.ExtractInt64(data, "max_depth"); ok {
		m.MaxDepth = val
	}
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		m.Workers = val
	}
	if val, ok := utils.ExtractBool(data, "skip_missing"); ok {
		m.SkipMissing = val
	}
	if val, ok := utils.ExtractString(data, "format"); ok {
		m.Format = val
	}
}

func extractRefSetConfig(data map[string]any, r *RefSetConfig) {
	if val, ok := utils.ExtractInt64(data, "max_count"); ok {
		r.MaxCount = val
	}
	if val, ok := utils.ExtractInt64(data, "max_depth"); ok {
		r.MaxDepth = val
	}
}

func extractSplitConfig(data map[string]any, s *SplitConfig) {
	if val, ok := utils.ExtractInt64(data, "seed"); ok {
		s.Seed = val
	}
	if val, ok := utils.ExtractFloat(data, "train_ratio"); ok {
		s.TrainRatio = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
