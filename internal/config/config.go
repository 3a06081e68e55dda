// Package config provides configuration management for the rating application.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Rating   RatingConfig   `mapstructure:"rating"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	UI       UIConfig       `mapstructure:"ui"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// RatingConfig holds rating engine configuration. Weights are expressed
// as percentages and must sum to a positive total; zero values fall back
// to the built-in defaults.
type RatingConfig struct {
	ProfitabilityWeight       float64 `mapstructure:"profitability_weight"`
	RiskManagementWeight      float64 `mapstructure:"risk_management_weight"`
	ConsistencyWeight         float64 `mapstructure:"consistency_weight"`
	EmotionalDisciplineWeight float64 `mapstructure:"emotional_discipline_weight"`
	JournalingAdherenceWeight float64 `mapstructure:"journaling_adherence_weight"`
}

// HasCustomWeights reports whether any category weight was configured.
func (r RatingConfig) HasCustomWeights() bool {
	return r.ProfitabilityWeight > 0 || r.RiskManagementWeight > 0 ||
		r.ConsistencyWeight > 0 || r.EmotionalDisciplineWeight > 0 ||
		r.JournalingAdherenceWeight > 0
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Console    bool   `mapstructure:"console"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
	Currency     string `mapstructure:"currency"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/vrating"
	}
	return filepath.Join(home, ".config", "vrating")
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".local/share/vrating"
	}
	return filepath.Join(home, ".local", "share", "vrating")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target *Config) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create template
			return createTemplateConfig(configDir, name)
		}
		return err
	}

	return v.Unmarshal(target)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(DefaultDataDir(), "vrating.db"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")
	v.SetDefault("ui.time_format", "15:04:05")
	v.SetDefault("ui.currency", "$")
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("VRATING_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("VRATING_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("VRATING_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	r := c.Rating
	weights := []float64{
		r.ProfitabilityWeight, r.RiskManagementWeight, r.ConsistencyWeight,
		r.EmotionalDisciplineWeight, r.JournalingAdherenceWeight,
	}
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("rating weights must be non-negative")
		}
	}
	if r.HasCustomWeights() {
		total := 0.0
		for _, w := range weights {
			total += w
		}
		if total <= 0 {
			return fmt.Errorf("rating weights must have a positive total")
		}
	}

	return nil
}
