// Package config handles configuration loading and management for GuruAI.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for GuruAI.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Timeouts  TimeoutsConfig  `mapstructure:"timeouts"`
	Session   SessionConfig   `mapstructure:"session"`
	Culture   CultureConfig   `mapstructure:"culture"`
}

// AnthropicConfig holds the model provider settings.
type AnthropicConfig struct {
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	UseAWSBedrock bool   `mapstructure:"use_aws_bedrock"`
	AWSRegion     string `mapstructure:"aws_region"`
	AWSProfile    string `mapstructure:"aws_profile"`
}

// PipelineConfig holds worksheet pipeline tuning knobs.
type PipelineConfig struct {
	// MaxConcurrent bounds the per-grade generation fan-out.
	MaxConcurrent int `mapstructure:"max_concurrent"`
	// RetryAttempts is the transient retry budget per capability call.
	RetryAttempts int `mapstructure:"retry_attempts"`
}

// TimeoutsConfig holds timeout settings.
type TimeoutsConfig struct {
	// Capability bounds a single capability port call.
	Capability time.Duration `mapstructure:"capability"`
}

// SessionConfig holds session store settings.
type SessionConfig struct {
	// DBPath is the SQLite database path. Empty means the XDG default;
	// ":memory:" selects the in-memory store.
	DBPath string `mapstructure:"db_path"`
}

// CultureConfig holds cultural profile settings.
type CultureConfig struct {
	// DataPath optionally replaces the embedded region table.
	DataPath string `mapstructure:"data_path"`
	// DefaultRegion is applied when a request names no region.
	DefaultRegion string `mapstructure:"default_region"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, GURUAI_*)
// 2. Project config (.guruai.yaml in current directory or parent)
// 3. User config (~/.config/guruai/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	// A project-local .env feeds the environment layer before viper reads.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("GURUAI")
	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("anthropic.model", "GURUAI_MODEL")
	v.BindEnv("anthropic.use_aws_bedrock", "GURUAI_USE_AWS_BEDROCK")
	v.BindEnv("anthropic.aws_region", "AWS_REGION")
	v.BindEnv("session.db_path", "GURUAI_SESSION_DB")
	v.BindEnv("culture.default_region", "GURUAI_REGION")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)

	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("anthropic.model", cfg.Anthropic.Model)
	v.Set("anthropic.use_aws_bedrock", cfg.Anthropic.UseAWSBedrock)
	v.Set("anthropic.aws_region", cfg.Anthropic.AWSRegion)
	v.Set("anthropic.aws_profile", cfg.Anthropic.AWSProfile)
	v.Set("pipeline.max_concurrent", cfg.Pipeline.MaxConcurrent)
	v.Set("pipeline.retry_attempts", cfg.Pipeline.RetryAttempts)
	v.Set("timeouts.capability", cfg.Timeouts.Capability.String())
	v.Set("session.db_path", cfg.Session.DBPath)
	v.Set("culture.data_path", cfg.Culture.DataPath)
	v.Set("culture.default_region", cfg.Culture.DefaultRegion)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "")
	v.SetDefault("anthropic.use_aws_bedrock", false)
	v.SetDefault("anthropic.aws_region", "")
	v.SetDefault("anthropic.aws_profile", "")

	v.SetDefault("pipeline.max_concurrent", 3)
	v.SetDefault("pipeline.retry_attempts", 3)

	v.SetDefault("timeouts.capability", "90s")

	v.SetDefault("session.db_path", "")

	v.SetDefault("culture.data_path", "")
	v.SetDefault("culture.default_region", "default_rural")
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			MaxConcurrent: 3,
			RetryAttempts: 3,
		},
		Timeouts: TimeoutsConfig{
			Capability: 90 * time.Second,
		},
		Culture: CultureConfig{
			DefaultRegion: "default_rural",
		},
	}
}

// getUserConfigDir returns the XDG config directory for GuruAI.
func getUserConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "guruai")
	}

	// Fall back to ~/.config/guruai
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "guruai")
	}
	return filepath.Join(home, ".config", "guruai")
}

// findProjectConfig searches for .guruai.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".guruai.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// expandEnv expands ${VAR} references in a string.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}
