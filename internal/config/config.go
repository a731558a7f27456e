package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the provider-finder API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Ranking    RankingConfig    `yaml:"ranking"`
	Search     SearchConfig     `yaml:"search"`
	Storage    StorageConfig    `yaml:"storage"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds directory store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SpecialtyStrictness controls what happens when extraction returns a
// specialty outside the catalog.
type SpecialtyStrictness string

const (
	// StrictnessDowngrade keeps the off-catalog value and forces
	// confidence to low.
	StrictnessDowngrade SpecialtyStrictness = "downgrade"
	// StrictnessStrict retries, then fails the parse.
	StrictnessStrict SpecialtyStrictness = "strict"
)

// ExtractionConfig holds language-model extraction settings.
type ExtractionConfig struct {
	APIKey              string              `yaml:"api_key"`
	BaseURL             string              `yaml:"base_url"`
	Model               string              `yaml:"model"`
	MaxRetries          int                 `yaml:"max_retries"` // extra attempts after the first
	TimeoutSec          int                 `yaml:"timeout_sec"`
	FallbackSpecialty   string              `yaml:"fallback_specialty"`
	SpecialtyStrictness SpecialtyStrictness `yaml:"specialty_strictness"` // downgrade (default) | strict
}

// RankingConfig holds demographic ranking settings.
type RankingConfig struct {
	// NormalizeScores rescales results so the top provider scores
	// exactly 100. Ordering is identical either way.
	NormalizeScores *bool `yaml:"normalize_scores"`
}

// Normalize reports the effective normalization setting (default true).
func (r RankingConfig) Normalize() bool {
	if r.NormalizeScores == nil {
		return true
	}
	return *r.NormalizeScores
}

// SearchConfig holds directory pagination bounds.
type SearchConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MinPageSize     int `yaml:"min_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Load reads configuration from a YAML file by environment name
// (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable,
// defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Extraction.Model == "" {
		c.Extraction.Model = "gpt-4o-mini"
	}
	if c.Extraction.MaxRetries <= 0 {
		c.Extraction.MaxRetries = 2
	}
	if c.Extraction.TimeoutSec <= 0 {
		c.Extraction.TimeoutSec = 30
	}
	if c.Extraction.FallbackSpecialty == "" {
		c.Extraction.FallbackSpecialty = "Family practice"
	}
	if c.Extraction.SpecialtyStrictness == "" {
		c.Extraction.SpecialtyStrictness = StrictnessDowngrade
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 10
	}
	if c.Search.MinPageSize <= 0 {
		c.Search.MinPageSize = 10
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "pf:"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	switch c.Extraction.SpecialtyStrictness {
	case StrictnessDowngrade, StrictnessStrict:
		// ok
	default:
		return fmt.Errorf(
			"extraction.specialty_strictness must be %q or %q, got %q",
			StrictnessDowngrade, StrictnessStrict, c.Extraction.SpecialtyStrictness,
		)
	}
	if c.Search.MinPageSize > c.Search.MaxPageSize {
		return fmt.Errorf(
			"search.min_page_size (%d) must not exceed search.max_page_size (%d)",
			c.Search.MinPageSize, c.Search.MaxPageSize,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment
// variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
