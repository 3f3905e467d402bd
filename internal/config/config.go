// Package config loads the vibescout server configuration from YAML
// files per environment, with ${VAR} expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	matchuc "github.com/citymood/vibescout/internal/usecase/match"
)

// Config holds the vibescout API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Catalog CatalogConfig `yaml:"catalog"`
	Auth    AuthConfig    `yaml:"auth"`
	Scoring ScoringConfig `yaml:"scoring"`
	Logging LoggingConfig `yaml:"logging"`
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

// CatalogConfig holds the catalog source settings. The catalog is
// loaded exactly once, before the server accepts queries.
type CatalogConfig struct {
	Source string `yaml:"source"` // file, redis (default: file)
	Path   string `yaml:"path"`   // file source: path to the catalog JSON

	Addrs            []string `yaml:"addrs"` // redis source
	Password         string   `yaml:"password"`
	Key              string   `yaml:"key"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// ScoringConfig holds optional overrides of the ranking calibration.
// Zero fields keep the shipped default.
type ScoringConfig struct {
	KeywordBoost   float64 `yaml:"keyword_boost"`
	PowerExponent  float64 `yaml:"power_exponent"`
	BaseBandLow    float64 `yaml:"base_band_low"`
	BaseBandHigh   float64 `yaml:"base_band_high"`
	DisplayMin     int     `yaml:"display_min"`
	DisplayMax     int     `yaml:"display_max"`
	NeutralPercent int     `yaml:"neutral_percent"`
}

// ToScoring merges the overrides onto the shipped calibration.
func (s ScoringConfig) ToScoring() matchuc.ScoringConfig {
	cfg := matchuc.DefaultScoring()
	if s.KeywordBoost > 0 {
		cfg.KeywordBoost = s.KeywordBoost
	}
	if s.PowerExponent > 0 {
		cfg.PowerExponent = s.PowerExponent
	}
	if s.BaseBandLow > 0 {
		cfg.BaseBandLow = s.BaseBandLow
	}
	if s.BaseBandHigh > 0 {
		cfg.BaseBandHigh = s.BaseBandHigh
	}
	if s.DisplayMin > 0 {
		cfg.DisplayMin = s.DisplayMin
	}
	if s.DisplayMax > 0 {
		cfg.DisplayMax = s.DisplayMax
	}
	if s.NeutralPercent > 0 {
		cfg.NeutralPercent = s.NeutralPercent
	}
	return cfg
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
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

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
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
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Catalog.Source == "" {
		c.Catalog.Source = "file"
	}
	if c.Catalog.Path == "" {
		c.Catalog.Path = filepath.Join("data", "catalog.json")
	}
	if c.Catalog.Key == "" {
		c.Catalog.Key = "vibescout:catalog"
	}
	if c.Catalog.ReadinessTimeout <= 0 {
		c.Catalog.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Catalog.Source {
	case "file":
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for the file source")
		}
	case "redis":
		if len(c.Catalog.Addrs) == 0 {
			return fmt.Errorf("catalog.addrs is required for the redis source")
		}
	default:
		return fmt.Errorf("catalog.source must be \"file\" or \"redis\", got %q", c.Catalog.Source)
	}
	if c.Scoring.DisplayMin > 0 && c.Scoring.DisplayMax > 0 &&
		c.Scoring.DisplayMin >= c.Scoring.DisplayMax {
		return fmt.Errorf("scoring.display_min must be below scoring.display_max")
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

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
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
