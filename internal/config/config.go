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

// Database drivers.
const (
	DriverValkey = "valkey"
	DriverMemory = "memory"
)

// Config holds the compass service configuration.
type Config struct {
	HTTP       HTTPConfig                    `yaml:"http"`
	Database   DatabaseConfig                `yaml:"database"`
	Auth       AuthConfig                    `yaml:"auth"`
	Storage    StorageConfig                 `yaml:"storage"`
	Logging    LoggingConfig                 `yaml:"logging"`
	Scoring    ScoringConfig                 `yaml:"scoring"`
	Quiz       QuizConfig                    `yaml:"quiz"`
	Categories map[string]map[string]float64 `yaml:"categories"` // category -> work value -> weight
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. No keys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
	MaxBodyKB       int `yaml:"max_body_kb"`
}

// DatabaseConfig holds session store settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, memory (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	SessionTTLMin    int      `yaml:"session_ttl_min"`
}

// StorageConfig holds key layout settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// ScoringConfig holds compatibility scoring settings. Weight and tier maps
// are merged over the built-in defaults.
type ScoringConfig struct {
	FullWeights      map[string]float64  `yaml:"full_weights"`
	ColdWeights      map[string]float64  `yaml:"cold_weights"`
	Proximity        map[string]float64  `yaml:"proximity"`
	Qualification    QualificationConfig `yaml:"qualification"`
	WorkValueNeutral *float64            `yaml:"work_value_neutral"`
	CategoryShare    *float64            `yaml:"category_share"`
	DiversityCap     int                 `yaml:"diversity_cap"`
	Workers          int                 `yaml:"workers"`
	MaxCandidates    int                 `yaml:"max_candidates"`
	DefaultMinScore  float64             `yaml:"default_min_score"`
	DefaultBatchSize int                 `yaml:"default_batch_size"`
}

// QualificationConfig holds the per-track qualification step functions.
type QualificationConfig struct {
	Missing *float64              `yaml:"missing"`
	Tracks  map[string][]StepConf `yaml:"tracks"` // track -> steps
}

// StepConf is one threshold of a qualification step function.
type StepConf struct {
	Min   float64 `yaml:"min"`
	Score float64 `yaml:"score"`
}

// QuizConfig holds quiz rules. Zero values fall back to the defaults.
type QuizConfig struct {
	PicksPerPhase int                `yaml:"picks_per_phase"`
	TileXP        int                `yaml:"tile_xp"`
	AnswerXP      int                `yaml:"answer_xp"`
	Level2XP      int                `yaml:"level2_xp"`
	Level3XP      int                `yaml:"level3_xp"`
	Multipliers   map[string]float64 `yaml:"multipliers"` // morning, afternoon, scenario
	CatalogPath   string             `yaml:"catalog_path"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from the given YAML file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, expands ${VAR} references, applies
// defaults and validates the result.
func Parse(data []byte) (Config, error) {
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
	if c.HTTP.MaxBodyKB <= 0 {
		c.HTTP.MaxBodyKB = 1024
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverValkey
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.SessionTTLMin <= 0 {
		c.Database.SessionTTLMin = 24 * 60
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "compass:"
	}
	if c.Scoring.DiversityCap <= 0 {
		c.Scoring.DiversityCap = 3
	}
	if c.Scoring.Workers <= 0 {
		c.Scoring.Workers = 8
	}
	if c.Scoring.MaxCandidates <= 0 {
		c.Scoring.MaxCandidates = 1000
	}
	if c.Scoring.DefaultBatchSize <= 0 {
		c.Scoring.DefaultBatchSize = 20
	}
}

// Validate checks the configuration for correctness. Engine tables
// (weights, tiers, thresholds, categories) are validated by building them.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverValkey:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver %q", DriverValkey)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverValkey, DriverMemory, c.Database.Driver)
	}
	if c.Scoring.DefaultMinScore < 0 || c.Scoring.DefaultMinScore > 1 {
		return fmt.Errorf("scoring.default_min_score must be between 0 and 1, got %v", c.Scoring.DefaultMinScore)
	}
	if c.Scoring.DefaultBatchSize > c.Scoring.MaxCandidates {
		return fmt.Errorf("scoring.default_batch_size %d exceeds scoring.max_candidates %d",
			c.Scoring.DefaultBatchSize, c.Scoring.MaxCandidates)
	}
	if _, err := c.Engine(); err != nil {
		return err
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
