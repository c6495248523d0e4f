package compass

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Engine.
type Option interface {
	apply(*engineConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	configFile string

	addrs      []string
	password   string
	keyPrefix     string
	sessionTTL    time.Duration
	sessionTTLSet bool

	workers       int
	diversityCap  int
	maxCandidates int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithConfigFile loads weights, proximity tiers, categories and quiz rules
// from a compass YAML configuration file. Built-in tables are used otherwise.
func WithConfigFile(path string) Option {
	return optionFunc(func(c *engineConfig) {
		c.configFile = path
	})
}

// WithValkey stores quiz sessions in a Valkey instance instead of memory.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *engineConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithKeyPrefix sets the key prefix of sessions stored in Valkey.
// Default: "compass:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *engineConfig) {
		c.keyPrefix = prefix
	})
}

// WithSessionTTL sets how long an idle quiz session is kept.
// Default: database.session_ttl_min of the config file, 24h without one.
// Zero keeps sessions forever. Valkey rounds sub-second values up to 1s.
func WithSessionTTL(ttl time.Duration) Option {
	return optionFunc(func(c *engineConfig) {
		c.sessionTTL = ttl
		c.sessionTTLSet = true
	})
}

// WithWorkers sets how many candidates are scored in parallel.
func WithWorkers(n int) Option {
	return optionFunc(func(c *engineConfig) {
		c.workers = n
	})
}

// WithDiversityCap sets the per-category result limit in cold-start mode.
// Default: 3.
func WithDiversityCap(n int) Option {
	return optionFunc(func(c *engineConfig) {
		c.diversityCap = n
	})
}

// WithMaxCandidates sets the largest accepted candidate batch.
// Default: 1000.
func WithMaxCandidates(n int) Option {
	return optionFunc(func(c *engineConfig) {
		c.maxCandidates = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *engineConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *engineConfig) {
		c.metricsReg = reg
	})
}
