package vibescout

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

// Option configures the Engine.
type Option interface {
	apply(*engineConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	catalogPath string
	catalogJSON []byte

	redisAddrs    []string
	redisPassword string
	redisKey      string

	scoring *Scoring
	rng     *rand.Rand
	logger  *zap.Logger
}

// WithCatalogFile loads the catalog from a JSON file on disk.
func WithCatalogFile(path string) Option {
	return optionFunc(func(c *engineConfig) {
		c.catalogPath = path
	})
}

// WithCatalogJSON parses the catalog from an in-memory document, for
// callers that embed the catalog in the binary or fetch it themselves.
func WithCatalogJSON(data []byte) Option {
	return optionFunc(func(c *engineConfig) {
		c.catalogJSON = data
	})
}

// WithRedis loads the catalog from a Redis key at construction time.
// key defaults to "vibescout:catalog" when empty.
func WithRedis(addr, password, key string) Option {
	return optionFunc(func(c *engineConfig) {
		c.redisAddrs = []string{addr}
		c.redisPassword = password
		c.redisKey = key
	})
}

// WithScoring overrides the shipped ranking calibration. Zero fields
// keep their defaults.
func WithScoring(s Scoring) Option {
	return optionFunc(func(c *engineConfig) {
		c.scoring = &s
	})
}

// WithRand sets the random source used by surprise sampling and the
// no-preference fallback. Useful for reproducible tests; defaults to a
// time-seeded source.
func WithRand(rng *rand.Rand) Option {
	return optionFunc(func(c *engineConfig) {
		c.rng = rng
	})
}

// WithLogger enables structured logging for engine operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *engineConfig) {
		c.logger = l
	})
}
