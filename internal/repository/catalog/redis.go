package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/citymood/vibescout/internal/domain"
	domcat "github.com/citymood/vibescout/internal/domain/catalog"
)

// RedisConfig holds connection parameters for a Redis catalog source.
type RedisConfig struct {
	Addrs    []string
	Username string
	Password string
	Key      string
}

// RedisSource reads the catalog document the pipeline deposits under a
// single key. One GET at startup; the engine never talks to Redis at
// query time.
type RedisSource struct {
	client rueidis.Client
	key    string
}

// NewRedisSource creates a Redis-backed catalog source via rueidis.
func NewRedisSource(cfg RedisConfig) (*RedisSource, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}
	if cfg.Key == "" {
		return nil, fmt.Errorf("key is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &RedisSource{client: client, key: cfg.Key}, nil
}

// NewRedisSourceForTest wraps an existing (mock) client.
func NewRedisSourceForTest(client rueidis.Client, key string) *RedisSource {
	return &RedisSource{client: client, key: key}
}

// Load fetches and parses the catalog document.
func (s *RedisSource) Load(ctx context.Context) (domcat.Catalog, error) {
	cmd := s.client.B().Get().Key(s.key).Build()
	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return domcat.Catalog{}, fmt.Errorf("%w: key %q", domain.ErrCatalogNotFound, s.key)
		}
		return domcat.Catalog{}, fmt.Errorf("get catalog key %q: %w", s.key, err)
	}
	cat, err := parseCatalog(data)
	if err != nil {
		return domcat.Catalog{}, fmt.Errorf("catalog key %q: %w", s.key, err)
	}
	return cat, nil
}

// Ping checks connectivity.
func (s *RedisSource) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *RedisSource) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for redis: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Close shuts down the client.
func (s *RedisSource) Close() {
	s.client.Close()
}
