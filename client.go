// Package vibescout recommends venues by semantic mood matching: liked
// and avoided vibe tags become a preference vector that is scored
// against precomputed venue embeddings, entirely in-process.
package vibescout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	domcat "github.com/citymood/vibescout/internal/domain/catalog"
	"github.com/citymood/vibescout/internal/domain/query"
	"github.com/citymood/vibescout/internal/logger"
	catalogrepo "github.com/citymood/vibescout/internal/repository/catalog"
	healthuc "github.com/citymood/vibescout/internal/usecase/health"
	matchuc "github.com/citymood/vibescout/internal/usecase/match"
)

const (
	defaultRedisKey         = "vibescout:catalog"
	defaultReadinessTimeout = 10 * time.Second
)

// Engine is the vibescout entry point. The catalog is loaded exactly
// once at construction; a built Engine is immutable and safe for
// concurrent use.
type Engine struct {
	svc    *matchuc.Service
	health *healthuc.Service
	logger *zap.Logger
	closer func()
}

// New creates an Engine and loads the catalog from the configured
// source (use WithCatalogFile or WithRedis).
func New(opts ...Option) (*Engine, error) {
	cfg := &engineConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	log := cfg.logger
	if log == nil {
		log = zap.NewNop()
	}

	source, closer, err := createSource(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	cat, err := source.Load(ctx)
	if err != nil {
		if closer != nil {
			closer()
		}
		return nil, fmt.Errorf("vibescout: load catalog: %w", err)
	}
	log.Info("catalog loaded",
		zap.Int("venues", cat.Len()),
		zap.Int("tags", cat.TagCount()),
		zap.Int("dimensions", cat.Dimensions()))

	scoring := matchuc.DefaultScoring()
	if cfg.scoring != nil {
		scoring = cfg.scoring.toInternal()
	}

	var pinger healthuc.SourcePinger
	if p, ok := source.(healthuc.SourcePinger); ok {
		pinger = p
	}

	return &Engine{
		svc:    matchuc.New(cat, scoring, cfg.rng),
		health: healthuc.New(catalogInfo{cat}, pinger),
		logger: log,
		closer: closer,
	}, nil
}

func createSource(cfg *engineConfig) (catalogrepo.Source, func(), error) {
	configured := 0
	for _, set := range []bool{cfg.catalogPath != "", cfg.catalogJSON != nil, len(cfg.redisAddrs) > 0} {
		if set {
			configured++
		}
	}
	if configured > 1 {
		return nil, nil, errors.New("vibescout: configure exactly one catalog source")
	}

	switch {
	case cfg.catalogPath != "":
		return catalogrepo.NewFileSource(cfg.catalogPath), nil, nil
	case cfg.catalogJSON != nil:
		return catalogrepo.NewBytesSource(cfg.catalogJSON), nil, nil
	case len(cfg.redisAddrs) > 0:
		key := cfg.redisKey
		if key == "" {
			key = defaultRedisKey
		}
		src, err := catalogrepo.NewRedisSource(catalogrepo.RedisConfig{
			Addrs:    cfg.redisAddrs,
			Password: cfg.redisPassword,
			Key:      key,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("vibescout: create redis source: %w", err)
		}
		if err := src.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
			src.Close()
			return nil, nil, fmt.Errorf("vibescout: redis not ready: %w", err)
		}
		return src, src.Close, nil
	default:
		return nil, nil, errors.New("vibescout: catalog source required (use WithCatalogFile, WithCatalogJSON or WithRedis)")
	}
}

// catalogInfo adapts the immutable catalog to the health service.
type catalogInfo struct {
	cat domcat.Catalog
}

func (c catalogInfo) Len() int      { return c.cat.Len() }
func (c catalogInfo) TagCount() int { return c.cat.TagCount() }

// Close releases the catalog source. The engine itself holds no other
// resources.
func (e *Engine) Close() {
	if e.closer != nil {
		e.closer()
	}
}

// FindMatches runs the full recommendation pipeline for one request.
func (e *Engine) FindMatches(ctx context.Context, req MatchRequest) (MatchResponse, error) {
	q, err := query.New(query.Intent(req.Intent), req.DiscoveryLevel,
		query.Budget(req.Budget), req.LikedTags, req.AvoidedTags)
	if err != nil {
		return MatchResponse{}, fmt.Errorf("find matches: %w", err)
	}
	opts, err := query.NewOptions(req.MinPercent, req.MaxResults)
	if err != nil {
		return MatchResponse{}, fmt.Errorf("find matches: %w", err)
	}

	ranking, err := e.svc.FindMatches(logger.ContextWithLogger(ctx, e.logger), q, opts)
	if err != nil {
		return MatchResponse{}, fmt.Errorf("find matches: %w", err)
	}

	return MatchResponse{
		Matches:     matchesFromResults(ranking.Results()),
		UnknownTags: ranking.UnknownTags(),
	}, nil
}

// SurpriseMe draws a random, diversity-constrained sample of venues.
func (e *Engine) SurpriseMe(ctx context.Context, req SurpriseRequest) ([]Match, error) {
	q, err := query.New(query.Intent(req.Intent), req.DiscoveryLevel,
		query.Budget(req.Budget), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("surprise me: %w", err)
	}

	results, err := e.svc.SurpriseMe(logger.ContextWithLogger(ctx, e.logger), req.Count, q)
	if err != nil {
		return nil, fmt.Errorf("surprise me: %w", err)
	}
	return matchesFromResults(results), nil
}

// TagLabels returns the embedding vocabulary the catalog ships with,
// sorted.
func (e *Engine) TagLabels() []string {
	cat := e.svc.Catalog()
	return cat.TagLabels()
}

// Ready reports whether the engine can serve: the catalog is loaded
// and, when the catalog came from Redis, the connection is alive.
func (e *Engine) Ready(ctx context.Context) error {
	report := e.health.Check(ctx)
	if report.Status != healthuc.Healthy {
		return fmt.Errorf("vibescout: not ready: %v", report.Checks)
	}
	return nil
}
