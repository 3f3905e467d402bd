// Package match implements the recommendation engine: categorical
// filtering, preference vector construction, hybrid scoring, and the
// diversity sampler, behind a single facade service.
package match

import (
	"context"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/citymood/vibescout/internal/domain/catalog"
	"github.com/citymood/vibescout/internal/domain/match"
	"github.com/citymood/vibescout/internal/domain/query"
	"github.com/citymood/vibescout/internal/domain/venue"
)

// Service ranks the catalog against per-request preferences. The
// catalog is read-only after construction, so a single Service is safe
// for concurrent callers; the injected rand source is only touched by
// the shuffle paths.
type Service struct {
	cat catalog.Catalog
	cfg ScoringConfig
	rng *rand.Rand
}

// New creates the engine facade. A zero ScoringConfig selects the
// shipped calibration; a nil rng gets a time-seeded source.
func New(cat catalog.Catalog, cfg ScoringConfig, rng *rand.Rand) *Service {
	if cfg == (ScoringConfig{}) {
		cfg = DefaultScoring()
	}
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>32))
	}
	return &Service{cat: cat, cfg: cfg, rng: rng}
}

// Catalog returns the catalog the engine was built with.
func (s *Service) Catalog() catalog.Catalog { return s.cat }

// Scoring returns the active calibration.
func (s *Service) Scoring() ScoringConfig { return s.cfg }

// FindMatches runs the full pipeline: filter, build the preference
// vector, score, normalize, sort, truncate. Deterministic for a given
// query whenever at least one liked tag resolves; only the no-tags
// fallback shuffles.
func (s *Service) FindMatches(
	ctx context.Context, q query.Query, opts query.Options,
) (match.Ranking, error) {
	candidates := applyFilters(s.cat.Venues(), &q)

	queryVec, unknown, ok := s.buildPreference(ctx, q.LikedTags(), q.AvoidedTags())
	if !ok {
		// No semantic query possible. Avoid-exclusion still applies;
		// it is a hard filter, not a scoring concern.
		return match.NewRanking(s.neutralShuffle(candidates, q.AvoidedTags(), &opts), unknown), nil
	}

	scoredSet, maxBoosted := s.scoreCandidates(ctx, candidates, queryVec, q.LikedTags(), q.AvoidedTags())
	results := s.rank(scoredSet, maxBoosted)

	return match.NewRanking(s.postFilter(results, &opts), unknown), nil
}

// rank assigns display percentages, sorts descending, and applies the
// quality tie-break.
func (s *Service) rank(scoredSet []scored, maxBoosted float64) []match.Result {
	type ranked struct {
		sc      scored
		percent int
	}
	rs := make([]ranked, len(scoredSet))
	for i := range scoredSet {
		rs[i] = ranked{sc: scoredSet[i], percent: s.percentFor(&scoredSet[i], maxBoosted)}
	}

	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].percent != rs[j].percent {
			return rs[i].percent > rs[j].percent
		}
		if rs[i].sc.boosted != rs[j].sc.boosted {
			return rs[i].sc.boosted > rs[j].sc.boosted
		}
		return rs[i].sc.v.ID() < rs[j].sc.v.ID()
	})

	// Quality tie-break: a single adjacent pass keeps the ordering
	// deterministic and avoids a non-transitive comparator.
	for i := 0; i+1 < len(rs); i++ {
		a, b := &rs[i], &rs[i+1]
		if a.percent-b.percent > s.cfg.TieBand {
			continue
		}
		ra, rb := a.sc.v.Rating(), b.sc.v.Rating()
		if ra > 0 && rb > 0 && rb-ra >= s.cfg.TieRatingDelta {
			rs[i], rs[i+1] = rs[i+1], rs[i]
		}
	}

	out := make([]match.Result, len(rs))
	for i, r := range rs {
		out[i] = match.NewResult(r.sc.v, r.percent, r.sc.hits)
	}
	return out
}

// neutralShuffle is the no-liked-tags fallback: the filtered catalog
// in random order, every entry at the neutral percentage.
func (s *Service) neutralShuffle(
	candidates []venue.Venue, avoided []string, opts *query.Options,
) []match.Result {
	pool := make([]venue.Venue, 0, len(candidates))
	for _, v := range candidates {
		if !excludedByAvoid(&v, avoided) {
			pool = append(pool, v)
		}
	}
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	results := make([]match.Result, len(pool))
	for i, v := range pool {
		results[i] = match.NewResult(v, s.cfg.NeutralPercent, 0)
	}
	return s.postFilter(results, opts)
}

func (s *Service) postFilter(results []match.Result, opts *query.Options) []match.Result {
	if opts.MinPercent() > 0 {
		kept := results[:0]
		for _, r := range results {
			if r.Percent() >= opts.MinPercent() {
				kept = append(kept, r)
			}
		}
		results = kept
	}
	if len(results) > opts.MaxResults() {
		results = results[:opts.MaxResults()]
	}
	return results
}
