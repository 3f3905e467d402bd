package match

import (
	"context"

	"github.com/citymood/vibescout/internal/domain/match"
	"github.com/citymood/vibescout/internal/domain/query"
	"github.com/citymood/vibescout/internal/domain/venue"
)

// DefaultSurpriseCount is used when the caller passes count <= 0.
const DefaultSurpriseCount = 5

// SurpriseMe samples the (optionally filtered) catalog at random under
// soft diversity constraints: while fewer than two categories or two
// price tiers are represented, the next slot prefers a venue that
// introduces one; after that, shuffle order wins. With any reasonable
// count the diversity phase is over within the first half of the
// slots. No semantic claim is made: every result carries the neutral
// percentage.
func (s *Service) SurpriseMe(
	_ context.Context, count int, q query.Query,
) ([]match.Result, error) {
	if count <= 0 {
		count = DefaultSurpriseCount
	}
	if count > query.MaxMaxResults {
		count = query.MaxMaxResults
	}

	filtered := applyFilters(s.cat.Venues(), &q)
	pool := make([]venue.Venue, len(filtered))
	copy(pool, filtered)
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	seenCats := make(map[venue.Category]bool)
	seenTiers := make(map[venue.PriceTier]bool)
	picked := make([]match.Result, 0, count)

	for len(picked) < count && len(pool) > 0 {
		idx := 0
		if len(seenCats) < 2 {
			idx = firstWith(pool, func(v *venue.Venue) bool { return !seenCats[v.Category()] })
		} else if len(seenTiers) < 2 {
			idx = firstWith(pool, func(v *venue.Venue) bool { return !seenTiers[v.PriceTier()] })
		}

		v := pool[idx]
		pool = append(pool[:idx], pool[idx+1:]...)
		seenCats[v.Category()] = true
		seenTiers[v.PriceTier()] = true
		picked = append(picked, match.NewResult(v, s.cfg.NeutralPercent, 0))
	}

	return picked, nil
}

// firstWith returns the index of the first venue satisfying want, or 0
// (shuffle order) when none does.
func firstWith(pool []venue.Venue, want func(*venue.Venue) bool) int {
	for i := range pool {
		if want(&pool[i]) {
			return i
		}
	}
	return 0
}
