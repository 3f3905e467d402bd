package match

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/citymood/vibescout/internal/domain/vector"
	"github.com/citymood/vibescout/internal/domain/venue"
	"github.com/citymood/vibescout/internal/logger"
)

// scored is a candidate that survived avoid-exclusion, carrying its
// boosted raw score through normalization and sorting.
type scored struct {
	v       venue.Venue
	boosted float64
	hits    int
}

// excludedByAvoid reports whether any avoided term matches a venue
// vibe exactly (case-insensitive) or appears as a substring of the
// venue name. This is a hard filter on top of vector suppression: a
// subtracted query vector lowers such venues' scores but does not
// guarantee they leave a top-N window.
func excludedByAvoid(v *venue.Venue, avoided []string) bool {
	for _, term := range avoided {
		if v.HasVibe(term) || v.NameContains(term) {
			return true
		}
	}
	return false
}

// scoreCandidates scores every surviving venue against the query
// vector, applies the keyword boost, and tracks the running maximum
// for the later top-match bonus.
func (s *Service) scoreCandidates(
	ctx context.Context, candidates []venue.Venue,
	queryVec []float32, liked, avoided []string,
) ([]scored, float64) {
	log := logger.FromContext(ctx)

	out := make([]scored, 0, len(candidates))
	// The maximum must survive all-negative score sets (heavy avoid
	// subtraction), so it cannot start at zero.
	maxBoosted := math.Inf(-1)

	for _, v := range candidates {
		if excludedByAvoid(&v, avoided) {
			continue
		}

		if len(v.Embedding()) != len(queryVec) {
			// One malformed record must not abort the ranking pass.
			// Dot already returns the neutral 0 on mismatch; surface
			// the data bug where an operator can see it.
			log.Warn("venue embedding dimension mismatch, scoring as neutral",
				zap.String("venue_id", v.ID()),
				zap.Int("got", len(v.Embedding())),
				zap.Int("want", len(queryVec)))
		}
		raw := vector.Dot(queryVec, v.Embedding())

		hits := 0
		for _, tag := range liked {
			if v.HasVibe(tag) {
				hits++
			}
		}

		boosted := raw + s.cfg.KeywordBoost*float64(hits)
		if boosted > maxBoosted {
			maxBoosted = boosted
		}
		out = append(out, scored{v: v, boosted: boosted, hits: hits})
	}

	return out, maxBoosted
}
