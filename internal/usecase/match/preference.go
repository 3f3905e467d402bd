package match

import (
	"context"

	"go.uber.org/zap"

	"github.com/citymood/vibescout/internal/domain/vector"
	"github.com/citymood/vibescout/internal/logger"
)

// buildPreference collapses liked and avoided tags into a single
// unit-length query vector, so one dot product per venue captures both
// attraction and repulsion.
//
// Mean pooling and subtraction both break the unit-length property, and
// a short query vector systematically under-scores everything it is
// compared against — the error grows with tag diversity. Every derived
// vector is therefore renormalized before use.
//
// Tags absent from the vocabulary are dropped from vector construction
// and reported back in unknown. ok is false when no liked tag resolved;
// the caller falls back to an unranked result set.
func (s *Service) buildPreference(
	ctx context.Context, liked, avoided []string,
) (vec []float32, unknown []string, ok bool) {
	log := logger.FromContext(ctx)

	likedVecs, unknown := s.resolveTags(liked, unknown, log)
	avoidVecs, unknown := s.resolveTags(avoided, unknown, log)

	if len(likedVecs) == 0 {
		return nil, unknown, false
	}

	pooled, err := vector.MeanPool(likedVecs)
	if err != nil {
		// Catalog validation guarantees uniform dimensions; reaching
		// this means a systemic data bug, not a bad query.
		log.Warn("mean pooling liked tags failed", zap.Error(err))
		return nil, unknown, false
	}
	likedVec := vector.Normalize(pooled)

	if len(avoidVecs) == 0 {
		return likedVec, unknown, true
	}

	pooled, err = vector.MeanPool(avoidVecs)
	if err != nil {
		log.Warn("mean pooling avoided tags failed", zap.Error(err))
		return likedVec, unknown, true
	}
	avoidVec := vector.Normalize(pooled)

	return vector.Normalize(vector.Subtract(likedVec, avoidVec)), unknown, true
}

func (s *Service) resolveTags(
	tags []string, unknown []string, log *zap.Logger,
) ([][]float32, []string) {
	vecs := make([][]float32, 0, len(tags))
	for _, tag := range tags {
		v, found := s.cat.TagVector(tag)
		if !found {
			log.Warn("tag not in vocabulary, dropped from vector construction",
				zap.String("tag", tag))
			unknown = append(unknown, tag)
			continue
		}
		vecs = append(vecs, v)
	}
	return vecs, unknown
}
