// Package catalog holds the read-only venue catalog and the tag
// embedding table, loaded once per session.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/citymood/vibescout/internal/domain"
	"github.com/citymood/vibescout/internal/domain/venue"
)

// Catalog is the immutable aggregate the engine ranks over: every venue
// plus the vocabulary of tag vectors sharing the venue embedding space.
// Safe for concurrent readers; no writer path exists after load.
type Catalog struct {
	venues []venue.Venue
	tags   map[string][]float32
	labels []string
	dim    int
}

// New validates and creates a Catalog. Both collections are required
// and must be non-empty; all embeddings (venue and tag) must share one
// dimensionality. Tag lookup is case-insensitive.
func New(venues []venue.Venue, tags map[string][]float32) (Catalog, error) {
	if len(venues) == 0 {
		return Catalog{}, fmt.Errorf("%w: no venues", domain.ErrCatalogInvalid)
	}
	if len(tags) == 0 {
		return Catalog{}, fmt.Errorf("%w: no tag embeddings", domain.ErrCatalogInvalid)
	}

	dim := len(venues[0].Embedding())
	for i := range venues {
		if len(venues[i].Embedding()) != dim {
			return Catalog{}, fmt.Errorf("%w: venue %q has %d dimensions, expected %d",
				domain.ErrCatalogInvalid, venues[i].ID(), len(venues[i].Embedding()), dim)
		}
	}

	folded := make(map[string][]float32, len(tags))
	labels := make([]string, 0, len(tags))
	for label, vec := range tags {
		if label == "" {
			return Catalog{}, fmt.Errorf("%w: empty tag label", domain.ErrCatalogInvalid)
		}
		if len(vec) != dim {
			return Catalog{}, fmt.Errorf("%w: tag %q has %d dimensions, expected %d",
				domain.ErrCatalogInvalid, label, len(vec), dim)
		}
		key := strings.ToLower(label)
		if _, dup := folded[key]; dup {
			return Catalog{}, fmt.Errorf("%w: duplicate tag label %q", domain.ErrCatalogInvalid, label)
		}
		folded[key] = vec
		labels = append(labels, label)
	}
	// Map iteration order would leak into TagLabels otherwise.
	sort.Strings(labels)

	return Catalog{venues: venues, tags: folded, labels: labels, dim: dim}, nil
}

// Venues returns every catalog record.
func (c Catalog) Venues() []venue.Venue { return c.venues }

// TagVector looks up a tag's embedding, case-insensitively.
func (c Catalog) TagVector(label string) ([]float32, bool) {
	vec, ok := c.tags[strings.ToLower(label)]
	return vec, ok
}

// TagLabels returns the vocabulary labels, sorted.
func (c Catalog) TagLabels() []string { return c.labels }

// Dimensions returns the shared embedding dimensionality.
func (c Catalog) Dimensions() int { return c.dim }

// Len returns the number of venues.
func (c Catalog) Len() int { return len(c.venues) }

// TagCount returns the vocabulary size.
func (c Catalog) TagCount() int { return len(c.tags) }
