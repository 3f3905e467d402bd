// Package catalog loads the catalog document the offline pipeline
// deposits, from disk or Redis, and converts it into the domain model.
package catalog

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/citymood/vibescout/internal/domain"
	domcat "github.com/citymood/vibescout/internal/domain/catalog"
	"github.com/citymood/vibescout/internal/domain/venue"
)

// Source provides the catalog document, exactly once per session.
type Source interface {
	Load(ctx context.Context) (domcat.Catalog, error)
}

// catalogDTO mirrors the pipeline's output document.
type catalogDTO struct {
	Venues        []venueDTO           `json:"venues"`
	TagEmbeddings map[string][]float32 `json:"tag_embeddings"`
}

type venueDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	Vibes          []string  `json:"vibes"`
	PriceTier      string    `json:"price_tier"`
	NumericalPrice string    `json:"numerical_price,omitempty"`
	TouristLevel   int       `json:"tourist_level"`
	Rating         float64   `json:"rating,omitempty"`
	Embedding      []float32 `json:"embedding"`
}

// parseCatalog decodes and validates a catalog document. Any invalid
// venue is fatal: a partial catalog is never accepted.
func parseCatalog(data []byte) (domcat.Catalog, error) {
	var dto catalogDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domcat.Catalog{}, fmt.Errorf("%w: decode: %w", domain.ErrCatalogInvalid, err)
	}

	venues := make([]venue.Venue, 0, len(dto.Venues))
	for i, vd := range dto.Venues {
		v, err := venue.New(
			vd.ID, vd.Name, venue.Category(vd.Category), vd.Description,
			vd.Vibes, venue.PriceTier(vd.PriceTier), vd.NumericalPrice,
			vd.TouristLevel, vd.Rating, vd.Embedding,
		)
		if err != nil {
			return domcat.Catalog{}, fmt.Errorf("%w: venue %d: %w", domain.ErrCatalogInvalid, i, err)
		}
		venues = append(venues, v)
	}

	cat, err := domcat.New(venues, dto.TagEmbeddings)
	if err != nil {
		return domcat.Catalog{}, err
	}
	return cat, nil
}
