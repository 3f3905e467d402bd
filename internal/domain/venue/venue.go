// Package venue defines the immutable catalog record and its closed
// categorical vocabularies.
package venue

import (
	"fmt"
	"strings"
)

// Category is the venue's top-level classification.
type Category string

// Venue categories. The set is closed: the catalog pipeline only emits
// these three values.
const (
	FoodDrink  Category = "Food & Drink"
	Activity   Category = "Activity"
	Attraction Category = "Attraction"
)

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	return c == FoodDrink || c == Activity || c == Attraction
}

// PriceTier is the symbolic price band, ordered cheapest first.
type PriceTier string

// Price tiers as emitted by the data pipeline.
const (
	TierFree PriceTier = "Free"
	TierLow  PriceTier = "R"
	TierMid  PriceTier = "RR"
	TierHigh PriceTier = "RRR"
)

// IsValid checks if the tier is one of the supported values.
func (t PriceTier) IsValid() bool {
	return t == TierFree || t == TierLow || t == TierMid || t == TierHigh
}

// Tourist level boundaries. 1 = hidden local spot, 10 = landmark.
const (
	MinTouristLevel = 1
	MaxTouristLevel = 10
)

// Venue is an immutable catalog record. Embeddings arrive unit-length
// from the offline pipeline and are never renormalized here.
type Venue struct {
	id             string
	name           string
	category       Category
	description    string
	vibes          []string
	priceTier      PriceTier
	numericalPrice string
	touristLevel   int
	rating         float64
	embedding      []float32
}

// New validates and creates a Venue. Rating 0 means "not rated".
func New(
	id, name string, category Category, description string,
	vibes []string, priceTier PriceTier, numericalPrice string,
	touristLevel int, rating float64, embedding []float32,
) (Venue, error) {
	if id == "" {
		return Venue{}, fmt.Errorf("venue id is required")
	}
	if name == "" {
		return Venue{}, fmt.Errorf("venue %q: name is required", id)
	}
	if !category.IsValid() {
		return Venue{}, fmt.Errorf("venue %q: invalid category %q", id, category)
	}
	if !priceTier.IsValid() {
		return Venue{}, fmt.Errorf("venue %q: invalid price tier %q", id, priceTier)
	}
	if touristLevel < MinTouristLevel || touristLevel > MaxTouristLevel {
		return Venue{}, fmt.Errorf("venue %q: tourist level %d out of range [%d, %d]",
			id, touristLevel, MinTouristLevel, MaxTouristLevel)
	}
	if rating != 0 && (rating < 1 || rating > 5) {
		return Venue{}, fmt.Errorf("venue %q: rating %.2f out of range [1, 5]", id, rating)
	}
	if len(embedding) == 0 {
		return Venue{}, fmt.Errorf("venue %q: embedding is required", id)
	}

	return Venue{
		id:             id,
		name:           name,
		category:       category,
		description:    description,
		vibes:          vibes,
		priceTier:      priceTier,
		numericalPrice: numericalPrice,
		touristLevel:   touristLevel,
		rating:         rating,
		embedding:      embedding,
	}, nil
}

// ID returns the stable venue identifier.
func (v *Venue) ID() string { return v.id }

// Name returns the display name.
func (v *Venue) Name() string { return v.name }

// Category returns the venue category.
func (v *Venue) Category() Category { return v.category }

// Description returns the display description.
func (v *Venue) Description() string { return v.description }

// Vibes returns the venue's vibe tags.
func (v *Venue) Vibes() []string { return v.vibes }

// PriceTier returns the symbolic price band.
func (v *Venue) PriceTier() PriceTier { return v.priceTier }

// NumericalPrice returns the optional display price.
func (v *Venue) NumericalPrice() string { return v.numericalPrice }

// TouristLevel returns the 1-10 hidden-to-famous scale value.
func (v *Venue) TouristLevel() int { return v.touristLevel }

// Rating returns the 1.0-5.0 quality rating, 0 when unrated.
func (v *Venue) Rating() float64 { return v.rating }

// Embedding returns the unit-length semantic vector.
func (v *Venue) Embedding() []float32 { return v.embedding }

// HasVibe reports whether tag case-insensitively equals one of the
// venue's vibe tags.
func (v *Venue) HasVibe(tag string) bool {
	for _, vibe := range v.vibes {
		if strings.EqualFold(vibe, tag) {
			return true
		}
	}
	return false
}

// NameContains reports whether term appears in the venue name,
// case-insensitively. Substring matching is deliberately blunt: an
// avoided "Beach" also drops "Beachcomber Books". Kept for parity with
// the shipped ranking; a known precision/recall tradeoff.
func (v *Venue) NameContains(term string) bool {
	return strings.Contains(strings.ToLower(v.name), strings.ToLower(term))
}
