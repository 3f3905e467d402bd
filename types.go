package vibescout

import (
	dommatch "github.com/citymood/vibescout/internal/domain/match"
	matchuc "github.com/citymood/vibescout/internal/usecase/match"
)

// Intent narrows results to one venue category.
type Intent string

// Intent values.
const (
	IntentAny        Intent = "any"
	IntentFood       Intent = "food"
	IntentActivity   Intent = "activity"
	IntentAttraction Intent = "attraction"
)

// Budget narrows results by symbolic price tier. Each step widens the
// allowed set, so a stricter budget always yields a subset.
type Budget string

// Budget values.
const (
	BudgetAny      Budget = "any"
	BudgetFree     Budget = "free"
	BudgetBudget   Budget = "budget"
	BudgetModerate Budget = "moderate"
	BudgetPremium  Budget = "premium"
)

// MatchRequest describes one recommendation query.
type MatchRequest struct {
	Intent         Intent
	DiscoveryLevel int // 0 unset, 1 famous .. 5 hidden
	Budget         Budget
	LikedTags      []string
	AvoidedTags    []string
	MinPercent     int
	MaxResults     int
}

// SurpriseRequest describes one diversity-sampled draw.
type SurpriseRequest struct {
	Count          int // 0 selects the default of 5
	Intent         Intent
	DiscoveryLevel int
	Budget         Budget
}

// Venue is a catalog entry as returned to callers.
type Venue struct {
	ID             string
	Name           string
	Category       string
	Description    string
	Vibes          []string
	PriceTier      string
	NumericalPrice string
	TouristLevel   int
	Rating         float64
}

// Match is a single ranked recommendation.
type Match struct {
	Venue       Venue
	Percent     int
	KeywordHits int
}

// MatchResponse carries the ranked matches plus any tags that were
// absent from the embedding vocabulary.
type MatchResponse struct {
	Matches     []Match
	UnknownTags []string
}

// Scoring overrides the shipped ranking calibration. Zero fields keep
// their defaults.
type Scoring struct {
	KeywordBoost   float64
	PowerExponent  float64
	BaseBandLow    float64
	BaseBandHigh   float64
	DisplayMin     int
	DisplayMax     int
	NeutralPercent int
}

func (s *Scoring) toInternal() matchuc.ScoringConfig {
	cfg := matchuc.DefaultScoring()
	if s.KeywordBoost > 0 {
		cfg.KeywordBoost = s.KeywordBoost
	}
	if s.PowerExponent > 0 {
		cfg.PowerExponent = s.PowerExponent
	}
	if s.BaseBandLow > 0 {
		cfg.BaseBandLow = s.BaseBandLow
	}
	if s.BaseBandHigh > 0 {
		cfg.BaseBandHigh = s.BaseBandHigh
	}
	if s.DisplayMin > 0 {
		cfg.DisplayMin = s.DisplayMin
	}
	if s.DisplayMax > 0 {
		cfg.DisplayMax = s.DisplayMax
	}
	if s.NeutralPercent > 0 {
		cfg.NeutralPercent = s.NeutralPercent
	}
	return cfg
}

func matchesFromResults(results []dommatch.Result) []Match {
	out := make([]Match, len(results))
	for i := range results {
		v := results[i].Venue()
		out[i] = Match{
			Venue: Venue{
				ID:             v.ID(),
				Name:           v.Name(),
				Category:       string(v.Category()),
				Description:    v.Description(),
				Vibes:          v.Vibes(),
				PriceTier:      string(v.PriceTier()),
				NumericalPrice: v.NumericalPrice(),
				TouristLevel:   v.TouristLevel(),
				Rating:         v.Rating(),
			},
			Percent:     results[i].Percent(),
			KeywordHits: results[i].KeywordHits(),
		}
	}
	return out
}
