// Package query defines the validated per-request preference input.
package query

import (
	"fmt"
	"strings"

	"github.com/citymood/vibescout/internal/domain"
	"github.com/citymood/vibescout/internal/domain/venue"
)

// Request limits and defaults.
const (
	// MaxTags bounds each of the liked and avoided tag lists.
	MaxTags           = 5
	MaxDiscoveryLevel = 5
	DefaultMaxResults = 10
	MaxMaxResults     = 50
)

// Intent is the user-facing activity intent, mapped to venue categories.
type Intent string

// Intent values. Empty or "any" means no category filtering.
const (
	IntentAny        Intent = "any"
	IntentFood       Intent = "food"
	IntentActivity   Intent = "activity"
	IntentAttraction Intent = "attraction"
)

// IsValid checks if the intent is one of the supported values.
func (i Intent) IsValid() bool {
	return i == "" || i == IntentAny || i == IntentFood ||
		i == IntentActivity || i == IntentAttraction
}

// Categories returns the venue categories the intent allows, nil for all.
func (i Intent) Categories() []venue.Category {
	switch i {
	case IntentFood:
		return []venue.Category{venue.FoodDrink}
	case IntentActivity:
		return []venue.Category{venue.Activity}
	case IntentAttraction:
		return []venue.Category{venue.Attraction}
	default:
		return nil
	}
}

// Budget is the symbolic spend selection.
type Budget string

// Budget values. Empty or "any" means all tiers. Each step widens the
// allowed set, so a stricter budget always yields a subset.
const (
	BudgetAny      Budget = "any"
	BudgetFree     Budget = "free"
	BudgetBudget   Budget = "budget"
	BudgetModerate Budget = "moderate"
	BudgetPremium  Budget = "premium"
)

// IsValid checks if the budget is one of the supported values.
func (b Budget) IsValid() bool {
	return b == "" || b == BudgetAny || b == BudgetFree ||
		b == BudgetBudget || b == BudgetModerate || b == BudgetPremium
}

// Tiers returns the allowed price tiers, nil for all.
func (b Budget) Tiers() []venue.PriceTier {
	switch b {
	case BudgetFree:
		return []venue.PriceTier{venue.TierFree}
	case BudgetBudget:
		return []venue.PriceTier{venue.TierFree, venue.TierLow}
	case BudgetModerate:
		return []venue.PriceTier{venue.TierFree, venue.TierLow, venue.TierMid}
	default:
		return nil
	}
}

// Query is a validated, ephemeral preference. Constructed fresh per
// request; never stored.
type Query struct {
	intent    Intent
	discovery int
	budget    Budget
	liked     []string
	avoided   []string
}

// New validates and normalizes a Query. Blank tags are dropped and the
// rest trimmed; discovery 0 means unset.
func New(intent Intent, discovery int, budget Budget, liked, avoided []string) (Query, error) {
	if !intent.IsValid() {
		return Query{}, fmt.Errorf("%w: unknown intent %q", domain.ErrInvalidQuery, intent)
	}
	if !budget.IsValid() {
		return Query{}, fmt.Errorf("%w: unknown budget %q", domain.ErrInvalidQuery, budget)
	}
	if discovery < 0 || discovery > MaxDiscoveryLevel {
		return Query{}, fmt.Errorf("%w: discovery level %d out of range [0, %d]",
			domain.ErrInvalidQuery, discovery, MaxDiscoveryLevel)
	}

	liked = cleanTags(liked)
	avoided = cleanTags(avoided)
	if len(liked) > MaxTags {
		return Query{}, fmt.Errorf("%w: too many liked tags (max %d)", domain.ErrInvalidQuery, MaxTags)
	}
	if len(avoided) > MaxTags {
		return Query{}, fmt.Errorf("%w: too many avoided tags (max %d)", domain.ErrInvalidQuery, MaxTags)
	}

	return Query{
		intent:    intent,
		discovery: discovery,
		budget:    budget,
		liked:     liked,
		avoided:   avoided,
	}, nil
}

// Intent returns the activity intent.
func (q *Query) Intent() Intent { return q.intent }

// DiscoveryLevel returns the 1-5 hidden-to-famous preference, 0 if unset.
func (q *Query) DiscoveryLevel() int { return q.discovery }

// Budget returns the symbolic spend selection.
func (q *Query) Budget() Budget { return q.budget }

// LikedTags returns the ordered liked tags.
func (q *Query) LikedTags() []string { return q.liked }

// AvoidedTags returns the ordered avoided tags.
func (q *Query) AvoidedTags() []string { return q.avoided }

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Options are per-request result controls.
type Options struct {
	minPercent int
	maxResults int
}

// NewOptions validates and normalizes result controls.
// maxResults defaults to 10 and is capped at 50.
func NewOptions(minPercent, maxResults int) (Options, error) {
	if minPercent < 0 || minPercent > 100 {
		return Options{}, fmt.Errorf("%w: min score percent %d out of range [0, 100]",
			domain.ErrInvalidQuery, minPercent)
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > MaxMaxResults {
		maxResults = MaxMaxResults
	}
	return Options{minPercent: minPercent, maxResults: maxResults}, nil
}

// MinPercent returns the minimum match percentage to include.
func (o *Options) MinPercent() int { return o.minPercent }

// MaxResults returns the result list cap.
func (o *Options) MaxResults() int { return o.maxResults }
