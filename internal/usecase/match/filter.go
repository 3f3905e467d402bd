package match

import (
	"github.com/citymood/vibescout/internal/domain/query"
	"github.com/citymood/vibescout/internal/domain/venue"
)

// Tourist-level thresholds for the discovery filter. Levels run 1
// (hidden local spot) to 10 (landmark).
const (
	// famousMinTouristLevel keeps only well-known venues for
	// discovery levels 1-2.
	famousMinTouristLevel = 6
	// hiddenMaxTouristLevel drops the tourist traps for discovery
	// levels 4-5.
	hiddenMaxTouristLevel = 7
)

// applyFilters runs the hard categorical constraints in canonical
// order: intent, discovery level, budget. Each stage is a pure
// set intersection, so the order affects clarity only.
func applyFilters(venues []venue.Venue, q *query.Query) []venue.Venue {
	venues = filterIntent(venues, q.Intent())
	venues = filterDiscovery(venues, q.DiscoveryLevel())
	venues = filterBudget(venues, q.Budget())
	return venues
}

func filterIntent(venues []venue.Venue, intent query.Intent) []venue.Venue {
	allowed := intent.Categories()
	if allowed == nil {
		return venues
	}
	out := make([]venue.Venue, 0, len(venues))
	for _, v := range venues {
		for _, c := range allowed {
			if v.Category() == c {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

func filterDiscovery(venues []venue.Venue, level int) []venue.Venue {
	switch {
	case level >= 1 && level <= 2:
		return filterTouristLevel(venues, func(tl int) bool { return tl >= famousMinTouristLevel })
	case level >= 4:
		return filterTouristLevel(venues, func(tl int) bool { return tl <= hiddenMaxTouristLevel })
	default:
		// 0 (unset) and the middle value apply no filter.
		return venues
	}
}

func filterTouristLevel(venues []venue.Venue, keep func(int) bool) []venue.Venue {
	out := make([]venue.Venue, 0, len(venues))
	for _, v := range venues {
		if keep(v.TouristLevel()) {
			out = append(out, v)
		}
	}
	return out
}

func filterBudget(venues []venue.Venue, b query.Budget) []venue.Venue {
	tiers := b.Tiers()
	if tiers == nil {
		return venues
	}
	allowed := make(map[venue.PriceTier]bool, len(tiers))
	for _, t := range tiers {
		allowed[t] = true
	}
	out := make([]venue.Venue, 0, len(venues))
	for _, v := range venues {
		if allowed[v.PriceTier()] {
			out = append(out, v)
		}
	}
	return out
}
