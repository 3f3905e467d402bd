package match

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/citymood/vibescout/internal/domain/query"
	"github.com/citymood/vibescout/internal/domain/venue"
)

func TestSurpriseMe_Diversity(t *testing.T) {
	cat := testCatalog(t)
	q := mustQuery(t, query.IntentAny, 0, query.BudgetAny, nil, nil)

	// The diversity guarantee must hold for every shuffle outcome, not
	// just a lucky seed.
	for seed := uint64(0); seed < 20; seed++ {
		s := New(cat, ScoringConfig{}, rand.New(rand.NewPCG(seed, seed+1)))
		results, err := s.SurpriseMe(context.Background(), 4, q)
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}
		if len(results) != 4 {
			t.Fatalf("seed %d: got %d results, want 4", seed, len(results))
		}

		cats := make(map[venue.Category]bool)
		tiers := make(map[venue.PriceTier]bool)
		for _, r := range results {
			v := r.Venue()
			cats[v.Category()] = true
			tiers[v.PriceTier()] = true
		}
		if len(cats) < 2 {
			t.Errorf("seed %d: only %d categories represented", seed, len(cats))
		}
		if len(tiers) < 2 {
			t.Errorf("seed %d: only %d price tiers represented", seed, len(tiers))
		}
	}
}

func TestSurpriseMe_NeutralPercent(t *testing.T) {
	s := testService(t)
	q := mustQuery(t, query.IntentAny, 0, query.BudgetAny, nil, nil)

	results, err := s.SurpriseMe(context.Background(), 3, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range results {
		if r.Percent() != 50 {
			t.Errorf("percent = %d, want the neutral 50", r.Percent())
		}
		if r.KeywordHits() != 0 {
			t.Errorf("keyword hits = %d, want 0", r.KeywordHits())
		}
	}
}

func TestSurpriseMe_CountHandling(t *testing.T) {
	s := testService(t)
	q := mustQuery(t, query.IntentAny, 0, query.BudgetAny, nil, nil)

	// Zero and negative select the default, capped by pool size.
	results, err := s.SurpriseMe(context.Background(), 0, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != DefaultSurpriseCount {
		t.Errorf("default count: got %d, want %d", len(results), DefaultSurpriseCount)
	}

	// Asking for more than the catalog holds returns the whole pool.
	results, err = s.SurpriseMe(context.Background(), 40, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != s.Catalog().Len() {
		t.Errorf("oversized count: got %d, want %d", len(results), s.Catalog().Len())
	}

	// No duplicates within one draw.
	seen := make(map[string]bool)
	for _, r := range results {
		v := r.Venue()
		if seen[v.ID()] {
			t.Errorf("venue %s drawn twice", v.ID())
		}
		seen[v.ID()] = true
	}
}

func TestSurpriseMe_RespectsFilters(t *testing.T) {
	s := testService(t)
	q := mustQuery(t, query.IntentFood, 0, query.BudgetAny, nil, nil)

	results, err := s.SurpriseMe(context.Background(), 5, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want the 2 food venues", len(results))
	}
	for _, r := range results {
		v := r.Venue()
		if v.Category() != venue.FoodDrink {
			t.Errorf("venue %s has category %q, want food", v.ID(), v.Category())
		}
	}
}
