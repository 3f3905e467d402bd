package match

import (
	"context"
	"testing"

	"github.com/citymood/vibescout/internal/domain/venue"
)

func scoredFixture(t *testing.T, rating float64, boosted float64, hits int) scored {
	t.Helper()
	v := mustVenue(t, "v", "V", venue.Activity, nil, venue.TierFree, 5, rating,
		[]float32{1, 0, 0})
	return scored{v: v, boosted: boosted, hits: hits}
}

func TestPercentFor_Bounds(t *testing.T) {
	s := testService(t)

	// Whatever the scorer produces, the display percentage stays
	// inside the clamp, including out-of-range raw scores.
	for _, boosted := range []float64{-0.7, 0, 0.1, 0.33, 0.5, 0.77, 1.0, 1.4} {
		for _, hits := range []int{0, 1, 3, 5} {
			for _, rating := range []float64{0, 2.5, 4.0, 4.6, 4.8, 5.0} {
				sc := scoredFixture(t, rating, boosted, hits)
				got := s.percentFor(&sc, 1.4)
				if got < s.cfg.DisplayMin || got > s.cfg.DisplayMax {
					t.Errorf("percentFor(boosted=%v, hits=%d, rating=%v) = %d, outside [%d, %d]",
						boosted, hits, rating, got, s.cfg.DisplayMin, s.cfg.DisplayMax)
				}
			}
		}
	}
}

func TestPercentFor_TopMatchBonus(t *testing.T) {
	s := testService(t)

	top := scoredFixture(t, 0, 0.5, 0)
	other := scoredFixture(t, 0, 0.5, 0)

	withBonus := s.percentFor(&top, 0.5)
	without := s.percentFor(&other, 0.9)
	if withBonus-without != s.cfg.TopMatchBonus {
		t.Errorf("top match bonus = %d, want %d", withBonus-without, s.cfg.TopMatchBonus)
	}
}

func TestPercentFor_TopMatchBonusWithNegativeScores(t *testing.T) {
	s := testService(t)

	// Heavy avoid subtraction can leave every surviving score negative;
	// the best of them is still the single best match.
	best := scoredFixture(t, 0, -0.2, 0)
	worst := scoredFixture(t, 0, -0.9, 0)

	diff := s.percentFor(&best, -0.2) - s.percentFor(&worst, -0.2)
	if diff != s.cfg.TopMatchBonus {
		t.Errorf("top match bonus on negative scores = %d, want %d",
			diff, s.cfg.TopMatchBonus)
	}
}

func TestScoreCandidates_NegativeMaximum(t *testing.T) {
	s := testService(t)

	candidates := []venue.Venue{
		mustVenue(t, "against", "Against", venue.Activity, nil,
			venue.TierFree, 5, 0, []float32{1, 0, 0}),
		mustVenue(t, "sideways", "Sideways", venue.Activity, nil,
			venue.TierFree, 5, 0, []float32{invSqrt2, invSqrt2, 0}),
	}

	scoredSet, maxBoosted := s.scoreCandidates(context.Background(),
		candidates, []float32{-1, 0, 0}, nil, nil)
	if len(scoredSet) != 2 {
		t.Fatalf("got %d scored, want 2", len(scoredSet))
	}
	if maxBoosted >= 0 {
		t.Fatalf("maxBoosted = %v, want the negative maximum", maxBoosted)
	}

	// Only the less-opposed venue reaches the maximum.
	for _, sc := range scoredSet {
		got := s.percentFor(&sc, maxBoosted)
		want := s.cfg.BaseBandLow
		if sc.v.ID() == "sideways" {
			want += float64(s.cfg.TopMatchBonus)
		}
		if got != int(want) {
			t.Errorf("venue %s percent = %d, want %d", sc.v.ID(), got, int(want))
		}
	}
}

func TestPercentFor_KeywordBonusCapped(t *testing.T) {
	s := testService(t)

	capped := scoredFixture(t, 0, 0.5, s.cfg.KeywordBonusMaxHits)
	over := scoredFixture(t, 0, 0.5, s.cfg.KeywordBonusMaxHits+3)
	if s.percentFor(&capped, 1) != s.percentFor(&over, 1) {
		t.Error("keyword bonus should cap at KeywordBonusMaxHits")
	}
}

func TestPercentFor_ConcaveCurve(t *testing.T) {
	s := testService(t)

	// The power transform spreads the high end: the gap between 0.8
	// and 1.0 must exceed the gap between 0.0 and 0.2.
	lo0 := scoredFixture(t, 0, 0.0, 0)
	lo1 := scoredFixture(t, 0, 0.2, 0)
	hi0 := scoredFixture(t, 0, 0.8, 0)
	hi1 := scoredFixture(t, 0, 1.0, 0)

	lowGap := s.percentFor(&lo1, 2) - s.percentFor(&lo0, 2)
	highGap := s.percentFor(&hi1, 2) - s.percentFor(&hi0, 2)
	if lowGap <= highGap {
		t.Errorf("low gap %d should exceed high gap %d under a concave curve",
			lowGap, highGap)
	}
}

func TestRatingAdjustment(t *testing.T) {
	s := testService(t)

	tests := []struct {
		rating float64
		want   int
	}{
		{0, 0},
		{5.0, 4},
		{4.9, 4},
		{4.8, 2},
		{4.7, 2},
		{4.6, 1},
		{4.5, 1},
		{4.2, 0},
		{4.0, 0},
		{3.9, -3},
		{2.0, -3},
	}
	for _, tc := range tests {
		if got := s.ratingAdjustment(tc.rating); got != tc.want {
			t.Errorf("ratingAdjustment(%v) = %d, want %d", tc.rating, got, tc.want)
		}
	}
}
