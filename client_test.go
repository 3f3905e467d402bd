package vibescout

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

const testCatalogJSON = `{
  "venues": [
    {
      "id": "harbour-house",
      "name": "Harbour House",
      "category": "Food & Drink",
      "vibes": ["Romantic", "Coastal"],
      "price_tier": "RRR",
      "tourist_level": 6,
      "rating": 4.7,
      "embedding": [0.70710678, 0.70710678, 0]
    },
    {
      "id": "smitswinkel-bay",
      "name": "Smitswinkel Bay",
      "category": "Activity",
      "vibes": ["Hidden", "Coastal"],
      "price_tier": "Free",
      "tourist_level": 2,
      "embedding": [0, 1, 0]
    },
    {
      "id": "neon-arcade",
      "name": "Neon Arcade",
      "category": "Activity",
      "vibes": ["Loud"],
      "price_tier": "RR",
      "tourist_level": 7,
      "rating": 4.2,
      "embedding": [0, 0, 1]
    }
  ],
  "tag_embeddings": {
    "Romantic": [1, 0, 0],
    "Coastal": [0, 1, 0],
    "Hidden": [0.70710678, 0, 0.70710678],
    "Loud": [0, 0, 1]
  }
}`

func testEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(testCatalogJSON), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	opts = append([]Option{
		WithCatalogFile(path),
		WithRand(rand.New(rand.NewPCG(3, 5))),
	}, opts...)
	e, err := New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestNew_RequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error without a catalog source")
	}
}

func TestNew_RejectsTwoSources(t *testing.T) {
	_, err := New(WithCatalogFile("x.json"), WithRedis("localhost:6379", "", ""))
	if err == nil {
		t.Fatal("expected error with two catalog sources")
	}
}

func TestNew_MissingFile(t *testing.T) {
	if _, err := New(WithCatalogFile(filepath.Join(t.TempDir(), "missing.json"))); err == nil {
		t.Fatal("expected error for a missing catalog file")
	}
}

func TestNew_WithCatalogJSON(t *testing.T) {
	e, err := New(WithCatalogJSON([]byte(testCatalogJSON)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(e.Close)

	if err := e.Ready(context.Background()); err != nil {
		t.Errorf("Ready failed: %v", err)
	}
	if len(e.TagLabels()) != 4 {
		t.Errorf("got %d labels, want 4", len(e.TagLabels()))
	}
}

func TestEngine_FindMatches(t *testing.T) {
	e := testEngine(t)

	resp, err := e.FindMatches(context.Background(), MatchRequest{
		LikedTags:   []string{"Romantic", "Coastal"},
		AvoidedTags: []string{"Loud"},
	})
	if err != nil {
		t.Fatalf("FindMatches failed: %v", err)
	}
	if len(resp.Matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(resp.Matches))
	}
	if resp.Matches[0].Venue.ID != "harbour-house" {
		t.Errorf("top match = %s, want harbour-house", resp.Matches[0].Venue.ID)
	}
	for _, m := range resp.Matches {
		if m.Venue.ID == "neon-arcade" {
			t.Error("avoided venue leaked into the matches")
		}
		if m.Percent < 35 || m.Percent > 98 {
			t.Errorf("percent %d outside display bounds", m.Percent)
		}
	}
}

func TestEngine_FindMatches_InvalidRequest(t *testing.T) {
	e := testEngine(t)

	if _, err := e.FindMatches(context.Background(), MatchRequest{
		Intent: "nightlife",
	}); err == nil {
		t.Fatal("expected error for unknown intent")
	}
	if _, err := e.FindMatches(context.Background(), MatchRequest{
		DiscoveryLevel: 9,
	}); err == nil {
		t.Fatal("expected error for out-of-range discovery level")
	}
}

func TestEngine_SurpriseMe(t *testing.T) {
	e := testEngine(t)

	matches, err := e.SurpriseMe(context.Background(), SurpriseRequest{Count: 2})
	if err != nil {
		t.Fatalf("SurpriseMe failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	for _, m := range matches {
		if m.Percent != 50 {
			t.Errorf("surprise percent = %d, want 50", m.Percent)
		}
	}
}

func TestEngine_WithScoring(t *testing.T) {
	e := testEngine(t, WithScoring(Scoring{NeutralPercent: 60}))

	matches, err := e.SurpriseMe(context.Background(), SurpriseRequest{Count: 1})
	if err != nil {
		t.Fatalf("SurpriseMe failed: %v", err)
	}
	if matches[0].Percent != 60 {
		t.Errorf("percent = %d, want the overridden neutral 60", matches[0].Percent)
	}
}

func TestEngine_TagLabels(t *testing.T) {
	e := testEngine(t)

	labels := e.TagLabels()
	if len(labels) != 4 {
		t.Errorf("got %d labels, want 4", len(labels))
	}
}

func TestEngine_Ready(t *testing.T) {
	e := testEngine(t)
	if err := e.Ready(context.Background()); err != nil {
		t.Errorf("Ready failed: %v", err)
	}
}
