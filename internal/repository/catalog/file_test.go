package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/citymood/vibescout/internal/domain"
)

const validCatalogJSON = `{
  "venues": [
    {
      "id": "harbour-house",
      "name": "Harbour House",
      "category": "Food & Drink",
      "description": "Seafood above the waves",
      "vibes": ["Romantic", "Coastal"],
      "price_tier": "RRR",
      "numerical_price": "R450",
      "tourist_level": 6,
      "rating": 4.7,
      "embedding": [1, 0, 0]
    },
    {
      "id": "smitswinkel-bay",
      "name": "Smitswinkel Bay",
      "category": "Activity",
      "description": "A hidden cove",
      "vibes": ["Hidden", "Coastal"],
      "price_tier": "Free",
      "tourist_level": 2,
      "embedding": [0, 1, 0]
    }
  ],
  "tag_embeddings": {
    "Romantic": [1, 0, 0],
    "Coastal": [0, 1, 0],
    "Hidden": [0, 0, 1]
  }
}`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestFileSource_Load(t *testing.T) {
	src := NewFileSource(writeCatalog(t, validCatalogJSON))
	cat, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Len() != 2 || cat.TagCount() != 3 || cat.Dimensions() != 3 {
		t.Errorf("catalog sizes: %d venues, %d tags, %d dims", cat.Len(), cat.TagCount(), cat.Dimensions())
	}
	if _, ok := cat.TagVector("romantic"); !ok {
		t.Error("tag lookup failed after load")
	}
}

func TestFileSource_Missing(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.json"))
	_, err := src.Load(context.Background())
	if !errors.Is(err, domain.ErrCatalogNotFound) {
		t.Fatalf("err = %v, want ErrCatalogNotFound", err)
	}
}

func TestFileSource_Malformed(t *testing.T) {
	src := NewFileSource(writeCatalog(t, "{not json"))
	_, err := src.Load(context.Background())
	if !errors.Is(err, domain.ErrCatalogInvalid) {
		t.Fatalf("err = %v, want ErrCatalogInvalid", err)
	}
}

func TestFileSource_MissingTagTable(t *testing.T) {
	src := NewFileSource(writeCatalog(t, `{
	  "venues": [
	    {"id": "a", "name": "A", "category": "Activity", "vibes": [],
	     "price_tier": "Free", "tourist_level": 3, "embedding": [1, 0]}
	  ],
	  "tag_embeddings": {}
	}`))
	_, err := src.Load(context.Background())
	if !errors.Is(err, domain.ErrCatalogInvalid) {
		t.Fatalf("err = %v, want ErrCatalogInvalid", err)
	}
}

func TestFileSource_InvalidVenueIsFatal(t *testing.T) {
	// One bad record rejects the whole document: no partial catalog.
	src := NewFileSource(writeCatalog(t, `{
	  "venues": [
	    {"id": "a", "name": "A", "category": "Activity", "vibes": [],
	     "price_tier": "Free", "tourist_level": 3, "embedding": [1, 0]},
	    {"id": "b", "name": "B", "category": "Nightlife", "vibes": [],
	     "price_tier": "Free", "tourist_level": 3, "embedding": [0, 1]}
	  ],
	  "tag_embeddings": {"Chill": [1, 0]}
	}`))
	_, err := src.Load(context.Background())
	if !errors.Is(err, domain.ErrCatalogInvalid) {
		t.Fatalf("err = %v, want ErrCatalogInvalid", err)
	}
}
