// Package match defines the ranked output of the recommendation engine.
package match

import "github.com/citymood/vibescout/internal/domain/venue"

// Result is a single ranked hit: a venue plus its derived display
// percentage. Purely derived; never written back to the catalog.
type Result struct {
	venue       venue.Venue
	percent     int
	keywordHits int
}

// NewResult creates a ranked hit.
func NewResult(v venue.Venue, percent, keywordHits int) Result {
	return Result{venue: v, percent: percent, keywordHits: keywordHits}
}

// Venue returns the matched venue.
func (r *Result) Venue() venue.Venue { return r.venue }

// Percent returns the display match percentage.
func (r *Result) Percent() int { return r.percent }

// KeywordHits returns how many liked tags exactly matched venue vibes.
func (r *Result) KeywordHits() int { return r.keywordHits }

// Ranking is the full response of a match call: the ordered results
// plus any tags that were absent from the tag vocabulary. Unknown tags
// are dropped from scoring, not errors; surfacing them lets callers
// detect vocabulary drift between the UI and the embedding pipeline.
type Ranking struct {
	results     []Result
	unknownTags []string
}

// NewRanking creates a ranking.
func NewRanking(results []Result, unknownTags []string) Ranking {
	return Ranking{results: results, unknownTags: unknownTags}
}

// Results returns the ordered hits.
func (r *Ranking) Results() []Result { return r.results }

// UnknownTags returns liked/avoided tags missing from the vocabulary.
func (r *Ranking) UnknownTags() []string { return r.unknownTags }
