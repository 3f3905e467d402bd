package match

// ScoringConfig names every calibration constant of the ranking path.
// The values are configuration, not code: they were tuned against the
// shipped catalog and can be overridden wholesale at construction.
type ScoringConfig struct {
	// KeywordBoost is added to the raw similarity once per liked tag
	// that exactly matches a venue vibe. Pure semantic similarity
	// under-separates close concepts; the hybrid boost roughly doubled
	// ranking precision in benchmarking.
	KeywordBoost float64

	// PowerExponent shapes the score-to-percentage curve. Concave
	// (< 1): compresses the low end, spreads the high end where users
	// actually compare results.
	PowerExponent float64

	// BaseBandLow/High bound the linear display band the transformed
	// score maps into, before bonuses.
	BaseBandLow  float64
	BaseBandHigh float64

	// TopMatchBonus is added to the single venue that achieved the
	// maximum boosted score in the candidate set.
	TopMatchBonus int

	// KeywordBonusPerHit is added per exact vibe match, up to
	// KeywordBonusMaxHits matches.
	KeywordBonusPerHit  int
	KeywordBonusMaxHits int

	// Rating thresholds step a quality bonus/penalty onto the display
	// percentage.
	RatingExceptionalMin   float64
	RatingGreatMin         float64
	RatingGoodMin          float64
	RatingPoorMax          float64
	RatingBonusExceptional int
	RatingBonusGreat       int
	RatingBonusGood        int
	RatingPenaltyPoor      int

	// DisplayMin/Max clamp the final percentage. Never 0 and never
	// 100: the engine does not claim certainty either way.
	DisplayMin int
	DisplayMax int

	// NeutralPercent is reported when no semantic claim is made
	// (surprise mode, or no liked tags resolved).
	NeutralPercent int

	// TieBand and TieRatingDelta control the quality tie-break: two
	// neighbors within TieBand percentage points whose ratings differ
	// by at least TieRatingDelta are ordered by rating.
	TieBand        int
	TieRatingDelta float64
}

// DefaultScoring returns the shipped calibration.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		KeywordBoost:           0.08,
		PowerExponent:          0.7,
		BaseBandLow:            40,
		BaseBandHigh:           88,
		TopMatchBonus:          4,
		KeywordBonusPerHit:     2,
		KeywordBonusMaxHits:    3,
		RatingExceptionalMin:   4.9,
		RatingGreatMin:         4.7,
		RatingGoodMin:          4.5,
		RatingPoorMax:          4.0,
		RatingBonusExceptional: 4,
		RatingBonusGreat:       2,
		RatingBonusGood:        1,
		RatingPenaltyPoor:      -3,
		DisplayMin:             35,
		DisplayMax:             98,
		NeutralPercent:         50,
		TieBand:                5,
		TieRatingDelta:         0.3,
	}
}
