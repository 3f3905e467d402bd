package match

import "math"

// topMatchEpsilon guards the float comparison against the running max.
const topMatchEpsilon = 1e-9

// percentFor maps a boosted score into the bounded display percentage:
// clamp to [0,1], concave power transform, linear map into the base
// band, then the additive bonuses, then the final display clamp.
func (s *Service) percentFor(sc *scored, maxBoosted float64) int {
	cfg := &s.cfg

	clamped := sc.boosted
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 1 {
		clamped = 1
	}

	shaped := math.Pow(clamped, cfg.PowerExponent)
	p := int(math.Round(cfg.BaseBandLow + shaped*(cfg.BaseBandHigh-cfg.BaseBandLow)))

	// The single best match gets the flat bonus regardless of the sign
	// of its score.
	if sc.boosted >= maxBoosted-topMatchEpsilon {
		p += cfg.TopMatchBonus
	}

	hits := sc.hits
	if hits > cfg.KeywordBonusMaxHits {
		hits = cfg.KeywordBonusMaxHits
	}
	p += cfg.KeywordBonusPerHit * hits

	p += s.ratingAdjustment(sc.v.Rating())

	if p < cfg.DisplayMin {
		p = cfg.DisplayMin
	}
	if p > cfg.DisplayMax {
		p = cfg.DisplayMax
	}
	return p
}

// ratingAdjustment steps a quality bonus or penalty by rating
// thresholds. Unrated venues (0) are left untouched.
func (s *Service) ratingAdjustment(rating float64) int {
	cfg := &s.cfg
	switch {
	case rating == 0:
		return 0
	case rating >= cfg.RatingExceptionalMin:
		return cfg.RatingBonusExceptional
	case rating >= cfg.RatingGreatMin:
		return cfg.RatingBonusGreat
	case rating >= cfg.RatingGoodMin:
		return cfg.RatingBonusGood
	case rating < cfg.RatingPoorMax:
		return cfg.RatingPenaltyPoor
	default:
		return 0
	}
}
