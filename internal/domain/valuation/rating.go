package valuation

import (
	"fmt"
	"math"
)

// Recruiting composite bounds: a 2-star maps to 0, a 5-star ceiling to 1.
const (
	ratingFloor = 0.7000
	ratingSpan  = 0.3000
)

// Experience tiers for the HS/performance blend.
const (
	limitedExperienceMaxGames  = 5
	moderateExperienceMaxGames = 20

	limitedExperienceHSWeight  = 0.90
	moderateExperienceHSWeight = 0.50
	veteranHSWeight            = 0.20
)

// Normalize maps a raw recruiting rating onto [0,1]. Ratings below 0.7 give 0,
// ratings at or above 1.0 give 1. NaN gives 0.
func Normalize(raw float64) float64 {
	return clamp01((raw - ratingFloor) / ratingSpan)
}

// HSWeight returns the share of the composite drawn from the recruiting
// rating for a player with gamesPlayed college games. The stats share is
// 1 - HSWeight.
func HSWeight(gamesPlayed int) (float64, error) {
	switch {
	case gamesPlayed < 0:
		return 0, fmt.Errorf("%w: games_played %d is negative", ErrInvalidInput, gamesPlayed)
	case gamesPlayed <= limitedExperienceMaxGames:
		return limitedExperienceHSWeight, nil
	case gamesPlayed <= moderateExperienceMaxGames:
		return moderateExperienceHSWeight, nil
	default:
		return veteranHSWeight, nil
	}
}

// Composite blends the normalized recruiting rating with the performance
// percentile. The blend only happens when a percentile is present and the
// player has appeared in a game; otherwise the stats share is dropped and the
// composite is the normalized rating alone. A present percentile of zero is
// still blended.
func Composite(hsNormalized float64, statsPercentile *float64, gamesPlayed int, hsWeight float64) float64 {
	if statsPercentile == nil || gamesPlayed <= 0 {
		return hsNormalized
	}
	return hsNormalized*hsWeight + *statsPercentile*(1-hsWeight)
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}
