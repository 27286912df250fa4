package valuation

import (
	"sort"

	"github.com/okian/portalrank/internal/domain/model"
)

// ExperienceTier is one row of the games-played weighting table.
type ExperienceTier struct {
	MinGames    int     `json:"min_games"`
	MaxGames    int     `json:"max_games"` // -1 means no upper bound
	HSWeight    float64 `json:"hs_weight"`
	StatsWeight float64 `json:"stats_weight"`
}

// PositionRow and ClassRow are table rows for display.
type PositionRow struct {
	Position   model.Position `json:"position"`
	Multiplier float64        `json:"multiplier"`
}

type ClassRow struct {
	Class  model.Class `json:"class"`
	Weight float64     `json:"weight"`
}

// Methodology is a read-only snapshot of the constants the engine uses, so
// explanatory pages can render them without duplicating them.
type Methodology struct {
	RatingFloor         float64          `json:"rating_floor"`
	RatingCeiling       float64          `json:"rating_ceiling"`
	ExperienceTiers     []ExperienceTier `json:"experience_tiers"`
	PositionMultipliers []PositionRow    `json:"position_multipliers"`
	ClassWeights        []ClassRow       `json:"class_weights"`
	Curve               Curve            `json:"value_curve"`
	Formula             string           `json:"formula"`
}

const formula = `Value = (Min + (Max - Min) * Composite^Exponent) * PositionMultiplier * ClassWeight
Score = Composite * 100 * PositionMultiplier * ClassWeight
Composite = HS_Normalized * HS_Weight + Stats_Percentile * Stats_Weight
HS_Normalized = clamp((HS_Rating - 0.7000) / 0.3000, 0, 1)`

// Methodology describes the valuator's constants. Tables are ordered by
// multiplier descending, then by name.
func (v *Valuator) Methodology() Methodology {
	positions := make([]PositionRow, 0, len(positionMultipliers))
	for p, m := range positionMultipliers {
		positions = append(positions, PositionRow{Position: p, Multiplier: m})
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i].Multiplier != positions[j].Multiplier {
			return positions[i].Multiplier > positions[j].Multiplier
		}
		return positions[i].Position < positions[j].Position
	})

	classes := make([]ClassRow, 0, len(classWeights))
	for c, w := range classWeights {
		classes = append(classes, ClassRow{Class: c, Weight: w})
	}
	sort.Slice(classes, func(i, j int) bool {
		if classes[i].Weight != classes[j].Weight {
			return classes[i].Weight > classes[j].Weight
		}
		return classes[i].Class < classes[j].Class
	})

	return Methodology{
		RatingFloor:   ratingFloor,
		RatingCeiling: ratingFloor + ratingSpan,
		ExperienceTiers: []ExperienceTier{
			{MinGames: 0, MaxGames: limitedExperienceMaxGames, HSWeight: limitedExperienceHSWeight, StatsWeight: 1 - limitedExperienceHSWeight},
			{MinGames: limitedExperienceMaxGames + 1, MaxGames: moderateExperienceMaxGames, HSWeight: moderateExperienceHSWeight, StatsWeight: 1 - moderateExperienceHSWeight},
			{MinGames: moderateExperienceMaxGames + 1, MaxGames: -1, HSWeight: veteranHSWeight, StatsWeight: 1 - veteranHSWeight},
		},
		PositionMultipliers: positions,
		ClassWeights:        classes,
		Curve:               v.curve,
		Formula:             formula,
	}
}
