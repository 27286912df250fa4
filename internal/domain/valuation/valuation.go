// Package valuation prices transfer-portal players.
//
// A player's recruiting rating and on-field percentile are blended into a
// composite rating according to experience, the composite is run through a
// power-law value curve, and position and class multipliers are applied to
// produce a dollar value (millions) and a 0-~170 score. Everything here is a
// pure function of its input and safe for concurrent use.
package valuation

import (
	"fmt"
	"math"

	"github.com/okian/portalrank/internal/domain/model"
	"github.com/shopspring/decimal"
)

// scoreScale lifts the composite onto the 0-100 score range before multipliers.
const scoreScale = 100

// Breakdown records every intermediate quantity of a valuation for audit
// and display.
type Breakdown struct {
	HSRating           float64  `json:"hs_rating"`
	HSNormalized       float64  `json:"hs_normalized"`
	HSWeight           float64  `json:"hs_weight"`
	StatsPercentile    *float64 `json:"stats_percentile"`
	StatsWeight        float64  `json:"stats_weight"`
	CompositeScore     float64  `json:"composite_score"`
	PositionMultiplier float64  `json:"position_multiplier"`
	ClassWeight        float64  `json:"class_weight"`
	RawValue           float64  `json:"raw_value"`
	FinalValue         float64  `json:"final_value"`
	PlayerScore        float64  `json:"player_score"`
}

// Result is the outcome of valuing one player.
type Result struct {
	Value     float64   `json:"value"` // millions, 2 decimals
	Score     float64   `json:"score"` // 2 decimals
	Breakdown Breakdown `json:"breakdown"`
}

// Option applies a configuration option to the Valuator.
type Option func(*Valuator)

// WithCurve replaces the value curve. Invalid curves are ignored.
func WithCurve(c Curve) Option {
	return func(v *Valuator) {
		if c.Validate() == nil {
			v.curve = c
		}
	}
}

// Valuator values players against a fixed value curve.
type Valuator struct {
	curve Curve
}

// New creates a Valuator using the default curve unless overridden.
func New(opts ...Option) *Valuator {
	v := &Valuator{curve: DefaultCurve()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Curve returns the curve in use.
func (v *Valuator) Curve() Curve { return v.curve }

var defaultValuator = New()

// Value values p with the default curve.
func Value(p model.Player) (Result, error) { return defaultValuator.Value(p) }

// Validate reports whether p can be valued.
func Validate(p model.Player) error {
	if math.IsNaN(p.HSRating) || math.IsInf(p.HSRating, 0) {
		return fmt.Errorf("%w: hs_rating is not a finite number", ErrInvalidInput)
	}
	if p.GamesPlayed < 0 {
		return fmt.Errorf("%w: games_played %d is negative", ErrInvalidInput, p.GamesPlayed)
	}
	if pct := p.StatsPercentile; pct != nil {
		if math.IsNaN(*pct) || *pct < 0 || *pct > 1 {
			return fmt.Errorf("%w: stats_percentile %v outside [0,1]", ErrInvalidInput, *pct)
		}
	}
	return nil
}

// Value computes the value, score and breakdown for p.
func (v *Valuator) Value(p model.Player) (Result, error) {
	if err := Validate(p); err != nil {
		return Result{}, err
	}

	hsNormalized := Normalize(p.HSRating)
	hsWeight, err := HSWeight(p.GamesPlayed)
	if err != nil {
		return Result{}, err
	}
	composite := Composite(hsNormalized, p.StatsPercentile, p.GamesPlayed, hsWeight)

	posMult := PositionMultiplier(p.Position)
	classMult := ClassWeight(p.Class)

	rawValue := v.curve.RawValue(composite)
	finalValue := Round2(rawValue * posMult * classMult)
	score := Round2(composite * scoreScale * posMult * classMult)

	var pct *float64
	if p.StatsPercentile != nil {
		c := *p.StatsPercentile
		pct = &c
	}

	return Result{
		Value: finalValue,
		Score: score,
		Breakdown: Breakdown{
			HSRating:           p.HSRating,
			HSNormalized:       hsNormalized,
			HSWeight:           hsWeight,
			StatsPercentile:    pct,
			StatsWeight:        1 - hsWeight,
			CompositeScore:     composite,
			PositionMultiplier: posMult,
			ClassWeight:        classMult,
			RawValue:           rawValue,
			FinalValue:         finalValue,
			PlayerScore:        score,
		},
	}, nil
}

// Round2 rounds x to cents, half away from zero, using decimal arithmetic so
// values such as 2.675 are not skewed by their binary representation.
func Round2(x float64) float64 {
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}
