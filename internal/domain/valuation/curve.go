package valuation

import (
	"fmt"
	"math"
)

// Default value-curve constants, in millions of dollars.
const (
	DefaultValueMin      = 0.1
	DefaultValueMax      = 3.5
	DefaultValueExponent = 1.5
)

// Curve converts a composite rating in [0,1] into a dollar figure:
//
//	Min + (Max-Min) * composite^Exponent
//
// An exponent above 1 makes the curve super-linear, so elite composites are
// worth disproportionately more.
type Curve struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Exponent float64 `json:"exponent"`
}

// DefaultCurve returns the standard $0.1M..$3.5M curve with exponent 1.5.
func DefaultCurve() Curve {
	return Curve{Min: DefaultValueMin, Max: DefaultValueMax, Exponent: DefaultValueExponent}
}

// NewCurve validates and builds a Curve.
func NewCurve(minValue, maxValue, exponent float64) (Curve, error) {
	c := Curve{Min: minValue, Max: maxValue, Exponent: exponent}
	if err := c.Validate(); err != nil {
		return Curve{}, err
	}
	return c, nil
}

// Validate checks that the curve is finite, increasing and has a positive exponent.
func (c Curve) Validate() error {
	for _, f := range []float64{c.Min, c.Max, c.Exponent} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: value curve constants must be finite", ErrInvalidInput)
		}
	}
	if c.Min < 0 {
		return fmt.Errorf("%w: value curve min %.4f is negative", ErrInvalidInput, c.Min)
	}
	if c.Max <= c.Min {
		return fmt.Errorf("%w: value curve max %.4f must exceed min %.4f", ErrInvalidInput, c.Max, c.Min)
	}
	if c.Exponent <= 0 {
		return fmt.Errorf("%w: value curve exponent %.4f must be positive", ErrInvalidInput, c.Exponent)
	}
	return nil
}

// RawValue maps a composite rating onto the curve. Composites outside [0,1]
// are clamped first.
func (c Curve) RawValue(composite float64) float64 {
	composite = clamp01(composite)
	return c.Min + (c.Max-c.Min)*math.Pow(composite, c.Exponent)
}
