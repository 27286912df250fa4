package valuation_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/portalrank/internal/domain/model"
	"github.com/okian/portalrank/internal/domain/valuation"
	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-9

func TestNormalize(t *testing.T) {
	Convey("Given raw recruiting ratings", t, func() {
		Convey("Then the 2-star floor maps to 0", func() {
			So(valuation.Normalize(0.7000), ShouldAlmostEqual, 0.0, tolerance)
		})

		Convey("Then a perfect rating maps to 1", func() {
			So(valuation.Normalize(1.0000), ShouldAlmostEqual, 1.0, tolerance)
		})

		Convey("Then the midpoint maps to 0.5", func() {
			So(valuation.Normalize(0.85), ShouldAlmostEqual, 0.5, tolerance)
		})

		Convey("Then ratings outside the nominal range are clamped", func() {
			So(valuation.Normalize(0.42), ShouldEqual, 0.0)
			So(valuation.Normalize(-3), ShouldEqual, 0.0)
			So(valuation.Normalize(1.2), ShouldEqual, 1.0)
			So(valuation.Normalize(math.Inf(1)), ShouldEqual, 1.0)
			So(valuation.Normalize(math.Inf(-1)), ShouldEqual, 0.0)
		})

		Convey("Then NaN normalizes to 0", func() {
			So(valuation.Normalize(math.NaN()), ShouldEqual, 0.0)
		})
	})
}

func TestHSWeight(t *testing.T) {
	Convey("Given games-played counts", t, func() {
		cases := []struct {
			games int
			want  float64
		}{
			{0, 0.90}, {5, 0.90}, {6, 0.50}, {20, 0.50}, {21, 0.20}, {60, 0.20},
		}
		for _, tc := range cases {
			w, err := valuation.HSWeight(tc.games)
			So(err, ShouldBeNil)
			So(w, ShouldEqual, tc.want)
		}

		Convey("When games played is negative", func() {
			_, err := valuation.HSWeight(-1)

			Convey("Then it fails with invalid input", func() {
				So(errors.Is(err, valuation.ErrInvalidInput), ShouldBeTrue)
			})
		})
	})
}

func TestComposite(t *testing.T) {
	Convey("Given a normalized rating of 0.6", t, func() {
		Convey("When a percentile is present and the player has games", func() {
			c := valuation.Composite(0.6, model.Percentile(0.8), 10, 0.5)

			Convey("Then the two are blended", func() {
				So(c, ShouldAlmostEqual, 0.7, tolerance)
			})
		})

		Convey("When the percentile is present but zero", func() {
			c := valuation.Composite(0.6, model.Percentile(0), 10, 0.5)

			Convey("Then the zero is still blended in", func() {
				So(c, ShouldAlmostEqual, 0.3, tolerance)
			})
		})

		Convey("When the percentile is absent", func() {
			c := valuation.Composite(0.6, nil, 10, 0.5)

			Convey("Then the stats weight is dropped", func() {
				So(c, ShouldEqual, 0.6)
			})
		})

		Convey("When the player has no games", func() {
			c := valuation.Composite(0.6, model.Percentile(0.9), 0, 0.9)

			Convey("Then the rating is used alone", func() {
				So(c, ShouldEqual, 0.6)
			})
		})
	})
}

func TestCurve(t *testing.T) {
	Convey("Given the default value curve", t, func() {
		curve := valuation.DefaultCurve()

		Convey("Then its end points are the min and max", func() {
			So(curve.RawValue(0), ShouldAlmostEqual, 0.1, tolerance)
			So(curve.RawValue(1), ShouldAlmostEqual, 3.5, tolerance)
		})

		Convey("Then it is super-linear", func() {
			So(curve.RawValue(0.5), ShouldBeLessThan, (0.1+3.5)/2)
		})

		Convey("Then out-of-range composites are clamped", func() {
			So(curve.RawValue(-1), ShouldAlmostEqual, 0.1, tolerance)
			So(curve.RawValue(2), ShouldAlmostEqual, 3.5, tolerance)
		})
	})

	Convey("Given custom curve constants", t, func() {
		Convey("When the constants are valid", func() {
			curve, err := valuation.NewCurve(0.25, 5, 2)

			Convey("Then the curve uses them", func() {
				So(err, ShouldBeNil)
				So(curve.RawValue(0.5), ShouldAlmostEqual, 0.25+4.75*0.25, tolerance)
			})
		})

		Convey("When max does not exceed min", func() {
			_, err := valuation.NewCurve(2, 2, 1.5)
			So(errors.Is(err, valuation.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("When the exponent is not positive", func() {
			_, err := valuation.NewCurve(0.1, 3.5, 0)
			So(errors.Is(err, valuation.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("When a constant is not finite", func() {
			_, err := valuation.NewCurve(0.1, math.Inf(1), 1.5)
			So(errors.Is(err, valuation.ErrInvalidInput), ShouldBeTrue)
		})
	})
}

func TestMultiplierTables(t *testing.T) {
	Convey("Given the position table", t, func() {
		So(valuation.PositionMultiplier(model.QB), ShouldEqual, 1.50)
		So(valuation.PositionMultiplier(model.EDGE), ShouldEqual, 1.25)
		So(valuation.PositionMultiplier(model.DE), ShouldEqual, 1.25)
		So(valuation.PositionMultiplier(model.OG), ShouldEqual, 0.85)
		So(valuation.PositionMultiplier(model.LS), ShouldEqual, 0.45)

		Convey("When the position is unknown", func() {
			Convey("Then the multiplier falls back to 1.0", func() {
				So(valuation.PositionMultiplier("LONGSNAPPER_BACKUP"), ShouldEqual, 1.0)
				So(valuation.PositionMultiplier(""), ShouldEqual, 1.0)
			})
		})

		Convey("When a caller mutates the exported copy", func() {
			table := valuation.PositionMultipliers()
			table[model.QB] = 99

			Convey("Then the engine's table is unchanged", func() {
				So(valuation.PositionMultiplier(model.QB), ShouldEqual, 1.50)
				So(len(table), ShouldEqual, 16)
			})
		})
	})

	Convey("Given the class table", t, func() {
		So(valuation.ClassWeight(model.Graduate), ShouldEqual, 1.15)
		So(valuation.ClassWeight(model.Junior), ShouldEqual, 0.95)
		So(valuation.ClassWeight(model.Freshman), ShouldEqual, 0.70)
		So(valuation.ClassWeight("Super Senior"), ShouldEqual, 1.0)
		So(len(valuation.ClassWeights()), ShouldEqual, len(model.Classes))
	})
}

func TestValuator_Value(t *testing.T) {
	Convey("Given the default valuator", t, func() {
		v := valuation.New()

		Convey("When valuing an experienced junior quarterback", func() {
			res, err := v.Value(model.Player{
				Name:            "Jalen Moore",
				Position:        model.QB,
				Class:           model.Junior,
				HSRating:        0.9200,
				GamesPlayed:     12,
				StatsPercentile: model.Percentile(0.65),
			})

			Convey("Then every intermediate matches the formula", func() {
				So(err, ShouldBeNil)
				b := res.Breakdown
				So(b.HSNormalized, ShouldAlmostEqual, 0.7333, 0.0001)
				So(b.HSWeight, ShouldEqual, 0.50)
				So(b.StatsWeight, ShouldAlmostEqual, 0.50, tolerance)
				So(b.CompositeScore, ShouldAlmostEqual, 0.6917, 0.0001)
				So(b.RawValue, ShouldAlmostEqual, 2.056, 0.001)
				So(b.PositionMultiplier, ShouldEqual, 1.50)
				So(b.ClassWeight, ShouldEqual, 0.95)
			})

			Convey("Then value and score are rounded to cents", func() {
				So(res.Value, ShouldEqual, 2.93)
				So(res.Score, ShouldAlmostEqual, 98.56, 0.011)
				So(res.Breakdown.FinalValue, ShouldEqual, res.Value)
				So(res.Breakdown.PlayerScore, ShouldEqual, res.Score)
			})
		})

		Convey("When valuing a freshman kicker with no games", func() {
			res, err := v.Value(model.Player{
				Name:        "Tre Lewis",
				Position:    model.K,
				Class:       model.Freshman,
				HSRating:    0.80,
				GamesPlayed: 0,
			})

			Convey("Then the composite is the normalized rating alone", func() {
				So(err, ShouldBeNil)
				So(res.Breakdown.CompositeScore, ShouldAlmostEqual, 1.0/3, 0.0001)
				So(res.Breakdown.StatsPercentile, ShouldBeNil)
				So(res.Breakdown.RawValue, ShouldAlmostEqual, 0.754, 0.001)
				So(res.Value, ShouldEqual, 0.26)
				So(res.Score, ShouldAlmostEqual, 11.66, 0.011)
			})
		})

		Convey("When the position is unknown", func() {
			res, err := v.Value(model.Player{
				Position:    "LONGSNAPPER_BACKUP",
				Class:       model.RedshirtJunior,
				HSRating:    0.85,
				GamesPlayed: 3,
			})

			Convey("Then the player is valued with multiplier 1.0", func() {
				So(err, ShouldBeNil)
				So(res.Breakdown.PositionMultiplier, ShouldEqual, 1.0)
				So(res.Score, ShouldEqual, 50.0)
			})
		})

		Convey("When the rating is not a number", func() {
			_, err := v.Value(model.Player{Position: model.WR, HSRating: math.NaN()})

			Convey("Then it fails with invalid input", func() {
				So(errors.Is(err, valuation.ErrInvalidInput), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "hs_rating")
			})
		})

		Convey("When games played is negative", func() {
			_, err := v.Value(model.Player{Position: model.WR, HSRating: 0.9, GamesPlayed: -2})
			So(errors.Is(err, valuation.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("When the percentile is outside [0,1]", func() {
			_, err := v.Value(model.Player{Position: model.WR, HSRating: 0.9, GamesPlayed: 8, StatsPercentile: model.Percentile(1.3)})
			So(errors.Is(err, valuation.ErrInvalidInput), ShouldBeTrue)
		})

		Convey("When valuing the same record twice", func() {
			p := model.Player{Position: model.CB, Class: model.Senior, HSRating: 0.91, GamesPlayed: 30, StatsPercentile: model.Percentile(0.77)}
			first, err1 := v.Value(p)
			second, err2 := v.Value(p)

			Convey("Then both results are identical", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second, ShouldResemble, first)
			})
		})

		Convey("When the caller mutates its percentile afterwards", func() {
			pct := 0.5
			res, err := v.Value(model.Player{Position: model.S, HSRating: 0.9, GamesPlayed: 10, StatsPercentile: &pct})
			pct = 0.9

			Convey("Then the breakdown keeps the valued percentile", func() {
				So(err, ShouldBeNil)
				So(*res.Breakdown.StatsPercentile, ShouldEqual, 0.5)
			})
		})
	})

	Convey("Given a valuator with a custom curve", t, func() {
		curve, err := valuation.NewCurve(0.5, 5.5, 1)
		So(err, ShouldBeNil)
		v := valuation.New(valuation.WithCurve(curve))

		Convey("Then a perfect linebacker earns the curve max times the class weight", func() {
			res, err := v.Value(model.Player{Position: model.LB, Class: model.RedshirtJunior, HSRating: 1.0})
			So(err, ShouldBeNil)
			So(res.Value, ShouldEqual, 5.5)
			So(v.Curve(), ShouldResemble, curve)
		})

		Convey("Then an invalid curve option is ignored", func() {
			v2 := valuation.New(valuation.WithCurve(valuation.Curve{Min: 3, Max: 1, Exponent: 1}))
			So(v2.Curve(), ShouldResemble, valuation.DefaultCurve())
		})
	})
}

func TestRound2(t *testing.T) {
	Convey("Given values on a half-cent boundary", t, func() {
		So(valuation.Round2(2.675), ShouldEqual, 2.68)
		So(valuation.Round2(1.005), ShouldEqual, 1.01)
		So(valuation.Round2(-0.125), ShouldEqual, -0.13)
		So(valuation.Round2(3), ShouldEqual, 3.0)
	})
}

func TestMethodology(t *testing.T) {
	Convey("Given the default valuator's methodology", t, func() {
		m := valuation.New().Methodology()

		Convey("Then it exposes the three experience tiers", func() {
			So(len(m.ExperienceTiers), ShouldEqual, 3)
			So(m.ExperienceTiers[1].MinGames, ShouldEqual, 6)
			So(m.ExperienceTiers[2].MaxGames, ShouldEqual, -1)
		})

		Convey("Then tables are ordered by multiplier", func() {
			So(m.PositionMultipliers[0].Position, ShouldEqual, model.QB)
			So(m.PositionMultipliers[len(m.PositionMultipliers)-1].Position, ShouldEqual, model.LS)
			So(m.ClassWeights[0].Class, ShouldEqual, model.Graduate)
		})

		Convey("Then the curve constants are included", func() {
			So(m.Curve, ShouldResemble, valuation.DefaultCurve())
			So(m.RatingCeiling, ShouldAlmostEqual, 1.0, tolerance)
		})
	})
}
