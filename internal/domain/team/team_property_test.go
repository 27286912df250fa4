package team_test

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/okian/portalrank/internal/domain/model"
	"github.com/okian/portalrank/internal/domain/team"
	"github.com/okian/portalrank/internal/domain/valuation"
)

// TestAggregateOrderIndependence verifies shuffling the inflows never changes
// the team totals.
func TestAggregateOrderIndependence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	v := valuation.New()

	properties.Property("aggregate is order independent", prop.ForAll(
		func(ratings []float64, seed int64) bool {
			players := make([]model.Player, len(ratings))
			for i, r := range ratings {
				players[i] = model.Player{
					Name:            strconv.Itoa(i),
					Position:        model.OffensivePositions[i%len(model.OffensivePositions)],
					Class:           model.Classes[i%len(model.Classes)],
					HSRating:        r,
					GamesPlayed:     i * 3,
					StatsPercentile: model.Percentile(float64(i%10) / 10),
				}
			}
			shuffled := make([]model.Player, len(players))
			copy(shuffled, players)
			rng := rand.New(rand.NewSource(seed)) //nolint:gosec // test shuffle
			rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

			a, errA := team.Aggregate(v, model.Team{Name: "x", Inflows: players})
			b, errB := team.Aggregate(v, model.Team{Name: "x", Inflows: shuffled})
			return errA == nil && errB == nil && a == b
		},
		gen.SliceOf(gen.Float64Range(0.7, 1.0)),
		gen.Int64(),
	))

	properties.Property("rank never puts a lower score ahead", prop.ForAll(
		func(scores []float64) bool {
			summaries := make([]team.Summary, len(scores))
			for i, s := range scores {
				summaries[i] = team.Summary{Team: strconv.Itoa(i), TotalScore: s}
			}
			standings := team.Rank(summaries)
			for i := 1; i < len(standings); i++ {
				if standings[i-1].TotalScore < standings[i].TotalScore {
					return false
				}
				if standings[i].Rank != i+1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(-500, 500)),
	))

	properties.TestingRun(t)
}
