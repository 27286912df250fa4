package team

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ByConference sums team summaries per conference, ordered by total score
// descending and conference name ascending.
func ByConference(summaries []Summary) []ConferenceTotal {
	type acc struct {
		teams int
		score decimal.Decimal
		spent decimal.Decimal
	}
	groups := make(map[string]*acc)
	for _, s := range summaries {
		a, ok := groups[s.Conference]
		if !ok {
			a = &acc{score: decimal.Zero, spent: decimal.Zero}
			groups[s.Conference] = a
		}
		a.teams++
		a.score = a.score.Add(decimal.NewFromFloat(s.TotalScore))
		a.spent = a.spent.Add(decimal.NewFromFloat(s.NILSpent))
	}

	out := make([]ConferenceTotal, 0, len(groups))
	for name, a := range groups {
		out = append(out, ConferenceTotal{
			Conference: name,
			Teams:      a.teams,
			TotalScore: a.score.InexactFloat64(),
			NILSpent:   a.spent.InexactFloat64(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		return out[i].Conference < out[j].Conference
	})
	return out
}
