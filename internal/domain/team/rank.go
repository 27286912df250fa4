package team

import "sort"

// Standing is a ranked team summary.
type Standing struct {
	Rank int `json:"rank"`
	Summary
}

// Rank orders teams by total score descending and numbers them 1..N.
// Equal scores are ordered by team name ascending, so every team gets a
// distinct rank and the output does not depend on input order. The input
// slice is not modified.
func Rank(summaries []Summary) []Standing {
	sorted := make([]Summary, len(summaries))
	copy(sorted, summaries)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalScore != sorted[j].TotalScore {
			return sorted[i].TotalScore > sorted[j].TotalScore
		}
		return sorted[i].Team < sorted[j].Team
	})

	out := make([]Standing, len(sorted))
	for i, s := range sorted {
		out[i] = Standing{Rank: i + 1, Summary: s}
	}
	return out
}

// ConferenceTotal is the summed movement of one conference's teams.
type ConferenceTotal struct {
	Conference string  `json:"conference"`
	Teams      int     `json:"teams"`
	TotalScore float64 `json:"score"`
	NILSpent   float64 `json:"nil_spent"`
}
