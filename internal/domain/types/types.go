// Package types contains read models shared by the service and HTTP layers.
package types

import "github.com/okian/portalrank/internal/domain/team"

// TeamDetail is a ranked team together with every valued player.
type TeamDetail struct {
	team.Standing
	Incoming []team.ValuedPlayer `json:"incoming_players"`
	Outgoing []team.ValuedPlayer `json:"outgoing_players"`
}

// LeagueSummary holds headline figures across all teams.
type LeagueSummary struct {
	TotalTransfers int     `json:"total_transfers"`
	TotalInflows   int     `json:"total_inflows"`
	TotalOutflows  int     `json:"total_outflows"`
	TotalNILSpent  float64 `json:"total_nil_spent"`
	AvgScore       float64 `json:"avg_score"`
	MedianScore    float64 `json:"median_score"`
	TeamsTracked   int     `json:"teams_tracked"`
}
