// Package model contains domain models passed between layers.
package model

import "time"

// Position is a roster position code, e.g. "QB" or "EDGE".
type Position string

// Known positions. Codes outside this set are still valid input.
const (
	QB   Position = "QB"
	RB   Position = "RB"
	WR   Position = "WR"
	TE   Position = "TE"
	OT   Position = "OT"
	OG   Position = "OG"
	C    Position = "C"
	DE   Position = "DE"
	EDGE Position = "EDGE"
	DT   Position = "DT"
	LB   Position = "LB"
	CB   Position = "CB"
	S    Position = "S"
	K    Position = "K"
	P    Position = "P"
	LS   Position = "LS"
)

// Class is a player's eligibility class.
type Class string

// Known classes, youngest first.
const (
	Freshman          Class = "Freshman"
	RedshirtFreshman  Class = "Redshirt Freshman"
	Sophomore         Class = "Sophomore"
	RedshirtSophomore Class = "Redshirt Sophomore"
	Junior            Class = "Junior"
	RedshirtJunior    Class = "Redshirt Junior"
	Senior            Class = "Senior"
	RedshirtSenior    Class = "Redshirt Senior"
	Graduate          Class = "Graduate"
)

// Classes lists every known class, youngest first.
var Classes = []Class{
	Freshman, RedshirtFreshman, Sophomore, RedshirtSophomore,
	Junior, RedshirtJunior, Senior, RedshirtSenior, Graduate,
}

// OffensivePositions and DefensivePositions partition the non-specialist positions.
var (
	OffensivePositions = []Position{QB, RB, WR, TE, OT, OG, C}
	DefensivePositions = []Position{DE, DT, LB, CB, S, EDGE}
)

// IsOffense reports whether p counts toward offensive movement totals.
func (p Position) IsOffense() bool {
	for _, o := range OffensivePositions {
		if p == o {
			return true
		}
	}
	return false
}

// IsDefense reports whether p counts toward defensive movement totals.
func (p Position) IsDefense() bool {
	for _, d := range DefensivePositions {
		if p == d {
			return true
		}
	}
	return false
}

// Player is a single transfer-portal movement subject.
type Player struct {
	Name            string   `json:"name"`
	Position        Position `json:"position"`
	Class           Class    `json:"player_class"`
	HSRating        float64  `json:"hs_rating"`    // recruiting composite, nominally 0.7..1.0
	GamesPlayed     int      `json:"games_played"` // college games
	StatsPercentile *float64 `json:"stats_percentile,omitempty"`

	// Display-only attributes; valuation ignores them.
	HSRank       int    `json:"hs_rank,omitempty"`
	PreviousTeam string `json:"previous_team,omitempty"`
	NewTeam      string `json:"new_team,omitempty"`
	Status       string `json:"status,omitempty"`
	TransferDate string `json:"transfer_date,omitempty"`
}

// Percentile returns a pointer to v, for building players with stats.
func Percentile(v float64) *float64 { return &v }

// Team groups a program's incoming and outgoing transfers.
type Team struct {
	Name       string   `json:"team"`
	Conference string   `json:"conference"`
	Inflows    []Player `json:"inflows"`
	Outflows   []Player `json:"outflows"`
}

// Direction says whether a transfer joins or leaves a team.
type Direction string

// Transfer directions.
const (
	Inflow  Direction = "in"
	Outflow Direction = "out"
)

// Transfer is one portal movement submitted for ingestion.
type Transfer struct {
	TransferID string    // unique id for idempotency
	Team       string    // the program gaining (in) or losing (out) the player
	Conference string    // optional; used when the team is new to the league
	Direction  Direction // in or out
	Player     Player
	TS         time.Time
}
