// Package team aggregates player valuations into team movement totals and
// ranks teams by net transfer score.
package team

import (
	"fmt"

	"github.com/okian/portalrank/internal/domain/model"
	"github.com/okian/portalrank/internal/domain/valuation"
	"github.com/shopspring/decimal"
)

// Valuer values a single player.
type Valuer interface {
	Value(p model.Player) (valuation.Result, error)
}

// Summary is a team's net transfer-portal position.
type Summary struct {
	Team          string  `json:"team"`
	Conference    string  `json:"conference"`
	IncomingScore float64 `json:"incoming_score"`
	OutgoingScore float64 `json:"outgoing_score"`
	TotalScore    float64 `json:"score"`
	NILSpent      float64 `json:"nil_spent"`
	InflowCount   int     `json:"inflows"`
	OutflowCount  int     `json:"outflows"`
	OffensiveIn   int     `json:"offensive_in"`
	OffensiveOut  int     `json:"offensive_out"`
	OffensiveNet  int     `json:"offensive_net"`
	DefensiveIn   int     `json:"defensive_in"`
	DefensiveOut  int     `json:"defensive_out"`
	DefensiveNet  int     `json:"defensive_net"`
}

// ValuedPlayer pairs a player with their valuation.
type ValuedPlayer struct {
	model.Player
	valuation.Result
}

// flowTotals accumulates one direction of movement.
type flowTotals struct {
	score     decimal.Decimal
	value     decimal.Decimal
	offensive int
	defensive int
}

// ValuePlayers values each player in order. The first invalid player aborts
// the whole call.
func ValuePlayers(v Valuer, players []model.Player) ([]ValuedPlayer, error) {
	out := make([]ValuedPlayer, len(players))
	for i, p := range players {
		res, err := v.Value(p)
		if err != nil {
			return nil, fmt.Errorf("%w: #%d %q: %w", ErrInvalidPlayer, i, p.Name, err)
		}
		out[i] = ValuedPlayer{Player: p, Result: res}
	}
	return out, nil
}

// Aggregate values every player on roster and sums the movement.
//
// Scores and values are summed as decimals, so the totals do not depend on
// the order of the player lists. Specialists count toward the score totals
// but toward neither the offensive nor defensive net. NIL spend only counts
// incoming players.
func Aggregate(v Valuer, roster model.Team) (Summary, error) {
	in, err := ValuePlayers(v, roster.Inflows)
	if err != nil {
		return Summary{}, fmt.Errorf("team %q inflows: %w", roster.Name, err)
	}
	out, err := ValuePlayers(v, roster.Outflows)
	if err != nil {
		return Summary{}, fmt.Errorf("team %q outflows: %w", roster.Name, err)
	}
	return Summarize(roster.Name, roster.Conference, in, out), nil
}

// Summarize builds a Summary from already-valued players.
func Summarize(name, conference string, inflows, outflows []ValuedPlayer) Summary {
	in := totals(inflows)
	out := totals(outflows)

	return Summary{
		Team:          name,
		Conference:    conference,
		IncomingScore: in.score.InexactFloat64(),
		OutgoingScore: out.score.InexactFloat64(),
		TotalScore:    in.score.Sub(out.score).InexactFloat64(),
		NILSpent:      in.value.Round(2).InexactFloat64(),
		InflowCount:   len(inflows),
		OutflowCount:  len(outflows),
		OffensiveIn:   in.offensive,
		OffensiveOut:  out.offensive,
		OffensiveNet:  in.offensive - out.offensive,
		DefensiveIn:   in.defensive,
		DefensiveOut:  out.defensive,
		DefensiveNet:  in.defensive - out.defensive,
	}
}

func totals(players []ValuedPlayer) flowTotals {
	t := flowTotals{score: decimal.Zero, value: decimal.Zero}
	for _, p := range players {
		t.score = t.score.Add(decimal.NewFromFloat(p.Score))
		t.value = t.value.Add(decimal.NewFromFloat(p.Value))
		switch {
		case p.Position.IsOffense():
			t.offensive++
		case p.Position.IsDefense():
			t.defensive++
		}
	}
	return t
}
