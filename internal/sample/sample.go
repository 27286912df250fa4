// Package sample generates a deterministic demonstration league: the 25
// programs with the heaviest portal activity and randomly drawn players.
package sample

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/okian/portalrank/internal/domain/model"
	"github.com/shopspring/decimal"
)

// transferNamespace scopes the name-based transfer IDs.
var transferNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://portalrank/transfers"))

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed salts every team's random stream. The same seed always yields
// the same league.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// WithPrograms replaces the sample programs.
func WithPrograms(programs []Program) Option {
	return func(g *Generator) {
		if len(programs) > 0 {
			g.programs = programs
		}
	}
}

// WithTransferTime sets the timestamp stamped on generated transfers.
func WithTransferTime(ts time.Time) Option {
	return func(g *Generator) { g.ts = ts }
}

// Generator builds sample teams and transfers.
type Generator struct {
	seed     int64
	programs []Program
	ts       time.Time
}

// New creates a Generator over Programs.
func New(opts ...Option) *Generator {
	g := &Generator{
		programs: Programs,
		ts:       time.Date(2026, time.January, 17, 0, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// League returns every program with generated inflows and outflows.
func (g *Generator) League() []model.Team {
	teams := make([]model.Team, len(g.programs))
	for i, p := range g.programs {
		teams[i] = model.Team{
			Name:       p.Name,
			Conference: ConferenceOf(p.Name),
			Inflows:    g.players(p.Name, model.Inflow, p.Inflows),
			Outflows:   g.players(p.Name, model.Outflow, p.Outflows),
		}
	}
	return teams
}

// Transfers flattens League into individual transfers with stable IDs.
func (g *Generator) Transfers() []model.Transfer {
	return Transfers(g.League(), g.seed, g.ts)
}

// Transfers flattens teams into individual transfers whose IDs derive from
// seed, team, direction and list position.
func Transfers(teams []model.Team, seed int64, ts time.Time) []model.Transfer {
	var out []model.Transfer
	for _, t := range teams {
		for _, flow := range []struct {
			dir     model.Direction
			players []model.Player
		}{{model.Inflow, t.Inflows}, {model.Outflow, t.Outflows}} {
			for i, p := range flow.players {
				out = append(out, model.Transfer{
					TransferID: TransferID(seed, t.Name, flow.dir, i),
					Team:       t.Name,
					Conference: t.Conference,
					Direction:  flow.dir,
					Player:     p,
					TS:         ts,
				})
			}
		}
	}
	return out
}

// TransferID derives a UUIDv5 for the i-th player of a team's flow.
func TransferID(seed int64, team string, dir model.Direction, i int) string {
	name := strconv.FormatInt(seed, 10) + "|" + team + "|" + string(dir) + "|" + strconv.Itoa(i)
	return uuid.NewSHA1(transferNamespace, []byte(name)).String()
}

func (g *Generator) rng(team string, dir model.Direction) *rand.Rand {
	h := xxhash.Sum64String(team + "|" + string(dir))
	return rand.New(rand.NewSource(int64(h) ^ g.seed)) //nolint:gosec // sample data, not security sensitive
}

func (g *Generator) players(team string, dir model.Direction, count int) []model.Player {
	r := g.rng(team, dir)
	out := make([]model.Player, count)
	for i := range out {
		p := model.Player{
			HSRating: round(0.82+r.Float64()*(0.99-0.82), 4),
			Position: allPositions[r.Intn(len(allPositions))],
		}
		experienced := r.Float64() > 0.3
		if experienced {
			p.GamesPlayed = 1 + r.Intn(40)
			p.StatsPercentile = model.Percentile(round(0.3+r.Float64()*(0.95-0.3), 2))
		}
		p.Class = drawClass(r)
		p.Name = firstNames[r.Intn(len(firstNames))] + " " + lastNames[r.Intn(len(lastNames))]
		p.HSRank = 1 + r.Intn(500)

		other := g.otherProgram(r, team)
		if dir == model.Inflow {
			p.PreviousTeam, p.NewTeam = other, team
			p.Status = []string{"Committed", "Enrolled"}[r.Intn(2)]
		} else {
			p.PreviousTeam, p.NewTeam = team, other
			p.Status = "Entered Portal"
		}
		p.TransferDate = fmt.Sprintf("Jan %d, 2026", 1+r.Intn(17))
		out[i] = p
	}
	return out
}

func (g *Generator) otherProgram(r *rand.Rand, team string) string {
	others := make([]string, 0, len(g.programs))
	for _, p := range g.programs {
		if p.Name != team {
			others = append(others, p.Name)
		}
	}
	if len(others) == 0 {
		return "TBD"
	}
	return others[r.Intn(len(others))]
}

var allPositions = append(append([]model.Position{}, model.OffensivePositions...), model.DefensivePositions...)

func drawClass(r *rand.Rand) model.Class {
	x := r.Float64()
	acc := 0.0
	for _, c := range classOdds {
		acc += c.p
		if x < acc {
			return c.class
		}
	}
	return classOdds[len(classOdds)-1].class
}

func round(x float64, places int32) float64 {
	return decimal.NewFromFloat(x).Round(places).InexactFloat64()
}
