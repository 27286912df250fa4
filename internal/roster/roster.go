// Package roster reads and writes the league as a flat CSV of transfers,
// one row per player movement.
package roster

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/okian/portalrank/internal/domain/model"
	"github.com/okian/portalrank/internal/domain/valuation"
)

// Row is one transfer in CSV form. Value and Score are written on export
// and ignored on import.
type Row struct {
	Team            string  `csv:"team"`
	Conference      string  `csv:"conference"`
	Direction       string  `csv:"direction"`
	Name            string  `csv:"name"`
	Position        string  `csv:"position"`
	Class           string  `csv:"player_class"`
	HSRating        float64 `csv:"hs_rating"`
	HSRank          int     `csv:"hs_rank"`
	GamesPlayed     int     `csv:"games_played"`
	StatsPercentile string  `csv:"stats_percentile"` // empty when unknown
	PreviousTeam    string  `csv:"previous_team"`
	NewTeam         string  `csv:"new_team"`
	Status          string  `csv:"status"`
	TransferDate    string  `csv:"transfer_date"`
	Value           string  `csv:"value"`
	Score           string  `csv:"score"`
}

// Valuer values a single player.
type Valuer interface {
	Value(p model.Player) (valuation.Result, error)
}

// Read parses r into teams ordered by name. Rows for the same team are
// merged; the first non-empty conference wins.
func Read(r io.Reader) ([]model.Team, error) {
	var rows []Row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return Teams(rows)
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) ([]model.Team, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	teams, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return teams, nil
}

// Teams groups rows into teams ordered by name.
func Teams(rows []Row) ([]model.Team, error) {
	byName := make(map[string]*model.Team)
	for i, row := range rows {
		line := i + 2 // header is line 1
		name := strings.TrimSpace(row.Team)
		if name == "" {
			return nil, fmt.Errorf("%w: line %d: team is required", ErrParse, line)
		}
		p, err := row.Player()
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrParse, line, err)
		}

		t, ok := byName[name]
		if !ok {
			t = &model.Team{Name: name}
			byName[name] = t
		}
		if t.Conference == "" {
			t.Conference = strings.TrimSpace(row.Conference)
		}
		switch model.Direction(strings.ToLower(strings.TrimSpace(row.Direction))) {
		case model.Inflow:
			t.Inflows = append(t.Inflows, p)
		case model.Outflow:
			t.Outflows = append(t.Outflows, p)
		default:
			return nil, fmt.Errorf("%w: line %d: direction %q must be in or out", ErrParse, line, row.Direction)
		}
	}

	out := make([]model.Team, 0, len(byName))
	for _, t := range byName {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Player converts the row's player columns.
func (r Row) Player() (model.Player, error) {
	p := model.Player{
		Name:         strings.TrimSpace(r.Name),
		Position:     model.Position(strings.ToUpper(strings.TrimSpace(r.Position))),
		Class:        model.Class(strings.TrimSpace(r.Class)),
		HSRating:     r.HSRating,
		GamesPlayed:  r.GamesPlayed,
		HSRank:       r.HSRank,
		PreviousTeam: r.PreviousTeam,
		NewTeam:      r.NewTeam,
		Status:       r.Status,
		TransferDate: r.TransferDate,
	}
	if s := strings.TrimSpace(r.StatsPercentile); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.Player{}, fmt.Errorf("stats_percentile %q: %w", s, err)
		}
		p.StatsPercentile = model.Percentile(v)
	}
	return p, nil
}

// Rows flattens teams into rows, inflows before outflows per team. When v is
// non-nil every row carries the player's value and score.
func Rows(teams []model.Team, v Valuer) ([]Row, error) {
	var rows []Row
	for _, t := range teams {
		for _, flow := range []struct {
			dir     model.Direction
			players []model.Player
		}{{model.Inflow, t.Inflows}, {model.Outflow, t.Outflows}} {
			for _, p := range flow.players {
				row := fromPlayer(t, flow.dir, p)
				if v != nil {
					res, err := v.Value(p)
					if err != nil {
						return nil, fmt.Errorf("team %q player %q: %w", t.Name, p.Name, err)
					}
					row.Value = strconv.FormatFloat(res.Value, 'f', 2, 64)
					row.Score = strconv.FormatFloat(res.Score, 'f', 2, 64)
				}
				rows = append(rows, row)
			}
		}
	}
	return rows, nil
}

// Write renders teams as CSV to w.
func Write(w io.Writer, teams []model.Team, v Valuer) error {
	rows, err := Rows(teams, v)
	if err != nil {
		return err
	}
	return gocsv.Marshal(&rows, w)
}

func fromPlayer(t model.Team, dir model.Direction, p model.Player) Row {
	row := Row{
		Team:         t.Name,
		Conference:   t.Conference,
		Direction:    string(dir),
		Name:         p.Name,
		Position:     string(p.Position),
		Class:        string(p.Class),
		HSRating:     p.HSRating,
		HSRank:       p.HSRank,
		GamesPlayed:  p.GamesPlayed,
		PreviousTeam: p.PreviousTeam,
		NewTeam:      p.NewTeam,
		Status:       p.Status,
		TransferDate: p.TransferDate,
	}
	if p.StatsPercentile != nil {
		row.StatsPercentile = strconv.FormatFloat(*p.StatsPercentile, 'f', -1, 64)
	}
	return row
}
