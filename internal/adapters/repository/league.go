package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/okian/portalrank/internal/domain/model"
	"github.com/okian/portalrank/pkg/metrics"
)

var _ Store = (*League)(nil)

// League is an in-memory Store. Reads return deep copies, so callers may
// value or mutate them freely while transfers keep arriving.
type League struct {
	mu                sync.RWMutex
	teams             map[string]*model.Team
	defaultConference string

	version atomic.Uint64
}

// NewLeague creates an empty league.
func NewLeague(opts ...Option) *League {
	l := &League{
		teams:             make(map[string]*model.Team),
		defaultConference: DefaultConference,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Seed replaces the league with teams. Teams sharing a name are merged.
func (l *League) Seed(_ context.Context, teams []model.Team) error {
	next := make(map[string]*model.Team, len(teams))
	for i, t := range teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return fmt.Errorf("%w: team #%d has no name", ErrInvalidTransfer, i)
		}
		cur, ok := next[name]
		if !ok {
			cur = &model.Team{Name: name, Conference: l.conference(t.Conference)}
			next[name] = cur
		}
		cur.Inflows = append(cur.Inflows, copyPlayers(t.Inflows)...)
		cur.Outflows = append(cur.Outflows, copyPlayers(t.Outflows)...)
	}

	l.mu.Lock()
	l.teams = next
	l.mu.Unlock()

	l.bump(len(next))
	return nil
}

// Apply records t against its team.
func (l *League) Apply(_ context.Context, t model.Transfer) error {
	name := strings.TrimSpace(t.Team)
	if name == "" {
		return fmt.Errorf("%w: %s: team is required", ErrInvalidTransfer, t.TransferID)
	}
	if t.Direction != model.Inflow && t.Direction != model.Outflow {
		return fmt.Errorf("%w: %q", ErrUnknownDirection, t.Direction)
	}

	p := copyPlayer(t.Player)

	l.mu.Lock()
	cur, ok := l.teams[name]
	if !ok {
		cur = &model.Team{Name: name, Conference: l.conference(t.Conference)}
		l.teams[name] = cur
	}
	if t.Direction == model.Inflow {
		cur.Inflows = append(cur.Inflows, p)
	} else {
		cur.Outflows = append(cur.Outflows, p)
	}
	n := len(l.teams)
	l.mu.Unlock()

	l.bump(n)
	return nil
}

// Team returns a copy of the named team.
func (l *League) Team(_ context.Context, name string) (model.Team, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cur, ok := l.teams[strings.TrimSpace(name)]
	if !ok {
		return model.Team{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return copyTeam(cur), nil
}

// Teams returns copies of every team ordered by name.
func (l *League) Teams(_ context.Context) []model.Team {
	l.mu.RLock()
	out := make([]model.Team, 0, len(l.teams))
	for _, t := range l.teams {
		out = append(out, copyTeam(t))
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count returns the number of teams tracked.
func (l *League) Count(_ context.Context) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.teams)
}

// Version increases on every successful Seed or Apply.
func (l *League) Version() uint64 { return l.version.Load() }

func (l *League) bump(teams int) {
	v := l.version.Add(1)
	metrics.UpdateLeagueVersion(v)
	metrics.UpdateTeamsTracked(teams)
}

func (l *League) conference(c string) string {
	if c = strings.TrimSpace(c); c != "" {
		return c
	}
	return l.defaultConference
}

func copyTeam(t *model.Team) model.Team {
	return model.Team{
		Name:       t.Name,
		Conference: t.Conference,
		Inflows:    copyPlayers(t.Inflows),
		Outflows:   copyPlayers(t.Outflows),
	}
}

func copyPlayers(ps []model.Player) []model.Player {
	out := make([]model.Player, len(ps))
	for i, p := range ps {
		out[i] = copyPlayer(p)
	}
	return out
}

func copyPlayer(p model.Player) model.Player {
	if p.StatsPercentile != nil {
		p.StatsPercentile = model.Percentile(*p.StatsPercentile)
	}
	return p
}
