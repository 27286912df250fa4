package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/portalrank/internal/domain/model"
)

func transfer(id, team string, dir model.Direction, name string) model.Transfer {
	return model.Transfer{
		TransferID: id,
		Team:       team,
		Direction:  dir,
		Player:     model.Player{Name: name, Position: model.WR, Class: model.Junior, HSRating: 0.9, GamesPlayed: 12},
	}
}

func TestLeague_ApplyCreatesTeams(t *testing.T) {
	ctx := context.Background()
	l := NewLeague()

	if l.Count(ctx) != 0 || l.Version() != 0 {
		t.Fatalf("expected empty league, got count=%d version=%d", l.Count(ctx), l.Version())
	}

	if err := l.Apply(ctx, transfer("t1", "Oregon", model.Inflow, "A")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.Apply(ctx, transfer("t2", "Oregon", model.Outflow, "B")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	team, err := l.Team(ctx, "Oregon")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(team.Inflows) != 1 || len(team.Outflows) != 1 {
		t.Errorf("expected 1 inflow and 1 outflow, got %d/%d", len(team.Inflows), len(team.Outflows))
	}
	if team.Conference != DefaultConference {
		t.Errorf("expected default conference, got %q", team.Conference)
	}
	if l.Version() != 2 {
		t.Errorf("expected version 2, got %d", l.Version())
	}
}

func TestLeague_ApplyRejects(t *testing.T) {
	ctx := context.Background()
	l := NewLeague()

	err := l.Apply(ctx, transfer("t1", "Oregon", model.Direction("sideways"), "A"))
	if !errors.Is(err, ErrUnknownDirection) {
		t.Errorf("expected ErrUnknownDirection, got %v", err)
	}
	err = l.Apply(ctx, transfer("t2", "  ", model.Inflow, "A"))
	if !errors.Is(err, ErrInvalidTransfer) {
		t.Errorf("expected ErrInvalidTransfer, got %v", err)
	}
	if l.Version() != 0 {
		t.Errorf("rejected transfers must not bump the version, got %d", l.Version())
	}
}

func TestLeague_TeamNotFound(t *testing.T) {
	_, err := NewLeague().Team(context.Background(), "Nowhere")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLeague_SeedReplacesAndMerges(t *testing.T) {
	ctx := context.Background()
	l := NewLeague(WithDefaultConference("Independent"))
	_ = l.Apply(ctx, transfer("t1", "Stale", model.Inflow, "Z"))

	err := l.Seed(ctx, []model.Team{
		{Name: "Texas", Conference: "SEC", Inflows: []model.Player{{Name: "A"}}},
		{Name: "Texas", Outflows: []model.Player{{Name: "B"}}},
		{Name: "Army"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := l.Team(ctx, "Stale"); !errors.Is(err, ErrNotFound) {
		t.Errorf("seed should replace existing teams, got %v", err)
	}
	teams := l.Teams(ctx)
	if len(teams) != 2 || teams[0].Name != "Army" || teams[1].Name != "Texas" {
		t.Fatalf("expected [Army Texas], got %+v", teams)
	}
	if teams[0].Conference != "Independent" {
		t.Errorf("expected configured default conference, got %q", teams[0].Conference)
	}
	if len(teams[1].Inflows) != 1 || len(teams[1].Outflows) != 1 || teams[1].Conference != "SEC" {
		t.Errorf("duplicate team rows should merge, got %+v", teams[1])
	}

	if err := l.Seed(ctx, []model.Team{{Name: ""}}); !errors.Is(err, ErrInvalidTransfer) {
		t.Errorf("expected ErrInvalidTransfer for unnamed team, got %v", err)
	}
}

func TestLeague_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	l := NewLeague()
	tr := transfer("t1", "Utah", model.Inflow, "A")
	tr.Player.StatsPercentile = model.Percentile(0.5)
	_ = l.Apply(ctx, tr)

	*tr.Player.StatsPercentile = 0.9
	team, _ := l.Team(ctx, "Utah")
	if got := *team.Inflows[0].StatsPercentile; got != 0.5 {
		t.Errorf("store must not alias caller input, got %v", got)
	}

	team.Inflows[0].Name = "mutated"
	*team.Inflows[0].StatsPercentile = 0.1
	again, _ := l.Team(ctx, "Utah")
	if again.Inflows[0].Name != "A" || *again.Inflows[0].StatsPercentile != 0.5 {
		t.Errorf("store must not alias returned teams, got %+v", again.Inflows[0])
	}
}

func TestLeague_ConcurrentApply(t *testing.T) {
	ctx := context.Background()
	l := NewLeague()

	const goroutines, perG = 8, 100
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				team := fmt.Sprintf("team-%d", i%5)
				_ = l.Apply(ctx, transfer(fmt.Sprintf("%d-%d", g, i), team, model.Inflow, "p"))
				_ = l.Teams(ctx)
			}
		}(g)
	}
	wg.Wait()

	total := 0
	for _, team := range l.Teams(ctx) {
		total += len(team.Inflows)
	}
	if total != goroutines*perG {
		t.Errorf("expected %d inflows, got %d", goroutines*perG, total)
	}
	if l.Version() != goroutines*perG {
		t.Errorf("expected version %d, got %d", goroutines*perG, l.Version())
	}
	if l.Count(ctx) != 5 {
		t.Errorf("expected 5 teams, got %d", l.Count(ctx))
	}
}
