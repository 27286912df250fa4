// Package repository holds the league state: every team's incoming and
// outgoing transfers.
package repository

import (
	"context"

	"github.com/okian/portalrank/internal/domain/model"
)

// Store provides read/write access to the league rosters.
type Store interface {
	// Seed replaces the whole league with teams.
	Seed(ctx context.Context, teams []model.Team) error

	// Apply records a single transfer against its team, creating the team
	// on first sight.
	Apply(ctx context.Context, t model.Transfer) error

	// Team returns a copy of the named team.
	// Returns ErrNotFound if the team is unknown.
	Team(ctx context.Context, name string) (model.Team, error)

	// Teams returns copies of every team ordered by name.
	Teams(ctx context.Context) []model.Team

	// Count returns the number of teams tracked.
	Count(ctx context.Context) int

	// Version increases on every successful Seed or Apply.
	Version() uint64
}
