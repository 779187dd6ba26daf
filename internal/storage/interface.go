package storage

import (
	"context"

	"github.com/mcoot/sequencegame/internal/model"
)

// Storage defines the interface for data persistence. Live games are never
// stored; only the record of finished ones.
type Storage interface {
	// Summary operations
	SaveSummary(ctx context.Context, summary *model.GameSummary) error
	GetSummary(ctx context.Context, id model.MatchID) (*model.GameSummary, error)
	// ListSummaries returns up to limit summaries of a series, newest first.
	// A limit of zero or less returns them all.
	ListSummaries(ctx context.Context, series string, limit int) ([]*model.GameSummary, error)

	// Tally operations
	RecordResult(ctx context.Context, series string, winner model.Team, numMoves int) error
	GetTally(ctx context.Context, series string) (*model.Tally, error)
	ListSeries(ctx context.Context) ([]string, error)
	DeleteSeries(ctx context.Context, series string) error
}
