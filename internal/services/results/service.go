package results

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/sequencegame/internal/dependencies/clock"
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/game"
	"github.com/mcoot/sequencegame/internal/storage"
)

// DefaultSeries groups results that were not given a series
const DefaultSeries = "default"

// Service persists finished games and reads back tallies
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewService creates a new results Service
func NewService(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "results-service")),
	}
}

// Summarize builds the summary of a finished game on e
func (s *Service) Summarize(id model.MatchID, series string, e *game.Engine, players []model.Player) (*model.GameSummary, error) {
	winner, err := e.Winner()
	if err != nil {
		return nil, err
	}
	if series == "" {
		series = DefaultSeries
	}

	completedAt := e.FinishedAt()
	if completedAt.IsZero() {
		completedAt = s.clock.Now()
	}

	return &model.GameSummary{
		ID:          id,
		Series:      series,
		Players:     append([]model.Player(nil), players...),
		Winner:      winner,
		Sequences:   e.SequenceCounts(),
		NumMoves:    e.MoveCount(),
		CompletedAt: completedAt,
	}, nil
}

// Record saves a summary and adds it to its series tally
func (s *Service) Record(ctx context.Context, summary *model.GameSummary) error {
	if summary.Series == "" {
		summary.Series = DefaultSeries
	}
	if err := s.storage.SaveSummary(ctx, summary); err != nil {
		return fmt.Errorf("saving summary %s: %w", summary.ID, err)
	}
	if err := s.storage.RecordResult(ctx, summary.Series, summary.Winner, summary.NumMoves); err != nil {
		return fmt.Errorf("recording result %s: %w", summary.ID, err)
	}

	s.logger.Info("result recorded",
		slog.String("match_id", string(summary.ID)),
		slog.String("series", summary.Series),
		slog.String("winner", summary.Winner.String()),
		slog.Int("move_count", summary.NumMoves),
	)
	return nil
}

// GetSummary retrieves one finished game
func (s *Service) GetSummary(ctx context.Context, id model.MatchID) (*model.GameSummary, error) {
	return s.storage.GetSummary(ctx, id)
}

// ListSummaries returns the most recent games of a series
func (s *Service) ListSummaries(ctx context.Context, series string, limit int) ([]*model.GameSummary, error) {
	return s.storage.ListSummaries(ctx, series, limit)
}

// GetTally returns the aggregate results of a series
func (s *Service) GetTally(ctx context.Context, series string) (*model.Tally, error) {
	return s.storage.GetTally(ctx, series)
}

// ListSeries returns the names of every series with recorded results
func (s *Service) ListSeries(ctx context.Context) ([]string, error) {
	return s.storage.ListSeries(ctx)
}

// DeleteSeries removes a series and all of its summaries
func (s *Service) DeleteSeries(ctx context.Context, series string) error {
	if err := s.storage.DeleteSeries(ctx, series); err != nil {
		return err
	}
	s.logger.Info("series deleted", slog.String("series", series))
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Summarize(id model.MatchID, series string, e *game.Engine, players []model.Player) (*model.GameSummary, error)
	Record(ctx context.Context, summary *model.GameSummary) error
	GetSummary(ctx context.Context, id model.MatchID) (*model.GameSummary, error)
	ListSummaries(ctx context.Context, series string, limit int) ([]*model.GameSummary, error)
	GetTally(ctx context.Context, series string) (*model.Tally, error)
	ListSeries(ctx context.Context) ([]string, error)
	DeleteSeries(ctx context.Context, series string) error
}

var _ ServiceInterface = (*Service)(nil)
