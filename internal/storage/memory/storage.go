package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	summaries map[model.MatchID]*model.GameSummary
	bySeries  map[string][]model.MatchID
	tallies   map[string]*model.Tally
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		summaries: make(map[model.MatchID]*model.GameSummary),
		bySeries:  make(map[string][]model.MatchID),
		tallies:   make(map[string]*model.Tally),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Summary operations

func (s *Storage) SaveSummary(ctx context.Context, summary *model.GameSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.summaries[summary.ID]; !exists {
		s.bySeries[summary.Series] = append(s.bySeries[summary.Series], summary.ID)
	}
	s.summaries[summary.ID] = copySummary(summary)
	return nil
}

func (s *Storage) GetSummary(ctx context.Context, id model.MatchID) (*model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[id]
	if !ok {
		return nil, model.ErrSummaryNotFound
	}
	return copySummary(summary), nil
}

func (s *Storage) ListSummaries(ctx context.Context, series string, limit int) ([]*model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.bySeries[series]
	summaries := make([]*model.GameSummary, 0, len(ids))
	for _, id := range ids {
		summaries = append(summaries, copySummary(s.summaries[id]))
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CompletedAt.After(summaries[j].CompletedAt)
	})
	if limit > 0 && len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// Tally operations

func (s *Storage) RecordResult(ctx context.Context, series string, winner model.Team, numMoves int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tally, ok := s.tallies[series]
	if !ok {
		tally = model.NewTally(series)
		s.tallies[series] = tally
	}
	tally.Games++
	tally.TotalMoves += numMoves
	if winner == model.TeamNone {
		tally.Ties++
	} else {
		tally.Wins[winner]++
	}
	return nil
}

func (s *Storage) GetTally(ctx context.Context, series string) (*model.Tally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tally, ok := s.tallies[series]
	if !ok {
		return nil, model.ErrTallyNotFound
	}
	return copyTally(tally), nil
}

func (s *Storage) ListSeries(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	for series := range s.tallies {
		seen[series] = true
	}
	for series := range s.bySeries {
		seen[series] = true
	}
	names := make([]string, 0, len(seen))
	for series := range seen {
		names = append(names, series)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Storage) DeleteSeries(ctx context.Context, series string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.bySeries[series] {
		delete(s.summaries, id)
	}
	delete(s.bySeries, series)
	delete(s.tallies, series)
	return nil
}

func copySummary(summary *model.GameSummary) *model.GameSummary {
	cp := *summary
	cp.Players = append([]model.Player(nil), summary.Players...)
	cp.Sequences = make(map[model.Team]int, len(summary.Sequences))
	for team, n := range summary.Sequences {
		cp.Sequences[team] = n
	}
	return &cp
}

func copyTally(tally *model.Tally) *model.Tally {
	cp := *tally
	cp.Wins = make(map[model.Team]int, len(tally.Wins))
	for team, n := range tally.Wins {
		cp.Wins[team] = n
	}
	return &cp
}
