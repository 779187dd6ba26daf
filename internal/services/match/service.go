package match

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/sequencegame/internal/dependencies/clock"
	"github.com/mcoot/sequencegame/internal/dependencies/random"
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/board"
	"github.com/mcoot/sequencegame/internal/services/bot"
	"github.com/mcoot/sequencegame/internal/services/game"
	"github.com/mcoot/sequencegame/internal/services/results"
)

// Service keeps the live matches played over the API. Matches live in
// memory only; a finished match is summarized into results storage.
type Service struct {
	mu      sync.RWMutex
	matches map[model.MatchID]*Match

	boards    board.ServiceInterface
	bots      bot.ServiceInterface
	results   results.ServiceInterface
	publisher Publisher
	clock     clock.Clock
	logger    *slog.Logger
	rootLog   *slog.Logger
}

// NewService creates a new match Service. A nil publisher drops events.
func NewService(
	boards board.ServiceInterface,
	bots bot.ServiceInterface,
	results results.ServiceInterface,
	publisher Publisher,
	clock clock.Clock,
	logger *slog.Logger,
) *Service {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &Service{
		matches:   make(map[model.MatchID]*Match),
		boards:    boards,
		bots:      bots,
		results:   results,
		publisher: publisher,
		clock:     clock,
		logger:    logger.With(slog.String("component", "match-service")),
		rootLog:   logger,
	}
}

// Create starts a new match. Bots seated before the first human take
// their turns before Create returns.
func (s *Service) Create(ctx context.Context, opts CreateOptions) (*Status, error) {
	b, err := s.boards.Create(opts.Layout)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = random.NewSeed()
	}
	rnd := random.NewSeeded(seed)

	id := model.MatchID(uuid.NewString())
	players := make([]model.Player, 0, len(opts.Players))
	controllers := make([]game.Controller, 0, len(opts.Players))
	for i, spec := range opts.Players {
		player := model.Player{
			ID:          spec.ID,
			DisplayName: spec.Name,
			Team:        spec.Team,
			IsBot:       spec.Bot,
		}
		if player.ID == "" {
			player.ID = model.PlayerID(fmt.Sprintf("player-%d", i+1))
		}
		if player.DisplayName == "" {
			player.DisplayName = string(player.ID)
		}

		var controller game.Controller
		if spec.Bot {
			player.BotStrategy = spec.Strategy
			controller, err = s.bots.NewBot(player.ID, spec.Team, spec.Strategy, rnd.Derive(i+1))
			if err != nil {
				return nil, err
			}
		} else {
			controller = game.Seated(player.ID, spec.Team)
		}
		players = append(players, player)
		controllers = append(controllers, controller)
	}

	logger := s.rootLog.With(slog.String("match_id", string(id)))
	engine := game.New(logger, s.clock)
	view := newEventView(id, engine, s.publisher, s.clock)
	engine.AddView(view)

	if err := engine.Initialize(b, controllers, rnd); err != nil {
		return nil, err
	}
	view.start()

	layout := opts.Layout
	if layout == "" {
		layout = board.StandardLayoutName
	}
	m := &Match{
		id:        id,
		series:    opts.Series,
		seed:      seed,
		layout:    layout,
		players:   players,
		engine:    engine,
		createdAt: s.clock.Now(),
	}

	// Opening bot turns run before the match is visible, so a failure
	// leaves nothing behind in the registry
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := s.advance(ctx, m); err != nil {
		s.release(id)
		return nil, err
	}

	s.mu.Lock()
	s.matches[id] = m
	s.mu.Unlock()

	s.logger.Info("match created",
		slog.String("match_id", string(id)),
		slog.Int("player_count", len(players)),
		slog.Uint64("seed", seed),
	)
	return m.status(), nil
}

// Get returns the current status of a match
func (s *Service) Get(ctx context.Context, id model.MatchID) (*Status, error) {
	m, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status(), nil
}

// List returns every live match, oldest first
func (s *Service) List(ctx context.Context) []*Status {
	s.mu.RLock()
	matches := make([]*Match, 0, len(s.matches))
	for _, m := range s.matches {
		matches = append(matches, m)
	}
	s.mu.RUnlock()

	statuses := make([]*Status, 0, len(matches))
	for _, m := range matches {
		m.mu.Lock()
		statuses = append(statuses, m.status())
		m.mu.Unlock()
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].CreatedAt.Before(statuses[j].CreatedAt)
	})
	return statuses
}

// Hand returns a copy of one player's hand
func (s *Service) Hand(ctx context.Context, id model.MatchID, player model.PlayerID) (*model.Hand, error) {
	m, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.Hand(player)
}

// Openings returns the cells that would complete a sequence for a team
func (s *Service) Openings(ctx context.Context, id model.MatchID, team model.Team) ([][2]model.Position, error) {
	if !team.IsValid() {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidTeam, team)
	}
	m, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine.FindOpeningForSequence(team), nil
}

// PlayMove plays a human player's move, then lets any bots that follow take
// their turns
func (s *Service) PlayMove(ctx context.Context, id model.MatchID, player model.PlayerID, move model.Move) (*Status, error) {
	return s.act(ctx, id, player, func(e *game.Engine) error {
		return e.PlayMoveAs(ctx, player, move)
	})
}

// DeadCard discards one of a human player's unplayable cards. The turn does
// not pass.
func (s *Service) DeadCard(ctx context.Context, id model.MatchID, player model.PlayerID, handIndex int) (*Status, error) {
	return s.act(ctx, id, player, func(e *game.Engine) error {
		return e.DeadCardAs(ctx, player, handIndex)
	})
}

func (s *Service) act(ctx context.Context, id model.MatchID, player model.PlayerID, action func(*game.Engine) error) (*Status, error) {
	m, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	seat, ok := m.player(player)
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	if seat.IsBot {
		return nil, fmt.Errorf("%w: %s is a bot", model.ErrNotPlayerTurn, player)
	}

	if err := action(m.engine); err != nil {
		return nil, err
	}
	if err := s.advance(ctx, m); err != nil {
		return nil, err
	}
	return m.status(), nil
}

// advance runs bot turns and records the result once the game ends.
// Must be called with m.mu held.
func (s *Service) advance(ctx context.Context, m *Match) error {
	if err := m.engine.Run(ctx); err != nil {
		return err
	}
	if !m.engine.IsGameOver() || m.recorded || s.results == nil {
		return nil
	}

	summary, err := s.results.Summarize(m.id, m.series, m.engine, m.players)
	if err != nil {
		return err
	}
	if err := s.results.Record(ctx, summary); err != nil {
		// The game itself is over either way; a lost summary is not fatal
		s.logger.Error("failed to record result",
			slog.String("match_id", string(m.id)),
			slog.Any("error", err))
		return nil
	}
	m.recorded = true
	return nil
}

// Remove forgets a match
func (s *Service) Remove(ctx context.Context, id model.MatchID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[id]; !ok {
		return model.ErrMatchNotFound
	}
	delete(s.matches, id)
	s.release(id)
	s.logger.Info("match removed", slog.String("match_id", string(id)))
	return nil
}

// Prune forgets finished matches that ended more than maxAge ago and
// returns their IDs
func (s *Service) Prune(ctx context.Context, maxAge time.Duration) []model.MatchID {
	cutoff := s.clock.Now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []model.MatchID
	for id, m := range s.matches {
		m.mu.Lock()
		finished := m.engine.IsGameOver() && !m.engine.FinishedAt().After(cutoff)
		m.mu.Unlock()
		if finished {
			delete(s.matches, id)
			s.release(id)
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		s.logger.Info("finished matches pruned", slog.Int("removed", len(removed)))
	}
	return removed
}

// release lets the publisher drop any per-match state
func (s *Service) release(id model.MatchID) {
	if c, ok := s.publisher.(interface{ Close(model.MatchID) }); ok {
		c.Close(id)
	}
}

func (s *Service) lookup(id model.MatchID) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return m, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Create(ctx context.Context, opts CreateOptions) (*Status, error)
	Get(ctx context.Context, id model.MatchID) (*Status, error)
	List(ctx context.Context) []*Status
	Hand(ctx context.Context, id model.MatchID, player model.PlayerID) (*model.Hand, error)
	Openings(ctx context.Context, id model.MatchID, team model.Team) ([][2]model.Position, error)
	PlayMove(ctx context.Context, id model.MatchID, player model.PlayerID, move model.Move) (*Status, error)
	DeadCard(ctx context.Context, id model.MatchID, player model.PlayerID, handIndex int) (*Status, error)
	Remove(ctx context.Context, id model.MatchID) error
	Prune(ctx context.Context, maxAge time.Duration) []model.MatchID
}

var _ ServiceInterface = (*Service)(nil)
