package bot

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/mcoot/sequencegame/internal/dependencies/random"
	"github.com/mcoot/sequencegame/internal/model"
)

// StrategyFactory builds a strategy for one bot. Strategies that need
// randomness get the bot's own source.
type StrategyFactory func(rnd random.Random) Strategy

// DefaultStrategies returns the built-in strategies by name
func DefaultStrategies() map[string]StrategyFactory {
	return map[string]StrategyFactory{
		model.BotStrategyRandom:  func(rnd random.Random) Strategy { return NewRandomStrategy(rnd) },
		model.BotStrategyFirst:   func(random.Random) Strategy { return NewFirstStrategy() },
		model.BotStrategyNetwork: func(random.Random) Strategy { return NewNetworkStrategy() },
	}
}

// Service creates bot players
type Service struct {
	strategies map[string]StrategyFactory
	botLogger  *slog.Logger
	logger     *slog.Logger
}

// NewService creates a new bot Service
func NewService(strategies map[string]StrategyFactory, logger *slog.Logger) *Service {
	return &Service{
		strategies: strategies,
		botLogger:  logger,
		logger:     logger.With(slog.String("component", "bot-service")),
	}
}

// NewBot seats a bot playing the named strategy
func (s *Service) NewBot(id model.PlayerID, team model.Team, strategy string, rnd random.Random) (*Controller, error) {
	factory, ok := s.strategies[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: unknown bot strategy %q", model.ErrInvalidArgument, strategy)
	}
	if !team.IsValid() {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidTeam, team)
	}

	s.logger.Debug("bot created",
		slog.String("player_id", string(id)),
		slog.String("team", team.String()),
		slog.String("strategy", strategy),
	)
	return NewController(id, team, factory(rnd), s.botLogger), nil
}

// Strategies returns the registered strategy names, sorted
func (s *Service) Strategies() []string {
	names := make([]string, 0, len(s.strategies))
	for name := range s.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasStrategy returns true if the named strategy is registered
func (s *Service) HasStrategy(name string) bool {
	_, ok := s.strategies[name]
	return ok
}

// Interface for dependency injection
type ServiceInterface interface {
	NewBot(id model.PlayerID, team model.Team, strategy string, rnd random.Random) (*Controller, error)
	Strategies() []string
	HasStrategy(name string) bool
}

var _ ServiceInterface = (*Service)(nil)
