package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/game"
)

// MaxAttempts bounds the decisions a bot may make in one turn, dead cards
// and rejected moves included
const MaxAttempts = 32

// Controller seats a strategy at a game
type Controller struct {
	seat     game.Seat
	strategy Strategy
	logger   *slog.Logger

	results []model.Team
}

var _ game.Controller = (*Controller)(nil)

// NewController creates a bot for the given seat
func NewController(id model.PlayerID, team model.Team, strategy Strategy, logger *slog.Logger) *Controller {
	return &Controller{
		seat:     game.Seat{ID: id, Team: team},
		strategy: strategy,
		logger: logger.With(
			slog.String("component", "bot"),
			slog.String("player_id", string(id)),
			slog.String("strategy", strategy.Name()),
		),
	}
}

// ID returns the seat's player ID
func (c *Controller) ID() model.PlayerID {
	return c.seat.ID
}

// Team returns the seat's team
func (c *Controller) Team() model.Team {
	return c.seat.Team
}

// Strategy returns the strategy this bot plays
func (c *Controller) Strategy() Strategy {
	return c.strategy
}

// Results returns the winner of every game this bot has finished
func (c *Controller) Results() []model.Team {
	out := make([]model.Team, len(c.results))
	copy(out, c.results)
	return out
}

// BeginTurn asks the strategy for decisions until a move is accepted.
// Rule rejections are retried; anything else ends the turn with an error.
func (c *Controller) BeginTurn(ctx context.Context, e *game.Engine) error {
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		hand, err := e.Hand(c.seat.ID)
		if err != nil {
			return err
		}
		decision := c.strategy.Choose(e, c.seat, hand)

		if decision.Dead {
			err = e.DeadCard(ctx, decision.Move.HandIndex)
		} else {
			err = e.PlayMove(ctx, decision.Move)
			if err == nil {
				return nil
			}
		}

		if err != nil {
			if !retryable(err) {
				return err
			}
			c.logger.Warn("bot decision rejected",
				slog.Int("attempt", attempt),
				slog.Bool("dead_card", decision.Dead),
				slog.String("error", err.Error()),
			)
		}
	}

	return c.fallback(ctx, e)
}

// fallback plays the first legal move when the strategy keeps failing
func (c *Controller) fallback(ctx context.Context, e *game.Engine) error {
	hand, err := e.Hand(c.seat.ID)
	if err != nil {
		return err
	}
	decision := NewFirstStrategy().Choose(e, c.seat, hand)
	if decision.Dead {
		return fmt.Errorf("%w: %s has no legal move", model.ErrIllegalState, c.seat.ID)
	}
	c.logger.Warn("bot fell back to first legal move")
	return e.PlayMove(ctx, decision.Move)
}

// ReceiveGameOver records the result
func (c *Controller) ReceiveGameOver(winner model.Team) {
	c.results = append(c.results, winner)
	c.logger.Debug("bot game over", slog.String("winner", winner.String()))
}

func retryable(err error) bool {
	return errors.Is(err, model.ErrInvalidMove) ||
		errors.Is(err, model.ErrInvalidArgument) ||
		errors.Is(err, model.ErrCardNotDead)
}
