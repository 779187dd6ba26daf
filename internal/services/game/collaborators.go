package game

import (
	"context"

	"github.com/mcoot/sequencegame/internal/model"
)

// Controller occupies one seat. BeginTurn is called when the seat is up
// and should make exactly one PlayMove on the engine, after any number of
// DeadCard calls. A controller that returns without moving, such as a
// remote human, leaves the engine waiting for input.
type Controller interface {
	ID() model.PlayerID
	Team() model.Team
	BeginTurn(ctx context.Context, e *Engine) error
	ReceiveGameOver(winner model.Team)
}

// View observes a game. Redraw follows every successful move or dead card
// and GameOver is sent once. Views must not change engine state.
type View interface {
	Redraw()
	GameOver(winner model.Team)
}

// ScoreKeeper is told the winner of each finished game, TeamNone on a tie
type ScoreKeeper interface {
	Increment(winner model.Team)
}

// MoveCounter is an optional extension of ScoreKeeper that also receives
// the number of moves the game took
type MoveCounter interface {
	ReceiveNumMoves(n int)
}

// Seat pairs a player with their team
type Seat struct {
	ID   model.PlayerID `json:"id"`
	Team model.Team     `json:"team"`
}

// idleController holds a seat without ever moving; moves arrive through
// PlayMoveAs instead
type idleController struct {
	seat Seat
}

// Seated returns a controller for a seat whose moves are submitted from
// outside the turn loop
func Seated(id model.PlayerID, team model.Team) Controller {
	return &idleController{seat: Seat{ID: id, Team: team}}
}

func (c *idleController) ID() model.PlayerID { return c.seat.ID }

func (c *idleController) Team() model.Team { return c.seat.Team }

func (c *idleController) BeginTurn(context.Context, *Engine) error { return nil }

func (c *idleController) ReceiveGameOver(model.Team) {}
