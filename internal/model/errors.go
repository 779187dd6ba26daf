package model

import (
	"errors"
	"fmt"
)

// Error kinds. Rule and argument errors below wrap one of these so callers
// can branch on the kind with errors.Is.
var (
	// ErrInvalidArgument is malformed input: bad index, bad position, bad player list
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidMove is a well-formed move the rules do not allow
	ErrInvalidMove = errors.New("invalid move")

	// ErrIllegalState is an operation whose preconditions do not hold yet
	ErrIllegalState = errors.New("illegal state")
)

var (
	// Board errors
	ErrInvalidPosition = fmt.Errorf("%w: position is off the board", ErrInvalidArgument)
	ErrInvalidOccupant = fmt.Errorf("%w: wildcards cannot be placed", ErrInvalidArgument)
	ErrIllegalMove     = fmt.Errorf("%w: wildcard cells cannot be played to", ErrInvalidMove)
	ErrInvalidLayout   = fmt.Errorf("%w: invalid board layout", ErrInvalidArgument)

	// Card errors
	ErrUnknownCard     = fmt.Errorf("%w: unknown card", ErrInvalidArgument)
	ErrIndexOutOfRange = fmt.Errorf("%w: hand index out of range", ErrInvalidArgument)

	// Setup errors
	ErrInsufficientPlayers = fmt.Errorf("%w: at least two players are required", ErrInvalidArgument)
	ErrNilPlayer           = fmt.Errorf("%w: player is nil", ErrInvalidArgument)
	ErrDuplicatePlayer     = fmt.Errorf("%w: player appears twice in the turn order", ErrInvalidArgument)
	ErrInvalidTeam         = fmt.Errorf("%w: invalid team", ErrInvalidArgument)
	ErrUnsupportedTeams    = fmt.Errorf("%w: games need two or three teams", ErrInvalidArgument)
	ErrNilBoard            = fmt.Errorf("%w: board is nil", ErrInvalidArgument)
	ErrTooManyPlayers      = fmt.Errorf("%w: too many players to deal a hand", ErrInvalidArgument)

	// Move errors
	ErrCellOccupied     = fmt.Errorf("%w: cell is already occupied", ErrInvalidMove)
	ErrCardMismatch     = fmt.Errorf("%w: card does not match the cell", ErrInvalidMove)
	ErrRemoveEmpty      = fmt.Errorf("%w: nothing to remove from an empty cell", ErrInvalidMove)
	ErrRemoveOwnChip    = fmt.Errorf("%w: cannot remove your own team's chip", ErrInvalidMove)
	ErrRemoveLockedChip = fmt.Errorf("%w: chip is part of a completed sequence", ErrInvalidMove)
	ErrWildcardTarget   = fmt.Errorf("%w: wildcard corners cannot be targeted", ErrInvalidMove)
	ErrNotPlayerTurn    = fmt.Errorf("%w: not this player's turn", ErrInvalidMove)

	// State errors
	ErrNotInitialized = fmt.Errorf("%w: game has not been initialized", ErrIllegalState)
	ErrGameComplete   = fmt.Errorf("%w: game is already over", ErrIllegalState)
	ErrGameNotOver    = fmt.Errorf("%w: game is not over", ErrIllegalState)
	ErrCardNotDead    = fmt.Errorf("%w: card can still be played", ErrIllegalState)
	ErrDeckExhausted  = fmt.Errorf("%w: no cards left to draw", ErrIllegalState)
	ErrGameStalled    = fmt.Errorf("%w: game did not finish within the turn limit", ErrIllegalState)

	// Lookup errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrMatchNotFound   = errors.New("match not found")
	ErrSummaryNotFound = errors.New("game summary not found")
	ErrTallyNotFound   = errors.New("tally not found")
)
