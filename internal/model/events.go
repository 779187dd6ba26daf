package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventRedraw   EventType = "redraw"
	EventGameOver EventType = "game_over"
)

// Event is published to match observers after every successful action
type Event struct {
	Type      EventType
	Timestamp time.Time
	MatchID   MatchID
	PlayerID  PlayerID // The player who acted, empty for game over
	Payload   any      // Type-specific data
}

// RedrawPayload contains data for redraw events
type RedrawPayload struct {
	MoveCount   int      `json:"move_count"`
	CurrentTurn PlayerID `json:"current_turn"`
}

// GameOverPayload contains data for game over events
type GameOverPayload struct {
	Winner    Team         `json:"winner"` // TeamNone on a tie
	NumMoves  int          `json:"num_moves"`
	Sequences map[Team]int `json:"sequences"`
}
