package model

import "time"

// MatchID uniquely identifies a live match
type MatchID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStateNew          GameState = "new"           // Not yet initialized
	GameStateAwaitingMove GameState = "awaiting_move" // Waiting on the current player
	GameStateGameOver     GameState = "game_over"     // Terminal
)

// DealSize returns how many cards each hand starts with for a given number
// of players split across a given number of teams. Tables too large to
// deal at least one card come out below 1.
func DealSize(numPlayers, numTeams int) int {
	if numTeams == 3 {
		return 7 - numPlayers/3
	}
	return 8 - numPlayers/2
}

// SequencesToWin is the number of sequences a team needs to win
const SequencesToWin = 2

// SequenceLength is the number of cells in a run
const SequenceLength = 5

// GameSummary is a lightweight record of a completed game
type GameSummary struct {
	ID          MatchID
	Series      string // Groups summaries for tallying, e.g. one experiment
	Players     []Player
	Winner      Team // TeamNone on a tie
	Sequences   map[Team]int
	NumMoves    int
	CompletedAt time.Time
}

// IsTie returns true if the game ended without a winner
func (s *GameSummary) IsTie() bool {
	return s.Winner == TeamNone
}

// Tally aggregates results across many games
type Tally struct {
	Series     string
	Wins       map[Team]int
	Ties       int
	Games      int
	TotalMoves int
}

// NewTally creates an empty tally for a series
func NewTally(series string) *Tally {
	return &Tally{Series: series, Wins: make(map[Team]int)}
}

// AverageMoves returns the mean number of moves per game
func (t *Tally) AverageMoves() float64 {
	if t.Games == 0 {
		return 0
	}
	return float64(t.TotalMoves) / float64(t.Games)
}
