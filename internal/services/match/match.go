package match

import (
	"sync"
	"time"

	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/game"
)

// PlayerSpec describes one seat of a new match
type PlayerSpec struct {
	ID       model.PlayerID
	Name     string
	Team     model.Team
	Bot      bool
	Strategy string // Required for bots
}

// CreateOptions configures a new match
type CreateOptions struct {
	Players []PlayerSpec // In turn order
	Layout  string       // Board layout name, empty for standard
	Series  string       // Results series, empty for the default
	Seed    uint64       // Zero picks a fresh seed
}

// Match is one live game. All access to the engine goes through mu.
type Match struct {
	mu sync.Mutex

	id        model.MatchID
	series    string
	seed      uint64
	layout    string
	players   []model.Player
	engine    *game.Engine
	createdAt time.Time
	recorded  bool
}

// Status is a point-in-time copy of a match that is safe to hand out
type Status struct {
	ID          model.MatchID
	Series      string
	Seed        uint64
	Layout      string
	State       model.GameState
	Players     []model.Player
	Board       *model.Board
	CurrentTurn model.PlayerID
	CurrentTeam model.Team
	Sequences   map[model.Team]int
	MoveCount   int
	DeckSize    int
	Winner      model.Team // Only meaningful once State is game over
	CreatedAt   time.Time
	FinishedAt  time.Time
}

// IsOver returns true if the game has finished
func (s *Status) IsOver() bool {
	return s.State == model.GameStateGameOver
}

// status must be called with mu held
func (m *Match) status() *Status {
	winner, _ := m.engine.Winner()
	return &Status{
		ID:          m.id,
		Series:      m.series,
		Seed:        m.seed,
		Layout:      m.layout,
		State:       m.engine.State(),
		Players:     append([]model.Player(nil), m.players...),
		Board:       m.engine.Board(),
		CurrentTurn: m.engine.CurrentTurn(),
		CurrentTeam: m.engine.CurrentTeam(),
		Sequences:   m.engine.SequenceCounts(),
		MoveCount:   m.engine.MoveCount(),
		DeckSize:    len(m.engine.DeckCards()),
		Winner:      winner,
		CreatedAt:   m.createdAt,
		FinishedAt:  m.engine.FinishedAt(),
	}
}

// player looks up a seat, must be called with mu held
func (m *Match) player(id model.PlayerID) (model.Player, bool) {
	for _, p := range m.players {
		if p.ID == id {
			return p, true
		}
	}
	return model.Player{}, false
}
