package request

import (
	"fmt"
	"strings"

	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/match"
)

// PlayerRequest describes one seat of a new match
type PlayerRequest struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Team     string `json:"team"`
	Bot      bool   `json:"bot,omitempty"`
	Strategy string `json:"strategy,omitempty"`
}

// CreateMatchRequest is the request body for creating a match
type CreateMatchRequest struct {
	Players []PlayerRequest `json:"players"`
	Layout  string          `json:"layout,omitempty"`
	Series  string          `json:"series,omitempty"`
	Seed    uint64          `json:"seed,omitempty"`
}

// ToOptions converts the request into match options
func (r CreateMatchRequest) ToOptions() (match.CreateOptions, error) {
	opts := match.CreateOptions{
		Layout: r.Layout,
		Series: r.Series,
		Seed:   r.Seed,
	}
	for i, p := range r.Players {
		team, err := model.ParseTeam(p.Team)
		if err != nil {
			return match.CreateOptions{}, fmt.Errorf("player %d: %w", i, err)
		}
		if p.Bot && strings.TrimSpace(p.Strategy) == "" {
			return match.CreateOptions{}, fmt.Errorf("%w: player %d is a bot without a strategy", model.ErrInvalidArgument, i)
		}
		opts.Players = append(opts.Players, match.PlayerSpec{
			ID:       model.PlayerID(p.ID),
			Name:     p.Name,
			Team:     team,
			Bot:      p.Bot,
			Strategy: p.Strategy,
		})
	}
	return opts, nil
}

// MoveRequest is the request body for playing a card
type MoveRequest struct {
	X         int `json:"x"`
	Y         int `json:"y"`
	HandIndex int `json:"hand_index"`
}

// ToMove converts the request into a move
func (r MoveRequest) ToMove() model.Move {
	return model.Move{Position: model.Pos(r.X, r.Y), HandIndex: r.HandIndex}
}

// DeadCardRequest is the request body for discarding a dead card
type DeadCardRequest struct {
	HandIndex int `json:"hand_index"`
}
