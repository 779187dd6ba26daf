package bot

import (
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/game"
)

// GameView is the read-only part of a game a strategy may look at
type GameView interface {
	Board() *model.Board
	Hand(player model.PlayerID) (*model.Hand, error)
	Seats() []game.Seat
	LegalTargets(team model.Team, card model.Card) []model.Position
	FindOpeningForSequence(team model.Team) [][2]model.Position
	Chips() map[model.Team][]model.Position
}

var _ GameView = (*game.Engine)(nil)

// Decision is what a strategy wants to do next: replace a dead card, or
// play a move
type Decision struct {
	Dead bool
	Move model.Move
}

// Play returns a decision to play card index at pos
func Play(pos model.Position, index int) Decision {
	return Decision{Move: model.Move{Position: pos, HandIndex: index}}
}

// Dead returns a decision to replace the dead card at index
func Dead(index int) Decision {
	return Decision{Dead: true, Move: model.Move{HandIndex: index}}
}

// Strategy defines how a bot chooses its next action. Choose is called
// again after a dead card is replaced and after a rejected move.
type Strategy interface {
	Name() string
	Choose(view GameView, seat game.Seat, hand *model.Hand) Decision
}

// option is one card in hand with every cell it can legally go to
type option struct {
	index   int
	card    model.Card
	targets []model.Position
}

// options splits a hand into playable options and the indexes of dead
// cards, preserving hand order
func options(view GameView, seat game.Seat, hand *model.Hand) (playable []option, dead []int) {
	for i, card := range hand.Cards() {
		targets := view.LegalTargets(seat.Team, card)
		if len(targets) == 0 {
			dead = append(dead, i)
			continue
		}
		playable = append(playable, option{index: i, card: card, targets: targets})
	}
	return playable, dead
}

// deadOrFirst returns the first dead card, or index 0 when nothing is dead
// and nothing is playable either
func deadOrFirst(dead []int) Decision {
	if len(dead) > 0 {
		return Dead(dead[0])
	}
	return Dead(0)
}
