package bot

import (
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/game"
)

// FirstStrategy plays the first playable card in hand to its top-left
// legal cell, holding one-eyed jacks back until nothing else can be played
type FirstStrategy struct{}

// NewFirstStrategy creates a new FirstStrategy
func NewFirstStrategy() *FirstStrategy {
	return &FirstStrategy{}
}

// Name returns the registry name of the strategy
func (s *FirstStrategy) Name() string {
	return model.BotStrategyFirst
}

// Choose returns the first placement in hand order, then the first removal
func (s *FirstStrategy) Choose(view GameView, seat game.Seat, hand *model.Hand) Decision {
	playable, dead := options(view, seat, hand)
	for _, removals := range []bool{false, true} {
		for _, opt := range playable {
			if opt.card.IsOneEyedJack() == removals {
				// targets are in row-major order
				return Play(opt.targets[0], opt.index)
			}
		}
	}
	return deadOrFirst(dead)
}
