package bot

import (
	"github.com/mcoot/sequencegame/internal/dependencies/random"
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/game"
)

// RandomStrategy plays a random playable card to a random legal cell
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// Name returns the registry name of the strategy
func (s *RandomStrategy) Name() string {
	return model.BotStrategyRandom
}

// Choose picks a random playable card and a random target for it. With
// nothing playable it gives up a dead card.
func (s *RandomStrategy) Choose(view GameView, seat game.Seat, hand *model.Hand) Decision {
	playable, dead := options(view, seat, hand)
	if len(playable) == 0 {
		return deadOrFirst(dead)
	}
	opt := random.Pick(s.random, playable)
	return Play(random.Pick(s.random, opt.targets), opt.index)
}
