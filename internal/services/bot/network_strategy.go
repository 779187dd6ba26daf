package bot

import (
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/game"
	"github.com/mcoot/sequencegame/internal/services/sequence"
)

// networkReach is how far away an allied chip can be and still share a
// potential sequence with a cell
const networkReach = model.SequenceLength - 1

// NetworkStrategy builds lines. In order it will:
//   - replace a dead card
//   - complete one of its own sequences
//   - block a cell that would complete an opponent's sequence
//   - place where the most allied chips share a line with the cell
//   - remove an opponent's chip
//
// Two-eyed jacks are only used when they beat every face card.
type NetworkStrategy struct{}

// NewNetworkStrategy creates a new NetworkStrategy
func NewNetworkStrategy() *NetworkStrategy {
	return &NetworkStrategy{}
}

// Name returns the registry name of the strategy
func (s *NetworkStrategy) Name() string {
	return model.BotStrategyNetwork
}

// Choose picks the next action
func (s *NetworkStrategy) Choose(view GameView, seat game.Seat, hand *model.Hand) Decision {
	playable, dead := options(view, seat, hand)
	for _, i := range dead {
		if card, _ := hand.CardAt(i); !card.Value.IsJack() {
			return Dead(i)
		}
	}

	placements := make([]option, 0, len(playable))
	var removals []option
	for _, opt := range playable {
		if opt.card.IsOneEyedJack() {
			removals = append(removals, opt)
		} else {
			placements = append(placements, opt)
		}
	}

	if d, ok := playOpening(placements, view.FindOpeningForSequence(seat.Team)); ok {
		return d
	}
	for _, other := range opponents(view, seat.Team) {
		openings := view.FindOpeningForSequence(other)
		if d, ok := playOpening(placements, openings); ok {
			return d
		}
		if d, ok := breakOpening(removals, openings); ok {
			return d
		}
	}

	if d, ok := s.bestPlacement(view, seat.Team, placements); ok {
		return d
	}
	if len(removals) > 0 {
		return Play(removals[0].targets[0], removals[0].index)
	}
	return deadOrFirst(dead)
}

// bestPlacement scores every placement by the allied chips in line with
// it. Face cards win ties against two-eyed jacks.
func (s *NetworkStrategy) bestPlacement(view GameView, team model.Team, placements []option) (Decision, bool) {
	b := view.Board()
	mine := view.Chips()[team]

	var (
		best      Decision
		bestScore = -1
		found     bool
	)
	for _, jacks := range []bool{false, true} {
		for _, opt := range placements {
			if opt.card.IsTwoEyedJack() != jacks {
				continue
			}
			for _, target := range opt.targets {
				score := networkScore(b, team, mine, target)
				if score > bestScore || (score == bestScore && !jacks) {
					best, bestScore, found = Play(target, opt.index), score, true
				}
			}
		}
	}
	return best, found
}

// networkScore rates a cell by the allied chips within reach on a shared
// line, with the longest run through the cell as the tie-breaker
func networkScore(b *model.Board, team model.Team, mine []model.Position, target model.Position) int {
	inLine := 0
	for _, pos := range mine {
		if target.InLine(pos, networkReach) {
			inLine++
		}
	}
	return inLine*model.SequenceLength + sequence.Potential(b, target, team)
}

// playOpening finds a placement onto any of the openings, preferring face
// cards to two-eyed jacks
func playOpening(placements []option, openings [][2]model.Position) (Decision, bool) {
	if len(openings) == 0 {
		return Decision{}, false
	}
	wanted := make(map[model.Position]bool, len(openings))
	for _, pair := range openings {
		wanted[pair[1]] = true
	}

	for _, jacks := range []bool{false, true} {
		for _, opt := range placements {
			if opt.card.IsTwoEyedJack() != jacks {
				continue
			}
			for _, target := range opt.targets {
				if wanted[target] {
					return Play(target, opt.index), true
				}
			}
		}
	}
	return Decision{}, false
}

// breakOpening removes the allied chip anchoring an opponent's opening
func breakOpening(removals []option, openings [][2]model.Position) (Decision, bool) {
	for _, pair := range openings {
		for _, opt := range removals {
			for _, target := range opt.targets {
				if target == pair[0] {
					return Play(target, opt.index), true
				}
			}
		}
	}
	return Decision{}, false
}

// opponents returns the other teams seated in the game in turn order
func opponents(view GameView, team model.Team) []model.Team {
	seen := map[model.Team]bool{team: true}
	var others []model.Team
	for _, seat := range view.Seats() {
		if !seen[seat.Team] {
			seen[seat.Team] = true
			others = append(others, seat.Team)
		}
	}
	return others
}
