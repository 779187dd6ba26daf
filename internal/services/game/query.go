package game

import (
	"time"

	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/sequence"
)

// Everything below returns copies. Nothing a caller does with a result can
// reach the engine's own state.

// State returns the current phase of the game
func (e *Engine) State() model.GameState {
	return e.state
}

// Board returns a snapshot of the board
func (e *Engine) Board() *model.Board {
	if e.board == nil {
		return nil
	}
	return e.board.Clone()
}

// Hand returns a copy of a player's hand
func (e *Engine) Hand(player model.PlayerID) (*model.Hand, error) {
	hand, ok := e.hands[player]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return hand.Clone(), nil
}

// CurrentTurn returns the player whose turn it is
func (e *Engine) CurrentTurn() model.PlayerID {
	return e.current
}

// CurrentTeam returns the team of the player whose turn it is
func (e *Engine) CurrentTeam() model.Team {
	if hand, ok := e.hands[e.current]; ok {
		return hand.Team
	}
	return model.TeamNone
}

// Seats returns the players in turn order
func (e *Engine) Seats() []Seat {
	out := make([]Seat, len(e.seats))
	copy(out, e.seats)
	return out
}

// CardLocations returns the positions showing each card face
func (e *Engine) CardLocations() map[model.Card][]model.Position {
	if e.board == nil {
		return nil
	}
	return e.board.CardLocations()
}

// FindOpeningForSequence returns pairs of [allied chip, empty cell] where
// filling the empty cell would complete a sequence for team
func (e *Engine) FindOpeningForSequence(team model.Team) [][2]model.Position {
	if e.board == nil {
		return nil
	}
	openings := sequence.FindOpenings(e.board, team)
	out := make([][2]model.Position, len(openings))
	for i, o := range openings {
		out[i] = [2]model.Position{o.Allied, o.Opening}
	}
	return out
}

// LegalTargets returns every cell the card could be played to by team
func (e *Engine) LegalTargets(team model.Team, card model.Card) []model.Position {
	if e.board == nil {
		return nil
	}
	return e.legalTargets(card, team)
}

// IsDeadCard returns true if team has nowhere to play card
func (e *Engine) IsDeadCard(team model.Team, card model.Card) bool {
	return len(e.LegalTargets(team, card)) == 0
}

// NumXCardRemaining returns how many copies of card have not been played
// since the last reshuffle. It panics for a card that is not in the deck.
func (e *Engine) NumXCardRemaining(card model.Card) int {
	if e.deck == nil {
		panic(model.ErrNotInitialized)
	}
	return e.deck.Remaining(card)
}

// NumOneEyedJacksRemaining totals NumXCardRemaining over the one-eyed jacks
func (e *Engine) NumOneEyedJacksRemaining() int {
	return e.numValueRemaining(model.ValueOneEyedJack)
}

// NumTwoEyedJacksRemaining totals NumXCardRemaining over the two-eyed jacks
func (e *Engine) NumTwoEyedJacksRemaining() int {
	return e.numValueRemaining(model.ValueTwoEyedJack)
}

func (e *Engine) numValueRemaining(v model.Value) int {
	n := 0
	for _, suit := range model.Suits() {
		n += e.NumXCardRemaining(model.NewCard(v, suit))
	}
	return n
}

// NumSequences returns how many sequences team has completed
func (e *Engine) NumSequences(team model.Team) int {
	return e.counts[team]
}

// SequenceCounts returns the completed sequence count of every team
func (e *Engine) SequenceCounts() map[model.Team]int {
	out := make(map[model.Team]int, len(e.counts))
	for team, n := range e.counts {
		out[team] = n
	}
	return out
}

// Sequences returns the record of completed sequences
func (e *Engine) Sequences() model.SequenceRecord {
	return e.record.Clone()
}

// Chips returns the cells each team holds
func (e *Engine) Chips() map[model.Team][]model.Position {
	if e.board == nil {
		return nil
	}
	return e.board.ChipsByTeam()
}

// MoveCount returns the number of moves played this game
func (e *Engine) MoveCount() int {
	return e.moveCount
}

// DeckCards returns the draw pile in draw order
func (e *Engine) DeckCards() []model.Card {
	if e.deck == nil {
		return nil
	}
	return e.deck.Cards()
}

// DiscardPile returns the cards played since the last reshuffle
func (e *Engine) DiscardPile() []model.Card {
	if e.deck == nil {
		return nil
	}
	return e.deck.DiscardPile()
}

// StartedAt returns when the current game was initialized
func (e *Engine) StartedAt() time.Time {
	return e.startedAt
}

// FinishedAt returns when the current game ended, zero while it is running
func (e *Engine) FinishedAt() time.Time {
	return e.finishedAt
}
