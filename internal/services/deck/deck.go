package deck

import (
	"fmt"

	"github.com/mcoot/sequencegame/internal/dependencies/random"
	"github.com/mcoot/sequencegame/internal/model"
)

// Deck is the shared draw pile plus the discard pile of played cards.
// Every card of the standard deck is always in exactly one of: the draw
// pile, a hand, or the discard pile.
type Deck struct {
	rnd     random.Random
	cards   []model.Card
	discard []model.Card
}

// New creates a full standard deck shuffled with rnd
func New(rnd random.Random) *Deck {
	d := &Deck{rnd: rnd}
	d.cards = model.StandardDeck()
	random.Shuffle(d.rnd, d.cards)
	return d
}

// Len returns the number of cards left to draw
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns the draw pile in draw order
func (d *Deck) Cards() []model.Card {
	out := make([]model.Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// DiscardPile returns the cards played since the last reset
func (d *Deck) DiscardPile() []model.Card {
	out := make([]model.Card, len(d.discard))
	copy(out, d.discard)
	return out
}

// Draw takes the top card. When the pile is empty it is reset first, which
// needs the cards currently held so none of them are duplicated.
func (d *Deck) Draw(held []model.Card) (model.Card, error) {
	if len(d.cards) == 0 {
		d.Reset(held)
	}
	if len(d.cards) == 0 {
		return model.Card{}, fmt.Errorf("%w: every card is held", model.ErrDeckExhausted)
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Discard moves a played card onto the discard pile
func (d *Deck) Discard(card model.Card) {
	d.discard = append(d.discard, card)
}

// Reset rebuilds and shuffles a full deck, then removes one copy of every
// held card. The discard pile is folded back in.
func (d *Deck) Reset(held []model.Card) {
	fresh := model.StandardDeck()
	random.Shuffle(d.rnd, fresh)

	exclude := make(map[model.Card]int, len(held))
	for _, c := range held {
		exclude[c]++
	}

	d.cards = fresh[:0]
	for _, c := range fresh {
		if exclude[c] > 0 {
			exclude[c]--
			continue
		}
		d.cards = append(d.cards, c)
	}
	d.discard = nil
}

// Remaining returns how many copies of card have not been played since the
// last reset. Asking about a card that is not part of the deck is a bug in
// the caller and panics.
func (d *Deck) Remaining(card model.Card) int {
	if !card.IsValid() {
		panic(fmt.Sprintf("deck: remaining count requested for unknown card %v", card))
	}
	played := 0
	for _, c := range d.discard {
		if c == card {
			played++
		}
	}
	return model.CopiesPerCard - played
}

// Count returns the number of copies of card in the draw pile
func (d *Deck) Count(card model.Card) int {
	n := 0
	for _, c := range d.cards {
		if c == card {
			n++
		}
	}
	return n
}

// Clone returns an independent copy sharing the random source
func (d *Deck) Clone() *Deck {
	return &Deck{rnd: d.rnd, cards: d.Cards(), discard: d.DiscardPile()}
}
