package model

// Hand is the ordered set of cards a player holds. Order carries no rule
// meaning but moves address cards by index.
type Hand struct {
	Owner PlayerID
	Team  Team
	cards []Card
}

// NewHand creates an empty hand
func NewHand(owner PlayerID, team Team) *Hand {
	return &Hand{Owner: owner, Team: team}
}

// Size returns the number of cards held
func (h *Hand) Size() int {
	return len(h.cards)
}

// CardAt returns the card at index i
func (h *Hand) CardAt(i int) (Card, error) {
	if i < 0 || i >= len(h.cards) {
		return Card{}, ErrIndexOutOfRange
	}
	return h.cards[i], nil
}

// RemoveAt removes and returns the card at index i, shifting later cards down
func (h *Hand) RemoveAt(i int) (Card, error) {
	if i < 0 || i >= len(h.cards) {
		return Card{}, ErrIndexOutOfRange
	}
	card := h.cards[i]
	h.cards = append(h.cards[:i], h.cards[i+1:]...)
	return card, nil
}

// Add appends a card
func (h *Hand) Add(card Card) {
	h.cards = append(h.cards, card)
}

// Cards returns a copy of the held cards
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Count returns how many copies of card are held
func (h *Hand) Count(card Card) int {
	n := 0
	for _, c := range h.cards {
		if c == card {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the hand
func (h *Hand) Clone() *Hand {
	return &Hand{Owner: h.Owner, Team: h.Team, cards: h.Cards()}
}
