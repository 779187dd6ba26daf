package model

import (
	"fmt"
	"strings"
)

// Value is the face value of a card. Jacks are split by the number of eyes
// on the artwork since the two kinds have different rules.
type Value uint8

const (
	ValueAce Value = iota + 1
	ValueTwo
	ValueThree
	ValueFour
	ValueFive
	ValueSix
	ValueSeven
	ValueEight
	ValueNine
	ValueTen
	ValueQueen
	ValueKing
	ValueOneEyedJack // removes an opponent's chip
	ValueTwoEyedJack // places on any open cell
)

var valueNames = map[Value]string{
	ValueAce:         "A",
	ValueTwo:         "2",
	ValueThree:       "3",
	ValueFour:        "4",
	ValueFive:        "5",
	ValueSix:         "6",
	ValueSeven:       "7",
	ValueEight:       "8",
	ValueNine:        "9",
	ValueTen:         "10",
	ValueQueen:       "Q",
	ValueKing:        "K",
	ValueOneEyedJack: "J1",
	ValueTwoEyedJack: "J2",
}

// Values returns every card value in declaration order
func Values() []Value {
	values := make([]Value, 0, len(valueNames))
	for v := ValueAce; v <= ValueTwoEyedJack; v++ {
		values = append(values, v)
	}
	return values
}

// String returns the short label printed on the card
func (v Value) String() string {
	if name, ok := valueNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Value(%d)", uint8(v))
}

// IsJack returns true for either kind of jack
func (v Value) IsJack() bool {
	return v == ValueOneEyedJack || v == ValueTwoEyedJack
}

// Suit is one of the four standard suits
type Suit uint8

const (
	SuitClubs Suit = iota + 1
	SuitSpades
	SuitHearts
	SuitDiamonds
)

var suitNames = map[Suit]string{
	SuitClubs:    "C",
	SuitSpades:   "S",
	SuitHearts:   "H",
	SuitDiamonds: "D",
}

// Suits returns every suit in declaration order
func Suits() []Suit {
	return []Suit{SuitClubs, SuitSpades, SuitHearts, SuitDiamonds}
}

// String returns the single letter abbreviation of the suit
func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Suit(%d)", uint8(s))
}

// Card identifies a card by value and suit. Cards compare by value so two
// copies of the same card are interchangeable.
type Card struct {
	Value Value
	Suit  Suit
}

// NewCard creates a card
func NewCard(value Value, suit Suit) Card {
	return Card{Value: value, Suit: suit}
}

// IsValid returns true if both value and suit are known
func (c Card) IsValid() bool {
	_, okValue := valueNames[c.Value]
	_, okSuit := suitNames[c.Suit]
	return okValue && okSuit
}

// IsOneEyedJack returns true for the removal wildcard
func (c Card) IsOneEyedJack() bool {
	return c.Value == ValueOneEyedJack
}

// IsTwoEyedJack returns true for the placement wildcard
func (c Card) IsTwoEyedJack() bool {
	return c.Value == ValueTwoEyedJack
}

// String renders the card as value followed by suit, e.g. "10H" or "J1S"
func (c Card) String() string {
	return c.Value.String() + c.Suit.String()
}

// MarshalText implements encoding.TextMarshaler
func (c Card) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCard, c)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses the String form of a card, case-insensitively
func ParseCard(s string) (Card, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrUnknownCard, s)
	}

	valuePart, suitPart := s[:len(s)-1], s[len(s)-1:]

	var card Card
	for v, name := range valueNames {
		if name == valuePart {
			card.Value = v
			break
		}
	}
	for st, name := range suitNames {
		if name == suitPart {
			card.Suit = st
			break
		}
	}

	if !card.IsValid() {
		return Card{}, fmt.Errorf("%w: %q", ErrUnknownCard, s)
	}
	return card, nil
}

// CopiesPerCard is how many of each card the standard deck holds
const CopiesPerCard = 2

// AllCards returns one of each card identity, jacks included
func AllCards() []Card {
	cards := make([]Card, 0, len(valueNames)*len(suitNames))
	for _, v := range Values() {
		for _, s := range Suits() {
			cards = append(cards, NewCard(v, s))
		}
	}
	return cards
}

// StandardDeck returns the unshuffled 112-card deck: two copies of every card
func StandardDeck() []Card {
	all := AllCards()
	deck := make([]Card, 0, len(all)*CopiesPerCard)
	for _, c := range all {
		for range CopiesPerCard {
			deck = append(deck, c)
		}
	}
	return deck
}
