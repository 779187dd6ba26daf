package model

// Move plays the card at HandIndex of the current player's hand onto Position
type Move struct {
	Position  Position `json:"position"`
	HandIndex int      `json:"hand_index"`
}

// SequenceRecord maps the canonical start of each completed sequence to the
// orientations completed through it. Entries are only ever added.
type SequenceRecord map[Position][]Orientation

// Has returns true if a sequence along o starts at header
func (r SequenceRecord) Has(header Position, o Orientation) bool {
	for _, existing := range r[header] {
		if existing == o {
			return true
		}
	}
	return false
}

// Add records a sequence and returns false if it was already present
func (r SequenceRecord) Add(header Position, o Orientation) bool {
	if r.Has(header, o) {
		return false
	}
	r[header] = append(r[header], o)
	return true
}

// Count returns the total number of recorded sequences
func (r SequenceRecord) Count() int {
	n := 0
	for _, orientations := range r {
		n += len(orientations)
	}
	return n
}

// Clone returns an independent copy of the record
func (r SequenceRecord) Clone() SequenceRecord {
	out := make(SequenceRecord, len(r))
	for header, orientations := range r {
		cp := make([]Orientation, len(orientations))
		copy(cp, orientations)
		out[header] = cp
	}
	return out
}

// TurnOrder maps each player to the one who moves after them
type TurnOrder map[PlayerID]PlayerID

// NewTurnOrder builds a cycle over the given players in order
func NewTurnOrder(players []PlayerID) TurnOrder {
	order := make(TurnOrder, len(players))
	for i, p := range players {
		order[p] = players[(i+1)%len(players)]
	}
	return order
}

// Next returns the player after p
func (o TurnOrder) Next(p PlayerID) PlayerID {
	return o[p]
}
