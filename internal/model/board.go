package model

// Cell is one square of the board. Cells are values: anything returned by
// the Board is a copy and can be changed freely by the caller.
type Cell struct {
	Wildcard bool                  // Corner cell with no card face
	Card     Card                  // Fixed face; zero for wildcard cells
	Occupant Occupant              // Current chip, or Wildcard for corners
	Locks    [NumOrientations]bool // Per-orientation sequence locks
}

// PlayableCell creates an empty cell showing the given card
func PlayableCell(card Card) Cell {
	return Cell{Card: card, Occupant: Empty()}
}

// WildcardCell creates a corner cell
func WildcardCell() Cell {
	return Cell{Wildcard: true, Occupant: Wildcard()}
}

// HasChip returns true if the cell counts as occupied. Wildcards always do.
func (c Cell) HasChip() bool {
	return !c.Occupant.IsEmpty()
}

// IsLockedIn returns true if the cell is part of a sequence along o
func (c Cell) IsLockedIn(o Orientation) bool {
	return c.Locks[o]
}

// IsLocked returns true if the cell is part of any sequence
func (c Cell) IsLocked() bool {
	for _, locked := range c.Locks {
		if locked {
			return true
		}
	}
	return false
}

// Board is a rectangular grid of cells stored row-major in a flat slice.
// The card index is built once at construction since faces never change.
type Board struct {
	width  int
	height int
	cells  []Cell
	index  map[Card][]Position
}

// NewBoard creates a board from row-major cells. The caller owns validation
// of the layout; see the board service.
func NewBoard(width, height int, cells []Cell) *Board {
	b := &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, len(cells)),
		index:  make(map[Card][]Position),
	}
	copy(b.cells, cells)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cell := b.cells[y*width+x]
			if cell.Wildcard {
				continue
			}
			b.index[cell.Card] = append(b.index[cell.Card], Pos(x, y))
		}
	}
	return b
}

// Width returns the number of columns
func (b *Board) Width() int {
	return b.width
}

// Height returns the number of rows
func (b *Board) Height() int {
	return b.height
}

func (b *Board) offset(pos Position) int {
	return pos.Y*b.width + pos.X
}

// IsValidLocation returns true if the position is within bounds
func (b *Board) IsValidLocation(pos Position) bool {
	return pos.X >= 0 && pos.X < b.width && pos.Y >= 0 && pos.Y < b.height
}

// CellAt returns a copy of the cell at the given position
func (b *Board) CellAt(pos Position) (Cell, error) {
	if !b.IsValidLocation(pos) {
		return Cell{}, ErrInvalidPosition
	}
	return b.cells[b.offset(pos)], nil
}

// SetOccupant changes the chip on a playable cell. The board does not
// apply game rules; it only refuses corners and out-of-range positions.
func (b *Board) SetOccupant(pos Position, occupant Occupant) error {
	if !b.IsValidLocation(pos) {
		return ErrInvalidPosition
	}
	cell := &b.cells[b.offset(pos)]
	if cell.Wildcard {
		return ErrIllegalMove
	}
	if occupant.IsWildcard() {
		return ErrInvalidOccupant
	}
	cell.Occupant = occupant
	return nil
}

// Lock marks the cell as used by a sequence along o. Corners are shared by
// every line and never lock.
func (b *Board) Lock(pos Position, o Orientation) error {
	if !b.IsValidLocation(pos) {
		return ErrInvalidPosition
	}
	cell := &b.cells[b.offset(pos)]
	if cell.Wildcard {
		return nil
	}
	cell.Locks[o] = true
	return nil
}

// IsLocked returns true if the cell is locked in any orientation.
// Out-of-range positions are never locked.
func (b *Board) IsLocked(pos Position) bool {
	if !b.IsValidLocation(pos) {
		return false
	}
	return b.cells[b.offset(pos)].IsLocked()
}

// IsLockedIn returns true if the cell is locked along o
func (b *Board) IsLockedIn(pos Position, o Orientation) bool {
	if !b.IsValidLocation(pos) {
		return false
	}
	return b.cells[b.offset(pos)].Locks[o]
}

// IsFull returns true if every cell is occupied, counting corners
func (b *Board) IsFull() bool {
	for i := range b.cells {
		if !b.cells[i].HasChip() {
			return false
		}
	}
	return true
}

// IsEmpty returns true if no playable cell holds a chip
func (b *Board) IsEmpty() bool {
	for i := range b.cells {
		if b.cells[i].Occupant.IsChip() {
			return false
		}
	}
	return true
}

// EmptyCount returns the number of unoccupied cells
func (b *Board) EmptyCount() int {
	count := 0
	for i := range b.cells {
		if !b.cells[i].HasChip() {
			count++
		}
	}
	return count
}

// CardLocations returns a copy of the card to positions index. Jacks and
// any card absent from the layout are missing from the map.
func (b *Board) CardLocations() map[Card][]Position {
	out := make(map[Card][]Position, len(b.index))
	for card, positions := range b.index {
		cp := make([]Position, len(positions))
		copy(cp, positions)
		out[card] = cp
	}
	return out
}

// LocationsOf returns the positions showing the given card
func (b *Board) LocationsOf(card Card) []Position {
	positions := b.index[card]
	out := make([]Position, len(positions))
	copy(out, positions)
	return out
}

// Cells returns a snapshot of the grid as Cells[y][x]
func (b *Board) Cells() [][]Cell {
	grid := make([][]Cell, b.height)
	for y := range grid {
		grid[y] = make([]Cell, b.width)
		copy(grid[y], b.cells[y*b.width:(y+1)*b.width])
	}
	return grid
}

// Positions returns every position on the board in row-major order
func (b *Board) Positions() []Position {
	positions := make([]Position, 0, len(b.cells))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			positions = append(positions, Pos(x, y))
		}
	}
	return positions
}

// ChipsByTeam returns the positions each team currently occupies in
// row-major order
func (b *Board) ChipsByTeam() map[Team][]Position {
	chips := make(map[Team][]Position)
	for i := range b.cells {
		occ := b.cells[i].Occupant
		if !occ.IsChip() {
			continue
		}
		chips[occ.Team()] = append(chips[occ.Team()], Pos(i%b.width, i/b.width))
	}
	return chips
}

// Clone returns an independent deep copy of the board
func (b *Board) Clone() *Board {
	clone := &Board{
		width:  b.width,
		height: b.height,
		cells:  make([]Cell, len(b.cells)),
		index:  b.CardLocations(),
	}
	copy(clone.cells, b.cells)
	return clone
}

// Equal returns true if both boards have identical cells
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}
