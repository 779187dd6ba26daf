package model

import "fmt"

// Position identifies a cell on the board
type Position struct {
	X int `json:"x"` // 0-indexed column, increasing right
	Y int `json:"y"` // 0-indexed row, increasing down
}

// Pos is shorthand for Position{X: x, Y: y}
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// String renders the position as "(x,y)"
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Translate returns the position one step away in the given direction
func (p Position) Translate(d Direction) Position {
	return Position{X: p.X + d.DX, Y: p.Y + d.DY}
}

// Step returns the position n steps away in the given direction
func (p Position) Step(d Direction, n int) Position {
	return Position{X: p.X + d.DX*n, Y: p.Y + d.DY*n}
}

// Neighbors returns the eight surrounding positions, bounds unchecked
func (p Position) Neighbors() []Position {
	neighbors := make([]Position, 0, len(compass))
	for _, d := range compass {
		neighbors = append(neighbors, p.Translate(d))
	}
	return neighbors
}

// Relation returns the unit direction pointing from p toward other.
// Each component is the sign of the difference, so positions that are not
// on a shared line still map to the nearest of the eight directions.
func (p Position) Relation(other Position) Direction {
	return Direction{DX: sign(other.X - p.X), DY: sign(other.Y - p.Y)}
}

// InLine returns true if other lies on a horizontal, vertical or diagonal
// line through p within reach cells
func (p Position) InLine(other Position, reach int) bool {
	dx, dy := other.X-p.X, other.Y-p.Y
	if dx == 0 && dy == 0 {
		return false
	}
	if abs(dx) > reach || abs(dy) > reach {
		return false
	}
	return dx == 0 || dy == 0 || abs(dx) == abs(dy)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Direction is a unit step between neighboring cells
type Direction struct {
	DX int
	DY int
}

// The eight unit directions
var (
	DirUp        = Direction{DX: 0, DY: -1}
	DirDown      = Direction{DX: 0, DY: 1}
	DirLeft      = Direction{DX: -1, DY: 0}
	DirRight     = Direction{DX: 1, DY: 0}
	DirUpLeft    = Direction{DX: -1, DY: -1}
	DirUpRight   = Direction{DX: 1, DY: -1}
	DirDownLeft  = Direction{DX: -1, DY: 1}
	DirDownRight = Direction{DX: 1, DY: 1}
)

// compass lists the eight directions clockwise from up
var compass = []Direction{
	DirUp, DirUpRight, DirRight, DirDownRight, DirDown, DirDownLeft, DirLeft, DirUpLeft,
}

// Directions returns the eight unit directions clockwise from up
func Directions() []Direction {
	out := make([]Direction, len(compass))
	copy(out, compass)
	return out
}

// Opposite returns the direction pointing the other way
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// IsZero returns true for the null direction
func (d Direction) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// GoesBackward is true for the half of the compass that points left, or
// straight up. Exactly one of a direction and its opposite goes backward,
// which gives every line a single canonical "up" end.
func (d Direction) GoesBackward() bool {
	return d.DX < 0 || (d.DX == 0 && d.DY == -1)
}

// Orientation returns the line orientation this direction travels along
func (d Direction) Orientation() Orientation {
	switch {
	case d.DY == 0:
		return OrientationHorizontal
	case d.DX == 0:
		return OrientationVertical
	case d.DX == d.DY:
		return OrientationDiagonalDown
	default:
		return OrientationDiagonalUp
	}
}

// String renders the direction as "(dx,dy)"
func (d Direction) String() string {
	return fmt.Sprintf("(%d,%d)", d.DX, d.DY)
}

// Orientation is one of the four line orientations a sequence can follow
type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
	OrientationDiagonalUp   // rising left to right
	OrientationDiagonalDown // falling left to right
)

// NumOrientations is the number of distinct line orientations
const NumOrientations = 4

// Orientations returns all four orientations
func Orientations() []Orientation {
	return []Orientation{
		OrientationHorizontal, OrientationVertical, OrientationDiagonalUp, OrientationDiagonalDown,
	}
}

// Forward returns the direction that walks the orientation away from its
// canonical start: right, down, up-right and down-right respectively
func (o Orientation) Forward() Direction {
	switch o {
	case OrientationVertical:
		return DirDown
	case OrientationDiagonalUp:
		return DirUpRight
	case OrientationDiagonalDown:
		return DirDownRight
	default:
		return DirRight
	}
}

// String returns the orientation name
func (o Orientation) String() string {
	switch o {
	case OrientationHorizontal:
		return "horizontal"
	case OrientationVertical:
		return "vertical"
	case OrientationDiagonalUp:
		return "diagonal_up"
	case OrientationDiagonalDown:
		return "diagonal_down"
	default:
		return fmt.Sprintf("Orientation(%d)", uint8(o))
	}
}
