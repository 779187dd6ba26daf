// Package sequence finds and locks the five-in-a-row lines that score in
// a game. Everything here is a pure function of the board and the sequence
// record so it can be tested without an engine.
package sequence

import (
	"github.com/mcoot/sequencegame/internal/model"
)

// Completed identifies one finished sequence by its canonical start and
// the orientation it runs along
type Completed struct {
	Header      model.Position
	Orientation model.Orientation
}

// Cells returns the five positions the sequence covers, walking forward
// from the header
func (c Completed) Cells() []model.Position {
	fwd := c.Orientation.Forward()
	cells := make([]model.Position, model.SequenceLength)
	for i := range cells {
		cells[i] = c.Header.Step(fwd, i)
	}
	return cells
}

// counts reports whether the cell at pos continues a line for team along o
func counts(b *model.Board, pos model.Position, team model.Team, o model.Orientation) bool {
	cell, err := b.CellAt(pos)
	if err != nil {
		return false
	}
	return cell.Occupant.CountsFor(team) && !cell.IsLockedIn(o)
}

// MatchingNeighbors returns the neighbours of pos, clockwise from up, that
// are on the board, hold team's chip or a wildcard, and are not locked
// along the line joining them to pos
func MatchingNeighbors(b *model.Board, pos model.Position, team model.Team) []model.Position {
	var matching []model.Position
	for _, n := range pos.Neighbors() {
		o := pos.Relation(n).Orientation()
		if counts(b, n, team, o) {
			matching = append(matching, n)
		}
	}
	return matching
}

// Canonicalize splits the line through dir into its up and down halves.
// Whichever of dir and its opposite goes backward is up, so both
// neighbours on one line resolve to the same pair.
func Canonicalize(dir model.Direction) (up, down model.Direction) {
	if dir.GoesBackward() {
		return dir, dir.Opposite()
	}
	return dir.Opposite(), dir
}

// Extent counts the consecutive cells after pos in direction dir that
// count for team and are unlocked along dir's orientation. pos itself is
// not inspected.
func Extent(b *model.Board, pos model.Position, dir model.Direction, team model.Team) int {
	o := dir.Orientation()
	n := 0
	for next := pos.Translate(dir); counts(b, next, team, o); next = next.Translate(dir) {
		n++
	}
	return n
}

// Detect returns the sequences completed by a chip of team just placed at
// pos, excluding any already in record. The board is not modified.
func Detect(b *model.Board, record model.SequenceRecord, pos model.Position, team model.Team) []Completed {
	var completed []Completed
	skip := make(map[model.Position]bool)
	seen := make(map[Completed]bool)

	for _, neighbor := range MatchingNeighbors(b, pos, team) {
		if skip[neighbor] {
			continue
		}

		dir := pos.Relation(neighbor)
		up, down := Canonicalize(dir)
		countUp := Extent(b, pos, up, team)
		countDown := Extent(b, pos, down, team)
		if countUp+countDown+1 < model.SequenceLength {
			continue
		}

		// The line is picked up again from the backward neighbour
		if countUp > 0 && countDown > 0 && !dir.GoesBackward() {
			continue
		}
		skip[pos.Translate(dir.Opposite())] = true

		c := Completed{Header: pos.Step(up, countUp), Orientation: dir.Orientation()}
		if seen[c] || record.Has(c.Header, c.Orientation) {
			continue
		}
		seen[c] = true
		completed = append(completed, c)
	}
	return completed
}

// Apply records each completed sequence and locks its five cells along its
// orientation. It returns how many sequences were new to the record.
func Apply(b *model.Board, record model.SequenceRecord, completed []Completed) int {
	added := 0
	for _, c := range completed {
		if !record.Add(c.Header, c.Orientation) {
			continue
		}
		for _, cell := range c.Cells() {
			// Cells come from a line that was walked on the board
			_ = b.Lock(cell, c.Orientation)
		}
		added++
	}
	return added
}

// Scan runs Detect and Apply for a placement and returns the sequences it
// added
func Scan(b *model.Board, record model.SequenceRecord, pos model.Position, team model.Team) []Completed {
	completed := Detect(b, record, pos, team)
	Apply(b, record, completed)
	return completed
}
