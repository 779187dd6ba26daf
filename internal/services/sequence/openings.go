package sequence

import (
	"sort"

	"github.com/mcoot/sequencegame/internal/model"
)

// Opening is a cell that would complete a sequence for a team, paired with
// the first of that team's chips in the same line
type Opening struct {
	Allied  model.Position
	Opening model.Position
}

// FindOpenings returns every empty cell that completes a sequence for team
// if filled. A five-cell window qualifies when no cell is locked along its
// orientation, four cells count for team and the fifth is empty. Results
// are unique by opening and ordered top to bottom, left to right.
func FindOpenings(b *model.Board, team model.Team) []Opening {
	found := make(map[model.Position]model.Position)

	for _, o := range model.Orientations() {
		fwd := o.Forward()
		for _, start := range b.Positions() {
			if !b.IsValidLocation(start.Step(fwd, model.SequenceLength-1)) {
				continue
			}
			allied, opening, ok := windowOpening(b, start, o, team)
			if !ok {
				continue
			}
			if _, exists := found[opening]; !exists {
				found[opening] = allied
			}
		}
	}

	openings := make([]Opening, 0, len(found))
	for opening, allied := range found {
		openings = append(openings, Opening{Allied: allied, Opening: opening})
	}
	sort.Slice(openings, func(i, j int) bool {
		p, q := openings[i].Opening, openings[j].Opening
		if p.Y != q.Y {
			return p.Y < q.Y
		}
		return p.X < q.X
	})
	return openings
}

func windowOpening(b *model.Board, start model.Position, o model.Orientation, team model.Team) (allied, opening model.Position, ok bool) {
	var (
		empties     int
		alliedFound bool
		firstCount  model.Position
		countFound  bool
	)

	for _, pos := range (Completed{Header: start, Orientation: o}).Cells() {
		cell, err := b.CellAt(pos)
		if err != nil || cell.IsLockedIn(o) {
			return allied, opening, false
		}
		switch {
		case cell.Occupant.IsEmpty():
			empties++
			opening = pos
		case cell.Occupant.CountsFor(team):
			if !countFound {
				firstCount, countFound = pos, true
			}
			if cell.Occupant.IsChip() && !alliedFound {
				allied, alliedFound = pos, true
			}
		default:
			return allied, opening, false
		}
	}

	if empties != 1 {
		return allied, opening, false
	}
	if !alliedFound {
		allied = firstCount
	}
	return allied, opening, true
}

// Potential returns the length of the longest line team would have through
// pos if it held a chip there, over all four orientations
func Potential(b *model.Board, pos model.Position, team model.Team) int {
	best := 0
	for _, o := range model.Orientations() {
		up, down := Canonicalize(o.Forward())
		if n := Extent(b, pos, up, team) + Extent(b, pos, down, team) + 1; n > best {
			best = n
		}
	}
	return best
}
