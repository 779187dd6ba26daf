package board

import (
	"fmt"
	"strings"

	"github.com/mcoot/sequencegame/internal/model"
)

// chip markers used by Render
var teamMarkers = map[model.Team]string{
	model.TeamRed:   "R",
	model.TeamGreen: "G",
	model.TeamBlue:  "B",
}

// Render draws the board as fixed-width text. Each cell shows its face,
// followed by the occupying team's initial, and a '*' when the cell is
// part of a completed sequence.
func Render(b *model.Board) string {
	var sb strings.Builder

	sb.WriteString("    ")
	for x := 0; x < b.Width(); x++ {
		fmt.Fprintf(&sb, "%-6d", x)
	}
	sb.WriteString("\n")

	for y, row := range b.Cells() {
		fmt.Fprintf(&sb, "%2d  ", y)
		for _, cell := range row {
			fmt.Fprintf(&sb, "%-6s", renderCell(cell))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), " \n") + "\n"
}

func renderCell(cell model.Cell) string {
	if cell.Wildcard {
		return "**"
	}
	label := cell.Card.String()
	if cell.Occupant.IsChip() {
		label += teamMarkers[cell.Occupant.Team()]
	}
	if cell.IsLocked() {
		label += "*"
	}
	return label
}
