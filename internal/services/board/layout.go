package board

import (
	"fmt"
	"strings"

	"github.com/mcoot/sequencegame/internal/model"
)

// WildcardToken marks a corner cell in a layout
const WildcardToken = "W"

// StandardLayoutName is the name the standard 10x10 board is registered under
const StandardLayoutName = "standard"

// Layout is a board described row by row, each token either a card
// (e.g. "10H") or WildcardToken
type Layout [][]string

// standardLayout is the printed 10x10 board, row 0 at the top
var standardLayout = Layout{
	{"W", "2S", "3S", "4S", "5S", "6S", "7S", "8S", "9S", "W"},
	{"6C", "5C", "4C", "3C", "2C", "AH", "KH", "QH", "10H", "10S"},
	{"7C", "AS", "2D", "3D", "4D", "5D", "6D", "7D", "9H", "QS"},
	{"8C", "KS", "6C", "5C", "4C", "3C", "2C", "8D", "8H", "KS"},
	{"9C", "QS", "7C", "6H", "5H", "4H", "AH", "9D", "7H", "AS"},
	{"10C", "10S", "8C", "7H", "2H", "3H", "KH", "10D", "6H", "2D"},
	{"QC", "9S", "9C", "8H", "9H", "10H", "QH", "QD", "5H", "3D"},
	{"KC", "8S", "10C", "QC", "KC", "AC", "AD", "KD", "4H", "4D"},
	{"AC", "7S", "6S", "5S", "4S", "3S", "2S", "2H", "3H", "5D"},
	{"W", "AD", "KD", "QD", "10D", "9D", "8D", "7D", "6D", "W"},
}

// StandardLayout returns a copy of the standard layout
func StandardLayout() Layout {
	return standardLayout.Clone()
}

// Clone returns a deep copy of the layout
func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	for i, row := range l {
		out[i] = append([]string(nil), row...)
	}
	return out
}

// Standard builds a fresh, empty standard board
func Standard() *model.Board {
	b, err := FromLayout(standardLayout)
	if err != nil {
		panic(fmt.Sprintf("standard layout is invalid: %v", err))
	}
	return b
}

// ParseLayout reads a layout from text, one row per line with cells
// separated by whitespace. Blank lines and lines starting with '#' are skipped.
func ParseLayout(text string) Layout {
	var layout Layout
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		layout = append(layout, strings.Fields(line))
	}
	return layout
}

// FromLayout validates a layout and builds an empty board from it. A valid
// layout is a non-empty rectangle whose faces are non-jack cards, each
// appearing at most CopiesPerCard times.
func FromLayout(layout Layout) (*model.Board, error) {
	if len(layout) == 0 || len(layout[0]) == 0 {
		return nil, fmt.Errorf("%w: layout is empty", model.ErrInvalidLayout)
	}

	height, width := len(layout), len(layout[0])
	cells := make([]model.Cell, 0, width*height)
	seen := make(map[model.Card]int)

	for y, row := range layout {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", model.ErrInvalidLayout, y, len(row), width)
		}
		for x, token := range row {
			if strings.EqualFold(token, WildcardToken) {
				cells = append(cells, model.WildcardCell())
				continue
			}

			card, err := model.ParseCard(token)
			if err != nil {
				return nil, fmt.Errorf("%w: cell %v: %w", model.ErrInvalidLayout, model.Pos(x, y), err)
			}
			if card.Value.IsJack() {
				return nil, fmt.Errorf("%w: cell %v shows a jack", model.ErrInvalidLayout, model.Pos(x, y))
			}
			seen[card]++
			if seen[card] > model.CopiesPerCard {
				return nil, fmt.Errorf("%w: %v appears more than %d times", model.ErrInvalidLayout, card, model.CopiesPerCard)
			}
			cells = append(cells, model.PlayableCell(card))
		}
	}

	return model.NewBoard(width, height, cells), nil
}

// ToLayout converts a board back into its layout form
func ToLayout(b *model.Board) Layout {
	grid := b.Cells()
	layout := make(Layout, len(grid))
	for y, row := range grid {
		layout[y] = make([]string, len(row))
		for x, cell := range row {
			if cell.Wildcard {
				layout[y][x] = WildcardToken
			} else {
				layout[y][x] = cell.Card.String()
			}
		}
	}
	return layout
}
