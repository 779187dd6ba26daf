package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mcoot/sequencegame/internal/api/response"
	"github.com/mcoot/sequencegame/internal/services/simulation"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Match:
		o.printMatch(v)
	case []response.MatchListItem:
		o.printMatchList(v)
	case response.Hand:
		o.printHand(v)
	case response.Openings:
		o.printOpenings(v)
	case response.Results:
		o.printResults(v)
	case response.GameSummary:
		o.printSummary(v)
	case response.Series:
		o.printSeries(v)
	case response.Catalog:
		o.printCatalog(v)
	case *simulation.Report:
		o.printReport(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
}

// teamInitials marks chips in text boards
var teamInitials = map[string]string{
	"red":   "R",
	"green": "G",
	"blue":  "B",
}

// renderBoard draws an API board the same way the server renders one:
// face, then the chip's team initial, then '*' when locked
func renderBoard(b response.Board) string {
	var sb strings.Builder

	sb.WriteString("    ")
	for x := 0; x < b.Width; x++ {
		fmt.Fprintf(&sb, "%-6d", x)
	}
	sb.WriteString("\n")

	for y, row := range b.Cells {
		fmt.Fprintf(&sb, "%2d  ", y)
		for _, cell := range row {
			label := cell.Card
			if cell.Occupant == "wildcard" {
				label = "**"
			}
			label += teamInitials[cell.Occupant]
			if len(cell.Locked) > 0 {
				label += "*"
			}
			fmt.Fprintf(&sb, "%-6s", label)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), " \n") + "\n"
}

func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, " ")
}

func formatWinner(winner *string) string {
	if winner == nil {
		return "tie"
	}
	return *winner
}

func (o *Output) printMatch(m response.Match) {
	fmt.Fprintf(o.w, "Match: %s\n", m.ID)
	fmt.Fprintf(o.w, "Series: %s  Seed: %d  Layout: %s\n", m.Series, m.Seed, m.Layout)
	fmt.Fprintf(o.w, "State: %s  Moves: %d  Deck: %d\n", m.State, m.MoveCount, m.DeckSize)
	fmt.Fprintf(o.w, "Players (%d):\n", len(m.Players))
	for _, p := range m.Players {
		marker := ""
		if p.ID == m.CurrentTurn {
			marker = " <- to move"
		}
		kind := "human"
		if p.IsBot {
			kind = "bot:" + p.Strategy
		}
		fmt.Fprintf(o.w, "  - %s (%s) %s [%s]%s\n", p.DisplayName, p.ID, p.Team, kind, marker)
	}
	fmt.Fprintf(o.w, "Sequences: %s\n", formatCounts(m.Sequences))
	if m.State == "game_over" {
		fmt.Fprintf(o.w, "Winner: %s\n", formatWinner(m.Winner))
	}
	fmt.Fprintln(o.w)
	fmt.Fprint(o.w, renderBoard(m.Board))
}

func (o *Output) printMatchList(items []response.MatchListItem) {
	if len(items) == 0 {
		fmt.Fprintln(o.w, "No matches")
		return
	}
	for _, m := range items {
		turn := ""
		if m.CurrentTurn != "" {
			turn = " turn=" + m.CurrentTurn
		}
		fmt.Fprintf(o.w, "%s  %s  series=%s moves=%d%s\n", m.ID, m.State, m.Series, m.MoveCount, turn)
	}
}

func (o *Output) printHand(h response.Hand) {
	fmt.Fprintf(o.w, "Hand of %s (%s):\n", h.PlayerID, h.Team)
	for i, c := range h.Cards {
		fmt.Fprintf(o.w, "  [%d] %s\n", i, c)
	}
}

func (o *Output) printOpenings(op response.Openings) {
	if len(op.Openings) == 0 {
		fmt.Fprintf(o.w, "No openings for %s\n", op.Team)
		return
	}
	fmt.Fprintf(o.w, "Openings for %s:\n", op.Team)
	for _, p := range op.Openings {
		fmt.Fprintf(o.w, "  play (%d,%d) next to (%d,%d)\n", p.Opening.X, p.Opening.Y, p.Allied.X, p.Allied.Y)
	}
}

func (o *Output) printTally(t response.Tally) {
	fmt.Fprintf(o.w, "Series: %s\n", t.Series)
	fmt.Fprintf(o.w, "Games: %d  Ties: %d  Avg moves: %.1f\n", t.Games, t.Ties, t.AverageMoves)
	fmt.Fprintf(o.w, "Wins: %s\n", formatCounts(t.Wins))
}

func (o *Output) printResults(r response.Results) {
	o.printTally(r.Tally)
	if len(r.Recent) == 0 {
		return
	}
	fmt.Fprintln(o.w, "Recent:")
	for _, s := range r.Recent {
		fmt.Fprintf(o.w, "  %s  %s  winner=%s moves=%d\n",
			s.CompletedAt.Format("2006-01-02 15:04:05"), s.ID, formatWinner(s.Winner), s.NumMoves)
	}
}

func (o *Output) printSummary(s response.GameSummary) {
	fmt.Fprintf(o.w, "Game: %s (%s)\n", s.ID, s.Series)
	fmt.Fprintf(o.w, "Completed: %s\n", s.CompletedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(o.w, "Winner: %s  Moves: %d\n", formatWinner(s.Winner), s.NumMoves)
	fmt.Fprintf(o.w, "Sequences: %s\n", formatCounts(s.Sequences))
}

func (o *Output) printSeries(s response.Series) {
	if len(s.Series) == 0 {
		fmt.Fprintln(o.w, "No results recorded")
		return
	}
	for _, name := range s.Series {
		fmt.Fprintln(o.w, name)
	}
}

func (o *Output) printCatalog(c response.Catalog) {
	fmt.Fprintf(o.w, "Layouts: %s\n", strings.Join(c.Layouts, ", "))
	fmt.Fprintln(o.w, "Strategies:")
	for _, s := range c.Strategies {
		fmt.Fprintf(o.w, "  %-10s %s\n", s.Name, s.DisplayName)
	}
}

func (o *Output) printReport(r *simulation.Report) {
	wins := make(map[string]int, len(r.Tally.Wins))
	for team, n := range r.Tally.Wins {
		wins[team.String()] = n
	}
	fmt.Fprintf(o.w, "Series: %s  Seed: %d\n", r.Series, r.Seed)
	fmt.Fprintf(o.w, "Games: %d in %s\n", r.Tally.Games, r.Duration.Round(time.Millisecond))
	fmt.Fprintf(o.w, "Wins: %s  Ties: %d\n", formatCounts(wins), r.Tally.Ties)
	fmt.Fprintf(o.w, "Average moves: %.1f\n", r.Tally.AverageMoves())
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Storage != "" {
		fmt.Fprintf(o.w, "Storage: %s\n", h.Storage)
	}
}
