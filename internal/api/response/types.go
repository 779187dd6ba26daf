package response

import (
	"time"

	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/match"
)

// Player represents a seat in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Team        string `json:"team"`
	IsBot       bool   `json:"is_bot,omitempty"`
	Strategy    string `json:"strategy,omitempty"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		Team:        p.Team.String(),
		IsBot:       p.IsBot,
		Strategy:    p.BotStrategy,
	}
}

func playersFromModel(players []model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// Cell represents one board square. Card is empty for wildcard corners.
type Cell struct {
	Card     string   `json:"card,omitempty"`
	Occupant string   `json:"occupant"`
	Locked   []string `json:"locked,omitempty"`
}

// Board represents a game board as rows of cells, indexed cells[y][x]
type Board struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Cells  [][]Cell `json:"cells"`
}

// BoardFromModel converts model.Board to response Board
func BoardFromModel(b *model.Board) Board {
	grid := b.Cells()
	cells := make([][]Cell, len(grid))
	for y, row := range grid {
		cells[y] = make([]Cell, len(row))
		for x, c := range row {
			cell := Cell{Occupant: c.Occupant.String()}
			if !c.Wildcard {
				cell.Card = c.Card.String()
			}
			for _, o := range model.Orientations() {
				if c.IsLockedIn(o) {
					cell.Locked = append(cell.Locked, o.String())
				}
			}
			cells[y][x] = cell
		}
	}
	return Board{Width: b.Width(), Height: b.Height(), Cells: cells}
}

func teamCounts(counts map[model.Team]int) map[string]int {
	out := make(map[string]int, len(counts))
	for team, n := range counts {
		out[team.String()] = n
	}
	return out
}

func optionalTeam(t model.Team) *string {
	if t == model.TeamNone {
		return nil
	}
	s := t.String()
	return &s
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Match represents the state of a match
type Match struct {
	ID          string         `json:"id"`
	Series      string         `json:"series"`
	Seed        uint64         `json:"seed"`
	Layout      string         `json:"layout"`
	State       string         `json:"state"`
	Players     []Player       `json:"players"`
	Board       Board          `json:"board"`
	CurrentTurn string         `json:"current_turn,omitempty"`
	CurrentTeam string         `json:"current_team,omitempty"`
	Sequences   map[string]int `json:"sequences"`
	MoveCount   int            `json:"move_count"`
	DeckSize    int            `json:"deck_size"`
	Winner      *string        `json:"winner"` // Null while playing and on a tie
	Tie         bool           `json:"tie,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	FinishedAt  *time.Time     `json:"finished_at,omitempty"`
}

// MatchFromStatus converts a match status
func MatchFromStatus(s *match.Status) Match {
	m := Match{
		ID:         string(s.ID),
		Series:     s.Series,
		Seed:       s.Seed,
		Layout:     s.Layout,
		State:      string(s.State),
		Players:    playersFromModel(s.Players),
		Board:      BoardFromModel(s.Board),
		Sequences:  teamCounts(s.Sequences),
		MoveCount:  s.MoveCount,
		DeckSize:   s.DeckSize,
		CreatedAt:  s.CreatedAt,
		FinishedAt: optionalTime(s.FinishedAt),
	}
	if s.IsOver() {
		m.Winner = optionalTeam(s.Winner)
		m.Tie = s.Winner == model.TeamNone
	} else {
		m.CurrentTurn = string(s.CurrentTurn)
		m.CurrentTeam = s.CurrentTeam.String()
	}
	return m
}

// MatchListItem is the condensed form used when listing matches
type MatchListItem struct {
	ID          string    `json:"id"`
	Series      string    `json:"series"`
	State       string    `json:"state"`
	Players     []Player  `json:"players"`
	CurrentTurn string    `json:"current_turn,omitempty"`
	MoveCount   int       `json:"move_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// MatchListFromStatuses converts a list of match statuses
func MatchListFromStatuses(statuses []*match.Status) []MatchListItem {
	out := make([]MatchListItem, len(statuses))
	for i, s := range statuses {
		item := MatchListItem{
			ID:        string(s.ID),
			Series:    s.Series,
			State:     string(s.State),
			Players:   playersFromModel(s.Players),
			MoveCount: s.MoveCount,
			CreatedAt: s.CreatedAt,
		}
		if !s.IsOver() {
			item.CurrentTurn = string(s.CurrentTurn)
		}
		out[i] = item
	}
	return out
}

// Hand represents the cards a player holds, in hand-index order
type Hand struct {
	PlayerID string   `json:"player_id"`
	Team     string   `json:"team"`
	Cards    []string `json:"cards"`
}

// HandFromModel converts model.Hand
func HandFromModel(h *model.Hand) Hand {
	cards := h.Cards()
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return Hand{PlayerID: string(h.Owner), Team: h.Team.String(), Cards: out}
}

// Opening is an empty cell that would complete a run for a team
type Opening struct {
	Allied  model.Position `json:"allied"`
	Opening model.Position `json:"opening"`
}

// Openings lists every opening a team has
type Openings struct {
	Team     string    `json:"team"`
	Openings []Opening `json:"openings"`
}

// OpeningsFromModel converts allied/opening pairs
func OpeningsFromModel(team model.Team, pairs [][2]model.Position) Openings {
	out := Openings{Team: team.String(), Openings: make([]Opening, len(pairs))}
	for i, p := range pairs {
		out.Openings[i] = Opening{Allied: p[0], Opening: p[1]}
	}
	return out
}

// GameSummary represents a completed game summary
type GameSummary struct {
	ID          string         `json:"id"`
	Series      string         `json:"series"`
	Players     []Player       `json:"players"`
	Winner      *string        `json:"winner"`
	Sequences   map[string]int `json:"sequences"`
	NumMoves    int            `json:"num_moves"`
	CompletedAt time.Time      `json:"completed_at"`
}

// GameSummaryFromModel converts model.GameSummary
func GameSummaryFromModel(g *model.GameSummary) GameSummary {
	return GameSummary{
		ID:          string(g.ID),
		Series:      g.Series,
		Players:     playersFromModel(g.Players),
		Winner:      optionalTeam(g.Winner),
		Sequences:   teamCounts(g.Sequences),
		NumMoves:    g.NumMoves,
		CompletedAt: g.CompletedAt,
	}
}

// Tally represents aggregate results for a series
type Tally struct {
	Series       string         `json:"series"`
	Games        int            `json:"games"`
	Wins         map[string]int `json:"wins"`
	Ties         int            `json:"ties"`
	TotalMoves   int            `json:"total_moves"`
	AverageMoves float64        `json:"average_moves"`
}

// TallyFromModel converts model.Tally
func TallyFromModel(t *model.Tally) Tally {
	return Tally{
		Series:       t.Series,
		Games:        t.Games,
		Wins:         teamCounts(t.Wins),
		Ties:         t.Ties,
		TotalMoves:   t.TotalMoves,
		AverageMoves: t.AverageMoves(),
	}
}

// Results is the tally plus the most recent games of a series
type Results struct {
	Tally  Tally         `json:"tally"`
	Recent []GameSummary `json:"recent"`
}

// ResultsFromModel converts a tally and its summaries
func ResultsFromModel(t *model.Tally, summaries []*model.GameSummary) Results {
	recent := make([]GameSummary, len(summaries))
	for i, s := range summaries {
		recent[i] = GameSummaryFromModel(s)
	}
	return Results{Tally: TallyFromModel(t), Recent: recent}
}

// Series lists the known result series
type Series struct {
	Series []string `json:"series"`
}

// Strategy describes a bot strategy
type Strategy struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// Catalog lists what a match can be created with
type Catalog struct {
	Layouts    []string   `json:"layouts"`
	Strategies []Strategy `json:"strategies"`
}

// CatalogFromNames builds a catalog from layout and strategy names
func CatalogFromNames(layouts, strategies []string) Catalog {
	c := Catalog{Layouts: layouts, Strategies: make([]Strategy, len(strategies))}
	for i, name := range strategies {
		c.Strategies[i] = Strategy{Name: name, DisplayName: model.BotStrategyDisplayName(name)}
	}
	return c
}
