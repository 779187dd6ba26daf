package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcoot/sequencegame/internal/dependencies/clock"
	"github.com/mcoot/sequencegame/internal/dependencies/random"
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/deck"
	"github.com/mcoot/sequencegame/internal/services/sequence"
)

// maxRunTurns bounds Run so a pair of controllers that never finish a game
// cannot spin forever
const maxRunTurns = 10_000

// Engine runs one game at a time: it owns the board, hands and deck, checks
// every move against the rules and drives the turn order. It is not safe
// for concurrent use.
type Engine struct {
	clock  clock.Clock
	logger *slog.Logger

	board       *model.Board
	deck        *deck.Deck
	seats       []Seat
	controllers map[model.PlayerID]Controller
	turnOrder   model.TurnOrder
	hands       map[model.PlayerID]*model.Hand
	counts      map[model.Team]int
	record      model.SequenceRecord

	views        []View
	scoreKeepers []ScoreKeeper

	state      model.GameState
	current    model.PlayerID
	winner     model.Team
	moveCount  int
	startedAt  time.Time
	finishedAt time.Time
}

// New creates an engine with no game loaded
func New(logger *slog.Logger, clock clock.Clock) *Engine {
	return &Engine{
		clock:  clock,
		logger: logger.With(slog.String("component", "game-engine")),
		state:  model.GameStateNew,
	}
}

// AddView attaches an observer to every game this engine plays
func (e *Engine) AddView(v View) {
	e.views = append(e.views, v)
}

// AddScoreKeeper attaches a result collaborator to every game this engine plays
func (e *Engine) AddScoreKeeper(k ScoreKeeper) {
	e.scoreKeepers = append(e.scoreKeepers, k)
}

// Initialize starts a new game on board with the given seats in turn
// order, discarding any previous game. The board is used in place.
func (e *Engine) Initialize(board *model.Board, players []Controller, rnd random.Random) error {
	if board == nil {
		return model.ErrNilBoard
	}
	if rnd == nil {
		return fmt.Errorf("%w: random source is nil", model.ErrInvalidArgument)
	}
	if len(players) < 2 {
		return model.ErrInsufficientPlayers
	}

	seats := make([]Seat, 0, len(players))
	ids := make([]model.PlayerID, 0, len(players))
	controllers := make(map[model.PlayerID]Controller, len(players))
	teams := make(map[model.Team]int)
	for i, p := range players {
		if p == nil {
			return fmt.Errorf("%w: seat %d", model.ErrNilPlayer, i)
		}
		id, team := p.ID(), p.Team()
		if _, dup := controllers[id]; dup {
			return fmt.Errorf("%w: %s", model.ErrDuplicatePlayer, id)
		}
		if !team.IsValid() {
			return fmt.Errorf("%w: %s has team %v", model.ErrInvalidTeam, id, team)
		}
		controllers[id] = p
		seats = append(seats, Seat{ID: id, Team: team})
		ids = append(ids, id)
		teams[team] = 0
	}
	if len(teams) < 2 || len(teams) > 3 {
		return fmt.Errorf("%w: got %d", model.ErrUnsupportedTeams, len(teams))
	}

	dealSize := model.DealSize(len(seats), len(teams))
	if dealSize < 1 {
		return fmt.Errorf("%w: %d players on %d teams", model.ErrTooManyPlayers, len(seats), len(teams))
	}

	e.board = board
	e.deck = deck.New(rnd)
	e.seats = seats
	e.controllers = controllers
	e.turnOrder = model.NewTurnOrder(ids)
	e.counts = teams
	e.record = make(model.SequenceRecord)
	e.hands = make(map[model.PlayerID]*model.Hand, len(seats))
	for _, seat := range seats {
		e.hands[seat.ID] = model.NewHand(seat.ID, seat.Team)
	}

	for range dealSize {
		for _, seat := range seats {
			card, err := e.deck.Draw(nil)
			if err != nil {
				return err
			}
			e.hands[seat.ID].Add(card)
		}
	}

	e.state = model.GameStateAwaitingMove
	e.current = ids[0]
	e.winner = model.TeamNone
	e.moveCount = 0
	e.startedAt = e.clock.Now()
	e.finishedAt = time.Time{}

	e.logger.Info("game initialized",
		slog.Int("player_count", len(seats)),
		slog.Int("team_count", len(teams)),
		slog.Int("deal_size", dealSize),
		slog.String("first_player", string(e.current)),
	)
	return nil
}

// Run hands the turn to each seat's controller in order until the game is
// over or a controller returns without moving
func (e *Engine) Run(ctx context.Context) error {
	if e.state == model.GameStateNew {
		return model.ErrNotInitialized
	}

	for turns := 0; ; turns++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.IsGameOver() {
			return nil
		}
		if turns >= maxRunTurns {
			return model.ErrGameStalled
		}

		player := e.current
		before := e.moveCount
		if err := e.controllers[player].BeginTurn(ctx, e); err != nil {
			return fmt.Errorf("turn for %s: %w", player, err)
		}
		if e.moveCount == before {
			return nil
		}
	}
}

// PlayMoveAs plays a move on behalf of a specific player, rejecting it if
// it is not their turn
func (e *Engine) PlayMoveAs(ctx context.Context, player model.PlayerID, move model.Move) error {
	if err := e.checkActive(); err != nil {
		return err
	}
	if _, ok := e.controllers[player]; !ok {
		return model.ErrPlayerNotFound
	}
	if player != e.current {
		return model.ErrNotPlayerTurn
	}
	return e.PlayMove(ctx, move)
}

// PlayMove plays a card from the current player's hand onto a cell. The
// move is fully checked before anything changes, so a rejected move
// leaves the game exactly as it was.
func (e *Engine) PlayMove(ctx context.Context, move model.Move) error {
	if err := e.checkActive(); err != nil {
		return err
	}

	player := e.current
	hand := e.hands[player]
	card, err := hand.CardAt(move.HandIndex)
	if err != nil {
		return fmt.Errorf("%w: index %d with %d cards", err, move.HandIndex, hand.Size())
	}
	removal, err := e.checkMove(card, move.Position, hand.Team)
	if err != nil {
		return err
	}

	if _, err := hand.RemoveAt(move.HandIndex); err != nil {
		return err
	}
	e.deck.Discard(card)

	var added []sequence.Completed
	if removal {
		if err := e.board.SetOccupant(move.Position, model.Empty()); err != nil {
			return err
		}
	} else {
		if err := e.board.SetOccupant(move.Position, model.Chip(hand.Team)); err != nil {
			return err
		}
		added = sequence.Scan(e.board, e.record, move.Position, hand.Team)
		e.counts[hand.Team] += len(added)
	}

	if err := e.replenish(hand); err != nil {
		return err
	}
	e.moveCount++

	e.logger.Debug("move played",
		slog.String("player_id", string(player)),
		slog.String("card", card.String()),
		slog.String("position", move.Position.String()),
		slog.Bool("removal", removal),
		slog.Int("move_count", e.moveCount),
	)
	for _, c := range added {
		e.logger.Info("sequence completed",
			slog.String("team", hand.Team.String()),
			slog.String("header", c.Header.String()),
			slog.String("orientation", c.Orientation.String()),
			slog.Int("team_sequences", e.counts[hand.Team]),
		)
	}

	gameOver := e.IsGameOver()
	if !gameOver {
		e.current = e.turnOrder.Next(player)
	}
	e.redraw()
	if gameOver {
		e.finish()
	}
	return nil
}

// DeadCard swaps a card that cannot be played anywhere for a fresh one.
// The turn does not pass.
func (e *Engine) DeadCard(ctx context.Context, handIndex int) error {
	if err := e.checkActive(); err != nil {
		return err
	}

	hand := e.hands[e.current]
	card, err := hand.CardAt(handIndex)
	if err != nil {
		return fmt.Errorf("%w: index %d with %d cards", err, handIndex, hand.Size())
	}
	if len(e.legalTargets(card, hand.Team)) > 0 {
		return fmt.Errorf("%w: %v", model.ErrCardNotDead, card)
	}

	if _, err := hand.RemoveAt(handIndex); err != nil {
		return err
	}
	e.deck.Discard(card)
	if err := e.replenish(hand); err != nil {
		return err
	}

	e.logger.Debug("dead card replaced",
		slog.String("player_id", string(e.current)),
		slog.String("card", card.String()),
	)
	e.redraw()
	return nil
}

// DeadCardAs replaces a dead card for a specific player
func (e *Engine) DeadCardAs(ctx context.Context, player model.PlayerID, handIndex int) error {
	if err := e.checkActive(); err != nil {
		return err
	}
	if _, ok := e.controllers[player]; !ok {
		return model.ErrPlayerNotFound
	}
	if player != e.current {
		return model.ErrNotPlayerTurn
	}
	return e.DeadCard(ctx, handIndex)
}

// ResetDeck reshuffles a full deck minus every card currently held
func (e *Engine) ResetDeck() {
	if e.deck == nil {
		return
	}
	e.deck.Reset(e.heldCards())
}

// IsGameOver returns true once the board is full or a team has completed
// enough sequences
func (e *Engine) IsGameOver() bool {
	if e.board == nil {
		return false
	}
	if e.board.IsFull() {
		return true
	}
	for _, n := range e.counts {
		if n >= model.SequencesToWin {
			return true
		}
	}
	return false
}

// Winner returns the winning team, or TeamNone for a full board with no
// winner
func (e *Engine) Winner() (model.Team, error) {
	if !e.IsGameOver() {
		return model.TeamNone, model.ErrGameNotOver
	}
	for _, seat := range e.seats {
		if e.counts[seat.Team] >= model.SequencesToWin {
			return seat.Team, nil
		}
	}
	return model.TeamNone, nil
}

func (e *Engine) checkActive() error {
	switch {
	case e.state == model.GameStateNew:
		return model.ErrNotInitialized
	case e.state == model.GameStateGameOver || e.IsGameOver():
		return model.ErrGameComplete
	default:
		return nil
	}
}

// checkMove validates playing card onto pos for team and reports whether
// the move removes a chip
func (e *Engine) checkMove(card model.Card, pos model.Position, team model.Team) (removal bool, err error) {
	cell, err := e.board.CellAt(pos)
	if err != nil {
		return false, fmt.Errorf("%w: %v", err, pos)
	}
	if cell.Wildcard {
		return false, fmt.Errorf("%w: %v", model.ErrWildcardTarget, pos)
	}

	if cell.HasChip() {
		switch {
		case !card.IsOneEyedJack():
			return false, fmt.Errorf("%w: %v", model.ErrCellOccupied, pos)
		case cell.Occupant.Team() == team:
			return false, fmt.Errorf("%w: %v", model.ErrRemoveOwnChip, pos)
		case cell.IsLocked():
			return false, fmt.Errorf("%w: %v", model.ErrRemoveLockedChip, pos)
		}
		return true, nil
	}

	switch {
	case card.IsOneEyedJack():
		return false, fmt.Errorf("%w: %v", model.ErrRemoveEmpty, pos)
	case !card.IsTwoEyedJack() && card != cell.Card:
		return false, fmt.Errorf("%w: %v on %v", model.ErrCardMismatch, card, cell.Card)
	}
	return false, nil
}

// legalTargets returns every position card could be played to by team
func (e *Engine) legalTargets(card model.Card, team model.Team) []model.Position {
	candidates := e.board.LocationsOf(card)
	if card.Value.IsJack() {
		candidates = e.board.Positions()
	}

	var targets []model.Position
	for _, pos := range candidates {
		if _, err := e.checkMove(card, pos, team); err == nil {
			targets = append(targets, pos)
		}
	}
	return targets
}

func (e *Engine) heldCards() []model.Card {
	var held []model.Card
	for _, seat := range e.seats {
		held = append(held, e.hands[seat.ID].Cards()...)
	}
	return held
}

func (e *Engine) replenish(hand *model.Hand) error {
	card, err := e.deck.Draw(e.heldCards())
	if err != nil {
		return err
	}
	hand.Add(card)
	return nil
}

func (e *Engine) redraw() {
	for _, v := range e.views {
		v.Redraw()
	}
}

func (e *Engine) finish() {
	e.state = model.GameStateGameOver
	e.winner, _ = e.Winner()
	e.finishedAt = e.clock.Now()

	e.logger.Info("game over",
		slog.String("winner", e.winner.String()),
		slog.Int("move_count", e.moveCount),
		slog.Duration("duration", e.finishedAt.Sub(e.startedAt)),
	)

	for _, v := range e.views {
		v.GameOver(e.winner)
	}
	for _, seat := range e.seats {
		e.controllers[seat.ID].ReceiveGameOver(e.winner)
	}
	for _, k := range e.scoreKeepers {
		k.Increment(e.winner)
		if mc, ok := k.(MoveCounter); ok {
			mc.ReceiveNumMoves(e.moveCount)
		}
	}
}
