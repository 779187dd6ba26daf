package match

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/sequencegame/internal/dependencies/mocks"
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/board"
	"github.com/mcoot/sequencegame/internal/services/bot"
	"github.com/mcoot/sequencegame/internal/services/results"
	"github.com/mcoot/sequencegame/internal/storage/memory"
	"github.com/mcoot/sequencegame/internal/testutil"
)

// capture records published events and closed matches
type capture struct {
	mu     sync.Mutex
	events []model.Event
	closed []model.MatchID
}

func (c *capture) Publish(e model.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *capture) Close(id model.MatchID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = append(c.closed, id)
}

func (c *capture) ofType(t model.EventType) []model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []model.Event
	for _, e := range c.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type ServiceSuite struct {
	suite.Suite
	service   *Service
	results   *results.Service
	publisher *capture
	clock     *mocks.MockClock
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	s.publisher = &capture{}
	s.results = results.NewService(memory.New(), s.clock, logger)
	s.service = NewService(
		board.New(logger),
		bot.NewService(bot.DefaultStrategies(), logger),
		s.results,
		s.publisher,
		s.clock,
		logger,
	)
	s.ctx = context.Background()
}

func humans() []PlayerSpec {
	return []PlayerSpec{
		{ID: "alice", Team: model.TeamRed},
		{ID: "bob", Team: model.TeamGreen},
	}
}

func bots() []PlayerSpec {
	return []PlayerSpec{
		{ID: "r", Team: model.TeamRed, Bot: true, Strategy: model.BotStrategyNetwork},
		{ID: "g", Team: model.TeamGreen, Bot: true, Strategy: model.BotStrategyRandom},
	}
}

// legalMove finds a placement the player can make on the current board
func (s *ServiceSuite) legalMove(id model.MatchID, player model.PlayerID) model.Move {
	status, err := s.service.Get(s.ctx, id)
	s.Require().NoError(err)
	hand, err := s.service.Hand(s.ctx, id, player)
	s.Require().NoError(err)

	for i, card := range hand.Cards() {
		if card.IsOneEyedJack() {
			continue
		}
		candidates := status.Board.LocationsOf(card)
		if card.IsTwoEyedJack() {
			candidates = status.Board.Positions()
		}
		for _, pos := range candidates {
			cell, err := status.Board.CellAt(pos)
			s.Require().NoError(err)
			if !cell.Wildcard && cell.Occupant.IsEmpty() {
				return model.Move{Position: pos, HandIndex: i}
			}
		}
	}
	s.FailNow("no legal placement in hand")
	return model.Move{}
}

// Create tests

func (s *ServiceSuite) TestCreateHumanMatch() {
	status, err := s.service.Create(s.ctx, CreateOptions{Players: humans(), Seed: 7})
	s.Require().NoError(err)

	s.NotEmpty(status.ID)
	s.Equal(model.GameStateAwaitingMove, status.State)
	s.Equal(model.PlayerID("alice"), status.CurrentTurn)
	s.Equal(model.TeamRed, status.CurrentTeam)
	s.Equal(board.StandardLayoutName, status.Layout)
	s.Equal(uint64(7), status.Seed)
	s.Equal(0, status.MoveCount)
	s.True(status.Board.IsEmpty())
	s.Equal(112-2*model.DealSize(2, 2), status.DeckSize)

	hand, err := s.service.Hand(s.ctx, status.ID, "bob")
	s.Require().NoError(err)
	s.Equal(model.DealSize(2, 2), hand.Size())
}

func (s *ServiceSuite) TestCreateFillsPlayerDefaults() {
	status, err := s.service.Create(s.ctx, CreateOptions{Players: []PlayerSpec{
		{Team: model.TeamRed},
		{Name: "Bob", Team: model.TeamBlue},
	}})
	s.Require().NoError(err)

	s.NotZero(status.Seed)
	s.Equal(model.PlayerID("player-1"), status.Players[0].ID)
	s.Equal("player-1", status.Players[0].DisplayName)
	s.Equal("Bob", status.Players[1].DisplayName)
}

func (s *ServiceSuite) TestCreateRejectsBadInput() {
	_, err := s.service.Create(s.ctx, CreateOptions{Players: humans()[:1]})
	s.ErrorIs(err, model.ErrInsufficientPlayers)

	_, err = s.service.Create(s.ctx, CreateOptions{Players: humans(), Layout: "hexagonal"})
	s.ErrorIs(err, model.ErrInvalidLayout)

	_, err = s.service.Create(s.ctx, CreateOptions{Players: []PlayerSpec{
		{ID: "a", Team: model.TeamRed},
		{ID: "b", Team: model.TeamGreen, Bot: true, Strategy: "minimax"},
	}})
	s.ErrorIs(err, model.ErrInvalidArgument)

	s.Empty(s.service.List(s.ctx))
}

func (s *ServiceSuite) TestCreateFailingBotTurnLeavesNoMatch() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.service.Create(ctx, CreateOptions{Players: bots(), Seed: 3})
	s.ErrorIs(err, context.Canceled)
	s.Empty(s.service.List(s.ctx))
}

func (s *ServiceSuite) TestCreateSameSeedSameDeal() {
	first, err := s.service.Create(s.ctx, CreateOptions{Players: humans(), Seed: 99})
	s.Require().NoError(err)
	second, err := s.service.Create(s.ctx, CreateOptions{Players: humans(), Seed: 99})
	s.Require().NoError(err)

	for _, p := range []model.PlayerID{"alice", "bob"} {
		a, err := s.service.Hand(s.ctx, first.ID, p)
		s.Require().NoError(err)
		b, err := s.service.Hand(s.ctx, second.ID, p)
		s.Require().NoError(err)
		s.Equal(a.Cards(), b.Cards())
	}
}

func (s *ServiceSuite) TestBotMatchPlaysToCompletion() {
	status, err := s.service.Create(s.ctx, CreateOptions{Players: bots(), Series: "bots", Seed: 3})
	s.Require().NoError(err)

	s.True(status.IsOver())
	s.Positive(status.MoveCount)

	summary, err := s.results.GetSummary(s.ctx, status.ID)
	s.Require().NoError(err)
	s.Equal(status.Winner, summary.Winner)
	s.Equal(status.MoveCount, summary.NumMoves)
	s.Equal("bots", summary.Series)
	s.True(summary.Players[0].IsBot)

	tally, err := s.results.GetTally(s.ctx, "bots")
	s.Require().NoError(err)
	s.Equal(1, tally.Games)

	gameOvers := s.publisher.ofType(model.EventGameOver)
	s.Require().Len(gameOvers, 1)
	s.Equal(status.ID, gameOvers[0].MatchID)
	// Dead cards redraw too
	s.GreaterOrEqual(len(s.publisher.ofType(model.EventRedraw)), status.MoveCount)
}

// Play tests

func (s *ServiceSuite) TestPlayMoveAdvancesTurn() {
	status, err := s.service.Create(s.ctx, CreateOptions{Players: humans(), Seed: 11})
	s.Require().NoError(err)

	move := s.legalMove(status.ID, "alice")
	after, err := s.service.PlayMove(s.ctx, status.ID, "alice", move)
	s.Require().NoError(err)

	s.Equal(1, after.MoveCount)
	s.Equal(model.PlayerID("bob"), after.CurrentTurn)
	cell, err := after.Board.CellAt(move.Position)
	s.Require().NoError(err)
	s.Equal(model.Chip(model.TeamRed), cell.Occupant)

	redraws := s.publisher.ofType(model.EventRedraw)
	s.Require().Len(redraws, 1)
	s.Equal(model.PlayerID("alice"), redraws[0].PlayerID)
	s.Equal(model.RedrawPayload{MoveCount: 1, CurrentTurn: "bob"}, redraws[0].Payload)
}

func (s *ServiceSuite) TestPlayMoveAgainstBot() {
	status, err := s.service.Create(s.ctx, CreateOptions{Players: []PlayerSpec{
		{ID: "alice", Team: model.TeamRed},
		{ID: "bot", Team: model.TeamBlue, Bot: true, Strategy: model.BotStrategyFirst},
	}, Seed: 5})
	s.Require().NoError(err)

	after, err := s.service.PlayMove(s.ctx, status.ID, "alice", s.legalMove(status.ID, "alice"))
	s.Require().NoError(err)

	s.Equal(2, after.MoveCount)
	s.Equal(model.PlayerID("alice"), after.CurrentTurn)
	s.Len(after.Board.ChipsByTeam()[model.TeamBlue], 1)

	redraws := s.publisher.ofType(model.EventRedraw)
	s.Require().Len(redraws, 2)
	s.Equal(model.PlayerID("alice"), redraws[0].PlayerID)
	s.Equal(model.PlayerID("bot"), redraws[1].PlayerID)
}

func (s *ServiceSuite) TestBotSeatedFirstMovesOnCreate() {
	status, err := s.service.Create(s.ctx, CreateOptions{Players: []PlayerSpec{
		{ID: "bot", Team: model.TeamBlue, Bot: true, Strategy: model.BotStrategyFirst},
		{ID: "alice", Team: model.TeamRed},
	}, Seed: 5})
	s.Require().NoError(err)

	s.Equal(1, status.MoveCount)
	s.Equal(model.PlayerID("alice"), status.CurrentTurn)
}

func (s *ServiceSuite) TestPlayMoveRejections() {
	status, err := s.service.Create(s.ctx, CreateOptions{Players: []PlayerSpec{
		{ID: "alice", Team: model.TeamRed},
		{ID: "bob", Team: model.TeamGreen},
		{ID: "bot", Team: model.TeamRed, Bot: true, Strategy: model.BotStrategyFirst},
		{ID: "carol", Team: model.TeamGreen},
	}, Seed: 13})
	s.Require().NoError(err)

	_, err = s.service.PlayMove(s.ctx, status.ID, "bob", s.legalMove(status.ID, "bob"))
	s.ErrorIs(err, model.ErrNotPlayerTurn)

	_, err = s.service.PlayMove(s.ctx, status.ID, "bot", model.Move{})
	s.ErrorIs(err, model.ErrNotPlayerTurn)

	_, err = s.service.PlayMove(s.ctx, status.ID, "mallory", model.Move{})
	s.ErrorIs(err, model.ErrPlayerNotFound)

	_, err = s.service.PlayMove(s.ctx, "missing", "alice", model.Move{})
	s.ErrorIs(err, model.ErrMatchNotFound)

	_, err = s.service.PlayMove(s.ctx, status.ID, "alice", model.Move{Position: model.Pos(5, 5), HandIndex: 99})
	s.ErrorIs(err, model.ErrInvalidArgument)

	unchanged, err := s.service.Get(s.ctx, status.ID)
	s.Require().NoError(err)
	s.Equal(0, unchanged.MoveCount)
	s.Empty(s.publisher.ofType(model.EventRedraw))
}

func (s *ServiceSuite) TestDeadCardRejectedWhilePlayable() {
	status, err := s.service.Create(s.ctx, CreateOptions{Players: humans(), Seed: 21})
	s.Require().NoError(err)

	move := s.legalMove(status.ID, "alice")
	_, err = s.service.DeadCard(s.ctx, status.ID, "alice", move.HandIndex)
	s.ErrorIs(err, model.ErrCardNotDead)
}

// Query tests

func (s *ServiceSuite) TestGetNotFound() {
	_, err := s.service.Get(s.ctx, "missing")
	s.ErrorIs(err, model.ErrMatchNotFound)

	_, err = s.service.Hand(s.ctx, "missing", "alice")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *ServiceSuite) TestHandUnknownPlayer() {
	status, err := s.service.Create(s.ctx, CreateOptions{Players: humans()})
	s.Require().NoError(err)

	_, err = s.service.Hand(s.ctx, status.ID, "mallory")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestOpenings() {
	status, err := s.service.Create(s.ctx, CreateOptions{Players: humans()})
	s.Require().NoError(err)

	openings, err := s.service.Openings(s.ctx, status.ID, model.TeamRed)
	s.Require().NoError(err)
	s.Empty(openings)

	_, err = s.service.Openings(s.ctx, status.ID, model.TeamNone)
	s.ErrorIs(err, model.ErrInvalidTeam)
}

func (s *ServiceSuite) TestListOldestFirst() {
	first, err := s.service.Create(s.ctx, CreateOptions{Players: humans()})
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	second, err := s.service.Create(s.ctx, CreateOptions{Players: humans()})
	s.Require().NoError(err)

	list := s.service.List(s.ctx)
	s.Require().Len(list, 2)
	s.Equal(first.ID, list[0].ID)
	s.Equal(second.ID, list[1].ID)
}

// Cleanup tests

func (s *ServiceSuite) TestRemove() {
	status, err := s.service.Create(s.ctx, CreateOptions{Players: humans()})
	s.Require().NoError(err)

	s.Require().NoError(s.service.Remove(s.ctx, status.ID))
	_, err = s.service.Get(s.ctx, status.ID)
	s.ErrorIs(err, model.ErrMatchNotFound)
	s.Equal([]model.MatchID{status.ID}, s.publisher.closed)

	s.ErrorIs(s.service.Remove(s.ctx, status.ID), model.ErrMatchNotFound)
}

func (s *ServiceSuite) TestPruneFinishedMatches() {
	finished, err := s.service.Create(s.ctx, CreateOptions{Players: bots(), Seed: 3})
	s.Require().NoError(err)
	live, err := s.service.Create(s.ctx, CreateOptions{Players: humans()})
	s.Require().NoError(err)

	s.Empty(s.service.Prune(s.ctx, time.Hour))

	s.clock.Advance(2 * time.Hour)
	s.Equal([]model.MatchID{finished.ID}, s.service.Prune(s.ctx, time.Hour))

	_, err = s.service.Get(s.ctx, live.ID)
	s.NoError(err)
}
