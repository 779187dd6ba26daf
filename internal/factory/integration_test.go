package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/match"
	"github.com/mcoot/sequencegame/internal/services/simulation"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) legalMove(id model.MatchID, player model.PlayerID) model.Move {
	status, err := s.app.MatchService.Get(s.ctx, id)
	s.Require().NoError(err)
	hand, err := s.app.MatchService.Hand(s.ctx, id, player)
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

// Test: a bot-only match plays to the end and lands in results storage
func (s *IntegrationSuite) TestBotMatchIsRecorded() {
	status, err := s.app.MatchService.Create(s.ctx, match.CreateOptions{
		Players: []match.PlayerSpec{
			{ID: "red-bot", Team: model.TeamRed, Bot: true, Strategy: model.BotStrategyNetwork},
			{ID: "blue-bot", Team: model.TeamBlue, Bot: true, Strategy: model.BotStrategyFirst},
		},
		Series: "integration",
		Seed:   11,
	})
	s.Require().NoError(err)
	s.True(status.IsOver())

	summary, err := s.app.ResultsService.GetSummary(s.ctx, status.ID)
	s.Require().NoError(err)
	s.Equal("integration", summary.Series)
	s.Equal(status.Winner, summary.Winner)
	s.Equal(status.MoveCount, summary.NumMoves)
	s.Equal(s.app.MockClock.Now(), summary.CompletedAt)

	tally, err := s.app.ResultsService.GetTally(s.ctx, "integration")
	s.Require().NoError(err)
	s.Equal(1, tally.Games)
	s.Equal(status.MoveCount, tally.TotalMoves)
}

// Test: a human seat waits for its move and the bot answers within the same call
func (s *IntegrationSuite) TestHumanAgainstBot() {
	status, err := s.app.MatchService.Create(s.ctx, match.CreateOptions{
		Players: []match.PlayerSpec{
			{ID: "alice", Name: "Alice", Team: model.TeamRed},
			{ID: "bot", Team: model.TeamGreen, Bot: true, Strategy: model.BotStrategyRandom},
		},
		Seed: 5,
	})
	s.Require().NoError(err)
	s.Equal(model.GameStateAwaitingMove, status.State)
	s.Equal(model.PlayerID("alice"), status.CurrentTurn)

	// Only the human seat can be driven from outside
	_, err = s.app.MatchService.PlayMove(s.ctx, status.ID, "bot", model.Move{})
	s.ErrorIs(err, model.ErrNotPlayerTurn)

	move := s.legalMove(status.ID, "alice")
	after, err := s.app.MatchService.PlayMove(s.ctx, status.ID, "alice", move)
	s.Require().NoError(err)
	s.Equal(2, after.MoveCount)
	s.Equal(model.PlayerID("alice"), after.CurrentTurn)

	cell, err := after.Board.CellAt(move.Position)
	s.Require().NoError(err)
	s.Equal(model.Chip(model.TeamRed), cell.Occupant)
}

// Test: events for a watched match reach its hub, and removing the match drops the hub
func (s *IntegrationSuite) TestMatchHubLifecycle() {
	status, err := s.app.MatchService.Create(s.ctx, match.CreateOptions{
		Players: []match.PlayerSpec{
			{ID: "alice", Team: model.TeamRed},
			{ID: "bob", Team: model.TeamBlue},
		},
		Seed: 3,
	})
	s.Require().NoError(err)

	hub := s.app.HubManager.GetOrCreateHub(status.ID)
	s.Same(hub, s.app.HubManager.GetHub(status.ID))

	s.Require().NoError(s.app.MatchService.Remove(s.ctx, status.ID))
	s.Nil(s.app.HubManager.GetHub(status.ID))
}

// Test: a recorded simulation shows up in the stored tally
func (s *IntegrationSuite) TestSimulationFeedsResults() {
	report, err := s.app.SimulationRunner.Run(s.ctx, simulation.Config{
		Games:   4,
		Seed:    9,
		Series:  "experiment",
		Workers: 2,
		Record:  true,
		Seats: []simulation.Seat{
			{Team: model.TeamRed, Strategy: model.BotStrategyRandom},
			{Team: model.TeamBlue, Strategy: model.BotStrategyNetwork},
		},
	})
	s.Require().NoError(err)
	s.Len(report.Games, 4)

	stored, err := s.app.ResultsService.GetTally(s.ctx, "experiment")
	s.Require().NoError(err)
	s.Equal(report.Tally.Games, stored.Games)
	s.Equal(report.Tally.Ties, stored.Ties)
	s.Equal(report.Tally.TotalMoves, stored.TotalMoves)

	summaries, err := s.app.ResultsService.ListSummaries(s.ctx, "experiment", 0)
	s.Require().NoError(err)
	s.Len(summaries, 4)

	series, err := s.app.ResultsService.ListSeries(s.ctx)
	s.Require().NoError(err)
	s.Contains(series, "experiment")
}

// Test: finished matches are pruned once old enough, live ones are kept
func (s *IntegrationSuite) TestPruneFinishedMatches() {
	finished, err := s.app.MatchService.Create(s.ctx, match.CreateOptions{
		Players: []match.PlayerSpec{
			{ID: "a", Team: model.TeamRed, Bot: true, Strategy: model.BotStrategyFirst},
			{ID: "b", Team: model.TeamBlue, Bot: true, Strategy: model.BotStrategyFirst},
		},
		Seed: 2,
	})
	s.Require().NoError(err)
	s.Require().True(finished.IsOver())

	live, err := s.app.MatchService.Create(s.ctx, match.CreateOptions{
		Players: []match.PlayerSpec{
			{ID: "alice", Team: model.TeamRed},
			{ID: "bob", Team: model.TeamBlue},
		},
		Seed: 2,
	})
	s.Require().NoError(err)

	s.Empty(s.app.MatchService.Prune(s.ctx, time.Hour))

	s.app.MockClock.Advance(2 * time.Hour)
	removed := s.app.MatchService.Prune(s.ctx, time.Hour)
	s.Equal([]model.MatchID{finished.ID}, removed)

	_, err = s.app.MatchService.Get(s.ctx, finished.ID)
	s.ErrorIs(err, model.ErrMatchNotFound)
	_, err = s.app.MatchService.Get(s.ctx, live.ID)
	s.NoError(err)
}

// Test: the production factory rejects unknown storage types
func (s *IntegrationSuite) TestNewRejectsUnknownStorage() {
	_, err := New(Config{StorageType: "postgres"})
	s.Error(err)

	_, err = New(Config{StorageType: StorageTypeRedis})
	s.Error(err)

	app, err := New(Config{})
	s.Require().NoError(err)
	s.NoError(app.Close())
}
