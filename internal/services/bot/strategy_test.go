package bot_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/sequencegame/internal/dependencies/mocks"
	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/board"
	"github.com/mcoot/sequencegame/internal/services/bot"
	"github.com/mcoot/sequencegame/internal/services/game"
)

// fakeView serves canned answers so each strategy rule can be tested alone
type fakeView struct {
	board    *model.Board
	seats    []game.Seat
	targets  map[model.Card][]model.Position
	openings map[model.Team][][2]model.Position
}

func (v *fakeView) Board() *model.Board { return v.board.Clone() }

func (v *fakeView) Hand(model.PlayerID) (*model.Hand, error) { return nil, model.ErrPlayerNotFound }

func (v *fakeView) Seats() []game.Seat { return v.seats }

func (v *fakeView) LegalTargets(_ model.Team, card model.Card) []model.Position {
	return v.targets[card]
}

func (v *fakeView) FindOpeningForSequence(team model.Team) [][2]model.Position {
	return v.openings[team]
}

func (v *fakeView) Chips() map[model.Team][]model.Position { return v.board.ChipsByTeam() }

type StrategySuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	view       *fakeView
	seat       game.Seat
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.seat = game.Seat{ID: "red", Team: model.TeamRed}
	s.view = &fakeView{
		board:    board.Standard(),
		seats:    []game.Seat{s.seat, {ID: "green", Team: model.TeamGreen}},
		targets:  make(map[model.Card][]model.Position),
		openings: make(map[model.Team][][2]model.Position),
	}
}

func (s *StrategySuite) card(text string) model.Card {
	c, err := model.ParseCard(text)
	s.Require().NoError(err)
	return c
}

func (s *StrategySuite) hand(cards ...string) *model.Hand {
	h := model.NewHand(s.seat.ID, s.seat.Team)
	for _, text := range cards {
		h.Add(s.card(text))
	}
	return h
}

func (s *StrategySuite) target(card string, positions ...model.Position) {
	s.view.targets[s.card(card)] = positions
}

// RandomStrategy tests

func (s *StrategySuite) TestRandomPicksQueuedOption() {
	s.target("2S", model.Pos(1, 0), model.Pos(6, 8))
	s.target("KH", model.Pos(6, 1), model.Pos(6, 5))
	s.mockRandom.QueueIntn(1, 1)

	d := bot.NewRandomStrategy(s.mockRandom).Choose(s.view, s.seat, s.hand("2S", "KH"))

	s.Equal(bot.Play(model.Pos(6, 5), 1), d)
}

func (s *StrategySuite) TestRandomSkipsDeadCards() {
	s.target("KH", model.Pos(6, 1))
	s.mockRandom.QueueIntn(0, 0)

	d := bot.NewRandomStrategy(s.mockRandom).Choose(s.view, s.seat, s.hand("2S", "KH"))

	s.Equal(bot.Play(model.Pos(6, 1), 1), d)
}

func (s *StrategySuite) TestRandomDeadCardWhenStuck() {
	d := bot.NewRandomStrategy(s.mockRandom).Choose(s.view, s.seat, s.hand("2S", "KH"))
	s.Equal(bot.Dead(0), d)
}

// FirstStrategy tests

func (s *StrategySuite) TestFirstPrefersPlacementOverRemoval() {
	s.target("J1S", model.Pos(3, 3))
	s.target("KH", model.Pos(6, 1), model.Pos(6, 5))

	d := bot.NewFirstStrategy().Choose(s.view, s.seat, s.hand("J1S", "2S", "KH"))

	s.Equal(bot.Play(model.Pos(6, 1), 2), d)
}

func (s *StrategySuite) TestFirstRemovesWhenOnlyOption() {
	s.target("J1S", model.Pos(3, 3), model.Pos(4, 4))

	d := bot.NewFirstStrategy().Choose(s.view, s.seat, s.hand("2S", "J1S"))

	s.Equal(bot.Play(model.Pos(3, 3), 1), d)
}

func (s *StrategySuite) TestFirstDeadCard() {
	d := bot.NewFirstStrategy().Choose(s.view, s.seat, s.hand("QH", "2S"))
	s.Equal(bot.Dead(0), d)
}

// NetworkStrategy tests

func (s *StrategySuite) TestNetworkReplacesDeadFaceCardFirst() {
	s.target("KH", model.Pos(6, 1))

	d := bot.NewNetworkStrategy().Choose(s.view, s.seat, s.hand("KH", "2S"))

	s.Equal(bot.Dead(1), d)
}

func (s *StrategySuite) TestNetworkKeepsDeadJacks() {
	s.target("KH", model.Pos(6, 1))

	d := bot.NewNetworkStrategy().Choose(s.view, s.seat, s.hand("J1S", "KH"))

	s.Equal(bot.Play(model.Pos(6, 1), 1), d)
}

func (s *StrategySuite) TestNetworkCompletesOwnSequence() {
	s.target("5S", model.Pos(4, 0))
	s.target("KH", model.Pos(6, 1))
	s.view.openings[model.TeamRed] = [][2]model.Position{{model.Pos(1, 0), model.Pos(4, 0)}}

	d := bot.NewNetworkStrategy().Choose(s.view, s.seat, s.hand("KH", "5S"))

	s.Equal(bot.Play(model.Pos(4, 0), 1), d)
}

func (s *StrategySuite) TestNetworkPrefersFaceCardForOpening() {
	s.target("J2H", model.Pos(4, 0), model.Pos(5, 5))
	s.target("5S", model.Pos(4, 0))
	s.view.openings[model.TeamRed] = [][2]model.Position{{model.Pos(1, 0), model.Pos(4, 0)}}

	d := bot.NewNetworkStrategy().Choose(s.view, s.seat, s.hand("J2H", "5S"))

	s.Equal(bot.Play(model.Pos(4, 0), 1), d)
}

func (s *StrategySuite) TestNetworkBlocksOpponent() {
	s.target("5S", model.Pos(4, 0))
	s.target("KH", model.Pos(6, 1))
	s.view.openings[model.TeamGreen] = [][2]model.Position{{model.Pos(1, 0), model.Pos(4, 0)}}

	d := bot.NewNetworkStrategy().Choose(s.view, s.seat, s.hand("KH", "5S"))

	s.Equal(bot.Play(model.Pos(4, 0), 1), d)
}

func (s *StrategySuite) TestNetworkBreaksOpponentWithRemoval() {
	s.target("J1S", model.Pos(1, 0), model.Pos(7, 7))
	s.target("KH", model.Pos(6, 1))
	s.view.openings[model.TeamGreen] = [][2]model.Position{{model.Pos(1, 0), model.Pos(4, 0)}}

	d := bot.NewNetworkStrategy().Choose(s.view, s.seat, s.hand("KH", "J1S"))

	s.Equal(bot.Play(model.Pos(1, 0), 1), d)
}

func (s *StrategySuite) TestNetworkBuildsNextToAllies() {
	s.Require().NoError(s.view.board.SetOccupant(model.Pos(5, 4), model.Chip(model.TeamRed)))
	s.Require().NoError(s.view.board.SetOccupant(model.Pos(5, 6), model.Chip(model.TeamRed)))
	// 3H at (5,5) joins both allied chips, AD at (6,7) lines up with one
	s.target("3H", model.Pos(5, 5), model.Pos(8, 8))
	s.target("AD", model.Pos(6, 7), model.Pos(1, 9))

	d := bot.NewNetworkStrategy().Choose(s.view, s.seat, s.hand("AD", "3H"))

	s.Equal(bot.Play(model.Pos(5, 5), 1), d)
}

func (s *StrategySuite) TestNetworkHoldsTwoEyedJackOnTie() {
	s.target("J2C", model.Pos(2, 2))
	s.target("KH", model.Pos(6, 1))

	d := bot.NewNetworkStrategy().Choose(s.view, s.seat, s.hand("J2C", "KH"))

	s.Equal(bot.Play(model.Pos(6, 1), 1), d)
}

func (s *StrategySuite) TestNetworkRemovesAsLastResort() {
	s.target("J1H", model.Pos(3, 3))

	d := bot.NewNetworkStrategy().Choose(s.view, s.seat, s.hand("J1H"))

	s.Equal(bot.Play(model.Pos(3, 3), 0), d)
}
