package sequence

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/sequencegame/internal/model"
	"github.com/mcoot/sequencegame/internal/services/board"
)

type DetectorSuite struct {
	suite.Suite
	board  *model.Board
	record model.SequenceRecord
}

func TestDetectorSuite(t *testing.T) {
	suite.Run(t, new(DetectorSuite))
}

func (s *DetectorSuite) SetupTest() {
	s.board = board.Standard()
	s.record = make(model.SequenceRecord)
}

func (s *DetectorSuite) place(team model.Team, positions ...model.Position) {
	for _, pos := range positions {
		s.Require().NoError(s.board.SetOccupant(pos, model.Chip(team)))
	}
}

// placeAndScan puts one chip down and runs the detector as the engine would
func (s *DetectorSuite) placeAndScan(team model.Team, pos model.Position) []Completed {
	s.place(team, pos)
	return Scan(s.board, s.record, pos, team)
}

// Canonicalize tests

func (s *DetectorSuite) TestCanonicalizePairsOpposites() {
	for _, dir := range model.Directions() {
		up, down := Canonicalize(dir)
		oppUp, oppDown := Canonicalize(dir.Opposite())
		s.Equal(up, oppUp, "dir %v", dir)
		s.Equal(down, oppDown, "dir %v", dir)
		s.True(up.GoesBackward())
		s.Equal(up.Opposite(), down)
		s.Equal(down, dir.Orientation().Forward())
	}
}

func (s *DetectorSuite) TestCanonicalizeHorizontal() {
	up, down := Canonicalize(model.DirRight)
	s.Equal(model.DirLeft, up)
	s.Equal(model.DirRight, down)
}

func (s *DetectorSuite) TestCanonicalizeVertical() {
	up, down := Canonicalize(model.DirDown)
	s.Equal(model.DirUp, up)
	s.Equal(model.DirDown, down)
}

// MatchingNeighbors tests

func (s *DetectorSuite) TestMatchingNeighborsIncludesWildcard() {
	s.place(model.TeamRed, model.Pos(2, 1))
	s.place(model.TeamGreen, model.Pos(1, 2))

	neighbors := MatchingNeighbors(s.board, model.Pos(1, 1), model.TeamRed)
	s.ElementsMatch([]model.Position{model.Pos(0, 0), model.Pos(2, 1)}, neighbors)
}

func (s *DetectorSuite) TestMatchingNeighborsSkipsLockedAlongLine() {
	s.place(model.TeamRed, model.Pos(4, 4), model.Pos(5, 4))
	s.Require().NoError(s.board.Lock(model.Pos(4, 4), model.OrientationHorizontal))
	s.Require().NoError(s.board.Lock(model.Pos(5, 4), model.OrientationVertical))

	neighbors := MatchingNeighbors(s.board, model.Pos(5, 5), model.TeamRed)
	s.Equal([]model.Position{model.Pos(4, 4)}, neighbors)
}

func (s *DetectorSuite) TestMatchingNeighborsAtEdge() {
	s.place(model.TeamBlue, model.Pos(1, 9))
	neighbors := MatchingNeighbors(s.board, model.Pos(2, 9), model.TeamBlue)
	s.Equal([]model.Position{model.Pos(1, 9)}, neighbors)
}

// Extent tests

func (s *DetectorSuite) TestExtentStopsAtOtherTeam() {
	s.place(model.TeamRed, model.Pos(3, 5), model.Pos(4, 5))
	s.place(model.TeamGreen, model.Pos(5, 5))
	s.place(model.TeamRed, model.Pos(6, 5))

	s.Equal(2, Extent(s.board, model.Pos(2, 5), model.DirRight, model.TeamRed))
}

func (s *DetectorSuite) TestExtentStopsAtBoardEdge() {
	s.place(model.TeamRed, model.Pos(1, 0), model.Pos(2, 0))
	s.Equal(3, Extent(s.board, model.Pos(3, 0), model.DirLeft, model.TeamRed))
}

func (s *DetectorSuite) TestExtentStopsAtLock() {
	s.place(model.TeamRed, model.Pos(3, 5), model.Pos(4, 5))
	s.Require().NoError(s.board.Lock(model.Pos(3, 5), model.OrientationHorizontal))

	s.Equal(1, Extent(s.board, model.Pos(5, 5), model.DirLeft, model.TeamRed))
	s.Equal(0, Extent(s.board, model.Pos(3, 6), model.DirUp, model.TeamGreen))
}

// Detect tests

func (s *DetectorSuite) TestSimpleSequenceFromCorner() {
	s.place(model.TeamRed, model.Pos(1, 0), model.Pos(2, 0), model.Pos(3, 0))

	completed := s.placeAndScan(model.TeamRed, model.Pos(4, 0))

	s.Require().Len(completed, 1)
	s.Equal(Completed{Header: model.Pos(0, 0), Orientation: model.OrientationHorizontal}, completed[0])
	s.Equal(1, s.record.Count())
	for x := 1; x <= 4; x++ {
		pos := model.Pos(x, 0)
		s.True(s.board.IsLockedIn(pos, model.OrientationHorizontal), "cell %v", pos)
		s.False(s.board.IsLockedIn(pos, model.OrientationVertical))
		s.False(s.board.IsLockedIn(pos, model.OrientationDiagonalUp))
		s.False(s.board.IsLockedIn(pos, model.OrientationDiagonalDown))
	}
	s.False(s.board.IsLocked(model.Pos(0, 0)))
}

func (s *DetectorSuite) TestFourInARowIsNotASequence() {
	s.place(model.TeamRed, model.Pos(3, 4), model.Pos(4, 4), model.Pos(5, 4))

	completed := s.placeAndScan(model.TeamRed, model.Pos(6, 4))

	s.Empty(completed)
	s.Zero(s.record.Count())
	s.False(s.board.IsLocked(model.Pos(6, 4)))
}

func (s *DetectorSuite) TestFillingTheMiddleCountsOnce() {
	s.place(model.TeamBlue, model.Pos(2, 4), model.Pos(3, 4), model.Pos(5, 4), model.Pos(6, 4))

	completed := s.placeAndScan(model.TeamBlue, model.Pos(4, 4))

	s.Require().Len(completed, 1)
	s.Equal(model.Pos(2, 4), completed[0].Header)
	s.Equal(model.OrientationHorizontal, completed[0].Orientation)
}

func (s *DetectorSuite) TestLongLineLocksFiveFromHeader() {
	s.place(model.TeamRed, model.Pos(2, 4), model.Pos(3, 4), model.Pos(5, 4), model.Pos(6, 4), model.Pos(7, 4))

	completed := s.placeAndScan(model.TeamRed, model.Pos(4, 4))

	s.Require().Len(completed, 1)
	s.Equal(model.Pos(2, 4), completed[0].Header)
	for x := 2; x <= 6; x++ {
		s.True(s.board.IsLockedIn(model.Pos(x, 4), model.OrientationHorizontal))
	}
	s.False(s.board.IsLocked(model.Pos(7, 4)))
}

func (s *DetectorSuite) TestVerticalSequence() {
	s.place(model.TeamGreen, model.Pos(7, 2), model.Pos(7, 3), model.Pos(7, 5), model.Pos(7, 6))

	completed := s.placeAndScan(model.TeamGreen, model.Pos(7, 4))

	s.Require().Len(completed, 1)
	s.Equal(Completed{Header: model.Pos(7, 2), Orientation: model.OrientationVertical}, completed[0])
}

func (s *DetectorSuite) TestDiagonalDownFromCorner() {
	s.place(model.TeamRed, model.Pos(1, 1), model.Pos(2, 2), model.Pos(3, 3))

	completed := s.placeAndScan(model.TeamRed, model.Pos(4, 4))

	s.Require().Len(completed, 1)
	s.Equal(Completed{Header: model.Pos(0, 0), Orientation: model.OrientationDiagonalDown}, completed[0])
	s.True(s.board.IsLockedIn(model.Pos(2, 2), model.OrientationDiagonalDown))
}

func (s *DetectorSuite) TestDiagonalUpFromCorner() {
	s.place(model.TeamBlue, model.Pos(1, 8), model.Pos(2, 7), model.Pos(3, 6))

	completed := s.placeAndScan(model.TeamBlue, model.Pos(4, 5))

	s.Require().Len(completed, 1)
	s.Equal(Completed{Header: model.Pos(0, 9), Orientation: model.OrientationDiagonalUp}, completed[0])
	s.True(s.board.IsLockedIn(model.Pos(4, 5), model.OrientationDiagonalUp))
	s.True(s.board.IsLockedIn(model.Pos(1, 8), model.OrientationDiagonalUp))
}

func (s *DetectorSuite) TestCrossCompletesTwo() {
	s.place(model.TeamRed,
		model.Pos(3, 5), model.Pos(4, 5), model.Pos(6, 5), model.Pos(7, 5),
		model.Pos(5, 3), model.Pos(5, 4), model.Pos(5, 6), model.Pos(5, 7),
	)

	completed := s.placeAndScan(model.TeamRed, model.Pos(5, 5))

	s.ElementsMatch([]Completed{
		{Header: model.Pos(3, 5), Orientation: model.OrientationHorizontal},
		{Header: model.Pos(5, 3), Orientation: model.OrientationVertical},
	}, completed)
	s.Equal(2, s.record.Count())
	s.True(s.board.IsLockedIn(model.Pos(5, 5), model.OrientationHorizontal))
	s.True(s.board.IsLockedIn(model.Pos(5, 5), model.OrientationVertical))
}

func (s *DetectorSuite) TestSharedHeaderRecordsBothOrientations() {
	s.place(model.TeamGreen, model.Pos(2, 2), model.Pos(3, 2), model.Pos(4, 2), model.Pos(5, 2))
	s.place(model.TeamGreen, model.Pos(1, 3), model.Pos(1, 4), model.Pos(1, 5), model.Pos(1, 6))

	first := s.placeAndScan(model.TeamGreen, model.Pos(1, 2))
	s.Require().Len(first, 2)

	s.Equal([]model.Orientation{model.OrientationHorizontal, model.OrientationVertical}, sortedOrientations(s.record[model.Pos(1, 2)]))
}

func (s *DetectorSuite) TestLockedCellsCannotBeReusedAlongLine() {
	s.place(model.TeamRed, model.Pos(1, 0), model.Pos(2, 0), model.Pos(3, 0))
	s.Require().Len(s.placeAndScan(model.TeamRed, model.Pos(4, 0)), 1)

	s.place(model.TeamRed, model.Pos(5, 0), model.Pos(6, 0))
	completed := s.placeAndScan(model.TeamRed, model.Pos(7, 0))

	s.Empty(completed)
	s.Equal(1, s.record.Count())
}

func (s *DetectorSuite) TestSecondSequenceInSameRowAfterLock() {
	s.place(model.TeamRed, model.Pos(1, 0), model.Pos(2, 0), model.Pos(3, 0))
	s.Require().Len(s.placeAndScan(model.TeamRed, model.Pos(4, 0)), 1)

	s.place(model.TeamRed, model.Pos(5, 0), model.Pos(6, 0), model.Pos(7, 0))
	completed := s.placeAndScan(model.TeamRed, model.Pos(8, 0))

	s.Require().Len(completed, 1)
	s.Equal(Completed{Header: model.Pos(5, 0), Orientation: model.OrientationHorizontal}, completed[0])
	s.Equal(2, s.record.Count())
}

func (s *DetectorSuite) TestLockedCellCanStartPerpendicular() {
	s.place(model.TeamRed, model.Pos(1, 0), model.Pos(2, 0), model.Pos(3, 0))
	s.Require().Len(s.placeAndScan(model.TeamRed, model.Pos(4, 0)), 1)

	s.place(model.TeamRed, model.Pos(1, 1), model.Pos(1, 2), model.Pos(1, 3))
	completed := s.placeAndScan(model.TeamRed, model.Pos(1, 4))

	s.Require().Len(completed, 1)
	s.Equal(Completed{Header: model.Pos(1, 0), Orientation: model.OrientationVertical}, completed[0])
	s.True(s.board.IsLockedIn(model.Pos(1, 0), model.OrientationHorizontal))
	s.True(s.board.IsLockedIn(model.Pos(1, 0), model.OrientationVertical))
}

func (s *DetectorSuite) TestOtherTeamDoesNotComplete() {
	s.place(model.TeamRed, model.Pos(1, 0), model.Pos(2, 0), model.Pos(3, 0))

	completed := s.placeAndScan(model.TeamGreen, model.Pos(4, 0))

	s.Empty(completed)
}

func (s *DetectorSuite) TestDetectDoesNotMutate() {
	s.place(model.TeamRed, model.Pos(1, 0), model.Pos(2, 0), model.Pos(3, 0), model.Pos(4, 0))
	before := s.board.Clone()

	completed := Detect(s.board, s.record, model.Pos(4, 0), model.TeamRed)

	s.Len(completed, 1)
	s.True(before.Equal(s.board))
	s.Zero(s.record.Count())
}

func (s *DetectorSuite) TestDetectSkipsRecorded() {
	s.place(model.TeamRed, model.Pos(1, 0), model.Pos(2, 0), model.Pos(3, 0), model.Pos(4, 0))
	s.record.Add(model.Pos(0, 0), model.OrientationHorizontal)

	s.Empty(Detect(s.board, s.record, model.Pos(4, 0), model.TeamRed))
}

// Apply tests

func (s *DetectorSuite) TestApplyIgnoresDuplicates() {
	c := Completed{Header: model.Pos(2, 2), Orientation: model.OrientationVertical}

	s.Equal(1, Apply(s.board, s.record, []Completed{c, c}))
	s.Equal(0, Apply(s.board, s.record, []Completed{c}))
	s.Equal(1, s.record.Count())
}

func (s *DetectorSuite) TestCompletedCells() {
	c := Completed{Header: model.Pos(0, 9), Orientation: model.OrientationDiagonalUp}
	s.Equal([]model.Position{
		model.Pos(0, 9), model.Pos(1, 8), model.Pos(2, 7), model.Pos(3, 6), model.Pos(4, 5),
	}, c.Cells())
}

func sortedOrientations(in []model.Orientation) []model.Orientation {
	out := slices.Clone(in)
	slices.Sort(out)
	return out
}
