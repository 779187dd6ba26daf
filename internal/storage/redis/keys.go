package redis

import (
	"fmt"

	"github.com/mcoot/sequencegame/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "seqgame"

// Hash fields of a tally
const (
	fieldGames = "games"
	fieldTies  = "ties"
	fieldMoves = "moves"
)

// summaryKey returns the Redis key for a GameSummary
func summaryKey(id model.MatchID) string {
	return fmt.Sprintf("%s:summary:%s", keyPrefix, id)
}

// summariesForSeriesIndexKey returns the Redis key for the ZSET of match IDs
// in a series, scored by completion time
func summariesForSeriesIndexKey(series string) string {
	return fmt.Sprintf("%s:idx:summaries_for_series:%s", keyPrefix, series)
}

// tallyKey returns the Redis key for the HASH holding a series tally
func tallyKey(series string) string {
	return fmt.Sprintf("%s:tally:%s", keyPrefix, series)
}

// seriesIndexKey returns the Redis key for the SET of known series names
func seriesIndexKey() string {
	return fmt.Sprintf("%s:idx:series", keyPrefix)
}

// winsField returns the tally hash field counting a team's wins
func winsField(team model.Team) string {
	return "wins:" + team.String()
}
