package model

// PlayerID uniquely identifies a seat in a game
type PlayerID string

// Player describes who sits in a seat and which team they play for
type Player struct {
	ID          PlayerID
	DisplayName string
	Team        Team
	IsBot       bool
	BotStrategy string // Empty for human players
}
