package model

import (
	"fmt"
	"strings"
)

// Team identifies a chip colour. The zero value TeamNone is never a real
// team; it doubles as the tie result of a finished game.
type Team uint8

const (
	TeamNone Team = iota
	TeamRed
	TeamGreen
	TeamBlue
)

var teamNames = map[Team]string{
	TeamNone:  "none",
	TeamRed:   "red",
	TeamGreen: "green",
	TeamBlue:  "blue",
}

// Teams returns every playable team colour
func Teams() []Team {
	return []Team{TeamRed, TeamGreen, TeamBlue}
}

// IsValid returns true for a playable team colour
func (t Team) IsValid() bool {
	return t >= TeamRed && t <= TeamBlue
}

// String returns the lower-case colour name
func (t Team) String() string {
	if name, ok := teamNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Team(%d)", uint8(t))
}

// MarshalText implements encoding.TextMarshaler
func (t Team) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Team) UnmarshalText(text []byte) error {
	parsed, err := ParseTeam(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTeam parses a colour name, case-insensitively. "none" parses to TeamNone.
func ParseTeam(s string) (Team, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range teamNames {
		if name == s {
			return t, nil
		}
	}
	return TeamNone, fmt.Errorf("%w: unknown team %q", ErrInvalidArgument, s)
}

// OccupantKind distinguishes the three things a cell can hold
type OccupantKind uint8

const (
	OccupantEmpty OccupantKind = iota
	OccupantWildcard
	OccupantTeam
)

// Occupant is what currently sits on a cell: nothing, the wildcard that
// belongs to every team, or one team's chip
type Occupant struct {
	kind OccupantKind
	team Team
}

// Empty returns the unoccupied state
func Empty() Occupant {
	return Occupant{kind: OccupantEmpty}
}

// Wildcard returns the corner state shared by all teams
func Wildcard() Occupant {
	return Occupant{kind: OccupantWildcard}
}

// Chip returns a chip belonging to the given team
func Chip(team Team) Occupant {
	return Occupant{kind: OccupantTeam, team: team}
}

// Kind returns which variant this occupant is
func (o Occupant) Kind() OccupantKind {
	return o.kind
}

// Team returns the owning team for a chip, TeamNone otherwise
func (o Occupant) Team() Team {
	if o.kind != OccupantTeam {
		return TeamNone
	}
	return o.team
}

// IsEmpty returns true if nothing occupies the cell
func (o Occupant) IsEmpty() bool {
	return o.kind == OccupantEmpty
}

// IsWildcard returns true for a wildcard corner
func (o Occupant) IsWildcard() bool {
	return o.kind == OccupantWildcard
}

// IsChip returns true if a team's chip occupies the cell
func (o Occupant) IsChip() bool {
	return o.kind == OccupantTeam
}

// CountsFor returns true if the occupant counts toward a line for the team
func (o Occupant) CountsFor(team Team) bool {
	switch o.kind {
	case OccupantWildcard:
		return true
	case OccupantTeam:
		return o.team == team
	default:
		return false
	}
}

// String renders the occupant for logs and text boards
func (o Occupant) String() string {
	switch o.kind {
	case OccupantWildcard:
		return "wildcard"
	case OccupantTeam:
		return o.team.String()
	default:
		return "empty"
	}
}
