package matchevent

import (
	"strings"
	"time"
)

const (
	TypeGoal         = "goal"
	TypeAssist       = "assist"
	TypeOwnGoal      = "ownGoal"
	TypeYellowCard   = "yellowCard"
	TypeRedCard      = "redCard"
	TypeSubstitution = "substitution"
	TypePenalty      = "penalty"
	TypePenaltySaved = "penaltySaved"
)

// Event is one discrete in-match occurrence tied to a scorer and optionally
// an assisting player. Events are immutable once recorded.
type Event struct {
	ID         string
	MatchID    string
	TeamID     string
	ScorerID   string
	AssisterID string
	Type       string
	Minute     int
	Second     int
	CreatedAt  time.Time
}

// Stats aggregates the event set of one match.
type Stats struct {
	MatchID     string
	TotalEvents int
	Goals       int
	Assists     int
	YellowCards int
	RedCards    int
	ByTeam      []TeamBreakdown
}

type TeamBreakdown struct {
	TeamID  string
	Goals   int
	Assists int
	Cards   int
}

func IsValidType(value string) bool {
	switch strings.TrimSpace(value) {
	case TypeGoal, TypeAssist, TypeOwnGoal, TypeYellowCard, TypeRedCard,
		TypeSubstitution, TypePenalty, TypePenaltySaved:
		return true
	default:
		return false
	}
}

func IsCard(eventType string) bool {
	return eventType == TypeYellowCard || eventType == TypeRedCard
}
