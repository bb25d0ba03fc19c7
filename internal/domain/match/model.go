package match

import (
	"strings"
	"time"
)

const (
	StatusScheduled           = "scheduled"
	StatusInProgress          = "in-progress"
	StatusPendingConfirmation = "pending-confirmation"
	StatusCompleted           = "completed"
	StatusDisputed            = "disputed"
	StatusCancelled           = "cancelled"
)

const (
	Format5v5   = "5v5"
	Format7v7   = "7v7"
	Format11v11 = "11v11"
)

// Match is one scheduled street game between two teams.
type Match struct {
	ID                   string
	Team1ID              string
	Team2ID              string
	PitchID              string
	MatchDate            time.Time
	Format               string
	Status               string
	Team1Score           *int
	Team2Score           *int
	Team1CaptainApproved bool
	Team2CaptainApproved bool
	// CompletedAt is stamped when both captains approve, or when a dispute
	// resolves in favour of the defending team.
	CompletedAt *time.Time
	// ScoreInvalidatedAt marks a score thrown out by dispute resolution.
	// While set, the recorded score cannot be approved; a fresh submission
	// clears it.
	ScoreInvalidatedAt *time.Time
	CreatedByID        string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Participation records that a player took part in a match on a given side.
// Voting eligibility on disputes is keyed off this, not roster membership.
type Participation struct {
	MatchID  string
	PlayerID string
	TeamID   string
}

func (m Match) HasTeam(teamID string) bool {
	return teamID != "" && (teamID == m.Team1ID || teamID == m.Team2ID)
}

// OpposingTeam returns the other side of the match, or "" when teamID is
// not part of it.
func (m Match) OpposingTeam(teamID string) string {
	switch teamID {
	case m.Team1ID:
		return m.Team2ID
	case m.Team2ID:
		return m.Team1ID
	default:
		return ""
	}
}

func IsValidFormat(value string) bool {
	switch strings.TrimSpace(value) {
	case Format5v5, Format7v7, Format11v11:
		return true
	default:
		return false
	}
}

// AcceptsEvents reports whether the in-match event log is still open. Once a
// match is disputed the reported facts are frozen until the vote settles.
func (m Match) AcceptsEvents() bool {
	switch m.Status {
	case StatusScheduled, StatusInProgress, StatusPendingConfirmation:
		return true
	default:
		return false
	}
}

// AcceptsScoreSubmission reports whether a score may be recorded for the
// match in its current state. A previously invalidated score re-opens the
// submission window even though the status is still pending-confirmation.
func (m Match) AcceptsScoreSubmission() bool {
	switch m.Status {
	case StatusScheduled, StatusInProgress:
		return true
	case StatusPendingConfirmation:
		return m.ScoreInvalidatedAt != nil
	default:
		return false
	}
}
