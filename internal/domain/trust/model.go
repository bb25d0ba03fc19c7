package trust

import "time"

const (
	TypeAward   = "award"
	TypePenalty = "penalty"
)

// Point values mirrored from the platform's reward table.
const (
	PointsDisputeWon     = 5
	PointsFalseDispute   = -3
	PointsShowUp         = 10
	PointsMatchPlayed    = 5
	PointsMatchWon       = 20
	PointsGoal           = 10
	PointsAssist         = 5
	PointsCorrectVote    = 15
	PointsHonestReport   = 20
	PointsProfileCreated = 100
)

// Transaction is one immutable entry in a player's trust ledger. Balance is
// the floor-clamped running sum after the entry was applied.
type Transaction struct {
	ID               string
	PlayerID         string
	Type             string
	Points           int
	Balance          int
	Reason           string
	RelatedMatchID   string
	RelatedDisputeID string
	CreatedAt        time.Time
}

// LeaderboardEntry is a read-side projection of a player ranked by trust.
type LeaderboardEntry struct {
	PlayerID    string
	DisplayName string
	TrustPoints int
	GamesPlayed int
	Wins        int
	Goals       int
	Assists     int
}

func TypeForPoints(points int) string {
	if points >= 0 {
		return TypeAward
	}
	return TypePenalty
}
