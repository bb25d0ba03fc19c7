package dispute

import "time"

const (
	StatusOpen     = "open"
	StatusResolved = "resolved"
)

// Dispute is a contested score on one match. At most one dispute may be open
// per match at a time; the status machine is open -> resolved, terminal.
type Dispute struct {
	ID              string
	MatchID         string
	DisputingTeamID string
	DefendingTeamID string
	Reason          string
	Status          string
	// WinningTeamID and ResolvedAt are set exactly once, on resolution.
	WinningTeamID string
	ResolvedAt    *time.Time
	CreatedAt     time.Time
}

// Vote is one participant's voice on a dispute. Append-only; a second vote
// from the same player is rejected, never overwritten.
type Vote struct {
	ID            string
	DisputeID     string
	VoterID       string
	VoteForTeamID string
	CreatedAt     time.Time
}

func (d Dispute) IsOpen() bool {
	return d.Status == StatusOpen
}
