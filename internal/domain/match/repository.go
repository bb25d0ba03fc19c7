package match

import (
	"context"
	"time"
)

// ScoreUpdate is the payload for recording a reported score. Both approval
// flags are reset and any invalidation marker cleared as part of the same
// write.
type ScoreUpdate struct {
	Team1Score int
	Team2Score int
}

// Repository exposes match persistence. Approval and status transitions are
// expressed as conditional updates so concurrent captains cannot interleave
// a read-then-write window.
type Repository interface {
	Create(ctx context.Context, m Match) (Match, error)
	GetByID(ctx context.Context, id string) (Match, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Match, error)
	ListUpcoming(ctx context.Context, from time.Time) ([]Match, error)

	// RecordScore persists the reported score and moves the match to
	// pending-confirmation in one write.
	RecordScore(ctx context.Context, matchID string, update ScoreUpdate) (Match, error)

	// Approve sets the captain-approval flag for teamID and, when the
	// opposite flag is already set, completes the match and stamps
	// completedAt, all as a single atomic read-modify-write.
	Approve(ctx context.Context, matchID, teamID string, completedAt time.Time) (Match, error)

	// SetStatus transitions the match status unconditionally.
	SetStatus(ctx context.Context, matchID, status string) (Match, error)

	// CompleteFromDispute marks the match completed with the given stamp;
	// used when a dispute resolves for the defending side.
	CompleteFromDispute(ctx context.Context, matchID string, completedAt time.Time) (Match, error)

	// InvalidateScore returns the match to pending-confirmation with the
	// contested score flagged as requiring resubmission.
	InvalidateScore(ctx context.Context, matchID string, invalidatedAt time.Time) (Match, error)

	AddParticipants(ctx context.Context, participants []Participation) error
	ListParticipants(ctx context.Context, matchID string) ([]Participation, error)
}
