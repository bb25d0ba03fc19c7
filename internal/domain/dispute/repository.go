package dispute

import (
	"context"
	"errors"
	"time"
)

// Store-level conflict signals. Repositories translate constraint violations
// into these so the usecase layer can map them without knowing the engine.
var (
	// ErrOpenDisputeExists is returned by Create when the match already has
	// an open dispute.
	ErrOpenDisputeExists = errors.New("match already has an open dispute")
	// ErrVoteExists is returned by InsertVote on a duplicate
	// (dispute, voter) pair.
	ErrVoteExists = errors.New("player already voted on dispute")
)

// Repository persists disputes and their votes. Uniqueness of the open
// dispute per match and of one vote per (dispute, player) must be enforced
// atomically at insertion, not by prior existence queries.
type Repository interface {
	// Create inserts the dispute; fails with ErrOpenDisputeExists when an
	// open dispute for the same match is already present.
	Create(ctx context.Context, d Dispute) (Dispute, error)
	GetByID(ctx context.Context, id string) (Dispute, bool, error)
	ListOpen(ctx context.Context) ([]Dispute, error)

	// InsertVote appends the vote; fails with ErrVoteExists on a duplicate
	// voter for the dispute.
	InsertVote(ctx context.Context, v Vote) (Vote, error)
	ListVotes(ctx context.Context, disputeID string) ([]Vote, error)

	// Resolve flips the dispute from open to resolved with the winning team
	// and timestamp. Returns won=false without error when another caller
	// resolved it first; exactly one caller observes won=true.
	Resolve(ctx context.Context, disputeID, winningTeamID string, resolvedAt time.Time) (won bool, err error)
}
