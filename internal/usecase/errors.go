package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Match lifecycle conflicts.
	ErrInvalidScore      = errors.New("invalid score")
	ErrInvalidMatchState = errors.New("match is not in a valid state for this operation")
	ErrNoPendingScore    = errors.New("match has no score awaiting confirmation")
	ErrTeamNotInMatch    = errors.New("team is not part of this match")

	// Dispute workflow conflicts.
	ErrDisputeAlreadyOpen = errors.New("match already has an open dispute")
	ErrDisputeResolved    = errors.New("dispute is already resolved")
	ErrPlayerNotEligible  = errors.New("player did not participate in the disputed match")
	ErrDuplicateVote      = errors.New("player has already voted on this dispute")
)
