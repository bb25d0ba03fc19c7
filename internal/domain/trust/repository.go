package trust

import "context"

// Repository is the append-only trust ledger. Append must write the entry and
// the player's clamped balance atomically; entries are never edited or
// removed.
type Repository interface {
	// Append stores the transaction and updates the player's denormalized
	// balance to max(0, previous + points) in the same write. The returned
	// transaction carries the post-append balance.
	Append(ctx context.Context, tx Transaction) (Transaction, error)
	ListByPlayer(ctx context.Context, playerID string, limit, offset int) ([]Transaction, int, error)
	Leaderboard(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error)
}
