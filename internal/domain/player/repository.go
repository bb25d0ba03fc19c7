package player

import "context"

// Repository describes player profile persistence needs from use cases.
type Repository interface {
	Upsert(ctx context.Context, p Profile) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, bool, error)

	// IncrementStats applies a lifetime-counter delta atomically.
	IncrementStats(ctx context.Context, userID string, delta StatDelta) error

	TopByGoals(ctx context.Context, limit, offset int) ([]Profile, error)
	TopByAssists(ctx context.Context, limit, offset int) ([]Profile, error)
	TopByWins(ctx context.Context, limit, offset int) ([]Profile, error)
}
