package matchevent

import "context"

// Repository is an append-only event store keyed by match and player.
type Repository interface {
	Insert(ctx context.Context, event Event) (Event, error)
	ListByMatch(ctx context.Context, matchID string, limit, offset int) ([]Event, int, error)
	ListByPlayer(ctx context.Context, playerID string, limit, offset int) ([]Event, int, error)
	ListByMatchAndPlayer(ctx context.Context, matchID, playerID string) ([]Event, error)
}
