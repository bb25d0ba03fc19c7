package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Zedster07/StreetBaller/internal/domain/player"
	basecache "github.com/Zedster07/StreetBaller/internal/platform/cache"
)

type countingPlayerRepo struct {
	getCalls   int
	boardCalls int
	profile    player.Profile
}

func (r *countingPlayerRepo) Upsert(_ context.Context, p player.Profile) (player.Profile, error) {
	r.profile = p
	return p, nil
}

func (r *countingPlayerRepo) GetByUserID(_ context.Context, userID string) (player.Profile, bool, error) {
	r.getCalls++
	if userID != r.profile.UserID {
		return player.Profile{}, false, nil
	}
	return r.profile, true, nil
}

func (r *countingPlayerRepo) IncrementStats(_ context.Context, _ string, delta player.StatDelta) error {
	r.profile.GoalsScored += delta.GoalsScored
	return nil
}

func (r *countingPlayerRepo) TopByGoals(_ context.Context, _, _ int) ([]player.Profile, error) {
	r.boardCalls++
	return []player.Profile{r.profile}, nil
}

func (r *countingPlayerRepo) TopByAssists(_ context.Context, _, _ int) ([]player.Profile, error) {
	r.boardCalls++
	return []player.Profile{r.profile}, nil
}

func (r *countingPlayerRepo) TopByWins(_ context.Context, _, _ int) ([]player.Profile, error) {
	r.boardCalls++
	return []player.Profile{r.profile}, nil
}

func TestPlayerRepository_ReadThroughAndInvalidation(t *testing.T) {
	ctx := t.Context()
	next := &countingPlayerRepo{profile: player.Profile{UserID: "user-rio", DisplayName: "Rio", GoalsScored: 3}}
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	first, found, err := repo.GetByUserID(ctx, "user-rio")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 3, first.GoalsScored)

	_, _, err = repo.GetByUserID(ctx, "user-rio")
	require.NoError(t, err)
	require.Equal(t, 1, next.getCalls)

	boards, err := repo.TopByGoals(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, boards, 1)
	_, err = repo.TopByGoals(ctx, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, next.boardCalls)

	require.NoError(t, repo.IncrementStats(ctx, "user-rio", player.StatDelta{GoalsScored: 1}))

	refreshed, found, err := repo.GetByUserID(ctx, "user-rio")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 4, refreshed.GoalsScored)
	require.Equal(t, 2, next.getCalls)

	_, err = repo.TopByGoals(ctx, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 2, next.boardCalls)
}
