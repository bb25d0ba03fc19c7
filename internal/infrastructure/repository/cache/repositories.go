// Package cache wraps repositories with a read-through TTL cache. Writes
// invalidate the affected keys so reads never serve a stale roster or board
// past one write.
package cache

import (
	"context"
	"strconv"

	"github.com/Zedster07/StreetBaller/internal/domain/player"
	"github.com/Zedster07/StreetBaller/internal/domain/team"
	"github.com/Zedster07/StreetBaller/internal/domain/trust"
	basecache "github.com/Zedster07/StreetBaller/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	created, err := r.next.Create(ctx, t)
	if err != nil {
		return team.Team{}, err
	}

	r.cache.Delete(ctx, "team:list")
	return created, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := "team:id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) AddMember(ctx context.Context, m team.Membership) error {
	if err := r.next.AddMember(ctx, m); err != nil {
		return err
	}

	r.cache.Delete(ctx, "team:members:"+m.TeamID)
	return nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID string) error {
	if err := r.next.RemoveMember(ctx, teamID, userID); err != nil {
		return err
	}

	r.cache.Delete(ctx, "team:members:"+teamID)
	return nil
}

func (r *TeamRepository) ListMembers(ctx context.Context, teamID string) ([]team.Membership, error) {
	key := "team:members:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListMembers(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return append([]team.Membership(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Membership)
	return append([]team.Membership(nil), items...), nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Profile) (player.Profile, error) {
	saved, err := r.next.Upsert(ctx, p)
	if err != nil {
		return player.Profile{}, err
	}

	r.cache.Delete(ctx, "player:id:"+saved.UserID)
	r.cache.DeletePrefix(ctx, "player:board:")
	return saved, nil
}

func (r *PlayerRepository) GetByUserID(ctx context.Context, userID string) (player.Profile, bool, error) {
	key := "player:id:" + userID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return cachedProfileByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Profile{}, false, err
	}

	cached, _ := v.(cachedProfileByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) IncrementStats(ctx context.Context, userID string, delta player.StatDelta) error {
	if err := r.next.IncrementStats(ctx, userID, delta); err != nil {
		return err
	}

	r.cache.Delete(ctx, "player:id:"+userID)
	r.cache.DeletePrefix(ctx, "player:board:")
	return nil
}

func (r *PlayerRepository) TopByGoals(ctx context.Context, limit, offset int) ([]player.Profile, error) {
	return r.board(ctx, "goals", limit, offset, r.next.TopByGoals)
}

func (r *PlayerRepository) TopByAssists(ctx context.Context, limit, offset int) ([]player.Profile, error) {
	return r.board(ctx, "assists", limit, offset, r.next.TopByAssists)
}

func (r *PlayerRepository) TopByWins(ctx context.Context, limit, offset int) ([]player.Profile, error) {
	return r.board(ctx, "wins", limit, offset, r.next.TopByWins)
}

func (r *PlayerRepository) board(
	ctx context.Context,
	category string,
	limit, offset int,
	load func(context.Context, int, int) ([]player.Profile, error),
) ([]player.Profile, error) {
	key := "player:board:" + category + ":" + strconv.Itoa(limit) + ":" + strconv.Itoa(offset)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := load(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
		return append([]player.Profile(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Profile)
	return append([]player.Profile(nil), items...), nil
}

type cachedProfileByID struct {
	value  player.Profile
	exists bool
}

type TrustRepository struct {
	next  trust.Repository
	cache *basecache.Store
}

func NewTrustRepository(next trust.Repository, cache *basecache.Store) *TrustRepository {
	return &TrustRepository{next: next, cache: cache}
}

func (r *TrustRepository) Append(ctx context.Context, tx trust.Transaction) (trust.Transaction, error) {
	appended, err := r.next.Append(ctx, tx)
	if err != nil {
		return trust.Transaction{}, err
	}

	r.cache.DeletePrefix(ctx, "trust:history:"+appended.PlayerID+":")
	r.cache.DeletePrefix(ctx, "trust:board:")
	r.cache.Delete(ctx, "player:id:"+appended.PlayerID)
	return appended, nil
}

func (r *TrustRepository) ListByPlayer(ctx context.Context, playerID string, limit, offset int) ([]trust.Transaction, int, error) {
	key := "trust:history:" + playerID + ":" + strconv.Itoa(limit) + ":" + strconv.Itoa(offset)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, total, err := r.next.ListByPlayer(ctx, playerID, limit, offset)
		if err != nil {
			return nil, err
		}
		return cachedTrustHistory{items: append([]trust.Transaction(nil), items...), total: total}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	cached, _ := v.(cachedTrustHistory)
	return append([]trust.Transaction(nil), cached.items...), cached.total, nil
}

func (r *TrustRepository) Leaderboard(ctx context.Context, limit, offset int) ([]trust.LeaderboardEntry, error) {
	key := "trust:board:" + strconv.Itoa(limit) + ":" + strconv.Itoa(offset)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.Leaderboard(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
		return append([]trust.LeaderboardEntry(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]trust.LeaderboardEntry)
	return append([]trust.LeaderboardEntry(nil), items...), nil
}

type cachedTrustHistory struct {
	items []trust.Transaction
	total int
}
