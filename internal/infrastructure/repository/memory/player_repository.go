package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Zedster07/StreetBaller/internal/domain/player"
)

type PlayerRepository struct {
	mu       sync.RWMutex
	profiles map[string]player.Profile
}

func NewPlayerRepository(seed []player.Profile) *PlayerRepository {
	profiles := make(map[string]player.Profile, len(seed))
	for _, item := range seed {
		profiles[item.UserID] = item
	}

	return &PlayerRepository{profiles: profiles}
}

func (r *PlayerRepository) Upsert(_ context.Context, p player.Profile) (player.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.profiles[p.UserID]; ok {
		p.TrustPoints = existing.TrustPoints
		p.SkillCoins = existing.SkillCoins
		p.GamesPlayed = existing.GamesPlayed
		p.Wins = existing.Wins
		p.Losses = existing.Losses
		p.Draws = existing.Draws
		p.GoalsScored = existing.GoalsScored
		p.Assists = existing.Assists
		p.OwnGoals = existing.OwnGoals
		p.Cards = existing.Cards
	}
	r.profiles[p.UserID] = p

	return p, nil
}

func (r *PlayerRepository) GetByUserID(_ context.Context, userID string) (player.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]

	return p, ok, nil
}

func (r *PlayerRepository) IncrementStats(_ context.Context, userID string, delta player.StatDelta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		p = player.Profile{UserID: userID}
	}

	p.GoalsScored += delta.GoalsScored
	p.Assists += delta.Assists
	p.OwnGoals += delta.OwnGoals
	p.Cards += delta.Cards
	r.profiles[userID] = p

	return nil
}

func (r *PlayerRepository) TopByGoals(_ context.Context, limit, offset int) ([]player.Profile, error) {
	return r.top(limit, offset, func(a, b player.Profile) bool {
		return a.GoalsScored > b.GoalsScored
	}), nil
}

func (r *PlayerRepository) TopByAssists(_ context.Context, limit, offset int) ([]player.Profile, error) {
	return r.top(limit, offset, func(a, b player.Profile) bool {
		return a.Assists > b.Assists
	}), nil
}

func (r *PlayerRepository) TopByWins(_ context.Context, limit, offset int) ([]player.Profile, error) {
	return r.top(limit, offset, func(a, b player.Profile) bool {
		return a.Wins > b.Wins
	}), nil
}

// setTrustPoints keeps the denormalized ledger balance in step with trust
// appends. Callers hold no lock; the repository guards itself.
func (r *PlayerRepository) setTrustPoints(userID string, balance int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[userID]
	if !ok {
		p = player.Profile{UserID: userID}
	}
	p.TrustPoints = balance
	r.profiles[userID] = p
}

func (r *PlayerRepository) trustPoints(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.profiles[userID].TrustPoints
}

func (r *PlayerRepository) snapshot() []player.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}

	return out
}

func (r *PlayerRepository) top(limit, offset int, less func(a, b player.Profile) bool) []player.Profile {
	profiles := r.snapshot()
	sort.Slice(profiles, func(i, j int) bool {
		return less(profiles[i], profiles[j])
	})

	return page(profiles, limit, offset)
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	out := make([]T, len(items))
	copy(out, items)

	return out
}
