package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Zedster07/StreetBaller/internal/domain/matchevent"
)

type MatchEventRepository struct {
	mu      sync.RWMutex
	byMatch map[string][]matchevent.Event
}

func NewMatchEventRepository() *MatchEventRepository {
	return &MatchEventRepository{byMatch: make(map[string][]matchevent.Event)}
}

func (r *MatchEventRepository) Insert(_ context.Context, event matchevent.Event) (matchevent.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byMatch[event.MatchID] = append(r.byMatch[event.MatchID], event)

	return event, nil
}

func (r *MatchEventRepository) ListByMatch(_ context.Context, matchID string, limit, offset int) ([]matchevent.Event, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.byMatch[matchID]

	return page(events, limit, offset), len(events), nil
}

func (r *MatchEventRepository) ListByPlayer(_ context.Context, playerID string, limit, offset int) ([]matchevent.Event, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchevent.Event, 0)
	for _, events := range r.byMatch {
		for _, event := range events {
			if event.ScorerID == playerID || event.AssisterID == playerID {
				out = append(out, event)
			}
		}
	}

	// Map iteration order is random; pages must be stable across calls.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return page(out, limit, offset), len(out), nil
}

func (r *MatchEventRepository) ListByMatchAndPlayer(_ context.Context, matchID, playerID string) ([]matchevent.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchevent.Event, 0)
	for _, event := range r.byMatch[matchID] {
		if event.ScorerID == playerID || event.AssisterID == playerID {
			out = append(out, event)
		}
	}

	return out, nil
}
