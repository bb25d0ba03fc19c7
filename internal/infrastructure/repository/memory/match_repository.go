package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/match"
)

type MatchRepository struct {
	mu           sync.RWMutex
	matches      map[string]match.Match
	participants map[string][]match.Participation
}

func NewMatchRepository(seed []match.Match) *MatchRepository {
	matches := make(map[string]match.Match, len(seed))
	for _, item := range seed {
		matches[item.ID] = item
	}

	return &MatchRepository{
		matches:      matches,
		participants: make(map[string][]match.Participation),
	}
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matches[m.ID]; exists {
		return match.Match{}, fmt.Errorf("match %s already exists", m.ID)
	}
	r.matches[m.ID] = m

	return m, nil
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[id]

	return m, ok, nil
}

func (r *MatchRepository) ListByTeam(_ context.Context, teamID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.matches {
		if m.Team1ID == teamID || m.Team2ID == teamID {
			out = append(out, m)
		}
	}
	sortMatchesByDate(out)

	return out, nil
}

func (r *MatchRepository) ListUpcoming(_ context.Context, from time.Time) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.matches {
		if m.Status == match.StatusScheduled && !m.MatchDate.Before(from) {
			out = append(out, m)
		}
	}
	sortMatchesByDate(out)

	return out, nil
}

func (r *MatchRepository) RecordScore(_ context.Context, matchID string, update match.ScoreUpdate) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, fmt.Errorf("match %s not found", matchID)
	}

	team1 := update.Team1Score
	team2 := update.Team2Score
	m.Team1Score = &team1
	m.Team2Score = &team2
	m.Team1CaptainApproved = false
	m.Team2CaptainApproved = false
	m.ScoreInvalidatedAt = nil
	m.Status = match.StatusPendingConfirmation
	m.UpdatedAt = time.Now().UTC()
	r.matches[matchID] = m

	return m, nil
}

func (r *MatchRepository) Approve(_ context.Context, matchID, teamID string, completedAt time.Time) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, fmt.Errorf("match %s not found", matchID)
	}

	switch teamID {
	case m.Team1ID:
		m.Team1CaptainApproved = true
	case m.Team2ID:
		m.Team2CaptainApproved = true
	default:
		return match.Match{}, fmt.Errorf("team %s is not part of match %s", teamID, matchID)
	}

	if m.Team1CaptainApproved && m.Team2CaptainApproved {
		m.Status = match.StatusCompleted
		m.CompletedAt = &completedAt
	}
	m.UpdatedAt = time.Now().UTC()
	r.matches[matchID] = m

	return m, nil
}

func (r *MatchRepository) SetStatus(_ context.Context, matchID, status string) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, fmt.Errorf("match %s not found", matchID)
	}

	m.Status = status
	m.UpdatedAt = time.Now().UTC()
	r.matches[matchID] = m

	return m, nil
}

func (r *MatchRepository) CompleteFromDispute(_ context.Context, matchID string, completedAt time.Time) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, fmt.Errorf("match %s not found", matchID)
	}

	m.Status = match.StatusCompleted
	m.CompletedAt = &completedAt
	m.Team1CaptainApproved = true
	m.Team2CaptainApproved = true
	m.UpdatedAt = time.Now().UTC()
	r.matches[matchID] = m

	return m, nil
}

func (r *MatchRepository) InvalidateScore(_ context.Context, matchID string, invalidatedAt time.Time) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, fmt.Errorf("match %s not found", matchID)
	}

	m.Status = match.StatusPendingConfirmation
	m.ScoreInvalidatedAt = &invalidatedAt
	m.Team1CaptainApproved = false
	m.Team2CaptainApproved = false
	m.UpdatedAt = time.Now().UTC()
	r.matches[matchID] = m

	return m, nil
}

func (r *MatchRepository) AddParticipants(_ context.Context, participants []match.Participation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range participants {
		existing := r.participants[p.MatchID]
		duplicate := false
		for _, item := range existing {
			if item.PlayerID == p.PlayerID {
				duplicate = true
				break
			}
		}
		if !duplicate {
			r.participants[p.MatchID] = append(existing, p)
		}
	}

	return nil
}

func (r *MatchRepository) ListParticipants(_ context.Context, matchID string) ([]match.Participation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	existing := r.participants[matchID]
	out := make([]match.Participation, 0, len(existing))
	out = append(out, existing...)

	return out, nil
}

func sortMatchesByDate(matches []match.Match) {
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].MatchDate.Before(matches[j].MatchDate)
	})
}
