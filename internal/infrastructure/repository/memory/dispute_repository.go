package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/dispute"
)

type DisputeRepository struct {
	mu       sync.Mutex
	disputes map[string]dispute.Dispute
	votes    map[string][]dispute.Vote
}

func NewDisputeRepository() *DisputeRepository {
	return &DisputeRepository{
		disputes: make(map[string]dispute.Dispute),
		votes:    make(map[string][]dispute.Vote),
	}
}

func (r *DisputeRepository) Create(_ context.Context, d dispute.Dispute) (dispute.Dispute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.disputes {
		if existing.MatchID == d.MatchID && existing.IsOpen() {
			return dispute.Dispute{}, dispute.ErrOpenDisputeExists
		}
	}
	r.disputes[d.ID] = d

	return d, nil
}

func (r *DisputeRepository) GetByID(_ context.Context, id string) (dispute.Dispute, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.disputes[id]

	return d, ok, nil
}

func (r *DisputeRepository) ListOpen(_ context.Context) ([]dispute.Dispute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]dispute.Dispute, 0)
	for _, d := range r.disputes {
		if d.IsOpen() {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *DisputeRepository) InsertVote(_ context.Context, v dispute.Vote) (dispute.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.votes[v.DisputeID] {
		if existing.VoterID == v.VoterID {
			return dispute.Vote{}, dispute.ErrVoteExists
		}
	}
	r.votes[v.DisputeID] = append(r.votes[v.DisputeID], v)

	return v, nil
}

func (r *DisputeRepository) ListVotes(_ context.Context, disputeID string) ([]dispute.Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	votes := r.votes[disputeID]
	out := make([]dispute.Vote, 0, len(votes))
	out = append(out, votes...)

	return out, nil
}

func (r *DisputeRepository) Resolve(_ context.Context, disputeID, winningTeamID string, resolvedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.disputes[disputeID]
	if !ok || !d.IsOpen() {
		return false, nil
	}

	d.Status = dispute.StatusResolved
	d.WinningTeamID = winningTeamID
	d.ResolvedAt = &resolvedAt
	r.disputes[disputeID] = d

	return true, nil
}
