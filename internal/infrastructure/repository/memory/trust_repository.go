package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/Zedster07/StreetBaller/internal/domain/trust"
)

// TrustRepository keeps the append-only ledger and writes the clamped
// balance back onto the player profile, mirroring the transactional
// behaviour of the SQL implementation.
type TrustRepository struct {
	mu           sync.Mutex
	transactions map[string][]trust.Transaction
	players      *PlayerRepository
}

func NewTrustRepository(players *PlayerRepository) *TrustRepository {
	return &TrustRepository{
		transactions: make(map[string][]trust.Transaction),
		players:      players,
	}
}

func (r *TrustRepository) Append(_ context.Context, tx trust.Transaction) (trust.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	balance := r.players.trustPoints(tx.PlayerID) + tx.Points
	if balance < 0 {
		balance = 0
	}
	tx.Balance = balance

	r.transactions[tx.PlayerID] = append(r.transactions[tx.PlayerID], tx)
	r.players.setTrustPoints(tx.PlayerID, balance)

	return tx, nil
}

func (r *TrustRepository) ListByPlayer(_ context.Context, playerID string, limit, offset int) ([]trust.Transaction, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.transactions[playerID]
	total := len(all)

	// Newest first.
	ordered := make([]trust.Transaction, total)
	for i, tx := range all {
		ordered[total-1-i] = tx
	}

	return page(ordered, limit, offset), total, nil
}

func (r *TrustRepository) Leaderboard(_ context.Context, limit, offset int) ([]trust.LeaderboardEntry, error) {
	profiles := r.players.snapshot()
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].TrustPoints != profiles[j].TrustPoints {
			return profiles[i].TrustPoints > profiles[j].TrustPoints
		}
		return profiles[i].UserID < profiles[j].UserID
	})

	entries := make([]trust.LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, trust.LeaderboardEntry{
			PlayerID:    p.UserID,
			DisplayName: p.DisplayName,
			TrustPoints: p.TrustPoints,
			GamesPlayed: p.GamesPlayed,
			Wins:        p.Wins,
			Goals:       p.GoalsScored,
			Assists:     p.Assists,
		})
	}

	return page(entries, limit, offset), nil
}
