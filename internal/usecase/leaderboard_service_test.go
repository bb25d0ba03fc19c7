package usecase

import (
	"testing"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/player"
	"github.com/Zedster07/StreetBaller/internal/platform/cache"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
)

func TestLeaderboardService_GetSummary_AllBoards(t *testing.T) {
	env := newTestEnv(t)
	svc := NewLeaderboardService(env.players, env.ledger, cache.NewStore(time.Minute), logging.NewNop())

	summary, err := svc.GetSummary(t.Context(), 3)
	if err != nil {
		t.Fatalf("get summary: %v", err)
	}

	if len(summary.Trust) != 3 {
		t.Fatalf("trust board size: got=%d want=3", len(summary.Trust))
	}
	if summary.Trust[0].PlayerID != "user-kofi" {
		t.Fatalf("unexpected trust leader: %s", summary.Trust[0].PlayerID)
	}
	if len(summary.TopScorers) == 0 || summary.TopScorers[0].UserID != "user-rio" {
		t.Fatalf("unexpected top scorer: %+v", summary.TopScorers)
	}
	if len(summary.TopAssists) == 0 || summary.TopAssists[0].UserID != "user-kofi" {
		t.Fatalf("unexpected assist leader: %+v", summary.TopAssists)
	}
	if len(summary.MostWins) == 0 || summary.MostWins[0].UserID != "user-kofi" {
		t.Fatalf("unexpected wins leader: %+v", summary.MostWins)
	}
}

func TestLeaderboardService_GetSummary_ServesFromCacheUntilInvalidated(t *testing.T) {
	env := newTestEnv(t)
	svc := NewLeaderboardService(env.players, env.ledger, cache.NewStore(time.Minute), logging.NewNop())

	first, err := svc.GetSummary(t.Context(), 3)
	if err != nil {
		t.Fatalf("get summary: %v", err)
	}

	// A stat change is not visible while the cached board is live.
	if err := env.players.IncrementStats(t.Context(), "user-mira", player.StatDelta{GoalsScored: 50}); err != nil {
		t.Fatalf("increment stats: %v", err)
	}

	cached, err := svc.GetSummary(t.Context(), 3)
	if err != nil {
		t.Fatalf("get cached summary: %v", err)
	}
	if cached.TopScorers[0].UserID != first.TopScorers[0].UserID {
		t.Fatal("summary must be served from cache")
	}

	svc.InvalidateBoards(t.Context())

	fresh, err := svc.GetSummary(t.Context(), 3)
	if err != nil {
		t.Fatalf("get fresh summary: %v", err)
	}
	if fresh.TopScorers[0].UserID != "user-mira" {
		t.Fatalf("invalidation must rebuild the board: leader=%s", fresh.TopScorers[0].UserID)
	}
}

func TestLeaderboardService_GetTopScorers_Pages(t *testing.T) {
	env := newTestEnv(t)
	svc := NewLeaderboardService(env.players, env.ledger, cache.NewStore(time.Minute), logging.NewNop())

	page, err := svc.GetTopScorers(t.Context(), 2, 1)
	if err != nil {
		t.Fatalf("get top scorers: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page size: got=%d want=2", len(page))
	}
	if page[0].UserID != "user-kofi" {
		t.Fatalf("unexpected second-ranked scorer: %s", page[0].UserID)
	}
}
