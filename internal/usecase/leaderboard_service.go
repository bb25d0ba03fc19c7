package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/Zedster07/StreetBaller/internal/domain/player"
	"github.com/Zedster07/StreetBaller/internal/domain/trust"
	"github.com/Zedster07/StreetBaller/internal/platform/cache"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
)

// LeaderboardService serves read-side rankings. Summary boards are built by
// fanning the category queries out on a worker pool and are cached briefly
// to absorb hot reads.
type LeaderboardService struct {
	playerRepo player.Repository
	trustRepo  trust.Repository
	store      *cache.Store
	logger     *logging.Logger
}

func NewLeaderboardService(
	playerRepo player.Repository,
	trustRepo trust.Repository,
	store *cache.Store,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeaderboardService{
		playerRepo: playerRepo,
		trustRepo:  trustRepo,
		store:      store,
		logger:     logger,
	}
}

// Summary carries every category board in one payload.
type Summary struct {
	Trust      []trust.LeaderboardEntry
	TopScorers []player.Profile
	TopAssists []player.Profile
	MostWins   []player.Profile
}

func (s *LeaderboardService) GetSummary(ctx context.Context, limit int) (Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetSummary")
	defer span.End()

	limit = normalizeLimit(limit, 10)
	key := fmt.Sprintf("leaderboard:summary:%d", limit)

	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.buildSummary(ctx, limit)
	})
	if err != nil {
		return Summary{}, err
	}

	summary, ok := value.(Summary)
	if !ok {
		return Summary{}, fmt.Errorf("unexpected cached leaderboard payload %T", value)
	}

	return summary, nil
}

func (s *LeaderboardService) buildSummary(ctx context.Context, limit int) (Summary, error) {
	pool, err := ants.NewPool(4)
	if err != nil {
		return Summary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		summary  Summary
		mu       sync.Mutex
		firstErr error
		workers  sync.WaitGroup
	)

	run := func(name string, load func(context.Context) error) {
		workers.Add(1)
		if submitErr := pool.Submit(func() {
			defer workers.Done()

			if loadErr := load(ctx); loadErr != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("load %s board: %w", name, loadErr)
				}
				mu.Unlock()
			}
		}); submitErr != nil {
			workers.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = fmt.Errorf("submit %s board: %w", name, submitErr)
			}
			mu.Unlock()
		}
	}

	run("trust", func(ctx context.Context) error {
		entries, loadErr := s.trustRepo.Leaderboard(ctx, limit, 0)
		if loadErr != nil {
			return loadErr
		}
		mu.Lock()
		summary.Trust = entries
		mu.Unlock()
		return nil
	})
	run("goals", func(ctx context.Context) error {
		profiles, loadErr := s.playerRepo.TopByGoals(ctx, limit, 0)
		if loadErr != nil {
			return loadErr
		}
		mu.Lock()
		summary.TopScorers = profiles
		mu.Unlock()
		return nil
	})
	run("assists", func(ctx context.Context) error {
		profiles, loadErr := s.playerRepo.TopByAssists(ctx, limit, 0)
		if loadErr != nil {
			return loadErr
		}
		mu.Lock()
		summary.TopAssists = profiles
		mu.Unlock()
		return nil
	})
	run("wins", func(ctx context.Context) error {
		profiles, loadErr := s.playerRepo.TopByWins(ctx, limit, 0)
		if loadErr != nil {
			return loadErr
		}
		mu.Lock()
		summary.MostWins = profiles
		mu.Unlock()
		return nil
	})

	workers.Wait()
	if firstErr != nil {
		return Summary{}, firstErr
	}

	return summary, nil
}

func (s *LeaderboardService) GetTopScorers(ctx context.Context, limit, offset int) ([]player.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetTopScorers")
	defer span.End()

	profiles, err := s.playerRepo.TopByGoals(ctx, normalizeLimit(limit, 50), offset)
	if err != nil {
		return nil, fmt.Errorf("load top scorers: %w", err)
	}

	return profiles, nil
}

func (s *LeaderboardService) GetTopAssists(ctx context.Context, limit, offset int) ([]player.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetTopAssists")
	defer span.End()

	profiles, err := s.playerRepo.TopByAssists(ctx, normalizeLimit(limit, 50), offset)
	if err != nil {
		return nil, fmt.Errorf("load top assists: %w", err)
	}

	return profiles, nil
}

// InvalidateBoards drops cached summaries after a result lands.
func (s *LeaderboardService) InvalidateBoards(ctx context.Context) {
	s.store.DeletePrefix(ctx, "leaderboard:")
}
