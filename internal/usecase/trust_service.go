package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/player"
	"github.com/Zedster07/StreetBaller/internal/domain/trust"
	"github.com/Zedster07/StreetBaller/internal/platform/id"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
)

// TrustService keeps the append-only reputation ledger. Entries are never
// edited or removed; a player's balance is the floor-clamped running sum.
type TrustService struct {
	trustRepo  trust.Repository
	playerRepo player.Repository
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewTrustService(
	trustRepo trust.Repository,
	playerRepo player.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *TrustService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TrustService{
		trustRepo:  trustRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

type RecordTransactionInput struct {
	PlayerID  string
	Points    int
	Reason    string
	MatchID   string
	DisputeID string
}

// RecordTransaction appends one immutable ledger entry and updates the
// player's balance to max(0, previous + points) in the same write.
func (s *TrustService) RecordTransaction(ctx context.Context, input RecordTransactionInput) (trust.Transaction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrustService.RecordTransaction")
	defer span.End()

	if strings.TrimSpace(input.PlayerID) == "" {
		return trust.Transaction{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Reason) == "" {
		return trust.Transaction{}, fmt.Errorf("%w: transaction reason is required", ErrInvalidInput)
	}

	_, exists, err := s.playerRepo.GetByUserID(ctx, input.PlayerID)
	if err != nil {
		return trust.Transaction{}, fmt.Errorf("get player profile: %w", err)
	}
	if !exists {
		return trust.Transaction{}, fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
	}

	txID, err := s.idGen.NewID()
	if err != nil {
		return trust.Transaction{}, fmt.Errorf("generate transaction id: %w", err)
	}

	appended, err := s.trustRepo.Append(ctx, trust.Transaction{
		ID:               txID,
		PlayerID:         input.PlayerID,
		Type:             trust.TypeForPoints(input.Points),
		Points:           input.Points,
		Reason:           strings.TrimSpace(input.Reason),
		RelatedMatchID:   input.MatchID,
		RelatedDisputeID: input.DisputeID,
		CreatedAt:        s.now().UTC(),
	})
	if err != nil {
		return trust.Transaction{}, fmt.Errorf("append trust transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "trust transaction recorded",
		"player_id", appended.PlayerID,
		"type", appended.Type,
		"points", appended.Points,
		"balance", appended.Balance,
		"reason", appended.Reason,
	)

	return appended, nil
}

// TransactionHistory is a paged slice of a player's ledger with the current
// clamped balance.
type TransactionHistory struct {
	PlayerID     string
	DisplayName  string
	Balance      int
	Total        int
	Transactions []trust.Transaction
}

func (s *TrustService) GetTransactionHistory(ctx context.Context, playerID string, limit, offset int) (TransactionHistory, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrustService.GetTransactionHistory")
	defer span.End()

	profile, err := s.requireProfile(ctx, playerID)
	if err != nil {
		return TransactionHistory{}, err
	}

	limit = normalizeLimit(limit, 50)
	transactions, total, err := s.trustRepo.ListByPlayer(ctx, playerID, limit, offset)
	if err != nil {
		return TransactionHistory{}, fmt.Errorf("list trust transactions: %w", err)
	}

	return TransactionHistory{
		PlayerID:     playerID,
		DisplayName:  profile.DisplayName,
		Balance:      profile.TrustPoints,
		Total:        total,
		Transactions: transactions,
	}, nil
}

// TrustSummary breaks a player's standing down by earning source.
type TrustSummary struct {
	PlayerID       string
	DisplayName    string
	Balance        int
	GamesPlayed    int
	Wins           int
	Losses         int
	Draws          int
	GoalsScored    int
	Assists        int
	EarningSources map[string]int
}

func (s *TrustService) GetTrustSummary(ctx context.Context, playerID string) (TrustSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrustService.GetTrustSummary")
	defer span.End()

	profile, err := s.requireProfile(ctx, playerID)
	if err != nil {
		return TrustSummary{}, err
	}

	return TrustSummary{
		PlayerID:    playerID,
		DisplayName: profile.DisplayName,
		Balance:     profile.TrustPoints,
		GamesPlayed: profile.GamesPlayed,
		Wins:        profile.Wins,
		Losses:      profile.Losses,
		Draws:       profile.Draws,
		GoalsScored: profile.GoalsScored,
		Assists:     profile.Assists,
		EarningSources: map[string]int{
			"matchPlayed":  profile.GamesPlayed * (trust.PointsMatchPlayed + trust.PointsShowUp),
			"matchWins":    profile.Wins * trust.PointsMatchWon,
			"goals":        profile.GoalsScored * trust.PointsGoal,
			"assists":      profile.Assists * trust.PointsAssist,
			"profileSetup": trust.PointsProfileCreated,
		},
	}, nil
}

// TrustLeaderboardRow is one ranked leaderboard line with a formatted
// reliability rate.
type TrustLeaderboardRow struct {
	Rank        int
	PlayerID    string
	DisplayName string
	TrustPoints int
	GamesPlayed int
	Wins        int
	Reliability string
}

func (s *TrustService) GetTrustLeaderboard(ctx context.Context, limit, offset int) ([]TrustLeaderboardRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TrustService.GetTrustLeaderboard")
	defer span.End()

	limit = normalizeLimit(limit, 50)
	entries, err := s.trustRepo.Leaderboard(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("load trust leaderboard: %w", err)
	}

	rows := make([]TrustLeaderboardRow, 0, len(entries))
	for i, entry := range entries {
		rows = append(rows, TrustLeaderboardRow{
			Rank:        offset + i + 1,
			PlayerID:    entry.PlayerID,
			DisplayName: entry.DisplayName,
			TrustPoints: entry.TrustPoints,
			GamesPlayed: entry.GamesPlayed,
			Wins:        entry.Wins,
			Reliability: formatRate(entry.Wins, entry.GamesPlayed),
		})
	}

	return rows, nil
}

func (s *TrustService) requireProfile(ctx context.Context, playerID string) (player.Profile, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Profile{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	profile, exists, err := s.playerRepo.GetByUserID(ctx, playerID)
	if err != nil {
		return player.Profile{}, fmt.Errorf("get player profile: %w", err)
	}
	if !exists {
		return player.Profile{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return profile, nil
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 || limit > 200 {
		return fallback
	}
	return limit
}

func formatRate(part, total int) string {
	if total <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", float64(part)/float64(total)*100)
}
