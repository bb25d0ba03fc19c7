package usecase

import (
	"errors"
	"testing"

	"github.com/Zedster07/StreetBaller/internal/domain/trust"
)

func TestTrustService_RecordTransaction_ClampsBalanceAtZero(t *testing.T) {
	env := newTestEnv(t)

	// Mira starts at 110 points; a large penalty floors at zero rather than
	// going negative.
	first, err := env.trustSvc.RecordTransaction(t.Context(), RecordTransactionInput{
		PlayerID: "user-mira",
		Points:   -500,
		Reason:   "Repeated no-show",
	})
	if err != nil {
		t.Fatalf("record transaction: %v", err)
	}
	if first.Balance != 0 {
		t.Fatalf("balance must clamp at zero: got=%d", first.Balance)
	}
	if first.Type != trust.TypePenalty {
		t.Fatalf("unexpected type: got=%s want=%s", first.Type, trust.TypePenalty)
	}

	second, err := env.trustSvc.RecordTransaction(t.Context(), RecordTransactionInput{
		PlayerID: "user-mira",
		Points:   trust.PointsShowUp,
		Reason:   "Showed up on time",
	})
	if err != nil {
		t.Fatalf("record transaction: %v", err)
	}
	if second.Balance != trust.PointsShowUp {
		t.Fatalf("award after clamp: got=%d want=%d", second.Balance, trust.PointsShowUp)
	}

	profile, _, err := env.players.GetByUserID(t.Context(), "user-mira")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.TrustPoints != trust.PointsShowUp {
		t.Fatalf("profile balance out of step: got=%d want=%d", profile.TrustPoints, trust.PointsShowUp)
	}
}

func TestTrustService_RecordTransaction_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.trustSvc.RecordTransaction(t.Context(), RecordTransactionInput{
		PlayerID: "user-rio",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing reason, got %v", err)
	}

	_, err = env.trustSvc.RecordTransaction(t.Context(), RecordTransactionInput{
		PlayerID: "user-stranger",
		Points:   5,
		Reason:   "test",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}
}

func TestTrustService_GetTransactionHistory_NewestFirstWithTotal(t *testing.T) {
	env := newTestEnv(t)

	reasons := []string{"first", "second", "third"}
	for _, reason := range reasons {
		if _, err := env.trustSvc.RecordTransaction(t.Context(), RecordTransactionInput{
			PlayerID: "user-rio",
			Points:   trust.PointsMatchPlayed,
			Reason:   reason,
		}); err != nil {
			t.Fatalf("record transaction: %v", err)
		}
	}

	history, err := env.trustSvc.GetTransactionHistory(t.Context(), "user-rio", 2, 0)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if history.Total != 3 {
		t.Fatalf("unexpected total: got=%d want=3", history.Total)
	}
	if len(history.Transactions) != 2 {
		t.Fatalf("unexpected page size: got=%d want=2", len(history.Transactions))
	}
	if history.Transactions[0].Reason != "third" {
		t.Fatalf("history must be newest first: got=%s", history.Transactions[0].Reason)
	}
	if history.Balance != 140+3*trust.PointsMatchPlayed {
		t.Fatalf("unexpected balance: got=%d", history.Balance)
	}
}

func TestTrustService_GetTrustLeaderboard_RanksByPoints(t *testing.T) {
	env := newTestEnv(t)

	rows, err := env.trustSvc.GetTrustLeaderboard(t.Context(), 3, 0)
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("unexpected row count: got=%d want=3", len(rows))
	}
	if rows[0].PlayerID != "user-kofi" || rows[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[1].TrustPoints > rows[0].TrustPoints {
		t.Fatal("leaderboard must be ordered by trust points")
	}
	if rows[0].Reliability == "N/A" {
		t.Fatalf("expected a win rate for an active player, got %s", rows[0].Reliability)
	}
}
