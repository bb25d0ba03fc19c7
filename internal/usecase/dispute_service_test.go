package usecase

import (
	"errors"
	"testing"

	"github.com/Zedster07/StreetBaller/internal/domain/dispute"
	"github.com/Zedster07/StreetBaller/internal/domain/match"
	"github.com/Zedster07/StreetBaller/internal/infrastructure/repository/memory"
)

// openDisputedMatch submits a score and has the away captain reject it,
// returning the match and the opened dispute.
func openDisputedMatch(t *testing.T, env *testEnv) (match.Match, DisputeView) {
	t.Helper()

	created := env.createScheduledMatch(t)
	if _, err := env.matchSvc.SubmitScore(t.Context(), SubmitScoreInput{MatchID: created.ID, Team1Score: 4, Team2Score: 1}); err != nil {
		t.Fatalf("submit score: %v", err)
	}

	result, err := env.matchSvc.ApproveOrDispute(t.Context(), DecisionInput{
		MatchID: created.ID,
		TeamID:  memory.TeamIDAsphaltUnited,
		Reason:  "Final score was 2-1",
	})
	if err != nil {
		t.Fatalf("open dispute: %v", err)
	}
	if !result.Disputed {
		t.Fatal("expected a dispute")
	}

	return created, result.Dispute
}

func TestDisputeService_OpenDispute_OnlyOnePerMatch(t *testing.T) {
	env := newTestEnv(t)
	created, _ := openDisputedMatch(t, env)

	_, err := env.disputeSvc.OpenDispute(t.Context(), OpenDisputeInput{
		MatchID:         created.ID,
		DisputingTeamID: memory.TeamIDConcreteKings,
		Reason:          "second thoughts",
	})
	if !errors.Is(err, ErrDisputeAlreadyOpen) {
		t.Fatalf("expected ErrDisputeAlreadyOpen, got %v", err)
	}
}

func TestDisputeService_CastVote_EligibilityAndDuplicates(t *testing.T) {
	env := newTestEnv(t)
	created, view := openDisputedMatch(t, env)

	_, err := env.disputeSvc.CastVote(t.Context(), CastVoteInput{
		DisputeID:     view.Dispute.ID,
		PlayerID:      "user-stranger",
		VoteForTeamID: created.Team1ID,
	})
	if !errors.Is(err, ErrPlayerNotEligible) {
		t.Fatalf("expected ErrPlayerNotEligible, got %v", err)
	}

	_, err = env.disputeSvc.CastVote(t.Context(), CastVoteInput{
		DisputeID:     view.Dispute.ID,
		PlayerID:      "user-rio",
		VoteForTeamID: "team-ghosts",
	})
	if !errors.Is(err, ErrTeamNotInMatch) {
		t.Fatalf("expected ErrTeamNotInMatch, got %v", err)
	}

	if _, err := env.disputeSvc.CastVote(t.Context(), CastVoteInput{
		DisputeID:     view.Dispute.ID,
		PlayerID:      "user-rio",
		VoteForTeamID: created.Team1ID,
	}); err != nil {
		t.Fatalf("first vote: %v", err)
	}

	_, err = env.disputeSvc.CastVote(t.Context(), CastVoteInput{
		DisputeID:     view.Dispute.ID,
		PlayerID:      "user-rio",
		VoteForTeamID: created.Team2ID,
	})
	if !errors.Is(err, ErrDuplicateVote) {
		t.Fatalf("expected ErrDuplicateVote, got %v", err)
	}
}

func TestDisputeService_ResolvesForDisputingTeam_InvalidatesScore(t *testing.T) {
	env := newTestEnv(t)
	created, view := openDisputedMatch(t, env)

	kofiBefore, _, err := env.players.GetByUserID(t.Context(), "user-kofi")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}

	// Quorum for 4 participants is 2. One vote keeps the dispute open.
	if _, err := env.disputeSvc.CastVote(t.Context(), CastVoteInput{
		DisputeID:     view.Dispute.ID,
		PlayerID:      "user-kofi",
		VoteForTeamID: created.Team2ID,
	}); err != nil {
		t.Fatalf("first vote: %v", err)
	}

	open, err := env.disputeSvc.GetDispute(t.Context(), view.Dispute.ID)
	if err != nil {
		t.Fatalf("get dispute: %v", err)
	}
	if !open.Dispute.IsOpen() {
		t.Fatal("dispute resolved below quorum")
	}

	if _, err := env.disputeSvc.CastVote(t.Context(), CastVoteInput{
		DisputeID:     view.Dispute.ID,
		PlayerID:      "user-mira",
		VoteForTeamID: created.Team2ID,
	}); err != nil {
		t.Fatalf("second vote: %v", err)
	}

	resolved, err := env.disputeSvc.GetDispute(t.Context(), view.Dispute.ID)
	if err != nil {
		t.Fatalf("get dispute: %v", err)
	}
	if resolved.Dispute.Status != dispute.StatusResolved {
		t.Fatalf("dispute not resolved at quorum: %s", resolved.Dispute.Status)
	}
	if resolved.Dispute.WinningTeamID != memory.TeamIDAsphaltUnited {
		t.Fatalf("unexpected winner: %s", resolved.Dispute.WinningTeamID)
	}

	// The contested score is thrown out and the match waits for a fresh
	// submission.
	invalidated, err := env.matchSvc.GetMatch(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if invalidated.Status != match.StatusPendingConfirmation {
		t.Fatalf("unexpected status: %s", invalidated.Status)
	}
	if invalidated.ScoreInvalidatedAt == nil {
		t.Fatal("score must be marked invalidated")
	}

	// Approving the invalidated score is refused until a new submission.
	_, err = env.matchSvc.ApproveOrDispute(t.Context(), DecisionInput{
		MatchID:  created.ID,
		TeamID:   memory.TeamIDConcreteKings,
		Approved: true,
	})
	if !errors.Is(err, ErrNoPendingScore) {
		t.Fatalf("expected ErrNoPendingScore after invalidation, got %v", err)
	}

	// Winning side members each gain the dispute award.
	kofiAfter, _, err := env.players.GetByUserID(t.Context(), "user-kofi")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if kofiAfter.TrustPoints != kofiBefore.TrustPoints+5 {
		t.Fatalf("winner trust points: got=%d want=%d", kofiAfter.TrustPoints, kofiBefore.TrustPoints+5)
	}

	// A fresh submission reopens the approval cycle.
	resubmitted, err := env.matchSvc.SubmitScore(t.Context(), SubmitScoreInput{MatchID: created.ID, Team1Score: 2, Team2Score: 1})
	if err != nil {
		t.Fatalf("resubmit score: %v", err)
	}
	if resubmitted.ScoreInvalidatedAt != nil {
		t.Fatal("fresh submission must clear the invalidation marker")
	}
}

func TestDisputeService_TieFavoursDefendingTeam(t *testing.T) {
	env := newTestEnv(t)
	created, view := openDisputedMatch(t, env)

	rioBefore, _, err := env.players.GetByUserID(t.Context(), "user-rio")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	kofiBefore, _, err := env.players.GetByUserID(t.Context(), "user-kofi")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}

	// One vote per side. Quorum of 2 is met with a tie, which goes to the
	// defending team.
	if _, err := env.disputeSvc.CastVote(t.Context(), CastVoteInput{
		DisputeID:     view.Dispute.ID,
		PlayerID:      "user-rio",
		VoteForTeamID: created.Team1ID,
	}); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if _, err := env.disputeSvc.CastVote(t.Context(), CastVoteInput{
		DisputeID:     view.Dispute.ID,
		PlayerID:      "user-kofi",
		VoteForTeamID: created.Team2ID,
	}); err != nil {
		t.Fatalf("second vote: %v", err)
	}

	resolved, err := env.disputeSvc.GetDispute(t.Context(), view.Dispute.ID)
	if err != nil {
		t.Fatalf("get dispute: %v", err)
	}
	if resolved.Dispute.WinningTeamID != memory.TeamIDConcreteKings {
		t.Fatalf("tie must favour the defending team, winner=%s", resolved.Dispute.WinningTeamID)
	}

	completed, err := env.matchSvc.GetMatch(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if completed.Status != match.StatusCompleted {
		t.Fatalf("submitted score must stand: status=%s", completed.Status)
	}

	// Defenders gain the award; the disputing side pays the false-claim
	// penalty.
	rioAfter, _, err := env.players.GetByUserID(t.Context(), "user-rio")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if rioAfter.TrustPoints != rioBefore.TrustPoints+5 {
		t.Fatalf("defender trust points: got=%d want=%d", rioAfter.TrustPoints, rioBefore.TrustPoints+5)
	}
	kofiAfter, _, err := env.players.GetByUserID(t.Context(), "user-kofi")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if kofiAfter.TrustPoints != kofiBefore.TrustPoints-3 {
		t.Fatalf("disputing trust points: got=%d want=%d", kofiAfter.TrustPoints, kofiBefore.TrustPoints-3)
	}

	// No further votes once resolved.
	_, err = env.disputeSvc.CastVote(t.Context(), CastVoteInput{
		DisputeID:     view.Dispute.ID,
		PlayerID:      "user-dani",
		VoteForTeamID: created.Team1ID,
	})
	if !errors.Is(err, ErrDisputeResolved) {
		t.Fatalf("expected ErrDisputeResolved, got %v", err)
	}
}

func TestQuorum(t *testing.T) {
	cases := []struct {
		participants int
		want         int
	}{
		{participants: 1, want: 1},
		{participants: 2, want: 1},
		{participants: 4, want: 2},
		{participants: 9, want: 5},
		{participants: 10, want: 5},
		{participants: 22, want: 11},
	}
	for _, tc := range cases {
		if got := quorum(tc.participants); got != tc.want {
			t.Fatalf("quorum(%d): got=%d want=%d", tc.participants, got, tc.want)
		}
	}
}
