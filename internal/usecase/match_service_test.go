package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/match"
	"github.com/Zedster07/StreetBaller/internal/domain/team"
	"github.com/Zedster07/StreetBaller/internal/infrastructure/repository/memory"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
)

type seqIDGenerator struct {
	prefix string
	n      int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n), nil
}

type testEnv struct {
	users    *memory.UserRepository
	players  *memory.PlayerRepository
	teams    *memory.TeamRepository
	matches  *memory.MatchRepository
	events   *memory.MatchEventRepository
	disputes *memory.DisputeRepository
	ledger   *memory.TrustRepository

	trustSvc   *TrustService
	disputeSvc *DisputeService
	matchSvc   *MatchService
}

// newTestEnv wires the services against the in-memory stores with two
// two-player teams and a clock frozen at a known instant.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:    memory.NewUserRepository(memory.SeedUsers()),
		players:  memory.NewPlayerRepository(memory.SeedPlayers()),
		teams:    memory.NewTeamRepository(memory.SeedTeams()),
		matches:  memory.NewMatchRepository(nil),
		events:   memory.NewMatchEventRepository(),
		disputes: memory.NewDisputeRepository(),
	}
	env.ledger = memory.NewTrustRepository(env.players)

	joined := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	memberships := []team.Membership{
		{TeamID: memory.TeamIDConcreteKings, UserID: "user-rio", Role: team.RoleCaptain, JoinedAt: joined},
		{TeamID: memory.TeamIDConcreteKings, UserID: "user-dani", Role: team.RolePlayer, JoinedAt: joined},
		{TeamID: memory.TeamIDAsphaltUnited, UserID: "user-kofi", Role: team.RoleCaptain, JoinedAt: joined},
		{TeamID: memory.TeamIDAsphaltUnited, UserID: "user-mira", Role: team.RolePlayer, JoinedAt: joined},
	}
	for _, m := range memberships {
		if err := env.teams.AddMember(t.Context(), m); err != nil {
			t.Fatalf("seed membership: %v", err)
		}
	}

	logger := logging.NewNop()
	frozen := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

	env.trustSvc = NewTrustService(env.ledger, env.players, &seqIDGenerator{prefix: "trust"}, logger)
	env.trustSvc.now = func() time.Time { return frozen }

	env.disputeSvc = NewDisputeService(env.disputes, env.matches, env.teams, env.trustSvc, &seqIDGenerator{prefix: "dispute"}, logger)
	env.disputeSvc.now = func() time.Time { return frozen }

	env.matchSvc = NewMatchService(env.matches, env.events, env.players, env.teams, env.disputeSvc, &seqIDGenerator{prefix: "match"}, logger)
	env.matchSvc.now = func() time.Time { return frozen }

	return env
}

// createScheduledMatch sets up a scheduled match with all four seed players
// registered as participants.
func (env *testEnv) createScheduledMatch(t *testing.T) match.Match {
	t.Helper()

	created, err := env.matchSvc.CreateMatch(t.Context(), CreateMatchInput{
		Team1ID:     memory.TeamIDConcreteKings,
		Team2ID:     memory.TeamIDAsphaltUnited,
		PitchID:     "pitch-docks",
		MatchDate:   time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC),
		Format:      match.Format5v5,
		CreatedByID: "user-rio",
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	participants := []match.Participation{
		{MatchID: created.ID, PlayerID: "user-rio", TeamID: memory.TeamIDConcreteKings},
		{MatchID: created.ID, PlayerID: "user-dani", TeamID: memory.TeamIDConcreteKings},
		{MatchID: created.ID, PlayerID: "user-kofi", TeamID: memory.TeamIDAsphaltUnited},
		{MatchID: created.ID, PlayerID: "user-mira", TeamID: memory.TeamIDAsphaltUnited},
	}
	if err := env.matches.AddParticipants(t.Context(), participants); err != nil {
		t.Fatalf("add participants: %v", err)
	}

	return created
}

func TestMatchService_RegisterParticipants(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.matchSvc.CreateMatch(t.Context(), CreateMatchInput{
		Team1ID:     memory.TeamIDConcreteKings,
		Team2ID:     memory.TeamIDAsphaltUnited,
		MatchDate:   time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC),
		Format:      match.Format5v5,
		CreatedByID: "user-rio",
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	err = env.matchSvc.RegisterParticipants(t.Context(), RegisterParticipantsInput{
		MatchID:   created.ID,
		TeamID:    "team-unrelated",
		PlayerIDs: []string{"user-rio"},
	})
	if !errors.Is(err, ErrTeamNotInMatch) {
		t.Fatalf("expected ErrTeamNotInMatch for foreign team, got %v", err)
	}

	err = env.matchSvc.RegisterParticipants(t.Context(), RegisterParticipantsInput{
		MatchID:   created.ID,
		TeamID:    memory.TeamIDConcreteKings,
		PlayerIDs: []string{"user-ghost"},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}

	err = env.matchSvc.RegisterParticipants(t.Context(), RegisterParticipantsInput{
		MatchID:   created.ID,
		TeamID:    memory.TeamIDConcreteKings,
		PlayerIDs: []string{"user-rio", "user-dani"},
	})
	if err != nil {
		t.Fatalf("register participants: %v", err)
	}

	participants, err := env.matchSvc.ListMatchParticipants(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("list participants: %v", err)
	}
	if len(participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(participants))
	}
}

func TestMatchService_CreateMatch_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.matchSvc.CreateMatch(t.Context(), CreateMatchInput{
		Team1ID:   memory.TeamIDConcreteKings,
		Team2ID:   memory.TeamIDConcreteKings,
		Format:    match.Format5v5,
		MatchDate: time.Now(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for same team on both sides, got %v", err)
	}

	_, err = env.matchSvc.CreateMatch(t.Context(), CreateMatchInput{
		Team1ID:   memory.TeamIDConcreteKings,
		Team2ID:   memory.TeamIDAsphaltUnited,
		Format:    "4v4",
		MatchDate: time.Now(),
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown format, got %v", err)
	}

	_, err = env.matchSvc.CreateMatch(t.Context(), CreateMatchInput{
		Team1ID:   memory.TeamIDConcreteKings,
		Team2ID:   "team-ghosts",
		Format:    match.Format5v5,
		MatchDate: time.Now(),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown team, got %v", err)
	}
}

func TestMatchService_SubmitScore_MovesToPendingConfirmation(t *testing.T) {
	env := newTestEnv(t)
	created := env.createScheduledMatch(t)

	updated, err := env.matchSvc.SubmitScore(t.Context(), SubmitScoreInput{
		MatchID:    created.ID,
		Team1Score: 3,
		Team2Score: 2,
	})
	if err != nil {
		t.Fatalf("submit score: %v", err)
	}

	if updated.Status != match.StatusPendingConfirmation {
		t.Fatalf("unexpected status: got=%s want=%s", updated.Status, match.StatusPendingConfirmation)
	}
	if updated.Team1Score == nil || *updated.Team1Score != 3 {
		t.Fatalf("team1 score not recorded: %+v", updated.Team1Score)
	}
	if updated.Team1CaptainApproved || updated.Team2CaptainApproved {
		t.Fatal("approval flags must reset on submission")
	}
}

func TestMatchService_SubmitScore_RejectsNegativeAndWrongState(t *testing.T) {
	env := newTestEnv(t)
	created := env.createScheduledMatch(t)

	_, err := env.matchSvc.SubmitScore(t.Context(), SubmitScoreInput{MatchID: created.ID, Team1Score: -1})
	if !errors.Is(err, ErrInvalidScore) {
		t.Fatalf("expected ErrInvalidScore, got %v", err)
	}

	if _, err := env.matchSvc.SubmitScore(t.Context(), SubmitScoreInput{MatchID: created.ID, Team1Score: 1, Team2Score: 1}); err != nil {
		t.Fatalf("submit score: %v", err)
	}

	// Pending confirmation without invalidation does not accept another score.
	_, err = env.matchSvc.SubmitScore(t.Context(), SubmitScoreInput{MatchID: created.ID, Team1Score: 2, Team2Score: 2})
	if !errors.Is(err, ErrInvalidMatchState) {
		t.Fatalf("expected ErrInvalidMatchState, got %v", err)
	}
}

func TestMatchService_SubmitScore_RecordsEventsAndStats(t *testing.T) {
	env := newTestEnv(t)
	created := env.createScheduledMatch(t)

	before, _, err := env.players.GetByUserID(t.Context(), "user-rio")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}

	_, err = env.matchSvc.SubmitScore(t.Context(), SubmitScoreInput{
		MatchID:    created.ID,
		Team1Score: 1,
		Team2Score: 0,
		Events: []SubmitScoreEvent{
			{ScorerID: "user-rio", AssisterID: "user-dani", TeamID: memory.TeamIDConcreteKings, Minute: 12},
		},
	})
	if err != nil {
		t.Fatalf("submit score: %v", err)
	}

	events, total, err := env.events.ListByMatch(t.Context(), created.ID, 0, 0)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if total != 1 || len(events) != 1 {
		t.Fatalf("unexpected event count: got=%d want=1", total)
	}

	after, _, err := env.players.GetByUserID(t.Context(), "user-rio")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if after.GoalsScored != before.GoalsScored+1 {
		t.Fatalf("scorer goals not incremented: got=%d want=%d", after.GoalsScored, before.GoalsScored+1)
	}

	assister, _, err := env.players.GetByUserID(t.Context(), "user-dani")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if assister.Assists < 2 {
		t.Fatalf("assister assists not incremented: got=%d", assister.Assists)
	}
}

func TestMatchService_ApproveOrDispute_BilateralApproval(t *testing.T) {
	env := newTestEnv(t)
	created := env.createScheduledMatch(t)

	if _, err := env.matchSvc.SubmitScore(t.Context(), SubmitScoreInput{MatchID: created.ID, Team1Score: 2, Team2Score: 1}); err != nil {
		t.Fatalf("submit score: %v", err)
	}

	first, err := env.matchSvc.ApproveOrDispute(t.Context(), DecisionInput{
		MatchID:  created.ID,
		TeamID:   memory.TeamIDConcreteKings,
		Approved: true,
	})
	if err != nil {
		t.Fatalf("first approval: %v", err)
	}
	if first.Match.Status != match.StatusPendingConfirmation {
		t.Fatalf("match completed on single approval: status=%s", first.Match.Status)
	}

	second, err := env.matchSvc.ApproveOrDispute(t.Context(), DecisionInput{
		MatchID:  created.ID,
		TeamID:   memory.TeamIDAsphaltUnited,
		Approved: true,
	})
	if err != nil {
		t.Fatalf("second approval: %v", err)
	}
	if second.Match.Status != match.StatusCompleted {
		t.Fatalf("unexpected status after both approvals: got=%s want=%s", second.Match.Status, match.StatusCompleted)
	}
	if second.Match.CompletedAt == nil {
		t.Fatal("completed match must carry a completion stamp")
	}

	// Re-approving a completed match is a harmless no-op.
	again, err := env.matchSvc.ApproveOrDispute(t.Context(), DecisionInput{
		MatchID:  created.ID,
		TeamID:   memory.TeamIDAsphaltUnited,
		Approved: true,
	})
	if err != nil {
		t.Fatalf("re-approval: %v", err)
	}
	if again.Match.Status != match.StatusCompleted {
		t.Fatalf("re-approval changed status: %s", again.Match.Status)
	}
}

func TestMatchService_ApproveOrDispute_Guards(t *testing.T) {
	env := newTestEnv(t)
	created := env.createScheduledMatch(t)

	_, err := env.matchSvc.ApproveOrDispute(t.Context(), DecisionInput{
		MatchID:  created.ID,
		TeamID:   "team-ghosts",
		Approved: true,
	})
	if !errors.Is(err, ErrTeamNotInMatch) {
		t.Fatalf("expected ErrTeamNotInMatch, got %v", err)
	}

	// No score submitted yet.
	_, err = env.matchSvc.ApproveOrDispute(t.Context(), DecisionInput{
		MatchID:  created.ID,
		TeamID:   memory.TeamIDConcreteKings,
		Approved: true,
	})
	if !errors.Is(err, ErrNoPendingScore) {
		t.Fatalf("expected ErrNoPendingScore, got %v", err)
	}
}

func TestMatchService_ApproveOrDispute_RejectionOpensDispute(t *testing.T) {
	env := newTestEnv(t)
	created := env.createScheduledMatch(t)

	if _, err := env.matchSvc.SubmitScore(t.Context(), SubmitScoreInput{MatchID: created.ID, Team1Score: 5, Team2Score: 0}); err != nil {
		t.Fatalf("submit score: %v", err)
	}

	result, err := env.matchSvc.ApproveOrDispute(t.Context(), DecisionInput{
		MatchID: created.ID,
		TeamID:  memory.TeamIDAsphaltUnited,
		Reason:  "Score was 3-0, not 5-0",
	})
	if err != nil {
		t.Fatalf("reject score: %v", err)
	}
	if !result.Disputed {
		t.Fatal("rejection must open a dispute")
	}
	if result.Dispute.Dispute.DefendingTeamID != memory.TeamIDConcreteKings {
		t.Fatalf("unexpected defending team: %s", result.Dispute.Dispute.DefendingTeamID)
	}
	if result.Dispute.RequiredVotes != 2 {
		t.Fatalf("unexpected quorum for 4 participants: got=%d want=2", result.Dispute.RequiredVotes)
	}

	disputed, err := env.matchSvc.GetMatch(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if disputed.Status != match.StatusDisputed {
		t.Fatalf("unexpected status: got=%s want=%s", disputed.Status, match.StatusDisputed)
	}
}
