package usecase

import (
	"errors"
	"testing"

	"github.com/Zedster07/StreetBaller/internal/domain/team"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
)

func newTeamService(env *testEnv) *TeamService {
	return NewTeamService(env.teams, env.players, &seqIDGenerator{prefix: "team"}, logging.NewNop())
}

func TestTeamService_CreateTeam_EnrollsCreatorAsCaptain(t *testing.T) {
	env := newTestEnv(t)
	svc := newTeamService(env)

	created, err := svc.CreateTeam(t.Context(), CreateTeamInput{
		Name:        "Night Owls",
		Description: "Late kickoffs only",
		CreatedByID: "user-rio",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	isCaptain, err := svc.IsCaptain(t.Context(), created.ID, "user-rio")
	if err != nil {
		t.Fatalf("is captain: %v", err)
	}
	if !isCaptain {
		t.Fatal("creator must be enrolled as captain")
	}

	roster, err := svc.GetRoster(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if len(roster) != 1 || roster[0].Role != team.RoleCaptain {
		t.Fatalf("unexpected roster: %+v", roster)
	}
	if roster[0].DisplayName != "Rio" {
		t.Fatalf("roster must join the player profile: %+v", roster[0])
	}
}

func TestTeamService_CreateTeam_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := newTeamService(env)

	_, err := svc.CreateTeam(t.Context(), CreateTeamInput{CreatedByID: "user-rio"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing name, got %v", err)
	}
}

func TestTeamService_JoinAndLeave(t *testing.T) {
	env := newTestEnv(t)
	svc := newTeamService(env)

	created, err := svc.CreateTeam(t.Context(), CreateTeamInput{
		Name:        "Night Owls",
		CreatedByID: "user-rio",
	})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	if err := svc.JoinTeam(t.Context(), JoinTeamInput{TeamID: created.ID, UserID: "user-dani"}); err != nil {
		t.Fatalf("join team: %v", err)
	}

	err = svc.JoinTeam(t.Context(), JoinTeamInput{TeamID: created.ID, UserID: "user-stranger"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for player without profile, got %v", err)
	}

	err = svc.JoinTeam(t.Context(), JoinTeamInput{TeamID: created.ID, UserID: "user-kofi", Role: "coach"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown role, got %v", err)
	}

	if err := svc.LeaveTeam(t.Context(), created.ID, "user-dani"); err != nil {
		t.Fatalf("leave team: %v", err)
	}

	roster, err := svc.GetRoster(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	if len(roster) != 1 {
		t.Fatalf("unexpected roster size after leave: got=%d want=1", len(roster))
	}
}
