package usecase

import (
	"errors"
	"testing"

	"github.com/Zedster07/StreetBaller/internal/domain/trust"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
)

func newUserService(env *testEnv) *UserService {
	return NewUserService(env.users, env.players, env.trustSvc, &seqIDGenerator{prefix: "user"}, logging.NewNop())
}

func TestUserService_RegisterUser_IdempotentOnIdentity(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(env)

	first, err := svc.RegisterUser(t.Context(), RegisterUserInput{
		Email:       "Nia@StreetBaller.dev",
		IdentityUID: "uid-nia",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if first.Email != "nia@streetballer.dev" {
		t.Fatalf("email must be normalized: got=%s", first.Email)
	}

	second, err := svc.RegisterUser(t.Context(), RegisterUserInput{
		Email:       "nia@streetballer.dev",
		IdentityUID: "uid-nia",
	})
	if err != nil {
		t.Fatalf("repeat register: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("registration must be idempotent: got=%s want=%s", second.ID, first.ID)
	}

	_, err = svc.RegisterUser(t.Context(), RegisterUserInput{Email: "x@y.dev"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing identity uid, got %v", err)
	}
}

func TestUserService_SaveProfile_GrantsCreationBonusOnce(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(env)

	registered, err := svc.RegisterUser(t.Context(), RegisterUserInput{
		Email:       "nia@streetballer.dev",
		IdentityUID: "uid-nia",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	created, err := svc.SaveProfile(t.Context(), SaveProfileInput{
		UserID:      registered.ID,
		DisplayName: "Nia",
		Position:    "ST",
	})
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if created.TrustPoints != trust.PointsProfileCreated {
		t.Fatalf("creation bonus: got=%d want=%d", created.TrustPoints, trust.PointsProfileCreated)
	}

	updated, err := svc.SaveProfile(t.Context(), SaveProfileInput{
		UserID:      registered.ID,
		DisplayName: "Nia the Striker",
		Position:    "ST",
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.TrustPoints != trust.PointsProfileCreated {
		t.Fatalf("bonus must not repeat: got=%d", updated.TrustPoints)
	}
	if updated.DisplayName != "Nia the Striker" {
		t.Fatalf("display name not updated: %s", updated.DisplayName)
	}
}

func TestUserService_SaveProfile_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := newUserService(env)

	_, err := svc.SaveProfile(t.Context(), SaveProfileInput{UserID: "user-rio"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing display name, got %v", err)
	}

	_, err = svc.SaveProfile(t.Context(), SaveProfileInput{
		UserID:      "user-rio",
		DisplayName: "Rio",
		Position:    "SWEEPER",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown position, got %v", err)
	}

	_, err = svc.SaveProfile(t.Context(), SaveProfileInput{
		UserID:      "user-unregistered",
		DisplayName: "Ghost",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}
