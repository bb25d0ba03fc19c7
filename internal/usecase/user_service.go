package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/player"
	"github.com/Zedster07/StreetBaller/internal/domain/trust"
	"github.com/Zedster07/StreetBaller/internal/domain/user"
	"github.com/Zedster07/StreetBaller/internal/platform/id"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
)

// UserService links external identities to local users and owns the player
// profile lifecycle.
type UserService struct {
	userRepo   user.Repository
	playerRepo player.Repository
	trust      *TrustService
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewUserService(
	userRepo user.Repository,
	playerRepo player.Repository,
	trustService *TrustService,
	idGen id.Generator,
	logger *logging.Logger,
) *UserService {
	if logger == nil {
		logger = logging.Default()
	}

	return &UserService{
		userRepo:   userRepo,
		playerRepo: playerRepo,
		trust:      trustService,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

type RegisterUserInput struct {
	Email       string
	IdentityUID string
}

// RegisterUser creates the local user for an external identity. Registration
// is idempotent on the identity UID.
func (s *UserService) RegisterUser(ctx context.Context, input RegisterUserInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.RegisterUser")
	defer span.End()

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.IdentityUID = strings.TrimSpace(input.IdentityUID)
	if input.Email == "" || input.IdentityUID == "" {
		return user.User{}, fmt.Errorf("%w: email and identity uid are required", ErrInvalidInput)
	}

	existing, exists, err := s.userRepo.GetByIdentityUID(ctx, input.IdentityUID)
	if err != nil {
		return user.User{}, fmt.Errorf("find user by identity: %w", err)
	}
	if exists {
		return existing, nil
	}

	userID, err := s.idGen.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		ID:          userID,
		Email:       input.Email,
		IdentityUID: input.IdentityUID,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", created.ID)

	return created, nil
}

// GetUserByIdentity resolves the local user behind an external identity UID.
func (s *UserService) GetUserByIdentity(ctx context.Context, identityUID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.GetUserByIdentity")
	defer span.End()

	identityUID = strings.TrimSpace(identityUID)
	if identityUID == "" {
		return user.User{}, fmt.Errorf("%w: identity uid is required", ErrInvalidInput)
	}

	u, exists, err := s.userRepo.GetByIdentityUID(ctx, identityUID)
	if err != nil {
		return user.User{}, fmt.Errorf("find user by identity: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: identity=%s", ErrNotFound, identityUID)
	}

	return u, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.GetUser")
	defer span.End()

	u, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}

	return u, nil
}

type SaveProfileInput struct {
	UserID      string
	DisplayName string
	Position    string
	PhotoURL    string
}

// SaveProfile creates or updates the player profile. The one-time profile
// creation bonus is granted only on first save.
func (s *UserService) SaveProfile(ctx context.Context, input SaveProfileInput) (player.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.SaveProfile")
	defer span.End()

	input.DisplayName = strings.TrimSpace(input.DisplayName)
	input.Position = strings.TrimSpace(input.Position)
	if input.DisplayName == "" {
		return player.Profile{}, fmt.Errorf("%w: display name is required", ErrInvalidInput)
	}
	if input.Position != "" {
		if _, ok := player.AllPositions[player.Position(input.Position)]; !ok {
			return player.Profile{}, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, input.Position)
		}
	}

	if _, err := s.GetUser(ctx, input.UserID); err != nil {
		return player.Profile{}, err
	}

	current, existed, err := s.playerRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return player.Profile{}, fmt.Errorf("get player profile: %w", err)
	}

	next := current
	next.UserID = input.UserID
	next.DisplayName = input.DisplayName
	next.Position = player.Position(input.Position)
	next.PhotoURL = input.PhotoURL

	saved, err := s.playerRepo.Upsert(ctx, next)
	if err != nil {
		return player.Profile{}, fmt.Errorf("save player profile: %w", err)
	}

	if !existed {
		if _, err := s.trust.RecordTransaction(ctx, RecordTransactionInput{
			PlayerID: input.UserID,
			Points:   trust.PointsProfileCreated,
			Reason:   "Profile created",
		}); err != nil {
			return player.Profile{}, fmt.Errorf("grant profile bonus: %w", err)
		}
		saved.TrustPoints = trust.PointsProfileCreated
	}

	return saved, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (player.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.GetProfile")
	defer span.End()

	profile, exists, err := s.playerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return player.Profile{}, fmt.Errorf("get player profile: %w", err)
	}
	if !exists {
		return player.Profile{}, fmt.Errorf("%w: player=%s", ErrNotFound, userID)
	}

	return profile, nil
}
