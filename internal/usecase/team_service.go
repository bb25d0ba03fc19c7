package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/player"
	"github.com/Zedster07/StreetBaller/internal/domain/team"
	"github.com/Zedster07/StreetBaller/internal/platform/id"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
)

// TeamService manages squads and their rosters. The creating player is
// enrolled as captain automatically.
type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewTeamService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

type CreateTeamInput struct {
	Name        string
	Description string
	CreatedByID string
}

func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	candidate := team.Team{
		ID:          teamID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		CreatedByID: strings.TrimSpace(input.CreatedByID),
		CreatedAt:   s.now().UTC(),
	}
	if err := candidate.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.teamRepo.Create(ctx, candidate)
	if err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	if err := s.teamRepo.AddMember(ctx, team.Membership{
		TeamID:   created.ID,
		UserID:   created.CreatedByID,
		Role:     team.RoleCaptain,
		JoinedAt: s.now().UTC(),
	}); err != nil {
		return team.Team{}, fmt.Errorf("enroll team captain: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", created.ID, "name", created.Name)

	return created, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	t, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	return t, nil
}

func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return teams, nil
}

type JoinTeamInput struct {
	TeamID string
	UserID string
	Role   string
}

func (s *TeamService) JoinTeam(ctx context.Context, input JoinTeamInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.JoinTeam")
	defer span.End()

	role := input.Role
	if role == "" {
		role = team.RolePlayer
	}
	if role != team.RolePlayer && role != team.RoleCaptain {
		return fmt.Errorf("%w: unknown team role %q", ErrInvalidInput, role)
	}

	if _, err := s.GetTeam(ctx, input.TeamID); err != nil {
		return err
	}
	if _, err := s.requirePlayer(ctx, input.UserID); err != nil {
		return err
	}

	if err := s.teamRepo.AddMember(ctx, team.Membership{
		TeamID:   input.TeamID,
		UserID:   input.UserID,
		Role:     role,
		JoinedAt: s.now().UTC(),
	}); err != nil {
		return fmt.Errorf("add team member: %w", err)
	}

	s.logger.InfoContext(ctx, "player joined team", "team_id", input.TeamID, "user_id", input.UserID, "role", role)

	return nil
}

func (s *TeamService) LeaveTeam(ctx context.Context, teamID, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.LeaveTeam")
	defer span.End()

	if _, err := s.GetTeam(ctx, teamID); err != nil {
		return err
	}

	if err := s.teamRepo.RemoveMember(ctx, teamID, userID); err != nil {
		return fmt.Errorf("remove team member: %w", err)
	}

	return nil
}

// RosterMember is a membership joined with the player profile.
type RosterMember struct {
	UserID      string
	DisplayName string
	Position    string
	Role        string
	TrustPoints int
	JoinedAt    time.Time
}

func (s *TeamService) GetRoster(ctx context.Context, teamID string) ([]RosterMember, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetRoster")
	defer span.End()

	if _, err := s.GetTeam(ctx, teamID); err != nil {
		return nil, err
	}

	memberships, err := s.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	roster := make([]RosterMember, 0, len(memberships))
	for _, m := range memberships {
		member := RosterMember{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}

		profile, exists, err := s.playerRepo.GetByUserID(ctx, m.UserID)
		if err != nil {
			return nil, fmt.Errorf("get player profile: %w", err)
		}
		if exists {
			member.DisplayName = profile.DisplayName
			member.Position = string(profile.Position)
			member.TrustPoints = profile.TrustPoints
		}

		roster = append(roster, member)
	}

	return roster, nil
}

// IsCaptain reports whether the user holds the captain role on the team.
func (s *TeamService) IsCaptain(ctx context.Context, teamID, userID string) (bool, error) {
	memberships, err := s.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		return false, fmt.Errorf("list team members: %w", err)
	}

	for _, m := range memberships {
		if m.UserID == userID && m.Role == team.RoleCaptain {
			return true, nil
		}
	}

	return false, nil
}

func (s *TeamService) requirePlayer(ctx context.Context, userID string) (player.Profile, error) {
	profile, exists, err := s.playerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return player.Profile{}, fmt.Errorf("get player profile: %w", err)
	}
	if !exists {
		return player.Profile{}, fmt.Errorf("%w: player=%s", ErrNotFound, userID)
	}

	return profile, nil
}
