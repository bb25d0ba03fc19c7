package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/Zedster07/StreetBaller/internal/domain/match"
	"github.com/Zedster07/StreetBaller/internal/domain/matchevent"
	"github.com/Zedster07/StreetBaller/internal/domain/player"
	"github.com/Zedster07/StreetBaller/internal/domain/team"
	"github.com/Zedster07/StreetBaller/internal/platform/id"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
)

// MatchService owns the match lifecycle: scheduling, score submission and
// the bilateral captain-approval step. Disagreements are handed off to the
// DisputeService.
type MatchService struct {
	matchRepo  match.Repository
	eventRepo  matchevent.Repository
	playerRepo player.Repository
	teamRepo   team.Repository
	disputes   *DisputeService
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	eventRepo matchevent.Repository,
	playerRepo player.Repository,
	teamRepo team.Repository,
	disputes *DisputeService,
	idGen id.Generator,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo:  matchRepo,
		eventRepo:  eventRepo,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		disputes:   disputes,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

type CreateMatchInput struct {
	Team1ID     string
	Team2ID     string
	PitchID     string
	MatchDate   time.Time
	Format      string
	CreatedByID string
}

func (s *MatchService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CreateMatch")
	defer span.End()

	if input.Team1ID == "" || input.Team2ID == "" {
		return match.Match{}, fmt.Errorf("%w: both team ids are required", ErrInvalidInput)
	}
	if input.Team1ID == input.Team2ID {
		return match.Match{}, fmt.Errorf("%w: a team cannot play against itself", ErrInvalidInput)
	}
	if !match.IsValidFormat(input.Format) {
		return match.Match{}, fmt.Errorf("%w: unknown match format %q", ErrInvalidInput, input.Format)
	}

	for _, teamID := range []string{input.Team1ID, input.Team2ID} {
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return match.Match{}, fmt.Errorf("get team: %w", err)
		}
		if !exists {
			return match.Match{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	now := s.now().UTC()
	created, err := s.matchRepo.Create(ctx, match.Match{
		ID:          matchID,
		Team1ID:     input.Team1ID,
		Team2ID:     input.Team2ID,
		PitchID:     input.PitchID,
		MatchDate:   input.MatchDate,
		Format:      strings.TrimSpace(input.Format),
		Status:      match.StatusScheduled,
		CreatedByID: input.CreatedByID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match scheduled",
		"match_id", created.ID,
		"team1_id", created.Team1ID,
		"team2_id", created.Team2ID,
		"format", created.Format,
	)

	return created, nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	found, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return found, nil
}

func (s *MatchService) ListTeamMatches(ctx context.Context, teamID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListTeamMatches")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list matches by team: %w", err)
	}

	return matches, nil
}

func (s *MatchService) ListUpcoming(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListUpcoming")
	defer span.End()

	matches, err := s.matchRepo.ListUpcoming(ctx, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list upcoming matches: %w", err)
	}

	return matches, nil
}

type RegisterParticipantsInput struct {
	MatchID   string
	TeamID    string
	PlayerIDs []string
}

// RegisterParticipants checks a set of players in for one side of a match.
// Participation records gate dispute voting eligibility, so check-in is only
// accepted while the match can still produce a score.
func (s *MatchService) RegisterParticipants(ctx context.Context, input RegisterParticipantsInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.RegisterParticipants")
	defer span.End()

	if len(input.PlayerIDs) == 0 {
		return fmt.Errorf("%w: at least one player id is required", ErrInvalidInput)
	}

	current, err := s.GetMatch(ctx, input.MatchID)
	if err != nil {
		return err
	}
	if !current.HasTeam(input.TeamID) {
		return fmt.Errorf("%w: team=%s", ErrTeamNotInMatch, input.TeamID)
	}
	switch current.Status {
	case match.StatusCompleted, match.StatusCancelled:
		return fmt.Errorf("%w: match=%s status=%s", ErrInvalidMatchState, current.ID, current.Status)
	}

	participants := make([]match.Participation, 0, len(input.PlayerIDs))
	for i, playerID := range input.PlayerIDs {
		playerID = strings.TrimSpace(playerID)
		if playerID == "" {
			return fmt.Errorf("%w: players[%d] id is empty", ErrInvalidInput, i)
		}
		_, exists, err := s.playerRepo.GetByUserID(ctx, playerID)
		if err != nil {
			return fmt.Errorf("get player profile: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
		}
		participants = append(participants, match.Participation{
			MatchID:  current.ID,
			PlayerID: playerID,
			TeamID:   input.TeamID,
		})
	}

	if err := s.matchRepo.AddParticipants(ctx, participants); err != nil {
		return fmt.Errorf("add participants: %w", err)
	}

	s.logger.InfoContext(ctx, "participants checked in",
		"match_id", current.ID,
		"team_id", input.TeamID,
		"count", len(participants),
	)

	return nil
}

func (s *MatchService) ListMatchParticipants(ctx context.Context, matchID string) ([]match.Participation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListMatchParticipants")
	defer span.End()

	if _, err := s.GetMatch(ctx, matchID); err != nil {
		return nil, err
	}

	participants, err := s.matchRepo.ListParticipants(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}

	return participants, nil
}

// SubmitScoreEvent is one reported in-match event accompanying a score.
type SubmitScoreEvent struct {
	ScorerID   string
	AssisterID string
	TeamID     string
	EventType  string
	Minute     int
}

type SubmitScoreInput struct {
	MatchID    string
	Team1Score int
	Team2Score int
	Events     []SubmitScoreEvent
}

// SubmitScore records a reported score, logs the accompanying events and
// moves the match to pending-confirmation. Event persistence and lifetime
// stat increments are best-effort: a failed event write never rolls back the
// score itself.
func (s *MatchService) SubmitScore(ctx context.Context, input SubmitScoreInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SubmitScore")
	defer span.End()

	if input.Team1Score < 0 || input.Team2Score < 0 {
		return match.Match{}, fmt.Errorf("%w: scores must be non-negative", ErrInvalidScore)
	}

	current, err := s.GetMatch(ctx, input.MatchID)
	if err != nil {
		return match.Match{}, err
	}
	if !current.AcceptsScoreSubmission() {
		return match.Match{}, fmt.Errorf("%w: match=%s status=%s", ErrInvalidMatchState, current.ID, current.Status)
	}

	for i, event := range input.Events {
		if event.EventType != "" && !matchevent.IsValidType(event.EventType) {
			return match.Match{}, fmt.Errorf("%w: events[%d] has unknown type %q", ErrInvalidInput, i, event.EventType)
		}
		if event.Minute < 0 || event.Minute > 120 {
			return match.Match{}, fmt.Errorf("%w: events[%d] minute out of range", ErrInvalidInput, i)
		}
		if !current.HasTeam(event.TeamID) {
			return match.Match{}, fmt.Errorf("%w: events[%d] team=%s", ErrTeamNotInMatch, i, event.TeamID)
		}
	}

	updated, err := s.matchRepo.RecordScore(ctx, current.ID, match.ScoreUpdate{
		Team1Score: input.Team1Score,
		Team2Score: input.Team2Score,
	})
	if err != nil {
		return match.Match{}, fmt.Errorf("record score: %w", err)
	}

	s.recordSubmittedEvents(ctx, updated, input.Events)

	s.logger.InfoContext(ctx, "score submitted",
		"match_id", updated.ID,
		"team1_score", input.Team1Score,
		"team2_score", input.Team2Score,
		"event_count", len(input.Events),
	)

	return updated, nil
}

// recordSubmittedEvents persists each event independently and fans the
// lifetime counter increments out over a bounded pool. Failures are logged
// and swallowed; stat aggregation must not block score recording.
func (s *MatchService) recordSubmittedEvents(ctx context.Context, m match.Match, events []SubmitScoreEvent) {
	if len(events) == 0 {
		return
	}

	now := s.now().UTC()
	recorded := make([]matchevent.Event, 0, len(events))
	for _, event := range events {
		eventType := event.EventType
		if eventType == "" {
			eventType = matchevent.TypeGoal
		}

		eventID, err := s.idGen.NewID()
		if err != nil {
			s.logger.WarnContext(ctx, "generate event id failed", "match_id", m.ID, "error", err)
			continue
		}

		inserted, err := s.eventRepo.Insert(ctx, matchevent.Event{
			ID:         eventID,
			MatchID:    m.ID,
			TeamID:     event.TeamID,
			ScorerID:   event.ScorerID,
			AssisterID: event.AssisterID,
			Type:       eventType,
			Minute:     event.Minute,
			CreatedAt:  now,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "record match event failed",
				"match_id", m.ID,
				"scorer_id", event.ScorerID,
				"event_type", eventType,
				"error", err,
			)
			continue
		}
		recorded = append(recorded, inserted)
	}

	workers := pool.New().WithMaxGoroutines(4)
	for _, event := range recorded {
		event := event
		workers.Go(func() {
			s.applyStatIncrements(ctx, event)
		})
	}
	workers.Wait()
}

func (s *MatchService) applyStatIncrements(ctx context.Context, event matchevent.Event) {
	delta, ok := statDeltaForEvent(event.Type)
	if ok {
		if err := s.playerRepo.IncrementStats(ctx, event.ScorerID, delta); err != nil {
			s.logger.WarnContext(ctx, "increment player stats failed",
				"player_id", event.ScorerID,
				"event_type", event.Type,
				"error", err,
			)
		}
	}

	if event.AssisterID != "" && event.Type == matchevent.TypeGoal {
		if err := s.playerRepo.IncrementStats(ctx, event.AssisterID, player.StatDelta{Assists: 1}); err != nil {
			s.logger.WarnContext(ctx, "increment assister stats failed",
				"player_id", event.AssisterID,
				"error", err,
			)
		}
	}
}

func statDeltaForEvent(eventType string) (player.StatDelta, bool) {
	switch eventType {
	case matchevent.TypeGoal, matchevent.TypePenalty:
		return player.StatDelta{GoalsScored: 1}, true
	case matchevent.TypeAssist:
		return player.StatDelta{Assists: 1}, true
	case matchevent.TypeOwnGoal:
		return player.StatDelta{OwnGoals: 1}, true
	case matchevent.TypeYellowCard, matchevent.TypeRedCard:
		return player.StatDelta{Cards: 1}, true
	default:
		return player.StatDelta{}, false
	}
}

type DecisionInput struct {
	MatchID string
	TeamID  string
	// Approved accepts the submitted score; false rejects it and opens a
	// dispute with the given reason.
	Approved bool
	Reason   string
}

// DecisionResult is the outcome of a captain's decision: Match on the
// approval path, Dispute on the rejection path.
type DecisionResult struct {
	Match    match.Match
	Disputed bool
	Dispute  DisputeView
}

// ApproveOrDispute processes one captain's verdict on a pending score.
// Re-approving an already completed match is a no-op that returns the
// current state.
func (s *MatchService) ApproveOrDispute(ctx context.Context, input DecisionInput) (DecisionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ApproveOrDispute")
	defer span.End()

	current, err := s.GetMatch(ctx, input.MatchID)
	if err != nil {
		return DecisionResult{}, err
	}
	if !current.HasTeam(input.TeamID) {
		return DecisionResult{}, fmt.Errorf("%w: match=%s team=%s", ErrTeamNotInMatch, current.ID, input.TeamID)
	}

	if current.Status == match.StatusCompleted && input.Approved {
		return DecisionResult{Match: current}, nil
	}
	if current.Status != match.StatusPendingConfirmation {
		return DecisionResult{}, fmt.Errorf("%w: match=%s status=%s", ErrNoPendingScore, current.ID, current.Status)
	}
	if current.ScoreInvalidatedAt != nil {
		return DecisionResult{}, fmt.Errorf("%w: score was invalidated by dispute resolution, submit a new score", ErrNoPendingScore)
	}

	if !input.Approved {
		opened, err := s.disputes.OpenDispute(ctx, OpenDisputeInput{
			MatchID:         current.ID,
			DisputingTeamID: input.TeamID,
			Reason:          input.Reason,
		})
		if err != nil {
			return DecisionResult{}, err
		}

		return DecisionResult{Disputed: true, Dispute: opened}, nil
	}

	updated, err := s.matchRepo.Approve(ctx, current.ID, input.TeamID, s.now().UTC())
	if err != nil {
		return DecisionResult{}, fmt.Errorf("approve score: %w", err)
	}

	if updated.Status == match.StatusCompleted {
		s.logger.InfoContext(ctx, "match completed",
			"match_id", updated.ID,
			"team1_score", derefInt(updated.Team1Score),
			"team2_score", derefInt(updated.Team2Score),
		)
	}

	return DecisionResult{Match: updated}, nil
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
