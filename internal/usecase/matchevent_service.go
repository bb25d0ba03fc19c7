package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/match"
	"github.com/Zedster07/StreetBaller/internal/domain/matchevent"
	"github.com/Zedster07/StreetBaller/internal/platform/id"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
)

// MatchEventService records and reads the per-match event log.
type MatchEventService struct {
	eventRepo matchevent.Repository
	matchRepo match.Repository
	idGen     id.Generator
	logger    *logging.Logger
	now       func() time.Time
}

func NewMatchEventService(
	eventRepo matchevent.Repository,
	matchRepo match.Repository,
	idGen id.Generator,
	logger *logging.Logger,
) *MatchEventService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchEventService{
		eventRepo: eventRepo,
		matchRepo: matchRepo,
		idGen:     idGen,
		logger:    logger,
		now:       time.Now,
	}
}

type RecordEventInput struct {
	MatchID    string
	TeamID     string
	ScorerID   string
	AssisterID string
	Type       string
	Minute     int
	Second     int
}

// RecordEvent appends one event to a match that is still accepting play data.
// Events against completed or cancelled matches are rejected.
func (s *MatchEventService) RecordEvent(ctx context.Context, input RecordEventInput) (matchevent.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchEventService.RecordEvent")
	defer span.End()

	input.Type = strings.TrimSpace(input.Type)
	if !matchevent.IsValidType(input.Type) {
		return matchevent.Event{}, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, input.Type)
	}
	if strings.TrimSpace(input.ScorerID) == "" {
		return matchevent.Event{}, fmt.Errorf("%w: scorer id is required", ErrInvalidInput)
	}
	if input.Minute < 0 || input.Second < 0 || input.Second > 59 {
		return matchevent.Event{}, fmt.Errorf("%w: invalid event clock %d:%02d", ErrInvalidInput, input.Minute, input.Second)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return matchevent.Event{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return matchevent.Event{}, fmt.Errorf("%w: match=%s", ErrNotFound, input.MatchID)
	}
	if !m.AcceptsEvents() {
		return matchevent.Event{}, fmt.Errorf("%w: match is %s", ErrInvalidMatchState, m.Status)
	}
	if input.TeamID != "" && !m.HasTeam(input.TeamID) {
		return matchevent.Event{}, fmt.Errorf("%w: team=%s match=%s", ErrTeamNotInMatch, input.TeamID, m.ID)
	}

	eventID, err := s.idGen.NewID()
	if err != nil {
		return matchevent.Event{}, fmt.Errorf("generate event id: %w", err)
	}

	event, err := s.eventRepo.Insert(ctx, matchevent.Event{
		ID:         eventID,
		MatchID:    m.ID,
		TeamID:     input.TeamID,
		ScorerID:   input.ScorerID,
		AssisterID: input.AssisterID,
		Type:       input.Type,
		Minute:     input.Minute,
		Second:     input.Second,
		CreatedAt:  s.now().UTC(),
	})
	if err != nil {
		return matchevent.Event{}, fmt.Errorf("insert match event: %w", err)
	}

	s.logger.InfoContext(ctx, "match event recorded",
		"match_id", event.MatchID,
		"event_type", event.Type,
		"scorer_id", event.ScorerID,
	)

	return event, nil
}

// EventPage is one page of a match's event log in recording order.
type EventPage struct {
	Events []matchevent.Event
	Total  int
	Limit  int
	Offset int
}

func (s *MatchEventService) ListMatchEvents(ctx context.Context, matchID string, limit, offset int) (EventPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchEventService.ListMatchEvents")
	defer span.End()

	if _, err := s.requireMatch(ctx, matchID); err != nil {
		return EventPage{}, err
	}

	limit = normalizeLimit(limit, 100)
	events, total, err := s.eventRepo.ListByMatch(ctx, matchID, limit, offset)
	if err != nil {
		return EventPage{}, fmt.Errorf("list match events: %w", err)
	}

	return EventPage{Events: events, Total: total, Limit: limit, Offset: offset}, nil
}

// GetMatchEventStats aggregates a match's event log into totals and a
// per-team breakdown.
func (s *MatchEventService) GetMatchEventStats(ctx context.Context, matchID string) (matchevent.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchEventService.GetMatchEventStats")
	defer span.End()

	m, err := s.requireMatch(ctx, matchID)
	if err != nil {
		return matchevent.Stats{}, err
	}

	events, _, err := s.eventRepo.ListByMatch(ctx, matchID, 0, 0)
	if err != nil {
		return matchevent.Stats{}, fmt.Errorf("list match events: %w", err)
	}

	stats := matchevent.Stats{MatchID: matchID, TotalEvents: len(events)}
	perTeam := map[string]*matchevent.TeamBreakdown{
		m.Team1ID: {TeamID: m.Team1ID},
		m.Team2ID: {TeamID: m.Team2ID},
	}

	for _, event := range events {
		breakdown := perTeam[event.TeamID]

		switch event.Type {
		case matchevent.TypeGoal, matchevent.TypePenalty:
			stats.Goals++
			if breakdown != nil {
				breakdown.Goals++
			}
			if event.AssisterID != "" {
				stats.Assists++
				if breakdown != nil {
					breakdown.Assists++
				}
			}
		case matchevent.TypeAssist:
			stats.Assists++
			if breakdown != nil {
				breakdown.Assists++
			}
		case matchevent.TypeYellowCard:
			stats.YellowCards++
		case matchevent.TypeRedCard:
			stats.RedCards++
		case matchevent.TypeOwnGoal:
			// Credited to the opposing side on the scoreboard.
			if other := perTeam[m.OpposingTeam(event.TeamID)]; other != nil {
				stats.Goals++
				other.Goals++
			}
		}

		if matchevent.IsCard(event.Type) && breakdown != nil {
			breakdown.Cards++
		}
	}

	stats.ByTeam = []matchevent.TeamBreakdown{*perTeam[m.Team1ID], *perTeam[m.Team2ID]}

	return stats, nil
}

func (s *MatchEventService) GetPlayerEventHistory(ctx context.Context, playerID string, limit, offset int) (EventPage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchEventService.GetPlayerEventHistory")
	defer span.End()

	if strings.TrimSpace(playerID) == "" {
		return EventPage{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	limit = normalizeLimit(limit, 100)
	events, total, err := s.eventRepo.ListByPlayer(ctx, playerID, limit, offset)
	if err != nil {
		return EventPage{}, fmt.Errorf("list player events: %w", err)
	}

	return EventPage{Events: events, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *MatchEventService) ListPlayerMatchEvents(ctx context.Context, matchID, playerID string) ([]matchevent.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchEventService.ListPlayerMatchEvents")
	defer span.End()

	if _, err := s.requireMatch(ctx, matchID); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListByMatchAndPlayer(ctx, matchID, playerID)
	if err != nil {
		return nil, fmt.Errorf("list player match events: %w", err)
	}

	return events, nil
}

func (s *MatchEventService) requireMatch(ctx context.Context, matchID string) (match.Match, error) {
	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return m, nil
}
