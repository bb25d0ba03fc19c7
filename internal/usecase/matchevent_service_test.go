package usecase

import (
	"errors"
	"testing"

	"github.com/Zedster07/StreetBaller/internal/domain/match"
	"github.com/Zedster07/StreetBaller/internal/domain/matchevent"
	"github.com/Zedster07/StreetBaller/internal/infrastructure/repository/memory"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
)

func newEventService(env *testEnv) *MatchEventService {
	return NewMatchEventService(env.events, env.matches, &seqIDGenerator{prefix: "event"}, logging.NewNop())
}

func TestMatchEventService_RecordEvent_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := newEventService(env)
	created := env.createScheduledMatch(t)

	_, err := svc.RecordEvent(t.Context(), RecordEventInput{
		MatchID:  created.ID,
		ScorerID: "user-rio",
		Type:     "bicycleKick",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown type, got %v", err)
	}

	_, err = svc.RecordEvent(t.Context(), RecordEventInput{
		MatchID:  "match-ghost",
		ScorerID: "user-rio",
		Type:     matchevent.TypeGoal,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown match, got %v", err)
	}

	_, err = svc.RecordEvent(t.Context(), RecordEventInput{
		MatchID:  created.ID,
		TeamID:   "team-ghosts",
		ScorerID: "user-rio",
		Type:     matchevent.TypeGoal,
	})
	if !errors.Is(err, ErrTeamNotInMatch) {
		t.Fatalf("expected ErrTeamNotInMatch, got %v", err)
	}
}

func TestMatchEventService_RecordEvent_FrozenWhileDisputed(t *testing.T) {
	env := newTestEnv(t)
	svc := newEventService(env)
	created := env.createScheduledMatch(t)

	if _, err := env.matches.SetStatus(t.Context(), created.ID, match.StatusDisputed); err != nil {
		t.Fatalf("set status: %v", err)
	}

	_, err := svc.RecordEvent(t.Context(), RecordEventInput{
		MatchID:  created.ID,
		TeamID:   memory.TeamIDConcreteKings,
		ScorerID: "user-rio",
		Type:     matchevent.TypeGoal,
	})
	if !errors.Is(err, ErrInvalidMatchState) {
		t.Fatalf("expected ErrInvalidMatchState for disputed match, got %v", err)
	}
}

func TestMatchEventService_GetMatchEventStats_Aggregates(t *testing.T) {
	env := newTestEnv(t)
	svc := newEventService(env)
	created := env.createScheduledMatch(t)

	inputs := []RecordEventInput{
		{MatchID: created.ID, TeamID: created.Team1ID, ScorerID: "user-rio", AssisterID: "user-dani", Type: matchevent.TypeGoal, Minute: 9},
		{MatchID: created.ID, TeamID: created.Team1ID, ScorerID: "user-rio", Type: matchevent.TypePenalty, Minute: 33},
		{MatchID: created.ID, TeamID: created.Team2ID, ScorerID: "user-kofi", Type: matchevent.TypeGoal, Minute: 41},
		{MatchID: created.ID, TeamID: created.Team2ID, ScorerID: "user-mira", Type: matchevent.TypeYellowCard, Minute: 50},
		{MatchID: created.ID, TeamID: created.Team2ID, ScorerID: "user-mira", Type: matchevent.TypeOwnGoal, Minute: 58},
	}
	for _, input := range inputs {
		if _, err := svc.RecordEvent(t.Context(), input); err != nil {
			t.Fatalf("record event %s: %v", input.Type, err)
		}
	}

	stats, err := svc.GetMatchEventStats(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}

	if stats.TotalEvents != 5 {
		t.Fatalf("total events: got=%d want=5", stats.TotalEvents)
	}
	// Two team1 goals, one team2 goal, plus the own goal credited to team1.
	if stats.Goals != 4 {
		t.Fatalf("goals: got=%d want=4", stats.Goals)
	}
	if stats.Assists != 1 {
		t.Fatalf("assists: got=%d want=1", stats.Assists)
	}
	if stats.YellowCards != 1 {
		t.Fatalf("yellow cards: got=%d want=1", stats.YellowCards)
	}

	if len(stats.ByTeam) != 2 {
		t.Fatalf("expected two team breakdowns, got %d", len(stats.ByTeam))
	}
	team1 := stats.ByTeam[0]
	team2 := stats.ByTeam[1]
	if team1.Goals != 3 {
		t.Fatalf("team1 goals including own-goal credit: got=%d want=3", team1.Goals)
	}
	if team2.Goals != 1 || team2.Cards != 1 {
		t.Fatalf("team2 breakdown: %+v", team2)
	}
}

func TestMatchEventService_ListMatchEvents_Pages(t *testing.T) {
	env := newTestEnv(t)
	svc := newEventService(env)
	created := env.createScheduledMatch(t)

	for minute := 1; minute <= 5; minute++ {
		if _, err := svc.RecordEvent(t.Context(), RecordEventInput{
			MatchID:  created.ID,
			TeamID:   memory.TeamIDConcreteKings,
			ScorerID: "user-rio",
			Type:     matchevent.TypeGoal,
			Minute:   minute,
		}); err != nil {
			t.Fatalf("record event: %v", err)
		}
	}

	page, err := svc.ListMatchEvents(t.Context(), created.ID, 2, 2)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if page.Total != 5 {
		t.Fatalf("total: got=%d want=5", page.Total)
	}
	if len(page.Events) != 2 {
		t.Fatalf("page size: got=%d want=2", len(page.Events))
	}
	if page.Events[0].Minute != 3 {
		t.Fatalf("unexpected page start: minute=%d want=3", page.Events[0].Minute)
	}
}
