package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/matchevent"
	"github.com/Zedster07/StreetBaller/internal/usecase"
)

func (h *Handler) RecordMatchEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatchEvent")
	defer span.End()

	u, err := h.currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req recordEventRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.requireCaptain(ctx, req.TeamID, u.ID); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	recorded, err := h.eventService.RecordEvent(ctx, usecase.RecordEventInput{
		MatchID:    matchID,
		TeamID:     req.TeamID,
		ScorerID:   req.ScorerID,
		AssisterID: req.AssisterID,
		Type:       req.Type,
		Minute:     req.Minute,
		Second:     req.Second,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record match event failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, eventToDTO(recorded))
}

func (h *Handler) ListMatchEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchEvents")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	limit, offset := pagingFromQuery(r)
	page, err := h.eventService.ListMatchEvents(ctx, matchID, limit, offset)
	if err != nil {
		h.logger.WarnContext(ctx, "list match events failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventPageToDTO(page))
}

func (h *Handler) GetMatchEventStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchEventStats")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	stats, err := h.eventService.GetMatchEventStats(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match event stats failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	byTeam := make([]teamBreakdownDTO, 0, len(stats.ByTeam))
	for _, breakdown := range stats.ByTeam {
		byTeam = append(byTeam, teamBreakdownDTO{
			TeamID:  breakdown.TeamID,
			Goals:   breakdown.Goals,
			Assists: breakdown.Assists,
			Cards:   breakdown.Cards,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, eventStatsDTO{
		MatchID:     stats.MatchID,
		TotalEvents: stats.TotalEvents,
		Goals:       stats.Goals,
		Assists:     stats.Assists,
		YellowCards: stats.YellowCards,
		RedCards:    stats.RedCards,
		ByTeam:      byTeam,
	})
}

func (h *Handler) GetPlayerEventHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerEventHistory")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	limit, offset := pagingFromQuery(r)
	page, err := h.eventService.GetPlayerEventHistory(ctx, playerID, limit, offset)
	if err != nil {
		h.logger.WarnContext(ctx, "get player event history failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, eventPageToDTO(page))
}

type recordEventRequest struct {
	TeamID     string `json:"teamId" validate:"required"`
	ScorerID   string `json:"scorerId" validate:"required"`
	AssisterID string `json:"assisterId"`
	Type       string `json:"type" validate:"required"`
	Minute     int    `json:"minute" validate:"min=0,max=120"`
	Second     int    `json:"second" validate:"min=0,max=59"`
}

type eventDTO struct {
	ID         string    `json:"id"`
	MatchID    string    `json:"matchId"`
	TeamID     string    `json:"teamId"`
	ScorerID   string    `json:"scorerId"`
	AssisterID string    `json:"assisterId,omitempty"`
	Type       string    `json:"type"`
	Minute     int       `json:"minute"`
	Second     int       `json:"second"`
	CreatedAt  time.Time `json:"createdAt"`
}

type eventPageDTO struct {
	Events []eventDTO `json:"events"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

type eventStatsDTO struct {
	MatchID     string             `json:"matchId"`
	TotalEvents int                `json:"totalEvents"`
	Goals       int                `json:"goals"`
	Assists     int                `json:"assists"`
	YellowCards int                `json:"yellowCards"`
	RedCards    int                `json:"redCards"`
	ByTeam      []teamBreakdownDTO `json:"byTeam"`
}

type teamBreakdownDTO struct {
	TeamID  string `json:"teamId"`
	Goals   int    `json:"goals"`
	Assists int    `json:"assists"`
	Cards   int    `json:"cards"`
}

func eventToDTO(v matchevent.Event) eventDTO {
	return eventDTO{
		ID:         v.ID,
		MatchID:    v.MatchID,
		TeamID:     v.TeamID,
		ScorerID:   v.ScorerID,
		AssisterID: v.AssisterID,
		Type:       v.Type,
		Minute:     v.Minute,
		Second:     v.Second,
		CreatedAt:  v.CreatedAt,
	}
}

func eventPageToDTO(page usecase.EventPage) eventPageDTO {
	events := make([]eventDTO, 0, len(page.Events))
	for _, event := range page.Events {
		events = append(events, eventToDTO(event))
	}

	return eventPageDTO{
		Events: events,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}
