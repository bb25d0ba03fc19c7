package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/match"
	"github.com/Zedster07/StreetBaller/internal/usecase"
)

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	u, err := h.currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createMatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchDate, err := time.Parse(time.RFC3339, req.MatchDate)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: matchDate must be RFC3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	created, err := h.matchService.CreateMatch(ctx, usecase.CreateMatchInput{
		Team1ID:     req.Team1ID,
		Team2ID:     req.Team2ID,
		PitchID:     req.PitchID,
		MatchDate:   matchDate,
		Format:      req.Format,
		CreatedByID: u.ID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "user_id", u.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	found, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(found))
}

func (h *Handler) ListUpcomingMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUpcomingMatches")
	defer span.End()

	matches, err := h.matchService.ListUpcoming(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list upcoming matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTOs(matches))
}

func (h *Handler) ListTeamMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamMatches")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	matches, err := h.matchService.ListTeamMatches(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team matches failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTOs(matches))
}

// RegisterParticipants checks players in for one side of a match. Only that
// side's captain may submit the list.
func (h *Handler) RegisterParticipants(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterParticipants")
	defer span.End()

	u, err := h.currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req registerParticipantsRequest
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
	if err := h.matchService.RegisterParticipants(ctx, usecase.RegisterParticipantsInput{
		MatchID:   matchID,
		TeamID:    req.TeamID,
		PlayerIDs: req.PlayerIDs,
	}); err != nil {
		h.logger.WarnContext(ctx, "register participants failed", "match_id", matchID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"matchId": matchID,
		"teamId":  req.TeamID,
		"count":   len(req.PlayerIDs),
	})
}

func (h *Handler) ListMatchParticipants(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchParticipants")
	defer span.End()

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	participants, err := h.matchService.ListMatchParticipants(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list participants failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]participantDTO, 0, len(participants))
	for _, p := range participants {
		items = append(items, participantDTO{
			MatchID:  p.MatchID,
			PlayerID: p.PlayerID,
			TeamID:   p.TeamID,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// SubmitScore records the final score reported by one side's captain and
// moves the match into the bilateral confirmation window.
func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitScore")
	defer span.End()

	u, err := h.currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitScoreRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := strings.TrimSpace(r.PathValue("matchID"))
	if err := h.requireMatchCaptain(ctx, matchID, u.ID); err != nil {
		writeError(ctx, w, err)
		return
	}

	events := make([]usecase.SubmitScoreEvent, 0, len(req.Events))
	for _, event := range req.Events {
		events = append(events, usecase.SubmitScoreEvent{
			ScorerID:   event.ScorerID,
			AssisterID: event.AssisterID,
			TeamID:     event.TeamID,
			EventType:  event.Type,
			Minute:     event.Minute,
		})
	}

	updated, err := h.matchService.SubmitScore(ctx, usecase.SubmitScoreInput{
		MatchID:    matchID,
		Team1Score: *req.Team1Score,
		Team2Score: *req.Team2Score,
		Events:     events,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit score failed", "match_id", matchID, "user_id", u.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.leaderboardService.InvalidateBoards(ctx)

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(updated))
}

// SubmitDecision records one captain's verdict on a pending score. Approval
// by both sides completes the match; rejection opens a dispute.
func (h *Handler) SubmitDecision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitDecision")
	defer span.End()

	u, err := h.currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req decisionRequest
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
	result, err := h.matchService.ApproveOrDispute(ctx, usecase.DecisionInput{
		MatchID:  matchID,
		TeamID:   req.TeamID,
		Approved: *req.Approved,
		Reason:   req.Reason,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "decision failed", "match_id", matchID, "team_id", req.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	if result.Match.Status == match.StatusCompleted {
		h.leaderboardService.InvalidateBoards(ctx)
	}

	response := decisionResponse{
		Match:    matchToDTO(result.Match),
		Disputed: result.Disputed,
	}
	if result.Disputed {
		dto := disputeViewToDTO(result.Dispute)
		response.Dispute = &dto
	}

	writeSuccess(ctx, w, http.StatusOK, response)
}

// requireCaptain gates an action on captaincy of the named team.
func (h *Handler) requireCaptain(ctx context.Context, teamID, userID string) error {
	isCaptain, err := h.teamService.IsCaptain(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if !isCaptain {
		return fmt.Errorf("%w: user=%s is not a captain of team=%s", usecase.ErrPlayerNotEligible, userID, teamID)
	}

	return nil
}

// requireMatchCaptain gates an action on captaincy of either side of the
// match.
func (h *Handler) requireMatchCaptain(ctx context.Context, matchID, userID string) error {
	found, err := h.matchService.GetMatch(ctx, matchID)
	if err != nil {
		return err
	}

	for _, teamID := range []string{found.Team1ID, found.Team2ID} {
		isCaptain, err := h.teamService.IsCaptain(ctx, teamID, userID)
		if err != nil {
			return err
		}
		if isCaptain {
			return nil
		}
	}

	return fmt.Errorf("%w: user=%s is not a captain in match=%s", usecase.ErrPlayerNotEligible, userID, matchID)
}

type createMatchRequest struct {
	Team1ID   string `json:"team1Id" validate:"required"`
	Team2ID   string `json:"team2Id" validate:"required"`
	PitchID   string `json:"pitchId"`
	MatchDate string `json:"matchDate" validate:"required"`
	Format    string `json:"format" validate:"required,oneof=5v5 7v7 11v11"`
}

type registerParticipantsRequest struct {
	TeamID    string   `json:"teamId" validate:"required"`
	PlayerIDs []string `json:"playerIds" validate:"required,min=1,dive,required"`
}

type submitScoreRequest struct {
	Team1Score *int               `json:"team1Score" validate:"required,min=0"`
	Team2Score *int               `json:"team2Score" validate:"required,min=0"`
	Events     []scoreEventUpload `json:"events" validate:"dive"`
}

type scoreEventUpload struct {
	ScorerID   string `json:"scorerId" validate:"required"`
	AssisterID string `json:"assisterId"`
	TeamID     string `json:"teamId" validate:"required"`
	Type       string `json:"type" validate:"required"`
	Minute     int    `json:"minute" validate:"min=0,max=120"`
}

type decisionRequest struct {
	TeamID string `json:"teamId" validate:"required"`
	// Approved accepts the pending score; false rejects it and opens a
	// dispute, optionally carrying the captain's stated reason.
	Approved *bool  `json:"approved" validate:"required"`
	Reason   string `json:"reason" validate:"max=500"`
}

type decisionResponse struct {
	Match    matchDTO    `json:"match"`
	Disputed bool        `json:"disputed"`
	Dispute  *disputeDTO `json:"dispute,omitempty"`
}

type matchDTO struct {
	ID                   string     `json:"id"`
	Team1ID              string     `json:"team1Id"`
	Team2ID              string     `json:"team2Id"`
	PitchID              string     `json:"pitchId,omitempty"`
	MatchDate            time.Time  `json:"matchDate"`
	Format               string     `json:"format"`
	Status               string     `json:"status"`
	Team1Score           *int       `json:"team1Score,omitempty"`
	Team2Score           *int       `json:"team2Score,omitempty"`
	Team1CaptainApproved bool       `json:"team1CaptainApproved"`
	Team2CaptainApproved bool       `json:"team2CaptainApproved"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
	ScoreInvalidatedAt   *time.Time `json:"scoreInvalidatedAt,omitempty"`
	CreatedByID          string     `json:"createdById"`
	CreatedAt            time.Time  `json:"createdAt"`
}

type participantDTO struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
	TeamID   string `json:"teamId"`
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:                   v.ID,
		Team1ID:              v.Team1ID,
		Team2ID:              v.Team2ID,
		PitchID:              v.PitchID,
		MatchDate:            v.MatchDate,
		Format:               v.Format,
		Status:               v.Status,
		Team1Score:           v.Team1Score,
		Team2Score:           v.Team2Score,
		Team1CaptainApproved: v.Team1CaptainApproved,
		Team2CaptainApproved: v.Team2CaptainApproved,
		CompletedAt:          v.CompletedAt,
		ScoreInvalidatedAt:   v.ScoreInvalidatedAt,
		CreatedByID:          v.CreatedByID,
		CreatedAt:            v.CreatedAt,
	}
}

func matchesToDTOs(matches []match.Match) []matchDTO {
	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	return items
}
