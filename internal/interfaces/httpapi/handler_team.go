package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/team"
	"github.com/Zedster07/StreetBaller/internal/usecase"
)

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	u, err := h.currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createTeamRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.CreateTeam(ctx, usecase.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		CreatedByID: u.ID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "user_id", u.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	found, err := h.teamService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(found))
}

func (h *Handler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinTeam")
	defer span.End()

	u, err := h.currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	if err := h.teamService.JoinTeam(ctx, usecase.JoinTeamInput{
		TeamID: teamID,
		UserID: u.ID,
	}); err != nil {
		h.logger.WarnContext(ctx, "join team failed", "team_id", teamID, "user_id", u.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"teamId": teamID, "userId": u.ID})
}

func (h *Handler) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveTeam")
	defer span.End()

	u, err := h.currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	if err := h.teamService.LeaveTeam(ctx, teamID, u.ID); err != nil {
		h.logger.WarnContext(ctx, "leave team failed", "team_id", teamID, "user_id", u.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"teamId": teamID, "userId": u.ID})
}

func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoster")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	roster, err := h.teamService.GetRoster(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]rosterMemberDTO, 0, len(roster))
	for _, member := range roster {
		items = append(items, rosterMemberDTO{
			UserID:      member.UserID,
			DisplayName: member.DisplayName,
			Position:    member.Position,
			Role:        member.Role,
			TrustPoints: member.TrustPoints,
			JoinedAt:    member.JoinedAt,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type createTeamRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type teamDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedByID string    `json:"createdById"`
	CreatedAt   time.Time `json:"createdAt"`
}

type rosterMemberDTO struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Position    string    `json:"position,omitempty"`
	Role        string    `json:"role"`
	TrustPoints int       `json:"trustPoints"`
	JoinedAt    time.Time `json:"joinedAt"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		CreatedByID: v.CreatedByID,
		CreatedAt:   v.CreatedAt,
	}
}
