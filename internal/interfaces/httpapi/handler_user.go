package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/player"
	"github.com/Zedster07/StreetBaller/internal/domain/user"
	"github.com/Zedster07/StreetBaller/internal/usecase"
)

// Register creates the local user for the authenticated identity. The call
// is idempotent, so clients may repeat it on every login.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Register")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	registered, err := h.userService.RegisterUser(ctx, usecase.RegisterUserInput{
		Email:       principal.Email,
		IdentityUID: principal.UserID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register user failed", "identity_uid", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(registered))
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Me")
	defer span.End()

	u, err := h.currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(u))
}

func (h *Handler) SetupProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetupProfile")
	defer span.End()

	u, err := h.currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req profileSetupRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.userService.SaveProfile(ctx, usecase.SaveProfileInput{
		UserID:      u.ID,
		DisplayName: req.DisplayName,
		Position:    req.Position,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "profile setup failed", "user_id", u.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(profile))
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyProfile")
	defer span.End()

	u, err := h.currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.userService.GetProfile(ctx, u.ID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(profile))
}

func (h *Handler) GetPlayerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerProfile")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	profile, err := h.userService.GetProfile(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player profile failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(profile))
}

type profileSetupRequest struct {
	DisplayName string `json:"displayName" validate:"required,max=60"`
	Position    string `json:"position" validate:"omitempty,oneof=GK CB LB RB CM CAM LW RW ST"`
	PhotoURL    string `json:"photoUrl" validate:"omitempty,url,max=500"`
}

type userDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type profileDTO struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Position    string `json:"position,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
	TrustPoints int    `json:"trustPoints"`
	SkillCoins  int    `json:"skillCoins"`
	GamesPlayed int    `json:"gamesPlayed"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Draws       int    `json:"draws"`
	GoalsScored int    `json:"goalsScored"`
	Assists     int    `json:"assists"`
	OwnGoals    int    `json:"ownGoals"`
	Cards       int    `json:"cards"`
}

func userToDTO(v user.User) userDTO {
	return userDTO{
		ID:        v.ID,
		Email:     v.Email,
		CreatedAt: v.CreatedAt,
	}
}

func profileToDTO(v player.Profile) profileDTO {
	return profileDTO{
		UserID:      v.UserID,
		DisplayName: v.DisplayName,
		Position:    string(v.Position),
		PhotoURL:    v.PhotoURL,
		TrustPoints: v.TrustPoints,
		SkillCoins:  v.SkillCoins,
		GamesPlayed: v.GamesPlayed,
		Wins:        v.Wins,
		Losses:      v.Losses,
		Draws:       v.Draws,
		GoalsScored: v.GoalsScored,
		Assists:     v.Assists,
		OwnGoals:    v.OwnGoals,
		Cards:       v.Cards,
	}
}
