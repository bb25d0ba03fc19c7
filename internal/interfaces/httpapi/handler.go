package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/Zedster07/StreetBaller/internal/domain/user"
	"github.com/Zedster07/StreetBaller/internal/platform/logging"
	"github.com/Zedster07/StreetBaller/internal/usecase"
)

type Handler struct {
	userService        *usecase.UserService
	teamService        *usecase.TeamService
	matchService       *usecase.MatchService
	disputeService     *usecase.DisputeService
	trustService       *usecase.TrustService
	eventService       *usecase.MatchEventService
	leaderboardService *usecase.LeaderboardService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	userService *usecase.UserService,
	teamService *usecase.TeamService,
	matchService *usecase.MatchService,
	disputeService *usecase.DisputeService,
	trustService *usecase.TrustService,
	eventService *usecase.MatchEventService,
	leaderboardService *usecase.LeaderboardService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		userService:        userService,
		teamService:        teamService,
		matchService:       matchService,
		disputeService:     disputeService,
		trustService:       trustService,
		eventService:       eventService,
		leaderboardService: leaderboardService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// currentUser resolves the authenticated principal to the local user record.
// The principal's user id is the identity provider's UID, never a local id.
func (h *Handler) currentUser(ctx context.Context) (user.User, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.User{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}

	u, err := h.userService.GetUserByIdentity(ctx, principal.UserID)
	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeBody(r *http.Request, target any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// pagingFromQuery parses limit/offset query parameters; zero values defer
// to the per-endpoint usecase defaults.
func pagingFromQuery(r *http.Request) (limit, offset int) {
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("offset")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	return limit, offset
}
