package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/trust"
)

func (h *Handler) GetTrustHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTrustHistory")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	limit, offset := pagingFromQuery(r)
	history, err := h.trustService.GetTransactionHistory(ctx, playerID, limit, offset)
	if err != nil {
		h.logger.WarnContext(ctx, "get trust history failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	transactions := make([]trustTransactionDTO, 0, len(history.Transactions))
	for _, tx := range history.Transactions {
		transactions = append(transactions, trustTransactionToDTO(tx))
	}

	writeSuccess(ctx, w, http.StatusOK, trustHistoryDTO{
		PlayerID:     history.PlayerID,
		DisplayName:  history.DisplayName,
		Balance:      history.Balance,
		Total:        history.Total,
		Transactions: transactions,
	})
}

func (h *Handler) GetTrustSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTrustSummary")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	summary, err := h.trustService.GetTrustSummary(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get trust summary failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, trustSummaryDTO{
		PlayerID:       summary.PlayerID,
		DisplayName:    summary.DisplayName,
		Balance:        summary.Balance,
		GamesPlayed:    summary.GamesPlayed,
		Wins:           summary.Wins,
		Losses:         summary.Losses,
		Draws:          summary.Draws,
		GoalsScored:    summary.GoalsScored,
		Assists:        summary.Assists,
		EarningSources: summary.EarningSources,
	})
}

func (h *Handler) GetTrustLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTrustLeaderboard")
	defer span.End()

	limit, offset := pagingFromQuery(r)
	rows, err := h.trustService.GetTrustLeaderboard(ctx, limit, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "get trust leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]trustLeaderboardRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, trustLeaderboardRowDTO{
			Rank:        row.Rank,
			PlayerID:    row.PlayerID,
			DisplayName: row.DisplayName,
			TrustPoints: row.TrustPoints,
			GamesPlayed: row.GamesPlayed,
			Wins:        row.Wins,
			Reliability: row.Reliability,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type trustTransactionDTO struct {
	ID               string    `json:"id"`
	PlayerID         string    `json:"playerId"`
	Type             string    `json:"type"`
	Points           int       `json:"points"`
	Balance          int       `json:"balance"`
	Reason           string    `json:"reason"`
	RelatedMatchID   string    `json:"relatedMatchId,omitempty"`
	RelatedDisputeID string    `json:"relatedDisputeId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type trustHistoryDTO struct {
	PlayerID     string                `json:"playerId"`
	DisplayName  string                `json:"displayName"`
	Balance      int                   `json:"balance"`
	Total        int                   `json:"total"`
	Transactions []trustTransactionDTO `json:"transactions"`
}

type trustSummaryDTO struct {
	PlayerID       string         `json:"playerId"`
	DisplayName    string         `json:"displayName"`
	Balance        int            `json:"balance"`
	GamesPlayed    int            `json:"gamesPlayed"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	Draws          int            `json:"draws"`
	GoalsScored    int            `json:"goalsScored"`
	Assists        int            `json:"assists"`
	EarningSources map[string]int `json:"earningSources"`
}

type trustLeaderboardRowDTO struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
	TrustPoints int    `json:"trustPoints"`
	GamesPlayed int    `json:"gamesPlayed"`
	Wins        int    `json:"wins"`
	Reliability string `json:"reliability"`
}

func trustTransactionToDTO(v trust.Transaction) trustTransactionDTO {
	return trustTransactionDTO{
		ID:               v.ID,
		PlayerID:         v.PlayerID,
		Type:             v.Type,
		Points:           v.Points,
		Balance:          v.Balance,
		Reason:           v.Reason,
		RelatedMatchID:   v.RelatedMatchID,
		RelatedDisputeID: v.RelatedDisputeID,
		CreatedAt:        v.CreatedAt,
	}
}
