package httpapi

import (
	"net/http"

	"github.com/Zedster07/StreetBaller/internal/domain/player"
	"github.com/Zedster07/StreetBaller/internal/domain/trust"
)

func (h *Handler) GetLeaderboardSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboardSummary")
	defer span.End()

	limit, _ := pagingFromQuery(r)
	summary, err := h.leaderboardService.GetSummary(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "get leaderboard summary failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardSummaryDTO{
		Trust:      trustEntriesToDTOs(summary.Trust),
		TopScorers: boardRowsFromProfiles(summary.TopScorers, func(p player.Profile) int { return p.GoalsScored }),
		TopAssists: boardRowsFromProfiles(summary.TopAssists, func(p player.Profile) int { return p.Assists }),
		MostWins:   boardRowsFromProfiles(summary.MostWins, func(p player.Profile) int { return p.Wins }),
	})
}

func (h *Handler) GetTopScorers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTopScorers")
	defer span.End()

	limit, offset := pagingFromQuery(r)
	profiles, err := h.leaderboardService.GetTopScorers(ctx, limit, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "get top scorers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boardRowsFromProfiles(profiles, func(p player.Profile) int { return p.GoalsScored }))
}

func (h *Handler) GetTopAssists(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTopAssists")
	defer span.End()

	limit, offset := pagingFromQuery(r)
	profiles, err := h.leaderboardService.GetTopAssists(ctx, limit, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "get top assists failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boardRowsFromProfiles(profiles, func(p player.Profile) int { return p.Assists }))
}

type leaderboardSummaryDTO struct {
	Trust      []trustEntryDTO `json:"trust"`
	TopScorers []boardRowDTO   `json:"topScorers"`
	TopAssists []boardRowDTO   `json:"topAssists"`
	MostWins   []boardRowDTO   `json:"mostWins"`
}

type trustEntryDTO struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
	TrustPoints int    `json:"trustPoints"`
	GamesPlayed int    `json:"gamesPlayed"`
	Wins        int    `json:"wins"`
	Goals       int    `json:"goals"`
	Assists     int    `json:"assists"`
}

type boardRowDTO struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
	Value       int    `json:"value"`
	GamesPlayed int    `json:"gamesPlayed"`
}

func trustEntriesToDTOs(entries []trust.LeaderboardEntry) []trustEntryDTO {
	items := make([]trustEntryDTO, 0, len(entries))
	for _, entry := range entries {
		items = append(items, trustEntryDTO{
			PlayerID:    entry.PlayerID,
			DisplayName: entry.DisplayName,
			TrustPoints: entry.TrustPoints,
			GamesPlayed: entry.GamesPlayed,
			Wins:        entry.Wins,
			Goals:       entry.Goals,
			Assists:     entry.Assists,
		})
	}

	return items
}

func boardRowsFromProfiles(profiles []player.Profile, value func(player.Profile) int) []boardRowDTO {
	items := make([]boardRowDTO, 0, len(profiles))
	for _, profile := range profiles {
		items = append(items, boardRowDTO{
			PlayerID:    profile.UserID,
			DisplayName: profile.DisplayName,
			Value:       value(profile),
			GamesPlayed: profile.GamesPlayed,
		})
	}

	return items
}
