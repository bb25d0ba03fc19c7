package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/roster", handler.GetTeamRoster)

	mux.HandleFunc("GET /v1/matches/upcoming", handler.ListUpcomingMatches)
	mux.HandleFunc("GET /v1/matches/team/{teamID}", handler.ListTeamMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/participants", handler.ListMatchParticipants)
	mux.HandleFunc("GET /v1/matches/{matchID}/events", handler.ListMatchEvents)
	mux.HandleFunc("GET /v1/matches/{matchID}/events/stats", handler.GetMatchEventStats)

	mux.HandleFunc("GET /v1/disputes", handler.ListOpenDisputes)
	mux.HandleFunc("GET /v1/disputes/{disputeID}", handler.GetDispute)

	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayerProfile)
	mux.HandleFunc("GET /v1/players/{playerID}/events", handler.GetPlayerEventHistory)

	mux.HandleFunc("GET /v1/trust/players/{playerID}/history", handler.GetTrustHistory)
	mux.HandleFunc("GET /v1/trust/players/{playerID}/summary", handler.GetTrustSummary)
	mux.HandleFunc("GET /v1/trust/leaderboard", handler.GetTrustLeaderboard)

	mux.HandleFunc("GET /v1/leaderboards/summary", handler.GetLeaderboardSummary)
	mux.HandleFunc("GET /v1/leaderboards/topscorers", handler.GetTopScorers)
	mux.HandleFunc("GET /v1/leaderboards/topassists", handler.GetTopAssists)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/auth/register", RequireAuth(verifier, http.HandlerFunc(handler.Register)))
	mux.Handle("GET /v1/auth/me", RequireAuth(verifier, http.HandlerFunc(handler.Me)))
	mux.Handle("POST /v1/users/profile/setup", RequireAuth(verifier, http.HandlerFunc(handler.SetupProfile)))
	mux.Handle("GET /v1/users/profile", RequireAuth(verifier, http.HandlerFunc(handler.GetMyProfile)))

	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("POST /v1/teams/{teamID}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinTeam)))
	mux.Handle("DELETE /v1/teams/{teamID}/members/me", RequireAuth(verifier, http.HandlerFunc(handler.LeaveTeam)))

	mux.Handle("POST /v1/matches", RequireAuth(verifier, http.HandlerFunc(handler.CreateMatch)))
	mux.Handle("POST /v1/matches/{matchID}/participants", RequireAuth(verifier, http.HandlerFunc(handler.RegisterParticipants)))
	mux.Handle("POST /v1/matches/{matchID}/score", RequireAuth(verifier, http.HandlerFunc(handler.SubmitScore)))
	mux.Handle("POST /v1/matches/{matchID}/decision", RequireAuth(verifier, http.HandlerFunc(handler.SubmitDecision)))
	mux.Handle("POST /v1/matches/{matchID}/events", RequireAuth(verifier, http.HandlerFunc(handler.RecordMatchEvent)))

	mux.Handle("POST /v1/disputes/{disputeID}/vote", RequireAuth(verifier, http.HandlerFunc(handler.CastVote)))
}
