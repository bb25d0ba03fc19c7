package memory

import (
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/player"
	"github.com/Zedster07/StreetBaller/internal/domain/team"
	"github.com/Zedster07/StreetBaller/internal/domain/user"
)

// Demo fixtures for running the API without Postgres.
const (
	TeamIDConcreteKings = "team-concrete-kings"
	TeamIDAsphaltUnited = "team-asphalt-united"
)

func SeedUsers() []user.User {
	created := time.Date(2026, time.January, 10, 9, 0, 0, 0, time.UTC)

	return []user.User{
		{ID: "user-rio", Email: "rio@streetballer.dev", IdentityUID: "uid-rio", CreatedAt: created},
		{ID: "user-dani", Email: "dani@streetballer.dev", IdentityUID: "uid-dani", CreatedAt: created},
		{ID: "user-kofi", Email: "kofi@streetballer.dev", IdentityUID: "uid-kofi", CreatedAt: created},
		{ID: "user-mira", Email: "mira@streetballer.dev", IdentityUID: "uid-mira", CreatedAt: created},
	}
}

func SeedPlayers() []player.Profile {
	return []player.Profile{
		{UserID: "user-rio", DisplayName: "Rio", Position: player.PositionStriker, TrustPoints: 140, GamesPlayed: 12, Wins: 7, Losses: 3, Draws: 2, GoalsScored: 15, Assists: 4},
		{UserID: "user-dani", DisplayName: "Dani", Position: player.PositionGoalkeeper, TrustPoints: 120, GamesPlayed: 10, Wins: 5, Losses: 4, Draws: 1, GoalsScored: 0, Assists: 1},
		{UserID: "user-kofi", DisplayName: "Kofi", Position: player.PositionCenterMid, TrustPoints: 155, GamesPlayed: 14, Wins: 9, Losses: 4, Draws: 1, GoalsScored: 6, Assists: 11},
		{UserID: "user-mira", DisplayName: "Mira", Position: player.PositionLeftWing, TrustPoints: 110, GamesPlayed: 8, Wins: 3, Losses: 4, Draws: 1, GoalsScored: 5, Assists: 3},
	}
}

func SeedTeams() []team.Team {
	created := time.Date(2026, time.January, 12, 18, 30, 0, 0, time.UTC)

	return []team.Team{
		{ID: TeamIDConcreteKings, Name: "Concrete Kings", Description: "Southside five-a-side crew", CreatedByID: "user-rio", CreatedAt: created},
		{ID: TeamIDAsphaltUnited, Name: "Asphalt United", Description: "Eastside regulars", CreatedByID: "user-kofi", CreatedAt: created},
	}
}
