package postgres

import (
	"database/sql"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/player"
)

type playerProfileTableModel struct {
	UserID      string         `db:"user_id"`
	DisplayName string         `db:"display_name"`
	Position    sql.NullString `db:"position"`
	PhotoURL    sql.NullString `db:"photo_url"`
	TrustPoints int            `db:"trust_points"`
	SkillCoins  int            `db:"skill_coins"`
	GamesPlayed int            `db:"games_played"`
	Wins        int            `db:"wins"`
	Losses      int            `db:"losses"`
	Draws       int            `db:"draws"`
	GoalsScored int            `db:"goals_scored"`
	Assists     int            `db:"assists"`
	OwnGoals    int            `db:"own_goals"`
	Cards       int            `db:"cards"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (row playerProfileTableModel) toDomain() player.Profile {
	return player.Profile{
		UserID:      row.UserID,
		DisplayName: row.DisplayName,
		Position:    player.Position(row.Position.String),
		PhotoURL:    row.PhotoURL.String,
		TrustPoints: row.TrustPoints,
		SkillCoins:  row.SkillCoins,
		GamesPlayed: row.GamesPlayed,
		Wins:        row.Wins,
		Losses:      row.Losses,
		Draws:       row.Draws,
		GoalsScored: row.GoalsScored,
		Assists:     row.Assists,
		OwnGoals:    row.OwnGoals,
		Cards:       row.Cards,
	}
}
