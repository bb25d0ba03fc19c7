package postgres

import (
	"database/sql"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/match"
)

type matchTableModel struct {
	ID                   string         `db:"id"`
	Team1ID              string         `db:"team1_id"`
	Team2ID              string         `db:"team2_id"`
	PitchID              sql.NullString `db:"pitch_id"`
	MatchDate            time.Time      `db:"match_date"`
	Format               string         `db:"format"`
	Status               string         `db:"status"`
	Team1Score           sql.NullInt64  `db:"team1_score"`
	Team2Score           sql.NullInt64  `db:"team2_score"`
	Team1CaptainApproved bool           `db:"team1_captain_approved"`
	Team2CaptainApproved bool           `db:"team2_captain_approved"`
	CompletedAt          *time.Time     `db:"completed_at"`
	ScoreInvalidatedAt   *time.Time     `db:"score_invalidated_at"`
	CreatedByID          sql.NullString `db:"created_by_id"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

func (row matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:                   row.ID,
		Team1ID:              row.Team1ID,
		Team2ID:              row.Team2ID,
		PitchID:              row.PitchID.String,
		MatchDate:            row.MatchDate,
		Format:               row.Format,
		Status:               row.Status,
		Team1Score:           nullInt64ToIntPtr(row.Team1Score),
		Team2Score:           nullInt64ToIntPtr(row.Team2Score),
		Team1CaptainApproved: row.Team1CaptainApproved,
		Team2CaptainApproved: row.Team2CaptainApproved,
		CompletedAt:          row.CompletedAt,
		ScoreInvalidatedAt:   row.ScoreInvalidatedAt,
		CreatedByID:          row.CreatedByID.String,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	value := int(v.Int64)

	return &value
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
