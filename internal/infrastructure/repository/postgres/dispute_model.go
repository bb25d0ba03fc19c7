package postgres

import (
	"database/sql"
	"time"

	"github.com/Zedster07/StreetBaller/internal/domain/dispute"
)

type disputeTableModel struct {
	ID              string         `db:"id"`
	MatchID         string         `db:"match_id"`
	DisputingTeamID string         `db:"disputing_team_id"`
	DefendingTeamID string         `db:"defending_team_id"`
	Reason          string         `db:"reason"`
	Status          string         `db:"status"`
	WinningTeamID   sql.NullString `db:"winning_team_id"`
	ResolvedAt      *time.Time     `db:"resolved_at"`
	CreatedAt       time.Time      `db:"created_at"`
}

func (row disputeTableModel) toDomain() dispute.Dispute {
	return dispute.Dispute{
		ID:              row.ID,
		MatchID:         row.MatchID,
		DisputingTeamID: row.DisputingTeamID,
		DefendingTeamID: row.DefendingTeamID,
		Reason:          row.Reason,
		Status:          row.Status,
		WinningTeamID:   row.WinningTeamID.String,
		ResolvedAt:      row.ResolvedAt,
		CreatedAt:       row.CreatedAt,
	}
}

type disputeVoteTableModel struct {
	ID            string    `db:"id"`
	DisputeID     string    `db:"dispute_id"`
	VoterID       string    `db:"voter_id"`
	VoteForTeamID string    `db:"vote_for_team_id"`
	CreatedAt     time.Time `db:"created_at"`
}

func (row disputeVoteTableModel) toDomain() dispute.Vote {
	return dispute.Vote{
		ID:            row.ID,
		DisputeID:     row.DisputeID,
		VoterID:       row.VoterID,
		VoteForTeamID: row.VoteForTeamID,
		CreatedAt:     row.CreatedAt,
	}
}
