package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Zedster07/StreetBaller/internal/domain/dispute"
	qb "github.com/Zedster07/StreetBaller/internal/platform/querybuilder"
)

const disputeColumns = "id, match_id, disputing_team_id, defending_team_id, reason, " +
	"status, winning_team_id, resolved_at, created_at"

type DisputeRepository struct {
	db *sqlx.DB
}

func NewDisputeRepository(db *sqlx.DB) *DisputeRepository {
	return &DisputeRepository{db: db}
}

// Create relies on the partial unique index over open disputes so that two
// concurrent rejections insert at most one case.
func (r *DisputeRepository) Create(ctx context.Context, d dispute.Dispute) (dispute.Dispute, error) {
	query, args, err := qb.InsertInto("disputes").
		Columns("id", "match_id", "disputing_team_id", "defending_team_id",
			"reason", "status", "created_at").
		Values(d.ID, d.MatchID, d.DisputingTeamID, d.DefendingTeamID,
			d.Reason, d.Status, d.CreatedAt).
		ToSQL()
	if err != nil {
		return dispute.Dispute{}, fmt.Errorf("build insert dispute query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "disputes_one_open_per_match") {
			return dispute.Dispute{}, dispute.ErrOpenDisputeExists
		}
		return dispute.Dispute{}, fmt.Errorf("insert dispute: %w", err)
	}

	return d, nil
}

func (r *DisputeRepository) GetByID(ctx context.Context, id string) (dispute.Dispute, bool, error) {
	query, args, err := qb.Select(disputeColumns).From("disputes").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return dispute.Dispute{}, false, fmt.Errorf("build select dispute query: %w", err)
	}

	var row disputeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return dispute.Dispute{}, false, nil
		}
		return dispute.Dispute{}, false, fmt.Errorf("select dispute: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *DisputeRepository) ListOpen(ctx context.Context) ([]dispute.Dispute, error) {
	query, args, err := qb.Select(disputeColumns).From("disputes").
		Where(qb.Eq("status", dispute.StatusOpen)).
		OrderBy("created_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select open disputes query: %w", err)
	}

	var rows []disputeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select open disputes: %w", err)
	}

	out := make([]dispute.Dispute, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *DisputeRepository) InsertVote(ctx context.Context, v dispute.Vote) (dispute.Vote, error) {
	query, args, err := qb.InsertInto("dispute_votes").
		Columns("id", "dispute_id", "voter_id", "vote_for_team_id", "created_at").
		Values(v.ID, v.DisputeID, v.VoterID, v.VoteForTeamID, v.CreatedAt).
		ToSQL()
	if err != nil {
		return dispute.Vote{}, fmt.Errorf("build insert vote query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "dispute_votes_one_per_voter") {
			return dispute.Vote{}, dispute.ErrVoteExists
		}
		return dispute.Vote{}, fmt.Errorf("insert dispute vote: %w", err)
	}

	return v, nil
}

func (r *DisputeRepository) ListVotes(ctx context.Context, disputeID string) ([]dispute.Vote, error) {
	query, args, err := qb.Select("id", "dispute_id", "voter_id", "vote_for_team_id", "created_at").
		From("dispute_votes").
		Where(qb.Eq("dispute_id", disputeID)).
		OrderBy("created_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select votes query: %w", err)
	}

	var rows []disputeVoteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select dispute votes: %w", err)
	}

	out := make([]dispute.Vote, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// Resolve is a conditional open-to-resolved flip. The WHERE clause guards
// the status, so exactly one of any concurrent callers gets a row back.
func (r *DisputeRepository) Resolve(ctx context.Context, disputeID, winningTeamID string, resolvedAt time.Time) (bool, error) {
	query, args, err := qb.Update("disputes").
		Set("status", dispute.StatusResolved).
		Set("winning_team_id", winningTeamID).
		Set("resolved_at", resolvedAt).
		Where(
			qb.Eq("id", disputeID),
			qb.Eq("status", dispute.StatusOpen),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build resolve dispute query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("resolve dispute: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("resolve dispute rows affected: %w", err)
	}

	return affected == 1, nil
}
