package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Zedster07/StreetBaller/internal/domain/match"
	qb "github.com/Zedster07/StreetBaller/internal/platform/querybuilder"
)

const matchColumns = "id, team1_id, team2_id, pitch_id, match_date, format, status, " +
	"team1_score, team2_score, team1_captain_approved, team2_captain_approved, " +
	"completed_at, score_invalidated_at, created_by_id, created_at, updated_at"

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) (match.Match, error) {
	query, args, err := qb.InsertInto("matches").
		Columns("id", "team1_id", "team2_id", "pitch_id", "match_date", "format",
			"status", "created_by_id", "created_at", "updated_at").
		Values(m.ID, m.Team1ID, m.Team2ID, nullString(m.PitchID), m.MatchDate, m.Format,
			m.Status, nullString(m.CreatedByID), m.CreatedAt, m.UpdatedAt).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return match.Match{}, fmt.Errorf("insert match: %w", err)
	}

	return m, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns).From("matches").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID string) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns).From("matches").
		Where(qb.Expr("(team1_id = ? OR team2_id = ?)", teamID, teamID)).
		OrderBy("match_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches by team query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches by team: %w", err)
	}

	return matchRowsToDomain(rows), nil
}

func (r *MatchRepository) ListUpcoming(ctx context.Context, from time.Time) ([]match.Match, error) {
	query, args, err := qb.Select(matchColumns).From("matches").
		Where(
			qb.Eq("status", match.StatusScheduled),
			qb.Expr("match_date >= ?", from),
		).
		OrderBy("match_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select upcoming matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select upcoming matches: %w", err)
	}

	return matchRowsToDomain(rows), nil
}

func (r *MatchRepository) RecordScore(ctx context.Context, matchID string, update match.ScoreUpdate) (match.Match, error) {
	query, args, err := qb.Update("matches").
		Set("team1_score", update.Team1Score).
		Set("team2_score", update.Team2Score).
		Set("team1_captain_approved", false).
		Set("team2_captain_approved", false).
		Set("score_invalidated_at", nil).
		Set("status", match.StatusPendingConfirmation).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", matchID)).
		Suffix("RETURNING " + matchColumns).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build record score query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, fmt.Errorf("match %s not found", matchID)
		}
		return match.Match{}, fmt.Errorf("record score: %w", err)
	}

	return row.toDomain(), nil
}

// Approve flips one side's approval and completes the match in the same
// statement when the other side has already approved. Running it as a single
// UPDATE keeps two concurrent captain approvals from losing the completion.
func (r *MatchRepository) Approve(ctx context.Context, matchID, teamID string, completedAt time.Time) (match.Match, error) {
	const query = `
UPDATE matches SET
	team1_captain_approved = team1_captain_approved OR (team1_id = $2),
	team2_captain_approved = team2_captain_approved OR (team2_id = $2),
	status = CASE
		WHEN (team1_captain_approved OR (team1_id = $2)) AND (team2_captain_approved OR (team2_id = $2))
		THEN 'completed' ELSE status END,
	completed_at = CASE
		WHEN (team1_captain_approved OR (team1_id = $2)) AND (team2_captain_approved OR (team2_id = $2))
		THEN $3 ELSE completed_at END,
	updated_at = NOW()
WHERE id = $1
RETURNING ` + matchColumns

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, matchID, teamID, completedAt); err != nil {
		if isNotFound(err) {
			return match.Match{}, fmt.Errorf("match %s not found", matchID)
		}
		return match.Match{}, fmt.Errorf("approve match score: %w", err)
	}

	return row.toDomain(), nil
}

func (r *MatchRepository) SetStatus(ctx context.Context, matchID, status string) (match.Match, error) {
	query, args, err := qb.Update("matches").
		Set("status", status).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", matchID)).
		Suffix("RETURNING " + matchColumns).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build set match status query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, fmt.Errorf("match %s not found", matchID)
		}
		return match.Match{}, fmt.Errorf("set match status: %w", err)
	}

	return row.toDomain(), nil
}

func (r *MatchRepository) CompleteFromDispute(ctx context.Context, matchID string, completedAt time.Time) (match.Match, error) {
	query, args, err := qb.Update("matches").
		Set("status", match.StatusCompleted).
		Set("completed_at", completedAt).
		Set("team1_captain_approved", true).
		Set("team2_captain_approved", true).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", matchID)).
		Suffix("RETURNING " + matchColumns).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build complete match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, fmt.Errorf("match %s not found", matchID)
		}
		return match.Match{}, fmt.Errorf("complete match from dispute: %w", err)
	}

	return row.toDomain(), nil
}

func (r *MatchRepository) InvalidateScore(ctx context.Context, matchID string, invalidatedAt time.Time) (match.Match, error) {
	query, args, err := qb.Update("matches").
		Set("status", match.StatusPendingConfirmation).
		Set("score_invalidated_at", invalidatedAt).
		Set("team1_captain_approved", false).
		Set("team2_captain_approved", false).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", matchID)).
		Suffix("RETURNING " + matchColumns).
		ToSQL()
	if err != nil {
		return match.Match{}, fmt.Errorf("build invalidate score query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, fmt.Errorf("match %s not found", matchID)
		}
		return match.Match{}, fmt.Errorf("invalidate match score: %w", err)
	}

	return row.toDomain(), nil
}

func (r *MatchRepository) AddParticipants(ctx context.Context, participants []match.Participation) error {
	if len(participants) == 0 {
		return nil
	}

	builder := qb.InsertInto("match_participants").
		Columns("match_id", "player_id", "team_id").
		Suffix("ON CONFLICT (match_id, player_id) DO NOTHING")
	for _, p := range participants {
		builder = builder.Values(p.MatchID, p.PlayerID, p.TeamID)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert participants query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match participants: %w", err)
	}

	return nil
}

func (r *MatchRepository) ListParticipants(ctx context.Context, matchID string) ([]match.Participation, error) {
	query, args, err := qb.Select("match_id", "player_id", "team_id").
		From("match_participants").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participants query: %w", err)
	}

	var rows []struct {
		MatchID  string `db:"match_id"`
		PlayerID string `db:"player_id"`
		TeamID   string `db:"team_id"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match participants: %w", err)
	}

	out := make([]match.Participation, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Participation{MatchID: row.MatchID, PlayerID: row.PlayerID, TeamID: row.TeamID})
	}

	return out, nil
}

func matchRowsToDomain(rows []matchTableModel) []match.Match {
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out
}
