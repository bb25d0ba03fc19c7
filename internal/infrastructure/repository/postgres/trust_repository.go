package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Zedster07/StreetBaller/internal/domain/trust"
	qb "github.com/Zedster07/StreetBaller/internal/platform/querybuilder"
)

type trustTransactionTableModel struct {
	ID               string         `db:"id"`
	PlayerID         string         `db:"player_id"`
	Type             string         `db:"type"`
	Points           int            `db:"points"`
	Balance          int            `db:"balance"`
	Reason           string         `db:"reason"`
	RelatedMatchID   sql.NullString `db:"related_match_id"`
	RelatedDisputeID sql.NullString `db:"related_dispute_id"`
	CreatedAt        time.Time      `db:"created_at"`
}

func (row trustTransactionTableModel) toDomain() trust.Transaction {
	return trust.Transaction{
		ID:               row.ID,
		PlayerID:         row.PlayerID,
		Type:             row.Type,
		Points:           row.Points,
		Balance:          row.Balance,
		Reason:           row.Reason,
		RelatedMatchID:   row.RelatedMatchID.String,
		RelatedDisputeID: row.RelatedDisputeID.String,
		CreatedAt:        row.CreatedAt,
	}
}

type TrustRepository struct {
	db *sqlx.DB
}

func NewTrustRepository(db *sqlx.DB) *TrustRepository {
	return &TrustRepository{db: db}
}

// Append clamps the profile balance and writes the ledger entry inside one
// transaction, so the denormalized balance can never drift from the ledger.
func (r *TrustRepository) Append(ctx context.Context, item trust.Transaction) (trust.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return trust.Transaction{}, fmt.Errorf("begin trust append tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const balanceQuery = `
UPDATE player_profiles
SET trust_points = GREATEST(0, trust_points + $2), updated_at = NOW()
WHERE user_id = $1
RETURNING trust_points`

	var balance int
	if err := tx.GetContext(ctx, &balance, balanceQuery, item.PlayerID, item.Points); err != nil {
		if isNotFound(err) {
			return trust.Transaction{}, fmt.Errorf("player profile %s not found", item.PlayerID)
		}
		return trust.Transaction{}, fmt.Errorf("update trust balance: %w", err)
	}
	item.Balance = balance

	query, args, err := qb.InsertInto("trust_transactions").
		Columns("id", "player_id", "type", "points", "balance", "reason",
			"related_match_id", "related_dispute_id", "created_at").
		Values(item.ID, item.PlayerID, item.Type, item.Points, item.Balance, item.Reason,
			nullString(item.RelatedMatchID), nullString(item.RelatedDisputeID), item.CreatedAt).
		ToSQL()
	if err != nil {
		return trust.Transaction{}, fmt.Errorf("build insert trust transaction query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return trust.Transaction{}, fmt.Errorf("insert trust transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return trust.Transaction{}, fmt.Errorf("commit trust append tx: %w", err)
	}

	return item, nil
}

func (r *TrustRepository) ListByPlayer(ctx context.Context, playerID string, limit, offset int) ([]trust.Transaction, int, error) {
	var total int
	countQuery, countArgs, err := qb.Select("COUNT(1)").From("trust_transactions").
		Where(qb.Eq("player_id", playerID)).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count trust transactions query: %w", err)
	}
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count trust transactions: %w", err)
	}

	builder := qb.Select("id", "player_id", "type", "points", "balance", "reason",
		"related_match_id", "related_dispute_id", "created_at").
		From("trust_transactions").
		Where(qb.Eq("player_id", playerID)).
		OrderBy("created_at DESC, id DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build select trust transactions query: %w", err)
	}
	if offset > 0 {
		query = fmt.Sprintf("%s OFFSET %d", query, offset)
	}

	var rows []trustTransactionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("select trust transactions: %w", err)
	}

	out := make([]trust.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, total, nil
}

func (r *TrustRepository) Leaderboard(ctx context.Context, limit, offset int) ([]trust.LeaderboardEntry, error) {
	builder := qb.Select("user_id", "display_name", "trust_points", "games_played",
		"wins", "goals_scored", "assists").
		From("player_profiles").
		OrderBy("trust_points DESC, user_id")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build trust leaderboard query: %w", err)
	}
	if offset > 0 {
		query = fmt.Sprintf("%s OFFSET %d", query, offset)
	}

	var rows []struct {
		UserID      string `db:"user_id"`
		DisplayName string `db:"display_name"`
		TrustPoints int    `db:"trust_points"`
		GamesPlayed int    `db:"games_played"`
		Wins        int    `db:"wins"`
		GoalsScored int    `db:"goals_scored"`
		Assists     int    `db:"assists"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select trust leaderboard: %w", err)
	}

	out := make([]trust.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, trust.LeaderboardEntry{
			PlayerID:    row.UserID,
			DisplayName: row.DisplayName,
			TrustPoints: row.TrustPoints,
			GamesPlayed: row.GamesPlayed,
			Wins:        row.Wins,
			Goals:       row.GoalsScored,
			Assists:     row.Assists,
		})
	}

	return out, nil
}
