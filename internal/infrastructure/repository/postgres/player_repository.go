package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Zedster07/StreetBaller/internal/domain/player"
	qb "github.com/Zedster07/StreetBaller/internal/platform/querybuilder"
)

const playerProfileColumns = "user_id, display_name, position, photo_url, trust_points, " +
	"skill_coins, games_played, wins, losses, draws, goals_scored, assists, own_goals, " +
	"cards, created_at, updated_at"

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Upsert writes the editable identity fields only; lifetime counters and the
// trust balance are owned by their own write paths.
func (r *PlayerRepository) Upsert(ctx context.Context, p player.Profile) (player.Profile, error) {
	query, args, err := qb.InsertInto("player_profiles").
		Columns("user_id", "display_name", "position", "photo_url").
		Values(p.UserID, p.DisplayName, nullString(string(p.Position)), nullString(p.PhotoURL)).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
display_name = EXCLUDED.display_name,
position = EXCLUDED.position,
photo_url = EXCLUDED.photo_url,
updated_at = NOW()
RETURNING ` + playerProfileColumns).
		ToSQL()
	if err != nil {
		return player.Profile{}, fmt.Errorf("build upsert player profile query: %w", err)
	}

	var row playerProfileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return player.Profile{}, fmt.Errorf("upsert player profile: %w", err)
	}

	return row.toDomain(), nil
}

func (r *PlayerRepository) GetByUserID(ctx context.Context, userID string) (player.Profile, bool, error) {
	query, args, err := qb.Select(playerProfileColumns).From("player_profiles").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return player.Profile{}, false, fmt.Errorf("build select player profile query: %w", err)
	}

	var row playerProfileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Profile{}, false, nil
		}
		return player.Profile{}, false, fmt.Errorf("select player profile: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) IncrementStats(ctx context.Context, userID string, delta player.StatDelta) error {
	query, args, err := qb.Update("player_profiles").
		SetExpr("goals_scored", "goals_scored + ?", delta.GoalsScored).
		SetExpr("assists", "assists + ?", delta.Assists).
		SetExpr("own_goals", "own_goals + ?", delta.OwnGoals).
		SetExpr("cards", "cards + ?", delta.Cards).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build increment player stats query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("increment player stats: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment player stats rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("player profile %s not found", userID)
	}

	return nil
}

func (r *PlayerRepository) TopByGoals(ctx context.Context, limit, offset int) ([]player.Profile, error) {
	return r.topBy(ctx, "goals_scored DESC, user_id", limit, offset)
}

func (r *PlayerRepository) TopByAssists(ctx context.Context, limit, offset int) ([]player.Profile, error) {
	return r.topBy(ctx, "assists DESC, user_id", limit, offset)
}

func (r *PlayerRepository) TopByWins(ctx context.Context, limit, offset int) ([]player.Profile, error) {
	return r.topBy(ctx, "wins DESC, user_id", limit, offset)
}

func (r *PlayerRepository) topBy(ctx context.Context, order string, limit, offset int) ([]player.Profile, error) {
	builder := qb.Select(playerProfileColumns).From("player_profiles").OrderBy(order)
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build ranked player profiles query: %w", err)
	}
	if offset > 0 {
		query = fmt.Sprintf("%s OFFSET %d", query, offset)
	}

	var rows []playerProfileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select ranked player profiles: %w", err)
	}

	out := make([]player.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
