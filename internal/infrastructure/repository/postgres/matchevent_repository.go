package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Zedster07/StreetBaller/internal/domain/matchevent"
	qb "github.com/Zedster07/StreetBaller/internal/platform/querybuilder"
)

const matchEventColumns = "id, match_id, team_id, scorer_id, assister_id, event_type, " +
	"minute, second, created_at"

type matchEventTableModel struct {
	ID         string         `db:"id"`
	MatchID    string         `db:"match_id"`
	TeamID     sql.NullString `db:"team_id"`
	ScorerID   string         `db:"scorer_id"`
	AssisterID sql.NullString `db:"assister_id"`
	EventType  string         `db:"event_type"`
	Minute     int            `db:"minute"`
	Second     int            `db:"second"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (row matchEventTableModel) toDomain() matchevent.Event {
	return matchevent.Event{
		ID:         row.ID,
		MatchID:    row.MatchID,
		TeamID:     row.TeamID.String,
		ScorerID:   row.ScorerID,
		AssisterID: row.AssisterID.String,
		Type:       row.EventType,
		Minute:     row.Minute,
		Second:     row.Second,
		CreatedAt:  row.CreatedAt,
	}
}

type MatchEventRepository struct {
	db *sqlx.DB
}

func NewMatchEventRepository(db *sqlx.DB) *MatchEventRepository {
	return &MatchEventRepository{db: db}
}

func (r *MatchEventRepository) Insert(ctx context.Context, event matchevent.Event) (matchevent.Event, error) {
	query, args, err := qb.InsertInto("match_events").
		Columns("id", "match_id", "team_id", "scorer_id", "assister_id",
			"event_type", "minute", "second", "created_at").
		Values(event.ID, event.MatchID, nullString(event.TeamID), event.ScorerID,
			nullString(event.AssisterID), event.Type, event.Minute, event.Second, event.CreatedAt).
		ToSQL()
	if err != nil {
		return matchevent.Event{}, fmt.Errorf("build insert match event query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return matchevent.Event{}, fmt.Errorf("insert match event: %w", err)
	}

	return event, nil
}

func (r *MatchEventRepository) ListByMatch(ctx context.Context, matchID string, limit, offset int) ([]matchevent.Event, int, error) {
	return r.list(ctx, qb.Eq("match_id", matchID), limit, offset)
}

func (r *MatchEventRepository) ListByPlayer(ctx context.Context, playerID string, limit, offset int) ([]matchevent.Event, int, error) {
	return r.list(ctx, qb.Expr("(scorer_id = ? OR assister_id = ?)", playerID, playerID), limit, offset)
}

func (r *MatchEventRepository) ListByMatchAndPlayer(ctx context.Context, matchID, playerID string) ([]matchevent.Event, error) {
	events, _, err := r.list(ctx,
		qb.Expr("match_id = ? AND (scorer_id = ? OR assister_id = ?)", matchID, playerID, playerID), 0, 0)

	return events, err
}

func (r *MatchEventRepository) list(ctx context.Context, condition qb.Condition, limit, offset int) ([]matchevent.Event, int, error) {
	countQuery, countArgs, err := qb.Select("COUNT(1)").From("match_events").
		Where(condition).
		ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build count match events query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("count match events: %w", err)
	}

	builder := qb.Select(matchEventColumns).From("match_events").
		Where(condition).
		OrderBy("created_at", "id")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, 0, fmt.Errorf("build select match events query: %w", err)
	}
	if offset > 0 {
		query = fmt.Sprintf("%s OFFSET %d", query, offset)
	}

	var rows []matchEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("select match events: %w", err)
	}

	out := make([]matchevent.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, total, nil
}
