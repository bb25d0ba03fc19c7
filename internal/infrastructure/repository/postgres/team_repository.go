package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Zedster07/StreetBaller/internal/domain/team"
	qb "github.com/Zedster07/StreetBaller/internal/platform/querybuilder"
)

type teamTableModel struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedByID string         `db:"created_by_id"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (row teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description.String,
		CreatedByID: row.CreatedByID,
		CreatedAt:   row.CreatedAt,
	}
}

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) (team.Team, error) {
	query, args, err := qb.InsertInto("teams").
		Columns("id", "name", "description", "created_by_id", "created_at").
		Values(t.ID, t.Name, nullString(t.Description), t.CreatedByID, t.CreatedAt).
		ToSQL()
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "teams_name_key") {
			return team.Team{}, fmt.Errorf("team name %q already taken", t.Name)
		}
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}

	return t, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("id", "name", "description", "created_by_id", "created_at").
		From("teams").
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("id", "name", "description", "created_by_id", "created_at").
		From("teams").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *TeamRepository) AddMember(ctx context.Context, m team.Membership) error {
	query, args, err := qb.InsertInto("team_members").
		Columns("team_id", "user_id", "role", "joined_at").
		Values(m.TeamID, m.UserID, m.Role, m.JoinedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert team member query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "team_members_pkey") {
			return fmt.Errorf("user %s is already on team %s", m.UserID, m.TeamID)
		}
		return fmt.Errorf("insert team member: %w", err)
	}

	return nil
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID string) error {
	const query = `DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, teamID, userID)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete team member rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %s is not on team %s", userID, teamID)
	}

	return nil
}

func (r *TeamRepository) ListMembers(ctx context.Context, teamID string) ([]team.Membership, error) {
	query, args, err := qb.Select("team_id", "user_id", "role", "joined_at").
		From("team_members").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("joined_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team members query: %w", err)
	}

	var rows []struct {
		TeamID   string    `db:"team_id"`
		UserID   string    `db:"user_id"`
		Role     string    `db:"role"`
		JoinedAt time.Time `db:"joined_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team members: %w", err)
	}

	out := make([]team.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Membership{
			TeamID:   row.TeamID,
			UserID:   row.UserID,
			Role:     row.Role,
			JoinedAt: row.JoinedAt,
		})
	}

	return out, nil
}
