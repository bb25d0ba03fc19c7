package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Zedster07/StreetBaller/internal/domain/user"
	qb "github.com/Zedster07/StreetBaller/internal/platform/querybuilder"
)

type userTableModel struct {
	ID          string    `db:"id"`
	Email       string    `db:"email"`
	IdentityUID string    `db:"identity_uid"`
	CreatedAt   time.Time `db:"created_at"`
}

func (row userTableModel) toDomain() user.User {
	return user.User{
		ID:          row.ID,
		Email:       row.Email,
		IdentityUID: row.IdentityUID,
		CreatedAt:   row.CreatedAt,
	}
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	query, args, err := qb.InsertInto("users").
		Columns("id", "email", "identity_uid", "created_at").
		Values(u.ID, u.Email, u.IdentityUID, u.CreatedAt).
		ToSQL()
	if err != nil {
		return user.User{}, fmt.Errorf("build insert user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, "") {
			return user.User{}, fmt.Errorf("user with same email or identity already exists")
		}
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}

	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, bool, error) {
	return r.getBy(ctx, qb.Eq("id", id))
}

func (r *UserRepository) GetByIdentityUID(ctx context.Context, uid string) (user.User, bool, error) {
	return r.getBy(ctx, qb.Eq("identity_uid", uid))
}

func (r *UserRepository) getBy(ctx context.Context, condition qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select("id", "email", "identity_uid", "created_at").
		From("users").
		Where(condition).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build select user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("select user: %w", err)
	}

	return row.toDomain(), true, nil
}
