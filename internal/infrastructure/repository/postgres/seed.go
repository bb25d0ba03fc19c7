package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Zedster07/StreetBaller/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo users, profiles and teams into an empty
// database so a fresh install has something to play with.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM users`); err != nil {
		return fmt.Errorf("count users for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, u := range memory.SeedUsers() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO users (id, email, identity_uid, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING`, u.ID, u.Email, u.IdentityUID, u.CreatedAt); err != nil {
			return fmt.Errorf("seed user %s: %w", u.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO player_profiles (user_id, display_name, position, trust_points,
	games_played, wins, losses, draws, goals_scored, assists)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (user_id) DO NOTHING`,
			p.UserID, p.DisplayName, string(p.Position), p.TrustPoints,
			p.GamesPlayed, p.Wins, p.Losses, p.Draws, p.GoalsScored, p.Assists); err != nil {
			return fmt.Errorf("seed player profile %s: %w", p.UserID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO teams (id, name, description, created_by_id, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`, t.ID, t.Name, t.Description, t.CreatedByID, t.CreatedAt); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO team_members (team_id, user_id, role, joined_at)
VALUES ($1, $2, 'captain', $3)
ON CONFLICT (team_id, user_id) DO NOTHING`, t.ID, t.CreatedByID, t.CreatedAt); err != nil {
			return fmt.Errorf("seed team captain %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
