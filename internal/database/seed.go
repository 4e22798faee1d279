package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the initial admin account when no admin exists yet.
// An empty password leaves the database untouched so a fresh install without
// ADMIN_PASSWORD fails loudly at first login instead of shipping a default
// credential.
func (db *DB) SeedAdmin(ctx context.Context, username string, password string) error {
	var count int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE role = 'admin'`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	if password == "" {
		slog.Warn("no admin account exists and ADMIN_PASSWORD is not set; skipping admin seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, 'admin', $4, $4)`,
		uuid.NewString(), username, string(hash), now)
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	slog.Info("created initial admin user", "username", username)
	return nil
}
