package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"institute-api/internal/model"
)

type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// Get returns the stored settings row for a user. A missing row is reported
// as ErrUserNotFound so the service can run its get-or-initialize path.
func (r *SettingsRepository) Get(ctx context.Context, userID string) (model.UserSettings, error) {
	var settings model.UserSettings
	var dataJSON []byte

	err := r.pool.QueryRow(ctx,
		`SELECT user_id, data, created_at, updated_at FROM user_settings WHERE user_id = $1`,
		userID).Scan(&settings.UserID, &dataJSON, &settings.CreatedAt, &settings.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.UserSettings{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.UserSettings{}, fmt.Errorf("get user settings: %w", err)
	}

	if len(dataJSON) > 0 {
		if jsonErr := json.Unmarshal(dataJSON, &settings.Data); jsonErr != nil {
			return model.UserSettings{}, fmt.Errorf("unmarshal settings data: %w", jsonErr)
		}
	}
	return settings, nil
}

// Upsert writes the full settings blob for a user, creating the row when
// missing.
func (r *SettingsRepository) Upsert(ctx context.Context, userID string, data map[string]any) (model.UserSettings, error) {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return model.UserSettings{}, fmt.Errorf("marshal settings data: %w", err)
	}

	now := time.Now().UTC()
	var settings model.UserSettings
	err = r.pool.QueryRow(ctx,
		`INSERT INTO user_settings (user_id, data, created_at, updated_at)
		 VALUES ($1, $2, $3, $3)
		 ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
		 RETURNING user_id, created_at, updated_at`,
		userID, dataJSON, now).
		Scan(&settings.UserID, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		return model.UserSettings{}, fmt.Errorf("upsert user settings: %w", err)
	}

	settings.Data = data
	return settings, nil
}
