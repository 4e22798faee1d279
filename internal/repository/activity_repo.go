package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"institute-api/internal/model"
)

type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) Insert(ctx context.Context, entry model.ActivityEntry) error {
	var metadataJSON []byte
	var err error
	if entry.Metadata != nil {
		metadataJSON, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("marshal activity metadata: %w", err)
		}
	}

	var actorID *string
	if !entry.Actor.IsSystem() {
		actorID = &entry.Actor.UserID
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO activity_entries
		 (id, actor_id, actor_name, actor_role, kind, description, target_kind, target_id, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, actorID, entry.Actor.Username, entry.Actor.Role, entry.Kind,
		entry.Description, entry.TargetKind, entry.TargetID, metadataJSON, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity entry: %w", err)
	}
	return nil
}

// List returns the most recent entries across all actors, newest first.
func (r *ActivityRepository) List(ctx context.Context, limit int) ([]model.ActivityEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, actor_id, actor_name, actor_role, kind, description, target_kind, target_id, metadata, created_at
		 FROM activity_entries
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity entries: %w", err)
	}
	defer rows.Close()

	return collectActivityEntries(rows)
}

// ListFor returns the most recent entries attributed to one actor, newest first.
func (r *ActivityRepository) ListFor(ctx context.Context, actorID string, limit int) ([]model.ActivityEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, actor_id, actor_name, actor_role, kind, description, target_kind, target_id, metadata, created_at
		 FROM activity_entries
		 WHERE actor_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, actorID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity entries for actor: %w", err)
	}
	defer rows.Close()

	return collectActivityEntries(rows)
}

func collectActivityEntries(rows pgx.Rows) ([]model.ActivityEntry, error) {
	entries := make([]model.ActivityEntry, 0)
	for rows.Next() {
		var e model.ActivityEntry
		var actorID *string
		var metadataJSON []byte
		var createdAt time.Time

		if err := rows.Scan(&e.ID, &actorID, &e.Actor.Username, &e.Actor.Role, &e.Kind,
			&e.Description, &e.TargetKind, &e.TargetID, &metadataJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}

		if actorID != nil {
			e.Actor.UserID = *actorID
		}
		e.CreatedAt = createdAt.UTC().Format(time.RFC3339Nano)

		if len(metadataJSON) > 0 {
			var metadata map[string]any
			if jsonErr := json.Unmarshal(metadataJSON, &metadata); jsonErr == nil {
				e.Metadata = metadata
			}
		}

		entries = append(entries, e)
	}
	return entries, rows.Err()
}
