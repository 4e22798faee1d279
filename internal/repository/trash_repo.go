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

type TrashRepository struct {
	pool *pgxpool.Pool
}

func NewTrashRepository(pool *pgxpool.Pool) *TrashRepository {
	return &TrashRepository{pool: pool}
}

func (r *TrashRepository) Create(ctx context.Context, entry model.TrashEntry) error {
	snapshotJSON, err := json.Marshal(entry.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	var ownerID *string
	if !entry.Owner.IsSystem() {
		ownerID = &entry.Owner.UserID
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO trash_entries
		 (id, owner_id, owner_name, entity_kind, original_id, snapshot, deleted_at, restorable)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, ownerID, entry.Owner.Username, entry.EntityKind,
		entry.OriginalID, snapshotJSON, entry.DeletedAt, entry.Restorable)
	if err != nil {
		return fmt.Errorf("create trash entry: %w", err)
	}
	return nil
}

func (r *TrashRepository) FindByID(ctx context.Context, id string) (model.TrashEntry, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, owner_id, owner_name, entity_kind, original_id, snapshot, deleted_at, restorable
		 FROM trash_entries
		 WHERE id = $1`, id)

	entry, err := scanTrashEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.TrashEntry{}, model.ErrTrashEntryNotFound
	}
	if err != nil {
		return model.TrashEntry{}, fmt.Errorf("find trash entry by id: %w", err)
	}
	return entry, nil
}

// ListFor returns the trash entries visible to the given owner, newest
// first. When includeSystem is set, entries with no owner (actions taken
// without an authenticated user) are included as well.
func (r *TrashRepository) ListFor(ctx context.Context, ownerID string, includeSystem bool) ([]model.TrashEntry, error) {
	query := `SELECT id, owner_id, owner_name, entity_kind, original_id, snapshot, deleted_at, restorable
	          FROM trash_entries
	          WHERE owner_id = $1`
	if includeSystem {
		query += ` OR owner_id IS NULL`
	}
	query += ` ORDER BY deleted_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list trash entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.TrashEntry, 0)
	for rows.Next() {
		entry, scanErr := scanTrashEntry(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan trash entry: %w", scanErr)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *TrashRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM trash_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete trash entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTrashEntryNotFound
	}
	return nil
}

func scanTrashEntry(row pgx.Row) (model.TrashEntry, error) {
	var entry model.TrashEntry
	var ownerID *string
	var snapshotJSON []byte
	var deletedAt time.Time

	err := row.Scan(&entry.ID, &ownerID, &entry.Owner.Username, &entry.EntityKind,
		&entry.OriginalID, &snapshotJSON, &deletedAt, &entry.Restorable)
	if err != nil {
		return model.TrashEntry{}, err
	}

	if ownerID != nil {
		entry.Owner.UserID = *ownerID
	}
	entry.DeletedAt = deletedAt.UTC().Format(time.RFC3339Nano)

	if len(snapshotJSON) > 0 {
		if jsonErr := json.Unmarshal(snapshotJSON, &entry.Snapshot); jsonErr != nil {
			return model.TrashEntry{}, fmt.Errorf("unmarshal snapshot: %w", jsonErr)
		}
	}
	return entry, nil
}
