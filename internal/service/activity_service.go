package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"institute-api/internal/model"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

type activityStore interface {
	Insert(ctx context.Context, entry model.ActivityEntry) error
	List(ctx context.Context, limit int) ([]model.ActivityEntry, error)
	ListFor(ctx context.Context, actorID string, limit int) ([]model.ActivityEntry, error)
}

// ActivityService maintains the append-only audit trail. Entries are never
// updated or removed once written.
type ActivityService struct {
	repo activityStore
}

func NewActivityService(repo activityStore) *ActivityService {
	return &ActivityService{repo: repo}
}

// Record appends one audit entry. Kinds outside the known set are stored
// verbatim so callers can read back exactly what was recorded; an empty kind
// becomes "other".
func (s *ActivityService) Record(ctx context.Context, actor model.Actor, kind model.ActivityKind, description string, targetKind model.EntityKind, targetID string, metadata map[string]any) (model.ActivityEntry, error) {
	if strings.TrimSpace(string(kind)) == "" {
		kind = model.ActivityOther
	}

	entry := model.ActivityEntry{
		ID:          uuid.NewString(),
		Actor:       actor,
		Kind:        kind,
		Description: description,
		TargetKind:  targetKind,
		TargetID:    targetID,
		Metadata:    metadata,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339Nano),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		return model.ActivityEntry{}, err
	}

	return entry, nil
}

// ListFor returns recent entries for the caller. Admins see the full trail,
// including entries attributed to the system; everyone else sees only their
// own actions.
func (s *ActivityService) ListFor(ctx context.Context, actor model.Actor, limit int) ([]model.ActivityEntry, error) {
	limit = clampActivityLimit(limit)
	if actor.Role == model.RoleAdmin {
		return s.repo.List(ctx, limit)
	}

	return s.repo.ListFor(ctx, actor.UserID, limit)
}

// Recent returns the newest entries across all actors.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]model.ActivityEntry, error) {
	return s.repo.List(ctx, clampActivityLimit(limit))
}

func clampActivityLimit(limit int) int {
	if limit <= 0 {
		return defaultActivityLimit
	}
	if limit > maxActivityLimit {
		return maxActivityLimit
	}

	return limit
}
