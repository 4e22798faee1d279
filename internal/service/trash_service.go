package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"institute-api/internal/metrics"
	"institute-api/internal/model"
)

// deletePolicy decides what happens to the underlying row when an entity is
// sent to the trash.
type deletePolicy int

const (
	policySoft deletePolicy = iota // row is flagged deleted and can come back
	policyHard                     // row is removed; the snapshot is all that remains
)

// entityBin is the per-kind hook the trash bin drives. Soft-policy kinds
// toggle liveness through SetDeleted; hard-policy kinds only ever see
// Snapshot and HardDelete.
type entityBin interface {
	Snapshot(ctx context.Context, originalID string) (map[string]any, error)
	SetDeleted(ctx context.Context, originalID string, deleted bool) error
	HardDelete(ctx context.Context, originalID string) error
}

type trashStore interface {
	Create(ctx context.Context, entry model.TrashEntry) error
	FindByID(ctx context.Context, id string) (model.TrashEntry, error)
	ListFor(ctx context.Context, ownerID string, includeSystem bool) ([]model.TrashEntry, error)
	Delete(ctx context.Context, id string) error
}

type activityRecorder interface {
	Record(ctx context.Context, actor model.Actor, kind model.ActivityKind, description string, targetKind model.EntityKind, targetID string, metadata map[string]any) (model.ActivityEntry, error)
}

type studentLifecycle interface {
	FindByID(ctx context.Context, id int64) (model.Student, error)
	SetDeleted(ctx context.Context, id int64, deleted bool) error
	Delete(ctx context.Context, id int64) error
}

type employeeLifecycle interface {
	FindByID(ctx context.Context, id int64) (model.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type binding struct {
	bin    entityBin
	policy deletePolicy
}

// TrashService coordinates deletion, restoration and purging across the
// trash bin, the audit trail and the entity tables. The steps of each
// operation are separate writes on purpose: a failure partway through leaves
// the completed steps in place instead of rolling them back, and the trash
// snapshot remains the source of truth for what was deleted.
type TrashService struct {
	trash    trashStore
	activity activityRecorder
	bindings map[model.EntityKind]binding
}

func NewTrashService(trash trashStore, activity activityRecorder, students studentLifecycle, employees employeeLifecycle) *TrashService {
	return &TrashService{
		trash:    trash,
		activity: activity,
		bindings: map[model.EntityKind]binding{
			model.KindStudent:  {bin: studentBin{repo: students}, policy: policySoft},
			model.KindEmployee: {bin: employeeBin{repo: employees}, policy: policyHard},
		},
	}
}

// Delete sends one entity to the trash: snapshot, persist the trash entry,
// record the audit entry, then apply the kind's deletion policy to the row.
func (s *TrashService) Delete(ctx context.Context, kind model.EntityKind, originalID string, actor model.Actor) (model.TrashEntry, error) {
	b, ok := s.bindings[kind]
	if !ok {
		return model.TrashEntry{}, fmt.Errorf("%w: entity kind %q cannot be trashed", model.ErrInvalidInput, kind)
	}

	snapshot, err := b.bin.Snapshot(ctx, originalID)
	if err != nil {
		return model.TrashEntry{}, err
	}

	entry := model.TrashEntry{
		ID:         uuid.NewString(),
		Owner:      actor,
		EntityKind: kind,
		OriginalID: originalID,
		Snapshot:   snapshot,
		DeletedAt:  time.Now().UTC().Format(time.RFC3339Nano),
		Restorable: b.policy == policySoft,
	}

	if err := s.trash.Create(ctx, entry); err != nil {
		return model.TrashEntry{}, err
	}

	description := fmt.Sprintf("moved %s %s to trash", kind, originalID)
	if _, err := s.activity.Record(ctx, actor, model.ActivityDelete, description, kind, originalID, snapshot); err != nil {
		return model.TrashEntry{}, err
	}

	if b.policy == policySoft {
		err = b.bin.SetDeleted(ctx, originalID, true)
	} else {
		err = b.bin.HardDelete(ctx, originalID)
	}
	if err != nil {
		return model.TrashEntry{}, err
	}

	metrics.IncTrashOperation("delete")
	return entry, nil
}

// Restore brings a soft-deleted entity back to life. The trash entry itself
// survives the restore; it only disappears when purged. Restoring an entry
// whose row is already live reports not found, which is what makes a second
// restore of the same entry fail.
func (s *TrashService) Restore(ctx context.Context, trashID string, actor model.Actor) (model.TrashEntry, error) {
	entry, err := s.trash.FindByID(ctx, trashID)
	if err != nil {
		return model.TrashEntry{}, err
	}

	if !entry.Restorable {
		return model.TrashEntry{}, model.ErrNotRestorable
	}

	b, ok := s.bindings[entry.EntityKind]
	if !ok {
		return model.TrashEntry{}, fmt.Errorf("%w: entity kind %q cannot be restored", model.ErrInvalidInput, entry.EntityKind)
	}

	if err := b.bin.SetDeleted(ctx, entry.OriginalID, false); err != nil {
		return model.TrashEntry{}, err
	}

	description := fmt.Sprintf("restored %s %s from trash", entry.EntityKind, entry.OriginalID)
	if _, err := s.activity.Record(ctx, actor, model.ActivityRestore, description, entry.EntityKind, entry.OriginalID, nil); err != nil {
		return model.TrashEntry{}, err
	}

	metrics.IncTrashOperation("restore")
	return entry, nil
}

// Purge removes the trash entry and the underlying row for good. A row that
// is already gone does not block the purge; the audit entry for the
// permanent deletion is only written when a row was actually removed. The
// trash entry is deleted last so a partial failure can be retried.
func (s *TrashService) Purge(ctx context.Context, trashID string, actor model.Actor) error {
	entry, err := s.trash.FindByID(ctx, trashID)
	if err != nil {
		return err
	}

	rowExisted := false
	if b, ok := s.bindings[entry.EntityKind]; ok {
		switch err := b.bin.HardDelete(ctx, entry.OriginalID); {
		case err == nil:
			rowExisted = true
		case isEntityNotFound(err):
		default:
			return err
		}
	}

	if rowExisted {
		description := fmt.Sprintf("permanently deleted %s %s", entry.EntityKind, entry.OriginalID)
		metadata := map[string]any{"permanent_delete": true}
		if _, err := s.activity.Record(ctx, actor, model.ActivityDelete, description, entry.EntityKind, entry.OriginalID, metadata); err != nil {
			return err
		}
	}

	if err := s.trash.Delete(ctx, trashID); err != nil {
		return err
	}

	metrics.IncTrashOperation("purge")
	return nil
}

// ListFor returns the caller's trash entries, newest first. Admins also see
// entries owned by the system, recorded without an authenticated user.
func (s *TrashService) ListFor(ctx context.Context, actor model.Actor) ([]model.TrashEntry, error) {
	return s.trash.ListFor(ctx, actor.UserID, actor.Role == model.RoleAdmin)
}

func isEntityNotFound(err error) bool {
	return errors.Is(err, model.ErrStudentNotFound) || errors.Is(err, model.ErrEmployeeNotFound)
}

func parseOriginalID(originalID string) (int64, error) {
	id, err := strconv.ParseInt(originalID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed original id %q", model.ErrInvalidInput, originalID)
	}

	return id, nil
}

type studentBin struct {
	repo studentLifecycle
}

func (b studentBin) Snapshot(ctx context.Context, originalID string) (map[string]any, error) {
	id, err := parseOriginalID(originalID)
	if err != nil {
		return nil, err
	}

	student, err := b.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student.IsDeleted {
		return nil, model.ErrStudentNotFound
	}

	return model.StudentSnapshot(student), nil
}

func (b studentBin) SetDeleted(ctx context.Context, originalID string, deleted bool) error {
	id, err := parseOriginalID(originalID)
	if err != nil {
		return err
	}

	return b.repo.SetDeleted(ctx, id, deleted)
}

func (b studentBin) HardDelete(ctx context.Context, originalID string) error {
	id, err := parseOriginalID(originalID)
	if err != nil {
		return err
	}

	return b.repo.Delete(ctx, id)
}

type employeeBin struct {
	repo employeeLifecycle
}

func (b employeeBin) Snapshot(ctx context.Context, originalID string) (map[string]any, error) {
	id, err := parseOriginalID(originalID)
	if err != nil {
		return nil, err
	}

	employee, err := b.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return model.EmployeeSnapshot(employee), nil
}

func (b employeeBin) SetDeleted(ctx context.Context, originalID string, deleted bool) error {
	return model.ErrNotRestorable
}

func (b employeeBin) HardDelete(ctx context.Context, originalID string) error {
	id, err := parseOriginalID(originalID)
	if err != nil {
		return err
	}

	return b.repo.Delete(ctx, id)
}
