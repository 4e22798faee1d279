package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"institute-api/internal/model"
)

type fakeTrashStore struct {
	entries   map[string]model.TrashEntry
	createErr error
}

func newFakeTrashStore() *fakeTrashStore {
	return &fakeTrashStore{entries: make(map[string]model.TrashEntry)}
}

func (s *fakeTrashStore) Create(ctx context.Context, entry model.TrashEntry) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.entries[entry.ID] = entry
	return nil
}

func (s *fakeTrashStore) FindByID(ctx context.Context, id string) (model.TrashEntry, error) {
	entry, ok := s.entries[id]
	if !ok {
		return model.TrashEntry{}, model.ErrTrashEntryNotFound
	}
	return entry, nil
}

func (s *fakeTrashStore) ListFor(ctx context.Context, ownerID string, includeSystem bool) ([]model.TrashEntry, error) {
	var out []model.TrashEntry
	for _, entry := range s.entries {
		if entry.Owner.UserID == ownerID || (includeSystem && entry.Owner.IsSystem()) {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (s *fakeTrashStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.entries[id]; !ok {
		return model.ErrTrashEntryNotFound
	}
	delete(s.entries, id)
	return nil
}

type fakeRecorder struct {
	entries   []model.ActivityEntry
	recordErr error
}

func (r *fakeRecorder) Record(ctx context.Context, actor model.Actor, kind model.ActivityKind, description string, targetKind model.EntityKind, targetID string, metadata map[string]any) (model.ActivityEntry, error) {
	if r.recordErr != nil {
		return model.ActivityEntry{}, r.recordErr
	}
	entry := model.ActivityEntry{
		Actor:       actor,
		Kind:        kind,
		Description: description,
		TargetKind:  targetKind,
		TargetID:    targetID,
		Metadata:    metadata,
	}
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *fakeRecorder) last(t *testing.T) model.ActivityEntry {
	t.Helper()
	require.NotEmpty(t, r.entries)
	return r.entries[len(r.entries)-1]
}

type fakeStudentRows struct {
	rows map[int64]model.Student
}

func (f *fakeStudentRows) FindByID(ctx context.Context, id int64) (model.Student, error) {
	s, ok := f.rows[id]
	if !ok {
		return model.Student{}, model.ErrStudentNotFound
	}
	return s, nil
}

// SetDeleted mirrors the repository's guarded update: the row must currently
// be in the opposite state or the update matches nothing.
func (f *fakeStudentRows) SetDeleted(ctx context.Context, id int64, deleted bool) error {
	s, ok := f.rows[id]
	if !ok || s.IsDeleted == deleted {
		return model.ErrStudentNotFound
	}
	s.IsDeleted = deleted
	f.rows[id] = s
	return nil
}

func (f *fakeStudentRows) Delete(ctx context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return model.ErrStudentNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeEmployeeRows struct {
	rows map[int64]model.Employee
}

func (f *fakeEmployeeRows) FindByID(ctx context.Context, id int64) (model.Employee, error) {
	e, ok := f.rows[id]
	if !ok {
		return model.Employee{}, model.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRows) Delete(ctx context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return model.ErrEmployeeNotFound
	}
	delete(f.rows, id)
	return nil
}

func newTrashFixture() (*TrashService, *fakeTrashStore, *fakeRecorder, *fakeStudentRows, *fakeEmployeeRows) {
	trash := newFakeTrashStore()
	recorder := &fakeRecorder{}
	students := &fakeStudentRows{rows: map[int64]model.Student{
		1: {ID: 1, Name: "Ada Lovelace", Email: "ada@institute.edu"},
	}}
	employees := &fakeEmployeeRows{rows: map[int64]model.Employee{
		7: {ID: 7, EmployeeID: "EMP007", Name: "Grace Hopper", Email: "grace@institute.edu"},
	}}
	svc := NewTrashService(trash, recorder, students, employees)
	return svc, trash, recorder, students, employees
}

func TestTrashService_Delete(t *testing.T) {
	ctx := context.Background()
	actor := model.Actor{UserID: "u1", Username: "admin", Role: model.RoleAdmin}

	t.Run("student is soft deleted and restorable", func(t *testing.T) {
		svc, trash, recorder, students, _ := newTrashFixture()

		entry, err := svc.Delete(ctx, model.KindStudent, "1", actor)
		require.NoError(t, err)

		assert.True(t, entry.Restorable)
		assert.Equal(t, model.KindStudent, entry.EntityKind)
		assert.Equal(t, "1", entry.OriginalID)
		assert.Equal(t, "Ada Lovelace", entry.Snapshot["name"])

		// Row survives, flagged deleted.
		assert.True(t, students.rows[1].IsDeleted)
		assert.Contains(t, trash.entries, entry.ID)

		last := recorder.last(t)
		assert.Equal(t, model.ActivityDelete, last.Kind)
		assert.Equal(t, entry.Snapshot, last.Metadata)
	})

	t.Run("employee is hard deleted and not restorable", func(t *testing.T) {
		svc, trash, _, _, employees := newTrashFixture()

		entry, err := svc.Delete(ctx, model.KindEmployee, "7", actor)
		require.NoError(t, err)

		assert.False(t, entry.Restorable)
		assert.Equal(t, "Grace Hopper", entry.Snapshot["name"])
		assert.NotContains(t, employees.rows, int64(7))
		assert.Contains(t, trash.entries, entry.ID)
	})

	t.Run("deleting an already trashed student fails", func(t *testing.T) {
		svc, _, _, _, _ := newTrashFixture()

		_, err := svc.Delete(ctx, model.KindStudent, "1", actor)
		require.NoError(t, err)

		_, err = svc.Delete(ctx, model.KindStudent, "1", actor)
		assert.ErrorIs(t, err, model.ErrStudentNotFound)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		svc, _, _, _, _ := newTrashFixture()

		_, err := svc.Delete(ctx, model.EntityKind("invoice"), "1", actor)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("malformed original id is rejected", func(t *testing.T) {
		svc, _, _, _, _ := newTrashFixture()

		_, err := svc.Delete(ctx, model.KindStudent, "abc", actor)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("trash write failure leaves no partial state", func(t *testing.T) {
		svc, trash, recorder, students, _ := newTrashFixture()
		trash.createErr = errors.New("insert failed")

		_, err := svc.Delete(ctx, model.KindStudent, "1", actor)
		require.Error(t, err)

		assert.False(t, students.rows[1].IsDeleted)
		assert.Empty(t, trash.entries)
		assert.Empty(t, recorder.entries)
	})

	t.Run("audit write failure leaves the trash entry behind", func(t *testing.T) {
		svc, trash, recorder, students, _ := newTrashFixture()
		recorder.recordErr = errors.New("insert failed")

		_, err := svc.Delete(ctx, model.KindStudent, "1", actor)
		require.Error(t, err)

		// Steps are separate writes; the completed ones stay in place.
		assert.Len(t, trash.entries, 1)
		assert.False(t, students.rows[1].IsDeleted)
	})
}

func TestTrashService_Restore(t *testing.T) {
	ctx := context.Background()
	actor := model.Actor{UserID: "u1", Username: "admin", Role: model.RoleAdmin}

	t.Run("restore brings the student back and keeps the entry", func(t *testing.T) {
		svc, trash, recorder, students, _ := newTrashFixture()

		entry, err := svc.Delete(ctx, model.KindStudent, "1", actor)
		require.NoError(t, err)

		restored, err := svc.Restore(ctx, entry.ID, actor)
		require.NoError(t, err)

		assert.Equal(t, entry.ID, restored.ID)
		assert.False(t, students.rows[1].IsDeleted)
		assert.Contains(t, trash.entries, entry.ID)
		assert.Equal(t, model.ActivityRestore, recorder.last(t).Kind)
	})

	t.Run("second restore of the same entry fails", func(t *testing.T) {
		svc, _, _, _, _ := newTrashFixture()

		entry, err := svc.Delete(ctx, model.KindStudent, "1", actor)
		require.NoError(t, err)

		_, err = svc.Restore(ctx, entry.ID, actor)
		require.NoError(t, err)

		_, err = svc.Restore(ctx, entry.ID, actor)
		assert.ErrorIs(t, err, model.ErrStudentNotFound)
	})

	t.Run("employee entries cannot be restored", func(t *testing.T) {
		svc, _, _, _, _ := newTrashFixture()

		entry, err := svc.Delete(ctx, model.KindEmployee, "7", actor)
		require.NoError(t, err)

		_, err = svc.Restore(ctx, entry.ID, actor)
		assert.ErrorIs(t, err, model.ErrNotRestorable)
	})

	t.Run("unknown entry reports not found", func(t *testing.T) {
		svc, _, _, _, _ := newTrashFixture()

		_, err := svc.Restore(ctx, "missing", actor)
		assert.ErrorIs(t, err, model.ErrTrashEntryNotFound)
	})
}

func TestTrashService_Purge(t *testing.T) {
	ctx := context.Background()
	actor := model.Actor{UserID: "u1", Username: "admin", Role: model.RoleAdmin}

	t.Run("purge removes the row and the entry and audits the removal", func(t *testing.T) {
		svc, trash, recorder, students, _ := newTrashFixture()

		entry, err := svc.Delete(ctx, model.KindStudent, "1", actor)
		require.NoError(t, err)

		require.NoError(t, svc.Purge(ctx, entry.ID, actor))

		assert.NotContains(t, students.rows, int64(1))
		assert.NotContains(t, trash.entries, entry.ID)

		last := recorder.last(t)
		assert.Equal(t, model.ActivityDelete, last.Kind)
		assert.Equal(t, true, last.Metadata["permanent_delete"])
	})

	t.Run("purge of an already hard deleted employee still clears the entry", func(t *testing.T) {
		svc, trash, recorder, _, _ := newTrashFixture()

		entry, err := svc.Delete(ctx, model.KindEmployee, "7", actor)
		require.NoError(t, err)
		audited := len(recorder.entries)

		// The row is already gone; only the snapshot remains. Purge must
		// not fail and must not claim a second removal.
		require.NoError(t, svc.Purge(ctx, entry.ID, actor))

		assert.NotContains(t, trash.entries, entry.ID)
		assert.Len(t, recorder.entries, audited)
	})

	t.Run("second purge reports not found", func(t *testing.T) {
		svc, _, _, _, _ := newTrashFixture()

		entry, err := svc.Delete(ctx, model.KindStudent, "1", actor)
		require.NoError(t, err)

		require.NoError(t, svc.Purge(ctx, entry.ID, actor))
		assert.ErrorIs(t, svc.Purge(ctx, entry.ID, actor), model.ErrTrashEntryNotFound)
	})
}

func TestTrashService_ListFor(t *testing.T) {
	ctx := context.Background()
	admin := model.Actor{UserID: "a1", Username: "admin", Role: model.RoleAdmin}
	staff := model.Actor{UserID: "s1", Username: "staff", Role: model.RoleStaff}

	svc, trash, _, _, _ := newTrashFixture()
	trash.entries["e1"] = model.TrashEntry{ID: "e1", Owner: staff}
	trash.entries["e2"] = model.TrashEntry{ID: "e2", Owner: model.Actor{}}
	trash.entries["e3"] = model.TrashEntry{ID: "e3", Owner: admin}

	t.Run("staff see only their own entries", func(t *testing.T) {
		items, err := svc.ListFor(ctx, staff)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "e1", items[0].ID)
	})

	t.Run("admins also see system entries", func(t *testing.T) {
		items, err := svc.ListFor(ctx, admin)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})
}
