package service_test

import (
	"context"
	"testing"

	dom "Tasker/internal/domain"
	"Tasker/internal/service"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTodoRepo mirrors PGTodoRepo's contract: Update/Delete surface
// pgx.ErrNoRows for missing ids and run the caller's patch/guard against
// the stored record.
type fakeTodoRepo struct {
	nextID int64
	byID   map[int64]*dom.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{nextID: 1, byID: map[int64]*dom.Todo{}}
}

func (f *fakeTodoRepo) Create(_ context.Context, t dom.Todo) (dom.Todo, error) {
	t.ID = f.nextID
	f.nextID++
	f.byID[t.ID] = &t
	return t, nil
}

func (f *fakeTodoRepo) GetByID(_ context.Context, id int64) (dom.Todo, error) {
	t, ok := f.byID[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	return *t, nil
}

func (f *fakeTodoRepo) ListByOwner(_ context.Context, ownerID int64) ([]dom.Todo, error) {
	var list []dom.Todo
	for _, t := range f.byID {
		if t.OwnerID == ownerID {
			list = append(list, *t)
		}
	}
	return list, nil
}

func (f *fakeTodoRepo) Update(_ context.Context, id int64, patch func(*dom.Todo) error) (dom.Todo, error) {
	t, ok := f.byID[id]
	if !ok {
		return dom.Todo{}, pgx.ErrNoRows
	}
	next := *t
	if err := patch(&next); err != nil {
		return dom.Todo{}, err
	}
	f.byID[id] = &next
	return next, nil
}

func (f *fakeTodoRepo) Delete(_ context.Context, id int64, guard func(dom.Todo) error) error {
	t, ok := f.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if err := guard(*t); err != nil {
		return err
	}
	delete(f.byID, id)
	return nil
}

const (
	aliceID int64 = 1
	bobID   int64 = 2
)

func TestTodoService_Create(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTodoService(newFakeTodoRepo(), nil)

	todo, err := svc.Create(ctx, aliceID, "t", "d")
	require.NoError(t, err)
	assert.Equal(t, int64(1), todo.ID)
	assert.Equal(t, aliceID, todo.OwnerID)
	assert.False(t, todo.Completed)
}

func TestTodoService_List_OwnerFiltered(t *testing.T) {
	ctx := context.Background()
	svc := service.NewTodoService(newFakeTodoRepo(), nil)

	list, err := svc.List(ctx, aliceID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Create(ctx, aliceID, "mine", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, bobID, "theirs", "")
	require.NoError(t, err)

	list, err = svc.List(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "mine", list[0].Title)
}

func TestTodoService_Update(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTodoRepo()
	svc := service.NewTodoService(repo, nil)

	created, err := svc.Create(ctx, aliceID, "t", "d")
	require.NoError(t, err)

	t.Run("owner patches provided fields only", func(t *testing.T) {
		done := true
		updated, err := svc.Update(ctx, aliceID, created.ID, nil, nil, &done)
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, "t", updated.Title)
		assert.Equal(t, "d", updated.Description)

		title := "renamed"
		updated, err = svc.Update(ctx, aliceID, created.ID, &title, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.True(t, updated.Completed, "completed must stay set")
	})

	t.Run("non-owner gets forbidden and no write happens", func(t *testing.T) {
		title := "stolen"
		_, err := svc.Update(ctx, bobID, created.ID, &title, nil, nil)
		assert.ErrorIs(t, err, service.ErrForbidden)

		current, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "stolen", current.Title)
	})

	t.Run("missing id is not found even for a non-owner", func(t *testing.T) {
		_, err := svc.Update(ctx, bobID, 999, nil, nil, nil)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestTodoService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTodoRepo()
	svc := service.NewTodoService(repo, nil)

	created, err := svc.Create(ctx, aliceID, "t", "d")
	require.NoError(t, err)

	t.Run("not found checked before ownership", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, bobID, 999), service.ErrNotFound)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, bobID, created.ID), service.ErrForbidden)

		_, err := repo.GetByID(ctx, created.ID)
		assert.NoError(t, err, "record must survive a forbidden delete")
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, aliceID, created.ID))

		_, err := repo.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})
}
