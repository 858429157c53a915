package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"Tasker/internal/auth"
	"Tasker/internal/cache"
	dom "Tasker/internal/domain"
	"Tasker/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("not the owner")
)

// TodoService implements owned CRUD: every mutation checks that the record
// exists before checking ownership, and both checks happen under the repo's
// row lock.
type TodoService struct {
	repo  repo.TodoRepo
	cache *cache.TodoCache
	sf    singleflight.Group
}

// NewTodoService creates a TodoService. If c is nil, caching is disabled.
func NewTodoService(r repo.TodoRepo, c *cache.TodoCache) *TodoService {
	return &TodoService{repo: r, cache: c}
}

// Create inserts a todo owned by ownerID, not completed.
func (s *TodoService) Create(ctx context.Context, ownerID int64, title, desc string) (dom.Todo, error) {
	t, err := s.repo.Create(ctx, dom.Todo{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(desc),
		OwnerID:     ownerID,
	})
	if err != nil {
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, ownerID)
	return t, nil
}

// List returns the owner's todos, through the cache when available.
func (s *TodoService) List(ctx context.Context, ownerID int64) ([]dom.Todo, error) {
	if s.cache == nil {
		return s.repo.ListByOwner(ctx, ownerID)
	}
	key := "list:" + strconv.FormatInt(ownerID, 10)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		if list, err := s.cache.GetList(ctx, ownerID); err == nil && list != nil {
			return list, nil
		}
		list, err := s.repo.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		_ = s.cache.SetList(ctx, ownerID, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Todo), nil
}

// Update patches the todo's provided fields. A missing id is ErrNotFound;
// a requester who is not the owner gets ErrForbidden, in that order.
func (s *TodoService) Update(ctx context.Context, requesterID, id int64, title, desc *string, completed *bool) (dom.Todo, error) {
	t, err := s.repo.Update(ctx, id, func(t *dom.Todo) error {
		if !auth.Owns(t.OwnerID, requesterID) {
			return ErrForbidden
		}
		if title != nil {
			t.Title = strings.TrimSpace(*title)
		}
		if desc != nil {
			t.Description = strings.TrimSpace(*desc)
		}
		if completed != nil {
			t.Completed = *completed
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Todo{}, ErrNotFound
		}
		return dom.Todo{}, err
	}
	s.invalidateCache(ctx, requesterID)
	return t, nil
}

// Delete removes the todo with the same not-found-then-forbidden ordering.
func (s *TodoService) Delete(ctx context.Context, requesterID, id int64) error {
	err := s.repo.Delete(ctx, id, func(t dom.Todo) error {
		if !auth.Owns(t.OwnerID, requesterID) {
			return ErrForbidden
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateCache(ctx, requesterID)
	return nil
}

func (s *TodoService) invalidateCache(ctx context.Context, ownerID int64) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, ownerID)
	}
}
