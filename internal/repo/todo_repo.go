package repo

import (
	"context"
	"fmt"

	dom "Tasker/internal/domain"
)

// TodoRepo provides todo persistence. Update and Delete run their
// read-check-write inside a transaction with a row lock, so two requests
// touching the same todo serialize instead of losing one of the writes.
type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, id int64) (dom.Todo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]dom.Todo, error)
	Update(ctx context.Context, id int64, patch func(*dom.Todo) error) (dom.Todo, error)
	Delete(ctx context.Context, id int64, guard func(dom.Todo) error) error
}

// PGTodoRepo implements TodoRepo with Postgres.
type PGTodoRepo struct {
	db DB
}

func NewPGTodoRepo(db DB) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

const todoColumns = `id, title, description, completed, owner_id, created_at, updated_at`

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (title, description, completed, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + todoColumns
	var out dom.Todo
	err := r.db.QueryRow(ctx, query, t.Title, t.Description, t.Completed, t.OwnerID).Scan(
		&out.ID, &out.Title, &out.Description, &out.Completed, &out.OwnerID,
		&out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id int64) (dom.Todo, error) {
	var t dom.Todo
	err := r.db.QueryRow(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1`,
		id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PGTodoRepo) ListByOwner(ctx context.Context, ownerID int64) ([]dom.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Todo
	for rows.Next() {
		var t dom.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.OwnerID,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update locks the row, hands the current record to patch, and writes the
// result back. patch decides whether the caller may touch the record at
// all; its error aborts the transaction untouched. A missing id surfaces
// as pgx.ErrNoRows from the locked select.
func (r *PGTodoRepo) Update(ctx context.Context, id int64, patch func(*dom.Todo) error) (dom.Todo, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dom.Todo{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var t dom.Todo
	err = tx.QueryRow(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return dom.Todo{}, err
	}
	if err := patch(&t); err != nil {
		return dom.Todo{}, err
	}

	query := `
		UPDATE todos SET title = $2, description = $3, completed = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + todoColumns
	var out dom.Todo
	err = tx.QueryRow(ctx, query, id, t.Title, t.Description, t.Completed).Scan(
		&out.ID, &out.Title, &out.Description, &out.Completed, &out.OwnerID,
		&out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return dom.Todo{}, err
	}
	return out, tx.Commit(ctx)
}

// Delete locks the row, lets guard veto the delete, then removes it.
func (r *PGTodoRepo) Delete(ctx context.Context, id int64, guard func(dom.Todo) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var t dom.Todo
	err = tx.QueryRow(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return err
	}
	if err := guard(t); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
