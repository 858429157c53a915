package repo

import (
	"context"

	dom "Tasker/internal/domain"
)

// UserRepo provides user persistence.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (dom.User, error)
	Create(ctx context.Context, u dom.User) (dom.User, error)
	UpdateProfile(ctx context.Context, id int64, name, phoneNumber string) (dom.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db DB
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db DB) *PGUserRepo {
	return &PGUserRepo{db: db}
}

const userColumns = `id, name, email, password_hash, phone_number, role, created_at`

// GetByEmail returns the user by email (the login identifier).
func (r *PGUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.PhoneNumber, &u.Role, &u.CreatedAt)
	return u, err
}

// Create inserts a new user and returns it. A duplicate email surfaces as
// a unique-violation error from the users_email_key constraint.
func (r *PGUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, phone_number, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns
	var out dom.User
	err := r.db.QueryRow(ctx, query, u.Name, u.Email, u.PasswordHash, u.PhoneNumber, u.Role).Scan(
		&out.ID, &out.Name, &out.Email, &out.PasswordHash, &out.PhoneNumber, &out.Role, &out.CreatedAt,
	)
	return out, err
}

// UpdateProfile overwrites name and phone_number in one statement.
func (r *PGUserRepo) UpdateProfile(ctx context.Context, id int64, name, phoneNumber string) (dom.User, error) {
	query := `
		UPDATE users SET name = $2, phone_number = $3
		WHERE id = $1
		RETURNING ` + userColumns
	var u dom.User
	err := r.db.QueryRow(ctx, query, id, name, phoneNumber).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.PhoneNumber, &u.Role, &u.CreatedAt,
	)
	return u, err
}

// UpdatePassword stores a new password hash.
func (r *PGUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	return err
}
