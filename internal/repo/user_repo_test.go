package repo_test

import (
	"context"
	"testing"
	"time"

	dom "Tasker/internal/domain"
	"Tasker/internal/repo"
	"Tasker/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userCols = "id, name, email, password_hash, phone_number, role, created_at"

func userFixture() dom.User {
	return dom.User{Name: "Alice", Email: "a@x.com", PasswordHash: "hash", PhoneNumber: "555", Role: "user"}
}

func userRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "email", "password_hash", "phone_number", "role", "created_at"})
}

func TestPGUserRepo_GetByEmail(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPGUserRepo(mock)
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT `+userCols+` FROM users WHERE email = \$1`).
			WithArgs("a@x.com").
			WillReturnRows(userRows().AddRow(int64(1), "Alice", "a@x.com", "hash", "555", "user", now))

		u, err := r.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.Equal(t, "Alice", u.Name)
		assert.Equal(t, "hash", u.PasswordHash)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT `+userCols+` FROM users WHERE email = \$1`).
			WithArgs("nobody@x.com").
			WillReturnError(pgx.ErrNoRows)

		_, err := r.GetByEmail(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGUserRepo_Create_UniqueViolation(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPGUserRepo(mock)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Alice", "a@x.com", "hash", "555", "user").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err = r.Create(ctx, userFixture())
	require.Error(t, err)
	assert.True(t, utils.IsPGUniqueViolation(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGUserRepo_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPGUserRepo(mock)

	mock.ExpectExec(`UPDATE users SET password_hash = \$2 WHERE id = \$1`).
		WithArgs(int64(1), "newhash").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, r.UpdatePassword(ctx, 1, "newhash"))
	require.NoError(t, mock.ExpectationsWereMet())
}
