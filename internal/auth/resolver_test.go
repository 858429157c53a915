package auth

import (
	"context"
	"testing"
	"time"

	dom "Tasker/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserLookup struct {
	users map[string]dom.User
}

func (f *fakeUserLookup) GetByEmail(_ context.Context, email string) (dom.User, error) {
	u, ok := f.users[email]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	codec := NewTokenCodec("test-secret", time.Hour)
	lookup := &fakeUserLookup{users: map[string]dom.User{
		"a@x.com": {ID: 1, Name: "Alice", Email: "a@x.com"},
	}}
	resolver := NewResolver(codec, lookup)

	t.Run("known subject", func(t *testing.T) {
		token, err := codec.Issue("a@x.com")
		require.NoError(t, err)

		u, err := resolver.Resolve(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.Equal(t, "a@x.com", u.Email)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		token, err := codec.Issue("gone@x.com")
		require.NoError(t, err)

		_, err = resolver.Resolve(ctx, token)
		assert.ErrorIs(t, err, ErrUserGone)
	})

	t.Run("invalid token never reaches the store", func(t *testing.T) {
		_, err := resolver.Resolve(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrTokenMalformed)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenCodec("test-secret", -time.Minute)
		token, err := expired.Issue("a@x.com")
		require.NoError(t, err)

		_, err = resolver.Resolve(ctx, token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}

func TestOwns(t *testing.T) {
	assert.True(t, Owns(7, 7))
	assert.False(t, Owns(7, 8))
	assert.False(t, Owns(0, 7))
}
