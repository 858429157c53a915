package auth

import (
	"context"
	"errors"

	dom "Tasker/internal/domain"

	"github.com/jackc/pgx/v5"
)

// ErrUserGone means the token verified but its subject no longer exists.
var ErrUserGone = errors.New("user not found")

// UserLookup is the slice of the user repository the resolver needs.
type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (dom.User, error)
}

// Resolver turns a bearer token into the authenticated user.
type Resolver struct {
	codec *TokenCodec
	users UserLookup
}

// NewResolver returns a Resolver backed by codec and users.
func NewResolver(codec *TokenCodec, users UserLookup) *Resolver {
	return &Resolver{codec: codec, users: users}
}

// Resolve validates token and loads the user it names. Token failures come
// back as the codec's typed errors; a verified token whose subject is
// missing from the store fails with ErrUserGone.
func (r *Resolver) Resolve(ctx context.Context, token string) (dom.User, error) {
	email, err := r.codec.Validate(token)
	if err != nil {
		return dom.User{}, err
	}
	u, err := r.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrUserGone
		}
		return dom.User{}, err
	}
	return u, nil
}
