package service

import (
	"context"
	"errors"
	"strings"

	"Tasker/internal/auth"
	dom "Tasker/internal/domain"
	"Tasker/internal/repo"
	"Tasker/internal/utils"

	"github.com/jackc/pgx/v5"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password:
	// the caller cannot tell which, so accounts cannot be enumerated.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWrongPassword      = errors.New("current password incorrect")
)

// UserService handles registration, login and profile changes.
type UserService struct {
	repo   repo.UserRepo
	tokens *auth.TokenCodec
}

// NewUserService returns a new UserService.
func NewUserService(r repo.UserRepo, tokens *auth.TokenCodec) *UserService {
	return &UserService{repo: r, tokens: tokens}
}

// Register creates a user with a hashed password and the default role.
func (s *UserService) Register(ctx context.Context, name, email, password, phoneNumber string) (dom.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		PhoneNumber:  strings.TrimSpace(phoneNumber),
		Role:         dom.DefaultRole,
	})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrEmailTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

// Login checks credentials and issues a session token with subject = email.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(u.Email)
}

// UpdateProfile overwrites the fields that were provided; nil leaves the
// current value alone. Returns the updated record.
func (s *UserService) UpdateProfile(ctx context.Context, user dom.User, name, phoneNumber *string) (dom.User, error) {
	if name != nil {
		user.Name = strings.TrimSpace(*name)
	}
	if phoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*phoneNumber)
	}
	return s.repo.UpdateProfile(ctx, user.ID, user.Name, user.PhoneNumber)
}

// ChangePassword verifies the current password before storing the new hash.
func (s *UserService) ChangePassword(ctx context.Context, user dom.User, current, newPassword string) error {
	if !auth.CheckPassword(current, user.PasswordHash) {
		return ErrWrongPassword
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, user.ID, hash)
}
