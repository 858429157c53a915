package domain

import "time"

// DefaultRole is assigned to every user created through registration.
const DefaultRole = "user"

// User is the domain entity for an account.
// PasswordHash is the bcrypt hash, never the plaintext.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	PhoneNumber  string
	Role         string
	CreatedAt    time.Time
}
