package domain

import "time"

// Todo is an owned resource: OwnerID is set at creation and never changes.
type Todo struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	OwnerID     int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
