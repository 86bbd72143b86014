package auth

import (
	"context"

	"stockbook/internal/core/id"
)

// Repository defines the interface for user persistence.
type Repository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByEmail retrieves a user by email (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Update saves user changes (login timestamps and the like).
	Update(ctx context.Context, user *User) error
}
