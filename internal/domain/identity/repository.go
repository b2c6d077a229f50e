package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository provides access to user records
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	Save(ctx context.Context, user *User) error
}
