// Package identity exposes the caller's own account profile.
package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shopfront/backend/internal/domain/identity"
)

// ProfileResponse is the caller's account as seen by the API
type ProfileResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileService reads account profiles
type ProfileService struct {
	users identity.UserRepository
}

// NewProfileService creates a new profile service
func NewProfileService(users identity.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// GetProfile returns the caller's own account. The plan field reflects
// the latest approved subscription payment.
func (s *ProfileService) GetProfile(ctx context.Context, callerID uuid.UUID) (*ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return &ProfileResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Phone:     user.Phone,
		Role:      string(user.Role),
		Plan:      user.Plan,
		CreatedAt: user.CreatedAt,
	}, nil
}
