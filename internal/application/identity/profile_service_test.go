package identity_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	identityapp "github.com/shopfront/backend/internal/application/identity"
	"github.com/shopfront/backend/internal/domain/identity"
	"github.com/shopfront/backend/internal/domain/shared"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func TestGetProfile(t *testing.T) {
	t.Run("returns the caller's account with the current plan", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := identityapp.NewProfileService(repo)

		user, err := identity.NewUser("Aminata Sow", "+221770001122", identity.RoleOwner)
		require.NoError(t, err)
		user.Plan = "pro"
		repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

		profile, err := service.GetProfile(context.Background(), user.ID)

		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), profile.ID)
		assert.Equal(t, "owner", profile.Role)
		assert.Equal(t, "pro", profile.Plan)
	})

	t.Run("unknown caller", func(t *testing.T) {
		repo := new(MockUserRepository)
		service := identityapp.NewProfileService(repo)

		repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := service.GetProfile(context.Background(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
