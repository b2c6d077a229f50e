package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/backend/internal/domain/shared"
)

func TestGormOwnershipResolver(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	resolver := NewGormOwnershipResolver(db)
	orders := NewGormOrderRepository(db)

	owner := seedOwner(t, db)
	shop := seedShop(t, db, owner.ID)
	product := seedProduct(t, db, shop.ID, "15.00")
	order, customer := buildOrder(t, shop.ID, product, 1)
	require.NoError(t, orders.Place(ctx, order, customer))

	t.Run("resolves through the shop row", func(t *testing.T) {
		shopOwner, err := resolver.ShopOwner(ctx, shop.ID)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, shopOwner)

		productOwner, err := resolver.ProductOwner(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, productOwner)

		orderOwner, err := resolver.OrderOwner(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, orderOwner)
	})

	t.Run("missing resources are not found", func(t *testing.T) {
		_, err := resolver.ShopOwner(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = resolver.OrderOwner(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
