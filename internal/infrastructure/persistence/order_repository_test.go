package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/backend/internal/domain/ordering"
	"github.com/shopfront/backend/internal/domain/shared"
)

func TestGormOrderRepository_Place(t *testing.T) {
	ctx := context.Background()

	t.Run("persists order, item and customer together", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormOrderRepository(db)
		owner := seedOwner(t, db)
		shop := seedShop(t, db, owner.ID)
		product := seedProduct(t, db, shop.ID, "15.00")

		order, customer := buildOrder(t, shop.ID, product, 3)
		require.NoError(t, repo.Place(ctx, order, customer))

		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "45.00", found.TotalAmount.StringFixed(2))
		assert.Equal(t, ordering.OrderStatusPending, found.Status)
		require.Len(t, found.Items, 1)
		assert.Equal(t, 3, found.Items[0].Quantity)

		var customerCount int64
		db.Model(&ordering.Customer{}).Count(&customerCount)
		assert.Equal(t, int64(1), customerCount)
	})

	t.Run("reuses the customer row for a known phone", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormOrderRepository(db)
		owner := seedOwner(t, db)
		shop := seedShop(t, db, owner.ID)
		product := seedProduct(t, db, shop.ID, "15.00")

		first, customer1 := buildOrder(t, shop.ID, product, 1)
		require.NoError(t, repo.Place(ctx, first, customer1))

		second, customer2 := buildOrder(t, shop.ID, product, 2)
		customer2.Phone = customer1.Phone
		require.NoError(t, repo.Place(ctx, second, customer2))

		assert.Equal(t, first.CustomerID, second.CustomerID)

		var customerCount int64
		db.Model(&ordering.Customer{}).Where("phone = ?", customer1.Phone).Count(&customerCount)
		assert.Equal(t, int64(1), customerCount)
	})

	t.Run("regenerates a colliding order number", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormOrderRepository(db)
		owner := seedOwner(t, db)
		shop := seedShop(t, db, owner.ID)
		product := seedProduct(t, db, shop.ID, "15.00")

		first, customer1 := buildOrder(t, shop.ID, product, 1)
		require.NoError(t, repo.Place(ctx, first, customer1))

		second, customer2 := buildOrder(t, shop.ID, product, 1)
		second.OrderNumber = first.OrderNumber
		require.NoError(t, repo.Place(ctx, second, customer2))

		assert.NotEqual(t, first.OrderNumber, second.OrderNumber)
	})
}

func TestGormOrderRepository_UpdateStatusOwned(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can advance the status", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormOrderRepository(db)
		owner := seedOwner(t, db)
		shop := seedShop(t, db, owner.ID)
		product := seedProduct(t, db, shop.ID, "15.00")
		order, customer := buildOrder(t, shop.ID, product, 1)
		require.NoError(t, repo.Place(ctx, order, customer))

		updated, err := repo.UpdateStatusOwned(ctx, order.ID, owner.ID, ordering.OrderStatusConfirmed)

		require.NoError(t, err)
		assert.Equal(t, ordering.OrderStatusConfirmed, updated.Status)

		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, ordering.OrderStatusConfirmed, found.Status)
	})

	t.Run("stranger is denied like a missing order", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormOrderRepository(db)
		owner := seedOwner(t, db)
		shop := seedShop(t, db, owner.ID)
		product := seedProduct(t, db, shop.ID, "15.00")
		order, customer := buildOrder(t, shop.ID, product, 1)
		require.NoError(t, repo.Place(ctx, order, customer))

		_, err := repo.UpdateStatusOwned(ctx, order.ID, uuid.New(), ordering.OrderStatusConfirmed)
		assert.ErrorIs(t, err, shared.ErrForbidden)

		_, err = repo.UpdateStatusOwned(ctx, uuid.New(), owner.ID, ordering.OrderStatusConfirmed)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("cancelling records the timestamp", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormOrderRepository(db)
		owner := seedOwner(t, db)
		shop := seedShop(t, db, owner.ID)
		product := seedProduct(t, db, shop.ID, "15.00")
		order, customer := buildOrder(t, shop.ID, product, 1)
		require.NoError(t, repo.Place(ctx, order, customer))

		updated, err := repo.UpdateStatusOwned(ctx, order.ID, owner.ID, ordering.OrderStatusCancelled)

		require.NoError(t, err)
		assert.Equal(t, ordering.OrderStatusCancelled, updated.Status)
		assert.NotNil(t, updated.CancelledAt)
	})

	t.Run("terminal orders reject further changes", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormOrderRepository(db)
		owner := seedOwner(t, db)
		shop := seedShop(t, db, owner.ID)
		product := seedProduct(t, db, shop.ID, "15.00")
		order, customer := buildOrder(t, shop.ID, product, 1)
		require.NoError(t, repo.Place(ctx, order, customer))

		_, err := repo.UpdateStatusOwned(ctx, order.ID, owner.ID, ordering.OrderStatusCancelled)
		require.NoError(t, err)

		_, err = repo.UpdateStatusOwned(ctx, order.ID, owner.ID, ordering.OrderStatusConfirmed)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestGormOrderRepository_ValidateByCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("delivered order becomes validated and paid", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormOrderRepository(db)
		owner := seedOwner(t, db)
		shop := seedShop(t, db, owner.ID)
		product := seedProduct(t, db, shop.ID, "15.00")
		order, customer := buildOrder(t, shop.ID, product, 1)
		require.NoError(t, repo.Place(ctx, order, customer))
		_, err := repo.UpdateStatusOwned(ctx, order.ID, owner.ID, ordering.OrderStatusDelivered)
		require.NoError(t, err)

		require.NoError(t, repo.ValidateByCustomer(ctx, order.ID))

		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, ordering.OrderStatusValidatedByCustomer, found.Status)
		assert.Equal(t, ordering.PaymentStatusPaid, found.PaymentStatus)
		assert.NotNil(t, found.ValidatedAt)
	})

	t.Run("wrong state and missing order fail identically", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormOrderRepository(db)
		owner := seedOwner(t, db)
		shop := seedShop(t, db, owner.ID)
		product := seedProduct(t, db, shop.ID, "15.00")
		order, customer := buildOrder(t, shop.ID, product, 1)
		require.NoError(t, repo.Place(ctx, order, customer))

		wrongState := repo.ValidateByCustomer(ctx, order.ID)
		missing := repo.ValidateByCustomer(ctx, uuid.New())

		require.Error(t, wrongState)
		require.Error(t, missing)
		assert.Equal(t, wrongState.Error(), missing.Error())
	})

	t.Run("confirming twice fails the second time", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormOrderRepository(db)
		owner := seedOwner(t, db)
		shop := seedShop(t, db, owner.ID)
		product := seedProduct(t, db, shop.ID, "15.00")
		order, customer := buildOrder(t, shop.ID, product, 1)
		require.NoError(t, repo.Place(ctx, order, customer))
		_, err := repo.UpdateStatusOwned(ctx, order.ID, owner.ID, ordering.OrderStatusDelivered)
		require.NoError(t, err)

		require.NoError(t, repo.ValidateByCustomer(ctx, order.ID))
		assert.Error(t, repo.ValidateByCustomer(ctx, order.ID))
	})
}

func TestGormOrderRepository_FindPublicSummary(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	owner := seedOwner(t, db)
	shop := seedShop(t, db, owner.ID)
	product := seedProduct(t, db, shop.ID, "15.00")
	order, customer := buildOrder(t, shop.ID, product, 3)
	require.NoError(t, repo.Place(ctx, order, customer))

	summary, err := repo.FindPublicSummary(ctx, order.ID)

	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, summary.OrderNumber)
	assert.Equal(t, "45.00", summary.TotalAmount)
	assert.Equal(t, "USD", summary.Currency)
	assert.Equal(t, shop.Name, summary.ShopName)

	_, err = repo.FindPublicSummary(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_FindByShop(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	owner := seedOwner(t, db)
	shop := seedShop(t, db, owner.ID)
	product := seedProduct(t, db, shop.ID, "15.00")

	for i := 0; i < 3; i++ {
		order, customer := buildOrder(t, shop.ID, product, 1)
		require.NoError(t, repo.Place(ctx, order, customer))
	}

	filter := shared.DefaultFilter()
	filter.PageSize = 2

	orders, total, err := repo.FindByShop(ctx, shop.ID, filter)

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 2)
	require.Len(t, orders[0].Items, 1)
}
