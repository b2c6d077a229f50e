package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopfront/backend/internal/domain/billing"
	"github.com/shopfront/backend/internal/domain/identity"
	"github.com/shopfront/backend/internal/domain/shared"
)

func seedPendingPayment(t *testing.T, repo *GormSubscriptionPaymentRepository, plan *billing.Plan, userID uuid.UUID) *billing.SubscriptionPayment {
	t.Helper()
	payment, err := billing.NewSubscriptionPayment(userID, plan, "orange_money", "+221771234567")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), payment))
	return payment
}

func TestGormSubscriptionPaymentRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("second pending payment for the same user conflicts", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSubscriptionPaymentRepository(db)
		plan := seedPlan(t, db)
		owner := seedOwner(t, db)

		seedPendingPayment(t, repo, plan, owner.ID)

		second, err := billing.NewSubscriptionPayment(owner.ID, plan, "wave", "+221771234567")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Create(ctx, second), shared.ErrConflict)
	})

	t.Run("a reviewed payment frees the slot", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSubscriptionPaymentRepository(db)
		plan := seedPlan(t, db)
		owner := seedOwner(t, db)
		admin := seedOwner(t, db)

		first := seedPendingPayment(t, repo, plan, owner.ID)
		require.NoError(t, repo.RejectPending(ctx, first.ID, admin.ID, "no proof"))

		second, err := billing.NewSubscriptionPayment(owner.ID, plan, "mtn_momo", "+221771234567")
		require.NoError(t, err)
		assert.NoError(t, repo.Create(ctx, second))
	})

	t.Run("different users are independent", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSubscriptionPaymentRepository(db)
		plan := seedPlan(t, db)

		seedPendingPayment(t, repo, plan, seedOwner(t, db).ID)
		seedPendingPayment(t, repo, plan, seedOwner(t, db).ID)

		pending, err := repo.FindByStatus(ctx, billing.PaymentStatusPending)
		require.NoError(t, err)
		assert.Len(t, pending, 2)
	})
}

func TestGormSubscriptionPaymentRepository_ApproveAndActivate(t *testing.T) {
	ctx := context.Background()

	t.Run("approves, upgrades the user and creates the subscription", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSubscriptionPaymentRepository(db)
		subs := NewGormSubscriptionRepository(db)
		plan := seedPlan(t, db)
		owner := seedOwner(t, db)
		admin := seedOwner(t, db)
		payment := seedPendingPayment(t, repo, plan, owner.ID)

		require.NoError(t, repo.ApproveAndActivate(ctx, payment.ID, admin.ID, "verified"))

		reviewed, err := repo.FindByID(ctx, payment.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.PaymentStatusApproved, reviewed.Status)
		assert.Equal(t, "verified", reviewed.AdminNotes)
		require.NotNil(t, reviewed.ReviewedBy)
		assert.Equal(t, admin.ID, *reviewed.ReviewedBy)

		var user identity.User
		require.NoError(t, db.Where("id = ?", owner.ID).First(&user).Error)
		assert.Equal(t, "pro", user.Plan)

		sub, err := subs.FindByPayment(ctx, payment.ID)
		require.NoError(t, err)
		assert.Equal(t, owner.ID, sub.UserID)
		assert.Equal(t, "26.99", sub.Price.StringFixed(2))
		assert.Equal(t, sub.PeriodStart.AddDate(0, 1, 0), sub.PeriodEnd)
	})

	t.Run("second approval conflicts and stays single-subscription", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSubscriptionPaymentRepository(db)
		plan := seedPlan(t, db)
		owner := seedOwner(t, db)
		admin := seedOwner(t, db)
		payment := seedPendingPayment(t, repo, plan, owner.ID)

		require.NoError(t, repo.ApproveAndActivate(ctx, payment.ID, admin.ID, ""))
		assert.ErrorIs(t, repo.ApproveAndActivate(ctx, payment.ID, admin.ID, ""), shared.ErrConflict)

		var subCount int64
		db.Model(&billing.Subscription{}).Where("payment_id = ?", payment.ID).Count(&subCount)
		assert.Equal(t, int64(1), subCount)
	})

	t.Run("rejected payment cannot be approved", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSubscriptionPaymentRepository(db)
		plan := seedPlan(t, db)
		owner := seedOwner(t, db)
		admin := seedOwner(t, db)
		payment := seedPendingPayment(t, repo, plan, owner.ID)

		require.NoError(t, repo.RejectPending(ctx, payment.ID, admin.ID, "blurry"))
		assert.ErrorIs(t, repo.ApproveAndActivate(ctx, payment.ID, admin.ID, ""), shared.ErrConflict)
	})

	t.Run("missing payment is not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSubscriptionPaymentRepository(db)

		assert.ErrorIs(t, repo.ApproveAndActivate(ctx, uuid.New(), uuid.New(), ""), shared.ErrNotFound)
	})

	t.Run("missing user rolls everything back", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSubscriptionPaymentRepository(db)
		plan := seedPlan(t, db)
		admin := seedOwner(t, db)

		// payment references a user that does not exist
		ghost := uuid.New()
		payment, err := billing.NewSubscriptionPayment(ghost, plan, "orange_money", "+221771234567")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, payment))

		require.Error(t, repo.ApproveAndActivate(ctx, payment.ID, admin.ID, ""))

		fresh, err := repo.FindByID(ctx, payment.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.PaymentStatusPending, fresh.Status)

		var subCount int64
		db.Model(&billing.Subscription{}).Where("payment_id = ?", payment.ID).Count(&subCount)
		assert.Equal(t, int64(0), subCount)
	})
}

func TestGormSubscriptionPaymentRepository_RejectPending(t *testing.T) {
	ctx := context.Background()

	t.Run("missing and reviewed payments fail identically", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormSubscriptionPaymentRepository(db)
		plan := seedPlan(t, db)
		owner := seedOwner(t, db)
		admin := seedOwner(t, db)
		payment := seedPendingPayment(t, repo, plan, owner.ID)

		require.NoError(t, repo.RejectPending(ctx, payment.ID, admin.ID, "no proof"))

		reviewed := repo.RejectPending(ctx, payment.ID, admin.ID, "again")
		missing := repo.RejectPending(ctx, uuid.New(), admin.ID, "again")

		require.Error(t, reviewed)
		require.Error(t, missing)
		assert.Equal(t, reviewed.Error(), missing.Error())
	})
}

func TestGormPlanRepository(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormPlanRepository(db)
	seedPlan(t, db)

	t.Run("finds an active plan by key", func(t *testing.T) {
		plan, err := repo.FindActiveByKey(ctx, "pro")
		require.NoError(t, err)
		assert.Equal(t, "Pro", plan.Name)
	})

	t.Run("unknown key is not found", func(t *testing.T) {
		_, err := repo.FindActiveByKey(ctx, "enterprise")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("inactive plan is indistinguishable from unknown", func(t *testing.T) {
		require.NoError(t, db.Model(&billing.Plan{}).Where("key = ?", "pro").Update("active", false).Error)
		t.Cleanup(func() {
			db.Model(&billing.Plan{}).Where("key = ?", "pro").Update("active", true)
		})

		_, err := repo.FindActiveByKey(ctx, "pro")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
