package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopfront/backend/internal/domain/billing"
	"github.com/shopfront/backend/internal/domain/identity"
	"github.com/shopfront/backend/internal/domain/shared"
)

// GormPlanRepository implements billing.PlanRepository
type GormPlanRepository struct {
	db *gorm.DB
}

var _ billing.PlanRepository = (*GormPlanRepository)(nil)

// NewGormPlanRepository creates a new plan repository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindActive returns the active plans in display order
func (r *GormPlanRepository) FindActive(ctx context.Context) ([]billing.Plan, error) {
	var plans []billing.Plan
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC").
		Find(&plans).Error
	if err != nil {
		return nil, translateError(err)
	}
	return plans, nil
}

// FindActiveByKey returns an active plan by key. Unknown and inactive
// keys both come back as not found.
func (r *GormPlanRepository) FindActiveByKey(ctx context.Context, key string) (*billing.Plan, error) {
	var plan billing.Plan
	err := r.db.WithContext(ctx).
		Where("key = ? AND active = ?", key, true).
		First(&plan).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &plan, nil
}

// GormPaymentChannelRepository implements billing.PaymentChannelRepository
type GormPaymentChannelRepository struct {
	db *gorm.DB
}

var _ billing.PaymentChannelRepository = (*GormPaymentChannelRepository)(nil)

// NewGormPaymentChannelRepository creates a new payment channel repository
func NewGormPaymentChannelRepository(db *gorm.DB) *GormPaymentChannelRepository {
	return &GormPaymentChannelRepository{db: db}
}

// FindActive returns the active payment channels in display order
func (r *GormPaymentChannelRepository) FindActive(ctx context.Context) ([]billing.PaymentChannel, error) {
	var channels []billing.PaymentChannel
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("sort_order ASC").
		Find(&channels).Error
	if err != nil {
		return nil, translateError(err)
	}
	return channels, nil
}

// GormSubscriptionPaymentRepository implements
// billing.SubscriptionPaymentRepository
type GormSubscriptionPaymentRepository struct {
	db *gorm.DB
}

var _ billing.SubscriptionPaymentRepository = (*GormSubscriptionPaymentRepository)(nil)

// NewGormSubscriptionPaymentRepository creates a new subscription
// payment repository
func NewGormSubscriptionPaymentRepository(db *gorm.DB) *GormSubscriptionPaymentRepository {
	return &GormSubscriptionPaymentRepository{db: db}
}

// FindByID finds a payment by ID
func (r *GormSubscriptionPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.SubscriptionPayment, error) {
	var payment billing.SubscriptionPayment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, translateError(err)
	}
	return &payment, nil
}

// FindByUser returns a user's payments, newest first
func (r *GormSubscriptionPaymentRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]billing.SubscriptionPayment, error) {
	var payments []billing.SubscriptionPayment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, translateError(err)
	}
	return payments, nil
}

// FindByStatus returns all payments in one status, oldest first so
// reviewers work the queue in arrival order
func (r *GormSubscriptionPaymentRepository) FindByStatus(ctx context.Context, status billing.PaymentStatus) ([]billing.SubscriptionPayment, error) {
	var payments []billing.SubscriptionPayment
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&payments).Error
	if err != nil {
		return nil, translateError(err)
	}
	return payments, nil
}

// HasPendingForUser reports whether the user already has a pending
// payment. Advisory only; the partial unique index is the real fence.
func (r *GormSubscriptionPaymentRepository) HasPendingForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&billing.SubscriptionPayment{}).
		Where("user_id = ? AND status = ?", userID, billing.PaymentStatusPending).
		Count(&count).Error
	if err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

// Create inserts a pending payment. A concurrent duplicate trips the
// partial unique index and surfaces as a conflict.
func (r *GormSubscriptionPaymentRepository) Create(ctx context.Context, payment *billing.SubscriptionPayment) error {
	return translateError(r.db.WithContext(ctx).Create(payment).Error)
}

// Save persists a payment
func (r *GormSubscriptionPaymentRepository) Save(ctx context.Context, payment *billing.SubscriptionPayment) error {
	return translateError(r.db.WithContext(ctx).Save(payment).Error)
}

// ApproveAndActivate runs the full approval write set in one
// transaction: the conditional payment update, the user's plan change
// and the subscription row. The rows-affected guard on the first
// update makes a lost race a clean conflict instead of a double
// approval.
func (r *GormSubscriptionPaymentRepository) ApproveAndActivate(ctx context.Context, paymentID, reviewerID uuid.UUID, notes string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment billing.SubscriptionPayment
		if err := tx.Where("id = ?", paymentID).First(&payment).Error; err != nil {
			return err
		}

		now := time.Now()
		result := tx.Model(&billing.SubscriptionPayment{}).
			Where("id = ? AND status = ?", paymentID, billing.PaymentStatusPending).
			Updates(map[string]interface{}{
				"status":      billing.PaymentStatusApproved,
				"reviewed_by": reviewerID,
				"reviewed_at": now,
				"admin_notes": notes,
				"updated_at":  now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConflict
		}

		var plan billing.Plan
		if err := tx.Where("key = ?", payment.PlanKey).First(&plan).Error; err != nil {
			return err
		}

		result = tx.Model(&identity.User{}).
			Where("id = ?", payment.UserID).
			Updates(map[string]interface{}{
				"plan":       payment.PlanKey,
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		var existing int64
		if err := tx.Model(&billing.Subscription{}).
			Where("payment_id = ?", paymentID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}

		sub, err := billing.NewSubscription(&payment, plan.DurationMonths, now)
		if err != nil {
			return err
		}
		if err := tx.Create(sub).Error; err != nil {
			// A concurrent approval already wrote this row; the
			// unique index on payment_id keeps the table consistent.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil
			}
			return err
		}
		return nil
	})
	return translateError(err)
}

// RejectPending conditionally rejects a pending payment. Absent and
// already reviewed payments produce the same conflated error.
func (r *GormSubscriptionPaymentRepository) RejectPending(ctx context.Context, paymentID, reviewerID uuid.UUID, notes string) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&billing.SubscriptionPayment{}).
		Where("id = ? AND status = ?", paymentID, billing.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":      billing.PaymentStatusRejected,
			"reviewed_by": reviewerID,
			"reviewed_at": now,
			"admin_notes": notes,
			"updated_at":  now,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("NOT_FOUND", "Payment not found or already reviewed")
	}
	return nil
}

// GormSubscriptionRepository implements billing.SubscriptionRepository
type GormSubscriptionRepository struct {
	db *gorm.DB
}

var _ billing.SubscriptionRepository = (*GormSubscriptionRepository)(nil)

// NewGormSubscriptionRepository creates a new subscription repository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByUser returns a user's subscriptions, newest first
func (r *GormSubscriptionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]billing.Subscription, error) {
	var subs []billing.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("period_start DESC").
		Find(&subs).Error
	if err != nil {
		return nil, translateError(err)
	}
	return subs, nil
}

// FindByPayment returns the subscription created by one payment
func (r *GormSubscriptionRepository) FindByPayment(ctx context.Context, paymentID uuid.UUID) (*billing.Subscription, error) {
	var sub billing.Subscription
	if err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&sub).Error; err != nil {
		return nil, translateError(err)
	}
	return &sub, nil
}
