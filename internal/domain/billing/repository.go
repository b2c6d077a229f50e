package billing

import (
	"context"

	"github.com/google/uuid"
)

// PlanRepository provides read access to plan configuration
type PlanRepository interface {
	FindActive(ctx context.Context) ([]Plan, error)
	// FindActiveByKey returns shared.ErrNotFound for unknown or
	// inactive keys; callers cannot tell the two apart.
	FindActiveByKey(ctx context.Context, key string) (*Plan, error)
}

// PaymentChannelRepository provides read access to payment channels
type PaymentChannelRepository interface {
	FindActive(ctx context.Context) ([]PaymentChannel, error)
}

// SubscriptionPaymentRepository provides access to subscription payments
type SubscriptionPaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SubscriptionPayment, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]SubscriptionPayment, error)
	FindByStatus(ctx context.Context, status PaymentStatus) ([]SubscriptionPayment, error)
	HasPendingForUser(ctx context.Context, userID uuid.UUID) (bool, error)
	// Create inserts a pending payment. The partial unique index on
	// (user_id) WHERE status = 'pending' turns a concurrent duplicate
	// into shared.ErrConflict.
	Create(ctx context.Context, payment *SubscriptionPayment) error
	Save(ctx context.Context, payment *SubscriptionPayment) error
	// ApproveAndActivate performs the approval write set in one
	// transaction: conditionally mark the payment approved, set the
	// user's plan, and create the subscription record (no-op when one
	// already exists for this payment). Returns shared.ErrNotFound when
	// the payment is absent and shared.ErrConflict when it is not
	// pending; any other failure rolls back all three writes.
	ApproveAndActivate(ctx context.Context, paymentID, reviewerID uuid.UUID, notes string) error
	// RejectPending conditionally moves a pending payment to rejected.
	// Absent and non-pending rows return the same conflated
	// shared.ErrNotFound.
	RejectPending(ctx context.Context, paymentID, reviewerID uuid.UUID, notes string) error
}

// SubscriptionRepository provides read access to subscription records
type SubscriptionRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Subscription, error)
	FindByPayment(ctx context.Context, paymentID uuid.UUID) (*Subscription, error)
}
