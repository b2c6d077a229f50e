package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SubscriptionStatus represents the status of a subscription record
type SubscriptionStatus string

const (
	SubscriptionStatusActive SubscriptionStatus = "active"
)

// Subscription is the derived record created when a payment is
// approved. The payment approval transaction is its sole writer; the
// unique index on PaymentID makes re-running an approval a no-op for
// this table.
type Subscription struct {
	shared.BaseEntity
	UserID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	PaymentID   uuid.UUID            `gorm:"type:uuid;uniqueIndex;not null"`
	PlanName    string               `gorm:"size:200;not null"`
	Status      SubscriptionStatus   `gorm:"size:16;not null"`
	Price       decimal.Decimal      `gorm:"type:numeric(14,2);not null"`
	Currency    valueobject.Currency `gorm:"size:3;not null"`
	PeriodStart time.Time            `gorm:"not null"`
	PeriodEnd   time.Time            `gorm:"not null"`
}

// TableName returns the database table name
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription creates an active subscription from an approved
// payment. Period end is period start plus the plan duration.
func NewSubscription(payment *SubscriptionPayment, durationMonths int, start time.Time) (*Subscription, error) {
	if durationMonths <= 0 {
		return nil, shared.NewDomainError("INVALID_DURATION", "Plan duration must be positive")
	}
	return &Subscription{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      payment.UserID,
		PaymentID:   payment.ID,
		PlanName:    payment.PlanName,
		Status:      SubscriptionStatusActive,
		Price:       payment.Amount,
		Currency:    payment.Currency,
		PeriodStart: start,
		PeriodEnd:   start.AddDate(0, durationMonths, 0),
	}, nil
}
