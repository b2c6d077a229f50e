package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a subscription payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// IsValid checks if the status is a recognized PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transition.
// Approved and rejected are irreversible.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusApproved || s == PaymentStatusRejected
}

// SubscriptionPayment is a manual phone-money payment awaiting (or past)
// administrative review. Amount and plan name are snapshots taken at
// creation from the plan configuration.
type SubscriptionPayment struct {
	shared.BaseAggregateRoot
	UserID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	PlanKey      string               `gorm:"size:64;not null"`
	PlanName     string               `gorm:"size:200;not null"`
	Amount       decimal.Decimal      `gorm:"type:numeric(14,2);not null"`
	Currency     valueobject.Currency `gorm:"size:3;not null"`
	Provider     string               `gorm:"size:64;not null"`
	PaymentPhone string               `gorm:"size:32;not null"`
	ProofRef     string               `gorm:"size:512"`
	Status       PaymentStatus        `gorm:"size:16;not null;index"`
	AdminNotes   string               `gorm:"size:1000"`
	ReviewedBy   *uuid.UUID           `gorm:"type:uuid"`
	ReviewedAt   *time.Time
}

// TableName returns the database table name
func (SubscriptionPayment) TableName() string {
	return "subscription_payments"
}

// NewSubscriptionPayment creates a pending payment request for a plan.
// The amount is the plan's discounted price, computed here and never
// recomputed.
func NewSubscriptionPayment(userID uuid.UUID, plan *Plan, provider, paymentPhone string) (*SubscriptionPayment, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if provider == "" {
		return nil, shared.NewDomainError("INVALID_PROVIDER", "Payment provider cannot be empty")
	}
	if paymentPhone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Payment phone cannot be empty")
	}
	amount, err := plan.FinalAmount()
	if err != nil {
		return nil, err
	}

	return &SubscriptionPayment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		PlanKey:           plan.Key,
		PlanName:          plan.Name,
		Amount:            amount.Amount(),
		Currency:          amount.Currency(),
		Provider:          provider,
		PaymentPhone:      paymentPhone,
		Status:            PaymentStatusPending,
	}, nil
}

// IsPending reports whether the payment still awaits review
func (p *SubscriptionPayment) IsPending() bool {
	return p.Status == PaymentStatusPending
}

// BelongsTo reports whether the payment was submitted by the given user
func (p *SubscriptionPayment) BelongsTo(userID uuid.UUID) bool {
	return p.UserID == userID
}

// AttachProof records a proof-of-payment reference while pending
func (p *SubscriptionPayment) AttachProof(ref string) error {
	if !p.IsPending() {
		return shared.NewDomainError("INVALID_STATE", "Proof can only be attached to a pending payment")
	}
	if ref == "" {
		return shared.NewDomainError("INVALID_INPUT", "Proof reference cannot be empty")
	}
	p.ProofRef = ref
	p.Touch()
	return nil
}

// Approve marks the payment approved. Persistence pairs this with the
// plan and subscription writes in a single transaction.
func (p *SubscriptionPayment) Approve(reviewerID uuid.UUID, notes string) error {
	return p.review(PaymentStatusApproved, reviewerID, notes)
}

// Reject marks the payment rejected
func (p *SubscriptionPayment) Reject(reviewerID uuid.UUID, notes string) error {
	return p.review(PaymentStatusRejected, reviewerID, notes)
}

func (p *SubscriptionPayment) review(target PaymentStatus, reviewerID uuid.UUID, notes string) error {
	if !p.IsPending() {
		return shared.NewDomainError("CONFLICT", "Payment has already been reviewed")
	}
	if reviewerID == uuid.Nil {
		return shared.NewDomainError("INVALID_REVIEWER", "Reviewer ID cannot be empty")
	}
	now := time.Now()
	p.Status = target
	p.ReviewedBy = &reviewerID
	p.ReviewedAt = &now
	p.AdminNotes = notes
	p.UpdatedAt = now
	return nil
}
