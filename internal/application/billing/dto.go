package billing

import (
	"io"
	"time"

	"github.com/shopfront/backend/internal/domain/billing"
)

// CreatePaymentRequest opens a manual subscription payment for review
type CreatePaymentRequest struct {
	PlanKey      string `json:"plan_key" binding:"required,max=64"`
	Provider     string `json:"provider" binding:"required,oneof=orange_money mtn_momo wave"`
	PaymentPhone string `json:"payment_phone" binding:"required,max=32"`
}

// ReviewPaymentRequest carries the optional admin notes for an
// approve or reject decision
type ReviewPaymentRequest struct {
	Notes string `json:"notes" binding:"max=1000"`
}

// ProofUpload is a staged proof-of-payment file. The handler has
// already enforced size and content-type limits.
type ProofUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// PlanResponse is the public plan representation. FinalAmount is the
// discounted price a new payment request will snapshot.
type PlanResponse struct {
	Key             string `json:"key"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	DiscountPercent string `json:"discount_percent"`
	FinalAmount     string `json:"final_amount"`
	Currency        string `json:"currency"`
	DurationMonths  int    `json:"duration_months"`
}

// PaymentChannelResponse is a manual payment destination shown at
// checkout
type PaymentChannelResponse struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	AccountPhone string `json:"account_phone"`
	Instructions string `json:"instructions"`
}

// PaymentResponse is the subscription payment representation
type PaymentResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	PlanKey      string     `json:"plan_key"`
	PlanName     string     `json:"plan_name"`
	Amount       string     `json:"amount"`
	Currency     string     `json:"currency"`
	Provider     string     `json:"provider"`
	PaymentPhone string     `json:"payment_phone"`
	HasProof     bool       `json:"has_proof"`
	Status       string     `json:"status"`
	AdminNotes   string     `json:"admin_notes,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// SubscriptionResponse is an activated subscription period
type SubscriptionResponse struct {
	ID          string    `json:"id"`
	PlanName    string    `json:"plan_name"`
	Status      string    `json:"status"`
	Price       string    `json:"price"`
	Currency    string    `json:"currency"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

func toPlanResponse(plan *billing.Plan) (*PlanResponse, error) {
	final, err := plan.FinalAmount()
	if err != nil {
		return nil, err
	}
	return &PlanResponse{
		Key:             plan.Key,
		Name:            plan.Name,
		Price:           plan.Price.StringFixed(2),
		DiscountPercent: plan.DiscountPercent.StringFixed(2),
		FinalAmount:     final.Amount().StringFixed(final.Currency().Decimals()),
		Currency:        string(plan.Currency),
		DurationMonths:  plan.DurationMonths,
	}, nil
}

func toPaymentResponse(payment *billing.SubscriptionPayment) *PaymentResponse {
	return &PaymentResponse{
		ID:           payment.ID.String(),
		UserID:       payment.UserID.String(),
		PlanKey:      payment.PlanKey,
		PlanName:     payment.PlanName,
		Amount:       payment.Amount.StringFixed(2),
		Currency:     string(payment.Currency),
		Provider:     payment.Provider,
		PaymentPhone: payment.PaymentPhone,
		HasProof:     payment.ProofRef != "",
		Status:       string(payment.Status),
		AdminNotes:   payment.AdminNotes,
		ReviewedAt:   payment.ReviewedAt,
		CreatedAt:    payment.CreatedAt,
	}
}

func toSubscriptionResponse(sub *billing.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:          sub.ID.String(),
		PlanName:    sub.PlanName,
		Status:      string(sub.Status),
		Price:       sub.Price.StringFixed(2),
		Currency:    string(sub.Currency),
		PeriodStart: sub.PeriodStart,
		PeriodEnd:   sub.PeriodEnd,
	}
}
