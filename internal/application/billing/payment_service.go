// Package billing implements the subscription payment use cases: plan
// listing, manual payment requests, proof upload and the admin
// approval workflow.
package billing

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/billing"
	"github.com/shopfront/backend/internal/domain/shared"
)

// ProofStore stages proof-of-payment objects. Keys are opaque to the
// domain; the stored reference is what ends up on the payment row.
type ProofStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

// PaymentService handles subscription payment use cases
type PaymentService struct {
	plans         billing.PlanRepository
	channels      billing.PaymentChannelRepository
	payments      billing.SubscriptionPaymentRepository
	subscriptions billing.SubscriptionRepository
	store         ProofStore
	logger        *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	plans billing.PlanRepository,
	channels billing.PaymentChannelRepository,
	payments billing.SubscriptionPaymentRepository,
	subscriptions billing.SubscriptionRepository,
	store ProofStore,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		plans:         plans,
		channels:      channels,
		payments:      payments,
		subscriptions: subscriptions,
		store:         store,
		logger:        logger,
	}
}

// ListPlans returns the active plans in display order
func (s *PaymentService) ListPlans(ctx context.Context) ([]PlanResponse, error) {
	plans, err := s.plans.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PlanResponse, 0, len(plans))
	for i := range plans {
		resp, err := toPlanResponse(&plans[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

// ListPaymentChannels returns the active manual payment destinations
func (s *PaymentService) ListPaymentChannels(ctx context.Context) ([]PaymentChannelResponse, error) {
	channels, err := s.channels.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentChannelResponse, 0, len(channels))
	for _, ch := range channels {
		out = append(out, PaymentChannelResponse{
			Key:          ch.Key,
			Name:         ch.Name,
			AccountPhone: ch.AccountPhone,
			Instructions: ch.Instructions,
		})
	}
	return out, nil
}

// CreatePayment opens a pending payment request. A user can hold at
// most one pending request at a time; the early check here gives a
// clean error and the partial unique index closes the race.
func (s *PaymentService) CreatePayment(ctx context.Context, userID uuid.UUID, req *CreatePaymentRequest) (*PaymentResponse, error) {
	plan, err := s.plans.FindActiveByKey(ctx, req.PlanKey)
	if err != nil {
		return nil, err
	}

	pending, err := s.payments.HasPendingForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, shared.NewDomainError("CONFLICT", "A pending payment request already exists for this user")
	}

	payment, err := billing.NewSubscriptionPayment(userID, plan, req.Provider, req.PaymentPhone)
	if err != nil {
		return nil, err
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// AttachProof stages the uploaded file, then binds it to the payment.
// The object is staged first so a storage failure never leaves a
// payment pointing at nothing; every later failure removes the staged
// object again.
func (s *PaymentService) AttachProof(ctx context.Context, paymentID, userID uuid.UUID, upload *ProofUpload) (*PaymentResponse, error) {
	key := fmt.Sprintf("proofs/%s/%s%s", paymentID, uuid.NewString(), filepath.Ext(upload.Filename))
	ref, err := s.store.Put(ctx, key, upload.ContentType, upload.Reader, upload.Size)
	if err != nil {
		return nil, err
	}

	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		s.removeStaged(ctx, key)
		return nil, err
	}
	if !payment.BelongsTo(userID) {
		s.removeStaged(ctx, key)
		return nil, shared.ErrForbidden
	}

	previous := payment.ProofRef
	if err := payment.AttachProof(ref); err != nil {
		s.removeStaged(ctx, key)
		return nil, err
	}
	if err := s.payments.Save(ctx, payment); err != nil {
		s.removeStaged(ctx, key)
		return nil, err
	}

	if previous != "" && previous != ref {
		s.removeStaged(ctx, previous)
	}
	return toPaymentResponse(payment), nil
}

// ListMyPayments returns the caller's payment history, newest first
func (s *PaymentService) ListMyPayments(ctx context.Context, userID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.payments.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toPaymentResponses(payments), nil
}

// GetPayment returns one payment. Non-admins only see their own.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID, callerID uuid.UUID, isAdmin bool) (*PaymentResponse, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !payment.BelongsTo(callerID) {
		return nil, shared.ErrForbidden
	}
	return toPaymentResponse(payment), nil
}

// ListPaymentsByStatus returns all payments in one status for review
func (s *PaymentService) ListPaymentsByStatus(ctx context.Context, status string) ([]PaymentResponse, error) {
	st := billing.PaymentStatus(status)
	if !st.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown payment status: "+status)
	}
	payments, err := s.payments.FindByStatus(ctx, st)
	if err != nil {
		return nil, err
	}
	return toPaymentResponses(payments), nil
}

// ApprovePayment approves a pending payment and activates the plan.
// The payment update, the user's plan change and the subscription
// record commit or roll back together.
func (s *PaymentService) ApprovePayment(ctx context.Context, paymentID, reviewerID uuid.UUID, req *ReviewPaymentRequest) (*PaymentResponse, error) {
	if err := s.payments.ApproveAndActivate(ctx, paymentID, reviewerID, req.Notes); err != nil {
		return nil, err
	}
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// RejectPayment rejects a pending payment. Missing and already
// reviewed payments fail with the same error.
func (s *PaymentService) RejectPayment(ctx context.Context, paymentID, reviewerID uuid.UUID, req *ReviewPaymentRequest) (*PaymentResponse, error) {
	if err := s.payments.RejectPending(ctx, paymentID, reviewerID, req.Notes); err != nil {
		return nil, err
	}
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(payment), nil
}

// ListMySubscriptions returns the caller's subscription periods
func (s *PaymentService) ListMySubscriptions(ctx context.Context, userID uuid.UUID) ([]SubscriptionResponse, error) {
	subs, err := s.subscriptions.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]SubscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, *toSubscriptionResponse(&subs[i]))
	}
	return out, nil
}

func (s *PaymentService) removeStaged(ctx context.Context, key string) {
	if err := s.store.Delete(context.WithoutCancel(ctx), key); err != nil {
		s.logger.Warn("failed to remove staged proof object",
			zap.String("key", key),
			zap.Error(err))
	}
}

func toPaymentResponses(payments []billing.SubscriptionPayment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, *toPaymentResponse(&payments[i]))
	}
	return out
}
