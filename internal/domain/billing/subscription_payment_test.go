package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicPlan() *Plan {
	return &Plan{
		BaseEntity:      shared.NewBaseEntity(),
		Key:             "basic",
		Name:            "Basic",
		Price:           decimal.NewFromFloat(29.99),
		Currency:        valueobject.USD,
		DiscountPercent: decimal.NewFromInt(10),
		DurationMonths:  1,
		Active:          true,
	}
}

func TestPlan_FinalAmount(t *testing.T) {
	amount, err := basicPlan().FinalAmount()
	require.NoError(t, err)
	assert.Equal(t, "26.99", amount.Amount().StringFixed(2))
	assert.Equal(t, valueobject.USD, amount.Currency())
}

func TestNewSubscriptionPayment(t *testing.T) {
	t.Run("snapshots plan name and discounted amount", func(t *testing.T) {
		p, err := NewSubscriptionPayment(uuid.New(), basicPlan(), "orange_money", "0102030405")
		require.NoError(t, err)
		assert.Equal(t, "basic", p.PlanKey)
		assert.Equal(t, "Basic", p.PlanName)
		assert.Equal(t, "26.99", p.Amount.StringFixed(2))
		assert.Equal(t, PaymentStatusPending, p.Status)
	})

	t.Run("requires provider and phone", func(t *testing.T) {
		_, err := NewSubscriptionPayment(uuid.New(), basicPlan(), "", "0102030405")
		assert.Error(t, err)
		_, err = NewSubscriptionPayment(uuid.New(), basicPlan(), "orange_money", "")
		assert.Error(t, err)
	})
}

func TestSubscriptionPayment_AttachProof(t *testing.T) {
	p, err := NewSubscriptionPayment(uuid.New(), basicPlan(), "orange_money", "0102030405")
	require.NoError(t, err)

	require.NoError(t, p.AttachProof("proofs/abc.png"))
	assert.Equal(t, "proofs/abc.png", p.ProofRef)

	require.NoError(t, p.Approve(uuid.New(), ""))
	assert.Error(t, p.AttachProof("proofs/late.png"), "terminal payment must reject proof")
}

func TestSubscriptionPayment_Review(t *testing.T) {
	t.Run("approve records reviewer and time", func(t *testing.T) {
		p, _ := NewSubscriptionPayment(uuid.New(), basicPlan(), "wave", "0102030405")
		reviewer := uuid.New()
		require.NoError(t, p.Approve(reviewer, "looks good"))
		assert.Equal(t, PaymentStatusApproved, p.Status)
		require.NotNil(t, p.ReviewedBy)
		assert.Equal(t, reviewer, *p.ReviewedBy)
		assert.NotNil(t, p.ReviewedAt)
		assert.Equal(t, "looks good", p.AdminNotes)
	})

	t.Run("terminal states are irreversible", func(t *testing.T) {
		p, _ := NewSubscriptionPayment(uuid.New(), basicPlan(), "wave", "0102030405")
		require.NoError(t, p.Reject(uuid.New(), "no proof"))
		assert.Error(t, p.Approve(uuid.New(), ""))
		assert.Error(t, p.Reject(uuid.New(), ""))
		assert.Equal(t, PaymentStatusRejected, p.Status)
	})

	t.Run("requires a reviewer", func(t *testing.T) {
		p, _ := NewSubscriptionPayment(uuid.New(), basicPlan(), "wave", "0102030405")
		assert.Error(t, p.Approve(uuid.Nil, ""))
		assert.True(t, p.IsPending())
	})
}

func TestNewSubscription(t *testing.T) {
	p, _ := NewSubscriptionPayment(uuid.New(), basicPlan(), "mtn_momo", "0102030405")
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	sub, err := NewSubscription(p, 3, start)
	require.NoError(t, err)
	assert.Equal(t, p.UserID, sub.UserID)
	assert.Equal(t, p.ID, sub.PaymentID)
	assert.Equal(t, start.AddDate(0, 3, 0), sub.PeriodEnd)
	assert.Equal(t, SubscriptionStatusActive, sub.Status)

	_, err = NewSubscription(p, 0, start)
	assert.Error(t, err)
}
