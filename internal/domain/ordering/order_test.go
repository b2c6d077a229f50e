package ordering

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(
		uuid.New(), uuid.New(), GenerateOrderNumber(), valueobject.USD,
		uuid.New(), "Wireless Earbuds", 3, decimal.NewFromFloat(15.00),
	)
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("snapshots price times quantity", func(t *testing.T) {
		order := newTestOrder(t)
		assert.Equal(t, "45.00", order.TotalAmount.StringFixed(2))
		assert.Len(t, order.Items, 1)
		assert.Equal(t, 3, order.Items[0].Quantity)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, PaymentMethodCashOnDelivery, order.PaymentMethod)
		assert.Equal(t, PaymentStatusUnpaid, order.PaymentStatus)
	})

	t.Run("raises order placed event", func(t *testing.T) {
		order := newTestOrder(t)
		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), uuid.New(), GenerateOrderNumber(), valueobject.USD,
			uuid.New(), "Earbuds", 0, decimal.NewFromFloat(15.00))
		assert.Error(t, err)
	})

	t.Run("rejects empty order number", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), uuid.New(), "", valueobject.USD,
			uuid.New(), "Earbuds", 1, decimal.NewFromFloat(15.00))
		assert.Error(t, err)
	})
}

func TestOrderStatus_IsValid(t *testing.T) {
	valid := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusValidatedByCustomer,
		OrderStatusCancelled,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %s to be valid", s)
	}
	assert.False(t, OrderStatus("refunded").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	t.Run("owners move freely among non-terminal statuses", func(t *testing.T) {
		assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusConfirmed))
		assert.True(t, OrderStatusShipped.CanTransitionTo(OrderStatusProcessing))
		assert.True(t, OrderStatusDelivered.CanTransitionTo(OrderStatusPending))
	})

	t.Run("cancelled reachable from any non-terminal status", func(t *testing.T) {
		for _, s := range []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered} {
			assert.True(t, s.CanTransitionTo(OrderStatusCancelled), "from %s", s)
		}
	})

	t.Run("terminal statuses accept nothing", func(t *testing.T) {
		assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusPending))
		assert.False(t, OrderStatusValidatedByCustomer.CanTransitionTo(OrderStatusDelivered))
	})

	t.Run("customer-validated unreachable for owners", func(t *testing.T) {
		assert.False(t, OrderStatusDelivered.CanTransitionTo(OrderStatusValidatedByCustomer))
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("updates status and timestamp", func(t *testing.T) {
		order := newTestOrder(t)
		before := order.UpdatedAt
		require.NoError(t, order.ChangeStatus(OrderStatusConfirmed))
		assert.Equal(t, OrderStatusConfirmed, order.Status)
		assert.False(t, order.UpdatedAt.Before(before))
	})

	t.Run("records cancellation time", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.ChangeStatus(OrderStatusCancelled))
		require.NotNil(t, order.CancelledAt)
		assert.True(t, order.IsTerminal())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		order := newTestOrder(t)
		err := order.ChangeStatus("refunded")
		assert.Error(t, err)
		assert.Equal(t, OrderStatusPending, order.Status)
	})

	t.Run("rejects moves out of terminal state", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.ChangeStatus(OrderStatusCancelled))
		assert.Error(t, order.ChangeStatus(OrderStatusPending))
	})
}

func TestOrder_ValidateByCustomer(t *testing.T) {
	t.Run("succeeds only from delivered", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.ChangeStatus(OrderStatusDelivered))
		require.NoError(t, order.ValidateByCustomer())
		assert.Equal(t, OrderStatusValidatedByCustomer, order.Status)
		assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
		assert.NotNil(t, order.ValidatedAt)
	})

	t.Run("fails without state change on wrong status", func(t *testing.T) {
		for _, s := range []OrderStatus{OrderStatusPending, OrderStatusShipped} {
			order := newTestOrder(t)
			require.NoError(t, order.ChangeStatus(s))
			assert.Error(t, order.ValidateByCustomer())
			assert.Equal(t, s, order.Status)
		}
	})

	t.Run("fails when already validated", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.ChangeStatus(OrderStatusDelivered))
		require.NoError(t, order.ValidateByCustomer())
		assert.Error(t, order.ValidateByCustomer())
	})
}

func TestGenerateOrderNumber(t *testing.T) {
	n := GenerateOrderNumber()
	assert.True(t, strings.HasPrefix(n, "ORD-"))
	assert.Len(t, n, len("ORD-")+6)

	// Not a uniqueness guarantee, only a sanity check that the generator
	// is not constant; the database index enforces uniqueness.
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[GenerateOrderNumber()] = true
	}
	assert.Greater(t, len(seen), 1)
}
