package ordering

import (
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Event types for the ordering context
const (
	EventTypeOrderPlaced = "ordering.order_placed"
)

// OrderPlacedEvent is raised when a public order is created. Its only
// subscriber is the best-effort external ledger sync.
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string               `json:"order_number"`
	ShopID      uuid.UUID            `json:"shop_id"`
	CustomerID  uuid.UUID            `json:"customer_id"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Currency    valueobject.Currency `json:"currency"`
}

// NewOrderPlacedEvent creates an OrderPlacedEvent from an order
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, "Order", order.ID),
		OrderNumber:     order.OrderNumber,
		ShopID:          order.ShopID,
		CustomerID:      order.CustomerID,
		TotalAmount:     order.TotalAmount,
		Currency:        order.Currency,
	}
}
