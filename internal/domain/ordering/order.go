package ordering

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	OrderStatusPending             OrderStatus = "pending"
	OrderStatusConfirmed           OrderStatus = "confirmed"
	OrderStatusProcessing          OrderStatus = "processing"
	OrderStatusShipped             OrderStatus = "shipped"
	OrderStatusDelivered           OrderStatus = "delivered"
	OrderStatusValidatedByCustomer OrderStatus = "validated_by_customer"
	OrderStatusCancelled           OrderStatus = "cancelled"
)

// IsValid checks if the status is a recognized OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusValidatedByCustomer,
		OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is permitted
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusValidatedByCustomer || s == OrderStatusCancelled
}

// CanTransitionTo checks whether an owner-driven move to target is
// permitted. Owners may move freely among the recognized non-terminal
// statuses (confirmed behavior: dashboards correct mistakes this way);
// the customer-validated status is only reachable through
// ValidateByCustomer, and terminal states accept nothing.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if !target.IsValid() {
		return false
	}
	if s.IsTerminal() {
		return false
	}
	if target == OrderStatusValidatedByCustomer {
		return false
	}
	return true
}

// PaymentMethod represents how an order is paid
type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// OrderItem is a line item with price and name captured at order time.
// The snapshot is immutable: later product edits never change it.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"size:200;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the database table name
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem snapshots a product into an order line
func NewOrderItem(orderID, productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:   time.Now(),
	}, nil
}

// Order represents a customer order aggregate root
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber   string               `gorm:"size:32;uniqueIndex;not null"`
	ShopID        uuid.UUID            `gorm:"type:uuid;not null;index"`
	CustomerID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	Items         []OrderItem          `gorm:"foreignKey:OrderID"`
	TotalAmount   decimal.Decimal      `gorm:"type:numeric(14,2);not null"`
	Currency      valueobject.Currency `gorm:"size:3;not null"`
	Status        OrderStatus          `gorm:"size:32;not null;index"`
	PaymentStatus PaymentStatus        `gorm:"size:16;not null"`
	PaymentMethod PaymentMethod        `gorm:"size:32;not null"`
	ValidatedAt   *time.Time
	CancelledAt   *time.Time
}

// TableName returns the database table name
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending cash-on-delivery order with a single line
// item. Total amount is the item snapshot, computed once.
func NewOrder(shopID, customerID uuid.UUID, orderNumber string, currency valueobject.Currency, productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*Order, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Shop ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		ShopID:            shopID,
		CustomerID:        customerID,
		Currency:          currency,
		Status:            OrderStatusPending,
		PaymentStatus:     PaymentStatusUnpaid,
		PaymentMethod:     PaymentMethodCashOnDelivery,
	}

	item, err := NewOrderItem(order.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}
	order.Items = []OrderItem{*item}
	order.TotalAmount = item.Amount

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// ChangeStatus applies an owner-driven status change
func (o *Order) ChangeStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	now := time.Now()
	o.Status = target
	if target == OrderStatusCancelled {
		o.CancelledAt = &now
	}
	o.UpdatedAt = now
	return nil
}

// ValidateByCustomer transitions a delivered order to its customer-
// validated terminal state. Any other current status is rejected.
func (o *Order) ValidateByCustomer() error {
	if o.Status != OrderStatusDelivered {
		return shared.NewDomainError("INVALID_STATE", "Order is not in a deliverable-confirmation state")
	}
	now := time.Now()
	o.Status = OrderStatusValidatedByCustomer
	o.PaymentStatus = PaymentStatusPaid
	o.ValidatedAt = &now
	o.UpdatedAt = now
	return nil
}

// IsTerminal reports whether the order reached a terminal state
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// orderNumberPrefix is the human-readable order number prefix
const orderNumberPrefix = "ORD-"

// GenerateOrderNumber returns a candidate order number of the form
// ORD-######. The suffix is drawn from crypto/rand, so numbers created
// in the same millisecond do not collide the way truncated timestamps
// do; the unique index on orders.order_number catches the residual
// collisions and callers retry.
func GenerateOrderNumber() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	n := binary.BigEndian.Uint32(b[:]) % 1000000
	return fmt.Sprintf("%s%06d", orderNumberPrefix, n)
}
