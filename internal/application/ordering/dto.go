package ordering

import (
	"time"

	"github.com/shopfront/backend/internal/domain/ordering"
	"github.com/shopfront/backend/internal/domain/shared"
)

// PlaceOrderRequest is the public storefront checkout payload. No
// authentication: the customer identifies by phone number.
type PlaceOrderRequest struct {
	ProductID       string `json:"product_id" binding:"required,uuid"`
	Quantity        int    `json:"quantity" binding:"required,min=1"`
	CustomerName    string `json:"customer_name" binding:"required,max=200"`
	CustomerPhone   string `json:"customer_phone" binding:"required,max=32"`
	DeliveryAddress string `json:"delivery_address" binding:"required,max=500"`
	City            string `json:"city" binding:"max=100"`
}

// UpdateOrderStatusRequest carries an owner-driven status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderItemResponse is a line item snapshot
type OrderItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Amount      string `json:"amount"`
}

// OrderResponse is the owner-facing order representation
type OrderResponse struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"order_number"`
	ShopID        string              `json:"shop_id"`
	CustomerID    string              `json:"customer_id"`
	Items         []OrderItemResponse `json:"items"`
	TotalAmount   string              `json:"total_amount"`
	Currency      string              `json:"currency"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"payment_status"`
	PaymentMethod string              `json:"payment_method"`
	ValidatedAt   *time.Time          `json:"validated_at,omitempty"`
	CancelledAt   *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// PublicOrderResponse is the unauthenticated tracking view. It carries
// no line items and no customer data.
type PublicOrderResponse struct {
	OrderNumber string `json:"order_number"`
	TotalAmount string `json:"total_amount"`
	Currency    string `json:"currency"`
	ShopName    string `json:"shop_name"`
	CreatedAt   string `json:"created_at"`
}

// OrderListResponse is a paginated order list
type OrderListResponse struct {
	Orders   []OrderResponse `json:"orders"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

func toOrderResponse(order *ordering.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Amount:      item.Amount.StringFixed(2),
		})
	}
	return &OrderResponse{
		ID:            order.ID.String(),
		OrderNumber:   order.OrderNumber,
		ShopID:        order.ShopID.String(),
		CustomerID:    order.CustomerID.String(),
		Items:         items,
		TotalAmount:   order.TotalAmount.StringFixed(2),
		Currency:      string(order.Currency),
		Status:        order.Status.String(),
		PaymentStatus: string(order.PaymentStatus),
		PaymentMethod: string(order.PaymentMethod),
		ValidatedAt:   order.ValidatedAt,
		CancelledAt:   order.CancelledAt,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func toOrderListResponse(orders []ordering.Order, total int64, filter shared.Filter) *OrderListResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, *toOrderResponse(&orders[i]))
	}
	return &OrderListResponse{
		Orders:   out,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
}
