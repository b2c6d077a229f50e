// Package ordering implements the order lifecycle use cases: public
// checkout, owner-driven fulfilment and the customer delivery
// confirmation.
package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/application/authz"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/ordering"
	"github.com/shopfront/backend/internal/domain/shared"
)

// OrderService handles order use cases
type OrderService struct {
	orderRepo    ordering.OrderRepository
	customerRepo ordering.CustomerRepository
	productRepo  catalog.ProductRepository
	shopRepo     catalog.ShopRepository
	guard        *authz.Guard
	publisher    shared.EventPublisher
}

// NewOrderService creates a new order service. publisher may be nil
// when no external ledger is configured.
func NewOrderService(
	orderRepo ordering.OrderRepository,
	customerRepo ordering.CustomerRepository,
	productRepo catalog.ProductRepository,
	shopRepo catalog.ShopRepository,
	guard *authz.Guard,
	publisher shared.EventPublisher,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		shopRepo:     shopRepo,
		guard:        guard,
		publisher:    publisher,
	}
}

// PlaceOrder creates a pending cash-on-delivery order from the public
// storefront. The unit price is snapshotted from the product at this
// moment; later price edits do not touch existing orders.
func (s *OrderService) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*OrderResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Invalid product ID")
	}

	product, err := s.productRepo.FindActiveByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	shop, err := s.shopRepo.FindByID(ctx, product.ShopID)
	if err != nil {
		return nil, err
	}

	customer, err := ordering.NewCustomer(req.CustomerName, req.CustomerPhone, req.DeliveryAddress, req.City)
	if err != nil {
		return nil, err
	}

	order, err := ordering.NewOrder(
		shop.ID,
		customer.ID,
		ordering.GenerateOrderNumber(),
		shop.Currency,
		product.ID,
		product.Name,
		req.Quantity,
		product.Price,
	)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Place(ctx, order, customer); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.Publish(context.WithoutCancel(ctx), order.GetDomainEvents()...)
	}
	order.ClearDomainEvents()

	return toOrderResponse(order), nil
}

// UpdateStatus applies an owner-driven fulfilment transition. The
// ownership check and the update run as one statement inside the
// repository.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, callerID uuid.UUID, req *UpdateOrderStatusRequest) (*OrderResponse, error) {
	status := ordering.OrderStatus(req.Status)
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown order status: "+req.Status)
	}

	if err := s.guard.AuthorizeOrder(ctx, callerID, orderID); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.UpdateStatusOwned(ctx, orderID, callerID, status)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// ValidateByCustomer confirms delivery from the public tracking page.
// Only a delivered order can be confirmed; a missing order and a
// wrong-state order fail identically.
func (s *OrderService) ValidateByCustomer(ctx context.Context, orderID uuid.UUID) error {
	return s.orderRepo.ValidateByCustomer(ctx, orderID)
}

// GetOrder returns the full owner-facing order
func (s *OrderService) GetOrder(ctx context.Context, orderID, callerID uuid.UUID) (*OrderResponse, error) {
	if err := s.guard.AuthorizeOrder(ctx, callerID, orderID); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetPublicSummary returns the unauthenticated tracking projection
func (s *OrderService) GetPublicSummary(ctx context.Context, orderID uuid.UUID) (*PublicOrderResponse, error) {
	summary, err := s.orderRepo.FindPublicSummary(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &PublicOrderResponse{
		OrderNumber: summary.OrderNumber,
		TotalAmount: summary.TotalAmount,
		Currency:    summary.Currency,
		ShopName:    summary.ShopName,
		CreatedAt:   summary.CreatedAt,
	}, nil
}

// ListShopOrders returns the paginated orders of one of the caller's
// shops
func (s *OrderService) ListShopOrders(ctx context.Context, shopID, callerID uuid.UUID, filter shared.Filter) (*OrderListResponse, error) {
	if err := s.guard.AuthorizeShop(ctx, callerID, shopID); err != nil {
		return nil, err
	}
	orders, total, err := s.orderRepo.FindByShop(ctx, shopID, filter)
	if err != nil {
		return nil, err
	}
	return toOrderListResponse(orders, total, filter), nil
}
