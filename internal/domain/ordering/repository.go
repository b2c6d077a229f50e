package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
)

// PublicOrderSummary is the projection exposed to unauthenticated
// callers: no line items, no customer PII.
type PublicOrderSummary struct {
	OrderNumber string
	TotalAmount string
	Currency    string
	ShopName    string
	CreatedAt   string
}

// OrderRepository provides access to orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// Place persists a new order, its single line item and, when the
	// phone is unknown, the customer - all in one transaction. A
	// colliding order number is regenerated and retried internally.
	Place(ctx context.Context, order *Order, customer *Customer) error
	// UpdateStatusOwned updates the status only when the order's shop is
	// owned by ownerID; the ownership join runs inside the same
	// statement so a concurrent shop deletion cannot race the check.
	// Returns shared.ErrForbidden when nothing matched.
	UpdateStatusOwned(ctx context.Context, orderID, ownerID uuid.UUID, status OrderStatus) (*Order, error)
	// ValidateByCustomer performs the conditional delivered ->
	// validated_by_customer transition. Absent rows and wrong-state rows
	// fail with the same error so existence is not leaked.
	ValidateByCustomer(ctx context.Context, orderID uuid.UUID) error
	FindPublicSummary(ctx context.Context, orderID uuid.UUID) (*PublicOrderSummary, error)
	FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]Order, int64, error)
}

// CustomerRepository provides access to customers
type CustomerRepository interface {
	FindByPhone(ctx context.Context, phone string) (*Customer, error)
	Save(ctx context.Context, customer *Customer) error
}
