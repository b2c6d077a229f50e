package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopfront/backend/internal/domain/ordering"
	"github.com/shopfront/backend/internal/domain/shared"
)

// placeMaxAttempts bounds the order-number collision retry loop. Each
// attempt is a fresh transaction because a unique violation aborts the
// current one on postgres.
const placeMaxAttempts = 5

const ownedOrderCondition = "id = ? AND shop_id IN (SELECT id FROM shops WHERE owner_id = ?)"

// GormOrderRepository implements ordering.OrderRepository
type GormOrderRepository struct {
	db *gorm.DB
}

var _ ordering.OrderRepository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new order repository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its line items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

// Place persists the order, its line item and, for an unknown phone,
// the customer in one transaction. A colliding order number or a
// concurrent customer insert on the same phone rolls the transaction
// back and retries with a fresh one.
func (r *GormOrderRepository) Place(ctx context.Context, order *ordering.Order, customer *ordering.Customer) error {
	var err error
	for attempt := 0; attempt < placeMaxAttempts; attempt++ {
		err = r.placeOnce(ctx, order, customer)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return translateError(err)
		}
		order.OrderNumber = ordering.GenerateOrderNumber()
	}
	return translateError(err)
}

func (r *GormOrderRepository) placeOnce(ctx context.Context, order *ordering.Order, customer *ordering.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing ordering.Customer
		err := tx.Where("phone = ?", customer.Phone).First(&existing).Error
		switch {
		case err == nil:
			order.CustomerID = existing.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(customer).Error; err != nil {
				return err
			}
			order.CustomerID = customer.ID
		default:
			return err
		}

		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		return tx.Create(order).Error
	})
}

// UpdateStatusOwned applies an owner-driven transition. The ownership
// subquery is part of both the read and the write, so a row that stops
// being owned mid-flight simply affects zero rows.
func (r *GormOrderRepository) UpdateStatusOwned(ctx context.Context, orderID, ownerID uuid.UUID, status ordering.OrderStatus) (*ordering.Order, error) {
	var order ordering.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Items").
			Where(ownedOrderCondition, orderID, ownerID).
			First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrForbidden
			}
			return err
		}

		if err := order.ChangeStatus(status); err != nil {
			return err
		}

		result := tx.Model(&ordering.Order{}).
			Where(ownedOrderCondition, orderID, ownerID).
			Updates(map[string]interface{}{
				"status":       order.Status,
				"cancelled_at": order.CancelledAt,
				"updated_at":   order.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrForbidden
		}
		return nil
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

// ValidateByCustomer performs the delivered -> validated_by_customer
// transition as a single conditional update. Zero rows affected means
// the order is absent or not in delivered state; both surface as the
// same not-found error.
func (r *GormOrderRepository) ValidateByCustomer(ctx context.Context, orderID uuid.UUID) error {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&ordering.Order{}).
		Where("id = ? AND status = ?", orderID, ordering.OrderStatusDelivered).
		Updates(map[string]interface{}{
			"status":         ordering.OrderStatusValidatedByCustomer,
			"payment_status": ordering.PaymentStatusPaid,
			"validated_at":   now,
			"updated_at":     now,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("NOT_FOUND", "Order not found or not awaiting confirmation")
	}
	return nil
}

// FindPublicSummary returns the unauthenticated tracking projection
func (r *GormOrderRepository) FindPublicSummary(ctx context.Context, orderID uuid.UUID) (*ordering.PublicOrderSummary, error) {
	var row struct {
		OrderNumber string
		TotalAmount decimal.Decimal
		Currency    string
		ShopName    string
		CreatedAt   time.Time
	}
	err := r.db.WithContext(ctx).Table("orders").
		Select("orders.order_number, orders.total_amount, orders.currency, shops.name AS shop_name, orders.created_at").
		Joins("JOIN shops ON shops.id = orders.shop_id").
		Where("orders.id = ?", orderID).
		Take(&row).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &ordering.PublicOrderSummary{
		OrderNumber: row.OrderNumber,
		TotalAmount: row.TotalAmount.StringFixed(2),
		Currency:    row.Currency,
		ShopName:    row.ShopName,
		CreatedAt:   row.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// FindByShop returns a shop's orders, newest first
func (r *GormOrderRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]ordering.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&ordering.Order{}).Where("shop_id = ?", shopID)

	if status, ok := filter.Filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	var orders []ordering.Order
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, translateError(err)
	}
	return orders, total, nil
}

// GormCustomerRepository implements ordering.CustomerRepository
type GormCustomerRepository struct {
	db *gorm.DB
}

var _ ordering.CustomerRepository = (*GormCustomerRepository)(nil)

// NewGormCustomerRepository creates a new customer repository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByPhone finds a customer by phone number
func (r *GormCustomerRepository) FindByPhone(ctx context.Context, phone string) (*ordering.Customer, error) {
	var customer ordering.Customer
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&customer).Error; err != nil {
		return nil, translateError(err)
	}
	return &customer, nil
}

// Save persists a customer
func (r *GormCustomerRepository) Save(ctx context.Context, customer *ordering.Customer) error {
	return translateError(r.db.WithContext(ctx).Save(customer).Error)
}
