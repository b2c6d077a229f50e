package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopfront/backend/internal/application/authz"
)

// GormOwnershipResolver implements authz.OwnershipResolver with joins
// through the shops table
type GormOwnershipResolver struct {
	db *gorm.DB
}

var _ authz.OwnershipResolver = (*GormOwnershipResolver)(nil)

// NewGormOwnershipResolver creates a new ownership resolver
func NewGormOwnershipResolver(db *gorm.DB) *GormOwnershipResolver {
	return &GormOwnershipResolver{db: db}
}

type ownerRow struct {
	OwnerID uuid.UUID
}

// ShopOwner returns the owning user of a shop
func (r *GormOwnershipResolver) ShopOwner(ctx context.Context, shopID uuid.UUID) (uuid.UUID, error) {
	var row ownerRow
	err := r.db.WithContext(ctx).Table("shops").
		Select("owner_id").
		Where("id = ?", shopID).
		Take(&row).Error
	if err != nil {
		return uuid.Nil, translateError(err)
	}
	return row.OwnerID, nil
}

// ProductOwner returns the owning user of a product's shop
func (r *GormOwnershipResolver) ProductOwner(ctx context.Context, productID uuid.UUID) (uuid.UUID, error) {
	var row ownerRow
	err := r.db.WithContext(ctx).Table("products").
		Select("shops.owner_id AS owner_id").
		Joins("JOIN shops ON shops.id = products.shop_id").
		Where("products.id = ?", productID).
		Take(&row).Error
	if err != nil {
		return uuid.Nil, translateError(err)
	}
	return row.OwnerID, nil
}

// OrderOwner returns the owning user of an order's shop
func (r *GormOwnershipResolver) OrderOwner(ctx context.Context, orderID uuid.UUID) (uuid.UUID, error) {
	var row ownerRow
	err := r.db.WithContext(ctx).Table("orders").
		Select("shops.owner_id AS owner_id").
		Joins("JOIN shops ON shops.id = orders.shop_id").
		Where("orders.id = ?", orderID).
		Take(&row).Error
	if err != nil {
		return uuid.Nil, translateError(err)
	}
	return row.OwnerID, nil
}
