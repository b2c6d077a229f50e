package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ShopRepository provides access to shops
type ShopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]Shop, error)
	Save(ctx context.Context, shop *Shop) error
}

// ProductRepository provides access to products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindActiveByID returns the product only when it is active.
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByShop(ctx context.Context, shopID uuid.UUID) ([]Product, error)
	Save(ctx context.Context, product *Product) error
}
