// Package catalog implements the thin shop and product management the
// storefront joins against.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shopfront/backend/internal/application/authz"
	"github.com/shopfront/backend/internal/domain/catalog"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
)

// CatalogService handles shop and product use cases
type CatalogService struct {
	shops    catalog.ShopRepository
	products catalog.ProductRepository
	guard    *authz.Guard
}

// NewCatalogService creates a new catalog service
func NewCatalogService(shops catalog.ShopRepository, products catalog.ProductRepository, guard *authz.Guard) *CatalogService {
	return &CatalogService{shops: shops, products: products, guard: guard}
}

// CreateShop creates a shop owned by the caller
func (s *CatalogService) CreateShop(ctx context.Context, ownerID uuid.UUID, req *CreateShopRequest) (*ShopResponse, error) {
	currency := valueobject.Currency(req.Currency)
	if req.Currency == "" {
		currency = valueobject.DefaultCurrency
	}
	shop, err := catalog.NewShop(ownerID, req.Name, req.Slug, currency)
	if err != nil {
		return nil, err
	}
	if err := s.shops.Save(ctx, shop); err != nil {
		return nil, err
	}
	return toShopResponse(shop), nil
}

// ListMyShops returns the caller's shops
func (s *CatalogService) ListMyShops(ctx context.Context, ownerID uuid.UUID) ([]ShopResponse, error) {
	shops, err := s.shops.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]ShopResponse, 0, len(shops))
	for i := range shops {
		out = append(out, *toShopResponse(&shops[i]))
	}
	return out, nil
}

// CreateProduct adds a product to one of the caller's shops
func (s *CatalogService) CreateProduct(ctx context.Context, callerID uuid.UUID, req *CreateProductRequest) (*ProductResponse, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Invalid shop ID")
	}
	if err := s.guard.AuthorizeShop(ctx, callerID, shopID); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Invalid price format")
	}

	product, err := catalog.NewProduct(shopID, req.Name, req.Description, price)
	if err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateProductPrice changes a product's price. Existing orders keep
// their snapshots.
func (s *CatalogService) UpdateProductPrice(ctx context.Context, callerID, productID uuid.UUID, req *UpdateProductPriceRequest) (*ProductResponse, error) {
	if err := s.guard.AuthorizeProduct(ctx, callerID, productID); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_PRICE", "Invalid price format")
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.UpdatePrice(price); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct returns an active product for the public storefront
func (s *CatalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindActiveByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListShopProducts returns a shop's products for its owner
func (s *CatalogService) ListShopProducts(ctx context.Context, callerID, shopID uuid.UUID) ([]ProductResponse, error) {
	if err := s.guard.AuthorizeShop(ctx, callerID, shopID); err != nil {
		return nil, err
	}
	products, err := s.products.FindByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *toProductResponse(&products[i]))
	}
	return out, nil
}
