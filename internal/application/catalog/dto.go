package catalog

import (
	"time"

	"github.com/shopfront/backend/internal/domain/catalog"
)

// CreateShopRequest creates a shop for the authenticated owner
type CreateShopRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Slug     string `json:"slug" binding:"required,max=100"`
	Currency string `json:"currency" binding:"omitempty,oneof=XOF USD EUR GHS NGN"`
}

// CreateProductRequest adds a product to an owned shop
type CreateProductRequest struct {
	ShopID      string `json:"shop_id" binding:"required,uuid"`
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Price       string `json:"price" binding:"required"`
}

// UpdateProductPriceRequest changes a product's price
type UpdateProductPriceRequest struct {
	Price string `json:"price" binding:"required"`
}

// ShopResponse is the shop representation
type ShopResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Currency  string    `json:"currency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductResponse is the product representation
type ProductResponse struct {
	ID          string    `json:"id"`
	ShopID      string    `json:"shop_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	ImageURL    string    `json:"image_url,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func toShopResponse(shop *catalog.Shop) *ShopResponse {
	return &ShopResponse{
		ID:        shop.ID.String(),
		Name:      shop.Name,
		Slug:      shop.Slug,
		Currency:  string(shop.Currency),
		Active:    shop.Active,
		CreatedAt: shop.CreatedAt,
	}
}

func toProductResponse(product *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:          product.ID.String(),
		ShopID:      product.ShopID.String(),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.StringFixed(2),
		ImageURL:    product.ImageURL,
		Active:      product.Active,
		CreatedAt:   product.CreatedAt,
	}
}
