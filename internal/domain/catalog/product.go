package catalog

import (
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents a sellable item in a shop. Its price is the live
// list price; orders snapshot it at placement time and never read it back.
type Product struct {
	shared.BaseEntity
	ShopID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"size:200;not null"`
	Description string          `gorm:"size:2000"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ImageURL    string          `gorm:"size:512"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in a shop
func NewProduct(shopID uuid.UUID, name, description string, price decimal.Decimal) (*Product, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Product shop cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		ShopID:      shopID,
		Name:        name,
		Description: description,
		Price:       price,
		Active:      true,
	}, nil
}

// UpdatePrice changes the list price. Existing orders are unaffected:
// they carry their own price snapshot.
func (p *Product) UpdatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	p.Price = price
	p.Touch()
	return nil
}

// Deactivate hides the product from public order placement
func (p *Product) Deactivate() {
	p.Active = false
	p.Touch()
}
