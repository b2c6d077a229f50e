package catalog

import (
	"github.com/google/uuid"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
)

// Shop represents a storefront owned by a single user.
// Ownership of products and orders is always resolved through the shop.
type Shop struct {
	shared.BaseEntity
	OwnerID  uuid.UUID            `gorm:"type:uuid;not null;index"`
	Name     string               `gorm:"size:200;not null"`
	Slug     string               `gorm:"size:200;uniqueIndex;not null"`
	Currency valueobject.Currency `gorm:"size:3;not null;default:XOF"`
	Active   bool                 `gorm:"not null;default:true"`
}

// TableName returns the database table name
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a new shop for an owner
func NewShop(ownerID uuid.UUID, name, slug string, currency valueobject.Currency) (*Shop, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Shop owner cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Shop name cannot be empty")
	}
	if slug == "" {
		return nil, shared.NewDomainError("INVALID_SLUG", "Shop slug cannot be empty")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", "Unsupported currency")
	}
	return &Shop{
		BaseEntity: shared.NewBaseEntity(),
		OwnerID:    ownerID,
		Name:       name,
		Slug:       slug,
		Currency:   currency,
		Active:     true,
	}, nil
}

// IsOwnedBy reports whether the given user owns this shop
func (s *Shop) IsOwnedBy(userID uuid.UUID) bool {
	return s.OwnerID == userID
}
