package ordering

import (
	"github.com/shopfront/backend/internal/domain/shared"
)

// Customer is a buyer identified by phone number. Customers never
// authenticate; repeat orders from the same phone reuse the same row.
type Customer struct {
	shared.BaseEntity
	Name    string `gorm:"size:200;not null"`
	Phone   string `gorm:"size:32;uniqueIndex;not null"`
	Address string `gorm:"size:500"`
	City    string `gorm:"size:100"`
}

// TableName returns the database table name
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a customer record
func NewCustomer(name, phone, address, city string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Customer phone cannot be empty")
	}
	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
		Address:    address,
		City:       city,
	}, nil
}
