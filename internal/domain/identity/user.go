package identity

import (
	"github.com/shopfront/backend/internal/domain/shared"
)

// Role represents a user's platform role
type Role string

const (
	RoleOwner Role = "owner" // storefront owner
	RoleAdmin Role = "admin" // platform administrator
)

// IsAdmin reports whether the role grants administrative access
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// PlanFree is the plan every user starts on
const PlanFree = "free"

// User represents a platform account. Shop owners and administrators
// share the same table; customers are not users (they never log in).
type User struct {
	shared.BaseEntity
	Name  string `gorm:"size:200;not null"`
	Phone string `gorm:"size:32;uniqueIndex;not null"`
	Role  Role   `gorm:"size:16;not null;default:owner"`
	// Plan is the user's current subscription plan key. Written only by
	// the payment approval transaction.
	Plan string `gorm:"size:64;not null;default:free"`
}

// TableName returns the database table name
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user on the free plan
func NewUser(name, phone string, role Role) (*User, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "User phone cannot be empty")
	}
	if role != RoleOwner && role != RoleAdmin {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	return &User{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
		Role:       role,
		Plan:       PlanFree,
	}, nil
}
