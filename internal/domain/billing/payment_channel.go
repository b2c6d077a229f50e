package billing

import (
	"github.com/shopfront/backend/internal/domain/shared"
)

// PaymentChannel is a configured phone-money provider subscribers can
// pay through (e.g. Orange Money, MTN MoMo, Wave).
type PaymentChannel struct {
	shared.BaseEntity
	Key          string `gorm:"size:64;uniqueIndex;not null"`
	Name         string `gorm:"size:200;not null"`
	AccountPhone string `gorm:"size:32;not null"`
	Instructions string `gorm:"size:1000"`
	Active       bool   `gorm:"not null;default:true"`
	SortOrder    int    `gorm:"not null;default:0"`
}

// TableName returns the database table name
func (PaymentChannel) TableName() string {
	return "payment_channels"
}
