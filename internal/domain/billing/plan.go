package billing

import (
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Plan is a configured subscription tier. Rows live in plans_config and
// are read fresh on every request; the core never caches them.
type Plan struct {
	shared.BaseEntity
	Key             string               `gorm:"size:64;uniqueIndex;not null"`
	Name            string               `gorm:"size:200;not null"`
	Price           decimal.Decimal      `gorm:"type:numeric(14,2);not null"`
	Currency        valueobject.Currency `gorm:"size:3;not null"`
	DiscountPercent decimal.Decimal      `gorm:"type:numeric(5,2);not null;default:0"`
	DurationMonths  int                  `gorm:"not null;default:1"`
	Active          bool                 `gorm:"not null;default:true"`
	SortOrder       int                  `gorm:"not null;default:0"`
}

// TableName returns the database table name
func (Plan) TableName() string {
	return "plans_config"
}

// FinalAmount computes the amount a subscriber pays: list price after
// the configured discount, rounded per the currency rule. Computed once
// at payment creation and snapshotted; never recomputed.
func (p *Plan) FinalAmount() (valueobject.Money, error) {
	price, err := valueobject.NewMoney(p.Price, p.Currency)
	if err != nil {
		return valueobject.Money{}, err
	}
	return price.ApplyDiscountPercent(p.DiscountPercent)
}
