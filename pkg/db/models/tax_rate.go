package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate is the per-product-store sales tax percentage applied by the tax
// calculator.
type TaxRate struct {
	ProductStoreID string          `gorm:"column:product_store_id;primaryKey"`
	RatePercent    decimal.Decimal `gorm:"column:rate_percent;type:numeric(8,4);not null"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides gorm's pluralized default.
func (TaxRate) TableName() string { return "tax_rates" }
