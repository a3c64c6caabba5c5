package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem tracks available/reserved quantity per product at one
// product store.
type InventoryItem struct {
	ProductID      string          `gorm:"column:product_id;primaryKey"`
	ProductStoreID string          `gorm:"column:product_store_id;primaryKey"`
	AvailableQty   decimal.Decimal `gorm:"column:available_qty;type:numeric(18,6);not null;default:0"`
	ReservedQty    decimal.Decimal `gorm:"column:reserved_qty;type:numeric(18,6);not null;default:0"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides gorm's pluralized default.
func (InventoryItem) TableName() string { return "inventory_items" }
