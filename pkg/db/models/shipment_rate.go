package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentRate is the rate-table row the shipping estimator reads: a flat
// base amount plus a per-unit amount for one carrier/method pair.
type ShipmentRate struct {
	CarrierPartyID       string          `gorm:"column:carrier_party_id;primaryKey"`
	ShipmentMethodTypeID string          `gorm:"column:shipment_method_type_id;primaryKey"`
	BaseAmount           decimal.Decimal `gorm:"column:base_amount;type:numeric(18,4);not null"`
	PerUnitAmount        decimal.Decimal `gorm:"column:per_unit_amount;type:numeric(18,4);not null;default:0"`
	UpdatedAt            time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides gorm's pluralized default.
func (ShipmentRate) TableName() string { return "shipment_rates" }
