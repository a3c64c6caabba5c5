package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promo is a percent-off promotion redeemable through an entered code.
type Promo struct {
	PromoID        string          `gorm:"column:promo_id;primaryKey"`
	Code           string          `gorm:"column:code;uniqueIndex;not null"`
	PercentOff     decimal.Decimal `gorm:"column:percent_off;type:numeric(8,4);not null"`
	UseLimit       *int            `gorm:"column:use_limit"`
	ExpiresAt      *time.Time      `gorm:"column:expires_at"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides gorm's pluralized default.
func (Promo) TableName() string { return "promos" }
