package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

// OrderAdjustment is a monetary modifier (shipping, tax, promotion, fee)
// applied at order or item level. AdjustmentID is generated at store time
// only when absent, so an adjustment that already owns an id is never
// duplicated.
type OrderAdjustment struct {
	AdjustmentID   string               `gorm:"column:adjustment_id;primaryKey"`
	OrderID        string               `gorm:"column:order_id;not null"`
	ItemSeqID      string               `gorm:"column:item_seq_id;not null;default:'_NA_'"`
	ShipGroupSeqID string               `gorm:"column:ship_group_seq_id"`
	AdjustmentType enums.AdjustmentType `gorm:"column:adjustment_type;type:text;not null"`
	Amount         decimal.Decimal      `gorm:"column:amount;type:numeric(18,4);not null"`
	Description    string               `gorm:"column:description"`
	IsManual       bool                 `gorm:"column:is_manual;not null;default:false"`
	PromoID        *string              `gorm:"column:promo_id"`
	CreatedBy      string               `gorm:"column:created_by"`
	CreatedAt      time.Time            `gorm:"column:created_at"`
}

// TableName overrides gorm's pluralized default.
func (OrderAdjustment) TableName() string { return "order_adjustments" }

// Kind implements Record.
func (*OrderAdjustment) Kind() enums.EntityKind { return enums.KindOrderAdjustment }

// SetOrderID implements Record.
func (a *OrderAdjustment) SetOrderID(orderID string) { a.OrderID = orderID }
