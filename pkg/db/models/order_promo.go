package models

import (
	"github.com/shopspring/decimal"

	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

// OrderPromoCode links a promotion code the customer entered to an order.
// The stored set for an order is always replaced wholesale from the cart.
type OrderPromoCode struct {
	OrderID     string `gorm:"column:order_id;primaryKey"`
	PromoCodeID string `gorm:"column:promo_code_id;primaryKey"`
}

// TableName overrides gorm's pluralized default.
func (OrderPromoCode) TableName() string { return "order_promo_codes" }

// Kind implements Record.
func (*OrderPromoCode) Kind() enums.EntityKind { return enums.KindOrderPromoCode }

// SetOrderID implements Record.
func (c *OrderPromoCode) SetOrderID(orderID string) { c.OrderID = orderID }

// OrderPromoUse records one application of a promotion against an order.
// Like promo codes, uses are replaced wholesale on every reconciliation.
type OrderPromoUse struct {
	OrderID       string          `gorm:"column:order_id;primaryKey"`
	PromoID       string          `gorm:"column:promo_id;primaryKey"`
	PromoCodeID   string          `gorm:"column:promo_code_id;primaryKey"`
	SequenceID    string          `gorm:"column:sequence_id;primaryKey"`
	TotalDiscount decimal.Decimal `gorm:"column:total_discount;type:numeric(18,4);not null"`
	QuantityLeft  decimal.Decimal `gorm:"column:quantity_left;type:numeric(18,6);not null;default:0"`
}

// TableName overrides gorm's pluralized default.
func (OrderPromoUse) TableName() string { return "order_promo_uses" }

// Kind implements Record.
func (*OrderPromoUse) Kind() enums.EntityKind { return enums.KindOrderPromoUse }

// SetOrderID implements Record.
func (u *OrderPromoUse) SetOrderID(orderID string) { u.OrderID = orderID }
