package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

// OrderPaymentPreference records how (part of) an order is expected to be
// paid. PreferenceID and creation metadata are stamped only when absent so
// surviving preferences keep their identity across reconciliations.
type OrderPaymentPreference struct {
	PreferenceID string                  `gorm:"column:preference_id;primaryKey"`
	OrderID      string                  `gorm:"column:order_id;not null"`
	MethodType   enums.PaymentMethodType `gorm:"column:method_type;type:text;not null"`
	MaxAmount    decimal.Decimal         `gorm:"column:max_amount;type:numeric(18,4);not null"`
	StatusID     enums.PaymentStatus     `gorm:"column:status_id;type:text"`
	CreatedBy    string                  `gorm:"column:created_by"`
	CreatedAt    time.Time               `gorm:"column:created_at"`
}

// TableName overrides gorm's pluralized default.
func (OrderPaymentPreference) TableName() string { return "order_payment_preferences" }

// Kind implements Record.
func (*OrderPaymentPreference) Kind() enums.EntityKind { return enums.KindOrderPaymentPreference }

// SetOrderID implements Record.
func (p *OrderPaymentPreference) SetOrderID(orderID string) { p.OrderID = orderID }
