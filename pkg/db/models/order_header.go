package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

// OrderHeader is the root record of a persisted order aggregate.
type OrderHeader struct {
	OrderID          string          `gorm:"column:order_id;primaryKey"`
	OrderType        enums.OrderType `gorm:"column:order_type;type:text;not null"`
	ProductStoreID   string          `gorm:"column:product_store_id;not null"`
	BillingAccountID *string         `gorm:"column:billing_account_id"`
	GrandTotal       decimal.Decimal `gorm:"column:grand_total;type:numeric(18,4);not null;default:0"`
	StatusID         string          `gorm:"column:status_id;not null"`
	CreatedBy        string          `gorm:"column:created_by;not null"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides gorm's pluralized default.
func (OrderHeader) TableName() string { return "order_headers" }

// Kind implements Record.
func (*OrderHeader) Kind() enums.EntityKind { return enums.KindOrderHeader }

// SetOrderID implements Record.
func (h *OrderHeader) SetOrderID(orderID string) { h.OrderID = orderID }
