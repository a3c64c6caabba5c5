package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

// OrderItem is one line of a persisted order, keyed by order id plus the
// stable item sequence id assigned before reconciliation runs.
type OrderItem struct {
	OrderID         string          `gorm:"column:order_id;primaryKey"`
	ItemSeqID       string          `gorm:"column:item_seq_id;primaryKey"`
	ProductID       string          `gorm:"column:product_id;not null"`
	Quantity        decimal.Decimal `gorm:"column:quantity;type:numeric(18,6);not null"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(18,4);not null"`
	ItemDescription string          `gorm:"column:item_description"`
	Comments        string          `gorm:"column:comments"`
	IsPromo         bool            `gorm:"column:is_promo;not null;default:false"`
	StatusID        enums.ItemStatus `gorm:"column:status_id;type:text;not null;default:'item_created'"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides gorm's pluralized default.
func (OrderItem) TableName() string { return "order_items" }

// Kind implements Record.
func (*OrderItem) Kind() enums.EntityKind { return enums.KindOrderItem }

// SetOrderID implements Record.
func (i *OrderItem) SetOrderID(orderID string) { i.OrderID = orderID }
