package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

// OrderItemChange is the audit trail row written for every detected item
// modification or append. For updates, Quantity and UnitPrice hold deltas
// (new minus old); for appends, Quantity holds the absolute quantity.
type OrderItemChange struct {
	ChangeID        string               `gorm:"column:change_id;primaryKey"`
	OrderID         string               `gorm:"column:order_id;not null"`
	ItemSeqID       string               `gorm:"column:item_seq_id;not null"`
	ChangeType      enums.ItemChangeType `gorm:"column:change_type;type:text;not null"`
	Quantity        *decimal.Decimal     `gorm:"column:quantity;type:numeric(18,6)"`
	UnitPrice       *decimal.Decimal     `gorm:"column:unit_price;type:numeric(18,4)"`
	ItemDescription *string              `gorm:"column:item_description"`
	ChangeComments  *string              `gorm:"column:change_comments"`
	ReasonID        *string              `gorm:"column:reason_id"`
	ChangedBy       string               `gorm:"column:changed_by;not null"`
	ChangedAt       time.Time            `gorm:"column:changed_at;not null"`
}

// TableName overrides gorm's pluralized default.
func (OrderItemChange) TableName() string { return "order_item_changes" }

// Kind implements Record.
func (*OrderItemChange) Kind() enums.EntityKind { return enums.KindOrderItemChange }

// SetOrderID implements Record.
func (c *OrderItemChange) SetOrderID(orderID string) { c.OrderID = orderID }
