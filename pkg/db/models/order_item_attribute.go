package models

import "github.com/mateovidal/ordersync-backend/pkg/enums"

// OrderItemAttribute is a free-form name/value pair attached to one item.
// Attributes cleared by the user materialize with an empty value and are
// removed during reconciliation instead of stored.
type OrderItemAttribute struct {
	OrderID   string `gorm:"column:order_id;primaryKey"`
	ItemSeqID string `gorm:"column:item_seq_id;primaryKey"`
	Name      string `gorm:"column:name;primaryKey"`
	Value     string `gorm:"column:value"`
}

// TableName overrides gorm's pluralized default.
func (OrderItemAttribute) TableName() string { return "order_item_attributes" }

// Kind implements Record.
func (*OrderItemAttribute) Kind() enums.EntityKind { return enums.KindOrderItemAttribute }

// SetOrderID implements Record.
func (a *OrderItemAttribute) SetOrderID(orderID string) { a.OrderID = orderID }
