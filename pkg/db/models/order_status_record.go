package models

import (
	"time"

	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

// OrderStatusRecord marks a status transition for an order item, one row per
// transition. Reconciliation writes an item_created row for every item that
// is new to the persisted order.
type OrderStatusRecord struct {
	StatusRecordID string           `gorm:"column:status_record_id;primaryKey"`
	OrderID        string           `gorm:"column:order_id;not null"`
	ItemSeqID      string           `gorm:"column:item_seq_id;not null"`
	StatusID       enums.ItemStatus `gorm:"column:status_id;type:text;not null"`
	StatusDatetime time.Time        `gorm:"column:status_datetime;not null"`
	StatusUserID   string           `gorm:"column:status_user_id;not null"`
}

// TableName overrides gorm's pluralized default.
func (OrderStatusRecord) TableName() string { return "order_status_records" }

// Kind implements Record.
func (*OrderStatusRecord) Kind() enums.EntityKind { return enums.KindOrderStatus }

// SetOrderID implements Record.
func (s *OrderStatusRecord) SetOrderID(orderID string) { s.OrderID = orderID }
