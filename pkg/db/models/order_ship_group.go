package models

import (
	"github.com/shopspring/decimal"

	"github.com/mateovidal/ordersync-backend/pkg/enums"
)

// OrderShipGroup groups order items into a single shipment with one method
// and carrier. A set SupplierPartyID marks the group as drop-shipped: those
// groups are excluded from inventory reservation.
type OrderShipGroup struct {
	OrderID              string          `gorm:"column:order_id;primaryKey"`
	ShipGroupSeqID       string          `gorm:"column:ship_group_seq_id;primaryKey"`
	ShipmentMethodTypeID string          `gorm:"column:shipment_method_type_id;not null"`
	CarrierPartyID       string          `gorm:"column:carrier_party_id"`
	CarrierRoleTypeID    string          `gorm:"column:carrier_role_type_id"`
	SupplierPartyID      *string         `gorm:"column:supplier_party_id"`
	ShippingEstimate     decimal.Decimal `gorm:"column:shipping_estimate;type:numeric(18,4);not null;default:0"`
	ContactMechID        string          `gorm:"column:contact_mech_id"`
}

// TableName overrides gorm's pluralized default.
func (OrderShipGroup) TableName() string { return "order_ship_groups" }

// Kind implements Record.
func (*OrderShipGroup) Kind() enums.EntityKind { return enums.KindOrderShipGroup }

// SetOrderID implements Record.
func (g *OrderShipGroup) SetOrderID(orderID string) { g.OrderID = orderID }

// OrderShipGroupAssoc links one item (with a quantity) into a ship group.
type OrderShipGroupAssoc struct {
	OrderID        string          `gorm:"column:order_id;primaryKey"`
	ShipGroupSeqID string          `gorm:"column:ship_group_seq_id;primaryKey"`
	ItemSeqID      string          `gorm:"column:item_seq_id;primaryKey"`
	Quantity       decimal.Decimal `gorm:"column:quantity;type:numeric(18,6);not null"`
}

// TableName overrides gorm's pluralized default.
func (OrderShipGroupAssoc) TableName() string { return "order_ship_group_assocs" }

// Kind implements Record.
func (*OrderShipGroupAssoc) Kind() enums.EntityKind { return enums.KindOrderShipGroupAssoc }

// SetOrderID implements Record.
func (a *OrderShipGroupAssoc) SetOrderID(orderID string) { a.OrderID = orderID }
