package enums

import "fmt"

// EntityKind identifies one of the persisted order-aggregate record types.
// The set is closed: every record the reconciliation engine stores or removes
// carries exactly one of these kinds, and normalization sites switch
// exhaustively over them.
type EntityKind string

const (
	KindOrderHeader            EntityKind = "order_header"
	KindOrderItem              EntityKind = "order_item"
	KindOrderAdjustment        EntityKind = "order_adjustment"
	KindOrderShipGroup         EntityKind = "order_ship_group"
	KindOrderShipGroupAssoc    EntityKind = "order_ship_group_assoc"
	KindOrderPaymentPreference EntityKind = "order_payment_preference"
	KindOrderItemAttribute     EntityKind = "order_item_attribute"
	KindOrderPromoCode         EntityKind = "order_promo_code"
	KindOrderPromoUse          EntityKind = "order_promo_use"
	KindOrderItemChange        EntityKind = "order_item_change"
	KindOrderStatus            EntityKind = "order_status"
)

var validEntityKinds = []EntityKind{
	KindOrderHeader,
	KindOrderItem,
	KindOrderAdjustment,
	KindOrderShipGroup,
	KindOrderShipGroupAssoc,
	KindOrderPaymentPreference,
	KindOrderItemAttribute,
	KindOrderPromoCode,
	KindOrderPromoUse,
	KindOrderItemChange,
	KindOrderStatus,
}

// String implements fmt.Stringer.
func (k EntityKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known EntityKind.
func (k EntityKind) IsValid() bool {
	for _, candidate := range validEntityKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseEntityKind converts raw input into an EntityKind.
func ParseEntityKind(value string) (EntityKind, error) {
	for _, candidate := range validEntityKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid entity kind %q", value)
}
