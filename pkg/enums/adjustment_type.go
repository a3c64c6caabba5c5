package enums

import "fmt"

// AdjustmentType classifies monetary modifiers attached to an order or a
// single item.
type AdjustmentType string

const (
	AdjustmentShippingCharges AdjustmentType = "shipping_charges"
	AdjustmentSalesTax        AdjustmentType = "sales_tax"
	AdjustmentPromotion       AdjustmentType = "promotion_adjustment"
	AdjustmentFee             AdjustmentType = "fee"
)

var validAdjustmentTypes = []AdjustmentType{
	AdjustmentShippingCharges,
	AdjustmentSalesTax,
	AdjustmentPromotion,
	AdjustmentFee,
}

// String implements fmt.Stringer.
func (a AdjustmentType) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AdjustmentType.
func (a AdjustmentType) IsValid() bool {
	for _, candidate := range validAdjustmentTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAdjustmentType converts raw input into an AdjustmentType.
func ParseAdjustmentType(value string) (AdjustmentType, error) {
	for _, candidate := range validAdjustmentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid adjustment type %q", value)
}
