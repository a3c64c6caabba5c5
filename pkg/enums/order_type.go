package enums

import "fmt"

// OrderType distinguishes sales orders from purchase orders. Several
// reconciliation policies (notably shipping-estimate failure handling) branch
// on it.
type OrderType string

const (
	OrderTypeSales    OrderType = "sales_order"
	OrderTypePurchase OrderType = "purchase_order"
)

var validOrderTypes = []OrderType{
	OrderTypeSales,
	OrderTypePurchase,
}

// String implements fmt.Stringer.
func (o OrderType) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderType.
func (o OrderType) IsValid() bool {
	for _, candidate := range validOrderTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderType converts raw input into an OrderType.
func ParseOrderType(value string) (OrderType, error) {
	for _, candidate := range validOrderTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order type %q", value)
}
