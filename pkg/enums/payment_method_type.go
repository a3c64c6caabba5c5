package enums

import "fmt"

// PaymentMethodType classifies how a payment preference will be satisfied.
type PaymentMethodType string

const (
	PaymentMethodCreditCard     PaymentMethodType = "credit_card"
	PaymentMethodBillingAccount PaymentMethodType = "billing_account"
	PaymentMethodOffline        PaymentMethodType = "offline"
	PaymentMethodGiftCard       PaymentMethodType = "gift_card"
)

var validPaymentMethodTypes = []PaymentMethodType{
	PaymentMethodCreditCard,
	PaymentMethodBillingAccount,
	PaymentMethodOffline,
	PaymentMethodGiftCard,
}

// String implements fmt.Stringer.
func (p PaymentMethodType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethodType.
func (p PaymentMethodType) IsValid() bool {
	for _, candidate := range validPaymentMethodTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethodType converts raw input into a PaymentMethodType.
func ParsePaymentMethodType(value string) (PaymentMethodType, error) {
	for _, candidate := range validPaymentMethodTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method type %q", value)
}
