package enums

import "fmt"

// PaymentStatus tracks the state of an order payment preference.
type PaymentStatus string

const (
	PaymentStatusNotReceived PaymentStatus = "payment_not_received"
	PaymentStatusReceived    PaymentStatus = "payment_received"
	PaymentStatusCancelled   PaymentStatus = "payment_cancelled"
)

var validPaymentStatuses = []PaymentStatus{
	PaymentStatusNotReceived,
	PaymentStatusReceived,
	PaymentStatusCancelled,
}

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentStatus.
func (p PaymentStatus) IsValid() bool {
	for _, candidate := range validPaymentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentStatus converts raw input into a PaymentStatus.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	for _, candidate := range validPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment status %q", value)
}
