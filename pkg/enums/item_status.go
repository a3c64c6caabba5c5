package enums

import "fmt"

// ItemStatus tracks the lifecycle state recorded for order items.
type ItemStatus string

const (
	ItemStatusCreated  ItemStatus = "item_created"
	ItemStatusApproved ItemStatus = "item_approved"
	ItemStatusCanceled ItemStatus = "item_canceled"
)

var validItemStatuses = []ItemStatus{
	ItemStatusCreated,
	ItemStatusApproved,
	ItemStatusCanceled,
}

// String implements fmt.Stringer.
func (i ItemStatus) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ItemStatus.
func (i ItemStatus) IsValid() bool {
	for _, candidate := range validItemStatuses {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseItemStatus converts raw input into an ItemStatus.
func ParseItemStatus(value string) (ItemStatus, error) {
	for _, candidate := range validItemStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item status %q", value)
}
