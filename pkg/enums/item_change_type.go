package enums

import "fmt"

// ItemChangeType tags each audit record produced when items diverge from the
// persisted order during reconciliation.
type ItemChangeType string

const (
	ItemChangeUpdate ItemChangeType = "item_update"
	ItemChangeAppend ItemChangeType = "item_append"
)

var validItemChangeTypes = []ItemChangeType{
	ItemChangeUpdate,
	ItemChangeAppend,
}

// String implements fmt.Stringer.
func (i ItemChangeType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ItemChangeType.
func (i ItemChangeType) IsValid() bool {
	for _, candidate := range validItemChangeTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseItemChangeType converts raw input into an ItemChangeType.
func ParseItemChangeType(value string) (ItemChangeType, error) {
	for _, candidate := range validItemChangeTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item change type %q", value)
}
