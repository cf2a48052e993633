package enums

import "fmt"

// CartLineStatus tracks the reconciliation state of a cart line.
type CartLineStatus string

const (
	CartLineStatusOK         CartLineStatus = "ok"
	CartLineStatusOutOfStock CartLineStatus = "out_of_stock"
)

var validCartLineStatuses = []CartLineStatus{
	CartLineStatusOK,
	CartLineStatusOutOfStock,
}

// String implements fmt.Stringer.
func (c CartLineStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is known.
func (c CartLineStatus) IsValid() bool {
	for _, candidate := range validCartLineStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCartLineStatus converts raw input into a CartLineStatus.
func ParseCartLineStatus(value string) (CartLineStatus, error) {
	for _, candidate := range validCartLineStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cart line status %q", value)
}
