package enums

import "fmt"

// OrderStatus tracks the fulfillment state of a submitted order. The wire
// values match the labels the order service persists.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Diproses"
	OrderStatusShipped    OrderStatus = "Dikirim"
	OrderStatusCompleted  OrderStatus = "Selesai"
	OrderStatusCancelled  OrderStatus = "Dibatalkan"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// legalOrderTransitions is the closed transition set: forward-only through the
// fulfillment chain, with cancellation allowed until the order ships.
var legalOrderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusCompleted},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (o OrderStatus) IsTerminal() bool {
	next, ok := legalOrderTransitions[o]
	return ok && len(next) == 0
}

// CanTransition reports whether moving from the current status to target is legal.
func (o OrderStatus) CanTransition(target OrderStatus) bool {
	for _, candidate := range legalOrderTransitions[o] {
		if candidate == target {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
