package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	t.Parallel()

	allowed := []struct {
		from, to OrderStatus
	}{
		{OrderStatusPending, OrderStatusProcessing},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusProcessing, OrderStatusShipped},
		{OrderStatusProcessing, OrderStatusCancelled},
		{OrderStatusShipped, OrderStatusCompleted},
	}
	for _, tc := range allowed {
		if !tc.from.CanTransition(tc.to) {
			t.Fatalf("expected %s -> %s to be legal", tc.from, tc.to)
		}
	}

	blocked := []struct {
		from, to OrderStatus
	}{
		{OrderStatusPending, OrderStatusCompleted},
		{OrderStatusShipped, OrderStatusCancelled},
		{OrderStatusCompleted, OrderStatusPending},
		{OrderStatusCancelled, OrderStatusProcessing},
		{OrderStatusShipped, OrderStatusShipped},
	}
	for _, tc := range blocked {
		if tc.from.CanTransition(tc.to) {
			t.Fatalf("expected %s -> %s to be rejected", tc.from, tc.to)
		}
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	t.Parallel()

	for _, status := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled} {
		if !status.IsTerminal() {
			t.Fatalf("expected %s to be terminal", status)
		}
	}
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped} {
		if status.IsTerminal() {
			t.Fatalf("expected %s to allow further transitions", status)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	t.Parallel()

	status, err := ParseOrderStatus("Diproses")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != OrderStatusProcessing {
		t.Fatalf("unexpected status: %s", status)
	}

	if _, err := ParseOrderStatus("Selesai Banget"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
