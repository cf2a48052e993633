package orders

import (
	"context"
	"io"
	"testing"

	"github.com/gayabeauty/storefront-backend/internal/session"
	"github.com/gayabeauty/storefront-backend/pkg/enums"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
	"github.com/gayabeauty/storefront-backend/pkg/upstream/orderapi"
)

func customerSession() session.Session {
	return session.Session{CustomerID: 4, FullName: "Sari Dewi", Role: enums.ActorRoleCustomer}
}

func adminSession() session.Session {
	return session.Session{CustomerID: 1, FullName: "Admin Toko", Role: enums.ActorRoleAdmin}
}

type stubOrderClient struct {
	all         []orderapi.Order
	mine        []orderapi.Order
	updates     []enums.OrderStatus
	completed   []int64
	listErr     error
	updateErr   error
	completeErr error
}

func (s *stubOrderClient) ListAllOrders(ctx context.Context) ([]orderapi.Order, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.all, nil
}

func (s *stubOrderClient) ListCustomerOrders(ctx context.Context, customerID int64) ([]orderapi.Order, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.mine, nil
}

func (s *stubOrderClient) UpdateStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates = append(s.updates, status)
	return nil
}

func (s *stubOrderClient) CompleteOrder(ctx context.Context, orderID int64) error {
	if s.completeErr != nil {
		return s.completeErr
	}
	s.completed = append(s.completed, orderID)
	return nil
}

func newTestService(t *testing.T, client orderClient) Service {
	t.Helper()
	svc, err := NewService(client, logger.New(logger.Options{Output: io.Discard}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestListMineRequiresSession(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubOrderClient{})
	if _, err := svc.ListMine(context.Background(), session.Session{}); !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestCompleteShippedOrder(t *testing.T) {
	t.Parallel()

	client := &stubOrderClient{mine: []orderapi.Order{
		{ID: 88, CustomerID: 4, Status: enums.OrderStatusShipped},
	}}
	svc := newTestService(t, client)

	if err := svc.Complete(context.Background(), customerSession(), 88); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.completed) != 1 || client.completed[0] != 88 {
		t.Fatalf("expected complete call, got %+v", client.completed)
	}
}

func TestCompleteRejectsPendingOrder(t *testing.T) {
	t.Parallel()

	client := &stubOrderClient{mine: []orderapi.Order{
		{ID: 88, CustomerID: 4, Status: enums.OrderStatusPending},
	}}
	svc := newTestService(t, client)

	err := svc.Complete(context.Background(), customerSession(), 88)
	if !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected STATE_CONFLICT, got %v", err)
	}
	if len(client.completed) != 0 {
		t.Fatal("expected no upstream call for an illegal transition")
	}
}

func TestCompleteUnknownOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubOrderClient{})
	err := svc.Complete(context.Background(), customerSession(), 99)
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestListAllIsAdminOnly(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubOrderClient{all: []orderapi.Order{{ID: 1}}})

	if _, err := svc.ListAll(context.Background(), customerSession()); !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}

	all, err := svc.ListAll(context.Background(), adminSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 order, got %d", len(all))
	}
}

func TestUpdateStatusEnforcesTransitions(t *testing.T) {
	t.Parallel()

	client := &stubOrderClient{all: []orderapi.Order{
		{ID: 88, Status: enums.OrderStatusPending},
	}}
	svc := newTestService(t, client)

	if err := svc.UpdateStatus(context.Background(), adminSession(), 88, enums.OrderStatusProcessing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(client.updates) != 1 || client.updates[0] != enums.OrderStatusProcessing {
		t.Fatalf("expected processing update, got %+v", client.updates)
	}

	// Pending cannot jump straight to Selesai.
	err := svc.UpdateStatus(context.Background(), adminSession(), 88, enums.OrderStatusCompleted)
	if !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected STATE_CONFLICT, got %v", err)
	}

	err = svc.UpdateStatus(context.Background(), adminSession(), 88, enums.OrderStatus("Hilang"))
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestUpdateStatusIsAdminOnly(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubOrderClient{})
	err := svc.UpdateStatus(context.Background(), customerSession(), 88, enums.OrderStatusProcessing)
	if !pkgerrors.HasCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN, got %v", err)
	}
}
