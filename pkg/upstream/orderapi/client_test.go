package orderapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gayabeauty/storefront-backend/pkg/enums"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/types"
)

func testCheckoutRequest() CheckoutRequest {
	return CheckoutRequest{
		CustomerID:    4,
		CustomerName:  "Sari Dewi",
		PaymentMethod: "Transfer Bank - BCA",
		TotalPrice:    types.Rupiah(195000),
		CartItems: []CheckoutItem{
			{ProductID: 1, Quantity: 1, Price: types.Rupiah(150000)},
			{ProductID: 2, Quantity: 1, Price: types.Rupiah(45000)},
		},
	}
}

func TestPlaceOrderSendsIdempotencyKey(t *testing.T) {
	t.Parallel()

	var gotKey string
	var gotBody CheckoutRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/checkout" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotKey = r.Header.Get("Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"order_id":88}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orderID, err := client.PlaceOrder(context.Background(), "key-123", testCheckoutRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != 88 {
		t.Fatalf("unexpected order id: %d", orderID)
	}
	if gotKey != "key-123" {
		t.Fatalf("unexpected idempotency key: %q", gotKey)
	}
	if gotBody.PaymentMethod != "Transfer Bank - BCA" {
		t.Fatalf("unexpected payment method: %q", gotBody.PaymentMethod)
	}
	if len(gotBody.CartItems) != 2 {
		t.Fatalf("unexpected cart items: %+v", gotBody.CartItems)
	}
}

func TestPlaceOrderValidatesInput(t *testing.T) {
	t.Parallel()

	client, err := NewClient("http://order-service.invalid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.PlaceOrder(context.Background(), "", testCheckoutRequest()); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for missing key, got %v", err)
	}

	empty := testCheckoutRequest()
	empty.CartItems = nil
	if _, err := client.PlaceOrder(context.Background(), "key", empty); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR for empty cart, got %v", err)
	}
}

func TestListCustomerOrdersFiltersByUser(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" || r.URL.Query().Get("user_id") != "4" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`[
			{"id":88,"user_id":4,"customer_name":"Sari Dewi","payment_method":"COD (Bayar di Tempat)","total_price":195000,"status":"Pending"}
		]`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orders, err := client.ListCustomerOrders(context.Background(), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(orders))
	}
	if orders[0].Status != enums.OrderStatusPending {
		t.Fatalf("unexpected status: %s", orders[0].Status)
	}
	if orders[0].TotalPrice != types.Rupiah(195000) {
		t.Fatalf("unexpected total: %d", orders[0].TotalPrice)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	client, err := NewClient("http://order-service.invalid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := client.UpdateStatus(context.Background(), 1, enums.OrderStatus("Hilang")); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestCompleteOrderMapsStateConflict(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "order is not shipped", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := client.CompleteOrder(context.Background(), 88); !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected STATE_CONFLICT, got %v", err)
	}
}
