package customerapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gayabeauty/storefront-backend/pkg/enums"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
)

func TestLoginReturnsCustomer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/customer/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Email != "sari@example.com" {
			t.Errorf("unexpected email: %q", body.Email)
		}
		_, _ = w.Write([]byte(`{"id":4,"full_name":"Sari Dewi","email":"sari@example.com","role":"customer"}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	customer, err := client.Login(context.Background(), "sari@example.com", "rahasia")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customer.ID != 4 || customer.Role != enums.ActorRoleCustomer {
		t.Fatalf("unexpected customer: %+v", customer)
	}
}

func TestLoginMapsUnauthorized(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.Login(context.Background(), "sari@example.com", "salah"); !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestRegisterMapsConflict(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "email taken", http.StatusConflict)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = client.Register(context.Background(), RegisterInput{
		FullName: "Sari Dewi",
		Email:    "sari@example.com",
		Password: "rahasia",
	})
	if !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	t.Parallel()

	client, err := NewClient("http://customer-service.invalid")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.Register(context.Background(), RegisterInput{Email: "x@y.z"}); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestUnknownRoleFallsBackToCustomer(t *testing.T) {
	t.Parallel()

	p := customerPayload{ID: 1, FullName: "X", Email: "x@y.z", Role: "superuser"}
	if got := p.toCustomer().Role; got != enums.ActorRoleCustomer {
		t.Fatalf("unexpected role: %s", got)
	}
}
