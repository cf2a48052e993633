package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/gayabeauty/storefront-backend/pkg/auth"
	"github.com/gayabeauty/storefront-backend/pkg/config"
	"github.com/gayabeauty/storefront-backend/pkg/enums"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
	"github.com/gayabeauty/storefront-backend/pkg/upstream/customerapi"
)

type stubAuthenticator struct {
	customer *customerapi.Customer
	loginErr error
	regErr   error
}

func (s *stubAuthenticator) Login(ctx context.Context, email, password string) (*customerapi.Customer, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.customer, nil
}

func (s *stubAuthenticator) Register(ctx context.Context, input customerapi.RegisterInput) (*customerapi.Customer, error) {
	if s.regErr != nil {
		return nil, s.regErr
	}
	return s.customer, nil
}

type stubRegistry struct {
	created []string
	revoked []string
	err     error
}

func (s *stubRegistry) Create(ctx context.Context, accessID string, customerID int64) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, accessID)
	return nil
}

func (s *stubRegistry) Revoke(ctx context.Context, accessID string) error {
	if s.err != nil {
		return s.err
	}
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "gaya-beauty", ExpirationMinutes: 15}
}

func newTestService(t *testing.T, customers customerAuthenticator, registry sessionRegistry) *service {
	t.Helper()
	log := logger.New(logger.Options{Output: io.Discard})
	svc, err := NewService(customers, registry, testJWTConfig(), log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc.(*service)
}

func TestLoginMintsTokenAndStoresSession(t *testing.T) {
	t.Parallel()

	registry := &stubRegistry{}
	svc := newTestService(t, &stubAuthenticator{customer: &customerapi.Customer{
		ID:       4,
		FullName: "Sari Dewi",
		Email:    "sari@example.com",
		Role:     enums.ActorRoleCustomer,
	}}, registry)
	svc.accessID = func() string { return "access-1" }

	result, err := svc.Login(context.Background(), "sari@example.com", "rahasia")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := auth.ParseAccessToken(testJWTConfig(), result.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.CustomerID != 4 || claims.ID != "access-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if len(registry.created) != 1 || registry.created[0] != "access-1" {
		t.Fatalf("expected session to be stored, got %+v", registry.created)
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %s", result.ExpiresAt)
	}
}

func TestLoginMapsBadCredentials(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubAuthenticator{
		loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "customer request failed"),
	}, &stubRegistry{})

	_, err := svc.Login(context.Background(), "sari@example.com", "salah")
	if !pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestLoginSurfacesDependencyFailure(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubAuthenticator{
		loginErr: pkgerrors.New(pkgerrors.CodeDependency, "customer service down"),
	}, &stubRegistry{})

	_, err := svc.Login(context.Background(), "sari@example.com", "rahasia")
	if !pkgerrors.HasCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected DEPENDENCY_ERROR, got %v", err)
	}
}

func TestRegisterLogsCustomerIn(t *testing.T) {
	t.Parallel()

	registry := &stubRegistry{}
	svc := newTestService(t, &stubAuthenticator{customer: &customerapi.Customer{
		ID:       9,
		FullName: "Dewi Lestari",
		Email:    "dewi@example.com",
		Role:     enums.ActorRoleCustomer,
	}}, registry)

	result, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Dewi Lestari",
		Email:    "dewi@example.com",
		Password: "rahasia",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token after register")
	}
	if len(registry.created) != 1 {
		t.Fatalf("expected one session, got %d", len(registry.created))
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	registry := &stubRegistry{}
	svc := newTestService(t, &stubAuthenticator{}, registry)

	if err := svc.Logout(context.Background(), "access-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(registry.revoked) != 1 || registry.revoked[0] != "access-1" {
		t.Fatalf("expected revoke, got %+v", registry.revoked)
	}
}
