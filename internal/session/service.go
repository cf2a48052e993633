package session

import (
	"context"
	"fmt"
	"time"

	"github.com/gayabeauty/storefront-backend/pkg/auth"
	"github.com/gayabeauty/storefront-backend/pkg/config"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
	"github.com/gayabeauty/storefront-backend/pkg/upstream/customerapi"
	"github.com/google/uuid"
)

func newAccessID() string {
	return uuid.NewString()
}

type customerAuthenticator interface {
	Login(ctx context.Context, email, password string) (*customerapi.Customer, error)
	Register(ctx context.Context, input customerapi.RegisterInput) (*customerapi.Customer, error)
}

type sessionRegistry interface {
	Create(ctx context.Context, accessID string, customerID int64) error
	Revoke(ctx context.Context, accessID string) error
}

// LoginResult carries the minted token and the account it belongs to.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Customer  customerapi.Customer
}

// RegisterInput mirrors the fields the customer service accepts on signup.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

// Service proxies credential checks to the customer service and manages the
// server-side session records.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, input RegisterInput) (*LoginResult, error)
	Logout(ctx context.Context, accessID string) error
}

type service struct {
	customers customerAuthenticator
	sessions  sessionRegistry
	jwtCfg    config.JWTConfig
	log       *logger.Logger
	now       func() time.Time
	accessID  func() string
}

// NewService builds the session service.
func NewService(customers customerAuthenticator, sessions sessionRegistry, jwtCfg config.JWTConfig, log *logger.Logger) (Service, error) {
	if customers == nil {
		return nil, fmt.Errorf("customer client required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session registry required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		customers: customers,
		sessions:  sessions,
		jwtCfg:    jwtCfg,
		log:       log,
		now:       time.Now,
		accessID:  newAccessID,
	}, nil
}

// Login checks credentials upstream and mints an access token on success.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	customer, err := s.customers.Login(ctx, email, password)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, err
	}
	return s.establish(ctx, *customer)
}

// Register creates the account upstream and logs the customer straight in.
func (s *service) Register(ctx context.Context, input RegisterInput) (*LoginResult, error) {
	customer, err := s.customers.Register(ctx, customerapi.RegisterInput{
		FullName: input.FullName,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, *customer)
}

// Logout revokes the server-side session. The token itself simply ages out.
func (s *service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) establish(ctx context.Context, customer customerapi.Customer) (*LoginResult, error) {
	now := s.now()
	accessID := s.accessID()

	token, err := auth.MintAccessToken(s.jwtCfg, now, auth.AccessTokenPayload{
		CustomerID: customer.ID,
		FullName:   customer.FullName,
		Role:       customer.Role,
		JTI:        accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	if err := s.sessions.Create(ctx, accessID, customer.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session")
	}

	s.log.Info(s.log.WithCustomerID(ctx, customer.ID), "session established")

	return &LoginResult{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(s.jwtCfg.ExpirationMinutes) * time.Minute),
		Customer:  customer,
	}, nil
}
