package customerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gayabeauty/storefront-backend/pkg/enums"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/metrics"
)

const (
	serviceName = "customers"

	responseBodyReadLimit int64 = 1024
)

// Customer is the account record returned by the customer service.
type Customer struct {
	ID       int64
	FullName string
	Email    string
	Role     enums.ActorRole
}

type customerPayload struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (p customerPayload) toCustomer() Customer {
	role := enums.ActorRole(p.Role)
	if !role.IsValid() {
		role = enums.ActorRoleCustomer
	}
	return Customer{
		ID:       p.ID,
		FullName: p.FullName,
		Email:    p.Email,
		Role:     role,
	}
}

// RegisterInput carries the fields accepted when creating an account.
type RegisterInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Client talks to the customer service HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.UpstreamMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMetrics attaches upstream call metrics.
func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a customer service client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("customer service base URL is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	return client, nil
}

// Login verifies the credentials and returns the matching account. An
// unauthorized response maps to CodeUnauthorized so callers can distinguish
// bad credentials from a service outage.
func (c *Client) Login(ctx context.Context, email, password string) (*Customer, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "customer client not configured")
	}
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	start := time.Now()
	var payload customerPayload
	err := c.do(ctx, "/customer/login", body, &payload)
	c.metrics.Observe(serviceName, "login", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	customer := payload.toCustomer()
	return &customer, nil
}

// Register creates a new customer account.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*Customer, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "customer client not configured")
	}
	if strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "full name, email and password are required")
	}

	start := time.Now()
	var payload customerPayload
	err := c.do(ctx, "/customer/register", input, &payload)
	c.metrics.Observe(serviceName, "register", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	customer := payload.toCustomer()
	return &customer, nil
}

func (c *Client) do(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal customer request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build customer request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute customer request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errorFromResponse(resp, "customer request")
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode customer response")
	}
	return nil
}

func errorFromResponse(resp *http.Response, op string) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	cause := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))

	code := pkgerrors.CodeDependency
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		code = pkgerrors.CodeUnauthorized
	case http.StatusNotFound:
		code = pkgerrors.CodeNotFound
	case http.StatusConflict:
		code = pkgerrors.CodeConflict
	}
	return pkgerrors.Wrap(code, cause, op+" failed")
}
