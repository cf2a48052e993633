package orderapi

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
	"github.com/gayabeauty/storefront-backend/pkg/types"
)

const (
	serviceName = "orders"

	idempotencyKeyHeader        = "Idempotency-Key"
	responseBodyReadLimit int64 = 1024
)

// CheckoutItem is one order line as accepted by the order service.
type CheckoutItem struct {
	ProductID int64        `json:"product_id"`
	Quantity  int          `json:"quantity"`
	Price     types.Rupiah `json:"price"`
}

// CheckoutRequest is the payload for placing an order. PaymentMethod carries
// the human-readable label, e.g. "COD (Bayar di Tempat)" or "Transfer Bank - BCA".
type CheckoutRequest struct {
	CustomerID    int64          `json:"customer_id"`
	CustomerName  string         `json:"customer_name"`
	PaymentMethod string         `json:"payment_method"`
	TotalPrice    types.Rupiah   `json:"total_price"`
	CartItems     []CheckoutItem `json:"cart_items"`
}

// Order is an order record as returned by the order service.
type Order struct {
	ID            int64
	CustomerID    int64
	CustomerName  string
	PaymentMethod string
	TotalPrice    types.Rupiah
	Status        enums.OrderStatus
	CreatedAt     time.Time
	Items         []CheckoutItem
}

type orderPayload struct {
	ID            int64          `json:"id"`
	CustomerID    int64          `json:"user_id"`
	CustomerName  string         `json:"customer_name"`
	PaymentMethod string         `json:"payment_method"`
	TotalPrice    float64        `json:"total_price"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	Items         []CheckoutItem `json:"items"`
}

func (p orderPayload) toOrder() Order {
	return Order{
		ID:            p.ID,
		CustomerID:    p.CustomerID,
		CustomerName:  p.CustomerName,
		PaymentMethod: p.PaymentMethod,
		TotalPrice:    types.Rupiah(int64(p.TotalPrice)),
		Status:        enums.OrderStatus(p.Status),
		CreatedAt:     p.CreatedAt,
		Items:         p.Items,
	}
}

// Client talks to the order service HTTP API.
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

// NewClient builds an order service client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("order service base URL is required")
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

// PlaceOrder submits the checkout payload exactly once. The idempotency key is
// forwarded so a retried submission upstream does not duplicate the order.
func (c *Client) PlaceOrder(ctx context.Context, idempotencyKey string, req CheckoutRequest) (int64, error) {
	if c == nil {
		return 0, pkgerrors.New(pkgerrors.CodeDependency, "order client not configured")
	}
	if strings.TrimSpace(idempotencyKey) == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "idempotency key is required")
	}
	if req.CustomerID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "customer id must be positive")
	}
	if len(req.CartItems) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "checkout requires at least one item")
	}

	start := time.Now()
	var out struct {
		OrderID int64 `json:"order_id"`
	}
	headers := http.Header{}
	headers.Set(idempotencyKeyHeader, idempotencyKey)
	err := c.do(ctx, http.MethodPost, "/checkout", headers, req, &out)
	c.metrics.Observe(serviceName, "place_order", time.Since(start), err)
	if err != nil {
		return 0, err
	}
	return out.OrderID, nil
}

// ListAllOrders returns every order known to the order service.
func (c *Client) ListAllOrders(ctx context.Context) ([]Order, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order client not configured")
	}

	start := time.Now()
	orders, err := c.listOrders(ctx, "/orders")
	c.metrics.Observe(serviceName, "list_all_orders", time.Since(start), err)
	return orders, err
}

// ListCustomerOrders returns the orders placed by one customer.
func (c *Client) ListCustomerOrders(ctx context.Context, customerID int64) ([]Order, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order client not configured")
	}
	if customerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id must be positive")
	}

	start := time.Now()
	orders, err := c.listOrders(ctx, fmt.Sprintf("/orders?user_id=%d", customerID))
	c.metrics.Observe(serviceName, "list_customer_orders", time.Since(start), err)
	return orders, err
}

// UpdateStatus moves an order to the given status.
func (c *Client) UpdateStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "order client not configured")
	}
	if orderID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id must be positive")
	}
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", status))
	}

	body := struct {
		OrderID int64  `json:"order_id"`
		Status  string `json:"status"`
	}{OrderID: orderID, Status: status.String()}

	start := time.Now()
	err := c.do(ctx, http.MethodPost, "/orders/update", nil, body, nil)
	c.metrics.Observe(serviceName, "update_status", time.Since(start), err)
	return err
}

// CompleteOrder marks a shipped order as received by the customer.
func (c *Client) CompleteOrder(ctx context.Context, orderID int64) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "order client not configured")
	}
	if orderID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id must be positive")
	}

	body := struct {
		OrderID int64 `json:"order_id"`
	}{OrderID: orderID}

	start := time.Now()
	err := c.do(ctx, http.MethodPost, "/orders/complete", nil, body, nil)
	c.metrics.Observe(serviceName, "complete_order", time.Since(start), err)
	return err
}

func (c *Client) listOrders(ctx context.Context, path string) ([]Order, error) {
	var payloads []orderPayload
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &payloads); err != nil {
		return nil, err
	}
	orders := make([]Order, 0, len(payloads))
	for _, p := range payloads {
		orders = append(orders, p.toOrder())
	}
	return orders, nil
}

func (c *Client) do(ctx context.Context, method, path string, headers http.Header, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal order request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build order request")
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute order request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errorFromResponse(resp, "order request")
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order response")
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
	case http.StatusUnprocessableEntity:
		code = pkgerrors.CodeStateConflict
	}
	return pkgerrors.Wrap(code, cause, op+" failed")
}
