package productapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/metrics"
	"github.com/gayabeauty/storefront-backend/pkg/types"
)

const (
	serviceName                = "products"
	responseBodyReadLimit int64 = 1024
)

// Product is the catalog entry as published by the product service.
type Product struct {
	ID          int64
	Name        string
	Description string
	Category    string
	Price       types.Rupiah
	Stock       int
	ImageURL    string
}

// ProductInput carries the fields accepted on create and update.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Price       types.Rupiah
	Stock       int
	ImageURL    string
}

type productPayload struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
}

func (p productPayload) toProduct() Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       types.Rupiah(int64(p.Price)),
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
	}
}

// Client talks to the product service HTTP API.
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

// NewClient builds a product service client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("product service base URL is required")
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

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "product client not configured")
	}

	start := time.Now()
	var payloads []productPayload
	err := c.do(ctx, http.MethodGet, "/products", nil, &payloads)
	c.metrics.Observe(serviceName, "list_products", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(payloads))
	for _, p := range payloads {
		products = append(products, p.toProduct())
	}
	return products, nil
}

// GetProduct fetches one catalog entry by ID.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "product client not configured")
	}
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}

	start := time.Now()
	var payload productPayload
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &payload)
	c.metrics.Observe(serviceName, "get_product", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	product := payload.toProduct()
	return &product, nil
}

// CreateProduct registers a new catalog entry.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "product client not configured")
	}

	start := time.Now()
	var payload productPayload
	err := c.do(ctx, http.MethodPost, "/products", inputPayload(input), &payload)
	c.metrics.Observe(serviceName, "create_product", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	product := payload.toProduct()
	return &product, nil
}

// UpdateProduct replaces the catalog entry with the given ID.
func (c *Client) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*Product, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "product client not configured")
	}
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}

	start := time.Now()
	var payload productPayload
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), inputPayload(input), &payload)
	c.metrics.Observe(serviceName, "update_product", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	product := payload.toProduct()
	return &product, nil
}

// DeleteProduct removes the catalog entry with the given ID.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "product client not configured")
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}

	start := time.Now()
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil)
	c.metrics.Observe(serviceName, "delete_product", time.Since(start), err)
	return err
}

func inputPayload(input ProductInput) productPayload {
	return productPayload{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       float64(input.Price),
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "marshal product request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build product request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute product request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errorFromResponse(resp, "product request")
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode product response")
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
