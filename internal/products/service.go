package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/gayabeauty/storefront-backend/internal/catalog"
	"github.com/gayabeauty/storefront-backend/internal/session"
	"github.com/gayabeauty/storefront-backend/pkg/enums"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
	"github.com/gayabeauty/storefront-backend/pkg/types"
	"github.com/gayabeauty/storefront-backend/pkg/upstream/productapi"
)

type productWriter interface {
	CreateProduct(ctx context.Context, input productapi.ProductInput) (*productapi.Product, error)
	UpdateProduct(ctx context.Context, id int64, input productapi.ProductInput) (*productapi.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type catalogRefresher interface {
	Refresh(ctx context.Context) (*catalog.Snapshot, error)
}

// Input carries the product fields accepted on create and update.
type Input struct {
	Name        string
	Description string
	Category    enums.ProductCategory
	Price       types.Rupiah
	Stock       int
	ImageURL    string
}

// Service is the admin surface for catalog management. Every write goes to
// the product service and is followed by a snapshot refresh so the storefront
// sees the change immediately.
type Service interface {
	Create(ctx context.Context, sess session.Session, input Input) (*productapi.Product, error)
	Update(ctx context.Context, sess session.Session, id int64, input Input) (*productapi.Product, error)
	Delete(ctx context.Context, sess session.Session, id int64) error
}

type service struct {
	products productWriter
	catalog  catalogRefresher
	log      *logger.Logger
}

// NewService builds the product management service.
func NewService(products productWriter, catalogSvc catalogRefresher, log *logger.Logger) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product client required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{products: products, catalog: catalogSvc, log: log}, nil
}

// Create registers a new product.
func (s *service) Create(ctx context.Context, sess session.Session, input Input) (*productapi.Product, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	created, err := s.products.CreateProduct(ctx, toUpstream(input))
	if err != nil {
		return nil, err
	}
	s.refreshCatalog(ctx)
	return created, nil
}

// Update replaces the product with the given ID.
func (s *service) Update(ctx context.Context, sess session.Session, id int64, input Input) (*productapi.Product, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	updated, err := s.products.UpdateProduct(ctx, id, toUpstream(input))
	if err != nil {
		return nil, err
	}
	s.refreshCatalog(ctx)
	return updated, nil
}

// Delete removes the product with the given ID.
func (s *service) Delete(ctx context.Context, sess session.Session, id int64) error {
	if err := requireAdmin(sess); err != nil {
		return err
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}

	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.refreshCatalog(ctx)
	return nil
}

func requireAdmin(sess session.Session) error {
	if !sess.Valid() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "login is required")
	}
	if !sess.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	return nil
}

func validateInput(input Input) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown category %q", input.Category))
	}
	if input.Price < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if input.Stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}
	return nil
}

func toUpstream(input Input) productapi.ProductInput {
	return productapi.ProductInput{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Category:    input.Category.String(),
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
	}
}

func (s *service) refreshCatalog(ctx context.Context) {
	if _, err := s.catalog.Refresh(ctx); err != nil {
		s.log.Warn(s.log.WithField(ctx, "reason", err.Error()), "catalog refresh after product change failed")
	}
}
