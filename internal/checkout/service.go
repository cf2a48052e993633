package checkout

import (
	"context"
	"fmt"

	"github.com/gayabeauty/storefront-backend/internal/cart"
	"github.com/gayabeauty/storefront-backend/internal/catalog"
	"github.com/gayabeauty/storefront-backend/internal/session"
	"github.com/gayabeauty/storefront-backend/pkg/enums"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
	"github.com/gayabeauty/storefront-backend/pkg/types"
	"github.com/gayabeauty/storefront-backend/pkg/upstream/orderapi"
	"github.com/gayabeauty/storefront-backend/pkg/upstream/productapi"
	"github.com/google/uuid"
)

type cartStore interface {
	Lines(customerID int64) []cart.Line
	Total(customerID int64) types.Rupiah
	Reconcile(customerID int64, catalog cart.Availability) []cart.Line
	BeginCheckout(customerID int64) error
	AbortCheckout(customerID int64)
	CompleteCheckout(customerID int64)
}

type snapshotSource interface {
	Latest() *catalog.Snapshot
	Refresh(ctx context.Context) (*catalog.Snapshot, error)
}

type orderPlacer interface {
	PlaceOrder(ctx context.Context, idempotencyKey string, req orderapi.CheckoutRequest) (int64, error)
}

type stockChecker interface {
	GetProduct(ctx context.Context, id int64) (*productapi.Product, error)
}

// SubmitInput carries everything a checkout submission needs.
type SubmitInput struct {
	Session       session.Session
	PaymentMethod enums.PaymentMethod
	Bank          enums.Bank
}

// BuyNowInput orders a single product directly, bypassing the cart.
type BuyNowInput struct {
	Session       session.Session
	ProductID     int64
	Quantity      int
	PaymentMethod enums.PaymentMethod
	Bank          enums.Bank
}

// Result reports the accepted order.
type Result struct {
	OrderID int64
	Total   types.Rupiah
}

// Service drives the checkout flow: it runs the precondition chain, submits
// the order exactly once, and clears the cart only after the order service
// accepted it.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*Result, error)
	BuyNow(ctx context.Context, input BuyNowInput) (*Result, error)
}

type service struct {
	carts    cartStore
	catalog  snapshotSource
	orders   orderPlacer
	products stockChecker
	log      *logger.Logger
	newKey   func() string
}

// NewService builds the checkout service.
func NewService(carts cartStore, catalogSvc snapshotSource, orders orderPlacer, products stockChecker, log *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalogSvc == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order client required")
	}
	if products == nil {
		return nil, fmt.Errorf("product client required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		carts:    carts,
		catalog:  catalogSvc,
		orders:   orders,
		products: products,
		log:      log,
		newKey:   uuid.NewString,
	}, nil
}

// Submit runs the precondition chain in order and stops at the first failure
// without calling the order service. The chain: an authenticated session, a
// chosen payment method, a bank when paying by transfer, and no out-of-stock
// lines left in the cart.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*Result, error) {
	if err := validatePreconditions(input.Session, input.PaymentMethod, input.Bank); err != nil {
		return nil, err
	}

	customerID := input.Session.CustomerID
	if err := s.carts.BeginCheckout(customerID); err != nil {
		return nil, err
	}

	snapshot, err := s.currentSnapshot(ctx)
	if err != nil {
		s.carts.AbortCheckout(customerID)
		return nil, err
	}

	lines := s.carts.Reconcile(customerID, snapshot)
	if len(lines) == 0 {
		s.carts.AbortCheckout(customerID)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if blocked := outOfStockIDs(lines); len(blocked) > 0 {
		s.carts.AbortCheckout(customerID)
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart contains out-of-stock items").
			WithDetails(map[string]any{"product_ids": blocked})
	}

	total := s.carts.Total(customerID)
	items := make([]orderapi.CheckoutItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, orderapi.CheckoutItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
		})
	}

	orderID, err := s.orders.PlaceOrder(ctx, s.newKey(), orderapi.CheckoutRequest{
		CustomerID:    customerID,
		CustomerName:  input.Session.FullName,
		PaymentMethod: PaymentLabel(input.PaymentMethod, input.Bank),
		TotalPrice:    total,
		CartItems:     items,
	})
	if err != nil {
		s.carts.AbortCheckout(customerID)
		return nil, err
	}

	s.carts.CompleteCheckout(customerID)
	s.refreshCatalog(ctx)

	ctx = s.log.WithCustomerID(ctx, customerID)
	s.log.Info(s.log.WithOrderID(ctx, orderID), "checkout accepted")

	return &Result{OrderID: orderID, Total: total}, nil
}

// BuyNow orders one product immediately. The cart is never touched, but the
// same precondition chain applies, with a live stock check in place of the
// cart reconcile.
func (s *service) BuyNow(ctx context.Context, input BuyNowInput) (*Result, error) {
	if err := validatePreconditions(input.Session, input.PaymentMethod, input.Bank); err != nil {
		return nil, err
	}
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	product, err := s.products.GetProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "product is out of stock")
	}

	total := product.Price * types.Rupiah(quantity)
	orderID, err := s.orders.PlaceOrder(ctx, s.newKey(), orderapi.CheckoutRequest{
		CustomerID:    input.Session.CustomerID,
		CustomerName:  input.Session.FullName,
		PaymentMethod: PaymentLabel(input.PaymentMethod, input.Bank),
		TotalPrice:    total,
		CartItems: []orderapi.CheckoutItem{
			{ProductID: product.ID, Quantity: quantity, Price: product.Price},
		},
	})
	if err != nil {
		return nil, err
	}

	s.refreshCatalog(ctx)
	return &Result{OrderID: orderID, Total: total}, nil
}

func validatePreconditions(sess session.Session, method enums.PaymentMethod, bank enums.Bank) error {
	if !sess.Valid() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "login is required before checkout")
	}
	if !method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "choose a payment method")
	}
	if method.RequiresBank() && !bank.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "choose a bank for the transfer")
	}
	return nil
}

func (s *service) currentSnapshot(ctx context.Context) (*catalog.Snapshot, error) {
	if snapshot := s.catalog.Latest(); snapshot != nil {
		return snapshot, nil
	}
	return s.catalog.Refresh(ctx)
}

// refreshCatalog pulls fresh stock figures after an accepted order. Failure
// here never fails the checkout.
func (s *service) refreshCatalog(ctx context.Context) {
	if _, err := s.catalog.Refresh(ctx); err != nil {
		s.log.Warn(s.log.WithField(ctx, "reason", err.Error()), "catalog refresh after checkout failed")
	}
}

func outOfStockIDs(lines []cart.Line) []int64 {
	var blocked []int64
	for _, line := range lines {
		if line.Status == enums.CartLineStatusOutOfStock {
			blocked = append(blocked, line.ProductID)
		}
	}
	return blocked
}

// PaymentLabel renders the human-readable payment method stored on the order,
// e.g. "COD (Bayar di Tempat)" or "Transfer Bank - BCA".
func PaymentLabel(method enums.PaymentMethod, bank enums.Bank) string {
	if method == enums.PaymentMethodBankTransfer {
		return fmt.Sprintf("Transfer Bank - %s", bank)
	}
	return "COD (Bayar di Tempat)"
}
