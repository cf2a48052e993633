package orders

import (
	"context"
	"fmt"

	"github.com/gayabeauty/storefront-backend/internal/session"
	"github.com/gayabeauty/storefront-backend/pkg/enums"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
	"github.com/gayabeauty/storefront-backend/pkg/upstream/orderapi"
)

type orderClient interface {
	ListAllOrders(ctx context.Context) ([]orderapi.Order, error)
	ListCustomerOrders(ctx context.Context, customerID int64) ([]orderapi.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status enums.OrderStatus) error
	CompleteOrder(ctx context.Context, orderID int64) error
}

// Service exposes order history and the status moves each actor may make.
// Status changes are checked against the order lifecycle before the order
// service is called.
type Service interface {
	ListMine(ctx context.Context, sess session.Session) ([]orderapi.Order, error)
	Complete(ctx context.Context, sess session.Session, orderID int64) error
	ListAll(ctx context.Context, sess session.Session) ([]orderapi.Order, error)
	UpdateStatus(ctx context.Context, sess session.Session, orderID int64, target enums.OrderStatus) error
}

type service struct {
	orders orderClient
	log    *logger.Logger
}

// NewService builds the orders service.
func NewService(orders orderClient, log *logger.Logger) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("order client required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{orders: orders, log: log}, nil
}

// ListMine returns the caller's own orders.
func (s *service) ListMine(ctx context.Context, sess session.Session) ([]orderapi.Order, error) {
	if !sess.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login is required")
	}
	return s.orders.ListCustomerOrders(ctx, sess.CustomerID)
}

// Complete lets a customer mark their shipped order as received.
func (s *service) Complete(ctx context.Context, sess session.Session, orderID int64) error {
	if !sess.Valid() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "login is required")
	}
	if orderID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id must be positive")
	}

	order, err := s.findCustomerOrder(ctx, sess.CustomerID, orderID)
	if err != nil {
		return err
	}
	if !order.Status.CanTransition(enums.OrderStatusCompleted) {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order in status %q cannot be completed", order.Status))
	}

	if err := s.orders.CompleteOrder(ctx, orderID); err != nil {
		return err
	}
	s.log.Info(s.log.WithOrderID(ctx, orderID), "order completed by customer")
	return nil
}

// ListAll returns every order. Admin only.
func (s *service) ListAll(ctx context.Context, sess session.Session) ([]orderapi.Order, error) {
	if !sess.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login is required")
	}
	if !sess.IsAdmin() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	return s.orders.ListAllOrders(ctx)
}

// UpdateStatus moves an order along its lifecycle. Admin only; an illegal
// transition is rejected before the order service is called.
func (s *service) UpdateStatus(ctx context.Context, sess session.Session, orderID int64, target enums.OrderStatus) error {
	if !sess.Valid() {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "login is required")
	}
	if !sess.IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin access required")
	}
	if orderID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id must be positive")
	}
	if !target.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown order status %q", target))
	}

	all, err := s.orders.ListAllOrders(ctx)
	if err != nil {
		return err
	}
	order, ok := findOrder(all, orderID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if !order.Status.CanTransition(target) {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("order cannot move from %q to %q", order.Status, target))
	}

	if err := s.orders.UpdateStatus(ctx, orderID, target); err != nil {
		return err
	}
	s.log.Info(s.log.WithOrderID(ctx, orderID), "order status updated")
	return nil
}

func (s *service) findCustomerOrder(ctx context.Context, customerID, orderID int64) (*orderapi.Order, error) {
	mine, err := s.orders.ListCustomerOrders(ctx, customerID)
	if err != nil {
		return nil, err
	}
	order, ok := findOrder(mine, orderID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return order, nil
}

func findOrder(orders []orderapi.Order, orderID int64) (*orderapi.Order, bool) {
	for i := range orders {
		if orders[i].ID == orderID {
			return &orders[i], true
		}
	}
	return nil, false
}
