package controllers

import (
	"net/http"

	"github.com/gayabeauty/storefront-backend/api/middleware"
	"github.com/gayabeauty/storefront-backend/api/responses"
	"github.com/gayabeauty/storefront-backend/api/validators"
	"github.com/gayabeauty/storefront-backend/internal/cart"
	"github.com/gayabeauty/storefront-backend/internal/catalog"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
)

type cartLineResponse struct {
	ProductID        int64  `json:"product_id"`
	Name             string `json:"name"`
	UnitPrice        int64  `json:"unit_price"`
	UnitPriceDisplay string `json:"unit_price_display"`
	Quantity         int    `json:"quantity"`
	Subtotal         int64  `json:"subtotal"`
	Status           string `json:"status"`
}

type cartResponse struct {
	Items        []cartLineResponse `json:"items"`
	Total        int64              `json:"total"`
	TotalDisplay string             `json:"total_display"`
}

type addItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type adjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

func toCartResponse(store *cart.Store, customerID int64, lines []cart.Line) cartResponse {
	items := make([]cartLineResponse, 0, len(lines))
	for _, line := range lines {
		items = append(items, cartLineResponse{
			ProductID:        line.ProductID,
			Name:             line.Name,
			UnitPrice:        int64(line.UnitPrice),
			UnitPriceDisplay: line.UnitPrice.Display(),
			Quantity:         line.Quantity,
			Subtotal:         int64(line.Subtotal()),
			Status:           string(line.Status),
		})
	}
	total := store.Total(customerID)
	return cartResponse{
		Items:        items,
		Total:        int64(total),
		TotalDisplay: total.Display(),
	}
}

// CartFetch reconciles the cart against the current catalog snapshot and
// returns the lines with their availability flags.
func CartFetch(store *cart.Store, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if !sess.Valid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login is required"))
			return
		}

		lines := store.Reconcile(sess.CustomerID, catalogSvc.Latest())
		responses.WriteSuccess(w, toCartResponse(store, sess.CustomerID, lines))
	}
}

// CartAddItem puts a product into the cart, capturing its current name and
// price. Adding an already-present product bumps its quantity.
func CartAddItem(store *cart.Store, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if !sess.Valid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login is required"))
			return
		}

		var body addItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.Get(r.Context(), body.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.AddItem(sess.CustomerID, cart.AddItemInput{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  body.Quantity,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := store.Reconcile(sess.CustomerID, catalogSvc.Latest())
		responses.WriteSuccess(w, toCartResponse(store, sess.CustomerID, lines))
	}
}

// CartAdjustQuantity applies a signed quantity delta to one cart line. A
// delta that would drop the quantity to zero or below leaves the line as is.
func CartAdjustQuantity(store *cart.Store, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if !sess.Valid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login is required"))
			return
		}

		productID, err := validators.Int64URLParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body adjustQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.AdjustQuantity(sess.CustomerID, productID, body.Delta); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := store.Reconcile(sess.CustomerID, catalogSvc.Latest())
		responses.WriteSuccess(w, toCartResponse(store, sess.CustomerID, lines))
	}
}

// CartRemoveItem deletes one line from the cart.
func CartRemoveItem(store *cart.Store, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if !sess.Valid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login is required"))
			return
		}

		productID, err := validators.Int64URLParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := store.RemoveItem(sess.CustomerID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines := store.Reconcile(sess.CustomerID, catalogSvc.Latest())
		responses.WriteSuccess(w, toCartResponse(store, sess.CustomerID, lines))
	}
}
