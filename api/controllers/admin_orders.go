package controllers

import (
	"net/http"

	"github.com/gayabeauty/storefront-backend/api/middleware"
	"github.com/gayabeauty/storefront-backend/api/responses"
	"github.com/gayabeauty/storefront-backend/api/validators"
	"github.com/gayabeauty/storefront-backend/internal/orders"
	"github.com/gayabeauty/storefront-backend/pkg/enums"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
)

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AdminOrdersList returns every order across all customers.
func AdminOrdersList(orderSvc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := orderSvc.ListAll(r.Context(), middleware.SessionFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderResponses(list))
	}
}

// AdminOrderStatusUpdate moves an order along its lifecycle.
func AdminOrderStatusUpdate(orderSvc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.Int64URLParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body orderStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status"))
			return
		}

		if err := orderSvc.UpdateStatus(r.Context(), middleware.SessionFromContext(r.Context()), orderID, status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"order_id": orderID, "status": string(status)})
	}
}
