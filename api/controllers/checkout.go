package controllers

import (
	"net/http"

	"github.com/gayabeauty/storefront-backend/api/middleware"
	"github.com/gayabeauty/storefront-backend/api/responses"
	"github.com/gayabeauty/storefront-backend/api/validators"
	"github.com/gayabeauty/storefront-backend/internal/checkout"
	"github.com/gayabeauty/storefront-backend/pkg/enums"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
)

type checkoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
	Bank          string `json:"bank,omitempty"`
}

type buyNowRequest struct {
	ProductID     int64  `json:"product_id" validate:"required,gt=0"`
	Quantity      int    `json:"quantity,omitempty"`
	PaymentMethod string `json:"payment_method" validate:"required"`
	Bank          string `json:"bank,omitempty"`
}

type checkoutResponse struct {
	OrderID      int64  `json:"order_id"`
	Total        int64  `json:"total"`
	TotalDisplay string `json:"total_display"`
}

func parsePaymentChoice(method, bank string) (enums.PaymentMethod, enums.Bank, error) {
	parsedMethod, err := enums.ParsePaymentMethod(method)
	if err != nil {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, "choose a payment method")
	}
	var parsedBank enums.Bank
	if bank != "" {
		parsedBank, err = enums.ParseBank(bank)
		if err != nil {
			return "", "", pkgerrors.New(pkgerrors.CodeValidation, "choose a bank for the transfer")
		}
	}
	return parsedMethod, parsedBank, nil
}

// Checkout submits the cart as an order.
func Checkout(checkoutSvc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, bank, err := parsePaymentChoice(body.PaymentMethod, body.Bank)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := checkoutSvc.Submit(r.Context(), checkout.SubmitInput{
			Session:       middleware.SessionFromContext(r.Context()),
			PaymentMethod: method,
			Bank:          bank,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResponse{
			OrderID:      result.OrderID,
			Total:        int64(result.Total),
			TotalDisplay: result.Total.Display(),
		})
	}
}

// CheckoutBuyNow orders a single product without going through the cart.
func CheckoutBuyNow(checkoutSvc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body buyNowRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, bank, err := parsePaymentChoice(body.PaymentMethod, body.Bank)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := checkoutSvc.BuyNow(r.Context(), checkout.BuyNowInput{
			Session:       middleware.SessionFromContext(r.Context()),
			ProductID:     body.ProductID,
			Quantity:      body.Quantity,
			PaymentMethod: method,
			Bank:          bank,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResponse{
			OrderID:      result.OrderID,
			Total:        int64(result.Total),
			TotalDisplay: result.Total.Display(),
		})
	}
}
