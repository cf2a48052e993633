package controllers

import (
	"net/http"
	"time"

	"github.com/gayabeauty/storefront-backend/api/middleware"
	"github.com/gayabeauty/storefront-backend/api/responses"
	"github.com/gayabeauty/storefront-backend/api/validators"
	"github.com/gayabeauty/storefront-backend/internal/orders"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
	"github.com/gayabeauty/storefront-backend/pkg/upstream/orderapi"
)

type orderItemResponse struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

type orderResponse struct {
	ID            int64               `json:"id"`
	CustomerID    int64               `json:"customer_id"`
	CustomerName  string              `json:"customer_name"`
	PaymentMethod string              `json:"payment_method"`
	Total         int64               `json:"total"`
	TotalDisplay  string              `json:"total_display"`
	Status        string              `json:"status"`
	CreatedAt     string              `json:"created_at"`
	Items         []orderItemResponse `json:"items"`
}

func toOrderResponse(order orderapi.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     int64(item.Price),
		})
	}
	return orderResponse{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		CustomerName:  order.CustomerName,
		PaymentMethod: order.PaymentMethod,
		Total:         int64(order.TotalPrice),
		TotalDisplay:  order.TotalPrice.Display(),
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt.UTC().Format(time.RFC3339),
		Items:         items,
	}
}

func toOrderResponses(list []orderapi.Order) []orderResponse {
	out := make([]orderResponse, 0, len(list))
	for _, order := range list {
		out = append(out, toOrderResponse(order))
	}
	return out
}

// OrdersMine returns the caller's order history.
func OrdersMine(orderSvc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := orderSvc.ListMine(r.Context(), middleware.SessionFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderResponses(list))
	}
}

// OrderComplete marks a delivered order as received.
func OrderComplete(orderSvc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.Int64URLParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := orderSvc.Complete(r.Context(), middleware.SessionFromContext(r.Context()), orderID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"order_id": orderID, "status": "Selesai"})
	}
}
