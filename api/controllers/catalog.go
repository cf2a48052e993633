package controllers

import (
	"net/http"
	"strings"

	"github.com/gayabeauty/storefront-backend/api/responses"
	"github.com/gayabeauty/storefront-backend/api/validators"
	"github.com/gayabeauty/storefront-backend/internal/catalog"
	"github.com/gayabeauty/storefront-backend/pkg/enums"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
)

type productResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category"`
	Price        int64  `json:"price"`
	PriceDisplay string `json:"price_display"`
	Stock        int    `json:"stock"`
	InStock      bool   `json:"in_stock"`
	ImageURL     string `json:"image_url,omitempty"`
}

func toProductResponse(p catalog.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     string(p.Category),
		Price:        int64(p.Price),
		PriceDisplay: p.Price.Display(),
		Stock:        p.Stock,
		InStock:      p.Stock > 0,
		ImageURL:     p.ImageURL,
	}
}

// CatalogList returns the product listing, optionally filtered by a search
// term and a category.
func CatalogList(catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := catalog.ListQuery{
			Search: r.URL.Query().Get("search"),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseProductCategory(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unknown category"))
				return
			}
			query.Category = category
		}

		products, err := catalogSvc.List(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]productResponse, 0, len(products))
		for _, p := range products {
			out = append(out, toProductResponse(p))
		}
		responses.WriteSuccess(w, out)
	}
}

// CatalogDetail returns one product.
func CatalogDetail(catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.Int64URLParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := catalogSvc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toProductResponse(*product))
	}
}
