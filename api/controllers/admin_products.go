package controllers

import (
	"net/http"

	"github.com/gayabeauty/storefront-backend/api/middleware"
	"github.com/gayabeauty/storefront-backend/api/responses"
	"github.com/gayabeauty/storefront-backend/api/validators"
	"github.com/gayabeauty/storefront-backend/internal/products"
	"github.com/gayabeauty/storefront-backend/pkg/enums"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
	"github.com/gayabeauty/storefront-backend/pkg/types"
	"github.com/gayabeauty/storefront-backend/pkg/upstream/productapi"
)

type productInputRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category" validate:"required"`
	Price       int64  `json:"price" validate:"gte=0"`
	Stock       int    `json:"stock" validate:"gte=0"`
	ImageURL    string `json:"image_url,omitempty"`
}

func (req productInputRequest) toInput() (products.Input, error) {
	category, err := enums.ParseProductCategory(req.Category)
	if err != nil {
		return products.Input{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown category")
	}
	return products.Input{
		Name:        req.Name,
		Description: req.Description,
		Category:    category,
		Price:       types.Rupiah(req.Price),
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	}, nil
}

func toAdminProductResponse(p *productapi.Product) productResponse {
	return productResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Price:        int64(p.Price),
		PriceDisplay: p.Price.Display(),
		Stock:        p.Stock,
		InStock:      p.Stock > 0,
		ImageURL:     p.ImageURL,
	}
}

// AdminProductCreate registers a new product in the catalog.
func AdminProductCreate(productSvc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body productInputRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := productSvc.Create(r.Context(), middleware.SessionFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toAdminProductResponse(created))
	}
}

// AdminProductUpdate replaces an existing product.
func AdminProductUpdate(productSvc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.Int64URLParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body productInputRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := productSvc.Update(r.Context(), middleware.SessionFromContext(r.Context()), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toAdminProductResponse(updated))
	}
}

// AdminProductDelete removes a product from the catalog.
func AdminProductDelete(productSvc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.Int64URLParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := productSvc.Delete(r.Context(), middleware.SessionFromContext(r.Context()), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": id})
	}
}
