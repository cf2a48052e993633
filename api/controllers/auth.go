package controllers

import (
	"net/http"
	"time"

	"github.com/gayabeauty/storefront-backend/api/middleware"
	"github.com/gayabeauty/storefront-backend/api/responses"
	"github.com/gayabeauty/storefront-backend/api/validators"
	"github.com/gayabeauty/storefront-backend/internal/session"
	pkgerrors "github.com/gayabeauty/storefront-backend/pkg/errors"
	"github.com/gayabeauty/storefront-backend/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type authResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
	Customer  struct {
		ID       int64  `json:"id"`
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	} `json:"customer"`
}

func toAuthResponse(result *session.LoginResult) authResponse {
	var resp authResponse
	resp.Token = result.Token
	resp.ExpiresAt = result.ExpiresAt.UTC().Format(time.RFC3339)
	resp.Customer.ID = result.Customer.ID
	resp.Customer.FullName = result.Customer.FullName
	resp.Customer.Email = result.Customer.Email
	resp.Customer.Role = string(result.Customer.Role)
	return resp
}

// AuthLogin checks credentials against the customer service and returns an
// access token.
func AuthLogin(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body loginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := sessions.Login(r.Context(), body.Email, body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, toAuthResponse(result))
	}
}

// AuthRegister creates the account upstream and returns a ready-to-use token.
func AuthRegister(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body registerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := sessions.Register(r.Context(), session.RegisterInput{
			FullName: body.FullName,
			Email:    body.Email,
			Password: body.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, toAuthResponse(result))
	}
}

// AuthLogout revokes the server-side session tied to the presented token.
func AuthLogout(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := middleware.SessionFromContext(r.Context())
		if !sess.Valid() || sess.AccessID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "login is required"))
			return
		}

		if err := sessions.Logout(r.Context(), sess.AccessID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
