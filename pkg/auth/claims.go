package auth

import (
	"github.com/gayabeauty/storefront-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	CustomerID int64
	FullName   string
	Role       enums.ActorRole
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued to storefront clients.
type AccessTokenClaims struct {
	CustomerID int64           `json:"customer_id"`
	FullName   string          `json:"full_name"`
	Role       enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}
