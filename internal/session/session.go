package session

import "github.com/gayabeauty/storefront-backend/pkg/enums"

// Session is the authenticated caller's identity as resolved from the access
// token. Handlers pass it down explicitly instead of re-reading claims.
type Session struct {
	CustomerID int64
	FullName   string
	Role       enums.ActorRole
	AccessID   string
}

// Valid reports whether the session identifies a real authenticated actor.
func (s Session) Valid() bool {
	return s.CustomerID > 0 && s.Role.IsValid()
}

// IsAdmin reports whether the session belongs to an admin account.
func (s Session) IsAdmin() bool {
	return s.Role == enums.ActorRoleAdmin
}
