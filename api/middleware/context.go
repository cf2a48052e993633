package middleware

import (
	"context"

	"github.com/gayabeauty/storefront-backend/internal/session"
)

type contextKey string

const ctxSession contextKey = "session"

// SessionFromContext returns the authenticated session seeded by Auth. The
// zero value means the request is unauthenticated.
func SessionFromContext(ctx context.Context) session.Session {
	if ctx == nil {
		return session.Session{}
	}
	if v, ok := ctx.Value(ctxSession).(session.Session); ok {
		return v
	}
	return session.Session{}
}

// WithSession injects the session into the context for downstream handlers.
func WithSession(ctx context.Context, sess session.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, sess)
}
