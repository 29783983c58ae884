// Package auth resolves requests to the caller identity issued by the
// identity provider.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Caller is the authenticated identity a request acts as.
// The zero value means nobody is signed in.
type Caller struct {
	UserID uuid.UUID
	Email  string
}

// Authenticated reports whether the caller resolved to a user
func (c Caller) Authenticated() bool {
	return c.UserID != uuid.Nil
}

type contextKey string

const callerContextKey contextKey = "caller"

// ContextWithCaller adds the caller to ctx
func ContextWithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerContextKey, caller)
}

// CallerFromContext returns the caller stored in ctx, or the zero Caller
func CallerFromContext(ctx context.Context) Caller {
	caller, _ := ctx.Value(callerContextKey).(Caller)
	return caller
}
