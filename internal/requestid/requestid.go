// Package requestid correlates log lines and responses for one API request.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the wire name for the request ID, honored on the way in and
// echoed on the way out.
const Header = "X-Request-ID"

type ctxKey struct{}

// New generates a fresh request ID for requests that arrive without one.
func New() string {
	return uuid.NewString()
}

// WithRequestID returns a copy of ctx carrying the request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the request ID from ctx, or "" when absent.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
