package httpx

import (
	"context"
	"net/http"

	"catalogapi/internal/entity"
)

type contextKey string

const (
	currentUserKey contextKey = "currentUser"
	requestIDKey   contextKey = "requestID"
)

// CurrentUserFrom retrieves the resolved identity from the request context,
// or nil for an anonymous request.
func CurrentUserFrom(r *http.Request) *entity.User {
	if u, ok := r.Context().Value(currentUserKey).(*entity.User); ok {
		return u
	}
	return nil
}

// ContextWithUser returns a new context carrying the resolved identity.
func ContextWithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// RequestIDFrom retrieves the request ID from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
