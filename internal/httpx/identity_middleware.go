package httpx

import (
	"context"
	"errors"
	"net/http"

	"catalogapi/internal/auth"
	"catalogapi/internal/entity"
)

// IdentityResolver turns a raw Authorization header value into a user.
type IdentityResolver interface {
	Resolve(ctx context.Context, authorization string) (*entity.User, error)
}

// IdentityMiddleware resolves the bearer credential on every request. No
// credential means an anonymous context and the request proceeds; a
// credential that is present but invalid is a hard 401, never a silent
// fallback to anonymous.
func IdentityMiddleware(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, auth.ErrSubjectNotFound) {
					JSONErrorWithRequest(r, w, http.StatusUnauthorized, "UNAUTHORIZED", err.Error(), nil)
					return
				}
				JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
				return
			}
			if user != nil {
				r = r.WithContext(ContextWithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}
