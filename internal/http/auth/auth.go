// Package auth gates every proxied route behind the identity provider.
// The identity check always completes before any upstream call is made.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/financeflow-app/financeflow/internal/http/respond"
	"github.com/financeflow-app/financeflow/internal/identity"
)

type ctxKey struct{}

// Middleware validates the bearer credential and stores the resulting
// identity in the request context. Requests without a credential are
// rejected before the provider is ever contacted.
func Middleware(validator identity.Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Error(w, http.StatusUnauthorized, "Missing Authorization Header")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")

			id, err := validator.Validate(r.Context(), token)
			if err != nil {
				if errors.Is(err, identity.ErrUnauthenticated) {
					respond.Error(w, http.StatusUnauthorized, "Invalid or Expired Token")
					return
				}

				slog.Error("identity provider error", "error", err)
				respond.Error(w, http.StatusInternalServerError, "Authentication Service Error")

				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func WithIdentity(ctx context.Context, id *identity.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored by Middleware.
func FromContext(ctx context.Context) (*identity.Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(*identity.Identity)
	return id, ok
}
