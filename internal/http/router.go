package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/financeflow-app/financeflow/internal/http/auth"
	"github.com/financeflow-app/financeflow/internal/http/proxy"
	"github.com/financeflow-app/financeflow/internal/identity"
)

func New(validator identity.Validator, proxyV1 *proxy.Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(requestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", proxyV1.Health)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(validator))
			r.Use(middleware.AllowContentType("application/json"))
			proxyV1.Routes(r)
		})
	})

	return router
}

// requestID tags each request so gateway log lines can be correlated
// with the upstream call they triggered.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-Id", id)

		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
