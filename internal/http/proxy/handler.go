package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/financeflow-app/financeflow/internal/action"
	"github.com/financeflow-app/financeflow/internal/forward"
	"github.com/financeflow-app/financeflow/internal/http/auth"
	"github.com/financeflow-app/financeflow/internal/http/respond"
	"github.com/financeflow-app/financeflow/internal/identity"
)

// Forwarder relays one payload to one destination.
type Forwarder interface {
	Forward(ctx context.Context, destination string, payload any) (*forward.Result, error)
}

// Handler proxies every dashboard request to the automation engine.
type Handler struct {
	resolver  *action.Resolver
	forwarder Forwarder
	appName   string
}

func NewHandler(resolver *action.Resolver, forwarder Forwarder, appName string) *Handler {
	return &Handler{resolver: resolver, forwarder: forwarder, appName: appName}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/transactions", h.listTransactions)
	r.Post("/transactions", h.addTransaction)
	r.Put("/transactions/{id}", h.updateTransaction)
	r.Delete("/transactions/{id}", h.deleteTransaction)
	r.Get("/stats", h.stats)
	r.Get("/stats/categories", h.categoryStats)
	r.Get("/categories", h.categories)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"message":   h.appName + " proxy is running",
		"mode":      "n8n-integrated",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// requireIdentity fetches the identity stored by the auth middleware.
// A miss here means the handler was mounted outside the authenticated
// group, which is a wiring bug, not an auth failure.
func requireIdentity(w http.ResponseWriter, r *http.Request) (*identity.Identity, bool) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		slog.Error("identity missing from request context", "path", r.URL.Path)
		respond.Error(w, http.StatusInternalServerError, "Internal error")
	}

	return id, ok
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	h.relay(w, r, action.ListTransactions, action.NewList(id.ID, q.Get("start"), q.Get("end")))
}

func (h *Handler) addTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var in action.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Resolved locally: a malformed request must cause no side effects
	// on the automation engine.
	if err := in.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	h.relay(w, r, action.AddTransaction, action.NewAdd(id.ID, in))
}

func (h *Handler) updateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var in action.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := in.Validate(); err != nil {
		respond.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	transactionID := chi.URLParam(r, "id")
	h.relay(w, r, action.UpdateTransaction, action.NewUpdate(id.ID, transactionID, in))
}

func (h *Handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	transactionID := chi.URLParam(r, "id")
	h.relay(w, r, action.DeleteTransaction, action.NewDelete(id.ID, transactionID))
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	payload := action.NewStats(id.ID, q.Get("mode"), q.Get("startDate"))
	h.relay(w, r, payload.Action, payload)
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	h.relay(w, r, action.GetCategories, action.NewCategories(id.ID))
}

func (h *Handler) categoryStats(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	h.relay(w, r, action.GetCategoryStats, action.NewCategoryStats(id.ID, q.Get("startDate"), q.Get("endDate")))
}

// relay resolves the destination, makes the single upstream call and
// writes the upstream response back unchanged. The upstream owns its
// error semantics; the gateway only synthesizes the 502.
func (h *Handler) relay(w http.ResponseWriter, r *http.Request, act action.Action, payload any) {
	destination, err := h.resolver.Resolve(act)
	if err != nil {
		slog.Error("unresolved action destination", "action", act, "error", err)
		respond.Error(w, http.StatusInternalServerError, "N8N Webhook URL not configured")

		return
	}

	result, err := h.forwarder.Forward(r.Context(), destination, payload)
	if err != nil {
		if errors.Is(err, forward.ErrUnreachable) {
			slog.Error("automation engine unreachable", "action", act, "error", err)
			respond.Error(w, http.StatusBadGateway, "Failed to communicate with automation engine")

			return
		}

		slog.Error("forwarding failed", "action", act, "error", err)
		respond.Error(w, http.StatusInternalServerError, "Internal error")

		return
	}

	contentType := result.ContentType
	if contentType == "" {
		contentType = "application/json"
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(result.StatusCode)

	if _, err := w.Write(result.Body); err != nil {
		slog.Error("failed to write relayed response", "error", err)
	}
}
