package proxy

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financeflow-app/financeflow/internal/action"
	"github.com/financeflow-app/financeflow/internal/config"
	"github.com/financeflow-app/financeflow/internal/forward"
)

func TestHandlerWithoutIdentityContextIsInternalError(t *testing.T) {
	h := NewHandler(action.NewResolver(&config.Config{}), forward.New(time.Second), "FinanceFlow")

	// Handler invoked without the auth middleware having run: the
	// context carries no identity. That is a mounting bug and must not
	// masquerade as a client auth failure.
	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	rec := httptest.NewRecorder()

	h.listTransactions(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Internal error", body["error"])
}
