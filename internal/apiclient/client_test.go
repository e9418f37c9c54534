package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financeflow-app/financeflow/internal/action"
	"github.com/financeflow-app/financeflow/internal/aggregate"
	"github.com/financeflow-app/financeflow/internal/apiclient"
)

func newClient(t *testing.T, handler http.HandlerFunc) (*apiclient.Client, *apiclient.Session) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	session := apiclient.NewSession("token-123")

	return apiclient.New(srv.URL, session, 2*time.Second), session
}

func TestTransactions(t *testing.T) {
	var gotAuth, gotQuery string

	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 7, "amount": -50000, "date": "2024-03-02", "type": "expense"}]`))
	})

	txs, err := client.Transactions(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)

	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "end=2024-03-31&start=2024-03-01", gotQuery)

	require.Len(t, txs, 1)
	assert.Equal(t, "7", txs[0].ID.String(), "numeric ids decode as strings")
	assert.Equal(t, -50000.0, txs[0].Amount)
}

func TestTransactions_DataEnvelope(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"id": "a", "amount": 100, "date": "2024-03-01"}]}`))
	})

	txs, err := client.Transactions(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "a", txs[0].ID.String())
}

func TestStats(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stats", r.URL.Path)
		assert.Equal(t, "profile", r.URL.Query().Get("mode"))

		_, _ = w.Write([]byte(`{"balance": 150000, "income": 200000, "expense": 50000}`))
	})

	snapshot, err := client.Stats(context.Background(), "profile", "")
	require.NoError(t, err)
	assert.Equal(t, 150000.0, snapshot.Balance)
	assert.Equal(t, 200000.0, snapshot.Income)
}

func TestCategoryStats_RecomputesPercentages(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"category": "Food", "amount": 75000}, {"category": "Transport", "amount": 25000}]`))
	})

	entries, err := client.CategoryStats(context.Background(), "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 75.0, entries[0].Percent)
	assert.Equal(t, 25.0, entries[1].Percent)
}

func TestMutations_MethodAndPath(t *testing.T) {
	var gotMethod, gotPath string
	var gotAmount float64

	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path

		var in struct {
			Amount float64 `json:"amount"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		gotAmount = in.Amount

		_, _ = w.Write([]byte(`{"success": true}`))
	})

	// Amounts travel signed: expenses are negative on the wire even
	// when entered as positive magnitudes.
	in := action.TransactionInput{
		Amount: aggregate.SignedAmount(aggregate.TypeExpense, 50000),
		Date:   "2024-03-02",
		Type:   "expense",
	}

	require.NoError(t, client.AddTransaction(context.Background(), in))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/transactions", gotPath)
	assert.Equal(t, -50000.0, gotAmount)

	require.NoError(t, client.UpdateTransaction(context.Background(), "42", in))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/transactions/42", gotPath)

	require.NoError(t, client.DeleteTransaction(context.Background(), "42"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/transactions/42", gotPath)
}

func TestDo_GatewayError(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error": "Failed to communicate with automation engine"}`))
	})

	_, err := client.Transactions(context.Background(), "", "")

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Failed to communicate with automation engine", apiErr.Message)
}

func TestDo_UnauthorizedExpiresSession(t *testing.T) {
	var calls atomic.Int32

	client, session := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Transactions(context.Background(), "", "")
	require.ErrorIs(t, err, apiclient.ErrSessionExpired)
	assert.True(t, session.Expired())
	assert.Empty(t, session.Credential(), "expiry clears the credential")

	// Follow-up calls short-circuit without network traffic.
	_, err = client.Stats(context.Background(), "", "")
	require.ErrorIs(t, err, apiclient.ErrSessionExpired)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSession_ExpireWinsOnce(t *testing.T) {
	session := apiclient.NewSession("token")

	var wins atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if session.Expire() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load(), "exactly one observer wins the latch")
}

func TestSession_SetCredentialRearms(t *testing.T) {
	session := apiclient.NewSession("old")
	session.Expire()
	require.True(t, session.Expired())

	session.SetCredential("new")
	assert.False(t, session.Expired())
	assert.Equal(t, "new", session.Credential())
}

func TestLoginWithPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		_, _ = w.Write([]byte(`{
			"access_token": "fresh-token",
			"user": {"id": "user-1", "email": "a@b.c", "user_metadata": {"full_name": "Ada"}}
		}`))
	}))
	defer srv.Close()

	auth := apiclient.NewAuthClient(srv.URL, "anon-key", 2*time.Second)
	session := apiclient.NewSession("")

	result, err := auth.LoginWithPassword(context.Background(), session, "a@b.c", "secret")
	require.NoError(t, err)

	assert.Equal(t, "user-1", result.UserID)
	assert.Equal(t, "Ada", result.DisplayName)
	assert.Equal(t, "fresh-token", session.Credential())
	assert.False(t, session.Expired())
}

func TestLoginWithPassword_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "invalid_grant"}`))
	}))
	defer srv.Close()

	auth := apiclient.NewAuthClient(srv.URL, "anon-key", 2*time.Second)
	session := apiclient.NewSession("")

	_, err := auth.LoginWithPassword(context.Background(), session, "a@b.c", "wrong")
	assert.True(t, errors.Is(err, apiclient.ErrBadCredentials))
}
