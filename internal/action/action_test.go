package action_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financeflow-app/financeflow/internal/action"
	"github.com/financeflow-app/financeflow/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Webhooks.GetTransactions = "https://n8n.local/hook/list"
	cfg.Webhooks.AddTransaction = "https://n8n.local/hook/add"
	cfg.Webhooks.DeleteTransaction = "https://n8n.local/hook/delete"
	cfg.Webhooks.GetStats = "https://n8n.local/hook/stats"

	return cfg
}

func TestResolver_Resolve(t *testing.T) {
	r := action.NewResolver(testConfig())

	type testCase struct {
		name    string
		action  action.Action
		wantURL string
		wantErr bool
	}

	tests := []testCase{
		{name: "Configured", action: action.ListTransactions, wantURL: "https://n8n.local/hook/list"},
		{name: "StatsSharedDashboard", action: action.DashboardStats, wantURL: "https://n8n.local/hook/stats"},
		{name: "StatsSharedProfile", action: action.ProfileStats, wantURL: "https://n8n.local/hook/stats"},
		{name: "Unconfigured", action: action.UpdateTransaction, wantErr: true},
		{name: "UnconfiguredCategories", action: action.GetCategories, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, err := r.Resolve(tt.action)

			if tt.wantErr {
				assert.ErrorIs(t, err, action.ErrNotConfigured)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, url)
		})
	}
}

func TestStatsAction(t *testing.T) {
	assert.Equal(t, action.ProfileStats, action.StatsAction("profile"))
	assert.Equal(t, action.DashboardStats, action.StatsAction("dashboard"))
	assert.Equal(t, action.DashboardStats, action.StatsAction(""))
	assert.Equal(t, action.DashboardStats, action.StatsAction("weird"))
}

func TestTransactionInput_Validate(t *testing.T) {
	valid := action.TransactionInput{Amount: -50000, Date: "2024-03-02", Type: "expense"}
	assert.NoError(t, valid.Validate())

	type testCase struct {
		name string
		in   action.TransactionInput
	}

	tests := []testCase{
		{name: "MissingAmount", in: action.TransactionInput{Date: "2024-03-02", Type: "expense"}},
		{name: "MissingDate", in: action.TransactionInput{Amount: 100, Type: "income"}},
		{name: "MissingType", in: action.TransactionInput{Amount: 100, Date: "2024-03-02"}},
		{name: "AllMissing", in: action.TransactionInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.in.Validate(), action.ErrMissingFields)
		})
	}
}

func TestPayloadWireShape(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		body, err := json.Marshal(action.NewList("user-1", "2024-03-01", "2024-03-31"))
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"action": "get_recent_transactions",
			"userId": "user-1",
			"startDate": "2024-03-01",
			"endDate": "2024-03-31"
		}`, string(body))
	})

	t.Run("Add", func(t *testing.T) {
		in := action.TransactionInput{Amount: -50000, Date: "2024-03-02", CategoryName: "Food", Type: "expense"}
		body, err := json.Marshal(action.NewAdd("user-1", in))
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"action": "add_transaction",
			"userId": "user-1",
			"payload": {"amount": -50000, "date": "2024-03-02", "category_name": "Food", "type": "expense"}
		}`, string(body))
	})

	t.Run("Update", func(t *testing.T) {
		in := action.TransactionInput{Amount: 200000, Date: "2024-03-02", Type: "income"}
		body, err := json.Marshal(action.NewUpdate("user-1", "42", in))
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"action": "update_transaction",
			"userId": "user-1",
			"transactionId": "42",
			"payload": {"amount": 200000, "date": "2024-03-02", "type": "income"}
		}`, string(body))
	})

	t.Run("Delete", func(t *testing.T) {
		body, err := json.Marshal(action.NewDelete("user-1", "42"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"action": "delete_transaction", "userId": "user-1", "transactionId": "42"}`, string(body))
	})

	t.Run("ProfileStatsOmitsEmptyWindow", func(t *testing.T) {
		body, err := json.Marshal(action.NewStats("user-1", "profile", ""))
		require.NoError(t, err)
		assert.JSONEq(t, `{"action": "get_profile_stats", "userId": "user-1"}`, string(body))
	})

	t.Run("CategoryStats", func(t *testing.T) {
		body, err := json.Marshal(action.NewCategoryStats("user-1", "2024-03-01", "2024-03-31"))
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"action": "get_category_stats",
			"userId": "user-1",
			"startDate": "2024-03-01",
			"endDate": "2024-03-31"
		}`, string(body))
	})
}
