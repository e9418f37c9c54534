package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financeflow-app/financeflow/internal/aggregate"
)

func searchFixture() []aggregate.Transaction {
	return []aggregate.Transaction{
		{ID: "1", Amount: -100, Date: "2024-03-01", Note: "Lunch at warung", CategoryName: "Food"},
		{ID: "2", Amount: -200, Date: "2024-03-02", Note: "Grab ride", Category: "Transport"},
		{ID: "3", Amount: -300, Date: "2024-03-03", CategoryName: "Food"},
		{ID: "4", Amount: 400, Date: "2024-03-04", Note: "Salary"},
	}
}

func TestSearch(t *testing.T) {
	txs := searchFixture()

	type testCase struct {
		name    string
		term    string
		wantIDs []aggregate.FlexID
	}

	tests := []testCase{
		{name: "MatchesNote", term: "lunch", wantIDs: []aggregate.FlexID{"1"}},
		{name: "MatchesCategoryEitherKey", term: "food", wantIDs: []aggregate.FlexID{"1", "3"}},
		{name: "CaseInsensitive", term: "GRAB", wantIDs: []aggregate.FlexID{"2"}},
		{name: "NoMatch", term: "zzz", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := aggregate.Search(txs, tt.term)

			var ids []aggregate.FlexID
			for _, tx := range got {
				ids = append(ids, tx.ID)
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestSearch_EmptyTermIsReversible(t *testing.T) {
	txs := searchFixture()

	filtered := aggregate.Search(txs, "lunch")
	require.Len(t, filtered, 1)

	restored := aggregate.Search(txs, "")
	assert.Len(t, restored, len(txs), "empty term restores the unfiltered count")
}

func TestFilterExpenses(t *testing.T) {
	txs := []aggregate.Transaction{
		{ID: "1", Amount: -100, Date: "2024-03-01", Type: aggregate.TypeExpense},
		{ID: "2", Amount: 400, Date: "2024-03-04", Type: aggregate.TypeIncome},
		{ID: "3", Amount: -300, Date: "2024-03-03"},
		{ID: "4", Amount: 50, Date: "2024-03-02", Type: aggregate.TypeExpense}, // tag wins
	}

	expenses := aggregate.FilterExpenses(txs)
	require.Len(t, expenses, 3)

	// Newest first.
	assert.Equal(t, aggregate.FlexID("3"), expenses[0].ID)
	assert.Equal(t, aggregate.FlexID("4"), expenses[1].ID)
	assert.Equal(t, aggregate.FlexID("1"), expenses[2].ID)
}
