package aggregate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financeflow-app/financeflow/internal/aggregate"
)

func TestWithPercentages(t *testing.T) {
	entries := aggregate.WithPercentages([]aggregate.BreakdownEntry{
		{Category: "Food", Amount: 75000},
		{Category: "Transport", Amount: 25000},
	})

	require.Len(t, entries, 2)
	assert.Equal(t, 75.0, entries[0].Percent)
	assert.Equal(t, 25.0, entries[1].Percent)
}

func TestWithPercentages_SumIs100WithinRounding(t *testing.T) {
	entries := aggregate.WithPercentages([]aggregate.BreakdownEntry{
		{Category: "A", Amount: 1},
		{Category: "B", Amount: 1},
		{Category: "C", Amount: 1},
	})

	var sum float64
	for _, e := range entries {
		sum += e.Percent
	}

	assert.InDelta(t, 100.0, sum, 0.2)
}

func TestWithPercentages_ZeroTotal(t *testing.T) {
	entries := aggregate.WithPercentages([]aggregate.BreakdownEntry{
		{Category: "A", Amount: 0},
	})

	require.Len(t, entries, 1)
	assert.Zero(t, entries[0].Percent)
}

func TestWithPercentages_Empty(t *testing.T) {
	assert.Empty(t, aggregate.WithPercentages(nil))
}

func TestBreakdownFromTransactions(t *testing.T) {
	txs := []aggregate.Transaction{
		{ID: "1", Amount: -50000, Date: "2024-03-02", Type: aggregate.TypeExpense, CategoryName: "Food"},
		{ID: "2", Amount: 200000, Date: "2024-03-02", Type: aggregate.TypeIncome},
	}

	entries := aggregate.BreakdownFromTransactions(txs, nil)
	require.Len(t, entries, 1, "income never enters the expense breakdown")
	assert.Equal(t, "Food", entries[0].Category)
	assert.Equal(t, 50000.0, entries[0].Amount)
	assert.Equal(t, 100.0, entries[0].Percent)
}

func TestBreakdownFromTransactions_GroupsAndOrders(t *testing.T) {
	txs := []aggregate.Transaction{
		{Amount: -300, Date: "2024-03-01", Type: aggregate.TypeExpense, Category: "Food"},
		{Amount: -100, Date: "2024-03-02", Type: aggregate.TypeExpense, Category: "Transport"},
		{Amount: -100, Date: "2024-03-03", Type: aggregate.TypeExpense, Category: "Food"},
		{Amount: -500, Date: "2024-03-04", Type: aggregate.TypeExpense}, // no label
	}

	entries := aggregate.BreakdownFromTransactions(txs, nil)
	require.Len(t, entries, 3)

	assert.Equal(t, "Food", entries[0].Category)
	assert.Equal(t, 400.0, entries[0].Amount)
	assert.Equal(t, "Transport", entries[1].Category)
	assert.Equal(t, aggregate.UncategorizedLabel, entries[2].Category)

	var sum float64
	for _, e := range entries {
		sum += e.Percent
	}

	assert.True(t, math.Abs(sum-100.0) < 0.2)
}

func TestBreakdownFromTransactions_Empty(t *testing.T) {
	assert.Empty(t, aggregate.BreakdownFromTransactions(nil, nil))
}
