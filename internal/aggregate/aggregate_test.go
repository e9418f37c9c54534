package aggregate_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financeflow-app/financeflow/internal/aggregate"
)

func TestResolveType(t *testing.T) {
	type testCase struct {
		name   string
		tag    aggregate.Type
		amount float64
		want   aggregate.Type
	}

	tests := []testCase{
		{name: "TagWinsOverSign", tag: aggregate.TypeIncome, amount: -100, want: aggregate.TypeIncome},
		{name: "TagExpensePositiveAmount", tag: aggregate.TypeExpense, amount: 100, want: aggregate.TypeExpense},
		{name: "NoTagNegativeIsExpense", tag: "", amount: -100, want: aggregate.TypeExpense},
		{name: "NoTagPositiveIsIncome", tag: "", amount: 100, want: aggregate.TypeIncome},
		{name: "NoTagZeroIsIncome", tag: "", amount: 0, want: aggregate.TypeIncome},
		{name: "UnknownTagFallsBackToSign", tag: "transfer", amount: -5, want: aggregate.TypeExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aggregate.ResolveType(tt.tag, tt.amount))
		})
	}
}

func TestSignedAmount(t *testing.T) {
	type testCase struct {
		name   string
		tag    aggregate.Type
		amount float64
		want   float64
	}

	tests := []testCase{
		{name: "ExpenseEnteredPositive", tag: aggregate.TypeExpense, amount: 50000, want: -50000},
		{name: "ExpenseAlreadyNegative", tag: aggregate.TypeExpense, amount: -50000, want: -50000},
		{name: "IncomeEnteredPositive", tag: aggregate.TypeIncome, amount: 200000, want: 200000},
		{name: "IncomeEnteredNegative", tag: aggregate.TypeIncome, amount: -200000, want: 200000},
		{name: "NoTagSignDecides", tag: "", amount: -75, want: -75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aggregate.SignedAmount(tt.tag, tt.amount))
		})
	}
}

func TestTransactionLenientDecoding(t *testing.T) {
	const raw = `[
		{"id": 1, "amount": -50000, "date": "2024-03-02", "type": "expense", "category_name": "Food"},
		{"id": "abc-2", "amount": 200000, "date": "2024-03-02", "type": "income", "unknown_field": true}
	]`

	var txs []aggregate.Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &txs))

	assert.Equal(t, aggregate.FlexID("1"), txs[0].ID)
	assert.Equal(t, aggregate.FlexID("abc-2"), txs[1].ID)
	assert.Equal(t, 50000.0, txs[0].DisplayAmount(), "displayed amounts are never negative")
}

func TestDisplayCategory(t *testing.T) {
	categories := []aggregate.Category{
		{ID: "7", Name: "Groceries", TransactionTypeID: 2},
	}

	type testCase struct {
		name string
		tx   aggregate.Transaction
		want string
	}

	tests := []testCase{
		{name: "OwnLabel", tx: aggregate.Transaction{Category: "Food"}, want: "Food"},
		{name: "CategoryNameKey", tx: aggregate.Transaction{CategoryName: "Rent"}, want: "Rent"},
		{name: "ResolvedByID", tx: aggregate.Transaction{CategoryID: "7"}, want: "Groceries"},
		{name: "UnresolvedID", tx: aggregate.Transaction{CategoryID: "99"}, want: "Uncategorized"},
		{name: "NothingAtAll", tx: aggregate.Transaction{}, want: "Uncategorized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aggregate.DisplayCategory(tt.tx, categories))
		})
	}
}

func TestCategoriesFor(t *testing.T) {
	categories := []aggregate.Category{
		{ID: "1", Name: "Salary", TransactionTypeID: 1},
		{ID: "2", Name: "Food", TransactionTypeID: 2},
		{ID: "3", Name: "Transport", TransactionTypeID: 2},
	}

	expense := aggregate.CategoriesFor(categories, aggregate.TypeExpense)
	require.Len(t, expense, 2)
	assert.Equal(t, "Food", expense[0].Name)

	income := aggregate.CategoriesFor(categories, aggregate.TypeIncome)
	require.Len(t, income, 1)
	assert.Equal(t, "Salary", income[0].Name)
}

func TestSummarize(t *testing.T) {
	txs := []aggregate.Transaction{
		{Amount: -50000, Type: aggregate.TypeExpense},
		{Amount: 200000, Type: aggregate.TypeIncome},
		{Amount: -25000}, // sign fallback
	}

	s := aggregate.Summarize(txs)
	assert.Equal(t, 200000.0, s.Income)
	assert.Equal(t, 75000.0, s.Expense)
	assert.Equal(t, 125000.0, s.Balance)
	assert.Equal(t, 3, s.TransactionCount)

	empty := aggregate.Summarize(nil)
	assert.Zero(t, empty.Balance)
	assert.Zero(t, empty.TransactionCount)
}

func TestDailySeries(t *testing.T) {
	txs := []aggregate.Transaction{
		{ID: "1", Amount: -50000, Date: "2024-03-02", Type: aggregate.TypeExpense, CategoryName: "Food"},
		{ID: "2", Amount: 200000, Date: "2024-03-02", Type: aggregate.TypeIncome},
	}

	series := aggregate.DailySeries(txs)
	require.Len(t, series, 1)
	assert.Equal(t, "2 Mar", series[0].Label)
	assert.Equal(t, 200000.0, series[0].Income)
	assert.Equal(t, 50000.0, series[0].Expense)
}

func TestDailySeries_ChronologicalSparseBuckets(t *testing.T) {
	txs := []aggregate.Transaction{
		{Amount: -100, Date: "2024-03-10", Type: aggregate.TypeExpense},
		{Amount: 500, Date: "2024-03-01", Type: aggregate.TypeIncome},
		{Amount: -200, Date: "2024-03-10", Type: aggregate.TypeExpense},
		{Amount: -50, Date: "2024-03-05", Type: aggregate.TypeExpense},
	}

	series := aggregate.DailySeries(txs)
	require.Len(t, series, 3, "days without transactions do not appear")

	assert.Equal(t, []string{"1 Mar", "5 Mar", "10 Mar"},
		[]string{series[0].Label, series[1].Label, series[2].Label})
	assert.Equal(t, 300.0, series[2].Expense)
	assert.Zero(t, series[2].Income, "a bucket with no income reports zero for that series")
}

func TestDailySeries_Empty(t *testing.T) {
	assert.Empty(t, aggregate.DailySeries(nil))
}
