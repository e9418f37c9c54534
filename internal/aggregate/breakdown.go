package aggregate

// BreakdownEntry is one category's share of the window's expenses.
// Percent is derived, never stored upstream. Chart colors are assigned
// round-robin by the view and carry no category identity.
type BreakdownEntry struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"-"`
}

// WithPercentages fills in each entry's share of the total, preserving
// order. A zero total yields zero percentages; an empty input stays
// empty.
func WithPercentages(entries []BreakdownEntry) []BreakdownEntry {
	if len(entries) == 0 {
		return nil
	}

	var total float64
	for _, e := range entries {
		total += e.Amount
	}

	out := make([]BreakdownEntry, len(entries))
	for i, e := range entries {
		if total > 0 {
			e.Percent = round1(e.Amount / total * 100)
		}

		out[i] = e
	}

	return out
}

// BreakdownFromTransactions groups expense-typed transactions by display
// category, in order of first occurrence, and derives percentages. The
// local fallback for the upstream category-stats endpoint.
func BreakdownFromTransactions(txs []Transaction, categories []Category) []BreakdownEntry {
	var (
		order   []string
		amounts = map[string]float64{}
	)

	for _, t := range txs {
		if t.ResolvedType() != TypeExpense {
			continue
		}

		label := DisplayCategory(t, categories)
		if _, seen := amounts[label]; !seen {
			order = append(order, label)
		}

		amounts[label] += t.DisplayAmount()
	}

	entries := make([]BreakdownEntry, 0, len(order))
	for _, label := range order {
		entries = append(entries, BreakdownEntry{Category: label, Amount: amounts[label]})
	}

	return WithPercentages(entries)
}
