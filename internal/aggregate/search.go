package aggregate

import (
	"sort"
	"strings"
)

// Search filters by case-insensitive substring over the note or the
// transaction's own category label. An empty term returns the input
// unchanged, so callers that retain the unfiltered slice can always
// reverse a filter.
func Search(txs []Transaction, term string) []Transaction {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return txs
	}

	var out []Transaction

	for _, t := range txs {
		note := strings.ToLower(t.Note)

		label := t.Category
		if label == "" {
			label = t.CategoryName
		}

		if strings.Contains(note, term) || strings.Contains(strings.ToLower(label), term) {
			out = append(out, t)
		}
	}

	return out
}

// FilterExpenses keeps only expense-typed transactions, newest first.
func FilterExpenses(txs []Transaction) []Transaction {
	var out []Transaction

	for _, t := range txs {
		if t.ResolvedType() == TypeExpense {
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		di, _ := parseDate(out[i].Date)
		dj, _ := parseDate(out[j].Date)
		return dj.Before(di)
	})

	return out
}
