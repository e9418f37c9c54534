// Package aggregate holds the pure, stateless transforms the dashboard
// runs over transaction lists fetched from the gateway: type
// reconciliation, month windows, daily chart series, category breakdowns,
// pagination and search. Nothing here talks to the network or is
// authoritative; the automation engine owns the real numbers.
package aggregate

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Type is the transaction direction.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// FlexID tolerates upstream ids that arrive as JSON numbers or strings.
type FlexID string

func (id *FlexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*id = FlexID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	*id = FlexID(n.String())

	return nil
}

func (id FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id FlexID) String() string { return string(id) }

// Transaction mirrors the upstream shape leniently; unknown fields are
// ignored and category labels may arrive under either key.
type Transaction struct {
	ID           FlexID  `json:"id"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
	Category     string  `json:"category,omitempty"`
	CategoryName string  `json:"category_name,omitempty"`
	CategoryID   FlexID  `json:"category_id,omitempty"`
	Note         string  `json:"note,omitempty"`
	Type         Type    `json:"type,omitempty"`
}

// ResolveType reconciles the redundant type/sign encoding: an explicit
// tag wins, the amount's sign is the fallback only.
func ResolveType(tag Type, amount float64) Type {
	switch tag {
	case TypeIncome, TypeExpense:
		return tag
	}

	if amount < 0 {
		return TypeExpense
	}

	return TypeIncome
}

// SignedAmount normalizes an amount's sign to match its type before it
// travels upstream: the engine stores expenses negative and income
// positive regardless of how the amount was entered.
func SignedAmount(tag Type, amount float64) float64 {
	if ResolveType(tag, amount) == TypeExpense {
		return -math.Abs(amount)
	}

	return math.Abs(amount)
}

// ResolvedType is ResolveType over the transaction's own fields.
func (t Transaction) ResolvedType() Type {
	return ResolveType(t.Type, t.Amount)
}

// DisplayAmount is always non-negative; direction lives in the type.
func (t Transaction) DisplayAmount() float64 {
	return math.Abs(t.Amount)
}

// Category is a user-defined bucket; TransactionTypeID selects which
// form it is offered on (income=1, expense=2).
type Category struct {
	ID                FlexID `json:"id"`
	Name              string `json:"name"`
	Icon              string `json:"icon,omitempty"`
	TransactionTypeID int    `json:"transaction_type_id"`
}

const typeIDExpense = 2

// TypeID maps a transaction type to the category list's numeric ids.
func TypeID(t Type) int {
	if t == TypeExpense {
		return typeIDExpense
	}

	return 1
}

// CategoriesFor filters the selectable categories for a transaction type.
func CategoriesFor(categories []Category, t Type) []Category {
	var out []Category

	for _, c := range categories {
		if c.TransactionTypeID == TypeID(t) {
			out = append(out, c)
		}
	}

	return out
}

// UncategorizedLabel is the display fallback when no category label can
// be resolved. The lookup never fails.
const UncategorizedLabel = "Uncategorized"

// DisplayCategory resolves the label to show for a transaction: its own
// label first, then the category id against the fetched list, then the
// fixed fallback.
func DisplayCategory(t Transaction, categories []Category) string {
	if t.Category != "" {
		return t.Category
	}

	if t.CategoryName != "" {
		return t.CategoryName
	}

	if t.CategoryID != "" {
		for _, c := range categories {
			if c.ID == t.CategoryID {
				return c.Name
			}
		}
	}

	return UncategorizedLabel
}

// StatsSnapshot is a derived view, recomputed on every fetch and never
// locally authoritative.
type StatsSnapshot struct {
	Balance          float64 `json:"balance"`
	Income           float64 `json:"income"`
	Expense          float64 `json:"expense"`
	TransactionCount int     `json:"transaction_count,omitempty"`
}

// Summarize recomputes a snapshot from a fetched list; the display-layer
// fallback when the stats endpoint is unavailable.
func Summarize(txs []Transaction) StatsSnapshot {
	var s StatsSnapshot

	for _, t := range txs {
		if t.ResolvedType() == TypeExpense {
			s.Expense += t.DisplayAmount()
		} else {
			s.Income += t.DisplayAmount()
		}
	}

	s.Balance = s.Income - s.Expense
	s.TransactionCount = len(txs)

	return s
}

// DisplayDate renders an upstream date as "2 Jan 2006". Unparseable
// dates come back verbatim rather than blank.
func DisplayDate(s string) string {
	d, ok := parseDate(s)
	if !ok {
		return s
	}

	return fmt.Sprintf("%d %s %d", d.Day(), d.Month().String()[:3], d.Year())
}

// parseDate accepts the date formats upstream has been seen to emit.
func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.DateOnly, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
