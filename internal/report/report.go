// Package report renders a month's transactions as a plain-text
// statement and writes it to disk.
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/financeflow-app/financeflow/internal/aggregate"
	"github.com/financeflow-app/financeflow/internal/money"
)

// ErrNoTransactions means the window had nothing to report; no file is
// written for an empty month.
var ErrNoTransactions = errors.New("no transactions in the selected period")

// Row is one numbered statement line.
type Row struct {
	No          int
	Date        string
	Description string
	Category    string
	Amount      string
}

// Report is a rendered month statement.
type Report struct {
	Title  string
	Period string
	Rows   []Row
	Total  string
	count  int
}

// Build assembles the statement for one month's transactions, newest
// first, totalling the signed amounts.
func Build(txs []aggregate.Transaction, categories []aggregate.Category, year int, month time.Month) (*Report, error) {
	if len(txs) == 0 {
		return nil, ErrNoTransactions
	}

	period := fmt.Sprintf("%s %d", month.String(), year)

	r := &Report{
		Title:  "FinanceFlow Transaction Report",
		Period: period,
		count:  len(txs),
	}

	var total float64
	for i, t := range txs {
		expense := t.ResolvedType() == aggregate.TypeExpense

		signed := t.DisplayAmount()
		if expense {
			signed = -signed
		}
		total += signed

		description := t.Note
		if description == "" {
			description = "-"
		}

		r.Rows = append(r.Rows, Row{
			No:          i + 1,
			Date:        aggregate.DisplayDate(t.Date),
			Description: description,
			Category:    aggregate.DisplayCategory(t, categories),
			Amount:      money.FormatSigned(signed, expense),
		})
	}

	r.Total = money.FormatSigned(total, total < 0)

	return r, nil
}

// Render lays the statement out as aligned text columns.
func (r *Report) Render() string {
	headers := []string{"No", "Date", "Description", "Category", "Amount"}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	cells := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		line := []string{fmt.Sprintf("%d", row.No), row.Date, row.Description, row.Category, row.Amount}
		for i, c := range line {
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}

		cells = append(cells, line)
	}

	totalLabel := "TOTAL"
	if len(totalLabel) > widths[0] {
		widths[0] = len(totalLabel)
	}
	if len(r.Total) > widths[len(widths)-1] {
		widths[len(widths)-1] = len(r.Total)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", r.Title)
	fmt.Fprintf(&b, "Period: %s\n", r.Period)
	fmt.Fprintf(&b, "Transactions: %d\n\n", r.count)

	writeLine := func(line []string) {
		for i, c := range line {
			if i > 0 {
				b.WriteString("  ")
			}

			fmt.Fprintf(&b, "%-*s", widths[i], c)
		}
		b.WriteString("\n")
	}

	writeLine(headers)

	var ruleWidth int
	for i, w := range widths {
		if i > 0 {
			ruleWidth += 2
		}
		ruleWidth += w
	}
	b.WriteString(strings.Repeat("-", ruleWidth))
	b.WriteString("\n")

	for _, line := range cells {
		writeLine(line)
	}

	b.WriteString(strings.Repeat("-", ruleWidth))
	b.WriteString("\n")
	writeLine([]string{totalLabel, "", "", "", r.Total})

	return b.String()
}

// Filename is the canonical statement name, e.g.
// "FinanceFlow_Report_March_2024.txt".
func (r *Report) Filename() string {
	return "FinanceFlow_Report_" + strings.ReplaceAll(r.Period, " ", "_") + ".txt"
}

// WriteFile renders the statement into dir and returns the file path.
func (r *Report) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, r.Filename())
	if err := os.WriteFile(path, []byte(r.Render()), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	return path, nil
}
