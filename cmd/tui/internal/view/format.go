package view

import (
	"github.com/financeflow-app/financeflow/internal/aggregate"
	"github.com/financeflow-app/financeflow/internal/money"
)

// FormatAmount renders an amount in rupiah, e.g. "Rp50.000".
func FormatAmount(amount float64) string {
	return money.FormatIDR(amount)
}

// FormatSignedAmount prefixes the direction sign, e.g. "-Rp50.000".
func FormatSignedAmount(t aggregate.Transaction) string {
	expense := t.ResolvedType() == aggregate.TypeExpense

	signed := t.DisplayAmount()
	if expense {
		signed = -signed
	}

	return money.FormatSigned(signed, expense)
}

// FormatDate renders an upstream date as "2 Mar 2024".
func FormatDate(s string) string {
	return aggregate.DisplayDate(s)
}
