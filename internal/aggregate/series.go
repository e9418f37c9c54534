package aggregate

import (
	"fmt"
	"sort"
)

// SeriesPoint is one chart bucket: a calendar day with income and
// expense magnitudes summed separately.
type SeriesPoint struct {
	Label   string
	Income  float64
	Expense float64
}

// DailySeries buckets transactions by day label in chronological order
// of first occurrence. Only days with at least one transaction appear;
// the series stays sparse rather than being reindexed over the window.
func DailySeries(txs []Transaction) []SeriesPoint {
	sorted := make([]Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, _ := parseDate(sorted[i].Date)
		dj, _ := parseDate(sorted[j].Date)
		return di.Before(dj)
	})

	var (
		order  []string
		byDay  = map[string]*SeriesPoint{}
		points []SeriesPoint
	)

	for _, t := range sorted {
		d, ok := parseDate(t.Date)
		if !ok {
			continue
		}

		label := fmt.Sprintf("%d %s", d.Day(), d.Month().String()[:3])

		point, seen := byDay[label]
		if !seen {
			point = &SeriesPoint{Label: label}
			byDay[label] = point
			order = append(order, label)
		}

		if t.ResolvedType() == TypeExpense {
			point.Expense += t.DisplayAmount()
		} else {
			point.Income += t.DisplayAmount()
		}
	}

	for _, label := range order {
		points = append(points, *byDay[label])
	}

	return points
}
