package ledger

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Limits on stats queries
const (
	RecentLimit      = 10
	DefaultChartDays = 30
	MaxChartDays     = 365
)

// Summary is the dashboard headline
type Summary struct {
	TotalBalance      decimal.Decimal `json:"total_balance"`
	AccountsCount     int64           `json:"accounts_count"`
	TransactionsCount int64           `json:"transactions_count"`
}

// ChartPoint is the sum of one day's amounts
type ChartPoint struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// Total sums the amounts exactly
func Total(txs []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

// ChartSince returns the first instant included in a chart of the last days
func ChartSince(now time.Time, days int) time.Time {
	return now.AddDate(0, 0, -days)
}

// BuildChart groups transactions dated in [since, now] by calendar day, in
// ascending date order. Days without transactions are omitted.
func BuildChart(txs []Transaction, since, now time.Time) []ChartPoint {
	sums := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Date.Before(since) || tx.Date.After(now) {
			continue
		}
		day := tx.Date.Format(time.DateOnly)
		sums[day] = sums[day].Add(tx.Amount)
	}

	points := make([]ChartPoint, 0, len(sums))
	for day, value := range sums {
		points = append(points, ChartPoint{Date: day, Value: value})
	}
	slices.SortFunc(points, func(a, b ChartPoint) int {
		return cmp.Compare(a.Date, b.Date)
	})
	return points
}

// ClampChartDays applies the default and upper bound to a requested range
func ClampChartDays(days int) int {
	if days <= 0 {
		return DefaultChartDays
	}
	return min(days, MaxChartDays)
}
