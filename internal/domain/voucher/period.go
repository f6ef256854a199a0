package voucher

import (
	"fmt"
	"strconv"
	"time"
)

// FiscalYear is the configured accounting year. Start and End are inclusive days.
type FiscalYear struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether t falls on a day within the fiscal year
func (f FiscalYear) Contains(t time.Time) bool {
	if f.Start.IsZero() || f.End.IsZero() {
		return false
	}
	day := startOfDay(t)
	return !day.Before(startOfDay(f.Start)) && !day.After(startOfDay(f.End))
}

// PeriodFor returns the numbering period of a voucher dated t: the fiscal
// year label when t falls inside it, the calendar year otherwise.
func PeriodFor(t time.Time, fy *FiscalYear) string {
	if fy != nil && fy.Label != "" && fy.Contains(t) {
		return fy.Label
	}
	if t.IsZero() {
		t = time.Now()
	}
	return strconv.Itoa(t.Year())
}

// FormatNumber renders the n-th voucher number of a period
func FormatNumber(period string, n int) string {
	return fmt.Sprintf("VCH-%s-%05d", period, n)
}
