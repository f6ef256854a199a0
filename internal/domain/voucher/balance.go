package voucher

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceReport is the full result of checking a voucher document.
type BalanceReport struct {
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Difference  decimal.Decimal `json:"difference"`
	IsBalanced  bool            `json:"is_balanced"`
	Violations  []Violation     `json:"violations"`
	ReadyToSave bool            `json:"ready_to_save"`
}

// HasViolation reports whether any violation carries code
func (r BalanceReport) HasViolation(code ViolationCode) bool {
	for _, v := range r.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

// EntryViolations returns the violations attached to entry i
func (r BalanceReport) EntryViolations(i int) []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.EntryIndex != nil && *v.EntryIndex == i {
			out = append(out, v)
		}
	}
	return out
}

// Sheet is the validated content of a voucher, independent of its persistence identity.
type Sheet struct {
	VoucherNumber string
	Date          time.Time
	Description   string
	Entries       []Entry
}

// CheckBalance validates every entry, totals both columns with exact decimal
// arithmetic and reports all problems at once. It never fails and has no side effects.
//
// A sheet without entries is never balanced: 0 == 0 does not count.
func CheckBalance(s Sheet) BalanceReport {
	report := BalanceReport{
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Violations:  make([]Violation, 0),
	}

	for i, e := range s.Entries {
		for _, v := range ValidateEntry(e) {
			report.Violations = append(report.Violations, v.atEntry(i))
		}
		report.TotalDebit = report.TotalDebit.Add(e.DebitAmount)
		report.TotalCredit = report.TotalCredit.Add(e.CreditAmount)
	}

	report.Difference = report.TotalDebit.Sub(report.TotalCredit)
	hasEntries := len(s.Entries) > 0
	report.IsBalanced = hasEntries && report.TotalDebit.Equal(report.TotalCredit)

	if !hasEntries {
		report.Violations = append(report.Violations,
			newViolation(CodeEmptyDocument, FieldEntries, "At least one entry is required"))
	}
	if isBlank(s.VoucherNumber) {
		report.Violations = append(report.Violations,
			newViolation(CodeMissingVoucherNumber, FieldVoucherNumber, "Voucher number is required"))
	}
	if s.Date.IsZero() {
		report.Violations = append(report.Violations,
			newViolation(CodeMissingDate, FieldDate, "Date is required"))
	}
	if isBlank(s.Description) {
		report.Violations = append(report.Violations,
			newViolation(CodeMissingDescription, FieldDescription, "Voucher description is required"))
	}
	if hasEntries && !report.IsBalanced {
		report.Violations = append(report.Violations,
			newViolation(CodeUnbalanced, FieldEntries,
				fmt.Sprintf("Total debit and credit must be equal (difference %s)", report.Difference.String())))
	}

	report.ReadyToSave = len(report.Violations) == 0 && report.IsBalanced
	return report
}
