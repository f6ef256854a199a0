package voucher

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Entry is one line (article) of a voucher: a debit or a credit against one account.
type Entry struct {
	AccountCode  string          `json:"account_code"`
	AccountName  string          `json:"account_name"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debit_amount"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
}

// IsDebit reports whether the entry debits its account
func (e Entry) IsDebit() bool {
	return e.DebitAmount.IsPositive()
}

// IsCredit reports whether the entry credits its account
func (e Entry) IsCredit() bool {
	return e.CreditAmount.IsPositive()
}

// ValidateEntry checks a single entry and returns every rule it breaks.
// It never stops at the first problem. A valid entry yields no violations.
func ValidateEntry(e Entry) []Violation {
	var out []Violation

	if isBlank(e.AccountCode) {
		out = append(out, newViolation(CodeMissingAccountCode, FieldAccountCode, "Account code is required"))
	}
	if isBlank(e.AccountName) {
		out = append(out, newViolation(CodeMissingAccountName, FieldAccountName, "Account name is required"))
	}
	if isBlank(e.Description) {
		out = append(out, newViolation(CodeMissingDescription, FieldDescription, "Description is required"))
	}
	if e.DebitAmount.IsNegative() {
		out = append(out, newViolation(CodeNegativeDebit, FieldDebitAmount, "Debit amount cannot be negative"))
	}
	if e.CreditAmount.IsNegative() {
		out = append(out, newViolation(CodeNegativeCredit, FieldCreditAmount, "Credit amount cannot be negative"))
	}
	// Reported on the debit field, where the form renders it.
	if e.IsDebit() && e.IsCredit() {
		out = append(out, newViolation(CodeBothSidesPopulated, FieldDebitAmount, "An entry cannot be both debited and credited"))
	}

	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
