package voucher

import "fmt"

// ViolationCode identifies a single broken validation rule
type ViolationCode string

// Entry-level codes
const (
	CodeMissingAccountCode ViolationCode = "MISSING_ACCOUNT_CODE"
	CodeMissingAccountName ViolationCode = "MISSING_ACCOUNT_NAME"
	CodeMissingDescription ViolationCode = "MISSING_DESCRIPTION"
	CodeNegativeDebit      ViolationCode = "NEGATIVE_DEBIT"
	CodeNegativeCredit     ViolationCode = "NEGATIVE_CREDIT"
	CodeBothSidesPopulated ViolationCode = "BOTH_SIDES_POPULATED"
)

// Document-level codes. MISSING_DESCRIPTION is shared with entries; the
// entry index tells them apart.
const (
	CodeEmptyDocument        ViolationCode = "EMPTY_DOCUMENT"
	CodeMissingVoucherNumber ViolationCode = "MISSING_VOUCHER_NUMBER"
	CodeMissingDate          ViolationCode = "MISSING_DATE"
	CodeUnbalanced           ViolationCode = "UNBALANCED"
)

// Field names reported on violations, matching the JSON names of the form fields
const (
	FieldAccountCode   = "account_code"
	FieldAccountName   = "account_name"
	FieldDescription   = "description"
	FieldDebitAmount   = "debit_amount"
	FieldCreditAmount  = "credit_amount"
	FieldVoucherNumber = "voucher_number"
	FieldDate          = "date"
	FieldEntries       = "entries"
)

// Violation is one problem found while validating a voucher.
// EntryIndex is nil for document-level violations.
type Violation struct {
	Code       ViolationCode `json:"code"`
	Field      string        `json:"field"`
	Message    string        `json:"message"`
	EntryIndex *int          `json:"entry_index,omitempty"`
}

// IsDocumentLevel reports whether the violation concerns the whole document
func (v Violation) IsDocumentLevel() bool {
	return v.EntryIndex == nil
}

func (v Violation) String() string {
	if v.EntryIndex == nil {
		return fmt.Sprintf("%s: %s", v.Field, v.Message)
	}
	return fmt.Sprintf("entries[%d].%s: %s", *v.EntryIndex, v.Field, v.Message)
}

func newViolation(code ViolationCode, field, message string) Violation {
	return Violation{Code: code, Field: field, Message: message}
}

func (v Violation) atEntry(i int) Violation {
	idx := i
	v.EntryIndex = &idx
	return v
}
