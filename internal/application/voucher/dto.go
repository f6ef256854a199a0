package voucher

import (
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/voucher"
	"github.com/shopspring/decimal"
)

// EntryInput is one submitted entry row
type EntryInput struct {
	AccountCode  string
	AccountName  string
	Description  string
	DebitAmount  decimal.Decimal
	CreditAmount decimal.Decimal
}

// VoucherInput is a submitted voucher form. Version, when non-zero, must
// match the stored version on update.
type VoucherInput struct {
	VoucherNumber string
	Date          time.Time
	Description   string
	Entries       []EntryInput
	Version       int
}

// ListInput narrows a voucher listing
type ListInput struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// VoucherResult is a document with its current balance report
type VoucherResult struct {
	Document *voucher.Document
	Report   voucher.BalanceReport
}

// ExportResult is a rendered workbook
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Sheet converts the input into the checker's view
func (in VoucherInput) Sheet() voucher.Sheet {
	return voucher.Sheet{
		VoucherNumber: in.VoucherNumber,
		Date:          in.Date,
		Description:   in.Description,
		Entries:       in.DomainEntries(),
	}
}

// DomainEntries converts the submitted rows
func (in VoucherInput) DomainEntries() []voucher.Entry {
	entries := make([]voucher.Entry, len(in.Entries))
	for i, e := range in.Entries {
		entries[i] = voucher.Entry{
			AccountCode:  e.AccountCode,
			AccountName:  e.AccountName,
			Description:  e.Description,
			DebitAmount:  e.DebitAmount,
			CreditAmount: e.CreditAmount,
		}
	}
	return entries
}

func newResult(d *voucher.Document) *VoucherResult {
	return &VoucherResult{Document: d, Report: d.Check()}
}

// actor is the acting user, or nil when unknown
func actor(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}
