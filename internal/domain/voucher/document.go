package voucher

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/shared"
)

// AggregateType is the aggregate name used in domain events
const AggregateType = "Voucher"

// Error codes returned by document operations
const (
	ErrCodeNotBalanced = "VOUCHER_NOT_BALANCED"
	ErrCodeNotReady    = "VOUCHER_NOT_READY"
	ErrCodeInvalidUser = "INVALID_USER"
)

// Document is a voucher: a dated, numbered set of entries that must balance.
type Document struct {
	shared.BaseAggregateRoot
	VoucherNumber string     `json:"voucher_number"`
	Date          time.Time  `json:"date"`
	Description   string     `json:"description"`
	Status        Status     `json:"status"`
	Period        string     `json:"period"`
	Entries       []Entry    `json:"entries"`
	CreatedBy     *uuid.UUID `json:"created_by,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	ApprovedBy    *uuid.UUID `json:"approved_by,omitempty"`
}

// NewDraft returns the blank document a user starts editing from: today's
// date, draft status and one empty entry.
func NewDraft() *Document {
	return &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Date:              startOfDay(time.Now()),
		Status:            StatusDraft,
		Entries:           []Entry{{}},
	}
}

// NewDocument builds a draft document from submitted content. Content is not
// validated here; callers run Check at submit time.
func NewDocument(number string, date time.Time, description string, entries []Entry) *Document {
	d := &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		VoucherNumber:     number,
		Date:              date,
		Description:       description,
		Status:            StatusDraft,
		Entries:           cloneEntries(entries),
	}
	d.AddDomainEvent(NewVoucherCreatedEvent(d))
	return d
}

// Sheet returns the validated content of the document
func (d *Document) Sheet() Sheet {
	return Sheet{
		VoucherNumber: d.VoucherNumber,
		Date:          d.Date,
		Description:   d.Description,
		Entries:       d.Entries,
	}
}

// Check runs the balance checker over the document
func (d *Document) Check() BalanceReport {
	return CheckBalance(d.Sheet())
}

// AddEntry appends an entry to a draft
func (d *Document) AddEntry(e Entry) error {
	if !d.Status.CanEdit() {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot edit voucher in %s status", d.Status))
	}
	d.Entries = append(d.Entries, e)
	d.Touch()
	return nil
}

// RemoveEntry removes the entry at index i from a draft
func (d *Document) RemoveEntry(i int) error {
	if !d.Status.CanEdit() {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot edit voucher in %s status", d.Status))
	}
	if i < 0 || i >= len(d.Entries) {
		return shared.NewDomainError(shared.ErrInvalidInput.Code, fmt.Sprintf("Entry index %d out of range", i))
	}
	d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
	d.Touch()
	return nil
}

// Replace overwrites the content of a draft
func (d *Document) Replace(number string, date time.Time, description string, entries []Entry) error {
	if !d.Status.CanEdit() {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot edit voucher in %s status", d.Status))
	}
	d.VoucherNumber = number
	d.Date = date
	d.Description = description
	d.Entries = cloneEntries(entries)
	d.Touch()
	d.AddDomainEvent(NewVoucherUpdatedEvent(d))
	return nil
}

// Approve moves a draft to approved. Only a document whose report is ready
// to save can be approved; the report is attached to the error otherwise.
func (d *Document) Approve(by uuid.UUID) error {
	if !d.Status.CanApprove() {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot approve voucher in %s status", d.Status))
	}
	if by == uuid.Nil {
		return shared.NewDomainError(ErrCodeInvalidUser, "Approving user ID is required")
	}

	report := d.Check()
	if !report.ReadyToSave {
		return shared.NewDomainError(ErrCodeNotBalanced, "Voucher must be complete and balanced before approval").
			WithDetails(report)
	}

	now := time.Now()
	d.Status = StatusApproved
	d.ApprovedAt = &now
	d.ApprovedBy = &by
	d.UpdatedAt = now
	d.AddDomainEvent(NewVoucherApprovedEvent(d, report))
	return nil
}

// MarkDeleted validates that the document may be deleted and records the event
func (d *Document) MarkDeleted() error {
	if !d.Status.CanDelete() {
		return shared.NewDomainError(shared.ErrInvalidState.Code, fmt.Sprintf("Cannot delete voucher in %s status", d.Status))
	}
	d.AddDomainEvent(NewVoucherDeletedEvent(d))
	return nil
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}
