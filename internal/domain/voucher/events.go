package voucher

import (
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeVoucherCreated  = "VoucherCreated"
	EventTypeVoucherUpdated  = "VoucherUpdated"
	EventTypeVoucherApproved = "VoucherApproved"
	EventTypeVoucherDeleted  = "VoucherDeleted"
)

// VoucherCreatedEvent is raised when a voucher is first saved
type VoucherCreatedEvent struct {
	shared.BaseDomainEvent
	VoucherNumber string `json:"voucher_number"`
	EntryCount    int    `json:"entry_count"`
}

// NewVoucherCreatedEvent creates a new VoucherCreatedEvent
func NewVoucherCreatedEvent(d *Document) *VoucherCreatedEvent {
	return &VoucherCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVoucherCreated, AggregateType, d.ID),
		VoucherNumber:   d.VoucherNumber,
		EntryCount:      len(d.Entries),
	}
}

// VoucherUpdatedEvent is raised when a draft's content is replaced
type VoucherUpdatedEvent struct {
	shared.BaseDomainEvent
	VoucherNumber string `json:"voucher_number"`
	EntryCount    int    `json:"entry_count"`
}

// NewVoucherUpdatedEvent creates a new VoucherUpdatedEvent
func NewVoucherUpdatedEvent(d *Document) *VoucherUpdatedEvent {
	return &VoucherUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVoucherUpdated, AggregateType, d.ID),
		VoucherNumber:   d.VoucherNumber,
		EntryCount:      len(d.Entries),
	}
}

// VoucherApprovedEvent is raised when a voucher is approved
type VoucherApprovedEvent struct {
	shared.BaseDomainEvent
	VoucherNumber string          `json:"voucher_number"`
	Total         decimal.Decimal `json:"total"`
}

// NewVoucherApprovedEvent creates a new VoucherApprovedEvent
func NewVoucherApprovedEvent(d *Document, report BalanceReport) *VoucherApprovedEvent {
	return &VoucherApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVoucherApproved, AggregateType, d.ID),
		VoucherNumber:   d.VoucherNumber,
		Total:           report.TotalDebit,
	}
}

// VoucherDeletedEvent is raised when a draft is deleted
type VoucherDeletedEvent struct {
	shared.BaseDomainEvent
	VoucherNumber string `json:"voucher_number"`
}

// NewVoucherDeletedEvent creates a new VoucherDeletedEvent
func NewVoucherDeletedEvent(d *Document) *VoucherDeletedEvent {
	return &VoucherDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVoucherDeleted, AggregateType, d.ID),
		VoucherNumber:   d.VoucherNumber,
	}
}
