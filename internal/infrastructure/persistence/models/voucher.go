package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/voucher"
	"github.com/shopspring/decimal"
)

// VoucherModel is the persistence model for the voucher Document aggregate.
type VoucherModel struct {
	AggregateModel
	VoucherNumber string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_vouchers_period_number,priority:2"`
	Period        string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_vouchers_period_number,priority:1"`
	Date          time.Time      `gorm:"not null;index"`
	Description   string         `gorm:"type:text;not null;default:''"`
	Status        voucher.Status `gorm:"type:varchar(20);not null;default:'draft'"`
	CreatedBy     *uuid.UUID     `gorm:"type:uuid"`
	ApprovedAt    *time.Time
	ApprovedBy    *uuid.UUID          `gorm:"type:uuid"`
	Entries       []VoucherEntryModel `gorm:"foreignKey:VoucherID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (VoucherModel) TableName() string {
	return "vouchers"
}

// VoucherEntryModel is one line of a voucher. LineNo keeps the entry order.
type VoucherEntryModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VoucherID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo       int             `gorm:"not null"`
	AccountCode  string          `gorm:"type:varchar(50);not null;default:''"`
	AccountName  string          `gorm:"type:varchar(255);not null;default:''"`
	Description  string          `gorm:"type:text;not null;default:''"`
	DebitAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreditAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (VoucherEntryModel) TableName() string {
	return "voucher_entries"
}

// ToDomain converts the persistence model to a domain Document.
// Entries must be preloaded in line order.
func (m *VoucherModel) ToDomain() *voucher.Document {
	entries := make([]voucher.Entry, len(m.Entries))
	for i, e := range m.Entries {
		entries[i] = voucher.Entry{
			AccountCode:  e.AccountCode,
			AccountName:  e.AccountName,
			Description:  e.Description,
			DebitAmount:  e.DebitAmount,
			CreditAmount: e.CreditAmount,
		}
	}
	return &voucher.Document{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		VoucherNumber:     m.VoucherNumber,
		Date:              m.Date,
		Description:       m.Description,
		Status:            m.Status,
		Period:            m.Period,
		Entries:           entries,
		CreatedBy:         m.CreatedBy,
		ApprovedAt:        m.ApprovedAt,
		ApprovedBy:        m.ApprovedBy,
	}
}

// FromDomain populates the persistence model from a domain Document.
// Entry rows get fresh IDs; repositories replace them as a whole.
func (m *VoucherModel) FromDomain(d *voucher.Document) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.VoucherNumber = d.VoucherNumber
	m.Period = d.Period
	m.Date = d.Date.UTC()
	m.Description = d.Description
	m.Status = d.Status
	m.CreatedBy = d.CreatedBy
	m.ApprovedAt = utcPtr(d.ApprovedAt)
	m.ApprovedBy = d.ApprovedBy
	m.Entries = make([]VoucherEntryModel, len(d.Entries))
	for i, e := range d.Entries {
		m.Entries[i] = VoucherEntryModel{
			ID:           uuid.New(),
			VoucherID:    d.ID,
			LineNo:       i + 1,
			AccountCode:  e.AccountCode,
			AccountName:  e.AccountName,
			Description:  e.Description,
			DebitAmount:  e.DebitAmount,
			CreditAmount: e.CreditAmount,
		}
	}
}

// VoucherModelFromDomain creates a new persistence model from a domain Document.
func VoucherModelFromDomain(d *voucher.Document) *VoucherModel {
	m := &VoucherModel{}
	m.FromDomain(d)
	return m
}
