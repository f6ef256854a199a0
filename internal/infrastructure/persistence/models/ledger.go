package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for the Account domain entity.
// An empty domain code is stored as NULL so the unique index ignores it.
type AccountModel struct {
	BaseModel
	Code *string            `gorm:"type:varchar(50);uniqueIndex"`
	Name string             `gorm:"type:varchar(255);not null;uniqueIndex"`
	Type ledger.AccountType `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account entity.
func (m *AccountModel) ToDomain() *ledger.Account {
	a := &ledger.Account{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Type:       m.Type,
	}
	if m.Code != nil {
		a.Code = *m.Code
	}
	return a
}

// FromDomain populates the persistence model from a domain Account entity.
func (m *AccountModel) FromDomain(a *ledger.Account) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Code = nil
	if a.Code != "" {
		code := a.Code
		m.Code = &code
	}
	m.Name = a.Name
	m.Type = a.Type
}

// AccountModelFromDomain creates a new persistence model from a domain Account entity.
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{}
	m.FromDomain(a)
	return m
}

// TransactionModel is the persistence model for the Transaction domain entity.
type TransactionModel struct {
	BaseModel
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date        time.Time       `gorm:"not null;index"`
	Description string          `gorm:"type:text;not null;default:''"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction entity.
func (m *TransactionModel) ToDomain() *ledger.Transaction {
	return &ledger.Transaction{
		BaseEntity:  m.BaseModel.ToDomain(),
		AccountID:   m.AccountID,
		Date:        m.Date,
		Description: m.Description,
		Amount:      m.Amount,
	}
}

// FromDomain populates the persistence model from a domain Transaction entity.
func (m *TransactionModel) FromDomain(t *ledger.Transaction) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.AccountID = t.AccountID
	m.Date = t.Date.UTC()
	m.Description = t.Description
	m.Amount = t.Amount
}

// TransactionModelFromDomain creates a new persistence model from a domain Transaction entity.
func TransactionModelFromDomain(t *ledger.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}
