// Package ledger holds the chart of accounts and the transactions posted to it.
package ledger

import (
	"strings"

	"github.com/hesab/backend/internal/domain/shared"
)

// AccountType classifies an account
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
	AccountTypeEquity    AccountType = "equity"
)

// IsValid checks if the account type is known
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeIncome, AccountTypeExpense, AccountTypeEquity:
		return true
	}
	return false
}

const maxAccountNameLength = 255

// ErrCodeAccountNotFound is returned when a transaction names a missing account
const ErrCodeAccountNotFound = "ACCOUNT_NOT_FOUND"

// Account is a chart-of-accounts row. Code is optional and, when set, is the
// code voucher entries refer to.
type Account struct {
	shared.BaseEntity
	Code string
	Name string
	Type AccountType
}

// NewAccount validates and creates an account
func NewAccount(code, name string, accountType AccountType) (*Account, error) {
	a := &Account{BaseEntity: shared.NewBaseEntity()}
	if err := a.SetCode(code); err != nil {
		return nil, err
	}
	if err := a.Rename(name); err != nil {
		return nil, err
	}
	if err := a.ChangeType(accountType); err != nil {
		return nil, err
	}
	return a, nil
}

// SetCode sets or clears the account code
func (a *Account) SetCode(code string) error {
	code = strings.TrimSpace(code)
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot exceed 50 characters")
	}
	a.Code = code
	a.Touch()
	return nil
}

// Rename changes the account name
func (a *Account) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name is required")
	}
	if len(name) > maxAccountNameLength {
		return shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot exceed 255 characters")
	}
	a.Name = name
	a.Touch()
	return nil
}

// ChangeType changes the account type
func (a *Account) ChangeType(t AccountType) error {
	if !t.IsValid() {
		return shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type must be one of asset, liability, income, expense, equity")
	}
	a.Type = t
	a.Touch()
	return nil
}
