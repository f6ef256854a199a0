package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// CreateAccountInput contains the fields of a new account
type CreateAccountInput struct {
	Code string
	Name string
	Type string
}

// UpdateAccountInput is a partial update; nil fields are left unchanged
type UpdateAccountInput struct {
	Code *string
	Name *string
	Type *string
}

// AccountInfo is the public view of an account
type AccountInfo struct {
	ID        uuid.UUID
	Code      string
	Name      string
	Type      string
	CreatedAt time.Time
}

// CreateTransactionInput contains the fields of a new transaction.
// A nil date means now.
type CreateTransactionInput struct {
	AccountID   uuid.UUID
	Date        *time.Time
	Description string
	Amount      decimal.Decimal
}

// UpdateTransactionInput is a partial update; nil fields are left unchanged
type UpdateTransactionInput struct {
	Date        *time.Time
	Description *string
	Amount      *decimal.Decimal
}

// ListTransactionsInput narrows a transaction listing
type ListTransactionsInput struct {
	AccountID *uuid.UUID
	Limit     int
}

// TransactionInfo is the public view of a transaction
type TransactionInfo struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	CreatedAt   time.Time
}

// ToAccountInfo converts a domain account
func ToAccountInfo(a *ledger.Account) AccountInfo {
	return AccountInfo{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		CreatedAt: a.CreatedAt,
	}
}

// ToTransactionInfo converts a domain transaction
func ToTransactionInfo(t *ledger.Transaction) TransactionInfo {
	return TransactionInfo{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount,
		CreatedAt:   t.CreatedAt,
	}
}

// ToTransactionInfos converts a slice of domain transactions
func ToTransactionInfos(txs []ledger.Transaction) []TransactionInfo {
	out := make([]TransactionInfo, len(txs))
	for i := range txs {
		out[i] = ToTransactionInfo(&txs[i])
	}
	return out
}

// ClampLimit applies the default and upper bound to a listing limit
func ClampLimit(limit int) int {
	if limit <= 0 {
		return ledger.DefaultTransactionLimit
	}
	return min(limit, ledger.MaxTransactionLimit)
}
