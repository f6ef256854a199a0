package ledger

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Stored amounts keep four fractional digits
const AmountScale = 4

// Transaction is a signed amount posted to one account
type Transaction struct {
	shared.BaseEntity
	AccountID   uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// NewTransaction creates a transaction. A zero date means now.
func NewTransaction(accountID uuid.UUID, date time.Time, description string, amount decimal.Decimal) (*Transaction, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError(ErrCodeAccountNotFound, "Account is required")
	}
	tx := &Transaction{
		BaseEntity:  shared.NewBaseEntity(),
		AccountID:   accountID,
		Description: description,
	}
	tx.SetDate(date)
	if err := tx.SetAmount(amount); err != nil {
		return nil, err
	}
	return tx, nil
}

// SetDate changes the date, defaulting a zero value to now
func (t *Transaction) SetDate(date time.Time) {
	if date.IsZero() {
		date = time.Now()
	}
	t.Date = date
	t.Touch()
}

// SetDescription changes the description
func (t *Transaction) SetDescription(description string) {
	t.Description = description
	t.Touch()
}

// SetAmount changes the amount. Precision beyond four places is rejected
// rather than silently rounded.
func (t *Transaction) SetAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Round(AmountScale)) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot have more than 4 decimal places")
	}
	if amount.Abs().GreaterThanOrEqual(decimal.New(1, 14)) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount is out of range")
	}
	t.Amount = amount
	t.Touch()
	return nil
}

// SortNewestFirst orders transactions by date, then creation time, both descending
func SortNewestFirst(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
}
