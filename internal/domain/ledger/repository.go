package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Transaction listing limits
const (
	DefaultTransactionLimit = 100
	MaxTransactionLimit     = 1000
)

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	FindAll(ctx context.Context) ([]Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByCode(ctx context.Context, code string) (*Account, error)
	// ExistsByName and ExistsByCode ignore the account with excludeID
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	ExistsByCode(ctx context.Context, code string, excludeID uuid.UUID) (bool, error)
	Create(ctx context.Context, account *Account) error
	Update(ctx context.Context, account *Account) error
	// Delete removes the account together with its transactions
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// TransactionFilter narrows a transaction listing
type TransactionFilter struct {
	AccountID *uuid.UUID
	Since     *time.Time
	// Limit of zero returns every match
	Limit int
}

// TransactionRepository defines the interface for transaction persistence.
// FindAll returns rows newest first.
type TransactionRepository interface {
	FindAll(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)
	Create(ctx context.Context, tx *Transaction) error
	Update(ctx context.Context, tx *Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
