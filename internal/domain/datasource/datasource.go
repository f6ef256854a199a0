// Package datasource defines the read-only view of the books consumed by
// clients such as the command line tool.
package datasource

import (
	"context"
	"time"

	"github.com/hesab/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// Mode selects a DataSource implementation
type Mode string

const (
	ModeLive    Mode = "live"
	ModeFixture Mode = "fixture"
)

// Account is an account as served to clients
type Account struct {
	ID        string    `json:"id"`
	Code      string    `json:"code,omitempty"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Transaction is a transaction as served to clients
type Transaction struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionQuery narrows a transaction listing
type TransactionQuery struct {
	AccountID string
	Limit     int
}

// Health reports whether the source is reachable
type Health struct {
	Status   string    `json:"status"`
	Database string    `json:"database,omitempty"`
	Time     time.Time `json:"time"`
}

// DataSource serves accounts, transactions and stats
type DataSource interface {
	Accounts(ctx context.Context) ([]Account, error)
	Transactions(ctx context.Context, q TransactionQuery) ([]Transaction, error)
	Summary(ctx context.Context) (*ledger.Summary, error)
	Recent(ctx context.Context) ([]Transaction, error)
	Chart(ctx context.Context, days int) ([]ledger.ChartPoint, error)
	Health(ctx context.Context) (*Health, error)
}
