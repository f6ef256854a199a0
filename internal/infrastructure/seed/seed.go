// Package seed fills an empty database with demo books.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/hesab/backend/internal/domain/ledger"
	"github.com/hesab/backend/internal/infrastructure/datasource"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// DefaultTransactions is the number of random transactions Run posts
	DefaultTransactions = 100
	// DefaultSpanDays is how far back the random dates reach
	DefaultSpanDays = 60
)

// demoAccounts are the uncoded accounts the dashboard starts with
var demoAccounts = []struct {
	name string
	typ  ledger.AccountType
}{
	{"Cash", ledger.AccountTypeAsset},
	{"Bank", ledger.AccountTypeAsset},
	{"Revenue", ledger.AccountTypeIncome},
	{"Expenses", ledger.AccountTypeExpense},
}

// Result reports what Run created
type Result struct {
	Skipped      bool
	Accounts     int
	Transactions int
}

// Option configures a Seeder
type Option func(*Seeder)

// WithFaker fixes the random source, e.g. gofakeit.New(42) for repeatable data
func WithFaker(f *gofakeit.Faker) Option {
	return func(s *Seeder) { s.faker = f }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

// WithTransactions sets how many random transactions are posted
func WithTransactions(n int) Option {
	return func(s *Seeder) { s.count = n }
}

// Seeder writes the demo data through the ledger repositories
type Seeder struct {
	accounts     ledger.AccountRepository
	transactions ledger.TransactionRepository
	logger       *zap.Logger
	faker        *gofakeit.Faker
	now          func() time.Time
	count        int
}

// New creates a Seeder with a randomly seeded faker
func New(accounts ledger.AccountRepository, transactions ledger.TransactionRepository, logger *zap.Logger, opts ...Option) *Seeder {
	s := &Seeder{
		accounts:     accounts,
		transactions: transactions,
		logger:       logger,
		faker:        gofakeit.New(0),
		now:          time.Now,
		count:        DefaultTransactions,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run seeds only when no account exists, so running it twice is harmless
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	n, err := s.accounts.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	if n > 0 {
		s.logger.Info("Seed data already exists", zap.Int64("accounts", n))
		return &Result{Skipped: true}, nil
	}

	demo := make([]*ledger.Account, 0, len(demoAccounts))
	for _, d := range demoAccounts {
		a, err := ledger.NewAccount("", d.name, d.typ)
		if err != nil {
			return nil, err
		}
		if err := s.accounts.Create(ctx, a); err != nil {
			return nil, fmt.Errorf("failed to create account %q: %w", d.name, err)
		}
		demo = append(demo, a)
	}

	chart, err := s.chartOfAccounts(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := 0; i < s.count; i++ {
		account := demo[s.faker.Number(0, len(demo)-1)]
		tx, err := ledger.NewTransaction(account.ID, s.randomDate(now), s.faker.Sentence(4), s.randomAmount())
		if err != nil {
			return nil, err
		}
		if err := s.transactions.Create(ctx, tx); err != nil {
			return nil, fmt.Errorf("failed to create transaction: %w", err)
		}
	}

	res := &Result{Accounts: len(demo) + chart, Transactions: s.count}
	s.logger.Info("Seed data created",
		zap.Int("accounts", res.Accounts),
		zap.Int("transactions", res.Transactions),
	)
	return res, nil
}

// chartOfAccounts creates the coded accounts voucher entries refer to, taken
// from the embedded fixture books.
func (s *Seeder) chartOfAccounts(ctx context.Context) (int, error) {
	fixture, err := datasource.NewFixtureSource()
	if err != nil {
		return 0, err
	}
	rows, err := fixture.Accounts(ctx)
	if err != nil {
		return 0, err
	}
	for _, row := range rows {
		a, err := ledger.NewAccount(row.Code, row.Name, ledger.AccountType(row.Type))
		if err != nil {
			return 0, err
		}
		if err := s.accounts.Create(ctx, a); err != nil {
			return 0, fmt.Errorf("failed to create account %s: %w", row.Code, err)
		}
	}
	return len(rows), nil
}

// randomAmount is (r-0.3)*1000 rounded to cents, so roughly 70% are positive
func (s *Seeder) randomAmount() decimal.Decimal {
	return decimal.NewFromFloat((s.faker.Float64Range(0, 1) - 0.3) * 1000).Round(2)
}

func (s *Seeder) randomDate(now time.Time) time.Time {
	offset := time.Duration(s.faker.Float64Range(0, 1) * float64(DefaultSpanDays*24*time.Hour))
	return now.Add(-offset)
}
