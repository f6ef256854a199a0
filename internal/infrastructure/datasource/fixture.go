package datasource

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/datasource"
	"github.com/hesab/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixture []byte

type fixtureDocument struct {
	Accounts []struct {
		Code string `yaml:"code"`
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	} `yaml:"accounts"`
	Transactions []struct {
		Account     string `yaml:"account"`
		DaysAgo     int    `yaml:"days_ago"`
		Description string `yaml:"description"`
		Amount      string `yaml:"amount"`
	} `yaml:"transactions"`
}

// FixtureSource serves a fixed set of books from a YAML document. Stats are
// computed with the same rules the server applies.
type FixtureSource struct {
	accounts     []datasource.Account
	transactions []ledger.Transaction
	now          func() time.Time
}

// NewFixtureSource loads the embedded demo books
func NewFixtureSource() (*FixtureSource, error) {
	return ParseFixture(defaultFixture, time.Now)
}

// ParseFixture loads books from a YAML document. IDs are derived from account
// codes and row positions so repeated loads agree.
func ParseFixture(doc []byte, now func() time.Time) (*FixtureSource, error) {
	var raw fixtureDocument
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	loadedAt := now()
	src := &FixtureSource{now: now}
	byCode := make(map[string]uuid.UUID, len(raw.Accounts))
	for _, a := range raw.Accounts {
		typ := ledger.AccountType(strings.ToLower(a.Type))
		if !typ.IsValid() {
			return nil, fmt.Errorf("fixture account %s: invalid type %q", a.Code, a.Type)
		}
		id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("account:"+a.Code))
		byCode[a.Code] = id
		src.accounts = append(src.accounts, datasource.Account{
			ID:        id.String(),
			Code:      a.Code,
			Name:      a.Name,
			Type:      string(typ),
			CreatedAt: loadedAt,
		})
	}

	for i, t := range raw.Transactions {
		accountID, ok := byCode[t.Account]
		if !ok {
			return nil, fmt.Errorf("fixture transaction %d: unknown account %q", i, t.Account)
		}
		amount, err := decimal.NewFromString(t.Amount)
		if err != nil {
			return nil, fmt.Errorf("fixture transaction %d: invalid amount %q: %w", i, t.Amount, err)
		}
		tx, err := ledger.NewTransaction(accountID, loadedAt.AddDate(0, 0, -t.DaysAgo), t.Description, amount)
		if err != nil {
			return nil, fmt.Errorf("fixture transaction %d: %w", i, err)
		}
		tx.ID = uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "transaction:%d", i))
		tx.CreatedAt = loadedAt.Add(time.Duration(i) * time.Millisecond)
		src.transactions = append(src.transactions, *tx)
	}
	ledger.SortNewestFirst(src.transactions)
	return src, nil
}

// Accounts returns the fixture accounts in document order
func (s *FixtureSource) Accounts(context.Context) ([]datasource.Account, error) {
	return append([]datasource.Account(nil), s.accounts...), nil
}

// Transactions filters and limits like the transactions endpoint
func (s *FixtureSource) Transactions(_ context.Context, q datasource.TransactionQuery) ([]datasource.Transaction, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = ledger.DefaultTransactionLimit
	}
	limit = min(limit, ledger.MaxTransactionLimit)

	out := make([]datasource.Transaction, 0, limit)
	for _, tx := range s.transactions {
		if q.AccountID != "" && tx.AccountID.String() != q.AccountID {
			continue
		}
		out = append(out, toView(tx))
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Summary totals every fixture transaction
func (s *FixtureSource) Summary(context.Context) (*ledger.Summary, error) {
	return &ledger.Summary{
		TotalBalance:      ledger.Total(s.transactions),
		AccountsCount:     int64(len(s.accounts)),
		TransactionsCount: int64(len(s.transactions)),
	}, nil
}

// Recent returns the newest transactions
func (s *FixtureSource) Recent(context.Context) ([]datasource.Transaction, error) {
	n := min(ledger.RecentLimit, len(s.transactions))
	out := make([]datasource.Transaction, n)
	for i := range n {
		out[i] = toView(s.transactions[i])
	}
	return out, nil
}

// Chart groups the last days days of transactions by day
func (s *FixtureSource) Chart(_ context.Context, days int) ([]ledger.ChartPoint, error) {
	now := s.now()
	return ledger.BuildChart(s.transactions, ledger.ChartSince(now, ledger.ClampChartDays(days)), now), nil
}

// Health always reports ok
func (s *FixtureSource) Health(context.Context) (*datasource.Health, error) {
	return &datasource.Health{Status: "ok", Database: "fixture", Time: s.now()}, nil
}

func toView(tx ledger.Transaction) datasource.Transaction {
	return datasource.Transaction{
		ID:          tx.ID.String(),
		AccountID:   tx.AccountID.String(),
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      tx.Amount,
		CreatedAt:   tx.CreatedAt,
	}
}

var _ datasource.DataSource = (*FixtureSource)(nil)
