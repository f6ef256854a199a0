package ledger

import (
	"context"
	"time"

	"github.com/hesab/backend/internal/domain/ledger"
)

// StatsService computes the dashboard figures
type StatsService struct {
	accounts     ledger.AccountRepository
	transactions ledger.TransactionRepository
	now          func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(accounts ledger.AccountRepository, transactions ledger.TransactionRepository) *StatsService {
	return &StatsService{accounts: accounts, transactions: transactions, now: time.Now}
}

// Summary returns the exact balance over all transactions and row counts
func (s *StatsService) Summary(ctx context.Context) (*ledger.Summary, error) {
	txs, err := s.transactions.FindAll(ctx, ledger.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	accounts, err := s.accounts.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &ledger.Summary{
		TotalBalance:      ledger.Total(txs),
		AccountsCount:     accounts,
		TransactionsCount: int64(len(txs)),
	}, nil
}

// Recent returns the latest transactions
func (s *StatsService) Recent(ctx context.Context) ([]TransactionInfo, error) {
	txs, err := s.transactions.FindAll(ctx, ledger.TransactionFilter{Limit: ledger.RecentLimit})
	if err != nil {
		return nil, err
	}
	return ToTransactionInfos(txs), nil
}

// Chart returns daily sums over the last days, oldest first
func (s *StatsService) Chart(ctx context.Context, days int) ([]ledger.ChartPoint, error) {
	now := s.now()
	since := ledger.ChartSince(now, ledger.ClampChartDays(days))
	txs, err := s.transactions.FindAll(ctx, ledger.TransactionFilter{Since: &since})
	if err != nil {
		return nil, err
	}
	return ledger.BuildChart(txs, since, now), nil
}
