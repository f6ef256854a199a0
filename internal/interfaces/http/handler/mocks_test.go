package handler

import (
	"context"

	"github.com/google/uuid"
	appidentity "github.com/hesab/backend/internal/application/identity"
	appledger "github.com/hesab/backend/internal/application/ledger"
	appvoucher "github.com/hesab/backend/internal/application/voucher"
	"github.com/hesab/backend/internal/domain/ledger"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/domain/voucher"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Login(ctx context.Context, input appidentity.LoginInput) (*appidentity.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.LoginResult), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*appidentity.RefreshResult, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.RefreshResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, accessToken string) error {
	return m.Called(ctx, accessToken).Error(0)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*appidentity.LoginResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.LoginResult), args.Error(1)
}

type MockSetupService struct{ mock.Mock }

func (m *MockSetupService) Setup(ctx context.Context, input appidentity.SetupInput) (*appidentity.SetupResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.SetupResult), args.Error(1)
}

func (m *MockSetupService) Status(ctx context.Context) (*appidentity.SetupStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appidentity.SetupStatus), args.Error(1)
}

type MockOnboardingService struct{ mock.Mock }

func (m *MockOnboardingService) State(ctx context.Context, userID uuid.UUID) (appidentity.StateInfo, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(appidentity.StateInfo), args.Error(1)
}

func (m *MockOnboardingService) AcceptAgreement(ctx context.Context, userID uuid.UUID) (appidentity.StateInfo, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(appidentity.StateInfo), args.Error(1)
}

type MockAccountService struct{ mock.Mock }

func (m *MockAccountService) List(ctx context.Context) ([]appledger.AccountInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).([]appledger.AccountInfo), args.Error(1)
}

func (m *MockAccountService) Get(ctx context.Context, id uuid.UUID) (*appledger.AccountInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.AccountInfo), args.Error(1)
}

func (m *MockAccountService) Create(ctx context.Context, input appledger.CreateAccountInput) (*appledger.AccountInfo, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.AccountInfo), args.Error(1)
}

func (m *MockAccountService) Update(ctx context.Context, id uuid.UUID, input appledger.UpdateAccountInput) (*appledger.AccountInfo, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.AccountInfo), args.Error(1)
}

func (m *MockAccountService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockTransactionService struct{ mock.Mock }

func (m *MockTransactionService) List(ctx context.Context, input appledger.ListTransactionsInput) ([]appledger.TransactionInfo, error) {
	args := m.Called(ctx, input)
	return args.Get(0).([]appledger.TransactionInfo), args.Error(1)
}

func (m *MockTransactionService) Get(ctx context.Context, id uuid.UUID) (*appledger.TransactionInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.TransactionInfo), args.Error(1)
}

func (m *MockTransactionService) Create(ctx context.Context, input appledger.CreateTransactionInput) (*appledger.TransactionInfo, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.TransactionInfo), args.Error(1)
}

func (m *MockTransactionService) Update(ctx context.Context, id uuid.UUID, input appledger.UpdateTransactionInput) (*appledger.TransactionInfo, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appledger.TransactionInfo), args.Error(1)
}

func (m *MockTransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockStatsService struct{ mock.Mock }

func (m *MockStatsService) Summary(ctx context.Context) (*ledger.Summary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Summary), args.Error(1)
}

func (m *MockStatsService) Recent(ctx context.Context) ([]appledger.TransactionInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).([]appledger.TransactionInfo), args.Error(1)
}

func (m *MockStatsService) Chart(ctx context.Context, days int) ([]ledger.ChartPoint, error) {
	args := m.Called(ctx, days)
	return args.Get(0).([]ledger.ChartPoint), args.Error(1)
}

type MockVoucherService struct{ mock.Mock }

func (m *MockVoucherService) Check(ctx context.Context, input appvoucher.VoucherInput) voucher.BalanceReport {
	return m.Called(ctx, input).Get(0).(voucher.BalanceReport)
}

func (m *MockVoucherService) Template(ctx context.Context) (*appvoucher.VoucherResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appvoucher.VoucherResult), args.Error(1)
}

func (m *MockVoucherService) Create(ctx context.Context, input appvoucher.VoucherInput, by uuid.UUID) (*appvoucher.VoucherResult, error) {
	args := m.Called(ctx, input, by)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appvoucher.VoucherResult), args.Error(1)
}

func (m *MockVoucherService) Update(ctx context.Context, id uuid.UUID, input appvoucher.VoucherInput) (*appvoucher.VoucherResult, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appvoucher.VoucherResult), args.Error(1)
}

func (m *MockVoucherService) Get(ctx context.Context, id uuid.UUID) (*appvoucher.VoucherResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appvoucher.VoucherResult), args.Error(1)
}

func (m *MockVoucherService) List(ctx context.Context, input appvoucher.ListInput) (shared.Paginated[voucher.Document], error) {
	args := m.Called(ctx, input)
	return args.Get(0).(shared.Paginated[voucher.Document]), args.Error(1)
}

func (m *MockVoucherService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVoucherService) Approve(ctx context.Context, id uuid.UUID, by uuid.UUID) (*appvoucher.VoucherResult, error) {
	args := m.Called(ctx, id, by)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appvoucher.VoucherResult), args.Error(1)
}

func (m *MockVoucherService) Export(ctx context.Context, id uuid.UUID) (*appvoucher.ExportResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*appvoucher.ExportResult), args.Error(1)
}

var (
	_ AuthService        = (*MockAuthService)(nil)
	_ SetupService       = (*MockSetupService)(nil)
	_ OnboardingService  = (*MockOnboardingService)(nil)
	_ AccountService     = (*MockAccountService)(nil)
	_ TransactionService = (*MockTransactionService)(nil)
	_ StatsService       = (*MockStatsService)(nil)
	_ VoucherService     = (*MockVoucherService)(nil)
)
