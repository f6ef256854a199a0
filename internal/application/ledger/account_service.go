// Package ledger holds the account, transaction and dashboard services.
package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/ledger"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AccountService manages the chart of accounts
type AccountService struct {
	repo   ledger.AccountRepository
	logger *zap.Logger
}

// NewAccountService creates a new account service
func NewAccountService(repo ledger.AccountRepository, logger *zap.Logger) *AccountService {
	return &AccountService{repo: repo, logger: logger}
}

// List returns every account ordered by name
func (s *AccountService) List(ctx context.Context) ([]AccountInfo, error) {
	accounts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AccountInfo, len(accounts))
	for i := range accounts {
		out[i] = ToAccountInfo(&accounts[i])
	}
	return out, nil
}

// Get returns one account
func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (*AccountInfo, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := ToAccountInfo(account)
	return &info, nil
}

// Create adds an account. Name and code must be unused.
func (s *AccountService) Create(ctx context.Context, input CreateAccountInput) (*AccountInfo, error) {
	account, err := ledger.NewAccount(input.Code, input.Name, ledger.AccountType(input.Type))
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, account); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	logger.Enrich(ctx, s.logger).Info("Account created",
		zap.String("account_id", account.ID.String()),
		zap.String("name", account.Name))
	info := ToAccountInfo(account)
	return &info, nil
}

// Update applies a partial update
func (s *AccountService) Update(ctx context.Context, id uuid.UUID, input UpdateAccountInput) (*AccountInfo, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Code != nil {
		if err := account.SetCode(*input.Code); err != nil {
			return nil, err
		}
	}
	if input.Name != nil {
		if err := account.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Type != nil {
		if err := account.ChangeType(ledger.AccountType(*input.Type)); err != nil {
			return nil, err
		}
	}
	if err := s.ensureUnique(ctx, account); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	info := ToAccountInfo(account)
	return &info, nil
}

// Delete removes the account and its transactions
func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Enrich(ctx, s.logger).Info("Account deleted", zap.String("account_id", id.String()))
	return nil
}

func (s *AccountService) ensureUnique(ctx context.Context, a *ledger.Account) error {
	taken, err := s.repo.ExistsByName(ctx, a.Name, a.ID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, "An account with this name already exists").
			WithDetails(map[string]string{"field": "name"})
	}
	taken, err = s.repo.ExistsByCode(ctx, a.Code, a.ID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, "An account with this code already exists").
			WithDetails(map[string]string{"field": "code"})
	}
	return nil
}
