package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/ledger"
	"github.com/hesab/backend/internal/domain/shared"
)

// TransactionService posts and edits transactions
type TransactionService struct {
	repo     ledger.TransactionRepository
	accounts ledger.AccountRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo ledger.TransactionRepository, accounts ledger.AccountRepository) *TransactionService {
	return &TransactionService{repo: repo, accounts: accounts}
}

// List returns transactions newest first
func (s *TransactionService) List(ctx context.Context, input ListTransactionsInput) ([]TransactionInfo, error) {
	txs, err := s.repo.FindAll(ctx, ledger.TransactionFilter{
		AccountID: input.AccountID,
		Limit:     ClampLimit(input.Limit),
	})
	if err != nil {
		return nil, err
	}
	return ToTransactionInfos(txs), nil
}

// Get returns one transaction
func (s *TransactionService) Get(ctx context.Context, id uuid.UUID) (*TransactionInfo, error) {
	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	info := ToTransactionInfo(tx)
	return &info, nil
}

// Create posts a transaction to an existing account
func (s *TransactionService) Create(ctx context.Context, input CreateTransactionInput) (*TransactionInfo, error) {
	if _, err := s.accounts.FindByID(ctx, input.AccountID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError(ledger.ErrCodeAccountNotFound, "Account not found")
		}
		return nil, err
	}

	var date time.Time
	if input.Date != nil {
		date = *input.Date
	}
	tx, err := ledger.NewTransaction(input.AccountID, date, input.Description, input.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	info := ToTransactionInfo(tx)
	return &info, nil
}

// Update applies a partial update
func (s *TransactionService) Update(ctx context.Context, id uuid.UUID, input UpdateTransactionInput) (*TransactionInfo, error) {
	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Date != nil {
		tx.SetDate(*input.Date)
	}
	if input.Description != nil {
		tx.SetDescription(*input.Description)
	}
	if input.Amount != nil {
		if err := tx.SetAmount(*input.Amount); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, err
	}
	info := ToTransactionInfo(tx)
	return &info, nil
}

// Delete removes a transaction
func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
