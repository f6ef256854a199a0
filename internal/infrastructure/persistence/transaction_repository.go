package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/ledger"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTransactionRepository implements ledger.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindAll returns matching transactions, newest first
func (r *GormTransactionRepository) FindAll(ctx context.Context, filter ledger.TransactionFilter) ([]ledger.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&models.TransactionModel{})
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.Since != nil {
		query = query.Where("date >= ?", filter.Since.UTC())
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []models.TransactionModel
	if err := query.Order("date DESC").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	txs := make([]ledger.Transaction, len(rows))
	for i := range rows {
		txs[i] = *rows[i].ToDomain()
	}
	return txs, nil
}

// FindByID finds a transaction by ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Create creates a new transaction. A missing account surfaces as ACCOUNT_NOT_FOUND.
func (r *GormTransactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	err := r.db.WithContext(ctx).Create(models.TransactionModelFromDomain(tx)).Error
	if isForeignKeyViolation(err) {
		return shared.NewDomainError(ledger.ErrCodeAccountNotFound, "Account not found")
	}
	return translateError(err)
}

// Update saves every field of tx
func (r *GormTransactionRepository) Update(ctx context.Context, tx *ledger.Transaction) error {
	result := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("id = ?", tx.ID).
		Select("*").
		Updates(models.TransactionModelFromDomain(tx))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes a transaction by ID
func (r *GormTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of transactions
func (r *GormTransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).Count(&count).Error
	return count, err
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated) ||
		strings.Contains(err.Error(), "FOREIGN KEY constraint failed") ||
		strings.Contains(err.Error(), "violates foreign key constraint")
}
