package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/ledger"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAccountRepository implements ledger.AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindAll returns every account ordered by code, then name
func (r *GormAccountRepository) FindAll(ctx context.Context) ([]ledger.Account, error) {
	var rows []models.AccountModel
	if err := r.db.WithContext(ctx).Order("code ASC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	accounts := make([]ledger.Account, len(rows))
	for i := range rows {
		accounts[i] = *rows[i].ToDomain()
	}
	return accounts, nil
}

// FindByID finds an account by ID
func (r *GormAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindByCode finds an account by its code
func (r *GormAccountRepository) FindByCode(ctx context.Context, code string) (*ledger.Account, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.ErrNotFound
	}
	var model models.AccountModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// ExistsByName checks whether another account uses name
func (r *GormAccountRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	return r.exists(ctx, "name = ?", strings.TrimSpace(name), excludeID)
}

// ExistsByCode checks whether another account uses code. An empty code never collides.
func (r *GormAccountRepository) ExistsByCode(ctx context.Context, code string, excludeID uuid.UUID) (bool, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return false, nil
	}
	return r.exists(ctx, "code = ?", code, excludeID)
}

func (r *GormAccountRepository) exists(ctx context.Context, cond string, value string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.AccountModel{}).Where(cond, value)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create creates a new account
func (r *GormAccountRepository) Create(ctx context.Context, account *ledger.Account) error {
	return translateError(r.db.WithContext(ctx).Create(models.AccountModelFromDomain(account)).Error)
}

// Update saves every field of account
func (r *GormAccountRepository) Update(ctx context.Context, account *ledger.Account) error {
	result := r.db.WithContext(ctx).Model(&models.AccountModel{}).
		Where("id = ?", account.ID).
		Select("*").
		Updates(models.AccountModelFromDomain(account))
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the account and its transactions in one transaction
func (r *GormAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&models.TransactionModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.AccountModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count returns the number of accounts
func (r *GormAccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AccountModel{}).Count(&count).Error
	return count, err
}
