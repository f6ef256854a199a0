package persistence

import (
	"context"

	"github.com/hesab/backend/internal/domain/identity"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCompanyRepository implements identity.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Create stores the company
func (r *GormCompanyRepository) Create(ctx context.Context, company *identity.Company) error {
	return translateError(r.db.WithContext(ctx).Create(models.CompanyModelFromDomain(company)).Error)
}

// Get returns the oldest stored company
func (r *GormCompanyRepository) Get(ctx context.Context) (*identity.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// Exists reports whether setup has stored a company
func (r *GormCompanyRepository) Exists(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.CompanyModel{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GormSetupRepository implements identity.SetupRepository using GORM
type GormSetupRepository struct {
	db *gorm.DB
}

// NewGormSetupRepository creates a new GormSetupRepository
func NewGormSetupRepository(db *gorm.DB) *GormSetupRepository {
	return &GormSetupRepository{db: db}
}

// Complete stores company and admin atomically, once
func (r *GormSetupRepository) Complete(ctx context.Context, company *identity.Company, admin *identity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CompanyModel{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return shared.ErrAlreadyExists.WithDetails(map[string]string{"entity": "company"})
		}
		if err := tx.Create(models.CompanyModelFromDomain(company)).Error; err != nil {
			return translateError(err)
		}
		return translateError(tx.Create(models.UserModelFromDomain(admin)).Error)
	})
}
