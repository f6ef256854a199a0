package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/domain/voucher"
	"github.com/hesab/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormVoucherRepository implements voucher.Repository using GORM
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewGormVoucherRepository creates a new GormVoucherRepository
func NewGormVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

func orderedEntries(db *gorm.DB) *gorm.DB {
	return db.Order("line_no ASC")
}

// FindByID finds a voucher with its entries
func (r *GormVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*voucher.Document, error) {
	var model models.VoucherModel
	if err := r.db.WithContext(ctx).
		Preload("Entries", orderedEntries).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of vouchers matching filter
func (r *GormVoucherRepository) FindAll(ctx context.Context, filter voucher.ListFilter) ([]voucher.Document, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.VoucherModel{}), filter)

	query = voucherSort.apply(query, filter.OrderBy, filter.OrderDir)

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize).Offset(filter.Offset())
	}

	var rows []models.VoucherModel
	if err := query.Preload("Entries", orderedEntries).Find(&rows).Error; err != nil {
		return nil, err
	}
	docs := make([]voucher.Document, len(rows))
	for i := range rows {
		docs[i] = *rows[i].ToDomain()
	}
	return docs, nil
}

// Count returns the number of vouchers matching filter, ignoring pagination
func (r *GormVoucherRepository) Count(ctx context.Context, filter voucher.ListFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&models.VoucherModel{}), filter).Count(&count).Error
	return count, err
}

func (r *GormVoucherRepository) applyFilter(query *gorm.DB, filter voucher.ListFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", filter.DateFrom.UTC())
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", filter.DateTo.UTC())
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(voucher_number) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	return query
}

// Save inserts a new voucher or updates an existing one with optimistic
// locking. Entries are replaced as a whole.
func (r *GormVoucherRepository) Save(ctx context.Context, d *voucher.Document) error {
	model := models.VoucherModelFromDomain(d)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.VoucherModel
		err := tx.Select("id", "version").First(&current, "id = ?", d.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := tx.Omit(clause.Associations).Create(model).Error; err != nil {
				return err
			}
			return r.insertEntries(tx, model.Entries)
		}
		if err != nil {
			return err
		}

		expected := d.Version
		if current.Version != expected {
			return conflict("voucher")
		}
		model.Version = expected + 1
		result := tx.Model(&models.VoucherModel{}).
			Where("id = ? AND version = ?", d.ID, expected).
			Select("*").
			Omit(clause.Associations).
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return conflict("voucher")
		}

		if err := tx.Where("voucher_id = ?", d.ID).Delete(&models.VoucherEntryModel{}).Error; err != nil {
			return err
		}
		return r.insertEntries(tx, model.Entries)
	})
	if err != nil {
		return translateError(err)
	}
	d.Version = model.Version
	return nil
}

func (r *GormVoucherRepository) insertEntries(tx *gorm.DB, entries []models.VoucherEntryModel) error {
	if len(entries) == 0 {
		return nil
	}
	return tx.Create(&entries).Error
}

// Delete deletes a voucher and its entries
func (r *GormVoucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("voucher_id = ?", id).Delete(&models.VoucherEntryModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.VoucherModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsByNumber checks whether another voucher of period uses number
func (r *GormVoucherRepository) ExistsByNumber(ctx context.Context, period, number string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.VoucherModel{}).
		Where("period = ? AND voucher_number = ?", period, strings.TrimSpace(number))
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NextNumber returns the number after the highest generated number of period.
// Hand-typed numbers that do not follow the generated pattern are skipped.
func (r *GormVoucherRepository) NextNumber(ctx context.Context, period string) (string, error) {
	prefix := voucher.FormatNumber(period, 0)
	prefix = prefix[:len(prefix)-5]

	var numbers []string
	if err := r.db.WithContext(ctx).Model(&models.VoucherModel{}).
		Where("period = ? AND voucher_number LIKE ?", period, prefix+"%").
		Pluck("voucher_number", &numbers).Error; err != nil {
		return "", fmt.Errorf("failed to load voucher numbers: %w", err)
	}

	highest := 0
	for _, n := range numbers {
		seq, err := strconv.Atoi(strings.TrimPrefix(n, prefix))
		if err != nil {
			continue
		}
		highest = max(highest, seq)
	}
	return voucher.FormatNumber(period, highest+1), nil
}
