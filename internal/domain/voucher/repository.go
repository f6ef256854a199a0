package voucher

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/shared"
)

// ListFilter narrows a voucher listing
type ListFilter struct {
	shared.Filter
	Status   Status
	DateFrom *time.Time
	DateTo   *time.Time
}

// Repository persists voucher documents
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Document, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	// Save inserts or updates d. Updates fail with CONCURRENCY_CONFLICT when
	// the stored version differs from d's version.
	Save(ctx context.Context, d *Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByNumber(ctx context.Context, period, number string, excludeID uuid.UUID) (bool, error)
	// NextNumber suggests the next free voucher number within period
	NextNumber(ctx context.Context, period string) (string, error)
}
