package voucher

import (
	"context"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/identity"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/domain/voucher"
	"github.com/stretchr/testify/mock"
)

type MockVoucherRepository struct {
	mock.Mock
}

func (m *MockVoucherRepository) FindByID(ctx context.Context, id uuid.UUID) (*voucher.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*voucher.Document), args.Error(1)
}

func (m *MockVoucherRepository) FindAll(ctx context.Context, filter voucher.ListFilter) ([]voucher.Document, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]voucher.Document), args.Error(1)
}

func (m *MockVoucherRepository) Count(ctx context.Context, filter voucher.ListFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVoucherRepository) Save(ctx context.Context, d *voucher.Document) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockVoucherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVoucherRepository) ExistsByNumber(ctx context.Context, period, number string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, period, number, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoucherRepository) NextNumber(ctx context.Context, period string) (string, error) {
	args := m.Called(ctx, period)
	return args.String(0), args.Error(1)
}

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *identity.Company) error {
	return m.Called(ctx, company).Error(0)
}

func (m *MockCompanyRepository) Get(ctx context.Context) (*identity.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Company), args.Error(1)
}

func (m *MockCompanyRepository) Exists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// capturingPublisher keeps every published event type
type capturingPublisher struct {
	types []string
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	for _, e := range events {
		p.types = append(p.types, e.EventType())
	}
	return nil
}

type stubExporter struct {
	company *identity.Company
}

func (e *stubExporter) Export(d *voucher.Document, company *identity.Company) ([]byte, error) {
	e.company = company
	return []byte("xlsx:" + d.VoucherNumber), nil
}
