// Package voucher coordinates voucher documents: balance checks, numbering,
// persistence, approval and export.
package voucher

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/identity"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/domain/voucher"
	"github.com/hesab/backend/internal/infrastructure/export"
	"github.com/hesab/backend/internal/infrastructure/logger"
	"github.com/hesab/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const spanService = "VoucherService"

// Exporter renders a voucher as a file
type Exporter interface {
	Export(d *voucher.Document, company *identity.Company) ([]byte, error)
}

// VoucherService handles voucher use cases
type VoucherService struct {
	repo      voucher.Repository
	companies identity.CompanyRepository
	events    shared.EventPublisher
	exporter  Exporter
	logger    *zap.Logger
}

// NewVoucherService creates a new voucher service
func NewVoucherService(
	repo voucher.Repository,
	companies identity.CompanyRepository,
	events shared.EventPublisher,
	exporter Exporter,
	logger *zap.Logger,
) *VoucherService {
	return &VoucherService{
		repo:      repo,
		companies: companies,
		events:    events,
		exporter:  exporter,
		logger:    logger,
	}
}

// Check runs the balance checker without saving anything
func (s *VoucherService) Check(_ context.Context, input VoucherInput) voucher.BalanceReport {
	return voucher.CheckBalance(input.Sheet())
}

// Template returns a blank draft carrying the next free number of today's period
func (s *VoucherService) Template(ctx context.Context) (*VoucherResult, error) {
	d := voucher.NewDraft()
	fy, err := s.fiscalYear(ctx)
	if err != nil {
		return nil, err
	}
	d.Period = voucher.PeriodFor(d.Date, fy)
	number, err := s.repo.NextNumber(ctx, d.Period)
	if err != nil {
		return nil, err
	}
	d.VoucherNumber = number
	return newResult(d), nil
}

// Create saves a new draft. Content must be ready to save.
func (s *VoucherService) Create(ctx context.Context, input VoucherInput, by uuid.UUID) (*VoucherResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "Create",
		telemetry.AttrVoucherNumber.String(input.VoucherNumber))
	defer span.End()

	if err := s.ensureReady(span, input); err != nil {
		return nil, telemetry.RecordError(span, err)
	}

	fy, err := s.fiscalYear(ctx)
	if err != nil {
		return nil, err
	}
	d := voucher.NewDocument(strings.TrimSpace(input.VoucherNumber), input.Date, strings.TrimSpace(input.Description), input.DomainEntries())
	d.Period = voucher.PeriodFor(d.Date, fy)
	d.CreatedBy = actor(by)

	if err := s.ensureNumberFree(ctx, d); err != nil {
		return nil, telemetry.RecordError(span, err)
	}
	if err := s.save(ctx, d); err != nil {
		return nil, telemetry.RecordError(span, err)
	}

	span.SetAttributes(telemetry.AttrVoucherID.String(d.ID.String()))
	logger.Enrich(ctx, s.logger).Info("Voucher created",
		zap.String("voucher_id", d.ID.String()),
		zap.String("voucher_number", d.VoucherNumber),
		zap.String("period", d.Period),
	)
	return newResult(d), nil
}

// Update replaces the content of a draft. Content must be ready to save.
func (s *VoucherService) Update(ctx context.Context, id uuid.UUID, input VoucherInput) (*VoucherResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "Update",
		telemetry.AttrVoucherID.String(id.String()))
	defer span.End()

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := d.CheckVersion(input.Version); err != nil {
		return nil, err
	}
	if !d.Status.CanEdit() {
		return nil, shared.NewDomainError(shared.ErrInvalidState.Code, "Approved vouchers cannot be edited")
	}
	if err := s.ensureReady(span, input); err != nil {
		return nil, telemetry.RecordError(span, err)
	}

	fy, err := s.fiscalYear(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.Replace(strings.TrimSpace(input.VoucherNumber), input.Date, strings.TrimSpace(input.Description), input.DomainEntries()); err != nil {
		return nil, err
	}
	d.Period = voucher.PeriodFor(d.Date, fy)

	if err := s.ensureNumberFree(ctx, d); err != nil {
		return nil, telemetry.RecordError(span, err)
	}
	if err := s.save(ctx, d); err != nil {
		return nil, telemetry.RecordError(span, err)
	}
	return newResult(d), nil
}

// Get returns a document with its report
func (s *VoucherService) Get(ctx context.Context, id uuid.UUID) (*VoucherResult, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return newResult(d), nil
}

// List returns one page of documents
func (s *VoucherService) List(ctx context.Context, input ListInput) (shared.Paginated[voucher.Document], error) {
	filter := voucher.ListFilter{Filter: shared.DefaultFilter(), DateFrom: input.DateFrom, DateTo: input.DateTo}
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = min(input.PageSize, 100)
	}
	if input.OrderBy != "" {
		filter.OrderBy = input.OrderBy
	}
	if input.OrderDir != "" {
		filter.OrderDir = input.OrderDir
	}
	filter.Search = strings.TrimSpace(input.Search)
	if input.Status != "" {
		status := voucher.Status(input.Status)
		if !status.IsValid() {
			return shared.Paginated[voucher.Document]{}, shared.NewDomainError(shared.ErrInvalidInput.Code, "Unknown voucher status: "+input.Status)
		}
		filter.Status = status
	}

	docs, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[voucher.Document]{}, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[voucher.Document]{}, err
	}
	return shared.NewPaginated(docs, total, filter.Page, filter.PageSize), nil
}

// Delete removes a draft
func (s *VoucherService) Delete(ctx context.Context, id uuid.UUID) error {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := d.MarkDeleted(); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, d)
	logger.Enrich(ctx, s.logger).Info("Voucher deleted", zap.String("voucher_number", d.VoucherNumber))
	return nil
}

// Approve finalizes a complete, balanced draft
func (s *VoucherService) Approve(ctx context.Context, id uuid.UUID, by uuid.UUID) (*VoucherResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "Approve",
		telemetry.AttrVoucherID.String(id.String()),
		telemetry.AttrUserID.String(by.String()))
	defer span.End()

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := d.Approve(by); err != nil {
		return nil, telemetry.RecordError(span, err)
	}
	if err := s.save(ctx, d); err != nil {
		return nil, telemetry.RecordError(span, err)
	}

	span.SetAttributes(telemetry.AttrVoucherStatus.String(d.Status.String()))
	logger.Enrich(ctx, s.logger).Info("Voucher approved",
		zap.String("voucher_number", d.VoucherNumber),
		zap.String("approved_by", by.String()),
	)
	return newResult(d), nil
}

// Export renders the document as a workbook
func (s *VoucherService) Export(ctx context.Context, id uuid.UUID) (*ExportResult, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	company, err := s.companies.Get(ctx)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	data, err := s.exporter.Export(d, company)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    export.Filename(d),
		ContentType: export.ContentTypeXLSX,
		Data:        data,
	}, nil
}

func (s *VoucherService) ensureReady(span trace.Span, input VoucherInput) error {
	report := voucher.CheckBalance(input.Sheet())
	if report.ReadyToSave {
		return nil
	}
	codes := make([]string, len(report.Violations))
	for i, v := range report.Violations {
		codes[i] = string(v.Code)
	}
	telemetry.RecordViolations(span, codes)
	return shared.NewDomainError(voucher.ErrCodeNotReady, "Voucher is not complete or not balanced").WithDetails(report)
}

func (s *VoucherService) ensureNumberFree(ctx context.Context, d *voucher.Document) error {
	taken, err := s.repo.ExistsByNumber(ctx, d.Period, d.VoucherNumber, d.ID)
	if err != nil {
		return err
	}
	if taken {
		return shared.NewDomainError(shared.ErrAlreadyExists.Code, "Voucher number is already used in this period").
			WithDetails(map[string]string{"field": voucher.FieldVoucherNumber, "period": d.Period})
	}
	return nil
}

func (s *VoucherService) save(ctx context.Context, d *voucher.Document) error {
	if err := s.repo.Save(ctx, d); err != nil {
		return err
	}
	s.publish(ctx, d)
	return nil
}

func (s *VoucherService) publish(ctx context.Context, d *voucher.Document) {
	events := d.PullDomainEvents()
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to publish voucher events", zap.Error(err))
	}
}

// fiscalYear returns the company's fiscal year, or nil before setup or when
// its bounds are not configured
func (s *VoucherService) fiscalYear(ctx context.Context) (*voucher.FiscalYear, error) {
	company, err := s.companies.Get(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	fy := company.FiscalYear
	if fy.Start == nil || fy.End == nil {
		return nil, nil
	}
	return &voucher.FiscalYear{Start: *fy.Start, End: *fy.End, Label: fy.Label}, nil
}
