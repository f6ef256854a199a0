package identity

import (
	"context"
	"errors"

	"github.com/hesab/backend/internal/domain/identity"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// SetupService runs the one-time company and admin setup
type SetupService struct {
	setupRepo   identity.SetupRepository
	companyRepo identity.CompanyRepository
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewSetupService creates a new setup service
func NewSetupService(
	setupRepo identity.SetupRepository,
	companyRepo identity.CompanyRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *SetupService {
	return &SetupService{
		setupRepo:   setupRepo,
		companyRepo: companyRepo,
		events:      events,
		logger:      logger,
	}
}

// Setup creates the company and the admin user together. It succeeds once.
func (s *SetupService) Setup(ctx context.Context, input SetupInput) (*SetupResult, error) {
	log := logger.Enrich(ctx, s.logger)

	exists, err := s.companyRepo.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code, "Setup has already been completed")
	}

	features := make([]identity.Feature, len(input.Company.Features))
	for i, f := range input.Company.Features {
		features[i] = identity.Feature(f)
	}
	company, err := identity.NewCompany(identity.CompanyParams{
		Name: input.Company.Name,
		Type: identity.CompanyType(input.Company.Type),
		FiscalYear: identity.FiscalYear{
			Start: input.Company.FiscalYearFrom,
			End:   input.Company.FiscalYearTo,
			Label: input.Company.FiscalYear,
		},
		Currency: input.Company.Currency,
		Address:  input.Company.Address,
		Phone:    input.Company.Phone,
		Features: features,
	})
	if err != nil {
		return nil, err
	}

	admin, err := identity.NewUser(input.Admin.Username, input.Admin.Password)
	if err != nil {
		return nil, err
	}
	if input.Admin.DisplayName != "" {
		if err := admin.SetDisplayName(input.Admin.DisplayName); err != nil {
			return nil, err
		}
	}
	if input.Admin.Email != "" {
		if err := admin.SetEmail(input.Admin.Email); err != nil {
			return nil, err
		}
	}

	if err := s.setupRepo.Complete(ctx, company, admin); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError(shared.ErrAlreadyExists.Code, "Setup has already been completed")
		}
		log.Error("Failed to complete setup", zap.Error(err))
		return nil, err
	}

	s.publish(ctx, append(company.PullDomainEvents(), admin.PullDomainEvents()...))

	log.Info("Setup completed",
		zap.String("company_id", company.ID.String()),
		zap.String("company_name", company.Name),
		zap.String("admin", admin.Username),
	)
	return &SetupResult{Company: ToCompanyInfo(company), User: ToUserInfo(admin)}, nil
}

// Status reports whether setup has completed
func (s *SetupService) Status(ctx context.Context) (*SetupStatus, error) {
	exists, err := s.companyRepo.Exists(ctx)
	if err != nil {
		return nil, err
	}
	return &SetupStatus{Completed: exists}, nil
}

// Company returns the configured company
func (s *SetupService) Company(ctx context.Context) (*CompanyInfo, error) {
	company, err := s.companyRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	info := ToCompanyInfo(company)
	return &info, nil
}

func (s *SetupService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		logger.Enrich(ctx, s.logger).Warn("Failed to publish setup events", zap.Error(err))
	}
}
