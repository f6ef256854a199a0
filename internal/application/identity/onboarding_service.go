package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/identity"
	"github.com/hesab/backend/internal/domain/onboarding"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// OnboardingService derives and advances a user's first-run state
type OnboardingService struct {
	userRepo    identity.UserRepository
	companyRepo identity.CompanyRepository
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewOnboardingService creates a new onboarding service
func NewOnboardingService(
	userRepo identity.UserRepository,
	companyRepo identity.CompanyRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *OnboardingService {
	return &OnboardingService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		events:      events,
		logger:      logger,
	}
}

// Session loads the persisted flags of an authenticated user
func (s *OnboardingService) Session(ctx context.Context, userID uuid.UUID) (*onboarding.Session, *identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	setup, err := s.companyRepo.Exists(ctx)
	if err != nil {
		return nil, nil, err
	}
	return onboarding.NewSession(onboarding.Flags{
		Authenticated:     true,
		AgreementAccepted: user.HasAcceptedAgreement(),
		SetupCompleted:    setup,
	}), user, nil
}

// State returns the user's current state and next step
func (s *OnboardingService) State(ctx context.Context, userID uuid.UUID) (StateInfo, error) {
	session, _, err := s.Session(ctx, userID)
	if err != nil {
		return StateInfo{}, err
	}
	return NewStateInfo(session.State()), nil
}

// AcceptAgreement records the user's acceptance. Accepting twice is harmless.
func (s *OnboardingService) AcceptAgreement(ctx context.Context, userID uuid.UUID) (StateInfo, error) {
	session, user, err := s.Session(ctx, userID)
	if err != nil {
		return StateInfo{}, err
	}
	if user.HasAcceptedAgreement() {
		return NewStateInfo(session.State()), nil
	}
	if err := session.AcceptAgreement(); err != nil {
		return StateInfo{}, err
	}

	user.AcceptAgreement()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return StateInfo{}, err
	}
	events := user.PullDomainEvents()
	if s.events != nil {
		if err := s.events.Publish(ctx, events...); err != nil {
			logger.Enrich(ctx, s.logger).Warn("Failed to publish agreement event", zap.Error(err))
		}
	}

	logger.Enrich(ctx, s.logger).Info("User agreement accepted", zap.String("user_id", userID.String()))
	return NewStateInfo(session.State()), nil
}
