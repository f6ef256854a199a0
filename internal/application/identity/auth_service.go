package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/identity"
	"github.com/hesab/backend/internal/domain/onboarding"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/infrastructure/auth"
	"github.com/hesab/backend/internal/infrastructure/config"
	"github.com/hesab/backend/internal/infrastructure/logger"
	"github.com/hesab/backend/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// AuthServiceConfigFrom reads the auth section of the app config
func AuthServiceConfigFrom(cfg config.AuthConfig) AuthServiceConfig {
	out := DefaultAuthServiceConfig()
	if cfg.MaxFailedLogins > 0 {
		out.MaxLoginAttempts = cfg.MaxFailedLogins
	}
	if cfg.LockDuration > 0 {
		out.LockDuration = cfg.LockDuration
	}
	return out
}

// LoginRecorder counts login outcomes
type LoginRecorder interface {
	Login(outcome string)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo    identity.UserRepository
	companyRepo identity.CompanyRepository
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	recorder    LoginRecorder
	config      AuthServiceConfig
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service. recorder may be nil.
func NewAuthService(
	userRepo identity.UserRepository,
	companyRepo identity.CompanyRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	recorder LoginRecorder,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		jwtService:  jwtService,
		blacklist:   blacklist,
		recorder:    recorder,
		config:      config,
		logger:      logger,
	}
}

var errInvalidCredentials = shared.NewDomainError(identity.ErrCodeInvalidCredentials, "Invalid username or password")

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	log := logger.Enrich(ctx, s.logger).With(zap.String("username", input.Username))
	log.Info("Login attempt")

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		log.Warn("User not found during login")
		s.record(metrics.LoginFailure)
		return nil, errInvalidCredentials
	}

	if user.IsLocked() {
		log.Warn("Login attempt for locked account")
		s.record(metrics.LoginLocked)
		return nil, shared.NewDomainError(identity.ErrCodeAccountLocked, "Account is locked. Please try again later")
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Update(ctx, user); err != nil {
			log.Error("Failed to update user after login failure", zap.Error(err))
		}

		if locked {
			log.Warn("Account locked after too many failed attempts",
				zap.Int("attempts", s.config.MaxLoginAttempts))
			s.record(metrics.LoginLocked)
			return nil, shared.NewDomainError(identity.ErrCodeAccountLocked, "Too many failed login attempts. Account has been locked")
		}

		log.Warn("Invalid password attempt", zap.Int("failed_attempts", user.FailedLogins))
		s.record(metrics.LoginFailure)
		return nil, errInvalidCredentials
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		log.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	user.RecordLoginSuccess(input.IP)
	if err := s.userRepo.Update(ctx, user); err != nil {
		// the login still succeeds
		log.Error("Failed to update user after successful login", zap.Error(err))
	}

	state, err := s.stateFor(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(metrics.LoginSuccess)
	log.Info("User logged in successfully", zap.String("user_id", user.ID.String()))

	return &LoginResult{
		Token: tokenPair,
		User:  ToUserInfo(user),
		State: NewStateInfo(state),
	}, nil
}

// Refresh exchanges a refresh token for a new pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	log := logger.Enrich(ctx, s.logger)

	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		log.Warn("Refresh token validation failed", zap.Error(err))
		return nil, tokenError(err)
	}
	if s.revoked(ctx, claims.ID) {
		return nil, tokenError(auth.ErrTokenBlacklisted)
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		log.Warn("User not found during token refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	pair, old, err := s.jwtService.RefreshTokenPair(refreshToken)
	if err != nil {
		log.Warn("Token refresh failed", zap.Error(err))
		return nil, tokenError(err)
	}
	// a refresh token is single use
	if err := s.blacklist.AddToBlacklist(ctx, old.ID, old.GetRemainingTTL()); err != nil {
		log.Warn("Failed to revoke used refresh token", zap.Error(err))
	}

	log.Info("Token refreshed successfully", zap.String("user_id", userID.String()))
	return &RefreshResult{Token: pair}, nil
}

// Logout revokes the access token until it would have expired
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return tokenError(err)
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		logger.Enrich(ctx, s.logger).Error("Failed to blacklist token", zap.Error(err))
		return err
	}
	logger.Enrich(ctx, s.logger).Info("User logout", zap.String("user_id", claims.UserID))
	return nil
}

// Me returns the current user and their onboarding state
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*LoginResult, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}
	state, err := s.stateFor(ctx, user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: ToUserInfo(user), State: NewStateInfo(state)}, nil
}

func (s *AuthService) stateFor(ctx context.Context, user *identity.User) (onboarding.State, error) {
	setup, err := s.companyRepo.Exists(ctx)
	if err != nil {
		return "", err
	}
	return onboarding.Resolve(onboarding.Flags{
		Authenticated:     true,
		AgreementAccepted: user.HasAcceptedAgreement(),
		SetupCompleted:    setup,
	}), nil
}

func (s *AuthService) revoked(ctx context.Context, jti string) bool {
	blacklisted, err := s.blacklist.IsBlacklisted(ctx, jti)
	if err != nil {
		logger.Enrich(ctx, s.logger).Warn("Blacklist lookup failed", zap.Error(err))
		return false
	}
	return blacklisted
}

func (s *AuthService) record(outcome string) {
	if s.recorder != nil {
		s.recorder.Login(outcome)
	}
}

// tokenError maps JWT errors to domain errors
func tokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	default:
		return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
	}
}
