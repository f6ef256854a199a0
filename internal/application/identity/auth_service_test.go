package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/identity"
	"github.com/hesab/backend/internal/domain/onboarding"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/infrastructure/auth"
	"github.com/hesab/backend/internal/infrastructure/config"
	"github.com/hesab/backend/internal/infrastructure/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPassword = "secret123"

type authFixture struct {
	users     *MockUserRepository
	companies *MockCompanyRepository
	blacklist *auth.InMemoryTokenBlacklist
	logins    *recordedLogins
	jwt       *auth.JWTService
	service   *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:     new(MockUserRepository),
		companies: new(MockCompanyRepository),
		blacklist: auth.NewInMemoryTokenBlacklist(),
		logins:    &recordedLogins{},
		jwt: auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-for-auth-service-tests",
			Issuer:                 "hesab-test",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			MaxRefreshCount:        5,
		}),
	}
	f.service = NewAuthService(f.users, f.companies, f.jwt, f.blacklist, f.logins,
		AuthServiceConfig{MaxLoginAttempts: 3, LockDuration: 15 * time.Minute}, zap.NewNop())
	return f
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("admin", testPassword)
	require.NoError(t, err)
	return user
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	de, ok := shared.AsDomainError(err)
	require.True(t, ok, "expected a domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestAuthServiceConfigFrom(t *testing.T) {
	assert.Equal(t, DefaultAuthServiceConfig(), AuthServiceConfigFrom(config.AuthConfig{}))

	cfg := AuthServiceConfigFrom(config.AuthConfig{MaxFailedLogins: 2, LockDuration: time.Minute})
	assert.Equal(t, 2, cfg.MaxLoginAttempts)
	assert.Equal(t, time.Minute, cfg.LockDuration)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns tokens and onboarding state", func(t *testing.T) {
		f := newAuthFixture(t)
		user := newTestUser(t)
		f.users.On("FindByUsername", ctx, "admin").Return(user, nil)
		f.users.On("Update", ctx, user).Return(nil)
		f.companies.On("Exists", ctx).Return(true, nil)

		result, err := f.service.Login(ctx, LoginInput{Username: "admin", Password: testPassword, IP: "10.0.0.1"})
		require.NoError(t, err)

		assert.NotEmpty(t, result.Token.AccessToken)
		assert.Equal(t, "Bearer", result.Token.TokenType)
		assert.Equal(t, user.ID, result.User.ID)
		assert.Equal(t, onboarding.StateAgreementPending, result.State.State)
		assert.Equal(t, "agreement", result.State.Next)
		assert.Equal(t, "10.0.0.1", user.LastLoginIP)
		assert.Equal(t, []string{metrics.LoginSuccess}, f.logins.outcomes)

		claims, err := f.jwt.ValidateAccessToken(result.Token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
	})

	t.Run("unknown user is invalid credentials", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindByUsername", ctx, "ghost").Return(nil, shared.ErrNotFound)

		_, err := f.service.Login(ctx, LoginInput{Username: "ghost", Password: testPassword})
		requireCode(t, err, identity.ErrCodeInvalidCredentials)
		assert.Equal(t, []string{metrics.LoginFailure}, f.logins.outcomes)
	})

	t.Run("wrong password counts a failure", func(t *testing.T) {
		f := newAuthFixture(t)
		user := newTestUser(t)
		f.users.On("FindByUsername", ctx, "admin").Return(user, nil)
		f.users.On("Update", ctx, user).Return(nil)

		_, err := f.service.Login(ctx, LoginInput{Username: "admin", Password: "wrong-pass1"})
		requireCode(t, err, identity.ErrCodeInvalidCredentials)
		assert.Equal(t, 1, user.FailedLogins)
		f.users.AssertCalled(t, "Update", ctx, user)
	})

	t.Run("repeated failures lock the account", func(t *testing.T) {
		f := newAuthFixture(t)
		user := newTestUser(t)
		f.users.On("FindByUsername", ctx, "admin").Return(user, nil)
		f.users.On("Update", ctx, user).Return(nil)

		for range 2 {
			_, err := f.service.Login(ctx, LoginInput{Username: "admin", Password: "wrong-pass1"})
			requireCode(t, err, identity.ErrCodeInvalidCredentials)
		}
		_, err := f.service.Login(ctx, LoginInput{Username: "admin", Password: "wrong-pass1"})
		requireCode(t, err, identity.ErrCodeAccountLocked)
		assert.True(t, user.IsLocked())

		_, err = f.service.Login(ctx, LoginInput{Username: "admin", Password: testPassword})
		requireCode(t, err, identity.ErrCodeAccountLocked)
		assert.Equal(t, metrics.LoginLocked, f.logins.outcomes[len(f.logins.outcomes)-1])
	})
}

func loggedIn(t *testing.T, f *authFixture) (*identity.User, *auth.TokenPair) {
	t.Helper()
	user := newTestUser(t)
	pair, err := f.jwt.GenerateTokenPair(user.ID, user.Username)
	require.NoError(t, err)
	return user, pair
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a new pair and revokes the old refresh token", func(t *testing.T) {
		f := newAuthFixture(t)
		user, pair := loggedIn(t, f)
		f.users.On("FindByID", ctx, user.ID).Return(user, nil)

		result, err := f.service.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token.AccessToken)

		_, err = f.service.Refresh(ctx, pair.RefreshToken)
		requireCode(t, err, "TOKEN_REVOKED")
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		f := newAuthFixture(t)
		_, pair := loggedIn(t, f)

		_, err := f.service.Refresh(ctx, pair.AccessToken)
		requireCode(t, err, "TOKEN_INVALID")
	})

	t.Run("deleted user cannot refresh", func(t *testing.T) {
		f := newAuthFixture(t)
		user, pair := loggedIn(t, f)
		f.users.On("FindByID", ctx, user.ID).Return(nil, shared.ErrNotFound)

		_, err := f.service.Refresh(ctx, pair.RefreshToken)
		requireCode(t, err, "USER_NOT_FOUND")
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	_, pair := loggedIn(t, f)

	require.NoError(t, f.service.Logout(ctx, pair.AccessToken))

	claims, err := f.jwt.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	revoked, err := f.blacklist.IsBlacklisted(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	requireCode(t, f.service.Logout(ctx, "garbage"), "TOKEN_INVALID")
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	user := newTestUser(t)
	user.AcceptAgreement()
	f.users.On("FindByID", ctx, user.ID).Return(user, nil)
	f.companies.On("Exists", ctx).Return(true, nil)

	result, err := f.service.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", result.User.Username)
	assert.Equal(t, onboarding.StateReady, result.State.State)
	assert.Equal(t, "main", result.State.Next)

	missing := uuid.New()
	f.users.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)
	_, err = f.service.Me(ctx, missing)
	requireCode(t, err, "USER_NOT_FOUND")
	f.users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
