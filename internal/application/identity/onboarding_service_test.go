package identity

import (
	"context"
	"testing"

	"github.com/hesab/backend/internal/domain/identity"
	"github.com/hesab/backend/internal/domain/onboarding"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOnboardingService_State(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepository)
	companies := new(MockCompanyRepository)
	user := newTestUser(t)
	users.On("FindByID", ctx, user.ID).Return(user, nil)
	companies.On("Exists", ctx).Return(true, nil)

	svc := NewOnboardingService(users, companies, nil, zap.NewNop())
	state, err := svc.State(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, onboarding.StateAgreementPending, state.State)
	assert.Equal(t, "agreement", state.Next)
}

func TestOnboardingService_AcceptAgreement(t *testing.T) {
	ctx := context.Background()

	t.Run("persists acceptance and publishes the event", func(t *testing.T) {
		users := new(MockUserRepository)
		companies := new(MockCompanyRepository)
		events := new(MockEventPublisher)
		user := newTestUser(t)
		user.ClearDomainEvents()
		users.On("FindByID", ctx, user.ID).Return(user, nil)
		users.On("Update", ctx, user).Return(nil)
		companies.On("Exists", ctx).Return(true, nil)
		events.On("Publish", ctx, mock.Anything).Return(nil)

		svc := NewOnboardingService(users, companies, events, zap.NewNop())
		state, err := svc.AcceptAgreement(ctx, user.ID)
		require.NoError(t, err)

		assert.Equal(t, onboarding.StateReady, state.State)
		assert.True(t, user.HasAcceptedAgreement())
		published := events.Calls[0].Arguments.Get(1).([]shared.DomainEvent)
		require.Len(t, published, 1)
		assert.Equal(t, identity.EventTypeUserAgreementAccepted, published[0].EventType())
	})

	t.Run("accepting again does not write", func(t *testing.T) {
		users := new(MockUserRepository)
		companies := new(MockCompanyRepository)
		user := newTestUser(t)
		user.AcceptAgreement()
		users.On("FindByID", ctx, user.ID).Return(user, nil)
		companies.On("Exists", ctx).Return(false, nil)

		svc := NewOnboardingService(users, companies, nil, zap.NewNop())
		state, err := svc.AcceptAgreement(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, onboarding.StateSetupPending, state.State)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}
