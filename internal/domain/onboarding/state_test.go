package onboarding

import (
	"testing"

	"github.com/hesab/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  State
	}{
		{"anonymous", Flags{}, StateOnboarding},
		{"anonymous with persisted facts", Flags{AgreementAccepted: true, SetupCompleted: true}, StateOnboarding},
		{"logged in", Flags{Authenticated: true}, StateAgreementPending},
		{"setup done but agreement pending", Flags{Authenticated: true, SetupCompleted: true}, StateAgreementPending},
		{"agreement accepted", Flags{Authenticated: true, AgreementAccepted: true}, StateSetupPending},
		{"all done", Flags{Authenticated: true, AgreementAccepted: true, SetupCompleted: true}, StateReady},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.flags))
		})
	}
}

func TestState_Next(t *testing.T) {
	assert.Equal(t, "login", StateOnboarding.Next())
	assert.Equal(t, "agreement", StateAgreementPending.Next())
	assert.Equal(t, "setup", StateSetupPending.Next())
	assert.Equal(t, "main", StateReady.Next())
	assert.False(t, State("LOADING").IsValid())
}

func TestSession_FullFlow(t *testing.T) {
	s := NewSession(Flags{})
	assert.Equal(t, StateOnboarding, s.State())

	s.Authenticate()
	assert.Equal(t, StateAgreementPending, s.State())

	require.NoError(t, s.AcceptAgreement())
	assert.Equal(t, StateSetupPending, s.State())

	require.NoError(t, s.CompleteSetup())
	assert.Equal(t, StateReady, s.State())

	s.Logout()
	assert.Equal(t, StateOnboarding, s.State())
	assert.True(t, s.Flags().SetupCompleted)
}

func TestSession_IllegalTransitions(t *testing.T) {
	t.Run("agreement requires login", func(t *testing.T) {
		err := NewSession(Flags{}).AcceptAgreement()
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("setup requires the agreement", func(t *testing.T) {
		s := NewSession(Flags{Authenticated: true})
		assert.ErrorIs(t, s.CompleteSetup(), shared.ErrInvalidState)
		assert.Equal(t, StateAgreementPending, s.State())
	})
}
