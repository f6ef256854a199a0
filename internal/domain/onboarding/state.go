// Package onboarding models the first-run flow a user goes through before
// reaching the application: login, the user agreement, then company setup.
package onboarding

import (
	"fmt"

	"github.com/hesab/backend/internal/domain/shared"
)

// State is a step of the onboarding flow
type State string

const (
	StateOnboarding       State = "ONBOARDING" // not authenticated
	StateAgreementPending State = "AGREEMENT_PENDING"
	StateSetupPending     State = "SETUP_PENDING"
	StateReady            State = "READY"
)

// IsValid checks if the state is known
func (s State) IsValid() bool {
	switch s {
	case StateOnboarding, StateAgreementPending, StateSetupPending, StateReady:
		return true
	}
	return false
}

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// Next returns the screen the client should show for the state
func (s State) Next() string {
	switch s {
	case StateAgreementPending:
		return "agreement"
	case StateSetupPending:
		return "setup"
	case StateReady:
		return "main"
	default:
		return "login"
	}
}

// Flags are the persisted facts the state is derived from
type Flags struct {
	Authenticated     bool
	AgreementAccepted bool
	SetupCompleted    bool
}

// Resolve returns the first unmet step of the flow
func Resolve(f Flags) State {
	switch {
	case !f.Authenticated:
		return StateOnboarding
	case !f.AgreementAccepted:
		return StateAgreementPending
	case !f.SetupCompleted:
		return StateSetupPending
	default:
		return StateReady
	}
}

// Session tracks one user's progress through the flow. It is created per
// request from persisted flags and passed explicitly to whatever needs it.
type Session struct {
	flags Flags
}

// NewSession creates a session positioned at the state flags resolve to
func NewSession(f Flags) *Session {
	return &Session{flags: f}
}

// State returns the current state
func (s *Session) State() State {
	return Resolve(s.flags)
}

// Flags returns a copy of the underlying flags
func (s *Session) Flags() Flags {
	return s.flags
}

// Authenticate records a successful login
func (s *Session) Authenticate() {
	s.flags.Authenticated = true
}

// AcceptAgreement records acceptance of the user agreement
func (s *Session) AcceptAgreement() error {
	if !s.flags.Authenticated {
		return invalidTransition(s.State(), StateAgreementPending)
	}
	s.flags.AgreementAccepted = true
	return nil
}

// CompleteSetup records that the company setup is done.
// The agreement must be accepted first.
func (s *Session) CompleteSetup() error {
	if !s.flags.Authenticated || !s.flags.AgreementAccepted {
		return invalidTransition(s.State(), StateSetupPending)
	}
	s.flags.SetupCompleted = true
	return nil
}

// Logout returns the session to ONBOARDING. Persisted facts stay.
func (s *Session) Logout() {
	s.flags.Authenticated = false
}

func invalidTransition(from, step State) error {
	return shared.NewDomainError("INVALID_STATE",
		fmt.Sprintf("Cannot complete %s step from %s state", step.Next(), from))
}
