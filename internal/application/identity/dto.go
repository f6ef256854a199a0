package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/identity"
	"github.com/hesab/backend/internal/domain/onboarding"
	"github.com/hesab/backend/internal/infrastructure/auth"
)

// SetupInput is the first-run form: the company and its admin user
type SetupInput struct {
	Company CompanyInput
	Admin   AdminInput
}

// CompanyInput contains the company part of setup
type CompanyInput struct {
	Name           string
	Type           string
	FiscalYearFrom *time.Time
	FiscalYearTo   *time.Time
	FiscalYear     string
	Currency       string
	Address        string
	Phone          string
	Features       []string
}

// AdminInput contains the admin part of setup
type AdminInput struct {
	Username    string
	Password    string
	DisplayName string
	Email       string
}

// SetupResult is returned by a successful setup
type SetupResult struct {
	Company CompanyInfo
	User    UserInfo
}

// SetupStatus reports whether setup has run
type SetupStatus struct {
	Completed bool
}

// CompanyInfo is the public view of the company
type CompanyInfo struct {
	ID             uuid.UUID
	Name           string
	Type           string
	FiscalYear     string
	FiscalYearFrom *time.Time
	FiscalYearTo   *time.Time
	Currency       string
	Address        string
	Phone          string
	Features       []string
	CreatedAt      time.Time
}

// UserInfo contains basic user information
type UserInfo struct {
	ID                  uuid.UUID
	Username            string
	DisplayName         string
	Email               string
	AgreementAcceptedAt *time.Time
	LastLoginAt         *time.Time
}

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the tokens, the user and where the client goes next
type LoginResult struct {
	Token *auth.TokenPair
	User  UserInfo
	State StateInfo
}

// RefreshResult contains a new token pair
type RefreshResult struct {
	Token *auth.TokenPair
}

// StateInfo is an onboarding state with the step that follows it
type StateInfo struct {
	State onboarding.State
	Next  string
}

// NewStateInfo pairs a state with its next step
func NewStateInfo(s onboarding.State) StateInfo {
	return StateInfo{State: s, Next: s.Next()}
}

// ToUserInfo converts a domain user
func ToUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:                  u.ID,
		Username:            u.Username,
		DisplayName:         u.GetDisplayNameOrUsername(),
		Email:               u.Email,
		AgreementAcceptedAt: u.AgreementAcceptedAt,
		LastLoginAt:         u.LastLoginAt,
	}
}

// ToCompanyInfo converts a domain company
func ToCompanyInfo(c *identity.Company) CompanyInfo {
	features := make([]string, len(c.Features))
	for i, f := range c.Features {
		features[i] = string(f)
	}
	return CompanyInfo{
		ID:             c.ID,
		Name:           c.Name,
		Type:           string(c.Type),
		FiscalYear:     c.FiscalYear.Label,
		FiscalYearFrom: c.FiscalYear.Start,
		FiscalYearTo:   c.FiscalYear.End,
		Currency:       c.Currency,
		Address:        c.Address,
		Phone:          c.Phone,
		Features:       features,
		CreatedAt:      c.CreatedAt,
	}
}
