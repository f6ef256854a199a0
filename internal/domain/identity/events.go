package identity

import (
	"time"

	"github.com/hesab/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeUser    = "User"
	AggregateTypeCompany = "Company"
)

// Identity domain event types
const (
	EventTypeUserCreated           = "UserCreated"
	EventTypeUserAgreementAccepted = "UserAgreementAccepted"
	EventTypeCompanyCreated        = "CompanyCreated"
)

// UserCreatedEvent is published when a user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID),
		Username:        user.Username,
	}
}

// UserAgreementAcceptedEvent is published when the user agreement is accepted
type UserAgreementAcceptedEvent struct {
	shared.BaseDomainEvent
	AcceptedAt time.Time `json:"accepted_at"`
}

// NewUserAgreementAcceptedEvent creates a new UserAgreementAcceptedEvent
func NewUserAgreementAcceptedEvent(user *User) *UserAgreementAcceptedEvent {
	return &UserAgreementAcceptedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserAgreementAccepted, AggregateTypeUser, user.ID),
		AcceptedAt:      *user.AgreementAcceptedAt,
	}
}

// CompanyCreatedEvent is published when setup creates the company
type CompanyCreatedEvent struct {
	shared.BaseDomainEvent
	Name        string      `json:"name"`
	CompanyType CompanyType `json:"company_type"`
}

// NewCompanyCreatedEvent creates a new CompanyCreatedEvent
func NewCompanyCreatedEvent(c *Company) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyCreated, AggregateTypeCompany, c.ID),
		Name:            c.Name,
		CompanyType:     c.Type,
	}
}
