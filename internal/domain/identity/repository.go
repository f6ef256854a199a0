package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// Update saves user, failing with CONCURRENCY_CONFLICT on a stale version
	Update(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByUsername looks the username up case-insensitively
	FindByUsername(ctx context.Context, username string) (*User, error)
	Count(ctx context.Context) (int64, error)
}

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	Create(ctx context.Context, company *Company) error
	// Get returns the installation's company or NOT_FOUND before setup
	Get(ctx context.Context) (*Company, error)
	Exists(ctx context.Context) (bool, error)
}

// SetupRepository stores the outcome of first-run setup
type SetupRepository interface {
	// Complete creates company and admin in one transaction. It fails with
	// ALREADY_EXISTS when a company is already stored.
	Complete(ctx context.Context, company *Company, admin *User) error
}
