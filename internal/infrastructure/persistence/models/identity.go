package models

import (
	"strings"
	"time"

	"github.com/hesab/backend/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Username            string `gorm:"type:varchar(100);not null;uniqueIndex"`
	DisplayName         string `gorm:"type:varchar(200);not null;default:''"`
	Email               string `gorm:"type:varchar(200);not null;default:''"`
	PasswordHash        string `gorm:"type:varchar(255);not null"`
	AgreementAcceptedAt *time.Time
	LastLoginAt         *time.Time
	LastLoginIP         string `gorm:"type:varchar(45);not null;default:''"`
	FailedLogins        int    `gorm:"not null;default:0"`
	LockedUntil         *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot:   m.ToDomainAggregateRoot(),
		Username:            m.Username,
		DisplayName:         m.DisplayName,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		AgreementAcceptedAt: m.AgreementAcceptedAt,
		LastLoginAt:         m.LastLoginAt,
		LastLoginIP:         m.LastLoginIP,
		FailedLogins:        m.FailedLogins,
		LockedUntil:         m.LockedUntil,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.DisplayName = u.DisplayName
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.AgreementAcceptedAt = utcPtr(u.AgreementAcceptedAt)
	m.LastLoginAt = utcPtr(u.LastLoginAt)
	m.LastLoginIP = u.LastLoginIP
	m.FailedLogins = u.FailedLogins
	m.LockedUntil = utcPtr(u.LockedUntil)
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// CompanyModel is the persistence model for the Company domain entity.
// Features are stored as a comma separated list.
type CompanyModel struct {
	AggregateModel
	Name            string               `gorm:"type:varchar(200);not null"`
	CompanyType     identity.CompanyType `gorm:"column:company_type;type:varchar(20);not null"`
	FiscalYearStart *time.Time
	FiscalYearEnd   *time.Time
	FiscalYearLabel string `gorm:"type:varchar(50);not null"`
	Currency        string `gorm:"type:varchar(10);not null;default:'IRR'"`
	Address         string `gorm:"type:text;not null;default:''"`
	Phone           string `gorm:"type:varchar(50);not null;default:''"`
	Features        string `gorm:"type:text;not null;default:''"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company entity.
func (m *CompanyModel) ToDomain() *identity.Company {
	features := make([]identity.Feature, 0)
	for _, f := range strings.Split(m.Features, ",") {
		if f = strings.TrimSpace(f); f != "" {
			features = append(features, identity.Feature(f))
		}
	}
	return &identity.Company{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Type:              m.CompanyType,
		FiscalYear: identity.FiscalYear{
			Start: m.FiscalYearStart,
			End:   m.FiscalYearEnd,
			Label: m.FiscalYearLabel,
		},
		Currency: m.Currency,
		Address:  m.Address,
		Phone:    m.Phone,
		Features: features,
	}
}

// FromDomain populates the persistence model from a domain Company entity.
func (m *CompanyModel) FromDomain(c *identity.Company) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.CompanyType = c.Type
	m.FiscalYearStart = utcPtr(c.FiscalYear.Start)
	m.FiscalYearEnd = utcPtr(c.FiscalYear.End)
	m.FiscalYearLabel = c.FiscalYear.Label
	m.Currency = c.Currency
	m.Address = c.Address
	m.Phone = c.Phone
	names := make([]string, len(c.Features))
	for i, f := range c.Features {
		names[i] = string(f)
	}
	m.Features = strings.Join(names, ",")
}

// CompanyModelFromDomain creates a new persistence model from a domain Company entity.
func CompanyModelFromDomain(c *identity.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}
