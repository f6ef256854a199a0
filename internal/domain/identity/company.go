package identity

import (
	"slices"
	"strings"
	"time"

	"github.com/hesab/backend/internal/domain/shared"
)

// CompanyType is the legal form of the company
type CompanyType string

const (
	CompanyTypePrivate    CompanyType = "private"
	CompanyTypePublic     CompanyType = "public"
	CompanyTypeLimited    CompanyType = "limited"
	CompanyTypeIndustrial CompanyType = "industrial"
	CompanyTypeCommercial CompanyType = "commercial"
	CompanyTypeService    CompanyType = "service"
)

// IsValid checks if the company type is known
func (t CompanyType) IsValid() bool {
	switch t {
	case CompanyTypePrivate, CompanyTypePublic, CompanyTypeLimited,
		CompanyTypeIndustrial, CompanyTypeCommercial, CompanyTypeService:
		return true
	}
	return false
}

// Feature is an optional module enabled during setup
type Feature string

const (
	FeatureAccounting Feature = "accounting"
	FeatureInventory  Feature = "inventory"
	FeatureSales      Feature = "sales"
	FeaturePurchase   Feature = "purchase"
	FeaturePayroll    Feature = "payroll"
	FeatureAutomation Feature = "automation"
)

var knownFeatures = []Feature{
	FeatureAccounting, FeatureInventory, FeatureSales,
	FeaturePurchase, FeaturePayroll, FeatureAutomation,
}

// DefaultCurrency is used when setup does not name one
const DefaultCurrency = "IRR"

// FiscalYear is the company's accounting year
type FiscalYear struct {
	Start *time.Time
	End   *time.Time
	Label string
}

// Company is the business the installation keeps books for. Exactly one
// exists once setup has completed.
type Company struct {
	shared.BaseAggregateRoot
	Name       string
	Type       CompanyType
	FiscalYear FiscalYear
	Currency   string
	Address    string
	Phone      string
	Features   []Feature
}

// CompanyParams carries the setup form
type CompanyParams struct {
	Name       string
	Type       CompanyType
	FiscalYear FiscalYear
	Currency   string
	Address    string
	Phone      string
	Features   []Feature
}

// NewCompany validates params and creates the company
func NewCompany(p CompanyParams) (*Company, error) {
	name := strings.TrimSpace(p.Name)
	if len(name) < 2 || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name must be between 2 and 200 characters")
	}
	if !p.Type.IsValid() {
		return nil, shared.NewDomainError("INVALID_COMPANY_TYPE", "Unknown company type: "+string(p.Type))
	}
	if strings.TrimSpace(p.FiscalYear.Label) == "" {
		return nil, shared.NewDomainError("INVALID_FISCAL_YEAR", "Fiscal year label is required")
	}
	if p.FiscalYear.Start != nil && p.FiscalYear.End != nil && p.FiscalYear.Start.After(*p.FiscalYear.End) {
		return nil, shared.NewDomainError("INVALID_FISCAL_YEAR", "Fiscal year start must not be after its end")
	}
	if len(p.Phone) > 50 {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	features := make([]Feature, 0, len(p.Features))
	for _, f := range p.Features {
		if !slices.Contains(knownFeatures, f) {
			return nil, shared.NewDomainError("INVALID_FEATURE", "Unknown feature: "+string(f))
		}
		if !slices.Contains(features, f) {
			features = append(features, f)
		}
	}

	currency := strings.ToUpper(strings.TrimSpace(p.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}

	c := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              p.Type,
		FiscalYear: FiscalYear{
			Start: p.FiscalYear.Start,
			End:   p.FiscalYear.End,
			Label: strings.TrimSpace(p.FiscalYear.Label),
		},
		Currency: currency,
		Address:  strings.TrimSpace(p.Address),
		Phone:    strings.TrimSpace(p.Phone),
		Features: features,
	}
	c.AddDomainEvent(NewCompanyCreatedEvent(c))
	return c, nil
}

// HasFeature reports whether f was enabled at setup
func (c *Company) HasFeature(f Feature) bool {
	return slices.Contains(c.Features, f)
}
