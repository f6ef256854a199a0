package identity

import (
	"testing"
	"time"

	"github.com/hesab/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCompanyParams() CompanyParams {
	return CompanyParams{
		Name:       "Pars Trading",
		Type:       CompanyTypeCommercial,
		FiscalYear: FiscalYear{Label: "1403"},
		Features:   []Feature{FeatureAccounting, FeatureSales},
	}
}

func TestNewCompany(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		c, err := NewCompany(validCompanyParams())

		require.NoError(t, err)
		assert.Equal(t, "Pars Trading", c.Name)
		assert.Equal(t, DefaultCurrency, c.Currency)
		assert.True(t, c.HasFeature(FeatureSales))
		assert.False(t, c.HasFeature(FeaturePayroll))
		require.Len(t, c.GetDomainEvents(), 1)
	})

	t.Run("deduplicates features", func(t *testing.T) {
		p := validCompanyParams()
		p.Features = []Feature{FeatureAccounting, FeatureAccounting}
		c, err := NewCompany(p)

		require.NoError(t, err)
		assert.Equal(t, []Feature{FeatureAccounting}, c.Features)
	})

	start := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(*CompanyParams)
		code   string
	}{
		{"short name", func(p *CompanyParams) { p.Name = " A " }, "INVALID_COMPANY_NAME"},
		{"unknown type", func(p *CompanyParams) { p.Type = "cooperative" }, "INVALID_COMPANY_TYPE"},
		{"missing fiscal label", func(p *CompanyParams) { p.FiscalYear.Label = "  " }, "INVALID_FISCAL_YEAR"},
		{"inverted fiscal year", func(p *CompanyParams) {
			p.FiscalYear.Start = &end
			p.FiscalYear.End = &start
		}, "INVALID_FISCAL_YEAR"},
		{"unknown feature", func(p *CompanyParams) { p.Features = []Feature{"crm"} }, "INVALID_FEATURE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validCompanyParams()
			tt.mutate(&p)
			_, err := NewCompany(p)

			de, ok := shared.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, de.Code)
		})
	}
}
