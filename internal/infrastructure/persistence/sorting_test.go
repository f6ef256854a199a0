package persistence

import (
	"testing"

	"github.com/hesab/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestSortSpec_Column(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"voucher_number", "voucher_number"},
		{" status ", "status"},
		{"", "date"},
		{"password_hash", "date"},
		{"date; DROP TABLE vouchers", "date"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, voucherSort.column(tt.input))
		})
	}
}

func TestSortSpec_Apply(t *testing.T) {
	db := newTestDB(t)

	orderSQL := func(field, dir string) string {
		var rows []models.VoucherModel
		stmt := voucherSort.apply(db.Session(&gorm.Session{DryRun: true}).Model(&models.VoucherModel{}), field, dir).
			Find(&rows).Statement
		return stmt.SQL.String()
	}

	assert.Contains(t, orderSQL("", ""), "ORDER BY `date` DESC,`voucher_number` DESC")
	assert.Contains(t, orderSQL("created_at", "ASC"), "ORDER BY `created_at`,`voucher_number`")
	assert.Contains(t, orderSQL("voucher_number", "asc"), "ORDER BY `voucher_number`")
	assert.NotContains(t, orderSQL("voucher_number", "asc"), "`voucher_number`,`voucher_number`")
	assert.Contains(t, orderSQL("date", "ASC; DROP TABLE vouchers"), "ORDER BY `date` DESC")
}
