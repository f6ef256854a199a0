package persistence

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sortSpec whitelists the columns a list query may be ordered by. Anything
// else falls back to the default column, so user input never reaches SQL.
type sortSpec struct {
	columns  map[string]bool
	fallback string
	// tiebreak is appended when it differs from the chosen column
	tiebreak string
}

var voucherSort = sortSpec{
	columns: map[string]bool{
		"date":           true,
		"voucher_number": true,
		"status":         true,
		"created_at":     true,
		"updated_at":     true,
	},
	fallback: "date",
	tiebreak: "voucher_number",
}

func (s sortSpec) column(field string) string {
	field = strings.TrimSpace(field)
	if s.columns[field] {
		return field
	}
	return s.fallback
}

// apply orders db by field in direction dir. Only "asc" (any case) sorts
// ascending; the default is newest first.
func (s sortSpec) apply(db *gorm.DB, field, dir string) *gorm.DB {
	desc := !strings.EqualFold(strings.TrimSpace(dir), "asc")
	col := s.column(field)

	db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: desc})
	if s.tiebreak != "" && s.tiebreak != col {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: s.tiebreak}, Desc: desc})
	}
	return db
}
