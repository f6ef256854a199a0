package persistence

import (
	"errors"
	"strings"

	"github.com/hesab/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps driver errors onto domain errors. The dialectors
// translate constraint violations when gorm.Config.TranslateError is set; the
// message checks cover connections opened without it.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "UNIQUE constraint failed"),
		strings.Contains(err.Error(), "duplicate key value"):
		return shared.ErrAlreadyExists
	}
	return err
}

func conflict(entity string) error {
	return shared.ErrConcurrencyConflict.WithDetails(map[string]string{"entity": entity})
}
