package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("load voucher: %w", NewDomainError("NOT_FOUND", "Voucher not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAlreadyExists))
}

func TestDomainError_WithDetails(t *testing.T) {
	base := NewDomainError("VOUCHER_NOT_READY", "Voucher is not ready to save")
	withDetails := base.WithDetails(map[string]int{"violations": 2})

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]int{"violations": 2}, withDetails.Details)

	de, ok := AsDomainError(fmt.Errorf("wrap: %w", withDetails))
	require.True(t, ok)
	assert.Equal(t, "VOUCHER_NOT_READY", de.Code)
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, 21, 2, 10)
	assert.Equal(t, 3, p.TotalPages)

	empty := NewPaginated[int](nil, 0, 1, 0)
	assert.Equal(t, 0, empty.TotalPages)
}

func TestFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, DefaultFilter().Offset())
	assert.Equal(t, 40, Filter{Page: 3, PageSize: 20}.Offset())
}
