package ledger

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	t.Run("creates account with trimmed fields", func(t *testing.T) {
		a, err := NewAccount(" 1102 ", "  Cash ", AccountTypeAsset)

		require.NoError(t, err)
		assert.Equal(t, "1102", a.Code)
		assert.Equal(t, "Cash", a.Name)
		assert.Equal(t, AccountTypeAsset, a.Type)
		assert.NotEqual(t, uuid.Nil, a.ID)
	})

	t.Run("code is optional", func(t *testing.T) {
		a, err := NewAccount("", "Bank", AccountTypeAsset)
		require.NoError(t, err)
		assert.Empty(t, a.Code)
	})

	tests := []struct {
		name string
		acct string
		typ  AccountType
		code string
	}{
		{"empty name", "   ", AccountTypeAsset, "INVALID_ACCOUNT_NAME"},
		{"long name", strings.Repeat("x", 256), AccountTypeAsset, "INVALID_ACCOUNT_NAME"},
		{"unknown type", "Cash", "revenue", "INVALID_ACCOUNT_TYPE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAccount("", tt.acct, tt.typ)
			de, ok := shared.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestNewTransaction(t *testing.T) {
	accountID := uuid.New()

	t.Run("zero date defaults to now", func(t *testing.T) {
		tx, err := NewTransaction(accountID, time.Time{}, "", decimal.RequireFromString("-12.5"))

		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), tx.Date, time.Second)
		assert.True(t, tx.Amount.Equal(decimal.RequireFromString("-12.5")))
	})

	t.Run("missing account", func(t *testing.T) {
		_, err := NewTransaction(uuid.Nil, time.Now(), "", decimal.NewFromInt(1))
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, ErrCodeAccountNotFound, de.Code)
	})

	t.Run("rejects more than four decimal places", func(t *testing.T) {
		_, err := NewTransaction(accountID, time.Now(), "", decimal.RequireFromString("1.00001"))
		assert.ErrorContains(t, err, "4 decimal places")
	})

	t.Run("rejects amounts beyond the column range", func(t *testing.T) {
		_, err := NewTransaction(accountID, time.Now(), "", decimal.New(1, 14))
		assert.ErrorContains(t, err, "out of range")
	})
}

func txAt(date time.Time, created time.Time, amount string) Transaction {
	return Transaction{
		BaseEntity: shared.BaseEntity{ID: uuid.New(), CreatedAt: created},
		Date:       date,
		Amount:     decimal.RequireFromString(amount),
	}
}

func TestSortNewestFirst(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	older := txAt(day, day, "1")
	sameDayLater := txAt(day, day.Add(time.Hour), "2")
	newest := txAt(day.AddDate(0, 0, 1), day, "3")

	txs := []Transaction{older, newest, sameDayLater}
	SortNewestFirst(txs)

	assert.Equal(t, []uuid.UUID{newest.ID, sameDayLater.ID, older.ID},
		[]uuid.UUID{txs[0].ID, txs[1].ID, txs[2].ID})
}

func TestTotal(t *testing.T) {
	txs := []Transaction{
		txAt(time.Now(), time.Now(), "0.1"),
		txAt(time.Now(), time.Now(), "0.2"),
		txAt(time.Now(), time.Now(), "-0.3"),
	}
	assert.True(t, Total(txs).IsZero())
	assert.True(t, Total(nil).IsZero())
}

func TestBuildChart(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	since := ChartSince(now, 30)
	txs := []Transaction{
		txAt(time.Date(2024, 6, 29, 9, 0, 0, 0, time.UTC), now, "10"),
		txAt(time.Date(2024, 6, 29, 18, 0, 0, 0, time.UTC), now, "-2.5"),
		txAt(time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC), now, "4"),
		txAt(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), now, "100"),
	}

	points := BuildChart(txs, since, now)

	require.Len(t, points, 2)
	assert.Equal(t, "2024-06-02", points[0].Date)
	assert.True(t, points[0].Value.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, "2024-06-29", points[1].Date)
	assert.True(t, points[1].Value.Equal(decimal.RequireFromString("7.5")))
}

func TestClampChartDays(t *testing.T) {
	assert.Equal(t, DefaultChartDays, ClampChartDays(0))
	assert.Equal(t, 7, ClampChartDays(7))
	assert.Equal(t, MaxChartDays, ClampChartDays(1000))
}
