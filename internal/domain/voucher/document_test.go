package voucher

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balancedDocument() *Document {
	return NewDocument("VCH-1403-00001", time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC), "Cash sale",
		[]Entry{validEntry("100", "0"), validEntry("0", "100")})
}

func TestNewDraft(t *testing.T) {
	doc := NewDraft()

	assert.Equal(t, StatusDraft, doc.Status)
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, Entry{}, doc.Entries[0])
	assert.False(t, doc.Date.IsZero())
	assert.Equal(t, 0, doc.Date.Hour())
	assert.False(t, doc.Check().ReadyToSave)
}

func TestNewDocument(t *testing.T) {
	entries := []Entry{validEntry("100", "0"), validEntry("0", "100")}
	doc := NewDocument("VCH-1", time.Now(), "memo", entries)

	assert.Equal(t, StatusDraft, doc.Status)
	assert.Equal(t, 1, doc.Version)
	assert.NotEqual(t, uuid.Nil, doc.ID)

	entries[0].AccountCode = "changed"
	assert.Equal(t, "1102", doc.Entries[0].AccountCode, "entries must be copied")

	events := doc.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeVoucherCreated, events[0].EventType())
	assert.Equal(t, doc.ID, events[0].AggregateID())
}

func TestDocument_Entries(t *testing.T) {
	t.Run("add then remove an entry", func(t *testing.T) {
		doc := balancedDocument()
		require.NoError(t, doc.AddEntry(validEntry("5", "0")))
		assert.Len(t, doc.Entries, 3)

		require.NoError(t, doc.RemoveEntry(2))
		assert.Len(t, doc.Entries, 2)
		assert.True(t, doc.Check().ReadyToSave)
	})

	t.Run("removing an unknown index fails", func(t *testing.T) {
		doc := balancedDocument()
		err := doc.RemoveEntry(5)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestDocument_Approve(t *testing.T) {
	approver := uuid.New()

	t.Run("balanced draft is approved", func(t *testing.T) {
		doc := balancedDocument()
		doc.ClearDomainEvents()

		require.NoError(t, doc.Approve(approver))
		assert.Equal(t, StatusApproved, doc.Status)
		require.NotNil(t, doc.ApprovedBy)
		assert.Equal(t, approver, *doc.ApprovedBy)
		assert.NotNil(t, doc.ApprovedAt)

		events := doc.GetDomainEvents()
		require.Len(t, events, 1)
		approved, ok := events[0].(*VoucherApprovedEvent)
		require.True(t, ok)
		assert.True(t, approved.Total.Equal(d("100")))
	})

	t.Run("unbalanced draft cannot be approved", func(t *testing.T) {
		doc := NewDocument("VCH-2", time.Now(), "memo", []Entry{validEntry("100", "0"), validEntry("0", "50")})

		err := doc.Approve(approver)
		require.Error(t, err)
		de, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, ErrCodeNotBalanced, de.Code)
		report, ok := de.Details.(BalanceReport)
		require.True(t, ok)
		assert.True(t, report.HasViolation(CodeUnbalanced))
		assert.Equal(t, StatusDraft, doc.Status)
	})

	t.Run("balanced but incomplete draft cannot be approved", func(t *testing.T) {
		doc := balancedDocument()
		doc.Description = ""
		assert.Error(t, doc.Approve(approver))
	})

	t.Run("approving twice is an invalid state", func(t *testing.T) {
		doc := balancedDocument()
		require.NoError(t, doc.Approve(approver))
		assert.ErrorIs(t, doc.Approve(approver), shared.ErrInvalidState)
	})

	t.Run("approver is required", func(t *testing.T) {
		de, ok := shared.AsDomainError(balancedDocument().Approve(uuid.Nil))
		require.True(t, ok)
		assert.Equal(t, ErrCodeInvalidUser, de.Code)
	})

	t.Run("approved vouchers are read-only", func(t *testing.T) {
		doc := balancedDocument()
		require.NoError(t, doc.Approve(approver))

		assert.ErrorIs(t, doc.AddEntry(validEntry("1", "0")), shared.ErrInvalidState)
		assert.ErrorIs(t, doc.RemoveEntry(0), shared.ErrInvalidState)
		assert.ErrorIs(t, doc.Replace("X", time.Now(), "x", nil), shared.ErrInvalidState)
		assert.ErrorIs(t, doc.MarkDeleted(), shared.ErrInvalidState)

		de, ok := shared.AsDomainError(doc.AddEntry(validEntry("1", "0")))
		require.True(t, ok)
		assert.Equal(t, shared.ErrInvalidState.Code, de.Code)
	})
}

func TestDocument_Replace(t *testing.T) {
	doc := balancedDocument()
	doc.ClearDomainEvents()

	require.NoError(t, doc.Replace("VCH-9", time.Now(), "updated", []Entry{validEntry("7", "0"), validEntry("0", "7")}))
	assert.Equal(t, "VCH-9", doc.VoucherNumber)
	assert.Equal(t, "updated", doc.Description)
	require.Len(t, doc.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeVoucherUpdated, doc.GetDomainEvents()[0].EventType())
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusDraft.IsValid())
	assert.True(t, StatusApproved.IsValid())
	assert.False(t, Status("posted").IsValid())
	assert.True(t, StatusDraft.CanApprove())
	assert.False(t, StatusApproved.CanEdit())
	assert.Equal(t, "approved", StatusApproved.String())
}

func TestPeriodFor(t *testing.T) {
	fy := &FiscalYear{
		Start: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		Label: "1403",
	}

	assert.Equal(t, "1403", PeriodFor(time.Date(2024, 3, 20, 15, 0, 0, 0, time.UTC), fy))
	assert.Equal(t, "1403", PeriodFor(time.Date(2025, 3, 20, 23, 0, 0, 0, time.UTC), fy))
	assert.Equal(t, "2025", PeriodFor(time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC), fy))
	assert.Equal(t, "2023", PeriodFor(time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), nil))
	assert.Equal(t, "VCH-1403-00012", FormatNumber("1403", 12))
}
