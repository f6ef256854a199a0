package event

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hesab/backend/internal/domain/voucher"
	"github.com/hesab/backend/internal/infrastructure/logger"
	"github.com/hesab/backend/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func approvedDocument(t *testing.T) *voucher.Document {
	t.Helper()
	date := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	d := voucher.NewDocument("VCH-2024-00001", date, "Rent", []voucher.Entry{
		{AccountCode: "5101", AccountName: "Rent", Description: "April", DebitAmount: decimal.RequireFromString("300.5"), CreditAmount: decimal.Zero},
		{AccountCode: "1102", AccountName: "Cash", Description: "April", DebitAmount: decimal.Zero, CreditAmount: decimal.RequireFromString("300.5")},
	})
	require.NoError(t, d.Approve(uuid.New()))
	return d
}

func TestAuditLogHandler(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	bus := NewInMemoryEventBus(zap.NewNop())
	RegisterHandlers(bus, zap.New(core), nil)

	ctx := logger.WithRequestID(context.Background(), "req-42")
	d := approvedDocument(t)
	require.NoError(t, bus.Publish(ctx, d.GetDomainEvents()...))

	entries := logs.FilterMessage("domain event").All()
	require.Len(t, entries, 2)

	approved := entries[1].ContextMap()
	assert.Equal(t, voucher.EventTypeVoucherApproved, approved["event_type"])
	assert.Equal(t, "VCH-2024-00001", approved["voucher_number"])
	assert.Equal(t, "300.5", approved["total"])
	assert.Equal(t, "req-42", approved["request_id"])
	assert.Equal(t, "audit", entries[1].LoggerName)
}

func TestVoucherMetricsHandler(t *testing.T) {
	m := metrics.New()
	bus := NewInMemoryEventBus(zap.NewNop())
	RegisterHandlers(bus, zap.NewNop(), m)

	d := approvedDocument(t)
	require.NoError(t, bus.Publish(context.Background(), d.GetDomainEvents()...))

	expected := `
# HELP hesab_voucher_approved_amount_total Sum of the debit totals of approved vouchers.
# TYPE hesab_voucher_approved_amount_total counter
hesab_voucher_approved_amount_total 300.5
# HELP hesab_voucher_events_total Voucher lifecycle events by type.
# TYPE hesab_voucher_events_total counter
hesab_voucher_events_total{event_type="VoucherApproved"} 1
hesab_voucher_events_total{event_type="VoucherCreated"} 1
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"hesab_voucher_approved_amount_total", "hesab_voucher_events_total")
	assert.NoError(t, err)
}
