package event

import (
	"context"

	"github.com/hesab/backend/internal/domain/identity"
	"github.com/hesab/backend/internal/domain/shared"
	"github.com/hesab/backend/internal/domain/voucher"
	"github.com/hesab/backend/internal/infrastructure/logger"
	"github.com/hesab/backend/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// VoucherEventTypes lists every voucher lifecycle event
var VoucherEventTypes = []string{
	voucher.EventTypeVoucherCreated,
	voucher.EventTypeVoucherUpdated,
	voucher.EventTypeVoucherApproved,
	voucher.EventTypeVoucherDeleted,
}

// AuditLogHandler writes one structured log line per domain event
type AuditLogHandler struct {
	logger *zap.Logger
}

// NewAuditLogHandler creates an audit handler that receives every event
func NewAuditLogHandler(base *zap.Logger) *AuditLogHandler {
	return &AuditLogHandler{logger: base.Named("audit")}
}

// EventTypes is empty: the handler is a wildcard
func (h *AuditLogHandler) EventTypes() []string { return nil }

// Handle logs the event with its aggregate and request correlation fields
func (h *AuditLogHandler) Handle(ctx context.Context, e shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_type", e.EventType()),
		zap.String("event_id", e.EventID().String()),
		zap.String("aggregate_type", e.AggregateType()),
		zap.String("aggregate_id", e.AggregateID().String()),
		zap.Time("occurred_at", e.OccurredAt()),
	}
	switch ev := e.(type) {
	case *voucher.VoucherCreatedEvent:
		fields = append(fields, zap.String("voucher_number", ev.VoucherNumber), zap.Int("entries", ev.EntryCount))
	case *voucher.VoucherUpdatedEvent:
		fields = append(fields, zap.String("voucher_number", ev.VoucherNumber), zap.Int("entries", ev.EntryCount))
	case *voucher.VoucherApprovedEvent:
		fields = append(fields, zap.String("voucher_number", ev.VoucherNumber), zap.String("total", ev.Total.String()))
	case *voucher.VoucherDeletedEvent:
		fields = append(fields, zap.String("voucher_number", ev.VoucherNumber))
	case *identity.CompanyCreatedEvent:
		fields = append(fields, zap.String("company", ev.Name))
	case *identity.UserCreatedEvent:
		fields = append(fields, zap.String("username", ev.Username))
	}
	logger.Enrich(ctx, h.logger).Info("domain event", fields...)
	return nil
}

// VoucherMetricsHandler counts voucher lifecycle events
type VoucherMetricsHandler struct {
	metrics *metrics.Metrics
}

// NewVoucherMetricsHandler creates a handler recording into m
func NewVoucherMetricsHandler(m *metrics.Metrics) *VoucherMetricsHandler {
	return &VoucherMetricsHandler{metrics: m}
}

// EventTypes returns the voucher event types
func (h *VoucherMetricsHandler) EventTypes() []string { return VoucherEventTypes }

// Handle increments the per-type counter, and the approved amount for approvals
func (h *VoucherMetricsHandler) Handle(_ context.Context, e shared.DomainEvent) error {
	h.metrics.VoucherEvent(e.EventType())
	if approved, ok := e.(*voucher.VoucherApprovedEvent); ok {
		h.metrics.VoucherApproved(approved.Total.InexactFloat64())
	}
	return nil
}

// RegisterHandlers subscribes the standard handlers to bus
func RegisterHandlers(bus shared.EventSubscriber, base *zap.Logger, m *metrics.Metrics) {
	bus.Subscribe(NewAuditLogHandler(base))
	if m != nil {
		bus.Subscribe(NewVoucherMetricsHandler(m))
	}
}
