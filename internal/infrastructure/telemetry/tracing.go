package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the tracer used for application service spans
const TracerName = "hesab-backend"

// Attribute keys set on service spans
const (
	AttrVoucherID     = attribute.Key("hesab.voucher.id")
	AttrVoucherNumber = attribute.Key("hesab.voucher.number")
	AttrVoucherStatus = attribute.Key("hesab.voucher.status")
	AttrUserID        = attribute.Key("hesab.user.id")
	AttrViolations    = attribute.Key("hesab.voucher.violations")
)

// StartServiceSpan starts an internal span named "<service>.<method>" on the
// global tracer provider. The caller ends it.
//
//	ctx, span := telemetry.StartServiceSpan(ctx, "VoucherService", "Create",
//		telemetry.AttrVoucherNumber.String(number))
//	defer span.End()
func StartServiceSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	opts := []trace.SpanStartOption{trace.WithSpanKind(trace.SpanKindInternal)}
	if len(attrs) > 0 {
		opts = append(opts, trace.WithAttributes(attrs...))
	}
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, service+"."+method, opts...)
}

// RecordError records err on the span and marks it failed. It returns err
// unchanged.
func RecordError(span trace.Span, err error) error {
	if span == nil || err == nil {
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// RecordViolations adds a "balance_check" event listing the violation codes
// of a voucher that could not be saved
func RecordViolations(span trace.Span, violationCodes []string) {
	if span == nil || len(violationCodes) == 0 {
		return
	}
	span.AddEvent("balance_check", trace.WithAttributes(AttrViolations.StringSlice(violationCodes)))
}
