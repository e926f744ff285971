package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/storefront/backend/internal/domain/shared"
)

// TracerName is the default tracer name for business spans
const TracerName = "storefront-backend"

// StartSpan starts a new span with the given name on the global tracer.
// The caller is responsible for calling span.End().
func StartSpan(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)

	opts := []trace.SpanStartOption{
		trace.WithSpanKind(trace.SpanKindInternal),
	}
	if len(attrs) > 0 {
		opts = append(opts, trace.WithAttributes(attrs...))
	}

	return tracer.Start(ctx, spanName, opts...)
}

// StartServiceSpan starts a span for a service method, named {service}.{method}
func StartServiceSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, fmt.Sprintf("%s.%s", service, method), attrs...)
}

// RecordError records an error on the span and sets the span status to error
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// RecordDomainEvents attaches the events an aggregate emitted during the
// operation to the span. Callers drain the aggregate with
// ClearDomainEvents afterwards so events never outlive their unit of work.
func RecordDomainEvents(span trace.Span, events []shared.DomainEvent) {
	if span == nil {
		return
	}
	for _, e := range events {
		span.AddEvent(e.EventType(), trace.WithAttributes(
			attribute.String("event_id", e.EventID().String()),
			attribute.String("aggregate_type", e.AggregateType()),
			attribute.String("aggregate_id", e.AggregateID().String()),
		))
	}
}

// GetTraceID returns the trace ID from the current span in the context,
// or an empty string when no span is recording
func GetTraceID(ctx context.Context) string {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}

// Common attribute keys for business spans
const (
	SpanAttrOrderID   = "order_id"
	SpanAttrUserID    = "user_id"
	SpanAttrProductID = "product_id"
	SpanAttrQuantity  = "quantity"
	SpanAttrPaymentID = "payment_id"
	SpanAttrMethod    = "payment_method"
	SpanAttrAmount    = "amount"
	SpanAttrItemCount = "item_count"
)
