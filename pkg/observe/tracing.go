package observe

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/domkit/pkg/delegate"
)

const defaultTracerName = "domkit"

// TracerConfig configures the OpenTelemetry observer.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "domkit").
	TracerName string

	// Provider supplies the tracer. Defaults to the global provider.
	Provider trace.TracerProvider

	// SkipNoMatch drops spans for delegated runs that matched nothing.
	// Busy delegation roots produce a lot of those.
	SkipNoMatch bool
}

// TracerOption configures the OpenTelemetry observer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(p trace.TracerProvider) TracerOption {
	return func(c *TracerConfig) {
		c.Provider = p
	}
}

// WithSkipNoMatch enables or disables spans for unmatched delegated runs.
func WithSkipNoMatch(skip bool) TracerOption {
	return func(c *TracerConfig) {
		c.SkipNoMatch = skip
	}
}

// Tracer emits one span per wrapped handler run. Dispatch is synchronous
// and carries no context, so spans are recorded after the fact with the
// run's start and end timestamps.
type Tracer struct {
	tracer      trace.Tracer
	skipNoMatch bool
}

var _ delegate.Observer = (*Tracer)(nil)

// NewTracer creates a tracing observer.
func NewTracer(opts ...TracerOption) *Tracer {
	config := TracerConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	provider := config.Provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &Tracer{
		tracer:      provider.Tracer(config.TracerName),
		skipNoMatch: config.SkipNoMatch,
	}
}

// ListenerAdded implements delegate.Observer.
func (t *Tracer) ListenerAdded(string, string) {}

// ListenerRemoved implements delegate.Observer.
func (t *Tracer) ListenerRemoved(string, string) {}

// Dispatched implements delegate.Observer.
func (t *Tracer) Dispatched(d delegate.Dispatch) {
	if t.skipNoMatch && d.Outcome == delegate.OutcomeNoMatch {
		return
	}
	_, span := t.tracer.Start(
		context.Background(),
		spanName(d),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(spanAttributes(d)...),
		trace.WithTimestamp(d.Start),
	)
	if d.Err != nil {
		span.RecordError(d.Err)
		span.SetStatus(codes.Error, d.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(d.Start.Add(d.Duration)))
}

func spanName(d delegate.Dispatch) string {
	return "domkit." + d.EventName
}

func spanAttributes(d delegate.Dispatch) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("domkit.event", d.EventName),
		attribute.String("domkit.kind", kind(d.Selector)),
		attribute.String("domkit.outcome", d.Outcome.String()),
	}
	if d.Selector != "" {
		attrs = append(attrs, attribute.String("domkit.selector", d.Selector))
	}
	return attrs
}
