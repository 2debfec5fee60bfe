// Package observe provides delegate.Observer implementations for
// Prometheus metrics, OpenTelemetry tracing and structured logging.
//
//	metrics := observe.NewMetrics(observe.WithRegistry(reg))
//	tracer := observe.NewTracer(observe.WithTracerName("shop"))
//	eng := delegate.New(doc, delegate.WithObserver(metrics, tracer))
package observe
