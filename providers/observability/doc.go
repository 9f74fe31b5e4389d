// Package observability defines the tracing, metrics and logging interfaces
// used by the tool layer, plus the attribute keys (semconv.go) that every
// component records.
//
// A [Provider] bundles [Tracer], [Metrics] and [Logger]. Callers carry the
// active provider and span through a [context.Context] with
// [ContextWithObserver] and [ContextWithSpan] and read them back with
// [ObserverFromContext] and [SpanFromContext]. Code that finds neither simply
// records nothing.
package observability
