package slogobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/leofalp/mocktools/providers/observability"
)

// Observer implements observability.Provider on top of a slog.Logger.
// Counters are also kept in memory so they can be read back with
// CounterValue.
type Observer struct {
	logger *slog.Logger

	mu         sync.RWMutex
	counters   map[string]*counter
	histograms map[string]*histogram
}

var _ observability.Provider = (*Observer)(nil)

// New creates an Observer. Without options the format and level come from
// the environment.
//
//	observer := slogobs.New(
//	    slogobs.WithFormat(slogobs.FormatJSON),
//	    slogobs.WithLevel(slog.LevelDebug),
//	)
func New(opts ...Option) *Observer {
	cfg := applyOptions(opts...)

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(NewHandler(&HandlerOptions{
			Format: cfg.format,
			Level:  cfg.level,
			Output: cfg.output,
			Colors: cfg.colors,
		}))
	}

	return &Observer{
		logger:     logger,
		counters:   make(map[string]*counter),
		histograms: make(map[string]*histogram),
	}
}

// Logger exposes the underlying slog.Logger, e.g. for http.Server.ErrorLog.
func (o *Observer) Logger() *slog.Logger {
	return o.logger
}

// --- TRACING ---

// StartSpan logs the span start at DEBUG and returns a context carrying the
// new span.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	s := &slogSpan{
		name:   name,
		start:  time.Now(),
		logger: o.logger,
		attrs:  append([]observability.Attribute{}, attrs...),
	}
	o.logger.LogAttrs(ctx, slog.LevelDebug, "Span started",
		append([]slog.Attr{slog.String("span", name)}, toSlog(attrs)...)...)

	return observability.ContextWithSpan(ctx, s), s
}

type slogSpan struct {
	name   string
	start  time.Time
	logger *slog.Logger

	mu     sync.Mutex
	attrs  []observability.Attribute
	failed bool
}

// End logs the span with its duration and every attribute collected so far.
// Failed spans are logged at WARN.
func (s *slogSpan) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := slog.LevelDebug
	if s.failed {
		level = slog.LevelWarn
	}
	logAttrs := []slog.Attr{
		slog.String("span", s.name),
		slog.Duration(observability.AttrDuration, time.Since(s.start)),
	}
	s.logger.LogAttrs(context.Background(), level, "Span ended", append(logAttrs, toSlog(s.attrs)...)...)
}

func (s *slogSpan) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, attrs...)
}

func (s *slogSpan) SetStatus(code observability.StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failed = code == observability.StatusError
	s.attrs = append(s.attrs, observability.String(observability.AttrStatus, code.String()))
	if description != "" {
		s.attrs = append(s.attrs, observability.String(observability.AttrStatusDescription, description))
	}
}

func (s *slogSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed = true
	s.attrs = append(s.attrs, observability.Error(err))
}

func (s *slogSpan) AddEvent(name string, attrs ...observability.Attribute) {
	logAttrs := []slog.Attr{
		slog.String("span", s.name),
		slog.String("event", name),
	}
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "Span event", append(logAttrs, toSlog(attrs)...)...)
}

// --- METRICS ---

// Counter returns the counter registered under name, creating it on first use.
func (o *Observer) Counter(name string) observability.Counter {
	o.mu.RLock()
	c, ok := o.counters[name]
	o.mu.RUnlock()
	if ok {
		return c
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if c, ok := o.counters[name]; ok {
		return c
	}
	c = &counter{name: name, logger: o.logger}
	o.counters[name] = c
	return c
}

// Histogram returns the histogram registered under name, creating it on
// first use.
func (o *Observer) Histogram(name string) observability.Histogram {
	o.mu.RLock()
	h, ok := o.histograms[name]
	o.mu.RUnlock()
	if ok {
		return h
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if h, ok := o.histograms[name]; ok {
		return h
	}
	h = &histogram{name: name, logger: o.logger}
	o.histograms[name] = h
	return h
}

// CounterValue returns the running total of a counter, or 0 if it was never
// used.
func (o *Observer) CounterValue(name string) int64 {
	o.mu.RLock()
	c, ok := o.counters[name]
	o.mu.RUnlock()
	if !ok {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Counters returns a copy of every counter total.
func (o *Observer) Counters() map[string]int64 {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make(map[string]int64, len(o.counters))
	for name, c := range o.counters {
		c.mu.Lock()
		out[name] = c.value
		c.mu.Unlock()
	}
	return out
}

type counter struct {
	name   string
	logger *slog.Logger
	mu     sync.Mutex
	value  int64
}

func (c *counter) Add(ctx context.Context, value int64, attrs ...observability.Attribute) {
	c.mu.Lock()
	c.value += value
	total := c.value
	c.mu.Unlock()

	logAttrs := []slog.Attr{
		slog.String("metric", c.name),
		slog.Int64("value", total),
		slog.Int64("delta", value),
	}
	c.logger.LogAttrs(ctx, LevelTrace, "Counter", append(logAttrs, toSlog(attrs)...)...)
}

type histogram struct {
	name   string
	logger *slog.Logger
}

func (h *histogram) Record(ctx context.Context, value float64, attrs ...observability.Attribute) {
	logAttrs := []slog.Attr{
		slog.String("metric", h.name),
		slog.Float64("value", value),
	}
	h.logger.LogAttrs(ctx, LevelTrace, "Histogram", append(logAttrs, toSlog(attrs)...)...)
}

// --- LOGGING ---

func (o *Observer) Trace(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, LevelTrace, msg, toSlog(attrs)...)
}

func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelDebug, msg, toSlog(attrs)...)
}

func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelInfo, msg, toSlog(attrs)...)
}

func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelWarn, msg, toSlog(attrs)...)
}

func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelError, msg, toSlog(attrs)...)
}

func toSlog(attrs []observability.Attribute) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, slog.Any(attr.Key, attr.Value))
	}
	return out
}
