package observability

// Attribute keys, span names, event names and metric names shared by every
// component.

// --- Tool Execution Attributes ---

const (
	AttrToolName     = "tool.name"
	AttrToolInput    = "tool.input"
	AttrToolOutput   = "tool.output"
	AttrToolDuration = "tool.duration"
	AttrToolError    = "tool.error"
)

// --- Resolution Attributes ---

const (
	// AttrResolveCatalog is the name of the catalog searched.
	AttrResolveCatalog = "resolve.catalog"

	// AttrResolveQuery is the raw query before normalisation.
	AttrResolveQuery = "resolve.query"

	// AttrResolveMatch is the canonical key that was matched.
	AttrResolveMatch = "resolve.match"

	// AttrResolveTier is the confidence tier of the match.
	AttrResolveTier = "resolve.tier"

	// AttrResolveFallback is set when a tool returned an explicit fallback
	// result after a miss.
	AttrResolveFallback = "resolve.fallback"
)

// --- Dataset Attributes ---

const (
	AttrDatasetVersion = "dataset.version"
	AttrDatasetSource  = "dataset.source"
	AttrDatasetPath    = "dataset.path"
)

// --- HTTP Attributes ---

const (
	AttrHTTPMethod     = "http.method"
	AttrHTTPRoute      = "http.route"
	AttrHTTPStatusCode = "http.status_code"
)

// --- General Attributes ---

const (
	AttrError             = "error"
	AttrDuration          = "duration"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	SpanToolExecution = "tool.execution"
	SpanHTTPRequest   = "http.request"
	SpanDatasetReload = "dataset.reload"
)

// --- Event Names ---

const (
	EventToolExecutionStart = "tool.execution.start"
	EventToolExecutionEnd   = "tool.execution.end"
	EventResolveMatch       = "resolve.match"
	EventResolveMiss        = "resolve.miss"
)

// --- Metric Names ---

const (
	MetricToolCallCount    = "tool.calls"
	MetricToolErrorCount   = "tool.errors"
	MetricToolDuration     = "tool.duration_ms"
	MetricResolveTierCount = "resolve.tier"
	MetricDatasetReloads   = "dataset.reloads"
)
