package tool

import (
	"context"
	"encoding/json"
	"time"

	"github.com/leofalp/mocktools/core/cost"
	"github.com/leofalp/mocktools/core/parse"
	"github.com/leofalp/mocktools/internal/jsonschema"
	"github.com/leofalp/mocktools/providers/observability"
)

// Description advertises a tool to callers: what it is called, what it does
// and what it takes and returns.
type Description struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
	Output      *jsonschema.Schema `json:"output,omitempty"`
	Metrics     *cost.ToolMetrics  `json:"metrics,omitempty"`
}

// Tool binds a name and description to a typed function.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Output      *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)
	Metrics     *cost.ToolMetrics
}

// GenericTool is what a Registry stores: a tool with its type parameters
// erased.
type GenericTool interface {
	ToolInfo() Description
	Call(ctx context.Context, inputJSON string) (string, error)
	GetMetrics() *cost.ToolMetrics
}

var _ GenericTool = (*Tool[struct{}, struct{}])(nil)

type funcToolOptions struct {
	Description string
	Metrics     *cost.ToolMetrics
}

// WithDescription sets a human-readable description for the tool.
func WithDescription(description string) func(tool *funcToolOptions) {
	return func(s *funcToolOptions) {
		s.Description = description
	}
}

// WithMetrics sets the simulated cost and latency of one call.
func WithMetrics(toolMetrics cost.ToolMetrics) func(tool *funcToolOptions) {
	return func(s *funcToolOptions) {
		s.Metrics = &toolMetrics
	}
}

// NewTool constructs a Tool, deriving both schemas from I and O.
//
//	countryTool := tool.NewTool("get_country", country.Lookup(src),
//	    tool.WithDescription("Look up a country by name, alias or ISO code."),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...func(tool *funcToolOptions)) *Tool[I, O] {
	toolOptions := &funcToolOptions{}
	for _, option := range options {
		option(toolOptions)
	}

	return &Tool[I, O]{
		Name:        name,
		Description: toolOptions.Description,
		Parameters:  jsonschema.GenerateJSONSchema[I](),
		Output:      jsonschema.GenerateJSONSchema[O](),
		Function:    function,
		Metrics:     toolOptions.Metrics,
	}
}

func (t *Tool[I, O]) ToolInfo() Description {
	return Description{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
		Output:      t.Output,
		Metrics:     t.Metrics,
	}
}

// Call decodes inputJSON into I, validates it, runs the function and encodes
// the result. Start and end events are added to the span carried by ctx, if
// any.
func (t *Tool[I, O]) Call(ctx context.Context, inputJSON string) (string, error) {
	span := observability.SpanFromContext(ctx)
	if span != nil {
		span.AddEvent(observability.EventToolExecutionStart,
			observability.String(observability.AttrToolName, t.Name),
			observability.String(observability.AttrToolInput, inputJSON),
		)
		defer span.AddEvent(observability.EventToolExecutionEnd)
	}

	fail := func(err error) (string, error) {
		if span != nil {
			span.RecordError(err)
			span.SetAttributes(observability.String(observability.AttrToolError, err.Error()))
		}
		return "", err
	}

	input, err := parse.ParseStringAs[I](inputJSON)
	if err != nil {
		return fail(&ValidationError{Tool: t.Name, Err: err})
	}
	if err := Validate(t.Name, input); err != nil {
		return fail(err)
	}

	start := time.Now()
	output, err := t.Function(ctx, input)
	duration := time.Since(start)
	if err != nil {
		return fail(err)
	}

	encoded, err := json.Marshal(output)
	if err != nil {
		return fail(err)
	}

	if span != nil {
		span.SetAttributes(
			observability.String(observability.AttrToolOutput, observability.Truncate(string(encoded), 512)),
			observability.Duration(observability.AttrToolDuration, duration),
		)
	}
	return string(encoded), nil
}

func (t *Tool[I, O]) GetMetrics() *cost.ToolMetrics {
	return t.Metrics
}
