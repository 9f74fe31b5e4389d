package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/leofalp/mocktools/providers/observability"
)

// ErrUnknownTool is matched by errors returned from Registry.Call for names
// that are not registered.
var ErrUnknownTool = errors.New("unknown tool")

// UnknownToolError names the tool that was requested.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

func (e *UnknownToolError) Is(target error) bool {
	return target == ErrUnknownTool
}

// Registry holds tools by case-insensitive name. It is safe for concurrent
// use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]GenericTool
}

// NewRegistry creates a registry holding tools. A later tool replaces an
// earlier one with the same name.
func NewRegistry(tools ...GenericTool) *Registry {
	r := &Registry{tools: make(map[string]GenericTool)}
	r.Register(tools...)
	return r
}

func (r *Registry) Register(tools ...GenericTool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tools {
		r.tools[strings.ToLower(t.ToolInfo().Name)] = t
	}
}

// Get retrieves a tool by name (case-insensitive).
func (r *Registry) Get(name string) (GenericTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[strings.ToLower(name)]
	return t, ok
}

// Remove reports whether a tool was registered under name.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if _, ok := r.tools[key]; !ok {
		return false
	}
	delete(r.tools, key)
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// List returns every tool description sorted by name.
func (r *Registry) List() []Description {
	r.mu.RLock()
	out := make([]Description, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.ToolInfo())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Call dispatches inputJSON to the named tool. When ctx carries an
// observability provider the call runs inside a tool.execution span and
// updates the call, error and duration metrics.
func (r *Registry) Call(ctx context.Context, name, inputJSON string) (string, error) {
	t, ok := r.Get(name)
	if !ok {
		return "", &UnknownToolError{Name: name}
	}

	observer := observability.ObserverFromContext(ctx)
	if observer == nil {
		return t.Call(ctx, inputJSON)
	}

	toolName := t.ToolInfo().Name
	nameAttr := observability.String(observability.AttrToolName, toolName)
	ctx, span := observer.StartSpan(ctx, observability.SpanToolExecution, nameAttr)
	defer span.End()

	start := time.Now()
	output, err := t.Call(ctx, inputJSON)
	elapsed := time.Since(start)

	observer.Counter(observability.MetricToolCallCount).Add(ctx, 1, nameAttr)
	observer.Histogram(observability.MetricToolDuration).Record(ctx, float64(elapsed.Microseconds())/1000, nameAttr)
	if err != nil {
		observer.Counter(observability.MetricToolErrorCount).Add(ctx, 1, nameAttr)
		span.SetStatus(observability.StatusError, err.Error())
		return "", err
	}
	span.SetStatus(observability.StatusOK, "")
	return output, nil
}
