package jsonschema

import (
	"reflect"
	"strings"
	"testing"
)

func TestGenerateJSONSchema_Primitives(t *testing.T) {
	tests := []struct {
		name     string
		schema   *Schema
		expected string
	}{
		{"string", GenerateJSONSchema[string](), "string"},
		{"int", GenerateJSONSchema[int](), "integer"},
		{"uint8", GenerateJSONSchema[uint8](), "integer"},
		{"float32", GenerateJSONSchema[float32](), "number"},
		{"bool", GenerateJSONSchema[bool](), "boolean"},
		{"pointer", GenerateJSONSchema[*string](), "string"},
		{"slice", GenerateJSONSchema[[]string](), "array"},
		{"map", GenerateJSONSchema[map[string]int](), "object"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.schema.Type != tc.expected {
				t.Errorf("expected type %q, got %q", tc.expected, tc.schema.Type)
			}
		})
	}
}

type searchInput struct {
	City    string   `json:"city" jsonschema:"description=City to search" validate:"required"`
	Kind    string   `json:"kind,omitempty" jsonschema:"enum=sports,enum=music"`
	Limit   int      `json:"limit,omitempty" jsonschema:"default=3" validate:"omitempty,min=1,max=10"`
	Tags    []string `json:"tags,omitempty"`
	Verbose *bool    `json:"verbose"`
	Note    string   `json:"note,omitempty" jsonschema:"required"`
	Skipped string   `json:"-"`
	hidden  string
}

func TestGenerateJSONSchema_Struct(t *testing.T) {
	schema := GenerateJSONSchema[searchInput]()

	if schema.Type != "object" {
		t.Fatalf("expected object, got %q", schema.Type)
	}
	if _, ok := schema.Properties["-"]; ok {
		t.Error("json:\"-\" field must be skipped")
	}
	if _, ok := schema.Properties["hidden"]; ok {
		t.Error("unexported field must be skipped")
	}
	if len(schema.Properties) != 6 {
		t.Errorf("expected 6 properties, got %d", len(schema.Properties))
	}

	city := schema.Properties["city"]
	if city.Description != "City to search" {
		t.Errorf("unexpected description %q", city.Description)
	}

	kind := schema.Properties["kind"]
	if !reflect.DeepEqual(kind.Enum, []any{"sports", "music"}) {
		t.Errorf("unexpected enum %v", kind.Enum)
	}

	limit := schema.Properties["limit"]
	if limit.Default != int64(3) {
		t.Errorf("expected default 3, got %#v", limit.Default)
	}
	if limit.Minimum == nil || *limit.Minimum != 1 || limit.Maximum == nil || *limit.Maximum != 10 {
		t.Errorf("expected min 1 max 10, got %v %v", limit.Minimum, limit.Maximum)
	}

	if tags := schema.Properties["tags"]; tags.Items == nil || tags.Items.Type != "string" {
		t.Errorf("expected string items for tags, got %+v", tags.Items)
	}

	want := []string{"city", "note"}
	if !reflect.DeepEqual(schema.Required, want) {
		t.Errorf("required = %v, want %v", schema.Required, want)
	}
}

type node struct {
	Name     string  `json:"name"`
	Children []*node `json:"children,omitempty"`
}

// TestGenerateJSONSchema_Recursive verifies that a self-referencing type
// terminates.
func TestGenerateJSONSchema_Recursive(t *testing.T) {
	schema := GenerateJSONSchema[node]()
	children := schema.Properties["children"]
	if children == nil || children.Items == nil || children.Items.Type != "object" {
		t.Fatalf("unexpected children schema %+v", children)
	}
	if children.Items.Properties != nil {
		t.Error("recursive reference should not be expanded")
	}
}

func TestSchema_JSONString(t *testing.T) {
	schema := GenerateJSONSchema[searchInput]()

	compact, err := schema.JSONString(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(compact, "\n") {
		t.Error("compact output contains newlines")
	}
	if !strings.Contains(compact, `"required":["city","note"]`) {
		t.Errorf("compact output missing required list: %s", compact)
	}

	indented, err := schema.JSONString(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(indented, "\n  ") {
		t.Error("indented output is not indented")
	}
	if schema.String() != compact {
		t.Error("String() should match compact output")
	}
}

type level int

func (l level) MarshalText() ([]byte, error) { return []byte("low"), nil }

func TestGenerateJSONSchema_TextMarshaler(t *testing.T) {
	type withLevel struct {
		Level level `json:"level" jsonschema:"enum=low,enum=high"`
	}

	schema := GenerateJSONSchema[withLevel]()
	prop := schema.Properties["level"]
	if prop.Type != "string" {
		t.Fatalf("expected text marshalers to be strings, got %q", prop.Type)
	}
	if !reflect.DeepEqual(prop.Enum, []any{"low", "high"}) {
		t.Errorf("expected string enum values, got %v", prop.Enum)
	}
}
