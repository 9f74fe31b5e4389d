package jsonschema

import (
	"encoding"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
)

// Schema is the subset of JSON Schema used to describe tool arguments and
// results.
type Schema struct {
	Type                 string             `json:"type,omitempty"`
	Description          string             `json:"description,omitempty"`
	Required             []string           `json:"required,omitempty"`
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Items                *Schema            `json:"items,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`
	Enum                 []any              `json:"enum,omitempty"`
	Default              any                `json:"default,omitempty"`
	Minimum              *float64           `json:"minimum,omitempty"`
	Maximum              *float64           `json:"maximum,omitempty"`
}

// GenerateJSONSchema returns the schema of T. Pointers are described by their
// element type; a struct that contains itself is described as a plain object
// at the point of recursion.
func GenerateJSONSchema[T any]() *Schema {
	return generate(reflect.TypeFor[T](), map[reflect.Type]bool{})
}

var textMarshaler = reflect.TypeFor[encoding.TextMarshaler]()

// encodesAsText reports whether t marshals to a JSON string through
// encoding.TextMarshaler.
func encodesAsText(t reflect.Type) bool {
	return t.Kind() != reflect.Ptr && (t.Implements(textMarshaler) || reflect.PointerTo(t).Implements(textMarshaler))
}

func generate(t reflect.Type, visiting map[reflect.Type]bool) *Schema {
	if encodesAsText(t) {
		return &Schema{Type: "string"}
	}
	switch t.Kind() {
	case reflect.Ptr:
		return generate(t.Elem(), visiting)
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: generate(t.Elem(), visiting)}
	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: generate(t.Elem(), visiting)}
	case reflect.Struct:
		if visiting[t] {
			return &Schema{Type: "object"}
		}
		visiting[t] = true
		defer delete(visiting, t)
		return structSchema(t, visiting)
	default:
		return &Schema{Type: "object"}
	}
}

func structSchema(t reflect.Type, visiting map[reflect.Type]bool) *Schema {
	schema := &Schema{Type: "object", Properties: map[string]*Schema{}}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty, skip := jsonName(field)
		if skip {
			continue
		}

		fieldSchema := generate(field.Type, visiting)
		requiredByTag, err := applyTags(field, fieldSchema)
		if err != nil {
			slog.Error("invalid schema tag", "type", t.Name(), "field", name, "error", err)
		}
		schema.Properties[name] = fieldSchema

		if requiredByTag || (field.Type.Kind() != reflect.Ptr && !omitEmpty) {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema
}

func jsonName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name = field.Name
	if tag == "" {
		return name, false, false
	}
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// applyTags reads the jsonschema and validate tags of field into schema and
// reports whether either marks the field as required.
//
//	jsonschema:"description=City to search,enum=a,enum=b,required"
//	validate:"required,max=10"
func applyTags(field reflect.StructField, schema *Schema) (bool, error) {
	required := false

	for _, item := range splitTag(field.Tag.Get("jsonschema")) {
		key, value, hasValue := strings.Cut(item, "=")
		switch {
		case key == "required" && !hasValue:
			required = true
		case key == "description":
			schema.Description = value
		case key == "enum":
			v, err := typedValue(field.Type, value)
			if err != nil {
				return required, fmt.Errorf("enum %q: %w", value, err)
			}
			schema.Enum = append(schema.Enum, v)
		case key == "default":
			v, err := typedValue(field.Type, value)
			if err != nil {
				return required, fmt.Errorf("default %q: %w", value, err)
			}
			schema.Default = v
		}
	}

	for _, item := range splitTag(field.Tag.Get("validate")) {
		key, value, _ := strings.Cut(item, "=")
		switch key {
		case "required":
			required = true
		case "min", "gte":
			if n, err := strconv.ParseFloat(value, 64); err == nil && isNumeric(field.Type) {
				schema.Minimum = &n
			}
		case "max", "lte":
			if n, err := strconv.ParseFloat(value, 64); err == nil && isNumeric(field.Type) {
				schema.Maximum = &n
			}
		}
	}

	return required, nil
}

func splitTag(tag string) []string {
	if tag == "" {
		return nil
	}
	return strings.Split(tag, ",")
}

func isNumeric(t reflect.Type) bool {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if encodesAsText(t) {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// typedValue converts a tag value into the Go kind of the field it annotates.
func typedValue(t reflect.Type, value string) (any, error) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if encodesAsText(t) {
		return value, nil
	}
	switch t.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.ParseInt(value, 10, 64)
	case reflect.Float32, reflect.Float64:
		return strconv.ParseFloat(value, 64)
	case reflect.Bool:
		return strconv.ParseBool(value)
	default:
		return nil, fmt.Errorf("unsupported field type %v", t)
	}
}

// JSONString renders the schema, indented when indent is true.
func (s *Schema) JSONString(indent bool) (string, error) {
	var (
		out []byte
		err error
	)
	if indent {
		out, err = json.MarshalIndent(s, "", "  ")
	} else {
		out, err = json.Marshal(s)
	}
	if err != nil {
		return "", fmt.Errorf("marshal schema: %w", err)
	}
	return string(out), nil
}

func (s *Schema) String() string {
	out, err := s.JSONString(false)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return out
}
