package tool

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/leofalp/mocktools/core/resolve"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidationError reports tool input that could not be decoded (Err) or that
// broke one or more `validate` rules (Fields, keyed by JSON field name).
type ValidationError struct {
	Tool   string
	Fields map[string]string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tool %s: cannot decode input: %v", e.Tool, e.Err)
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " " + e.Fields[name]
	}
	return fmt.Sprintf("tool %s: invalid input: %s", e.Tool, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is makes every ValidationError an invalid-input error.
func (e *ValidationError) Is(target error) bool {
	return target == resolve.ErrInvalidInput
}

// Validate checks a struct against its `validate` tags. Non-struct values
// are accepted as-is.
func Validate(toolName string, input any) error {
	t := reflect.TypeOf(input)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Tool: toolName, Err: err}
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = friendlyMessage(fe)
	}
	return &ValidationError{Tool: toolName, Fields: fields}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + e.Param()
	case "max", "lte":
		return "must be at most " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	case "iso3166_1_alpha2":
		return "must be an ISO 3166-1 alpha-2 code"
	default:
		return "is invalid"
	}
}
