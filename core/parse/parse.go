package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseStringAs decodes content into a value of type T.
//
// Strings are returned as-is unless content is a {"type","value"} envelope.
// Every other type goes through encoding/json; when that fails the input is
// repaired with jsonrepair and, if still undecodable, stripped of schema
// envelopes before a final attempt. Blank content decodes to the zero value of
// struct and map types, which lets required-field validation report what is
// missing instead of a syntax error.
//
//	type Input struct {
//	    City string `json:"city"`
//	}
//
//	in, err := ParseStringAs[Input](`{city: 'Sydney'}`) // repaired
func ParseStringAs[T any](content string) (T, error) {
	var result T
	kind := reflect.TypeFor[T]().Kind()

	if kind == reflect.String {
		value := content
		if strings.HasPrefix(strings.TrimSpace(content), "{") {
			if unwrapped, ok := unwrapPrimitive(content); ok {
				value = unwrapped
			}
		}
		reflect.ValueOf(&result).Elem().SetString(value)
		return result, nil
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" && (kind == reflect.Struct || kind == reflect.Map) {
		return result, nil
	}

	err := json.Unmarshal([]byte(trimmed), &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(trimmed)
	if repairErr != nil {
		return result, fmt.Errorf("cannot decode %T and cannot repair input: %w (repair: %v)", result, err, repairErr)
	}

	var retry T
	if err = json.Unmarshal([]byte(repaired), &retry); err == nil {
		return retry, nil
	}

	if unwrapped, unwrapErr := unwrapEnvelopes(repaired); unwrapErr == nil {
		var last T
		if json.Unmarshal([]byte(unwrapped), &last) == nil {
			return last, nil
		}
	}

	return result, fmt.Errorf("cannot decode repaired input as %T: %w (repaired: %s)", result, err, repaired)
}

// unwrapPrimitive extracts the value of a {"type": ..., "value": ...} object.
func unwrapPrimitive(content string) (string, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return "", false
	}
	value, ok := envelopeValue(data)
	if !ok {
		return "", false
	}
	if s, isString := value.(string); isString {
		return s, true
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return "", false
	}
	return string(encoded), true
}

// unwrapEnvelopes rewrites every {"type","value"} object in a JSON document
// into its value.
//
//	{"city": {"type": "string", "value": "Sydney"}} -> {"city":"Sydney"}
func unwrapEnvelopes(content string) (string, error) {
	var data any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return "", err
	}
	out, err := json.Marshal(unwrap(data))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func unwrap(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if value, ok := envelopeValue(v); ok {
			return unwrap(value)
		}
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = unwrap(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = unwrap(val)
		}
		return out
	default:
		return v
	}
}

func envelopeValue(m map[string]any) (any, bool) {
	if len(m) != 2 {
		return nil, false
	}
	if _, hasType := m["type"]; !hasType {
		return nil, false
	}
	value, hasValue := m["value"]
	return value, hasValue
}
