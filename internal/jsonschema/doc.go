// Package jsonschema derives JSON Schema documents from Go types by
// reflection. Tool input and output structs are described with it so that a
// language model knows which arguments a tool takes.
//
// Field metadata comes from struct tags: `json` names the property,
// `jsonschema` adds description, enum and required markers, and a `validate`
// tag (go-playground/validator syntax) contributes required, min and max.
//
// The entry point is [GenerateJSONSchema].
package jsonschema
