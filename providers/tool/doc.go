// Package tool turns typed Go functions into named tools that accept and
// return JSON.
//
// [NewTool] derives input and output schemas from the function's types.
// [Tool.Call] decodes the JSON input leniently, validates it against its
// `validate` struct tags and runs the function. Failures to decode or
// validate are reported as [*ValidationError], which matches
// resolve.ErrInvalidInput under errors.Is.
//
// [Registry] keeps tools by case-insensitive name and records a span and call
// counters around each dispatch when an observability provider is carried in
// the context.
package tool
