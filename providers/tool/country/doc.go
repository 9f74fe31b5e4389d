// Package country provides the get_country tool: country facts looked up by
// name, common nickname ("Holland", "the UK") or ISO 3166 code.
package country
