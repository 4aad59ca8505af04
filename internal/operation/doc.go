// Package operation provides the registry and dispatch engine for text
// transform operations.
//
// Each operation is registered once as an Entry that pairs its Descriptor
// (name, category, description, parameter schema) with the Handler that
// implements it. The Registry built from those entries serves both paths:
//   - Discovery: List returns the descriptors in catalog order.
//   - Execution: Execute resolves a name, coerces the caller's raw string
//     parameters against the declared schema, invokes the handler and
//     normalizes the outcome into a Result.
//
// Parameter coercion is lenient: a value
// that is present but does not parse as its declared type is replaced by
// the parameter's default rather than failing the call. Only a missing
// required parameter is an error.
//
// A Registry is immutable once NewRegistry returns and is safe for
// concurrent use. Transforms themselves live in internal/action/* and do
// not import this package.
package operation
