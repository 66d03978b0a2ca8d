// Package errors defines the error taxonomy shared by the flashmcp managers,
// the server dispatch handlers and the proxy.
//
// Lookup failures, argument validation failures and entity invocation
// failures are distinct types so that a proxied remote failure can be
// reported with the same kind as a local one. All error types support
// unwrapping and can be checked using errors.Is, errors.As, and errors.AsType.
package errors
