// Package tool implements tool entities, their JSON Schema validation and
// the tool manager.
//
// A Tool pairs a name and an input schema with a Func. Arguments are
// validated against the schema before the Func runs; failures inside the
// Func are reported as errors.ToolError.
package tool
