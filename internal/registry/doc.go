// Package registry implements the keyed entity registry shared by the tool,
// resource, template and prompt managers.
//
// A Manager holds at most one entity per key, lists entities in insertion
// order, and can import a snapshot of another manager under a prefix.
package registry
