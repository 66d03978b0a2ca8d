// Package resource implements resources, resource templates and the resource
// manager.
//
// A Resource is identified by its URI and produces content through a Reader.
// Readers exist for static text and bytes, files, directories, HTTP
// endpoints and functions. A Template is a URI pattern with {name}
// placeholders that creates a function-backed Resource for every URI it
// matches.
package resource
