// Package client implements a lazily connecting MCP client.
//
// A Client wraps a single go-sdk ClientSession. The session is opened on
// the first call that needs it and shared by every later call until Close.
// Connection failures are reported as errors.TransportError and leave the
// client unconnected so the next call can try again.
package client
