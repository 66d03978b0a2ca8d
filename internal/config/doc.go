// Package config provides server settings and the MCP client configuration
// file format.
package config
