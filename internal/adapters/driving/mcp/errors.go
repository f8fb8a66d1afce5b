// Package mcp provides the MCP (Model Context Protocol) server adapter.
// It exposes the people, company, and spreadsheet operations as tools.
package mcp

import "errors"

// ErrNoToolServices is returned when neither tool service is provided.
var ErrNoToolServices = errors.New("mcp: at least one of the people or sheets services is required")
