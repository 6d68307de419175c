// Package mcp provides an MCP (Model Context Protocol) server adapter for docview.
// It lets AI assistants list and edit documents in the configured collections.
package mcp

import "errors"

// ErrMissingViewerService is returned when the viewer service is not provided.
var ErrMissingViewerService = errors.New("mcp: viewer service is required")
