// Package mcp provides an MCP (Model Context Protocol) server adapter for
// mnemo. It lets AI assistants load card collections and query them.
package mcp

import "errors"

// ErrMissingCollectionService is returned when the collection service is
// not provided.
var ErrMissingCollectionService = errors.New("mcp: collection service is required")
