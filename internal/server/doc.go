// Package server implements the MCP (Model Context Protocol) server for
// selective color keeping.
//
// This package provides a JSON-RPC 2.0 server that exposes a color keeping
// session through the MCP protocol. A client opens one image, places picks on
// it and tunes their thresholds; every pixel no pick claims is shown in gray.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image:
//   - image_load: Open an image; its working copy is scaled to the preview size
//   - image_dimensions: Width and height of a file or of the working copy
//   - image_sample_color: Original color at a pixel
//   - image_bulk_keep: One-pass conversion of a file by reference colors
//
// Picks:
//   - pick_add: Add a pick at a sample point
//   - pick_activate: Select the pick whose thresholds are edited
//   - pick_adjust: Shift the active thresholds
//   - pick_set_thresholds: Set the active thresholds
//   - pick_remove: Remove a pick
//   - picks_clear: Remove every pick
//   - picks_list: Describe every pick
//   - picks_export / picks_import: Save and restore a pick list as JSON
//   - pick_measure_range: Range units between a pick and a point
//
// Output:
//   - display_get: Converted image as base64 PNG, optionally with markers
//   - display_save: Write the converted image to disk
//
// Pick coordinates always refer to the working copy made by image_load.
//
// # Configuration
//
// See [Config] and [ConfigFromEnv]. MAKEPURE_PREVIEW_MAX sets the working
// copy size and MAKEPURE_LOG_LEVEL=debug logs each request to stderr.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.NewWithConfig(server.ConfigFromEnv())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
