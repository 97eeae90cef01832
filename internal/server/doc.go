// Package server implements the MCP (Model Context Protocol) server that
// exposes the leaf analysis operations as tools.
//
// The server speaks JSON-RPC 2.0 over stdin/stdout: one request per line in,
// one response per line out. Logging goes to stderr so the protocol stream
// stays clean.
//
// # Tool Surface
//
// The tools map one-to-one onto the analysis packages:
//
//   - image_load, image_dimensions: file metadata via the decode cache
//   - leaf_crop: detector-box extraction
//   - leaf_classify, leaf_overlay: HSV classification and rendering
//   - severity_rollup, severity_distribution: cross-image statistics
//   - filter_apply, image_histogram: the filter bank
//   - image_dominant_colors: range-tuning aid
//
// Images referenced by path are decoded once and cached for the lifetime of
// the server process.
//
// # Error Mapping
//
// Tool execution failures (invalid images, unsupported filters, bad
// parameters, empty aggregations) return JSON-RPC error code -32000 with
// the underlying message; malformed requests return the standard -32602 and
// -32601 codes.
package server
