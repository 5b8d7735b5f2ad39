// Package domain translates MCP tool calls into PlayService requests.
//
// Every tool acts on the MCP server's default play session and returns flat,
// schema-friendly results that MCP clients can render directly.
package domain
