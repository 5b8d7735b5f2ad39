// Package service hosts the MCP server: it dials the play service, opens one
// play session, and exposes the level, journal and mini-game tools over stdio
// or streamable HTTP.
package service
