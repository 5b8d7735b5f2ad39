// Package branding holds the product name shown to players and MCP clients.
package branding

// AppName is the product name.
const AppName = "Master Bait"
