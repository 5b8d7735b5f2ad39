// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing the play service.
const GRPCDial = 2 * time.Second

// GRPCRequest caps the time allowed for a single unary play call.
const GRPCRequest = 2 * time.Second

// ToolCall caps a single play call made on behalf of an MCP tool.
const ToolCall = 5 * time.Second

// ReadHeader limits how long the MCP HTTP transport waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight work during graceful
// shutdown.
const Shutdown = 5 * time.Second

// PlaythroughStep caps a single scripted playthrough step.
const PlaythroughStep = 10 * time.Second
