// Package server boots the play gRPC server: PlayService, health checks and
// OpenTelemetry instrumentation over a multi-session host.
package server
