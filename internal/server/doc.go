// Package server holds the MCP server runtime: the shared server
// context with its per-account Gmail client cache, health check
// endpoints for the HTTP transport, and the dedicated Prometheus
// metrics server.
package server
