// Package instrumentation provides OpenTelemetry-based observability for gmsa.
//
// It wires meter and tracer providers with configurable exporters
// (Prometheus, OTLP, stdout), records Gmail API and MCP tool metrics,
// and emits audit logs for tool invocations with PII controls.
//
// Configuration is environment-driven; see DefaultConfig.
package instrumentation
