// Package telemetry bundles the opentelemetry tracer and meter with a logr
// logger for the toolkit components. The tracing subpackage mirrors log lines
// into span events and the export subpackage installs trace exporters.
package telemetry
