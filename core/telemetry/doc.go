// Package telemetry exposes Prometheus metrics for resource resolution.
//
// Metrics implements host.Observer; the serve command wires it into the host
// and mounts Handler at /metrics.
package telemetry
