// Package metrics exposes Prometheus instrumentation for a radio link.
//
// The collector is registerer-injected so tests can use a private registry,
// and every observer is nil-safe so binaries can run with metrics disabled.
package metrics
