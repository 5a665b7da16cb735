// Package observability provides structured logging and metrics for the
// auth gateway.
//
// This package implements:
//   - zap logger construction from configuration (json or console)
//   - Prometheus counters and histograms per operation outcome
//   - Request ID aware logging helpers
package observability
