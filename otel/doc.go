// Package otel provides OpenTelemetry integration for lfset observability.
//
// # Overview
//
// This package implements the lfset.MetricsCollector interface using
// OpenTelemetry, enabling automatic percentile calculation and
// multi-backend export (Prometheus, Jaeger, DataDog, Grafana).
//
// It is a separate module so the lfset core carries no OTEL dependency;
// applications that never set Config.MetricsCollector pay nothing for it.
//
// # Architecture
//
//	┌───────────────────────────────────┐
//	│        lfset.List (core)          │
//	│  • no OTEL dependency             │
//	│  • MetricsCollector interface     │
//	│  • NoOpMetricsCollector (default) │
//	└──────────────┬─────────────────────┘
//	               │ implements
//	               ▼
//	┌───────────────────────────────────┐
//	│      lfset/otel (this package)    │
//	│  • OTelMetricsCollector           │
//	│  • Histograms + Counters          │
//	└──────────────┬─────────────────────┘
//	               │ exports to
//	               ▼
//	          OTEL MeterProvider
//	       ┌────────┼────────┐
//	       ▼        ▼        ▼
//	  Prometheus  Jaeger   DataDog
//
// # Prometheus Queries
//
// p99 Insert latency (last 5 minutes):
//
//	histogram_quantile(0.99, rate(lfset_insert_latency_ns_bucket[5m]))
//
// Reclamation backlog growth rate:
//
//	rate(lfset_pending_reclaim[5m])
//
// Duplicate-insert ratio:
//
//	rate(lfset_duplicate_total[5m]) /
//	(rate(lfset_inserted_total[5m]) + rate(lfset_duplicate_total[5m]))
//
// # Thread Safety
//
// All methods are safe for concurrent use; the underlying OTEL instruments
// are thread-safe and lock-free.
//
// # License
//
// Same as the lfset core module (see LICENSE in the repository root).
package otel
