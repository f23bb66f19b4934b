// Package otel provides OpenTelemetry integration for lfset's observability
// hooks.
//
// This package implements the lfset.MetricsCollector interface using
// OpenTelemetry, enabling automatic percentile calculation (p50, p95, p99)
// and multi-backend support (Prometheus, Jaeger, DataDog, Grafana).
//
// # Usage
//
//	import (
//	    "github.com/agilira/lfset"
//	    lfsetotel "github.com/agilira/lfset/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, _ := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	collector, _ := lfsetotel.NewOTelMetricsCollector(provider)
//
//	l := lfset.NewOrdered[int](lfset.Config{MetricsCollector: collector})
//
// # Metrics Exposed
//
//   - lfset_insert_latency_ns: Histogram of Insert() latencies
//   - lfset_delete_latency_ns: Histogram of Delete() latencies
//   - lfset_find_latency_ns: Histogram of Find() latencies
//   - lfset_inserted_total / lfset_duplicate_total: Insert outcomes
//   - lfset_deleted_total / lfset_absent_total: Delete outcomes
//   - lfset_found_total / lfset_missed_total: Find outcomes
//   - lfset_reclaimed_total: Counter of nodes freed by a reclamation scan
//   - lfset_pending_reclaim: Gauge-like counter, last observed scan backlog
//   - lfset_hazard_records_total: Counter of hazard-registry growth events
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package otel

import (
	"context"
	"errors"

	"github.com/agilira/lfset"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetricsCollector implements lfset.MetricsCollector using
// OpenTelemetry.
//
// Thread-safety: safe for concurrent use by multiple goroutines. The
// underlying OTEL instruments are thread-safe and lock-free.
type OTelMetricsCollector struct {
	insertLatency metric.Int64Histogram
	deleteLatency metric.Int64Histogram
	findLatency   metric.Int64Histogram

	inserted  metric.Int64Counter
	duplicate metric.Int64Counter
	deleted   metric.Int64Counter
	absent    metric.Int64Counter
	found     metric.Int64Counter
	missed    metric.Int64Counter

	reclaimed      metric.Int64Counter
	pendingReclaim metric.Int64Counter
	hazardGrowth   metric.Int64Counter
}

// Options for configuring OTelMetricsCollector.
type Options struct {
	// MeterName is the name of the OpenTelemetry meter.
	// Default: "github.com/agilira/lfset"
	MeterName string
}

// Option is a functional option for configuring OTelMetricsCollector.
type Option func(*Options)

// WithMeterName sets a custom meter name, useful for distinguishing
// metrics from multiple List instances.
func WithMeterName(name string) Option {
	return func(o *Options) {
		o.MeterName = name
	}
}

// NewOTelMetricsCollector creates an OpenTelemetry-backed
// lfset.MetricsCollector. provider must not be nil.
func NewOTelMetricsCollector(provider metric.MeterProvider, opts ...Option) (*OTelMetricsCollector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	options := Options{MeterName: "github.com/agilira/lfset"}
	for _, opt := range opts {
		opt(&options)
	}

	meter := provider.Meter(options.MeterName)
	c := &OTelMetricsCollector{}

	var err error
	if c.insertLatency, err = meter.Int64Histogram(
		"lfset_insert_latency_ns",
		metric.WithDescription("Latency of Insert operations in nanoseconds"),
		metric.WithUnit("ns"),
	); err != nil {
		return nil, err
	}
	if c.deleteLatency, err = meter.Int64Histogram(
		"lfset_delete_latency_ns",
		metric.WithDescription("Latency of Delete operations in nanoseconds"),
		metric.WithUnit("ns"),
	); err != nil {
		return nil, err
	}
	if c.findLatency, err = meter.Int64Histogram(
		"lfset_find_latency_ns",
		metric.WithDescription("Latency of Find operations in nanoseconds"),
		metric.WithUnit("ns"),
	); err != nil {
		return nil, err
	}
	if c.inserted, err = meter.Int64Counter(
		"lfset_inserted_total",
		metric.WithDescription("Total number of Insert calls that added a new value"),
	); err != nil {
		return nil, err
	}
	if c.duplicate, err = meter.Int64Counter(
		"lfset_duplicate_total",
		metric.WithDescription("Total number of Insert calls that found an existing value"),
	); err != nil {
		return nil, err
	}
	if c.deleted, err = meter.Int64Counter(
		"lfset_deleted_total",
		metric.WithDescription("Total number of Delete calls that removed a value"),
	); err != nil {
		return nil, err
	}
	if c.absent, err = meter.Int64Counter(
		"lfset_absent_total",
		metric.WithDescription("Total number of Delete calls that found no value"),
	); err != nil {
		return nil, err
	}
	if c.found, err = meter.Int64Counter(
		"lfset_found_total",
		metric.WithDescription("Total number of Find calls that found a value"),
	); err != nil {
		return nil, err
	}
	if c.missed, err = meter.Int64Counter(
		"lfset_missed_total",
		metric.WithDescription("Total number of Find calls that found no value"),
	); err != nil {
		return nil, err
	}
	if c.reclaimed, err = meter.Int64Counter(
		"lfset_reclaimed_total",
		metric.WithDescription("Total number of nodes freed by a reclamation scan"),
	); err != nil {
		return nil, err
	}
	if c.pendingReclaim, err = meter.Int64Counter(
		"lfset_pending_reclaim",
		metric.WithDescription("Last observed count of retired nodes still hazard-protected after a scan"),
	); err != nil {
		return nil, err
	}
	if c.hazardGrowth, err = meter.Int64Counter(
		"lfset_hazard_records_total",
		metric.WithDescription("Total number of hazard-pointer registry growth events"),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// InsertCompleted implements lfset.MetricsCollector.
func (c *OTelMetricsCollector) InsertCompleted(inserted bool, latencyNanos int64) {
	ctx := context.Background()
	c.insertLatency.Record(ctx, latencyNanos)
	if inserted {
		c.inserted.Add(ctx, 1)
	} else {
		c.duplicate.Add(ctx, 1)
	}
}

// DeleteCompleted implements lfset.MetricsCollector.
func (c *OTelMetricsCollector) DeleteCompleted(deleted bool, latencyNanos int64) {
	ctx := context.Background()
	c.deleteLatency.Record(ctx, latencyNanos)
	if deleted {
		c.deleted.Add(ctx, 1)
	} else {
		c.absent.Add(ctx, 1)
	}
}

// FindCompleted implements lfset.MetricsCollector.
func (c *OTelMetricsCollector) FindCompleted(found bool, latencyNanos int64) {
	ctx := context.Background()
	c.findLatency.Record(ctx, latencyNanos)
	if found {
		c.found.Add(ctx, 1)
	} else {
		c.missed.Add(ctx, 1)
	}
}

// ScanCompleted implements lfset.MetricsCollector.
func (c *OTelMetricsCollector) ScanCompleted(reclaimed int, stillPending int) {
	ctx := context.Background()
	c.reclaimed.Add(ctx, int64(reclaimed))
	c.pendingReclaim.Add(ctx, int64(stillPending))
}

// HazardRecordsGrew implements lfset.MetricsCollector.
func (c *OTelMetricsCollector) HazardRecordsGrew(totalRecords int64) {
	c.hazardGrowth.Add(context.Background(), 1)
}

// Compile-time interface check.
var _ lfset.MetricsCollector = (*OTelMetricsCollector)(nil)
