// config.go: configuration for the reclamation domain
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package lfset

import (
	"time"

	"github.com/agilira/go-timecache"
)

// Default tunables applied by Validate when a Config field is left zero.
const (
	// DefaultMaxHazardRecords bounds how many hazard-pointer records the
	// registry will allocate before acquire starts returning an error
	// instead of growing further. A List whose Config.MaxHazardRecords is 0
	// gets this bound; the default is applied when the reclamation domain
	// is built, not by Validate.
	DefaultMaxHazardRecords = 4096

	// DefaultBackoffBaseDelay is the pause a CAS retry loop waits after a
	// failed compare-and-swap (§5: backoff is a pure performance hint,
	// never required for correctness).
	DefaultBackoffBaseDelay = 50 * time.Microsecond

	// DefaultBackoffMaxDelay is the upper bound on the pause between CAS
	// retries.
	DefaultBackoffMaxDelay = 2 * time.Millisecond
)

// Config holds configuration parameters for a List's reclamation domain.
// None of these fields change the list's semantics (§1: only lock-freedom
// and linearizability are promised); they only tune how eagerly memory is
// reclaimed and how CAS retries back off.
type Config struct {
	// ScanThreshold is the retired-list length that triggers an
	// opportunistic scan. If 0, the domain computes a threshold from the
	// current number of registered hazard records (§4.C "Threshold
	// policy": roughly twice the record count, floored at 4).
	ScanThreshold int

	// MaxHazardRecords bounds registry growth. If 0, DefaultMaxHazardRecords
	// is applied. A registry that hits this bound returns
	// ErrCodeHazardRecordsExhausted from the operation that needed a new
	// record instead of growing further.
	MaxHazardRecords int64

	// BackoffBaseDelay is the pause between CAS retries. Every retry waits
	// the same pause; it does not grow with the number of retries.
	// If 0, DefaultBackoffBaseDelay is used.
	BackoffBaseDelay time.Duration

	// BackoffMaxDelay is the upper bound on the pause between CAS retries.
	// If 0, DefaultBackoffMaxDelay is used.
	BackoffMaxDelay time.Duration

	// Debug enables the programming-error assertions §7 and §9 describe
	// as optional ("implementations MAY detect with assertions in debug
	// builds"): Close verifies no hazard slot still references a
	// reachable node, and Search verifies its postcondition that prev is
	// never itself marked. Neither check panics: Close returns its failure
	// as an error, and Search's failure is written to Logger. Debug should
	// be left false in production since Close's check walks the whole
	// registry and list.
	Debug bool

	// Logger is used for reclamation-domain diagnostics: a scan that
	// frees nothing, and, with Debug set, Search's postcondition check.
	// If nil, NoOpLogger is used.
	Logger Logger

	// TimeProvider provides current time for log timestamps and metrics.
	// If nil, a go-timecache-backed implementation is used.
	TimeProvider TimeProvider

	// MetricsCollector receives latency and reclamation observability
	// events. If nil, NoOpMetricsCollector is used (zero overhead).
	MetricsCollector MetricsCollector
}

// Validate normalizes a Config, applying defaults for zero-valued fields.
// It never fails for the current field set (every field has a safe zero
// behavior); it returns error to match the self-validating pattern the
// rest of this package's error types use, and so that a future field with
// a genuinely invalid zero value can report ErrCodeInvalidConfig without
// changing the method's signature.
func (c *Config) Validate() error {
	if c.BackoffBaseDelay <= 0 {
		c.BackoffBaseDelay = DefaultBackoffBaseDelay
	}

	if c.BackoffMaxDelay <= 0 {
		c.BackoffMaxDelay = DefaultBackoffMaxDelay
	}

	if c.BackoffMaxDelay < c.BackoffBaseDelay {
		c.BackoffMaxDelay = c.BackoffBaseDelay
	}

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}

	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}

	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BackoffBaseDelay: DefaultBackoffBaseDelay,
		BackoffMaxDelay:  DefaultBackoffMaxDelay,
		Logger:           NoOpLogger{},
		TimeProvider:     &systemTimeProvider{},
		MetricsCollector: NoOpMetricsCollector{},
	}
}

// systemTimeProvider is the default time provider using go-timecache.
// This provides fast time access with zero allocations compared to
// time.Now(), used only for logging and metrics timestamps.
type systemTimeProvider struct{}

func (t *systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}
