// config_test.go: unit tests for Config
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package lfset

import "testing"

func TestConfig_ValidateAppliesDefaults(t *testing.T) {
	var c Config
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}

	if c.BackoffBaseDelay != DefaultBackoffBaseDelay {
		t.Errorf("BackoffBaseDelay = %v, want %v", c.BackoffBaseDelay, DefaultBackoffBaseDelay)
	}
	if c.BackoffMaxDelay != DefaultBackoffMaxDelay {
		t.Errorf("BackoffMaxDelay = %v, want %v", c.BackoffMaxDelay, DefaultBackoffMaxDelay)
	}
	if c.Logger == nil {
		t.Error("Logger should default to NoOpLogger")
	}
	if c.TimeProvider == nil {
		t.Error("TimeProvider should default to a system time provider")
	}
	if c.MetricsCollector == nil {
		t.Error("MetricsCollector should default to NoOpMetricsCollector")
	}
}

func TestConfig_ValidateClampsMaxBelowBase(t *testing.T) {
	c := Config{BackoffBaseDelay: 10, BackoffMaxDelay: 5}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if c.BackoffMaxDelay < c.BackoffBaseDelay {
		t.Errorf("BackoffMaxDelay (%v) should never end up below BackoffBaseDelay (%v)", c.BackoffMaxDelay, c.BackoffBaseDelay)
	}
}

func TestDefaultConfig_IsValid(t *testing.T) {
	c := DefaultConfig()
	if c.Logger == nil || c.TimeProvider == nil || c.MetricsCollector == nil {
		t.Fatal("DefaultConfig() should populate every collaborator interface")
	}
}

func TestSystemTimeProvider_Monotonic(t *testing.T) {
	tp := &systemTimeProvider{}
	a := tp.Now()
	b := tp.Now()
	if b < a {
		t.Errorf("Now() went backward: %d then %d", a, b)
	}
}
