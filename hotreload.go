// hotreload.go: dynamic reclamation tuning with Argus integration
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package lfset

import (
	"fmt"
	"sync"
	"time"

	"github.com/agilira/argus"
)

// HotConfig watches a configuration file and applies changes to a List's
// reclamation tunables — ScanThreshold, BackoffBaseDelay, BackoffMaxDelay,
// MaxHazardRecords — without reconstructing the list. None of these
// parameters affect correctness or linearizability (§5); they only change
// how eagerly memory is reclaimed and how CAS retries back off.
type HotConfig[T any] struct {
	list    *List[T]
	watcher *argus.Watcher
	mu      sync.RWMutex
	config  Config

	// OnReload is called after a reclamation-tunable reload is applied.
	// Optional; must be fast and non-blocking.
	OnReload func(oldConfig, newConfig Config)
}

// HotConfigOptions configures hot reload behavior.
type HotConfigOptions struct {
	// ConfigPath is the path to the configuration file to watch.
	// Supports JSON, YAML, TOML, HCL, INI, Properties formats.
	ConfigPath string

	// PollInterval is how often to check for configuration changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	// OnReload is called after configuration is successfully reloaded.
	OnReload func(oldConfig, newConfig Config)

	// Logger for hot reload operations. If nil, the list's logger is
	// used. HotConfig itself writes nothing to it.
	Logger Logger
}

// NewHotConfig creates a hot-reloadable reclamation configuration for a
// List. It starts watching the configuration file immediately.
//
// Example configuration file (YAML):
//
//	reclamation:
//	  scan_threshold: 32
//	  max_hazard_records: 8192
//	  backoff_base_delay: "50us"
//	  backoff_max_delay: "2ms"
//
// Supported configuration keys:
//   - reclamation.scan_threshold (int): retired-list length triggering a scan
//   - reclamation.max_hazard_records (int): registry growth bound
//   - reclamation.backoff_base_delay (duration string): initial CAS retry pause
//   - reclamation.backoff_max_delay (duration string): CAS retry backoff cap
func NewHotConfig[T any](list *List[T], opts HotConfigOptions) (*HotConfig[T], error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config_path is required")
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = 1 * time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	if opts.Logger == nil {
		opts.Logger = list.cfg.Logger
	}

	hc := &HotConfig[T]{
		list:     list,
		OnReload: opts.OnReload,
		config:   list.cfg,
	}

	argusConfig := argus.Config{
		PollInterval: opts.PollInterval,
	}

	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argusConfig)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching the configuration file for changes.
func (hc *HotConfig[T]) Start() error {
	if hc.watcher.IsRunning() {
		return nil
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig[T]) Stop() error {
	return hc.watcher.Stop()
}

// GetConfig returns the most recently applied configuration.
func (hc *HotConfig[T]) GetConfig() Config {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.config
}

func (hc *HotConfig[T]) handleConfigChange(configData map[string]interface{}) {
	hc.mu.Lock()
	oldConfig := hc.config
	newConfig := hc.parseConfig(configData, oldConfig)
	hc.config = newConfig
	hc.mu.Unlock()

	hc.apply(newConfig)

	if hc.OnReload != nil {
		hc.OnReload(oldConfig, newConfig)
	}
}

func parsePositiveInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return int64(v), true
		}
	case float64:
		if v > 0 {
			return int64(v), true
		}
	}
	return 0, false
}

func parseDuration(value interface{}) (time.Duration, bool) {
	if str, ok := value.(string); ok {
		if d, err := time.ParseDuration(str); err == nil {
			return d, true
		}
	}
	return 0, false
}

func (hc *HotConfig[T]) parseConfig(data map[string]interface{}, base Config) Config {
	config := base

	section, ok := data["reclamation"].(map[string]interface{})
	if !ok {
		if _, has := data["scan_threshold"]; has {
			section = data
		} else {
			return config
		}
	}

	if n, ok := parsePositiveInt64(section["scan_threshold"]); ok {
		config.ScanThreshold = int(n)
	}
	if n, ok := parsePositiveInt64(section["max_hazard_records"]); ok {
		config.MaxHazardRecords = n
	}
	if d, ok := parseDuration(section["backoff_base_delay"]); ok {
		config.BackoffBaseDelay = d
	}
	if d, ok := parseDuration(section["backoff_max_delay"]); ok {
		config.BackoffMaxDelay = d
	}

	return config
}

// apply pushes the new tunables into the list's reclamation domain. This
// is the one place outside newDomain that writes domain.cfg, and it does
// so with a single atomic store so every in-flight operation observes
// either the old or the new tunables, never a partial mix.
func (hc *HotConfig[T]) apply(cfg Config) {
	t := hc.list.dom.cfg.Load()
	next := &reclaimTunables{
		scanThreshold:    cfg.ScanThreshold,
		backoffBaseDelay: int64(cfg.BackoffBaseDelay),
		backoffMaxDelay:  int64(cfg.BackoffMaxDelay),
		maxRecords:       cfg.MaxHazardRecords,
	}
	if next.backoffBaseDelay <= 0 {
		next.backoffBaseDelay = t.backoffBaseDelay
	}
	if next.backoffMaxDelay <= 0 {
		next.backoffMaxDelay = t.backoffMaxDelay
	}
	if next.maxRecords <= 0 {
		next.maxRecords = t.maxRecords
	}
	hc.list.dom.cfg.Store(next)
}
