// errors.go: structured error handling for lfset's reclamation domain
//
// This file provides structured error types using the go-errors library,
// enabling rich error context, categorization, and standardized error
// codes. Ordinary set outcomes — duplicate on Insert, absent on Delete or
// Find — are never errors; they are reported as the boolean return value
// §6's client contract specifies. Besides an invalid-configuration error,
// errors exist only for the two real failure channels §7 names:
// allocation failure and debug-build programming-error assertions.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package lfset

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for lfset operations.
const (
	// Configuration errors
	ErrCodeInvalidConfig errors.ErrorCode = "LFSET_INVALID_CONFIG"

	// Allocation errors — §7 "out-of-memory"
	ErrCodeAllocFailed            errors.ErrorCode = "LFSET_ALLOC_FAILED"
	ErrCodeHazardRecordsExhausted errors.ErrorCode = "LFSET_HAZARD_RECORDS_EXHAUSTED"

	// Programming errors — §7 "programming error ... undefined
	// behavior; implementations MAY detect with assertions in debug
	// builds"
	ErrCodeDoubleRetire       errors.ErrorCode = "LFSET_DOUBLE_RETIRE"
	ErrCodeDestroyWhileActive errors.ErrorCode = "LFSET_DESTROY_WHILE_ACTIVE"
	ErrCodeMarkInvariant      errors.ErrorCode = "LFSET_MARK_INVARIANT_VIOLATED"
)

// Common error messages.
const (
	msgInvalidConfig            = "invalid reclamation domain configuration"
	msgAllocFailed              = "failed to allocate a new node"
	msgHazardRecordsExhausted   = "hazard-pointer registry could not allocate a new record"
	msgDoubleRetire             = "node retired more than once"
	msgDestroyWhileActive       = "list destroyed while a hazard slot still references a reachable node"
	msgMarkInvariantViolated    = "search returned a marked predecessor"
)

// NewErrInvalidConfig reports a Config value Validate could not normalize.
func NewErrInvalidConfig(field string, value interface{}) error {
	return errors.NewWithContext(ErrCodeInvalidConfig, msgInvalidConfig, map[string]interface{}{
		"field": field,
		"value": value,
	})
}

// NewErrAllocFailed reports that allocating a new node failed. Go's
// allocator panics rather than returning an error on true OOM, so no code
// path in this package returns it; Insert allocates nodes with the
// built-in allocator.
func NewErrAllocFailed(cause error) error {
	return errors.Wrap(cause, ErrCodeAllocFailed, msgAllocFailed).AsRetryable()
}

// NewErrHazardRecordsExhausted reports that the registry hit
// Config.MaxHazardRecords and could not grow further.
func NewErrHazardRecordsExhausted(maxRecords int64) error {
	return errors.NewWithContext(ErrCodeHazardRecordsExhausted, msgHazardRecordsExhausted, map[string]interface{}{
		"max_records": maxRecords,
	}).AsRetryable()
}

// NewErrDoubleRetire reports a node retired twice — a programming error.
// retire performs no double-retire check, so no code path in this package
// returns it, with or without Config.Debug.
func NewErrDoubleRetire(addr interface{}) error {
	return errors.NewWithField(ErrCodeDoubleRetire, msgDoubleRetire, "node", addr).
		WithSeverity("critical")
}

// NewErrDestroyWhileActive reports that Close observed a hazard slot still
// referencing a reachable node — a programming error, only ever surfaced
// when Config.Debug is set.
func NewErrDestroyWhileActive(addr interface{}) error {
	return errors.NewWithField(ErrCodeDestroyWhileActive, msgDestroyWhileActive, "node", addr).
		WithSeverity("critical")
}

// NewErrMarkInvariant reports that Search returned a prev pointer whose
// own next field was found marked, violating the postcondition the
// original reference implementation asserts. Only ever surfaced when
// Config.Debug is set.
func NewErrMarkInvariant() error {
	return errors.NewWithField(ErrCodeMarkInvariant, msgMarkInvariantViolated, "component", "search").
		WithSeverity("critical")
}

// IsRetryable reports whether err can be retried (allocation and registry
// exhaustion errors are; programming-error assertions are not).
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// GetErrorCode extracts the error code from an error, or "" if err does
// not carry one.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts the structured context attached to an error
// constructed with NewWithContext, or nil if err carries none.
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var lfsetErr *errors.Error
	if goerrors.As(err, &lfsetErr) {
		return lfsetErr.Context
	}
	return nil
}
