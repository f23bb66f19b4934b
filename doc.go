// Package lfset provides a lock-free, ordered set implementation using
// a singly-linked list with hazard-pointer memory reclamation.
//
// # Overview
//
// lfset is designed for high-contention concurrent workloads with focus on:
//   - Lock-freedom: every public operation makes progress via CAS retries,
//     never a mutex
//   - Linearizability: Insert, Delete, and Find each have a single
//     well-defined linearization point
//   - Safe reclamation: hazard pointers guarantee a node is never freed
//     while any goroutine might still dereference it
//   - Type Safety: generic API, ordered by a user-supplied comparator
//
// # Quick Start
//
//	import "github.com/agilira/lfset"
//
//	func main() {
//	    l := lfset.NewOrdered[int](lfset.DefaultConfig())
//
//	    inserted, err := l.Insert(42)
//	    if err != nil {
//	        log.Printf("insert failed: %v", err)
//	    }
//
//	    if l.Find(42) {
//	        fmt.Println("42 is present")
//	    }
//
//	    l.Delete(42)
//	}
//
// For a custom ordering, or element types without a natural <, use New
// directly with a comparator:
//
//	type Job struct {
//	    Priority int
//	    Name     string
//	}
//
//	l := lfset.New[Job](func(a, b Job) bool {
//	    return a.Priority < b.Priority
//	}, lfset.DefaultConfig())
//
// # Algorithm
//
// lfset follows the Harris-Michael design:
//
//   - Insert finds the two neighboring nodes the new value belongs
//     between and CAS-links it in; it retries from scratch on a lost
//     race, never blocking.
//   - Delete is two-phase: it first CASes a mark bit into the low bit of
//     the target node's own successor pointer (logical deletion, the
//     linearization point), then attempts to CAS it out of its
//     predecessor's successor pointer (physical unlink). If the second
//     CAS loses a race, the node stays logically deleted and reachable
//     until some other traversal helps finish the unlink.
//   - Find and every other traversal that passes a logically-deleted node
//     helps complete its physical unlink before continuing, so no marked
//     node lingers indefinitely regardless of which goroutine started
//     deleting it.
//
// # Memory Reclamation
//
// A node is never freed for reuse the moment it is unlinked — another
// goroutine's Search may already hold a bare pointer to it. Before
// dereferencing any node, Search publishes its address into one of the
// calling goroutine's hazard slots; once a node is unlinked, it goes onto
// a per-record retired-list and is only handed to its destructor once a
// scan confirms no hazard slot anywhere in the registry still publishes
// its address. Each List owns an independent reclamation domain — two
// Lists never share a registry or a retired-list.
//
// Reclamation is opportunistic: a scan runs after every retire once a
// record's retired-list crosses a threshold (configurable via
// Config.ScanThreshold, or auto-computed from the live record count).
// None of this affects the list's observable semantics; it only changes
// how promptly memory is returned.
//
// # Configuration
//
//	cfg := lfset.Config{
//	    ScanThreshold:    16,
//	    MaxHazardRecords: 4096,
//	    BackoffBaseDelay: 50 * time.Microsecond,
//	    BackoffMaxDelay:  2 * time.Millisecond,
//	    Logger:           myLogger,
//	    MetricsCollector: myCollector,
//	}
//	l := lfset.NewOrdered[int](cfg)
//
// Every field is optional; DefaultConfig returns sensible defaults, and
// Validate (called automatically by New) normalizes zero values.
//
// # Error Handling
//
// Of the set operations, only Insert returns an error, and only when the
// hazard registry has reached Config.MaxHazardRecords and has no free
// record (Close also returns an error, when Config.Debug is set and its
// check fails):
//
//	inserted, err := l.Insert(value)
//	if err != nil {
//	    if lfset.IsRetryable(err) {
//	        // back off and retry later, or grow MaxHazardRecords
//	    }
//	}
//
// Delete and Find report only a boolean outcome; "value not found" is
// never an error.
//
// # Observability
//
// Set Config.MetricsCollector to receive latency and reclamation events,
// or use the lfset/otel subpackage for an OpenTelemetry-backed collector:
//
//	import lfsetotel "github.com/agilira/lfset/otel"
//
//	collector, _ := lfsetotel.NewOTelMetricsCollector(meterProvider)
//	l := lfset.NewOrdered[int](lfset.Config{MetricsCollector: collector})
//
// # Thread Safety
//
// Every exported method is safe for concurrent use from any number of
// goroutines. Close is the one exception: it assumes every goroutine that
// might call into the list has already stopped doing so.
//
// # License
//
// See LICENSE file in the repository.
package lfset
