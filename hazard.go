// hazard.go: hazard-pointer registry (component B of the reclamation domain)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package lfset

import (
	"sync/atomic"
	"unsafe"
)

// Hazard slot assignment used by Search (§4.D.1). slotCur is refreshed at
// the top of every Search iteration; slotPrev persists across iterations
// once prev advances past head; slotScratch exists only to make the
// prev/cur slot swap at step 6d safe — a node is never left unprotected
// between the two writes that move its protection from one slot to the
// other.
const (
	slotCur = iota
	slotPrev
	slotScratch
	numHazardSlots
)

// record is one hazard-pointer record: a fixed array of protected
// addresses, an owner flag, and a record-local retired-list. A record is
// never freed once allocated; it is only ever claimed, cleared, and
// released for reuse. The registry of records is a global (per-domain)
// append-only singly-linked list, so readers can walk it without
// synchronizing with writers beyond a single atomic load per hop.
type record struct {
	slots [numHazardSlots]unsafe.Pointer
	// taken is 0 (free) or 1 (owned by whichever call currently holds it).
	taken int32
	// next is set exactly once, by the CAS that prepends this record to
	// the domain's registry, and is never mutated again.
	next *record

	retired []retiredEntry
}

func (r *record) protect(slot int, addr unsafe.Pointer) {
	atomic.StorePointer(&r.slots[slot], addr)
}

func (r *record) readSlot(slot int) unsafe.Pointer {
	return atomic.LoadPointer(&r.slots[slot])
}

func (r *record) clear(slot int) {
	atomic.StorePointer(&r.slots[slot], nil)
}

func (r *record) clearAll() {
	for i := range r.slots {
		r.clear(i)
	}
}

// swapCurIntoPrev implements Search step 6d: slotPrev ends up protecting
// whatever slotCur currently protects (the node becoming the new prev),
// and slotCur is left holding the old slotPrev value, which the next loop
// iteration immediately overwrites with the real new cur. At no point is
// the node moving into slotPrev left unprotected.
func (r *record) swapCurIntoPrev() {
	curAddr := r.readSlot(slotCur)
	prevAddr := r.readSlot(slotPrev)
	r.protect(slotScratch, curAddr)
	r.protect(slotCur, prevAddr)
	r.protect(slotPrev, curAddr)
	r.clear(slotScratch)
}

// domain is the reclamation domain owned by a single List. It is never
// shared across List instances (§9b: per-list, not global).
type domain struct {
	head       unsafe.Pointer // atomic *record, registry head
	numRecords int64          // atomic, approximate record count

	cfg atomic.Pointer[reclaimTunables]

	logger  Logger
	metrics MetricsCollector
	now     func() int64
}

// reclaimTunables are the hot-reloadable parameters of the reclamation
// domain (see hotreload.go). They never affect correctness, only how
// eagerly scans run and how CAS retries back off.
type reclaimTunables struct {
	scanThreshold    int
	backoffBaseDelay int64 // nanoseconds
	backoffMaxDelay  int64 // nanoseconds
	maxRecords       int64
}

func newDomain(cfg Config) *domain {
	maxRecords := cfg.MaxHazardRecords
	if maxRecords <= 0 {
		maxRecords = DefaultMaxHazardRecords
	}
	d := &domain{
		logger:  cfg.Logger,
		metrics: cfg.MetricsCollector,
		now:     cfg.TimeProvider.Now,
	}
	d.cfg.Store(&reclaimTunables{
		scanThreshold:    cfg.ScanThreshold,
		backoffBaseDelay: int64(cfg.BackoffBaseDelay),
		backoffMaxDelay:  int64(cfg.BackoffMaxDelay),
		maxRecords:       maxRecords,
	})
	return d
}

// acquire implements §4.B's per-thread acquisition protocol, scoped to the
// lifetime of a single List operation rather than to an OS thread (Go
// goroutines have no exit hook a library can observe, so "acquire on
// first use, release on thread exit" becomes "acquire on call entry,
// release on call exit" — the registry, CAS-claim, and never-physically-
// free invariants are unchanged). acquire never fails:
// it is used by Find and Delete, neither of which has an error channel in
// §6's client contract, so registry growth is unconditional here.
func (d *domain) acquire() *record {
	r, _ := d.acquireChecked(false)
	return r
}

// acquireChecked is acquire with an optional registry-growth cap, used by
// Insert, the only operation §6 gives an out-of-memory error channel.
// When enforceCap is true and no free record exists and the registry is
// already at Config.MaxHazardRecords, it returns
// ErrCodeHazardRecordsExhausted instead of growing further.
func (d *domain) acquireChecked(enforceCap bool) (*record, error) {
	for head := atomic.LoadPointer(&d.head); ; head = atomic.LoadPointer(&d.head) {
		for r := (*record)(head); r != nil; r = r.next {
			if atomic.CompareAndSwapInt32(&r.taken, 0, 1) {
				return r, nil
			}
		}
		if enforceCap {
			max := d.cfg.Load().maxRecords
			if max > 0 && d.recordCount() >= max {
				return nil, NewErrHazardRecordsExhausted(max)
			}
		}
		// No free record found: allocate one and CAS-prepend it.
		newRec := &record{next: (*record)(head)}
		newRec.taken = 1
		if atomic.CompareAndSwapPointer(&d.head, head, unsafe.Pointer(newRec)) {
			total := atomic.AddInt64(&d.numRecords, 1)
			if d.metrics != nil {
				d.metrics.HazardRecordsGrew(total)
			}
			return newRec, nil
		}
		// Lost the race to prepend; another record may now be free, or we
		// retry the prepend against the new head.
	}
}

// release clears a record's hazard slots and marks it free for reuse.
// Its retired-list is left untouched — entries a previous owner could not
// yet reclaim stay attached to the record for whichever call acquires it
// next, exactly as §4.C's thread-exit rule intends.
func (d *domain) release(r *record) {
	r.clearAll()
	atomic.StoreInt32(&r.taken, 0)
}

// hazardSet is a point-in-time snapshot of every non-nil address currently
// published across every record in the registry (§4.B enumerate_all).
type hazardSet map[unsafe.Pointer]struct{}

func (d *domain) enumerateAll() hazardSet {
	h := make(hazardSet)
	for r := (*record)(atomic.LoadPointer(&d.head)); r != nil; r = r.next {
		for i := 0; i < numHazardSlots; i++ {
			if addr := r.readSlot(i); addr != nil {
				h[addr] = struct{}{}
			}
		}
	}
	return h
}

func (d *domain) recordCount() int64 {
	return atomic.LoadInt64(&d.numRecords)
}
