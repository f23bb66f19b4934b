// list.go: the Harris-Michael ordered linked list (component D)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package lfset

import (
	"cmp"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	"unsafe"
)

// LessFunc is the strict weak ordering a List is built over. Equality is
// derived as !less(a,b) && !less(b,a), per §6's element requirements.
type LessFunc[T any] func(a, b T) bool

// List is a concurrent ordered set: a singly-linked list whose mutating
// operations (Insert, Delete, Find) proceed without locks, using only
// atomic compare-and-swap. See SPEC_FULL.md for the full design.
type List[T any] struct {
	head *node[T]
	less LessFunc[T]
	dom  *domain
	cfg  Config

	size int64 // atomic, relaxed, approximate (§3 "size counter")

	allocated int64 // atomic, diagnostic: nodes constructed
	destroyed int64 // atomic, diagnostic: nodes destroyed
}

// New creates an empty List ordered by less. less must be non-nil, pure,
// and stable for the lifetime of any value stored in the list (§6).
func New[T any](less LessFunc[T], cfg Config) *List[T] {
	if less == nil {
		panic("lfset: less function must not be nil")
	}
	_ = cfg.Validate()

	var zero T
	return &List[T]{
		head: newNode[T](zero, nil),
		less: less,
		dom:  newDomain(cfg),
		cfg:  cfg,
	}
}

// NewOrdered creates an empty List over any cmp.Ordered type using the
// natural < ordering.
func NewOrdered[T cmp.Ordered](cfg Config) *List[T] {
	return New[T](func(a, b T) bool { return a < b }, cfg)
}

func (l *List[T]) equals(a, b T) bool {
	return !l.less(a, b) && !l.less(b, a)
}

func (l *List[T]) newAllocatedNode(value T, next *node[T]) *node[T] {
	atomic.AddInt64(&l.allocated, 1)
	return newNode(value, next)
}

// destroyNode is the retire-list destructor: once a scan determines no
// hazard slot protects this address, the node is no longer referenced
// from anywhere in the data structure, and the only thing left to do is
// record that it has been destroyed and let Go's garbage collector
// reclaim the memory (§3's "Lifecycle: ... finally destroyed by a scan").
func (l *List[T]) destroyNode(addr unsafe.Pointer) {
	atomic.AddInt64(&l.destroyed, 1)
	_ = (*node[T])(addr)
}

// Search is the engine of every operation (§4.D.1). It returns a live prev
// whose next currently points at cur, and cur is either nil or a live node
// with value >= the sought value; found is true iff cur's value equals
// it. prev and cur remain hazard-protected (via rec's slotPrev/slotCur)
// for as long as the caller holds rec.
func (l *List[T]) search(rec *record, value T) (prev, cur *node[T], found bool) {
retry:
	prev = l.head
	cur, _ = prev.loadNext()

	for {
		if cur == nil {
			rec.clear(slotCur)
		} else {
			rec.protect(slotCur, cur.addr())
		}
		// Re-validate: prev may have advanced past cur since we read it.
		if after, _ := prev.loadNext(); after != cur {
			goto retry
		}

		if cur == nil {
			return prev, nil, false
		}

		next, marked := cur.loadNext()

		if marked {
			// cur is logically deleted; help finish the physical unlink.
			if !prev.casNext(cur, false, next, false) {
				goto retry
			}
			atomic.AddInt64(&l.size, -1)
			rec.retire(cur.addr(), l.destroyNode)
			l.dom.maybeScan(rec)
			cur = next
			continue
		}

		// Re-validate before trusting cur's value: cur could have been
		// unlinked by another thread between the loads above.
		if after, _ := prev.loadNext(); after != cur {
			goto retry
		}

		if !l.less(cur.value, value) {
			if l.cfg.Debug {
				l.assertPrevNotMarked(prev)
			}
			return prev, cur, l.equals(cur.value, value)
		}

		rec.swapCurIntoPrev()
		prev, cur = cur, next
	}
}

// assertPrevNotMarked is the debug-build postcondition check SPEC_FULL.md
// restores from the original reference's Search-exit assertions. It never
// changes control flow; a violation only gets logged, since the invariant
// (prev is always live) is structurally guaranteed by construction in
// this implementation and a failure here would indicate a bug worth
// surfacing, not a recoverable condition.
func (l *List[T]) assertPrevNotMarked(prev *node[T]) {
	if _, marked := prev.loadNext(); marked {
		l.cfg.Logger.Error("lfset: search postcondition violated", "error", NewErrMarkInvariant())
	}
}

// Insert adds value if not already present. It returns true if the value
// was inserted, false if it was already present. err is non-nil only on
// allocation/registry failure (§6, §7); a false return with a nil error
// means "duplicate," not failure.
func (l *List[T]) Insert(value T) (inserted bool, err error) {
	start := l.dom.now()
	rec, err := l.dom.acquireChecked(true)
	if err != nil {
		return false, err
	}
	defer l.dom.release(rec)

	newN := l.newAllocatedNode(value, nil)

	for {
		prev, cur, found := l.search(rec, value)
		if found {
			// Never linked in; no other thread can hold a reference.
			atomic.AddInt64(&l.destroyed, 1)
			l.dom.metrics.InsertCompleted(false, l.dom.now()-start)
			return false, nil
		}

		newN.storeNext(cur, false)
		if prev.casNext(cur, false, newN, false) {
			atomic.AddInt64(&l.size, 1)
			l.dom.metrics.InsertCompleted(true, l.dom.now()-start)
			return true, nil
		}
		l.backoff()
	}
}

// Delete removes value if present, using the two-phase logical-then-
// physical protocol of §4.D.3. It returns true iff a node was logically
// deleted (the linearization point), regardless of whether this call or a
// helper eventually completes the physical unlink.
func (l *List[T]) Delete(value T) bool {
	start := l.dom.now()
	rec := l.dom.acquire()
	defer l.dom.release(rec)

	var prev, cur *node[T]
	var next *node[T]
	for {
		var found bool
		prev, cur, found = l.search(rec, value)
		if !found {
			l.dom.metrics.DeleteCompleted(false, l.dom.now()-start)
			return false
		}

		var marked bool
		next, marked = cur.loadNext()
		if marked {
			l.backoff()
			continue
		}
		if cur.casNext(next, false, next, true) {
			break
		}
		l.backoff()
	}

	// Phase 1 succeeded: cur is logically deleted. Attempt the physical
	// unlink ourselves; if we lose the race, some Search will help.
	if prev.casNext(cur, false, next, false) {
		atomic.AddInt64(&l.size, -1)
		rec.retire(cur.addr(), l.destroyNode)
		l.dom.maybeScan(rec)
	} else {
		l.search(rec, value)
	}

	l.dom.metrics.DeleteCompleted(true, l.dom.now()-start)
	return true
}

// Find reports whether value is currently present. It does not change the
// set's contents; like every Search, it physically unlinks and retires any
// logically-deleted node it passes.
func (l *List[T]) Find(value T) bool {
	start := l.dom.now()
	rec := l.dom.acquire()
	defer l.dom.release(rec)

	_, _, found := l.search(rec, value)
	l.dom.metrics.FindCompleted(found, l.dom.now()-start)
	return found
}

// Len returns an approximate element count. It is a relaxed counter, not
// linearizable, and may transiently disagree with a concurrent sweep
// (§5 "Size counter").
func (l *List[T]) Len() int {
	return int(atomic.LoadInt64(&l.size))
}

// backoff is a pure performance hint between CAS retries (§5 "Scheduling
// model"); it is never required for correctness and never blocks forward
// progress of other goroutines.
func (l *List[T]) backoff() {
	t := l.dom.cfg.Load()
	d := time.Duration(t.backoffBaseDelay)
	if d <= 0 {
		return
	}
	max := time.Duration(t.backoffMaxDelay)
	if d > max {
		d = max
	}
	time.Sleep(d)
}

// Stats reports diagnostic counters for the list and its reclamation
// domain. None of these are linearizable; they are relaxed snapshots for
// observability only.
type Stats struct {
	Size           int
	NodesAllocated int64
	NodesDestroyed int64
	HazardRecords  int64
}

func (l *List[T]) Stats() Stats {
	return Stats{
		Size:           l.Len(),
		NodesAllocated: atomic.LoadInt64(&l.allocated),
		NodesDestroyed: atomic.LoadInt64(&l.destroyed),
		HazardRecords:  l.dom.recordCount(),
	}
}

// DebugString walks the list single-threaded, in the manner of the
// reference implementation's Dump(), and renders every reachable node's
// value and mark state. It is a diagnostic tool only: calling it
// concurrently with mutations is safe (it uses the same hazard-free raw
// loads Search uses for its own bookkeeping) but the result is a snapshot
// that may already be stale by the time it is returned.
func (l *List[T]) DebugString() string {
	var b strings.Builder
	p := l.head
	for p != nil {
		next, marked := p.loadNext()
		fmt.Fprintf(&b, "%v(marked=%v)->", p.value, marked)
		p = next
	}
	b.WriteString("nil")
	return b.String()
}

// Close releases resources held by the list's reclamation domain. It
// drains as much of the retired-list as a final scan allows (§4.C
// "Thread exit") and, when Config.Debug is set, asserts that no hazard
// slot in the registry still references a node reachable from head — the
// invariant §9 asks debug builds to check before destruction. Close
// assumes every goroutine that called into the list has already stopped
// doing so (§4.D.6: destroying a list with live operations in flight is a
// programming error and is undefined).
func (l *List[T]) Close() error {
	rec := l.dom.acquire()
	l.dom.drain(rec)
	l.dom.release(rec)

	if !l.cfg.Debug {
		return nil
	}

	hazards := l.dom.enumerateAll()
	return l.assertNoHazardsReachable(hazards)
}

// assertNoHazardsReachable walks every live node reachable from head and
// fails if any of them is still published in a hazard slot.
func (l *List[T]) assertNoHazardsReachable(hazards hazardSet) error {
	p, _ := l.head.loadNext()
	for p != nil {
		if _, protected := hazards[p.addr()]; protected {
			return NewErrDestroyWhileActive(p.addr())
		}
		p, _ = p.loadNext()
	}
	return nil
}
