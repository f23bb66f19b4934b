// retire.go: retire-and-scan engine (component C of the reclamation domain)
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package lfset

import "unsafe"

// retiredEntry pairs a retired node's address with the function that frees
// it once no hazard slot anywhere protects it.
type retiredEntry struct {
	addr unsafe.Pointer
	dtor func(unsafe.Pointer)
}

// minScanThreshold is the floor applied to the auto-computed scan
// threshold so a domain with very few registered records still reclaims
// promptly (§4.C "Threshold policy").
const minScanThreshold = 4

// scanMultiplier sets the auto-computed threshold to twice the number of
// registered hazard records (not hazard slots; each record has
// numHazardSlots slots).
const scanMultiplier = 2

// retire appends (addr, dtor) to r's retired-list. Must be called exactly
// once per node, only by the goroutine that currently owns r (true by
// construction: r is only reachable here while taken==1 and held by the
// caller's own acquire/release span).
func (r *record) retire(addr unsafe.Pointer, dtor func(unsafe.Pointer)) {
	r.retired = append(r.retired, retiredEntry{addr: addr, dtor: dtor})
}

// scanThreshold resolves the configured or auto-computed retired-list
// length that triggers an opportunistic scan.
func (d *domain) scanThreshold() int {
	t := d.cfg.Load()
	if t.scanThreshold > 0 {
		return t.scanThreshold
	}
	n := int(d.recordCount()) * scanMultiplier
	if n < minScanThreshold {
		n = minScanThreshold
	}
	return n
}

// maybeScan runs scan on r if its retired-list has crossed the domain's
// threshold. Called after every retire.
func (d *domain) maybeScan(r *record) {
	if len(r.retired) > d.scanThreshold() {
		d.scan(r)
	}
}

// scan reclaims every entry in r's retired-list whose address is not
// currently published in any hazard slot across the whole registry
// (§4.C). It touches only r's own retired-list and the registry (read
// only); it never touches another record's retired-list, so concurrent
// scans never block each other.
func (d *domain) scan(r *record) {
	h := d.enumerateAll()

	kept := r.retired[:0]
	reclaimed := 0
	for _, e := range r.retired {
		if _, protected := h[e.addr]; protected {
			kept = append(kept, e)
			continue
		}
		e.dtor(e.addr)
		reclaimed++
	}
	r.retired = kept

	if d.metrics != nil {
		d.metrics.ScanCompleted(reclaimed, len(r.retired))
	}
	if reclaimed == 0 && len(r.retired) > 0 && d.logger != nil {
		d.logger.Warn("lfset: scan made no progress, all retired nodes still hazard-protected",
			"pending", len(r.retired))
	}
}

// drain forces repeated scans until r's retired-list stops shrinking. Used
// by List.Close to make a best-effort final reclamation pass; it is a
// convenience, not a correctness requirement, since entries that survive
// stay safely attached to r for a later owner to finish (§4.C).
func (d *domain) drain(r *record) {
	for {
		before := len(r.retired)
		if before == 0 {
			return
		}
		d.scan(r)
		if len(r.retired) == before {
			return
		}
	}
}
