// retire_test.go: tests for the retire-and-scan reclamation engine
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package lfset

import (
	"testing"
	"unsafe"
)

func newTestDomain() *domain {
	cfg := DefaultConfig()
	cfg.ScanThreshold = 2
	_ = cfg.Validate()
	return newDomain(cfg)
}

func TestScan_ReclaimsUnprotectedEntries(t *testing.T) {
	d := newTestDomain()
	r := d.acquire()

	var destroyed []unsafe.Pointer
	dtor := func(p unsafe.Pointer) { destroyed = append(destroyed, p) }

	a := unsafe.Pointer(&struct{ x int }{1})
	b := unsafe.Pointer(&struct{ x int }{2})

	r.retire(a, dtor)
	r.retire(b, dtor)

	d.scan(r)

	if len(destroyed) != 2 {
		t.Fatalf("scan() destroyed %d entries, want 2", len(destroyed))
	}
	if len(r.retired) != 0 {
		t.Fatalf("retired list should be empty after a clean scan, got %d", len(r.retired))
	}
}

func TestScan_SkipsHazardProtectedEntries(t *testing.T) {
	d := newTestDomain()
	r1 := d.acquire()
	r2 := d.acquire()

	var destroyed []unsafe.Pointer
	dtor := func(p unsafe.Pointer) { destroyed = append(destroyed, p) }

	protectedAddr := unsafe.Pointer(&struct{ x int }{1})
	freeAddr := unsafe.Pointer(&struct{ x int }{2})

	r2.protect(slotCur, protectedAddr)

	r1.retire(protectedAddr, dtor)
	r1.retire(freeAddr, dtor)

	d.scan(r1)

	if len(destroyed) != 1 || destroyed[0] != freeAddr {
		t.Fatalf("scan() destroyed %v, want only the unprotected address", destroyed)
	}
	if len(r1.retired) != 1 || r1.retired[0].addr != protectedAddr {
		t.Fatal("protected entry should remain in the retired list")
	}
}

func TestMaybeScan_TriggersAtThreshold(t *testing.T) {
	d := newTestDomain()
	r := d.acquire()

	dtor := func(unsafe.Pointer) {}
	for i := 0; i < 3; i++ {
		r.retire(unsafe.Pointer(&struct{ x int }{i}), dtor)
		d.maybeScan(r)
	}

	if len(r.retired) >= 3 {
		t.Fatal("maybeScan() never triggered a scan despite crossing the threshold")
	}
}

func TestDrain_EmptiesRetiredList(t *testing.T) {
	d := newTestDomain()
	r := d.acquire()

	dtor := func(unsafe.Pointer) {}
	for i := 0; i < 5; i++ {
		r.retire(unsafe.Pointer(&struct{ x int }{i}), dtor)
	}

	d.drain(r)

	if len(r.retired) != 0 {
		t.Fatalf("drain() left %d entries retired, want 0", len(r.retired))
	}
}
