// lfsetload is a small load-generation CLI for exercising a lfset.List
// under concurrent Insert/Delete/Find traffic, useful for eyeballing
// reclamation behavior and throughput under contention.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"fmt"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	flashflags "github.com/agilira/flash-flags"
	"github.com/agilira/lfset"
)

func main() {
	fs := flashflags.New("lfsetload")
	workers := fs.Int("workers", 8, "number of concurrent goroutines")
	ops := fs.Int("ops", 200_000, "total operations to issue across all workers")
	keyspace := fs.Int("keyspace", 10_000, "range of integer values operations draw from")
	scanThreshold := fs.Int("scan-threshold", 0, "retired-list length that triggers a reclamation scan (0 = auto)")
	debug := fs.Bool("debug", false, "enable debug-build assertions")

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "lfsetload:", err)
		os.Exit(1)
	}

	if err := run(*workers, *ops, *keyspace, *scanThreshold, *debug); err != nil {
		fmt.Fprintln(os.Stderr, "lfsetload:", err)
		os.Exit(1)
	}
}

func run(workers, ops, keyspace, scanThreshold int, debug bool) error {
	if workers <= 0 || ops <= 0 || keyspace <= 0 {
		return lfset.NewErrInvalidConfig("workers/ops/keyspace", fmt.Sprintf("%d/%d/%d", workers, ops, keyspace))
	}

	l := lfset.NewOrdered[int](lfset.Config{
		ScanThreshold: scanThreshold,
		Debug:         debug,
	})
	defer func() {
		if err := l.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "lfsetload: close:", err)
		}
	}()

	var inserted, deleted, found, exhausted int64
	opsPerWorker := ops / workers

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(seed))
			for i := 0; i < opsPerWorker; i++ {
				v := rnd.Intn(keyspace)
				switch rnd.Intn(3) {
				case 0:
					ok, err := l.Insert(v)
					if err != nil {
						atomic.AddInt64(&exhausted, 1)
						continue
					}
					if ok {
						atomic.AddInt64(&inserted, 1)
					}
				case 1:
					if l.Delete(v) {
						atomic.AddInt64(&deleted, 1)
					}
				default:
					if l.Find(v) {
						atomic.AddInt64(&found, 1)
					}
				}
			}
		}(int64(w) + 1)
	}
	wg.Wait()
	elapsed := time.Since(start)

	stats := l.Stats()
	fmt.Printf("elapsed:        %s\n", elapsed)
	fmt.Printf("ops/sec:        %.0f\n", float64(ops)/elapsed.Seconds())
	fmt.Printf("inserted:       %d\n", inserted)
	fmt.Printf("deleted:        %d\n", deleted)
	fmt.Printf("found:          %d\n", found)
	fmt.Printf("exhausted:      %d\n", exhausted)
	fmt.Printf("final size:     %d\n", stats.Size)
	fmt.Printf("nodes allocated: %d\n", stats.NodesAllocated)
	fmt.Printf("nodes destroyed: %d\n", stats.NodesDestroyed)
	fmt.Printf("hazard records: %d\n", stats.HazardRecords)

	return nil
}
