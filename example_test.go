// example_test.go: godoc examples for lfset
//
// These examples appear in the generated documentation on pkg.go.dev
// and are executed as part of the test suite to ensure they remain valid.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package lfset_test

import (
	"fmt"

	"github.com/agilira/lfset"
)

// ExampleNewOrdered demonstrates basic set creation and usage.
func ExampleNewOrdered() {
	l := lfset.NewOrdered[int](lfset.DefaultConfig())
	defer l.Close()

	l.Insert(42)

	if l.Find(42) {
		fmt.Println("Found 42 in the set")
	}

	// Output: Found 42 in the set
}

// ExampleList_Insert demonstrates inserting values and observing
// duplicate rejection.
func ExampleList_Insert() {
	l := lfset.NewOrdered[int](lfset.DefaultConfig())
	defer l.Close()

	first, _ := l.Insert(7)
	second, _ := l.Insert(7)

	fmt.Printf("first insert: %v, second insert: %v\n", first, second)

	// Output: first insert: true, second insert: false
}

// ExampleList_Delete demonstrates removing a value.
func ExampleList_Delete() {
	l := lfset.NewOrdered[int](lfset.DefaultConfig())
	defer l.Close()

	l.Insert(10)

	fmt.Println(l.Delete(10))
	fmt.Println(l.Delete(10))

	// Output: true
	// false
}

// ExampleNew demonstrates a custom ordering over a struct type.
func ExampleNew() {
	type Job struct {
		Priority int
		Name     string
	}

	l := lfset.New[Job](func(a, b Job) bool {
		return a.Priority < b.Priority
	}, lfset.DefaultConfig())
	defer l.Close()

	l.Insert(Job{Priority: 5, Name: "cleanup"})
	l.Insert(Job{Priority: 1, Name: "urgent"})

	fmt.Println(l.Len())

	// Output: 2
}

// ExampleList_Stats demonstrates observing diagnostic counters.
func ExampleList_Stats() {
	l := lfset.NewOrdered[int](lfset.DefaultConfig())
	defer l.Close()

	l.Insert(1)
	l.Insert(2)
	l.Delete(1)

	stats := l.Stats()
	fmt.Println(stats.Size)

	// Output: 1
}
