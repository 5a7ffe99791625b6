//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 Aaron Mathis aaron.mathis@gmail.com
//
// This file is part of GoCollect.
//
// GoCollect is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GoCollect is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GoCollect. If not, see https://www.gnu.org/licenses/.

package aggregate

import (
	"context"
	"fmt"
	"iter"
	"reflect"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/aaronlmathis/gocollect/core"
)

// Package aggregate provides the collector composition model of GoCollect.
//
// A Collector bundles four operations (supply, accumulate, combine, finish) describing one
// aggregation strategy. Grouping, reduction, statistics and joining are all collectors, and
// adapters wrap any downstream collector, so strategies nest recursively: a grouping can
// delegate each bucket to another grouping, or map elements before they are reduced.
//
// Collectors are plain values. Each call to Supplier returns a fresh container that is owned
// by exactly one goroutine until it is handed to Combine.

// Collector defines one aggregation strategy over elements of type T, using a mutable
// container of type A and producing a result of type R.
type Collector[T, A, R any] interface {
	// Supplier returns a fresh container representing "no elements accumulated yet".
	Supplier() A
	// Accumulate folds one element into the container and returns the updated container.
	Accumulate(container A, element T) A
	// Combine merges two containers built from disjoint partitions, left before right.
	// Ownership of both arguments passes to Combine.
	Combine(left, right A) A
	// Finish converts the container into the visible result.
	Finish(container A) R
	// Characteristics returns the declared properties of the collector.
	Characteristics() core.Characteristics
}

type funcCollector[T, A, R any] struct {
	supplier        func() A
	accumulator     func(A, T) A
	combiner        func(A, A) A
	finisher        func(A) R
	characteristics core.Characteristics
}

func (c *funcCollector[T, A, R]) Supplier() A { return c.supplier() }
func (c *funcCollector[T, A, R]) Accumulate(a A, t T) A { return c.accumulator(a, t) }
func (c *funcCollector[T, A, R]) Combine(l, r A) A { return c.combiner(l, r) }
func (c *funcCollector[T, A, R]) Finish(a A) R { return c.finisher(a) }
func (c *funcCollector[T, A, R]) Characteristics() core.Characteristics { return c.characteristics }

// New creates a collector from its four operations.
func New[T, A, R any](
	supplier func() A,
	accumulator func(A, T) A,
	combiner func(A, A) A,
	finisher func(A) R,
	characteristics ...core.Characteristics,
) Collector[T, A, R] {
	var ch core.Characteristics
	for _, c := range characteristics {
		ch |= c
	}
	return &funcCollector[T, A, R]{
		supplier:        supplier,
		accumulator:     accumulator,
		combiner:        combiner,
		finisher:        finisher,
		characteristics: ch,
	}
}

// NewIdentity creates a collector whose container is its result.
// The IdentityFinish characteristic is always set.
func NewIdentity[T, A any](
	supplier func() A,
	accumulator func(A, T) A,
	combiner func(A, A) A,
	characteristics ...core.Characteristics,
) Collector[T, A, A] {
	return New(supplier, accumulator, combiner, identity[A], append(characteristics, core.IdentityFinish)...)
}

func identity[A any](a A) A { return a }

// Collect runs the collector over elements sequentially, in encounter order.
func Collect[T, A, R any](elements []T, c Collector[T, A, R]) R {
	container := c.Supplier()
	for _, e := range elements {
		container = c.Accumulate(container, e)
	}
	return c.Finish(container)
}

// CollectSeq runs the collector over an iterator sequentially.
func CollectSeq[T, A, R any](seq iter.Seq[T], c Collector[T, A, R]) R {
	container := c.Supplier()
	for e := range seq {
		container = c.Accumulate(container, e)
	}
	return c.Finish(container)
}

// minPartitionSize is the smallest partition worth handing to its own goroutine.
const minPartitionSize = 64

// CollectParallel splits elements into contiguous partitions, accumulates each partition into
// its own container on a separate goroutine and merges the partial containers in partition
// order with Combine. workers <= 0 uses GOMAXPROCS.
//
// Collectors declaring both Concurrent and Unordered share a single container across workers
// instead, and never have Combine called. Sharing requires a pointer, map or channel
// container mutated in place; other containers take the partitioned path.
//
// Cancellation is observed only before a partition starts.
func CollectParallel[T, A, R any](ctx context.Context, elements []T, c Collector[T, A, R], workers int) (R, error) {
	var zero R
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if maxWorkers := (len(elements) + minPartitionSize - 1) / minPartitionSize; workers > maxWorkers {
		workers = maxWorkers
	}
	if workers <= 1 {
		return Collect(elements, c), nil
	}

	shared := c.Characteristics().Has(core.Concurrent|core.Unordered) && sharable[A]()
	partials := make([]A, workers)
	var container A
	if shared {
		container = c.Supplier()
	}

	g, gctx := errgroup.WithContext(ctx)
	for w, part := range partition(elements, workers) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if shared {
				for _, e := range part {
					c.Accumulate(container, e)
				}
				return nil
			}
			acc := c.Supplier()
			for _, e := range part {
				acc = c.Accumulate(acc, e)
			}
			partials[w] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return zero, fmt.Errorf("parallel collect: %w", err)
	}

	if shared {
		return c.Finish(container), nil
	}
	return c.Finish(combineAll(c, partials)), nil
}

// sharable reports whether in-place mutation of an A is visible through every copy of it.
func sharable[A any]() bool {
	switch reflect.TypeFor[A]().Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan:
		return true
	}
	return false
}

// partition splits elements into n contiguous, order-preserving sub-slices.
func partition[T any](elements []T, n int) [][]T {
	parts := make([][]T, 0, n)
	size := len(elements) / n
	rem := len(elements) % n
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rem {
			end++
		}
		parts = append(parts, elements[start:end:end])
		start = end
	}
	return parts
}

// combineAll folds partial containers left to right.
func combineAll[T, A, R any](c Collector[T, A, R], partials []A) A {
	acc := partials[0]
	for _, p := range partials[1:] {
		acc = c.Combine(acc, p)
	}
	return acc
}

// Erase hides the container and result types of a collector so that collectors of
// different shapes can be held together. Combining a container produced by another
// erased collector panics with core.ErrCombinerMismatch.
//
// The erased container is not safe for concurrent use, so Concurrent is cleared.
func Erase[T, A, R any](c Collector[T, A, R]) Collector[T, any, any] {
	owner := &erasedOwner{}
	unwrap := func(x any) A {
		box, ok := x.(*erasedContainer[A])
		if !ok || box.owner != owner {
			panic(core.ErrCombinerMismatch)
		}
		return box.value
	}
	return New(
		func() any { return &erasedContainer[A]{owner: owner, value: c.Supplier()} },
		func(x any, t T) any {
			v := unwrap(x)
			box := x.(*erasedContainer[A])
			box.value = c.Accumulate(v, t)
			return box
		},
		func(l, r any) any {
			lv, rv := unwrap(l), unwrap(r)
			box := l.(*erasedContainer[A])
			box.value = c.Combine(lv, rv)
			return box
		},
		func(x any) any { return c.Finish(unwrap(x)) },
		c.Characteristics()&^(core.IdentityFinish|core.Concurrent),
	)
}

type erasedOwner struct{ _ byte }

type erasedContainer[A any] struct {
	owner *erasedOwner
	value A
}
