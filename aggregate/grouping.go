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

import "github.com/aaronlmathis/gocollect/core"

// GroupingBy classifies elements by key and gathers each bucket into a slice that keeps
// encounter order.
func GroupingBy[T any, K comparable](classifier func(T) K) Collector[T, map[K][]T, map[K][]T] {
	return GroupingByWith(classifier, ToList[T]())
}

// GroupingByWith classifies elements by key and aggregates each bucket with downstream.
// A key appears in the result only if at least one element was classified to it. Passing
// another grouping collector as downstream produces a multilevel bucket map.
func GroupingByWith[T any, K comparable, A, R any](classifier func(T) K, downstream Collector[T, A, R]) Collector[T, map[K]A, map[K]R] {
	return New(
		func() map[K]A { return make(map[K]A) },
		func(m map[K]A, t T) map[K]A {
			k := classifier(t)
			container, ok := m[k]
			if !ok {
				container = downstream.Supplier()
			}
			m[k] = downstream.Accumulate(container, t)
			return m
		},
		func(l, r map[K]A) map[K]A {
			for k, rc := range r {
				if lc, ok := l[k]; ok {
					l[k] = downstream.Combine(lc, rc)
				} else {
					l[k] = rc
				}
			}
			return l
		},
		func(m map[K]A) map[K]R {
			out := make(map[K]R, len(m))
			for k, c := range m {
				out[k] = downstream.Finish(c)
			}
			return out
		},
		downstream.Characteristics()&core.Unordered,
	)
}

type partitionState[A any] struct {
	matched   A
	unmatched A
}

// PartitioningBy splits elements into those matching predicate and the rest.
func PartitioningBy[T any](predicate func(T) bool) Collector[T, partitionState[[]T], map[bool][]T] {
	return PartitioningByWith(predicate, ToList[T]())
}

// PartitioningByWith splits elements by predicate and aggregates each side with downstream.
// The result always holds both the true and the false key.
func PartitioningByWith[T, A, R any](predicate func(T) bool, downstream Collector[T, A, R]) Collector[T, partitionState[A], map[bool]R] {
	return New(
		func() partitionState[A] {
			return partitionState[A]{matched: downstream.Supplier(), unmatched: downstream.Supplier()}
		},
		func(s partitionState[A], t T) partitionState[A] {
			if predicate(t) {
				s.matched = downstream.Accumulate(s.matched, t)
			} else {
				s.unmatched = downstream.Accumulate(s.unmatched, t)
			}
			return s
		},
		func(l, r partitionState[A]) partitionState[A] {
			return partitionState[A]{
				matched:   downstream.Combine(l.matched, r.matched),
				unmatched: downstream.Combine(l.unmatched, r.unmatched),
			}
		},
		func(s partitionState[A]) map[bool]R {
			return map[bool]R{
				true:  downstream.Finish(s.matched),
				false: downstream.Finish(s.unmatched),
			}
		},
		downstream.Characteristics()&core.Unordered,
	)
}

// Group classifies elements into buckets.
func Group[T any, K comparable](elements []T, classifier func(T) K) map[K][]T {
	return Collect(elements, GroupingBy(classifier))
}
