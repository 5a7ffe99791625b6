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

// Mapping applies transform to each element before handing it to downstream.
func Mapping[T, U, A, R any](transform func(T) U, downstream Collector[U, A, R]) Collector[T, A, R] {
	return New(
		downstream.Supplier,
		func(a A, t T) A { return downstream.Accumulate(a, transform(t)) },
		downstream.Combine,
		downstream.Finish,
		downstream.Characteristics(),
	)
}

// Filtering hands downstream only the elements matching predicate. Used as a grouping
// downstream it keeps every observed key, possibly with an empty result; use FilterSlice
// or a pipeline Filter to drop elements before they are classified.
func Filtering[T, A, R any](predicate func(T) bool, downstream Collector[T, A, R]) Collector[T, A, R] {
	return New(
		downstream.Supplier,
		func(a A, t T) A {
			if predicate(t) {
				return downstream.Accumulate(a, t)
			}
			return a
		},
		downstream.Combine,
		downstream.Finish,
		downstream.Characteristics(),
	)
}

// FlatMapping expands each element into zero or more sub-elements, each handed to downstream.
func FlatMapping[T, U, A, R any](expand func(T) []U, downstream Collector[U, A, R]) Collector[T, A, R] {
	return New(
		downstream.Supplier,
		func(a A, t T) A {
			for _, u := range expand(t) {
				a = downstream.Accumulate(a, u)
			}
			return a
		},
		downstream.Combine,
		downstream.Finish,
		downstream.Characteristics(),
	)
}

// CollectingAndThen applies finisher to the result of downstream.
func CollectingAndThen[T, A, R, RR any](downstream Collector[T, A, R], finisher func(R) RR) Collector[T, A, RR] {
	return New(
		downstream.Supplier,
		downstream.Accumulate,
		downstream.Combine,
		func(a A) RR { return finisher(downstream.Finish(a)) },
		downstream.Characteristics()&^core.IdentityFinish,
	)
}

type teeState[A1, A2 any] struct {
	first  A1
	second A2
}

// Teeing feeds every element to both first and second and merges their results.
func Teeing[T, A1, R1, A2, R2, R any](
	first Collector[T, A1, R1],
	second Collector[T, A2, R2],
	merger func(R1, R2) R,
) Collector[T, teeState[A1, A2], R] {
	ch := first.Characteristics() & second.Characteristics() & core.Unordered
	return New(
		func() teeState[A1, A2] {
			return teeState[A1, A2]{first: first.Supplier(), second: second.Supplier()}
		},
		func(s teeState[A1, A2], t T) teeState[A1, A2] {
			s.first = first.Accumulate(s.first, t)
			s.second = second.Accumulate(s.second, t)
			return s
		},
		func(l, r teeState[A1, A2]) teeState[A1, A2] {
			return teeState[A1, A2]{
				first:  first.Combine(l.first, r.first),
				second: second.Combine(l.second, r.second),
			}
		},
		func(s teeState[A1, A2]) R {
			return merger(first.Finish(s.first), second.Finish(s.second))
		},
		ch,
	)
}

// FilterSlice returns the elements matching predicate, in encounter order. Filtering before
// grouping removes a key entirely when none of its elements survive.
func FilterSlice[T any](elements []T, predicate func(T) bool) []T {
	out := make([]T, 0, len(elements))
	for _, e := range elements {
		if predicate(e) {
			out = append(out, e)
		}
	}
	return out
}
