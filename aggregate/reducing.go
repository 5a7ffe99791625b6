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
	"github.com/aaronlmathis/gocollect/core"
)

// Number is the set of numeric types that can be summed and averaged.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Comparator orders two elements: negative when a < b, zero when equal, positive when a > b.
type Comparator[T any] func(a, b T) int

// Reducing folds op(acc, mapper(e)) left to right starting from identity.
// An empty input yields identity. op must be associative for parallel collection.
func Reducing[T, U any](identityValue U, mapper func(T) U, op func(U, U) U) Collector[T, U, U] {
	return NewIdentity(
		func() U { return identityValue },
		func(acc U, t T) U { return op(acc, mapper(t)) },
		op,
	)
}

// ReducingOptional folds elements with op and no identity. An empty input yields an
// absent Optional.
func ReducingOptional[T any](op func(T, T) T) Collector[T, core.Optional[T], core.Optional[T]] {
	return NewIdentity(
		core.None[T],
		func(acc core.Optional[T], t T) core.Optional[T] {
			if v, ok := acc.Get(); ok {
				return core.Some(op(v, t))
			}
			return core.Some(t)
		},
		func(l, r core.Optional[T]) core.Optional[T] {
			lv, lok := l.Get()
			rv, rok := r.Get()
			switch {
			case !lok:
				return r
			case !rok:
				return l
			default:
				return core.Some(op(lv, rv))
			}
		},
	)
}

// Counting counts the elements.
func Counting[T any]() Collector[T, int64, int64] {
	return Reducing(int64(0), func(T) int64 { return 1 }, add[int64])
}

// Summing sums a numeric projection of the elements.
func Summing[T any, N Number](mapper func(T) N) Collector[T, N, N] {
	return Reducing(N(0), mapper, add[N])
}

func add[N Number](a, b N) N { return a + b }

type averageState struct {
	sum   float64
	count int64
}

// Averaging computes the arithmetic mean of a numeric projection. An empty input yields 0.
func Averaging[T any, N Number](mapper func(T) N) Collector[T, averageState, float64] {
	return New(
		func() averageState { return averageState{} },
		func(s averageState, t T) averageState {
			s.sum += float64(mapper(t))
			s.count++
			return s
		},
		func(l, r averageState) averageState {
			return averageState{sum: l.sum + r.sum, count: l.count + r.count}
		},
		func(s averageState) float64 {
			if s.count == 0 {
				return 0
			}
			return s.sum / float64(s.count)
		},
	)
}

// MaxBy keeps the greatest element according to cmp. On ties the first encountered wins.
func MaxBy[T any](cmp Comparator[T]) Collector[T, core.Optional[T], core.Optional[T]] {
	return ReducingOptional(func(a, b T) T {
		if cmp(a, b) >= 0 {
			return a
		}
		return b
	})
}

// MinBy keeps the least element according to cmp. On ties the first encountered wins.
func MinBy[T any](cmp Comparator[T]) Collector[T, core.Optional[T], core.Optional[T]] {
	return ReducingOptional(func(a, b T) T {
		if cmp(a, b) <= 0 {
			return a
		}
		return b
	})
}

// ToList gathers elements into a slice in encounter order.
func ToList[T any]() Collector[T, []T, []T] {
	return NewIdentity(
		func() []T { return make([]T, 0) },
		func(l []T, t T) []T { return append(l, t) },
		func(l, r []T) []T { return append(l, r...) },
	)
}

// ToSet gathers distinct elements.
func ToSet[T comparable]() Collector[T, map[T]struct{}, map[T]struct{}] {
	return NewIdentity(
		func() map[T]struct{} { return make(map[T]struct{}) },
		func(s map[T]struct{}, t T) map[T]struct{} {
			s[t] = struct{}{}
			return s
		},
		func(l, r map[T]struct{}) map[T]struct{} {
			for k := range r {
				l[k] = struct{}{}
			}
			return l
		},
		core.Unordered,
	)
}

// ToMap gathers elements into a map. When two elements produce the same key, merge receives
// the existing value first and the new value second.
func ToMap[T any, K comparable, V any](key func(T) K, value func(T) V, merge func(V, V) V) Collector[T, map[K]V, map[K]V] {
	put := func(m map[K]V, k K, v V) {
		if old, ok := m[k]; ok {
			v = merge(old, v)
		}
		m[k] = v
	}
	return NewIdentity(
		func() map[K]V { return make(map[K]V) },
		func(m map[K]V, t T) map[K]V {
			put(m, key(t), value(t))
			return m
		},
		func(l, r map[K]V) map[K]V {
			for k, v := range r {
				put(l, k, v)
			}
			return l
		},
	)
}

// Reduce folds op(acc, mapper(e)) over elements starting from identity.
func Reduce[T, U any](elements []T, identityValue U, mapper func(T) U, op func(U, U) U) U {
	return Collect(elements, Reducing(identityValue, mapper, op))
}

// ReduceOptional folds elements with op, yielding an absent Optional for an empty input.
func ReduceOptional[T any](elements []T, op func(T, T) T) core.Optional[T] {
	return Collect(elements, ReducingOptional(op))
}

// Count returns the number of elements.
func Count[T any](elements []T) int64 {
	return Collect(elements, Counting[T]())
}
