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

// Aggregator is a collector bound to one live container, for callers that receive elements
// one at a time rather than as a slice.
type Aggregator[T, R any] interface {
	// Add folds one element into the aggregation.
	Add(element T)
	// Result finishes the aggregation. The aggregator must be Reset before further Adds.
	Result() R
	// Reset discards the accumulated state.
	Reset()
	// Count returns the number of elements added since the last Reset.
	Count() int
}

type boundAggregator[T, A, R any] struct {
	collector Collector[T, A, R]
	container A
	count     int
}

// NewAggregator binds a fresh container of c to an Aggregator.
func NewAggregator[T, A, R any](c Collector[T, A, R]) Aggregator[T, R] {
	return &boundAggregator[T, A, R]{collector: c, container: c.Supplier()}
}

func (b *boundAggregator[T, A, R]) Add(element T) {
	b.container = b.collector.Accumulate(b.container, element)
	b.count++
}

func (b *boundAggregator[T, A, R]) Result() R {
	return b.collector.Finish(b.container)
}

func (b *boundAggregator[T, A, R]) Reset() {
	b.container = b.collector.Supplier()
	b.count = 0
}

func (b *boundAggregator[T, A, R]) Count() int {
	return b.count
}
