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
	"fmt"
	"math"

	"github.com/goccy/go-json"
)

// SummaryStatistics holds the count, sum, minimum and maximum of a stream of numbers,
// gathered in a single pass.
//
// An empty SummaryStatistics has Min = +Inf and Max = -Inf, which are the identities of
// min and max, so Combine needs no special case.
type SummaryStatistics struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
}

// NewSummaryStatistics returns statistics over no values.
func NewSummaryStatistics() SummaryStatistics {
	return SummaryStatistics{Min: math.Inf(1), Max: math.Inf(-1)}
}

// Accept records one value.
func (s *SummaryStatistics) Accept(v float64) {
	s.Count++
	s.Sum += v
	s.Min = math.Min(s.Min, v)
	s.Max = math.Max(s.Max, v)
}

// Combine merges other into s.
func (s *SummaryStatistics) Combine(other SummaryStatistics) {
	s.Count += other.Count
	s.Sum += other.Sum
	s.Min = math.Min(s.Min, other.Min)
	s.Max = math.Max(s.Max, other.Max)
}

// Average returns Sum / Count, or 0 when no values were recorded.
func (s SummaryStatistics) Average() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

func (s SummaryStatistics) String() string {
	return fmt.Sprintf("SummaryStatistics{count=%d, sum=%g, min=%g, average=%g, max=%g}",
		s.Count, s.Sum, s.Min, s.Average(), s.Max)
}

// MarshalJSON encodes the statistics with lower-case keys. Min and max are null when no
// values were recorded.
func (s SummaryStatistics) MarshalJSON() ([]byte, error) {
	out := struct {
		Count   int64    `json:"count"`
		Sum     float64  `json:"sum"`
		Min     *float64 `json:"min"`
		Max     *float64 `json:"max"`
		Average float64  `json:"average"`
	}{Count: s.Count, Sum: s.Sum, Average: s.Average()}
	if s.Count > 0 {
		out.Min, out.Max = &s.Min, &s.Max
	}
	return json.Marshal(out)
}

// Summarizing gathers SummaryStatistics over a numeric projection of the elements.
func Summarizing[T any, N Number](mapper func(T) N) Collector[T, SummaryStatistics, SummaryStatistics] {
	return NewIdentity(
		NewSummaryStatistics,
		func(s SummaryStatistics, t T) SummaryStatistics {
			s.Accept(float64(mapper(t)))
			return s
		},
		func(l, r SummaryStatistics) SummaryStatistics {
			l.Combine(r)
			return l
		},
	)
}

// Summarize gathers SummaryStatistics over elements.
func Summarize[T any, N Number](elements []T, mapper func(T) N) SummaryStatistics {
	return Collect(elements, Summarizing(mapper))
}
