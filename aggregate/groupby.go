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
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aaronlmathis/gocollect/core"
)

// GroupBy groups records by the values of one or more fields and computes named aggregate
// fields for each group. It is a record-oriented front end to GroupingByWith.
type GroupBy struct {
	groupFields []string
	outputs     []string
	collectors  map[string]Collector[core.Record, any, any]
	logger      zerolog.Logger
}

// NewGroupBy creates a new GroupBy over the given fields
func NewGroupBy(groupFields ...string) *GroupBy {
	return &GroupBy{
		groupFields: groupFields,
		collectors:  make(map[string]Collector[core.Record, any, any]),
		logger:      zerolog.Nop(),
	}
}

// WithLogger sets the logger used to report group statistics.
func (g *GroupBy) WithLogger(logger zerolog.Logger) *GroupBy {
	g.logger = logger
	return g
}

// Aggregate adds an arbitrary record collector under outputField.
func (g *GroupBy) Aggregate(outputField string, c Collector[core.Record, any, any]) *GroupBy {
	if _, exists := g.collectors[outputField]; !exists {
		g.outputs = append(g.outputs, outputField)
	}
	g.collectors[outputField] = c
	return g
}

// Count adds a record count for the specified output field
func (g *GroupBy) Count(outputField string) *GroupBy {
	return g.Aggregate(outputField, Erase(Counting[core.Record]()))
}

// Sum adds the sum of a numeric field. Non-numeric values are ignored.
func (g *GroupBy) Sum(field, outputField string) *GroupBy {
	return g.Aggregate(outputField, Erase(Filtering(hasNumber(field), Summing(numberField(field)))))
}

// Avg adds the average of a numeric field. Non-numeric values are ignored.
func (g *GroupBy) Avg(field, outputField string) *GroupBy {
	return g.Aggregate(outputField, Erase(Filtering(hasNumber(field), Averaging(numberField(field)))))
}

// Min adds the minimum value of a field, or nil when the group holds none.
func (g *GroupBy) Min(field, outputField string) *GroupBy {
	return g.Aggregate(outputField, Erase(optionalField(field, MinBy[any](compareValues))))
}

// Max adds the maximum value of a field, or nil when the group holds none.
func (g *GroupBy) Max(field, outputField string) *GroupBy {
	return g.Aggregate(outputField, Erase(optionalField(field, MaxBy[any](compareValues))))
}

// Stats adds SummaryStatistics over a numeric field.
func (g *GroupBy) Stats(field, outputField string) *GroupBy {
	return g.Aggregate(outputField, Erase(Filtering(hasNumber(field), Summarizing(numberField(field)))))
}

// Join adds the string values of a field joined by delimiter.
func (g *GroupBy) Join(field, outputField, delimiter string) *GroupBy {
	present := func(r core.Record) bool { return r[field] != nil }
	value := func(r core.Record) string { return fmt.Sprint(r[field]) }
	return g.Aggregate(outputField, Erase(Filtering(present, Mapping(value, JoiningWith(delimiter)))))
}

// Collector returns the collector computing one output record per group key.
func (g *GroupBy) Collector() Collector[core.Record, map[string]*groupState, map[string]core.Record] {
	return GroupingByWith(g.buildGroupKey, g.rowCollector())
}

// Process drains source and returns one record per group, ordered by group values.
func (g *GroupBy) Process(ctx context.Context, source core.DataSource) ([]core.Record, error) {
	defer source.Close()

	c := g.Collector()
	container := c.Supplier()
	read := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := source.Read(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("group by: read record %d: %w", read, err)
		}
		container = c.Accumulate(container, record)
		read++
	}

	results := g.Rows(c.Finish(container))
	g.logger.Debug().
		Strs("fields", g.groupFields).
		Int("records", read).
		Int("groups", len(results)).
		Msg("group by complete")
	return results, nil
}

// Rows flattens the output of Collector into records sorted by group key encoding.
func (g *GroupBy) Rows(groups map[string]core.Record) []core.Record {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	results := make([]core.Record, 0, len(keys))
	for _, k := range keys {
		results = append(results, groups[k])
	}
	return results
}

type groupState struct {
	values core.Record
	parts  []any
}

// rowCollector runs every configured collector over the records of one group and emits
// a record holding the group field values and each output field.
func (g *GroupBy) rowCollector() Collector[core.Record, *groupState, core.Record] {
	outputs := slices.Clone(g.outputs)
	collectors := make([]Collector[core.Record, any, any], len(outputs))
	for i, out := range outputs {
		collectors[i] = g.collectors[out]
	}
	fields := slices.Clone(g.groupFields)

	return New(
		func() *groupState {
			s := &groupState{parts: make([]any, len(collectors))}
			for i, c := range collectors {
				s.parts[i] = c.Supplier()
			}
			return s
		},
		func(s *groupState, r core.Record) *groupState {
			if s.values == nil {
				s.values = make(core.Record, len(fields))
				for _, f := range fields {
					s.values[f] = r[f]
				}
			}
			for i, c := range collectors {
				s.parts[i] = c.Accumulate(s.parts[i], r)
			}
			return s
		},
		func(l, r *groupState) *groupState {
			if l.values == nil {
				l.values = r.values
			}
			for i, c := range collectors {
				l.parts[i] = c.Combine(l.parts[i], r.parts[i])
			}
			return l
		},
		func(s *groupState) core.Record {
			result := s.values.Clone()
			for i, c := range collectors {
				result[outputs[i]] = c.Finish(s.parts[i])
			}
			return result
		},
	)
}

// buildGroupKey encodes the type and value of each group field of a record, so 1 and "1"
// fall in different groups. Missing and nil fields encode as empty and share a group.
func (g *GroupBy) buildGroupKey(record core.Record) string {
	keyParts := make([]string, len(g.groupFields))
	for i, field := range g.groupFields {
		if value, exists := record[field]; exists && value != nil {
			keyParts[i] = fmt.Sprintf("%T:%v", value, value)
		}
	}
	return strings.Join(keyParts, "\x1f")
}

func optionalField(field string, c Collector[any, core.Optional[any], core.Optional[any]]) Collector[core.Record, core.Optional[any], any] {
	return Mapping(func(r core.Record) any { return r[field] },
		Filtering(func(v any) bool { return v != nil },
			CollectingAndThen(c, func(o core.Optional[any]) any { return o.OrElse(nil) })))
}

func hasNumber(field string) func(core.Record) bool {
	return func(r core.Record) bool {
		_, ok := core.ToFloat64(r[field])
		return ok
	}
}

func numberField(field string) func(core.Record) float64 {
	return func(r core.Record) float64 {
		v, _ := core.ToFloat64(r[field])
		return v
	}
}

// compareValues orders numbers numerically and strings lexically. Values of unrelated
// types compare equal, so the first one seen is kept.
func compareValues(a, b interface{}) int {
	if fa, ok := core.ToFloat64(a); ok {
		if fb, ok := core.ToFloat64(b); ok {
			return cmp.Compare(fa, fb)
		}
		return 0
	}
	if sa, ok := a.(string); ok {
		if sb, ok := b.(string); ok {
			return strings.Compare(sa, sb)
		}
	}
	return 0
}
