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

package filter

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/aaronlmathis/gocollect/core"
)

// Package filter provides composable record predicates.
//
// Every function returns a core.Filter. Added to a pipeline, a filter drops records before
// they are classified, so a key whose records are all rejected never appears. Wrapped with
// Predicate and passed to aggregate.Filtering, the same filter runs inside each bucket and
// the key is kept with an empty result.

// fieldFilter builds a filter that excludes records missing field and otherwise applies match
// to the field value.
func fieldFilter(field string, match func(value interface{}) bool) core.Filter {
	return core.FilterFunc(func(ctx context.Context, record core.Record) (bool, error) {
		value, exists := record[field]
		if !exists {
			return false, nil
		}
		return match(value), nil
	})
}

// NotNull creates a filter that excludes records where the specified field is nil or empty
func NotNull(field string) core.Filter {
	return fieldFilter(field, func(value interface{}) bool {
		if value == nil {
			return false
		}
		if str, ok := value.(string); ok && str == "" {
			return false
		}
		return true
	})
}

// Equals creates a filter that includes records where the field equals the specified value
func Equals(field string, expectedValue interface{}) core.Filter {
	return fieldFilter(field, func(value interface{}) bool {
		return reflect.DeepEqual(value, expectedValue)
	})
}

// Contains creates a filter that includes records where the string field contains the substring
func Contains(field, substring string) core.Filter {
	return fieldFilter(field, func(value interface{}) bool {
		str, ok := value.(string)
		return ok && strings.Contains(str, substring)
	})
}

// GreaterThan creates a filter that includes records where the numeric field is greater than the value
func GreaterThan(field string, threshold float64) core.Filter {
	return numericFilter(field, func(num float64) bool { return num > threshold })
}

// LessThan creates a filter that includes records where the numeric field is less than the value
func LessThan(field string, threshold float64) core.Filter {
	return numericFilter(field, func(num float64) bool { return num < threshold })
}

// Between creates a filter that includes records where the numeric field is between min and max (inclusive)
func Between(field string, min, max float64) core.Filter {
	return numericFilter(field, func(num float64) bool { return num >= min && num <= max })
}

func numericFilter(field string, match func(float64) bool) core.Filter {
	return fieldFilter(field, func(value interface{}) bool {
		num, ok := core.ToFloat64(value)
		return ok && match(num)
	})
}

// In creates a filter that includes records where the field value is in the provided set
func In(field string, values ...interface{}) core.Filter {
	valueSet := make(map[interface{}]bool)
	for _, v := range values {
		valueSet[v] = true
	}
	return fieldFilter(field, func(value interface{}) bool {
		return valueSet[value]
	})
}

// And creates a filter that requires all provided filters to pass
func And(filters ...core.Filter) core.Filter {
	return core.FilterFunc(func(ctx context.Context, record core.Record) (bool, error) {
		for _, filter := range filters {
			include, err := filter.ShouldInclude(ctx, record)
			if err != nil {
				return false, err
			}
			if !include {
				return false, nil
			}
		}
		return true, nil
	})
}

// Or creates a filter that requires at least one of the provided filters to pass
func Or(filters ...core.Filter) core.Filter {
	return core.FilterFunc(func(ctx context.Context, record core.Record) (bool, error) {
		for _, filter := range filters {
			include, err := filter.ShouldInclude(ctx, record)
			if err != nil {
				return false, err
			}
			if include {
				return true, nil
			}
		}
		return false, nil
	})
}

// Not creates a filter that negates the provided filter
func Not(filter core.Filter) core.Filter {
	return core.FilterFunc(func(ctx context.Context, record core.Record) (bool, error) {
		include, err := filter.ShouldInclude(ctx, record)
		if err != nil {
			return false, err
		}
		return !include, nil
	})
}

// Custom creates a filter using a user-provided predicate function
func Custom(predicate func(core.Record) bool) core.Filter {
	return core.FilterFunc(func(ctx context.Context, record core.Record) (bool, error) {
		return predicate(record), nil
	})
}

// Predicate adapts a filter to the plain predicate expected by aggregate.Filtering and
// aggregate.PartitioningBy. Collector functions cannot fail, so a filter error is a broken
// caller contract and panics.
func Predicate(filter core.Filter) func(core.Record) bool {
	return func(record core.Record) bool {
		include, err := filter.ShouldInclude(context.Background(), record)
		if err != nil {
			panic(fmt.Errorf("filter predicate: %w", err))
		}
		return include
	}
}
