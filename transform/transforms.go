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

package transform

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/aaronlmathis/gocollect/core"
)

// Package transform provides record transformers for pipelines and field extractors for
// collectors.
//
// Transformers return core.Transformer implementations and always copy the record.
// Extractors (Field, String, Float, Int, Bool) return plain functions suitable as classifiers
// and mappers for the aggregate package.

// Select creates a transformer that selects only the specified fields from each record.
// Fields not listed are omitted from the output record.
func Select(fields ...string) core.Transformer {
	return core.TransformFunc(func(ctx context.Context, record core.Record) (core.Record, error) {
		result := make(core.Record, len(fields))
		for _, field := range fields {
			if value, exists := record[field]; exists {
				result[field] = value
			}
		}
		return result, nil
	})
}

// Rename creates a transformer that renames fields according to the provided mapping.
// Keys are original field names, values are new field names.
func Rename(mapping map[string]string) core.Transformer {
	return core.TransformFunc(func(ctx context.Context, record core.Record) (core.Record, error) {
		result := make(core.Record, len(record))
		for key, value := range record {
			if newKey, exists := mapping[key]; exists {
				result[newKey] = value
			} else {
				result[key] = value
			}
		}
		return result, nil
	})
}

// AddField creates a transformer that adds a new field with a computed value to each record.
// The value is computed by the provided function, which receives the current record.
func AddField(field string, fn func(core.Record) interface{}) core.Transformer {
	return core.TransformFunc(func(ctx context.Context, record core.Record) (core.Record, error) {
		result := record.Clone()
		result[field] = fn(record)
		return result, nil
	})
}

// ConvertType creates a transformer that converts the type of a field to the specified reflect.Type.
// If conversion fails, an error is returned and the record is not modified.
func ConvertType(field string, targetType reflect.Type) core.Transformer {
	return core.TransformFunc(func(ctx context.Context, record core.Record) (core.Record, error) {
		value, exists := record[field]
		if !exists {
			return record.Clone(), nil
		}
		converted, err := convertValue(value, targetType)
		if err != nil {
			return nil, fmt.Errorf("failed to convert field %s: %w", field, err)
		}
		result := record.Clone()
		result[field] = converted
		return result, nil
	})
}

// ToString creates a transformer that converts a field to a string.
func ToString(field string) core.Transformer {
	return ConvertType(field, reflect.TypeOf(""))
}

// ToInt creates a transformer that converts a field to an int.
func ToInt(field string) core.Transformer {
	return ConvertType(field, reflect.TypeOf(0))
}

// ToFloat creates a transformer that converts a field to a float64.
func ToFloat(field string) core.Transformer {
	return ConvertType(field, reflect.TypeOf(0.0))
}

// TrimSpace creates a transformer that trims whitespace from the specified string fields.
func TrimSpace(fields ...string) core.Transformer {
	return mapStrings(strings.TrimSpace, fields)
}

// ToUpper creates a transformer that converts the specified string fields to uppercase.
func ToUpper(fields ...string) core.Transformer {
	return mapStrings(strings.ToUpper, fields)
}

func mapStrings(fn func(string) string, fields []string) core.Transformer {
	return core.TransformFunc(func(ctx context.Context, record core.Record) (core.Record, error) {
		result := record.Clone()
		for _, field := range fields {
			if str, ok := record[field].(string); ok {
				result[field] = fn(str)
			}
		}
		return result, nil
	})
}

// Field returns an extractor yielding the raw value of field, or nil when absent.
func Field(field string) func(core.Record) interface{} {
	return func(record core.Record) interface{} {
		return record[field]
	}
}

// String returns an extractor yielding field formatted as a string. Absent fields yield "".
func String(field string) func(core.Record) string {
	return func(record core.Record) string {
		switch v := record[field].(type) {
		case nil:
			return ""
		case string:
			return v
		default:
			return fmt.Sprintf("%v", v)
		}
	}
}

// Float returns an extractor yielding field as a float64. Absent or unconvertible values yield 0.
func Float(field string) func(core.Record) float64 {
	return func(record core.Record) float64 {
		f, err := convertToFloat(record[field])
		if err != nil {
			return 0
		}
		return f
	}
}

// Int returns an extractor yielding field as an int. Absent or unconvertible values yield 0.
func Int(field string) func(core.Record) int {
	return func(record core.Record) int {
		i, err := convertToInt(record[field])
		if err != nil {
			return 0
		}
		return i
	}
}

// Bool returns an extractor yielding field as a bool. Absent or unconvertible values yield false.
func Bool(field string) func(core.Record) bool {
	return func(record core.Record) bool {
		b, err := convertToBool(record[field])
		return err == nil && b
	}
}

// convertValue converts a value to the specified reflect.Type for use in type conversion transformers.
func convertValue(value interface{}, targetType reflect.Type) (interface{}, error) {
	if value == nil {
		return reflect.Zero(targetType).Interface(), nil
	}
	if reflect.TypeOf(value) == targetType {
		return value, nil
	}

	switch targetType.Kind() {
	case reflect.String:
		return fmt.Sprintf("%v", value), nil
	case reflect.Int:
		return convertToInt(value)
	case reflect.Float64:
		return convertToFloat(value)
	case reflect.Bool:
		return convertToBool(value)
	default:
		return nil, fmt.Errorf("unsupported target type: %s", targetType)
	}
}

// convertToInt attempts to convert a value to int.
func convertToInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("cannot convert %T to int", value)
	}
}

// convertToFloat attempts to convert a value to float64.
func convertToFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		if f, ok := core.ToFloat64(value); ok {
			return f, nil
		}
		return 0, fmt.Errorf("cannot convert %T to float64", value)
	}
}

// convertToBool attempts to convert a value to bool.
func convertToBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case string:
		return strconv.ParseBool(strings.TrimSpace(v))
	case bool:
		return v, nil
	case int:
		return v != 0, nil
	default:
		return false, fmt.Errorf("cannot convert %T to bool", value)
	}
}
