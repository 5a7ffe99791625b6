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

// validators.go - Record validation and data quality collectors
package validators

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/aaronlmathis/gocollect/aggregate"
	"github.com/aaronlmathis/gocollect/core"
)

// FieldValidator defines validation rules for individual fields
type FieldValidator struct {
	DataType      FieldDataType  // Expected data type
	Pattern       *regexp.Regexp // Regex pattern for string fields
	MinValue      interface{}    // Minimum value (for numeric fields)
	MaxValue      interface{}    // Maximum value (for numeric fields)
	AllowedValues []interface{}  // Whitelist of allowed values
}

// FieldDataType represents expected data types for validation
type FieldDataType string

const (
	FieldTypeString FieldDataType = "string"
	FieldTypeNumber FieldDataType = "number"
	FieldTypeBool   FieldDataType = "bool"
	FieldTypeAny    FieldDataType = "any"
)

// RecordValidator checks each record against required fields and field rules.
// As a core.Filter it reports invalid records as errors, so the pipeline's error strategy
// decides whether they fail the aggregation or are skipped.
type RecordValidator struct {
	RequiredFields  []string
	FieldValidators map[string]FieldValidator
}

// RecordOption is a functional option for configuring RecordValidator
type RecordOption func(*RecordValidator)

// WithFieldValidator adds a field-specific validator
func WithFieldValidator(fieldName string, validator FieldValidator) RecordOption {
	return func(rv *RecordValidator) {
		rv.FieldValidators[fieldName] = validator
	}
}

// NewRecordValidator creates a record validator with functional options
func NewRecordValidator(requiredFields []string, options ...RecordOption) *RecordValidator {
	rv := &RecordValidator{
		RequiredFields:  requiredFields,
		FieldValidators: make(map[string]FieldValidator),
	}
	for _, option := range options {
		option(rv)
	}
	return rv
}

// ShouldInclude implements core.Filter. Valid records are included; invalid ones yield an error.
func (rv *RecordValidator) ShouldInclude(ctx context.Context, record core.Record) (bool, error) {
	if err := rv.Validate(record); err != nil {
		return false, err
	}
	return true, nil
}

// Validate returns the first rule the record breaks.
func (rv *RecordValidator) Validate(record core.Record) error {
	for _, field := range rv.RequiredFields {
		if _, exists := record[field]; !exists {
			return fmt.Errorf("missing required field: %s", field)
		}
	}

	names := make([]string, 0, len(rv.FieldValidators))
	for name := range rv.FieldValidators {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, exists := record[name]
		if !exists || value == nil {
			continue
		}
		if err := validateValue(name, value, rv.FieldValidators[name]); err != nil {
			return err
		}
	}
	return nil
}

// validateValue validates a single field value against its validator
func validateValue(fieldName string, value interface{}, validator FieldValidator) error {
	if !matchesType(value, validator.DataType) {
		return fmt.Errorf("field %s has invalid type %T, expected %s", fieldName, value, validator.DataType)
	}

	if validator.Pattern != nil {
		if str, ok := value.(string); ok && !validator.Pattern.MatchString(str) {
			return fmt.Errorf("field %s value '%s' does not match pattern", fieldName, str)
		}
	}

	if val, ok := core.ToFloat64(value); ok {
		if min, ok := core.ToFloat64(validator.MinValue); ok && val < min {
			return fmt.Errorf("field %s value %v below minimum %v", fieldName, value, validator.MinValue)
		}
		if max, ok := core.ToFloat64(validator.MaxValue); ok && val > max {
			return fmt.Errorf("field %s value %v above maximum %v", fieldName, value, validator.MaxValue)
		}
	}

	if len(validator.AllowedValues) > 0 {
		for _, allowed := range validator.AllowedValues {
			if value == allowed {
				return nil
			}
		}
		return fmt.Errorf("field %s value '%v' not in allowed values", fieldName, value)
	}
	return nil
}

// matchesType checks if a value matches the expected data type
func matchesType(value interface{}, expectedType FieldDataType) bool {
	switch expectedType {
	case FieldTypeString:
		_, ok := value.(string)
		return ok
	case FieldTypeNumber:
		_, ok := core.ToFloat64(value)
		return ok
	case FieldTypeBool:
		_, ok := value.(bool)
		return ok
	default:
		return true
	}
}

// QualityReport summarizes null values across a set of records.
type QualityReport struct {
	Records    int64
	NullCounts map[string]int64
}

// NullRate returns the share of records where field was absent or nil.
func (q QualityReport) NullRate(field string) float64 {
	if q.Records == 0 {
		return 0
	}
	return float64(q.NullCounts[field]) / float64(q.Records)
}

// Check verifies the record count and that no tracked field exceeds maxNullRate.
func (q QualityReport) Check(minRecords int64, maxNullRate float64) error {
	if q.Records < minRecords {
		return fmt.Errorf("insufficient records: got %d, need at least %d", q.Records, minRecords)
	}
	fields := make([]string, 0, len(q.NullCounts))
	for f := range q.NullCounts {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		if rate := q.NullRate(f); rate > maxNullRate {
			return fmt.Errorf("field %s has null rate %.2f, exceeds maximum %.2f", f, rate, maxNullRate)
		}
	}
	return nil
}

// Quality returns a collector counting records and null values of the given fields.
// It can be used as a grouping downstream to check quality per bucket.
func Quality(fields ...string) aggregate.Collector[core.Record, QualityReport, QualityReport] {
	return aggregate.NewIdentity(
		func() QualityReport {
			report := QualityReport{NullCounts: make(map[string]int64, len(fields))}
			for _, f := range fields {
				report.NullCounts[f] = 0
			}
			return report
		},
		func(q QualityReport, r core.Record) QualityReport {
			q.Records++
			for _, f := range fields {
				if r[f] == nil {
					q.NullCounts[f]++
				}
			}
			return q
		},
		func(l, r QualityReport) QualityReport {
			l.Records += r.Records
			for f, n := range r.NullCounts {
				l.NullCounts[f] += n
			}
			return l
		},
		core.Unordered,
	)
}
