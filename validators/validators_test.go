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

package validators

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/gocollect/aggregate"
	"github.com/aaronlmathis/gocollect/core"
)

func dishValidator() *RecordValidator {
	return NewRecordValidator([]string{"name", "calories"},
		WithFieldValidator("calories", FieldValidator{DataType: FieldTypeNumber, MinValue: 0, MaxValue: 2000}),
		WithFieldValidator("type", FieldValidator{DataType: FieldTypeString, AllowedValues: []interface{}{"MEAT", "FISH", "OTHER"}}),
		WithFieldValidator("name", FieldValidator{DataType: FieldTypeString, Pattern: regexp.MustCompile(`^[a-z ]+$`)}),
	)
}

func TestRecordValidator(t *testing.T) {
	v := dishValidator()
	tests := []struct {
		name   string
		record core.Record
		errMsg string
	}{
		{"valid", core.Record{"name": "pork", "calories": 800, "type": "MEAT"}, ""},
		{"nil optional field", core.Record{"name": "pork", "calories": 800.0, "type": nil}, ""},
		{"missing required", core.Record{"name": "pork"}, "missing required field: calories"},
		{"wrong type", core.Record{"name": "pork", "calories": "lots"}, "invalid type"},
		{"below minimum", core.Record{"name": "ice", "calories": -5}, "below minimum"},
		{"above maximum", core.Record{"name": "lard", "calories": 9000}, "above maximum"},
		{"not allowed", core.Record{"name": "tofu", "calories": 100, "type": "VEGAN"}, "not in allowed values"},
		{"pattern", core.Record{"name": "Pork!", "calories": 100}, "does not match pattern"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			include, err := v.ShouldInclude(context.Background(), tt.record)
			if tt.errMsg == "" {
				require.NoError(t, err)
				assert.True(t, include)
				return
			}
			require.Error(t, err)
			assert.False(t, include)
			assert.True(t, strings.Contains(err.Error(), tt.errMsg), err.Error())
		})
	}
}

func TestQuality(t *testing.T) {
	records := []core.Record{
		{"name": "pork", "type": "MEAT"},
		{"name": "beef", "type": nil},
		{"name": "rice"},
		{"name": "salmon", "type": "FISH"},
	}
	report := aggregate.Collect(records, Quality("name", "type"))
	assert.Equal(t, int64(4), report.Records)
	assert.Equal(t, int64(0), report.NullCounts["name"])
	assert.Equal(t, 0.5, report.NullRate("type"))

	assert.NoError(t, report.Check(4, 0.5))
	assert.ErrorContains(t, report.Check(4, 0.25), "field type has null rate 0.50")
	assert.ErrorContains(t, report.Check(10, 1), "insufficient records")

	assert.Zero(t, aggregate.Collect(nil, Quality("x")).NullRate("x"))
}

func TestQuality_PerBucket(t *testing.T) {
	var records []core.Record
	for i := 0; i < 300; i++ {
		r := core.Record{"type": "MEAT", "name": "dish"}
		if i%3 == 0 {
			r["type"] = "FISH"
			r["name"] = nil
		}
		records = append(records, r)
	}
	byType := func(r core.Record) string { return r["type"].(string) }
	c := aggregate.GroupingByWith(byType, Quality("name"))

	got, err := aggregate.CollectParallel(context.Background(), records, c, 3)
	require.NoError(t, err)
	assert.Equal(t, aggregate.Collect(records, c), got)
	assert.Equal(t, 1.0, got["FISH"].NullRate("name"))
	assert.Equal(t, 0.0, got["MEAT"].NullRate("name"))
}
