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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/gocollect/aggregate"
	"github.com/aaronlmathis/gocollect/core"
)

func apply(t *testing.T, tr core.Transformer, r core.Record) core.Record {
	t.Helper()
	out, err := tr.Transform(context.Background(), r)
	require.NoError(t, err)
	return out
}

func TestRecordTransformers(t *testing.T) {
	in := core.Record{"name": "  pizza ", "calories": "550", "veg": "true"}

	assert.Equal(t, core.Record{"name": "  pizza "}, apply(t, Select("name", "missing"), in))
	assert.Equal(t, core.Record{"title": "  pizza ", "calories": "550", "veg": "true"},
		apply(t, Rename(map[string]string{"name": "title"}), in))

	trimmed := apply(t, TrimSpace("name"), in)
	assert.Equal(t, "pizza", trimmed["name"])
	assert.Equal(t, "  pizza ", in["name"], "input must not be modified")

	assert.Equal(t, "  PIZZA ", apply(t, ToUpper("name"), in)["name"])
	assert.Equal(t, 550, apply(t, ToInt("calories"), in)["calories"])
	assert.Equal(t, 550.0, apply(t, ToFloat("calories"), in)["calories"])
	assert.Equal(t, "550", apply(t, ToString("calories"), core.Record{"calories": 550})["calories"])

	withLen := apply(t, AddField("len", func(r core.Record) interface{} { return len(r) }), in)
	assert.Equal(t, 3, withLen["len"])
}

func TestConvertType_Error(t *testing.T) {
	_, err := ToInt("calories").Transform(context.Background(), core.Record{"calories": "lots"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to convert field calories")

	out := apply(t, ToInt("missing"), core.Record{"a": 1})
	assert.Equal(t, core.Record{"a": 1}, out)
}

func TestExtractors(t *testing.T) {
	r := core.Record{"name": "salmon", "calories": 450.0, "count": "3", "veg": false, "id": 7}

	assert.Equal(t, "salmon", String("name")(r))
	assert.Equal(t, "7", String("id")(r))
	assert.Equal(t, "", String("missing")(r))
	assert.Equal(t, 450.0, Float("calories")(r))
	assert.Equal(t, 0.0, Float("name")(r))
	assert.Equal(t, 3, Int("count")(r))
	assert.Equal(t, 450, Int("calories")(r))
	assert.False(t, Bool("veg")(r))
	assert.False(t, Bool("missing")(r))
	assert.Equal(t, 7, Field("id")(r))
	assert.Nil(t, Field("missing")(r))
}

func TestExtractors_AsCollectorFunctions(t *testing.T) {
	records := []core.Record{
		{"type": "MEAT", "calories": 800},
		{"type": "FISH", "calories": 300.0},
		{"type": "MEAT", "calories": "400"},
	}
	got := aggregate.Collect(records, aggregate.GroupingByWith(String("type"), aggregate.Summing(Float("calories"))))
	assert.Equal(t, map[string]float64{"MEAT": 1200, "FISH": 300}, got)
}
