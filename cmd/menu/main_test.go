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

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() config {
	return config{LogLevel: "info", Workers: 2, CalorieThreshold: 500, DietLimit: 400, NormalLimit: 700}
}

func TestRun_Report(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), defaultConfig(), &out))

	report := out.String()
	assert.Contains(t, report, "dishes per type: {FISH=2, MEAT=3, OTHER=4}")
	assert.Contains(t, report, "dishes by caloric level: {DIET=[chicken rice season fruit prawns], FAT=[pork], NORMAL=[beef french fries pizza salmon]}")
	assert.Contains(t, report, "caloric dishes, filtered before grouping: {MEAT=[pork beef], OTHER=[french fries pizza]}")
	assert.Contains(t, report, "caloric dishes, filtered per type: {FISH=[], MEAT=[pork beef], OTHER=[french fries pizza]}")
	assert.Contains(t, report, "FISH=[delicious fresh roasted tasty]")
	assert.Contains(t, report, "  MEAT: {DIET=[chicken], FAT=[pork], NORMAL=[beef]}")
	assert.Contains(t, report, "most caloric dish: pork")
	assert.Contains(t, report, "total calories: 4200")
	assert.Contains(t, report, "average calories: 466.67")
	assert.Contains(t, report, `{"avg_calories":375,"dishes":2,"max_calories":450,"min_calories":300,"names":"prawns, salmon","total_calories":750,"type":"FISH"}`)
	assert.Contains(t, report, "short menu: pork, beef, chicken, french fries, rice, season fruit, pizza, prawns, salmon")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("COLLECT_WORKERS", "4")
	t.Setenv("CALORIE_THRESHOLD", "600")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 600.0, cfg.CalorieThreshold)
	assert.Equal(t, 400, cfg.DietLimit)
}

func TestLoadConfig_InvalidLimits(t *testing.T) {
	t.Setenv("DIET_LIMIT", "800")
	_, err := loadConfig()
	assert.Error(t, err)
}
