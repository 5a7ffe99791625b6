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

package gocollect

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronlmathis/gocollect/aggregate"
	"github.com/aaronlmathis/gocollect/core"
	"github.com/aaronlmathis/gocollect/filter"
	"github.com/aaronlmathis/gocollect/readers"
	"github.com/aaronlmathis/gocollect/transform"
)

const menuJSON = `{"name":"pork","vegetarian":false,"calories":800,"type":"MEAT"}
{"name":"beef","vegetarian":false,"calories":700,"type":"MEAT"}
{"name":"chicken","vegetarian":false,"calories":400,"type":"MEAT"}
{"name":"french fries","vegetarian":true,"calories":530,"type":"OTHER"}
{"name":"rice","vegetarian":true,"calories":350,"type":"OTHER"}
{"name":"season fruit","vegetarian":true,"calories":120,"type":"OTHER"}
{"name":"pizza","vegetarian":true,"calories":550,"type":"OTHER"}
{"name":"prawns","vegetarian":false,"calories":300,"type":"FISH"}
{"name":"salmon","vegetarian":false,"calories":450,"type":"FISH"}
`

func newMenuPipeline(t *testing.T, configure func(*PipelineBuilder)) *Pipeline {
	t.Helper()
	b := NewPipeline().From(readers.NewJSONReader(strings.NewReader(menuJSON)))
	if configure != nil {
		configure(b)
	}
	p, err := b.Build()
	require.NoError(t, err)
	return p
}

var (
	byType = transform.String("type")
	names  = aggregate.Mapping(transform.String("name"), aggregate.ToList[string]())
)

func TestBuild_RequiresSource(t *testing.T) {
	_, err := NewPipeline().Build()
	assert.ErrorIs(t, err, core.ErrNoSource)
}

func TestCollect_CountingByType(t *testing.T) {
	p := newMenuPipeline(t, nil)
	got, err := Collect(context.Background(), p, aggregate.GroupingByWith(byType, aggregate.Counting[core.Record]()))
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"MEAT": 3, "FISH": 2, "OTHER": 4}, got)
}

func TestCollect_FilterBeforeGroupDropsKeys(t *testing.T) {
	p := newMenuPipeline(t, func(b *PipelineBuilder) {
		b.Filter(filter.GreaterThan("calories", 500))
	})
	got, err := Collect(context.Background(), p, aggregate.GroupingByWith(byType, names))
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"MEAT":  {"pork", "beef"},
		"OTHER": {"french fries", "pizza"},
	}, got)
}

func TestCollect_FilterAsDownstreamKeepsKeys(t *testing.T) {
	p := newMenuPipeline(t, nil)
	caloric := filter.Predicate(filter.GreaterThan("calories", 500))
	got, err := Collect(context.Background(), p, aggregate.GroupingByWith(byType, aggregate.Filtering(caloric, names)))
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"MEAT":  {"pork", "beef"},
		"OTHER": {"french fries", "pizza"},
		"FISH":  {},
	}, got)
}

func TestCollect_TransformersRunBeforeFilters(t *testing.T) {
	p := newMenuPipeline(t, func(b *PipelineBuilder) {
		b.Transform(transform.ToUpper("name")).
			Where(func(ctx context.Context, r core.Record) (bool, error) {
				return strings.HasPrefix(r["name"].(string), "P"), nil
			})
	})
	got, err := Collect(context.Background(), p, aggregate.Mapping(transform.String("name"), aggregate.JoiningWith(",")))
	require.NoError(t, err)
	assert.Equal(t, "PORK,PIZZA,PRAWNS", got)
}

func TestCollect_NilCollector(t *testing.T) {
	p := newMenuPipeline(t, nil)
	var c aggregate.Collector[core.Record, int64, int64]
	_, err := Collect(context.Background(), p, c)
	assert.ErrorIs(t, err, core.ErrNilCollector)
}

func TestCollect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Collect(ctx, newMenuPipeline(t, nil), aggregate.Counting[core.Record]())
	assert.ErrorIs(t, err, context.Canceled)
}

var errOdd = errors.New("odd calories")

func failOnOdd(ctx context.Context, r core.Record) (core.Record, error) {
	if int(r["calories"].(float64))%100 != 0 {
		return nil, errOdd
	}
	return r, nil
}

func TestErrorStrategy_FailFast(t *testing.T) {
	p := newMenuPipeline(t, func(b *PipelineBuilder) { b.Map(failOnOdd) })
	_, err := Collect(context.Background(), p, aggregate.Counting[core.Record]())
	require.ErrorIs(t, err, errOdd)
	assert.Contains(t, err.Error(), "record 4")
}

func TestErrorStrategy_SkipErrors(t *testing.T) {
	var handled int
	p := newMenuPipeline(t, func(b *PipelineBuilder) {
		b.Map(failOnOdd).
			WithErrorStrategy(core.SkipErrors).
			WithErrorHandler(core.ErrorHandlerFunc(func(ctx context.Context, r core.Record, err error) error {
				handled++
				return nil
			}))
	})
	got, err := Collect(context.Background(), p, aggregate.Counting[core.Record]())
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)
	assert.Equal(t, 5, handled)
	assert.Empty(t, p.Errors())
}

func TestErrorStrategy_CollectErrors(t *testing.T) {
	var buf bytes.Buffer
	p := newMenuPipeline(t, func(b *PipelineBuilder) {
		b.Map(failOnOdd).
			WithErrorStrategy(core.CollectErrors).
			WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	})
	got, err := Collect(context.Background(), p, aggregate.Counting[core.Record]())
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)
	require.Len(t, p.Errors(), 5)
	for _, e := range p.Errors() {
		assert.ErrorIs(t, e, errOdd)
	}
	assert.Contains(t, buf.String(), "skipping record")
	assert.Contains(t, buf.String(), `"collected":4`)
}

func TestErrorStrategy_HandlerStops(t *testing.T) {
	stop := errors.New("stop")
	p := newMenuPipeline(t, func(b *PipelineBuilder) {
		b.Map(failOnOdd).
			WithErrorStrategy(core.SkipErrors).
			WithErrorHandler(core.ErrorHandlerFunc(func(context.Context, core.Record, error) error { return stop }))
	})
	_, err := Collect(context.Background(), p, aggregate.Counting[core.Record]())
	assert.ErrorIs(t, err, stop)
}

func TestErrorStrategy_MalformedSourceLine(t *testing.T) {
	src := readers.NewJSONReader(strings.NewReader("{\"type\":\"A\"}\nnot json\n{\"type\":\"B\"}\n"))
	p, err := NewPipeline().From(src).WithErrorStrategy(core.SkipErrors).Build()
	require.NoError(t, err)

	got, err := Collect(context.Background(), p, aggregate.Mapping(byType, aggregate.JoiningWith("")))
	require.NoError(t, err)
	assert.Equal(t, "AB", got)
}

func TestErrorStrategy_OversizedSourceLineTerminates(t *testing.T) {
	big := `{"type":"` + strings.Repeat("x", readers.MaxLineSize) + `"}`
	input := "{\"type\":\"A\"}\n" + big + "\n{\"type\":\"B\"}\n"

	for _, strategy := range []core.ErrorStrategy{core.SkipErrors, core.CollectErrors} {
		t.Run(strategy.String(), func(t *testing.T) {
			src := readers.NewJSONReader(strings.NewReader(input))
			p, err := NewPipeline().From(src).WithErrorStrategy(strategy).Build()
			require.NoError(t, err)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			got, err := Collect(ctx, p, aggregate.Mapping(byType, aggregate.JoiningWith("")))
			require.NoError(t, err)
			assert.Equal(t, "A", got)
			if strategy == core.CollectErrors {
				assert.Len(t, p.Errors(), 1)
			}
		})
	}
}

func TestCollectParallel_MatchesSequential(t *testing.T) {
	var lines strings.Builder
	for i := 0; i < 40; i++ {
		lines.WriteString(menuJSON)
	}
	build := func() *Pipeline {
		p, err := NewPipeline().From(readers.NewJSONReader(strings.NewReader(lines.String()))).Build()
		require.NoError(t, err)
		return p
	}
	c := aggregate.GroupingByWith(byType, aggregate.Summarizing(transform.Float("calories")))

	sequential, err := Collect(context.Background(), build(), c)
	require.NoError(t, err)
	parallel, err := CollectParallel(context.Background(), build(), c, 4)
	require.NoError(t, err)
	assert.Equal(t, sequential, parallel)
	assert.Equal(t, int64(120), parallel["MEAT"].Count)
}

func TestRecords(t *testing.T) {
	p := newMenuPipeline(t, func(b *PipelineBuilder) {
		b.Filter(filter.Equals("type", "FISH")).Transform(transform.Select("name", "type"))
	})
	records, err := p.Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.Record{
		{"name": "prawns", "type": "FISH"},
		{"name": "salmon", "type": "FISH"},
	}, records)
}
