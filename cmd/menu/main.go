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
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/aaronlmathis/gocollect"
	"github.com/aaronlmathis/gocollect/aggregate"
	"github.com/aaronlmathis/gocollect/core"
	"github.com/aaronlmathis/gocollect/filter"
	"github.com/aaronlmathis/gocollect/internal/logutil"
	"github.com/aaronlmathis/gocollect/readers"
	"github.com/aaronlmathis/gocollect/transform"
	"github.com/aaronlmathis/gocollect/validators"
	"github.com/aaronlmathis/gocollect/writers"
)

//go:embed menu.jsonl
var menuData []byte

var dishTags = map[string][]string{
	"pork":         {"greasy", "salty"},
	"beef":         {"salty", "roasted"},
	"chicken":      {"fried", "crisp"},
	"french fries": {"greasy", "fried"},
	"rice":         {"light", "natural"},
	"season fruit": {"fresh", "natural"},
	"pizza":        {"tasty", "salty"},
	"prawns":       {"tasty", "roasted"},
	"salmon":       {"delicious", "fresh"},
}

var (
	dishType = transform.String("type")
	dishName = transform.String("name")
	calories = transform.Int("calories")
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logutil.ConfigureLogger(cfg.LogLevel)

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("menu report failed")
	}
}

func loadMenu(ctx context.Context) ([]core.Record, error) {
	p, err := gocollect.NewPipeline().
		From(readers.NewJSONReader(bytes.NewReader(menuData))).
		Filter(validators.NewRecordValidator([]string{"name", "calories", "type"},
			validators.WithFieldValidator("calories", validators.FieldValidator{DataType: validators.FieldTypeNumber, MinValue: 0}),
			validators.WithFieldValidator("type", validators.FieldValidator{
				DataType:      validators.FieldTypeString,
				AllowedValues: []interface{}{"MEAT", "FISH", "OTHER"},
			}),
		)).
		Transform(transform.ToInt("calories")).
		WithErrorStrategy(core.SkipErrors).
		WithLogger(log.Logger).
		Build()
	if err != nil {
		return nil, err
	}
	return p.Records(ctx)
}

func run(ctx context.Context, cfg config, out io.Writer) error {
	menu, err := loadMenu(ctx)
	if err != nil {
		return fmt.Errorf("load menu: %w", err)
	}
	log.Info().Int("dishes", len(menu)).Int("workers", cfg.Workers).Msg("menu loaded")
	if err := aggregate.Collect(menu, validators.Quality("name", "vegetarian")).Check(1, 0); err != nil {
		return fmt.Errorf("menu quality: %w", err)
	}

	level := func(r core.Record) string {
		switch c := calories(r); {
		case c <= cfg.DietLimit:
			return "DIET"
		case c <= cfg.NormalLimit:
			return "NORMAL"
		default:
			return "FAT"
		}
	}
	caloric := filter.Predicate(filter.GreaterThan("calories", cfg.CalorieThreshold))
	names := aggregate.Mapping(dishName, aggregate.ToList[string]())
	tags := func(r core.Record) []string { return dishTags[dishName(r)] }

	counts, err := aggregate.CollectParallel(ctx, menu, aggregate.GroupingByWith(dishType, aggregate.Counting[core.Record]()), cfg.Workers)
	if err != nil {
		return err
	}
	printSection(out, "dishes per type", counts)

	printSection(out, "dishes by type", aggregate.Collect(menu, aggregate.GroupingByWith(dishType, names)))
	printSection(out, "dishes by caloric level", aggregate.Collect(menu, aggregate.GroupingByWith(level, names)))
	printSection(out, "caloric dishes, filtered before grouping",
		aggregate.Collect(aggregate.FilterSlice(menu, caloric), aggregate.GroupingByWith(dishType, names)))
	printSection(out, "caloric dishes, filtered per type",
		aggregate.Collect(menu, aggregate.GroupingByWith(dishType, aggregate.Filtering(caloric, names))))
	printSection(out, "tags by type",
		aggregate.Collect(menu, aggregate.GroupingByWith(dishType, aggregate.CollectingAndThen(
			aggregate.FlatMapping(tags, aggregate.ToSet[string]()), sortedKeys[struct{}]))))

	nested := aggregate.Collect(menu, aggregate.GroupingByWith(dishType, aggregate.GroupingByWith(level, names)))
	fmt.Fprintln(out, "dishes by type and caloric level:")
	for _, k := range sortedKeys(nested) {
		fmt.Fprintf(out, "  %s: %s\n", k, formatMap(nested[k]))
	}

	vegetarian := aggregate.Collect(menu, aggregate.PartitioningByWith(transform.Bool("vegetarian"), names))
	fmt.Fprintf(out, "vegetarian: %v\nnot vegetarian: %v\n", vegetarian[true], vegetarian[false])

	byCalories := func(a, b core.Record) int { return calories(a) - calories(b) }
	if most, ok := aggregate.Collect(menu, aggregate.MaxBy(byCalories)).Get(); ok {
		fmt.Fprintf(out, "most caloric dish: %s\n", dishName(most))
	}

	total := aggregate.Collect(menu, aggregate.Reducing(0, calories, func(a, b int) int { return a + b }))
	stats := aggregate.Collect(menu, aggregate.Summarizing(calories))
	fmt.Fprintf(out, "total calories: %d\naverage calories: %.2f\n%s\n", total, stats.Average(), stats)
	fmt.Fprintf(out, "short menu: %s\n", aggregate.Collect(menu, aggregate.Mapping(dishName, aggregate.JoiningWith(", "))))

	summary, err := aggregate.NewGroupBy("type").
		WithLogger(log.Logger).
		Count("dishes").
		Sum("calories", "total_calories").
		Avg("calories", "avg_calories").
		Min("calories", "min_calories").
		Max("calories", "max_calories").
		Join("name", "names", ", ").
		Process(ctx, readers.NewSliceReader(menu...))
	if err != nil {
		return fmt.Errorf("summary: %w", err)
	}
	fmt.Fprintln(out, "summary by type:")
	sink := writers.NewJSONWriter(out)
	if err := sink.WriteAll(ctx, summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return sink.Flush()
}

func printSection[V any](out io.Writer, title string, m map[string]V) {
	fmt.Fprintf(out, "%s: %s\n", title, formatMap(m))
}

func formatMap[V any](m map[string]V) string {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range sortedKeys(m) {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s=%v", k, m[k])
	}
	buf.WriteByte('}')
	return buf.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
