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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/aaronlmathis/gocollect/aggregate"
	"github.com/aaronlmathis/gocollect/core"
)

// Package gocollect provides an in-process aggregation engine for Go.
//
// Core Concepts:
//   - Collector: a value bundling supply, accumulate, combine and finish operations (see package aggregate).
//   - DataSource: Interface for reading records from an in-memory sequence or decoder.
//   - Transformer: Interface for transforming records before they are collected.
//   - Filter: Interface for dropping records before they are classified.
//   - Pipeline: Chainable producer that feeds surviving records into a Collector.
//   - ErrorStrategy: Configurable error handling (fail fast, skip, collect, custom handler).
//
// Example usage:
//
//   pipeline, err := gocollect.NewPipeline().
//       From(readers.NewJSONReader(file)).
//       Filter(filter.GreaterThan("calories", 500)).
//       WithErrorStrategy(core.SkipErrors).
//       Build()
//   if err != nil { log.Fatal(err) }
//   byType, err := gocollect.Collect(ctx, pipeline,
//       aggregate.GroupingByWith(transform.String("type"), aggregate.Counting[core.Record]()))

// PipelineBuilder provides a fluent API for constructing pipelines.
// Use NewPipeline() to create a new builder, then chain From, Transform, Filter and configuration methods.
type PipelineBuilder struct {
	pipeline *Pipeline
}

// NewPipeline creates a new PipelineBuilder.
func NewPipeline() *PipelineBuilder {
	return &PipelineBuilder{
		pipeline: &Pipeline{
			transformers: make([]core.Transformer, 0),
			filters:      make([]core.Filter, 0),
			strategy:     core.FailFast,
			logger:       zerolog.Nop(),
		},
	}
}

// From sets the DataSource for the pipeline.
func (pb *PipelineBuilder) From(source core.DataSource) *PipelineBuilder {
	pb.pipeline.source = source
	return pb
}

// Transform adds a Transformer to the pipeline.
func (pb *PipelineBuilder) Transform(transformer core.Transformer) *PipelineBuilder {
	pb.pipeline.transformers = append(pb.pipeline.transformers, transformer)
	return pb
}

// Filter adds a Filter to the pipeline. Filtered records never reach the collector.
func (pb *PipelineBuilder) Filter(filter core.Filter) *PipelineBuilder {
	pb.pipeline.filters = append(pb.pipeline.filters, filter)
	return pb
}

// Map adds a mapping transformation to the pipeline using a function.
func (pb *PipelineBuilder) Map(fn func(ctx context.Context, record core.Record) (core.Record, error)) *PipelineBuilder {
	return pb.Transform(core.TransformFunc(fn))
}

// Where adds a filtering condition to the pipeline using a function.
func (pb *PipelineBuilder) Where(fn func(ctx context.Context, record core.Record) (bool, error)) *PipelineBuilder {
	return pb.Filter(core.FilterFunc(fn))
}

// WithErrorStrategy sets the error handling strategy for the pipeline.
func (pb *PipelineBuilder) WithErrorStrategy(strategy core.ErrorStrategy) *PipelineBuilder {
	pb.pipeline.strategy = strategy
	return pb
}

// WithErrorHandler sets a custom error handler for the pipeline.
func (pb *PipelineBuilder) WithErrorHandler(handler core.ErrorHandler) *PipelineBuilder {
	pb.pipeline.errorHandler = handler
	return pb
}

// WithLogger sets the logger used for skipped records and run summaries.
func (pb *PipelineBuilder) WithLogger(logger zerolog.Logger) *PipelineBuilder {
	pb.pipeline.logger = logger
	return pb
}

// Build validates and constructs the Pipeline from the builder.
func (pb *PipelineBuilder) Build() (*Pipeline, error) {
	if pb.pipeline.source == nil {
		return nil, core.ErrNoSource
	}
	return pb.pipeline, nil
}

// Pipeline reads records from a DataSource, applies transformers and filters, and hands the
// surviving records to a consumer. A pipeline drains its source once.
type Pipeline struct {
	transformers []core.Transformer
	filters      []core.Filter
	source       core.DataSource
	strategy     core.ErrorStrategy
	errorHandler core.ErrorHandler
	logger       zerolog.Logger
	errors       []error
}

// Collect runs the pipeline and folds every surviving record into c, in encounter order.
func Collect[A, R any](ctx context.Context, p *Pipeline, c aggregate.Collector[core.Record, A, R]) (R, error) {
	var zero R
	if c == nil {
		return zero, core.ErrNilCollector
	}
	container := c.Supplier()
	err := p.run(ctx, func(record core.Record) {
		container = c.Accumulate(container, record)
	})
	if err != nil {
		return zero, err
	}
	return c.Finish(container), nil
}

// CollectParallel drains the pipeline into memory and collects the records with
// aggregate.CollectParallel.
func CollectParallel[A, R any](ctx context.Context, p *Pipeline, c aggregate.Collector[core.Record, A, R], workers int) (R, error) {
	var zero R
	if c == nil {
		return zero, core.ErrNilCollector
	}
	records, err := p.Records(ctx)
	if err != nil {
		return zero, err
	}
	return aggregate.CollectParallel(ctx, records, c, workers)
}

// Records runs the pipeline and returns the surviving records.
func (p *Pipeline) Records(ctx context.Context) ([]core.Record, error) {
	var records []core.Record
	err := p.run(ctx, func(record core.Record) {
		records = append(records, record)
	})
	return records, err
}

// Errors returns the errors gathered under the CollectErrors strategy.
func (p *Pipeline) Errors() []error {
	return p.errors
}

// run reads every record from the source and passes survivors to emit.
func (p *Pipeline) run(ctx context.Context, emit func(core.Record)) error {
	defer p.source.Close()

	var read, emitted, skipped int
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := p.source.Read(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		read++
		if err != nil {
			if err := p.handleError(ctx, read, record, err); err != nil {
				return err
			}
			skipped++
			continue
		}

		// Skip empty records early
		if len(record) == 0 {
			continue
		}

		transformed, err := p.applyTransformations(ctx, record)
		if err != nil {
			if err := p.handleError(ctx, read, record, err); err != nil {
				return err
			}
			skipped++
			continue
		}
		if len(transformed) == 0 {
			continue
		}

		include, err := p.applyFilters(ctx, transformed)
		if err != nil {
			if err := p.handleError(ctx, read, transformed, err); err != nil {
				return err
			}
			skipped++
			continue
		}
		if !include {
			continue
		}

		emit(transformed)
		emitted++
	}

	p.logger.Debug().
		Int("read", read).
		Int("collected", emitted).
		Int("skipped", skipped).
		Str("strategy", p.strategy.String()).
		Msg("pipeline drained")
	return nil
}

// applyFilters applies all configured filters to a record.
func (p *Pipeline) applyFilters(ctx context.Context, record core.Record) (bool, error) {
	for _, filter := range p.filters {
		include, err := filter.ShouldInclude(ctx, record)
		if err != nil {
			return false, err
		}
		if !include {
			return false, nil
		}
	}
	return true, nil
}

// applyTransformations applies all configured transformers to a record in sequence.
func (p *Pipeline) applyTransformations(ctx context.Context, record core.Record) (core.Record, error) {
	current := record
	for _, transformer := range p.transformers {
		transformed, err := transformer.Transform(ctx, current)
		if err != nil {
			return nil, err
		}
		current = transformed
	}
	return current, nil
}

// handleError handles errors according to the pipeline's error strategy and handler.
// Returns an error if processing should stop, or nil to continue.
func (p *Pipeline) handleError(ctx context.Context, position int, record core.Record, err error) error {
	err = fmt.Errorf("record %d: %w", position, err)
	switch p.strategy {
	case core.FailFast:
		return err
	case core.SkipErrors, core.CollectErrors:
		p.logger.Debug().Err(err).Msg("skipping record")
		if p.strategy == core.CollectErrors {
			p.errors = append(p.errors, err)
		}
		if p.errorHandler != nil {
			return p.errorHandler.HandleError(ctx, record, err)
		}
		return nil
	default:
		return err
	}
}
