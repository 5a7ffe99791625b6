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

package writers

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/aaronlmathis/gocollect/core"
)

// JSONWriter implements DataSink for JSON lines output. Map keys are written in sorted order.
type JSONWriter struct {
	writer *bufio.Writer
	closer io.Closer
}

// NewJSONWriter creates a new JSON writer for line-delimited JSON output. If w is an
// io.Closer it is closed by Close.
func NewJSONWriter(w io.Writer) *JSONWriter {
	writer := &JSONWriter{writer: bufio.NewWriter(w)}
	if c, ok := w.(io.Closer); ok {
		writer.closer = c
	}
	return writer
}

// Write implements the DataSink interface
func (j *JSONWriter) Write(ctx context.Context, record core.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record to JSON: %w", err)
	}
	if _, err := j.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON data: %w", err)
	}
	return nil
}

// WriteAll writes every record in order.
func (j *JSONWriter) WriteAll(ctx context.Context, records []core.Record) error {
	for i, r := range records {
		if err := j.Write(ctx, r); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// Flush implements the DataSink interface
func (j *JSONWriter) Flush() error {
	return j.writer.Flush()
}

// Close implements the DataSink interface
func (j *JSONWriter) Close() error {
	if err := j.Flush(); err != nil {
		return err
	}
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}
