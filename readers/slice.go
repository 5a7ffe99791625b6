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

package readers

import (
	"context"
	"io"

	"github.com/aaronlmathis/gocollect/core"
)

// SliceReader implements DataSource over records held in memory.
type SliceReader struct {
	records []core.Record
	pos     int
}

// NewSliceReader creates a reader that yields records in order.
func NewSliceReader(records ...core.Record) *SliceReader {
	return &SliceReader{records: records}
}

// Read implements the DataSource interface
func (s *SliceReader) Read(ctx context.Context) (core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.records) {
		return nil, io.EOF
	}
	record := s.records[s.pos]
	s.pos++
	return record, nil
}

// Close implements the DataSource interface
func (s *SliceReader) Close() error {
	return nil
}
