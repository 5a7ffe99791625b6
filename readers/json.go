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
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/aaronlmathis/gocollect/core"
)

// JSONReaderError wraps structured error information for the JSON reader.
type JSONReaderError struct {
	Line int
	Err  error
}

func (e *JSONReaderError) Error() string {
	return fmt.Sprintf("json reader line %d: %v", e.Line, e.Err)
}

func (e *JSONReaderError) Unwrap() error {
	return e.Err
}

// MaxLineSize is the longest JSON line the reader accepts.
const MaxLineSize = 1 << 20

// JSONReader implements DataSource for JSON lines input. Blank lines are skipped.
//
// A line longer than MaxLineSize or a failure of the underlying reader is
// reported once; every later Read returns io.EOF.
type JSONReader struct {
	scanner *bufio.Scanner
	closer  io.Closer
	line    int
	done    bool
}

// NewJSONReader creates a new JSON reader for line-delimited JSON
func NewJSONReader(r io.Reader) *JSONReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	reader := &JSONReader{scanner: scanner}
	if c, ok := r.(io.Closer); ok {
		reader.closer = c
	}
	return reader
}

// Read implements the DataSource interface
func (j *JSONReader) Read(ctx context.Context) (core.Record, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if j.done {
			return nil, io.EOF
		}
		if !j.scanner.Scan() {
			j.done = true
			if err := j.scanner.Err(); err != nil {
				return nil, &JSONReaderError{Line: j.line + 1, Err: err}
			}
			return nil, io.EOF
		}
		j.line++

		line := bytes.TrimSpace(j.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var record core.Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, &JSONReaderError{Line: j.line, Err: err}
		}
		return record, nil
	}
}

// Close implements the DataSource interface
func (j *JSONReader) Close() error {
	if j.closer != nil {
		return j.closer.Close()
	}
	return nil
}
