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

package core

import "strings"

// Characteristics declares properties of a collector that govern which optimizations are valid.
type Characteristics uint8

const (
	// IdentityFinish marks a collector whose finisher returns the container unchanged.
	IdentityFinish Characteristics = 1 << iota
	// Unordered marks a collector whose result does not depend on encounter order.
	// Its accumulate and combine operations must be commutative.
	Unordered
	// Concurrent marks a collector whose container may be accumulated from several goroutines.
	// The container must be a pointer, map or channel mutated in place.
	Concurrent
)

// Has reports whether every flag in other is set.
func (c Characteristics) Has(other Characteristics) bool {
	return c&other == other
}

func (c Characteristics) String() string {
	var parts []string
	if c.Has(IdentityFinish) {
		parts = append(parts, "IDENTITY_FINISH")
	}
	if c.Has(Unordered) {
		parts = append(parts, "UNORDERED")
	}
	if c.Has(Concurrent) {
		parts = append(parts, "CONCURRENT")
	}
	return "[" + strings.Join(parts, ",") + "]"
}
