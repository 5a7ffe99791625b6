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

package aggregate

import "strings"

type joiner struct {
	sb    strings.Builder
	count int
}

// Joining concatenates strings with no delimiter.
func Joining() Collector[string, *joiner, string] {
	return JoiningWithAffixes("", "", "")
}

// JoiningWith concatenates strings separated by delimiter.
func JoiningWith(delimiter string) Collector[string, *joiner, string] {
	return JoiningWithAffixes(delimiter, "", "")
}

// JoiningWithAffixes concatenates strings separated by delimiter and wrapped in prefix and
// suffix. An empty input yields prefix + suffix.
func JoiningWithAffixes(delimiter, prefix, suffix string) Collector[string, *joiner, string] {
	return New(
		func() *joiner { return &joiner{} },
		func(j *joiner, s string) *joiner {
			if j.count > 0 {
				j.sb.WriteString(delimiter)
			}
			j.sb.WriteString(s)
			j.count++
			return j
		},
		func(l, r *joiner) *joiner {
			if r.count == 0 {
				return l
			}
			if l.count == 0 {
				return r
			}
			l.sb.WriteString(delimiter)
			l.sb.WriteString(r.sb.String())
			l.count += r.count
			return l
		},
		func(j *joiner) string {
			return prefix + j.sb.String() + suffix
		},
	)
}

// Join concatenates parts with delimiter, prefix and suffix.
func Join(parts []string, delimiter, prefix, suffix string) string {
	return Collect(parts, JoiningWithAffixes(delimiter, prefix, suffix))
}
