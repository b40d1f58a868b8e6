// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package report

import (
	"go/token"

	"golang.org/x/tools/go/analysis"
)

// fixSession tracks the new variable fixes offered within one function, so that
// all fixes with the same message can be applied together.
//
// Directive insertions are not tracked: identical insertions coalesce when applied.
type fixSession struct {
	// taken are the edits of offered new variable fixes.
	taken []analysis.TextEdit
}

func newFixSession() *fixSession {
	return &fixSession{}
}

// acceptEdits records edits unless they conflict with earlier ones.
func (s *fixSession) acceptEdits(edits []analysis.TextEdit) bool {
	for _, e := range edits {
		for _, t := range s.taken {
			if overlaps(e, t) {
				return false
			}
		}
	}

	s.taken = append(s.taken, edits...)

	return true
}

// overlaps reports whether two edits can't be applied together.
func overlaps(a, b analysis.TextEdit) bool {
	if a.Pos == b.Pos {
		return true // ambiguous order
	}

	return a.Pos < end(b) && b.Pos < end(a)
}

// end returns the end of the replaced range, treating insertions as empty ranges.
func end(e analysis.TextEdit) token.Pos {
	if e.End < e.Pos {
		return e.Pos
	}

	return e.End
}
