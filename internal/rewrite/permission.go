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

package rewrite

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/reassignguard/internal/astutil"
	"fillmore-labs.com/reassignguard/internal/directive"
	"fillmore-labs.com/reassignguard/internal/scope"
)

// Permissions adds reassignment directives to functions.
type Permissions struct {
	File astutil.CurrentFile
}

// Insertion is a directive to be added above a scope anchor.
type Insertion struct {
	Anchor inspector.Cursor
	Names  []string
	Edit   analysis.TextEdit
}

// Add returns the insertion of a new directive permitting names to the smallest
// function enclosing site.
//
// Existing directives are left alone. Package-level code outside of functions
// can't carry directives and results in [ErrNoScope].
func (p Permissions) Add(ctx context.Context, site inspector.Cursor, names ...string) (Insertion, error) {
	if err := ctx.Err(); err != nil {
		return Insertion{}, err
	}

	s, ok := scope.FindEnclosing(site)
	if !ok {
		return Insertion{}, fmt.Errorf("%w: %v", ErrNoScope, names)
	}

	names = slices.Compact(slices.Sorted(slices.Values(names)))

	anchor := s.Anchor()
	pos := anchor.Node().Pos()

	text := directive.Format(names) + "\n" + p.File.Indent(pos)

	return Insertion{
		Anchor: anchor,
		Names:  names,
		Edit:   analysis.TextEdit{Pos: pos, NewText: []byte(text)},
	}, nil
}
