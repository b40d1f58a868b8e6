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

// Package directive parses the comment directives understood by reassignguard.
//
// A permission directive names the variables that may be reassigned within
// the function it is attached to:
//
//	//reassignguard:allow i, err
//	func f() { ... }
//
// Entries are separated by white space or commas and may be quoted.
package directive

import (
	"go/ast"
	"go/token"
	"iter"
	"slices"
	"strings"
)

// Name is the name of the linter used in directives and nolint comments.
const Name = "reassignguard"

// Prefix starts every permission directive.
const Prefix = "//" + Name + ":allow"

// Entry is a single argument of a permission directive.
type Entry struct {
	// Name is the permitted identifier, unquoted.
	Name string

	// Pos and End delimit the argument in the source file.
	Pos, End token.Pos

	// Valid is false for arguments that are not Go identifiers.
	Valid bool
}

// Permission is a single permission directive comment.
type Permission struct {
	// Comment is the directive comment.
	Comment *ast.Comment

	// Entries are the directive arguments in source order.
	Entries []Entry
}

// Pos implements [analysis.Range].
func (p Permission) Pos() token.Pos { return p.Comment.Pos() }

// End implements [analysis.Range].
func (p Permission) End() token.Pos { return p.Comment.End() }

// Names returns all valid permitted names.
func (p Permission) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range p.Entries {
			if !e.Valid {
				continue
			}

			if !yield(e.Name) {
				return
			}
		}
	}
}

// Allows reports whether the directive permits reassignment of name.
func (p Permission) Allows(name string) bool {
	return slices.Contains(slices.Collect(p.Names()), name)
}

// Format renders a permission directive for names.
func Format(names []string) string {
	return Prefix + " " + strings.Join(names, ", ")
}
