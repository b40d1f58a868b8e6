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

package astutil

import (
	"go/ast"
	"go/token"
	"slices"
	"strings"
)

// CurrentFile holds file information for analysis.
type CurrentFile struct {
	file      *ast.File
	handle    *token.File
	src       []byte
	nolint    func(*ast.Comment) bool
	generated bool
}

// NewCurrentFile creates a new [CurrentFile] from a [token.FileSet] and an *[ast.File].
//
// src is the file content and may be nil. nolint reports whether a comment
// suppresses diagnostics.
func NewCurrentFile(fset *token.FileSet, file *ast.File, src []byte, nolint func(*ast.Comment) bool) CurrentFile {
	if file == nil {
		return CurrentFile{}
	}

	handle := fset.File(file.FileStart)
	if handle == nil {
		return CurrentFile{}
	}

	if len(src) != handle.Size() {
		src = nil // stale content
	}

	generated := ast.IsGenerated(file)

	return CurrentFile{file, handle, src, nolint, generated}
}

// Valid reports whether the [CurrentFile] has valid file information.
func (c CurrentFile) Valid() bool {
	return c.handle != nil
}

// File returns the syntax tree of the file.
func (c CurrentFile) File() *ast.File {
	return c.file
}

// Generated reports whether the file is generated code.
func (c CurrentFile) Generated() bool {
	return c.generated
}

// Line returns the line number of pos.
func (c CurrentFile) Line(pos token.Pos) int {
	return c.handle.PositionFor(pos, false).Line
}

// LineStart returns the position of the first character of the line containing pos.
func (c CurrentFile) LineStart(pos token.Pos) token.Pos {
	return c.handle.LineStart(c.Line(pos))
}

// Indent returns the white space preceding pos on its line.
func (c CurrentFile) Indent(pos token.Pos) string {
	start := c.LineStart(pos)

	if c.src == nil {
		// gofmt indents with tabs
		return strings.Repeat("\t", int(pos-start))
	}

	from, to := c.handle.Offset(start), c.handle.Offset(pos)
	prefix := c.src[from:to]

	if i := slices.IndexFunc(prefix, func(b byte) bool { return b != ' ' && b != '\t' }); i >= 0 {
		prefix = prefix[:i]
	}

	return string(prefix)
}

// LeadingComment returns the comment group ending on the line directly above pos
// and starting after limit. It returns nil if there is none.
func (c CurrentFile) LeadingComment(limit, pos token.Pos) *ast.CommentGroup {
	if c.file == nil {
		return nil
	}

	// find the first comment group starting at or after pos
	i, _ := slices.BinarySearchFunc(c.file.Comments, pos,
		func(g *ast.CommentGroup, p token.Pos) int { return int(g.Pos() - p) })
	if i == 0 {
		return nil
	}

	g := c.file.Comments[i-1]
	if g.Pos() <= limit || g.End() > pos || c.Line(g.End())+1 != c.Line(pos) {
		return nil
	}

	return g
}

// NoLintComment reports whether a nolint comment disables diagnostics on the line of pos.
func (c CurrentFile) NoLintComment(pos token.Pos) bool {
	if c.file == nil || c.nolint == nil {
		return false
	}

	// find the first comment starting after the position
	i, _ := slices.BinarySearchFunc(c.file.Comments, pos,
		func(g *ast.CommentGroup, p token.Pos) int { return int(g.Pos() - p) })

	for ; i < len(c.file.Comments); i++ {
		g := c.file.Comments[i]
		if c.Line(g.Pos()) != c.Line(pos) {
			return false // not on this line
		}

		if slices.ContainsFunc(g.List, c.nolint) {
			return true
		}
	}

	return false
}

// NoLintGroup reports whether the last comment of the group disables diagnostics.
func (c CurrentFile) NoLintGroup(g *ast.CommentGroup) bool {
	if g == nil || c.nolint == nil {
		return false
	}

	return c.nolint(g.List[len(g.List)-1])
}
