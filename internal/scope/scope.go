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

// Package scope locates the function-like scopes that carry reassignment directives.
package scope

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/reassignguard/internal/astutil"
)

// Scope is a named function (*[ast.FuncDecl]) or a function literal (*[ast.FuncLit]).
type Scope struct {
	c inspector.Cursor
}

// FindEnclosing returns the smallest function-like scope enclosing c, including c itself.
// The result is false for package-level code outside of function literals.
func FindEnclosing(c inspector.Cursor) (Scope, bool) {
	for c := range c.Enclosing((*ast.FuncDecl)(nil), (*ast.FuncLit)(nil)) {
		return Scope{c}, true
	}

	return Scope{}, false
}

// Outer returns the scope enclosing s.
func (s Scope) Outer() (Scope, bool) {
	if !s.Nested() {
		return Scope{}, false
	}

	return FindEnclosing(s.c.Parent())
}

// Cursor returns the cursor of the function node.
func (s Scope) Cursor() inspector.Cursor {
	return s.c
}

// Node returns the function node.
func (s Scope) Node() ast.Node {
	return s.c.Node()
}

// Nested reports whether s is a function literal.
func (s Scope) Nested() bool {
	_, ok := s.c.Node().(*ast.FuncLit)

	return ok
}

// Name describes the scope for messages.
func (s Scope) Name() string {
	if fun, ok := s.c.Node().(*ast.FuncDecl); ok {
		return fun.Name.Name
	}

	return "func literal"
}

// Type returns the signature syntax of the function.
func (s Scope) Type() *ast.FuncType {
	switch n := s.c.Node().(type) {
	case *ast.FuncDecl:
		return n.Type

	case *ast.FuncLit:
		return n.Type
	}

	return nil
}

// Body returns the cursor of the function body.
// The result is false for function declarations without body.
func (s Scope) Body() (inspector.Cursor, bool) {
	switch n := s.c.Node().(type) {
	case *ast.FuncDecl:
		if n.Body == nil {
			return inspector.Cursor{}, false
		}

		return s.c.ChildAt(edge.FuncDecl_Body, -1), true

	case *ast.FuncLit:
		return s.c.ChildAt(edge.FuncLit_Body, -1), true
	}

	return inspector.Cursor{}, false
}

// Anchor returns the declaration or statement a reassignment directive for s attaches to.
//
// That is the [ast.FuncDecl] itself, or for function literals the closest enclosing
// statement of a statement list, parenthesized value specification or top-level declaration.
func (s Scope) Anchor() inspector.Cursor {
	if !s.Nested() {
		return s.c
	}

	for c := s.c; ; c = c.Parent() {
		switch k, _ := c.ParentEdge(); k {
		case edge.BlockStmt_List, edge.CaseClause_Body, edge.CommClause_Body, edge.File_Decls:
			return c

		case edge.GenDecl_Specs:
			if c.Parent().Node().(*ast.GenDecl).Lparen.IsValid() {
				return c
			}

		case edge.Invalid:
			return c
		}
	}
}

// Comments returns the comment group carrying the directives of s, or nil.
func (s Scope) Comments(file astutil.CurrentFile) *ast.CommentGroup {
	anchor := s.Anchor()

	switch n := anchor.Node().(type) {
	case *ast.FuncDecl:
		return n.Doc

	case *ast.GenDecl:
		return n.Doc

	case *ast.ValueSpec:
		return n.Doc
	}

	return file.LeadingComment(precedingEnd(anchor), anchor.Node().Pos())
}

// precedingEnd is the end of the token before the statement at c.
func precedingEnd(c inspector.Cursor) token.Pos {
	if prev, ok := c.PrevSibling(); ok {
		return prev.Node().End()
	}

	switch n := c.Parent().Node().(type) {
	case *ast.BlockStmt:
		return n.Lbrace

	case *ast.CaseClause:
		return n.Colon

	case *ast.CommClause:
		return n.Colon
	}

	return token.NoPos
}
