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
	"bytes"
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/reassignguard/internal/astutil"
	"fillmore-labs.com/reassignguard/internal/classify"
	"fillmore-labs.com/reassignguard/internal/scope"
)

// Extractor turns disallowed reassignments into declarations of new variables.
type Extractor struct {
	fset  *token.FileSet
	info  *types.Info
	pkg   *types.Package
	file  astutil.CurrentFile
	types typeNamer
	namer *Namer
}

// NewExtractor creates an [Extractor] for a file, drawing names from namer.
func NewExtractor(fset *token.FileSet, info *types.Info, pkg *types.Package, file astutil.CurrentFile, namer *Namer) *Extractor {
	return &Extractor{
		fset:  fset,
		info:  info,
		pkg:   pkg,
		file:  file,
		types: newTypeNamer(info, pkg, file.File()),
		namer: namer,
	}
}

// declaration is the new variable declaration of a rewrite.
type declaration struct {
	edits []analysis.TextEdit
	scope *types.Scope // scope of the new variable
	start token.Pos    // first position referring to the new variable
}

// NewVariable returns the edits declaring a new variable at site and renaming
// all subsequent references to the old variable within the enclosing function.
func (e *Extractor) NewVariable(ctx context.Context, site classify.WriteSite) ([]analysis.TextEdit, error) {
	id, ok := site.Target().Node().(*ast.Ident)
	if !ok {
		return nil, ErrUnresolved
	}

	v, ok := e.info.Uses[id].(*types.Var)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnresolved, id.Name)
	}

	var (
		decl declaration
		name string
		err  error
	)

	newName := func(s *types.Scope) (string, error) {
		if s == nil {
			return "", fmt.Errorf("%w: %s", ErrNoScope, v.Name())
		}

		name, err = e.namer.Unique(v.Name(), s)

		return name, err
	}

	switch site := site.(type) {
	case classify.Assign:
		decl, err = e.assign(site, v, newName)

	case classify.Compound:
		decl, err = e.compound(site, site.Op(), v, newName)

	case classify.IncDec:
		decl, err = e.compound(site, site.Op(), v, newName)

	case classify.TupleElem:
		decl, err = e.tupleElem(site, v, newName)

	case classify.OutArg:
		decl, err = e.outArg(site, v, newName)

	default:
		err = fmt.Errorf("unknown write site %T", site)
	}

	if err != nil {
		return nil, err
	}

	renames, err := e.renames(ctx, site.Target(), v, name, decl)
	if err != nil {
		return nil, err
	}

	return append(decl.edits, renames...), nil
}

// renames computes the rename edits following the new declaration.
func (e *Extractor) renames(ctx context.Context, target inspector.Cursor, v *types.Var, name string, decl declaration) ([]analysis.TextEdit, error) {
	root := fileCursor(target)
	end := root.Node().End()

	if s, ok := scope.FindEnclosing(target); ok {
		root, end = s.Cursor(), s.Node().End()
	}

	rename := Rename{Old: v.Name(), New: name, Start: decl.start, End: end, Object: v}

	edits, err := rename.Edits(ctx, e.info, root)
	if err != nil {
		return nil, err
	}

	for _, edit := range edits {
		if edit.Pos < decl.scope.Pos() || edit.End > decl.scope.End() {
			return nil, fmt.Errorf("%w: %s at %v", ErrEscapesScope, v.Name(), e.fset.Position(edit.Pos))
		}
	}

	return edits, nil
}

// assign rewrites `x = e` to `x1 := e` or `var x1 T = e`.
func (e *Extractor) assign(site classify.Assign, v *types.Var, newName func(*types.Scope) (string, error)) (declaration, error) {
	stmt := site.Assignment()
	lhs, rhs := stmt.Lhs[0], stmt.Rhs[0]

	s := e.innermost(stmt.Pos())

	name, err := newName(s)
	if err != nil {
		return declaration{}, err
	}

	decl := declaration{scope: s, start: stmt.End()}

	if types.Identical(assignedType(e.info, stmt, 0), v.Type()) {
		decl.edits = []analysis.TextEdit{
			{Pos: lhs.Pos(), End: lhs.End(), NewText: []byte(name)},
			{Pos: stmt.TokPos, End: stmt.TokPos + token.Pos(len(stmt.Tok.String())), NewText: []byte(token.DEFINE.String())},
		}

		return decl, nil
	}

	if !inList(site.Stmt()) {
		return declaration{}, fmt.Errorf("%w: %s", ErrNeedsDeclaration, v.Name())
	}

	typ, err := e.types.TypeString(v.Type())
	if err != nil {
		return declaration{}, err
	}

	decl.edits = []analysis.TextEdit{
		{Pos: stmt.Pos(), End: rhs.Pos(), NewText: fmt.Appendf(nil, "var %s %s = ", name, typ)},
	}

	return decl, nil
}

// compound rewrites `x op= e` to `x1 := x op e` and `x++` to `x1 := x + 1`.
func (e *Extractor) compound(site classify.WriteSite, op token.Token, v *types.Var, newName func(*types.Scope) (string, error)) (declaration, error) {
	stmt := site.Stmt().Node()

	s := e.innermost(stmt.Pos())

	name, err := newName(s)
	if err != nil {
		return declaration{}, err
	}

	op = ExprOp(op, v.Type())

	decl := declaration{scope: s, start: stmt.End()}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s %s %s %s ", name, token.DEFINE, v.Name(), op) // ignore error

	switch stmt := stmt.(type) {
	case *ast.IncDecStmt:
		buf.WriteByte('1') // ignore error

		decl.edits = []analysis.TextEdit{{Pos: stmt.Pos(), End: stmt.End(), NewText: buf.Bytes()}}

	case *ast.AssignStmt:
		rhs := stmt.Rhs[0]

		if !needsParens(op, ast.Unparen(rhs)) {
			decl.edits = []analysis.TextEdit{{Pos: stmt.Pos(), End: rhs.Pos(), NewText: buf.Bytes()}}

			break
		}

		buf.WriteByte('(') // ignore error

		decl.edits = []analysis.TextEdit{
			{Pos: stmt.Pos(), End: rhs.Pos(), NewText: buf.Bytes()},
			{Pos: rhs.End(), NewText: []byte(")")},
		}

	default:
		return declaration{}, fmt.Errorf("unexpected statement %T", stmt)
	}

	return decl, nil
}

// tupleElem rewrites one element of `a, x = f()` to `a, x1 := f()`, or declares
// `var x1 T` before the statement when the other elements prevent `:=`.
func (e *Extractor) tupleElem(site classify.TupleElem, v *types.Var, newName func(*types.Scope) (string, error)) (declaration, error) {
	stmt := site.Assignment()
	elem := stmt.Lhs[site.Index]

	s := e.innermost(stmt.Pos())

	name, err := newName(s)
	if err != nil {
		return declaration{}, err
	}

	decl := declaration{
		edits: []analysis.TextEdit{{Pos: elem.Pos(), End: elem.End(), NewText: []byte(name)}},
		scope: s,
		start: stmt.End(),
	}

	identical := types.Identical(assignedType(e.info, stmt, site.Index), v.Type())

	switch {
	case identical && stmt.Tok == token.DEFINE:
		return decl, nil

	case identical && e.definable(stmt, site.Index, s):
		decl.edits = append(decl.edits,
			analysis.TextEdit{Pos: stmt.TokPos, End: stmt.TokPos + token.Pos(len(stmt.Tok.String())), NewText: []byte(token.DEFINE.String())})

		return decl, nil
	}

	return e.predeclare(site.Stmt(), v, name, decl)
}

// definable reports whether all left-hand side elements but idx may be part of a short variable
// declaration in scope s without changing their meaning.
func (e *Extractor) definable(stmt *ast.AssignStmt, idx int, s *types.Scope) bool {
	for i, expr := range stmt.Lhs {
		if i == idx || astutil.Blank(expr) {
			continue
		}

		id, ok := expr.(*ast.Ident)
		if !ok {
			return false // qualified or parenthesized
		}

		if v, ok := e.info.Uses[id].(*types.Var); !ok || v.Parent() != s {
			return false
		}
	}

	return true
}

// outArg rewrites `f(&x)` to `x1 := x; f(&x1)`, since the callee may read through the pointer.
func (e *Extractor) outArg(site classify.OutArg, v *types.Var, newName func(*types.Scope) (string, error)) (declaration, error) {
	stmt, ok := listStmt(site.Stmt())
	if !ok {
		return declaration{}, fmt.Errorf("%w: %s", ErrNeedsDeclaration, v.Name())
	}

	pos := stmt.Node().Pos()
	s := e.innermost(pos)

	name, err := newName(s)
	if err != nil {
		return declaration{}, err
	}

	id := site.Target().Node()
	text := fmt.Appendf(nil, "%s %s %s\n%s", name, token.DEFINE, v.Name(), e.file.Indent(pos))

	return declaration{
		edits: []analysis.TextEdit{
			{Pos: pos, NewText: text},
			{Pos: id.Pos(), End: id.End(), NewText: []byte(name)},
		},
		scope: s,
		start: site.Unary().Parent().Node().End(), // arguments are evaluated before the call
	}, nil
}

// predeclare inserts `var x1 T` before the statement.
func (e *Extractor) predeclare(stmt inspector.Cursor, v *types.Var, name string, decl declaration) (declaration, error) {
	if !inList(stmt) {
		return declaration{}, fmt.Errorf("%w: %s", ErrNeedsDeclaration, v.Name())
	}

	typ, err := e.types.TypeString(v.Type())
	if err != nil {
		return declaration{}, err
	}

	pos := stmt.Node().Pos()
	text := fmt.Appendf(nil, "var %s %s\n%s", name, typ, e.file.Indent(pos))

	decl.edits = append([]analysis.TextEdit{{Pos: pos, NewText: text}}, decl.edits...)

	return decl, nil
}

// innermost returns the innermost scope containing pos.
func (e *Extractor) innermost(pos token.Pos) *types.Scope {
	return e.pkg.Scope().Innermost(pos)
}

// inList reports whether the statement is an element of a statement list.
func inList(c inspector.Cursor) bool {
	switch k, _ := c.ParentEdge(); k {
	case edge.BlockStmt_List, edge.CaseClause_Body, edge.CommClause_Body:
		return true

	default:
		return false
	}
}

// listStmt returns the closest enclosing statement that is an element of a statement list.
func listStmt(c inspector.Cursor) (inspector.Cursor, bool) {
	for c := range c.Enclosing() {
		if inList(c) {
			return c, true
		}

		if _, ok := c.Node().(*ast.FuncLit); ok {
			break
		}
	}

	return inspector.Cursor{}, false
}

// fileCursor returns the cursor of the file containing c.
func fileCursor(c inspector.Cursor) inspector.Cursor {
	for c := range c.Enclosing((*ast.File)(nil)) {
		return c
	}

	return c
}
