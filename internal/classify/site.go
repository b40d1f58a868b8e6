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

// Package classify finds writes to variables and decides whether they are
// disallowed reassignments.
package classify

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/inspector"
)

// WriteSite is a write to a variable through a bare identifier.
//
// The concrete types are [Assign], [Compound], [IncDec], [TupleElem] and [OutArg].
type WriteSite interface {
	// Target is the cursor of the written identifier.
	Target() inspector.Cursor

	// Stmt is the cursor of the statement containing the write.
	Stmt() inspector.Cursor

	writeSite()
}

type site struct {
	stmt, target inspector.Cursor
}

func (s site) Target() inspector.Cursor { return s.target }

func (s site) Stmt() inspector.Cursor { return s.stmt }

func (site) writeSite() {}

// Ident returns the written identifier.
func (s site) Ident() *ast.Ident { return s.target.Node().(*ast.Ident) }

// Assign is a simple assignment `x = e`.
type Assign struct{ site }

// Assignment returns the assignment statement.
func (a Assign) Assignment() *ast.AssignStmt { return a.stmt.Node().(*ast.AssignStmt) }

// Compound is an assignment operation `x op= e`.
type Compound struct{ site }

// Assignment returns the assignment statement.
func (a Compound) Assignment() *ast.AssignStmt { return a.stmt.Node().(*ast.AssignStmt) }

// Op returns the binary operator of the assignment.
func (a Compound) Op() token.Token { return BinaryOp(a.Assignment().Tok) }

// IncDec is an increment or decrement statement `x++`, `x--`.
type IncDec struct{ site }

// Statement returns the increment or decrement statement.
func (a IncDec) Statement() *ast.IncDecStmt { return a.stmt.Node().(*ast.IncDecStmt) }

// Op returns the binary operator equivalent to the statement.
func (a IncDec) Op() token.Token {
	if a.Statement().Tok == token.DEC {
		return token.SUB
	}

	return token.ADD
}

// TupleElem is one element of a multi-value assignment `a, x = e, f`
// or a redeclaration `a, x := e, f`.
type TupleElem struct {
	site

	// Index is the position of the element on the left-hand side.
	Index int
}

// Assignment returns the assignment statement.
func (a TupleElem) Assignment() *ast.AssignStmt { return a.stmt.Node().(*ast.AssignStmt) }

// OutArg is the address of a variable `&x` passed as a call argument.
type OutArg struct {
	site
	unary inspector.Cursor
}

// Unary returns the cursor of the address operation.
func (a OutArg) Unary() inspector.Cursor { return a.unary }

// BinaryOp returns the binary operator of an assignment operation,
// or [token.ILLEGAL] if tok is none.
func BinaryOp(tok token.Token) token.Token {
	switch tok {
	case token.ADD_ASSIGN:
		return token.ADD
	case token.SUB_ASSIGN:
		return token.SUB
	case token.MUL_ASSIGN:
		return token.MUL
	case token.QUO_ASSIGN:
		return token.QUO
	case token.REM_ASSIGN:
		return token.REM
	case token.AND_ASSIGN:
		return token.AND
	case token.OR_ASSIGN:
		return token.OR
	case token.XOR_ASSIGN:
		return token.XOR
	case token.SHL_ASSIGN:
		return token.SHL
	case token.SHR_ASSIGN:
		return token.SHR
	case token.AND_NOT_ASSIGN:
		return token.AND_NOT
	default:
		return token.ILLEGAL
	}
}
