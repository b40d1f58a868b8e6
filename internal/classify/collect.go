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

package classify

import (
	"context"
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/reassignguard/internal/astutil"
)

// Collector finds the write sites in function bodies.
type Collector struct {
	Info *types.Info

	// OutArgs enables reporting of `&x` call arguments.
	OutArgs bool
}

// Collect returns all writes to bare identifiers under root, including nested function literals.
//
// Skipped are qualified, indexed and indirect targets, the blank identifier, the post
// statement of `for` loops and identifiers freshly declared by `:=`.
func (c Collector) Collect(ctx context.Context, root inspector.Cursor) ([]WriteSite, error) {
	nodeTypes := []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.IncDecStmt)(nil),
		(*ast.UnaryExpr)(nil),
	}

	var sites []WriteSite

	for n := range root.Preorder(nodeTypes...) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch node := n.Node().(type) {
		case *ast.AssignStmt:
			if forPost(n) {
				continue
			}

			sites = c.assign(sites, n, node)

		case *ast.IncDecStmt:
			if forPost(n) {
				continue
			}

			target, ok := bareIdent(n.ChildAt(edge.IncDecStmt_X, -1))
			if !ok {
				continue
			}

			sites = append(sites, IncDec{site{stmt: n, target: target}})

		case *ast.UnaryExpr:
			if !c.OutArgs || node.Op != token.AND {
				continue
			}

			if k, _ := n.ParentEdge(); k != edge.CallExpr_Args {
				continue
			}

			target, ok := bareIdent(n.ChildAt(edge.UnaryExpr_X, -1))
			if !ok {
				continue
			}

			stmt, ok := enclosingStmt(n)
			if !ok {
				continue // package-level initializer
			}

			sites = append(sites, OutArg{site{stmt: stmt, target: target}, n})
		}
	}

	return sites, nil
}

func (c Collector) assign(sites []WriteSite, n inspector.Cursor, stmt *ast.AssignStmt) []WriteSite {
	switch stmt.Tok {
	case token.DEFINE:
		if len(stmt.Lhs) == 1 {
			return sites // always a new variable
		}

		for i, id := range astutil.AllTargets(stmt) {
			if _, ok := c.Info.Defs[id]; ok {
				continue // fresh declaration
			}

			sites = append(sites, TupleElem{site{stmt: n, target: lhs(n, i)}, i})
		}

	case token.ASSIGN:
		if len(stmt.Lhs) == 1 {
			if target, ok := bareIdent(lhs(n, 0)); ok {
				sites = append(sites, Assign{site{stmt: n, target: target}})
			}

			break
		}

		for i := range astutil.AllTargets(stmt) {
			target, _ := bareIdent(lhs(n, i))
			sites = append(sites, TupleElem{site{stmt: n, target: target}, i})
		}

	default:
		if target, ok := bareIdent(lhs(n, 0)); ok {
			sites = append(sites, Compound{site{stmt: n, target: target}})
		}
	}

	return sites
}

func lhs(n inspector.Cursor, i int) inspector.Cursor {
	return n.ChildAt(edge.AssignStmt_Lhs, i)
}

// bareIdent strips parentheses and returns the cursor of a non-blank identifier.
func bareIdent(c inspector.Cursor) (inspector.Cursor, bool) {
	for {
		switch n := c.Node().(type) {
		case *ast.ParenExpr:
			c = c.ChildAt(edge.ParenExpr_X, -1)

		case *ast.Ident:
			return c, n.Name != "_"

		default:
			return c, false
		}
	}
}

// forPost reports whether the statement is the post statement of a `for` loop.
func forPost(c inspector.Cursor) bool {
	k, _ := c.ParentEdge()

	return k == edge.ForStmt_Post
}

// enclosingStmt returns the innermost statement containing c.
func enclosingStmt(c inspector.Cursor) (inspector.Cursor, bool) {
	for c := range c.Enclosing() {
		if _, ok := c.Node().(ast.Stmt); ok {
			return c, true
		}
	}

	return inspector.Cursor{}, false
}
