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
	"iter"
)

// AllTargets yields the index and identifier of every bare, non-blank
// identifier on the left-hand side of an assignment.
func AllTargets(stmt *ast.AssignStmt) iter.Seq2[int, *ast.Ident] {
	return func(yield func(int, *ast.Ident) bool) {
		for i, expr := range stmt.Lhs {
			id, ok := ast.Unparen(expr).(*ast.Ident)
			if !ok || id.Name == "_" {
				continue // blank identifier or qualified target
			}

			if !yield(i, id) {
				return
			}
		}
	}
}

// Blank reports whether expr is the blank identifier.
func Blank(expr ast.Expr) bool {
	id, ok := ast.Unparen(expr).(*ast.Ident)

	return ok && id.Name == "_"
}
