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
	"go/ast"
	"go/token"
	"go/types"
)

// ExprOp returns the operator of the binary expression equivalent to applying op
// to operands of type t: & and | are logical for boolean operands.
//
// Boolean operands are a type error, so only code with errors takes that path.
func ExprOp(op token.Token, t types.Type) token.Token {
	if !isBoolean(t) {
		return op
	}

	switch op {
	case token.AND:
		return token.LAND

	case token.OR:
		return token.LOR

	default:
		return op
	}
}

func isBoolean(t types.Type) bool {
	if t == nil {
		return false
	}

	b, ok := t.Underlying().(*types.Basic)

	return ok && b.Info()&types.IsBoolean != 0
}

// needsParens reports whether expr must be parenthesized as the right operand of op.
func needsParens(op token.Token, expr ast.Expr) bool {
	b, ok := expr.(*ast.BinaryExpr)

	return ok && b.Op.Precedence() <= op.Precedence()
}
