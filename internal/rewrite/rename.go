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
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"
)

// Rename describes the renaming of identifier references.
type Rename struct {
	// Old and New are the identifier names.
	Old, New string

	// Start and End bound the renamed references.
	Start, End token.Pos

	// Object restricts renaming to references of this object when not nil.
	Object types.Object
}

// Edits returns a text edit for every bare reference to Old under root that starts
// in [Start, End).
//
// Selected identifiers of qualified expressions (the m in s.m) are never renamed.
// Only the bytes of the identifier are replaced, so surrounding comments and
// formatting are preserved.
func (r Rename) Edits(ctx context.Context, info *types.Info, root inspector.Cursor) ([]analysis.TextEdit, error) {
	var edits []analysis.TextEdit

	newText := []byte(r.New)

	for c := range root.Preorder((*ast.Ident)(nil)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id := c.Node().(*ast.Ident)
		if id.Name != r.Old || id.Pos() < r.Start || r.End.IsValid() && id.Pos() >= r.End {
			continue
		}

		if !r.bare(info, c, id) {
			continue
		}

		edits = append(edits, analysis.TextEdit{Pos: id.Pos(), End: id.End(), NewText: newText})
	}

	return edits, nil
}

func (r Rename) bare(info *types.Info, c inspector.Cursor, id *ast.Ident) bool {
	switch k, _ := c.ParentEdge(); k {
	case edge.SelectorExpr_Sel:
		return false

	case edge.KeyValueExpr_Key:
		if r.Object == nil {
			// Without type information a composite literal key might be a field name
			return false
		}
	}

	if r.Object == nil {
		return true
	}

	return info.Uses[id] == r.Object
}
