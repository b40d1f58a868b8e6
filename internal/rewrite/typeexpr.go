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
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strconv"
)

// typeNamer spells types in the context of a file.
type typeNamer struct {
	pkg     *types.Package
	imports map[string]string // path -> name
}

func newTypeNamer(info *types.Info, pkg *types.Package, file *ast.File) typeNamer {
	imports := make(map[string]string, len(file.Imports))

	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		var name string

		switch {
		case spec.Name == nil:
			pkgName := info.PkgNameOf(spec)
			if pkgName == nil {
				continue
			}

			name = pkgName.Imported().Name()

		case spec.Name.Name == "_":
			continue

		case spec.Name.Name == ".":
			name = ""

		default:
			name = spec.Name.Name
		}

		imports[path] = name
	}

	return typeNamer{pkg: pkg, imports: imports}
}

// TypeString spells t, failing when t refers to packages not imported by the
// file or to unexported types of other packages.
func (n typeNamer) TypeString(t types.Type) (string, error) {
	missing := ""

	qualifier := func(p *types.Package) string {
		if p == n.pkg {
			return ""
		}

		name, ok := n.imports[p.Path()]
		if !ok {
			missing = p.Path()
		}

		return name
	}

	s := types.TypeString(t, qualifier)

	switch {
	case missing != "":
		return "", fmt.Errorf("%w: package %s not imported", ErrUnspellableType, missing)

	case !n.exported(t, 0):
		return "", fmt.Errorf("%w: %s", ErrUnspellableType, s)
	}

	return s, nil
}

// exported reports whether all named types in t are accessible from the package.
func (n typeNamer) exported(t types.Type, depth int) bool {
	if depth > 32 {
		return false // recursive type literal
	}
	depth++

	switch t := t.(type) {
	case *types.Basic:
		return t.Kind() != types.Invalid && t.Info()&types.IsUntyped == 0

	case interface {
		Obj() *types.TypeName
		TypeArgs() *types.TypeList
	}: // *types.Named, *types.Alias
		if obj := t.Obj(); obj.Pkg() != nil && obj.Pkg() != n.pkg && !obj.Exported() {
			return false
		}

		for arg := range t.TypeArgs().Types() {
			if !n.exported(arg, depth) {
				return false
			}
		}

		return true

	case *types.Pointer:
		return n.exported(t.Elem(), depth)

	case *types.Slice:
		return n.exported(t.Elem(), depth)

	case *types.Array:
		return n.exported(t.Elem(), depth)

	case *types.Chan:
		return n.exported(t.Elem(), depth)

	case *types.Map:
		return n.exported(t.Key(), depth) && n.exported(t.Elem(), depth)

	case *types.Signature:
		return n.tuple(t.Params(), depth) && n.tuple(t.Results(), depth)

	case *types.Struct:
		for f := range t.Fields() {
			if !n.exported(f.Type(), depth) {
				return false
			}
		}

		return true

	default:
		return true
	}
}

func (n typeNamer) tuple(t *types.Tuple, depth int) bool {
	for v := range t.Variables() {
		if !n.exported(v.Type(), depth) {
			return false
		}
	}

	return true
}

// assignedType is the type a variable declared by `:=` at position idx of stmt would have.
func assignedType(info *types.Info, stmt *ast.AssignStmt, idx int) types.Type {
	switch len(stmt.Rhs) {
	case len(stmt.Lhs):
		expr := stmt.Rhs[idx]

		// This is used because [types.Checker] calls `updateExprType` for untyped constants.
		//
		// Note that this is a simplified implementation that only handles numeric and string literals or
		// identifiers denoting a constant, not all constant expressions.
		switch expr := ast.Unparen(expr).(type) {
		case *ast.BasicLit:
			switch expr.Kind {
			case token.INT:
				return types.Typ[types.Int]
			case token.FLOAT:
				return types.Typ[types.Float64]
			case token.IMAG:
				return types.Typ[types.Complex128]
			case token.CHAR:
				return universeRune.Type()
			case token.STRING:
				return types.Typ[types.String]
			}

		case *ast.Ident:
			if obj, ok := info.Uses[expr]; ok {
				if _, ok := obj.(*types.Nil); ok {
					return types.Typ[types.UntypedNil]
				}

				return types.Default(obj.Type())
			}
		}

		return types.Default(info.Types[expr].Type)

	case 1:
		if tuple, ok := info.Types[stmt.Rhs[0]].Type.(*types.Tuple); ok && idx < tuple.Len() {
			return tuple.At(idx).Type()
		}

		// comma-ok expressions
		if idx == 0 {
			return info.Types[stmt.Rhs[0]].Type
		}

		return types.Typ[types.Bool]
	}

	return nil
}

// universeRune is the object for the predeclared "rune" type.
var universeRune = types.Universe.Lookup("rune")
