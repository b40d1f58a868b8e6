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
	"fillmore-labs.com/reassignguard/internal/directive"
	"fillmore-labs.com/reassignguard/internal/scope"
)

// Classifier decides whether writes are disallowed reassignments.
//
// A Classifier is bound to a single file and caches per variable; it is not safe for concurrent use.
type Classifier struct {
	info       *types.Info
	file       inspector.Cursor
	directives *Directives
	params     bool
	presumed   map[*types.Var]bool
}

// NewClassifier creates a [Classifier] for the file at cursor file.
// When params is true, function parameters and receivers are presumed not reassignable.
func NewClassifier(info *types.Info, file inspector.Cursor, directives *Directives, params bool) *Classifier {
	return &Classifier{
		info:       info,
		file:       file,
		directives: directives,
		params:     params,
		presumed:   make(map[*types.Var]bool),
	}
}

// Resolve returns the variable written at site, or nil when it can't be resolved.
func (c *Classifier) Resolve(site WriteSite) *types.Var {
	id, ok := site.Target().Node().(*ast.Ident)
	if !ok {
		return nil
	}

	v, _ := c.info.Uses[id].(*types.Var)

	return v
}

// Presumed reports whether v is presumed not reassignable: a local variable with
// declaring syntax, or a parameter or receiver. Named results, package-level
// variables and fields are reassignable.
func (c *Classifier) Presumed(v *types.Var) bool {
	if v == nil {
		return false
	}

	if p, ok := c.presumed[v]; ok {
		return p
	}

	p := c.declaredLocally(v)
	c.presumed[v] = p

	return p
}

func (c *Classifier) declaredLocally(v *types.Var) bool {
	if v.IsField() || v.Pkg() == nil || v.Parent() == nil || v.Parent() == v.Pkg().Scope() {
		return false
	}

	pos := v.Pos()
	if !pos.IsValid() {
		return false
	}

	decl, ok := c.file.FindByPos(pos, pos+token.Pos(len(v.Name())))
	if !ok {
		return false
	}

	// Implicit symbols like type switch variables have no declaring syntax
	if id, ok := decl.Node().(*ast.Ident); !ok || c.info.Defs[id] != v {
		return false
	}

	switch k, _ := decl.ParentEdge(); k {
	case edge.ValueSpec_Names, edge.AssignStmt_Lhs, edge.RangeStmt_Key, edge.RangeStmt_Value:
		return true

	case edge.Field_Names:
		switch k, _ := decl.Parent().Parent().ParentEdge(); k {
		case edge.FuncType_Params, edge.FuncDecl_Recv:
			return c.params

		default: // results are out parameters
			return false
		}

	default:
		return false
	}
}

// Disallowed reports whether writing v at site is a disallowed reassignment.
//
// Unresolved variables are allowed. Otherwise, reassignment of presumed not reassignable variables
// is disallowed unless a directive of an enclosing scope, innermost first, names the variable.
func (c *Classifier) Disallowed(ctx context.Context, v *types.Var, site inspector.Cursor) (bool, error) {
	if !c.Presumed(v) {
		return false, nil
	}

	name := v.Name()

	for s, ok := scope.FindEnclosing(site); ok; s, ok = s.Outer() {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		for _, perm := range c.directives.Of(s) {
			if perm.Allows(name) {
				return false, nil
			}
		}
	}

	return true, nil
}

// Directives caches the permission directives of scopes in a file.
type Directives struct {
	file   astutil.CurrentFile
	parser *directive.Parser
	cache  map[inspector.Cursor][]directive.Permission
}

// NewDirectives creates a directive cache for file.
func NewDirectives(file astutil.CurrentFile, parser *directive.Parser) *Directives {
	return &Directives{
		file:   file,
		parser: parser,
		cache:  make(map[inspector.Cursor][]directive.Permission),
	}
}

// Of returns the permission directives attached to scope s.
func (d *Directives) Of(s scope.Scope) []directive.Permission {
	if perms, ok := d.cache[s.Cursor()]; ok {
		return perms
	}

	perms := d.parser.Permissions(s.Comments(d.file))
	d.cache[s.Cursor()] = perms

	return perms
}
