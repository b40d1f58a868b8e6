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

// Package testsource provides utilities for parsing and analyzing Go source code in tests.
//
// It handles the boilerplate of parsing and type-checking Go source fragments
// for unit tests of the reassignguard packages.
package testsource

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/ast/edge"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/reassignguard/internal/astutil"
)

const testpkg = "test"

// Source is a parsed and type-checked test file.
type Source struct {
	Fset *token.FileSet
	File *ast.File
	Src  []byte
	Pkg  *types.Package
	Info *types.Info

	// Root is the cursor of the file node.
	Root inspector.Cursor
}

// Parse parses a Go source code fragment.
// The provided source `src` is automatically wrapped in a function body `func _() { ... }`
// within a package `test`. This allows testing statement-level code fragments without
// manually constructing the surrounding package and function scaffolding.
//
// Returns the checked source and a cursor positioned at the wrapper function's Body field.
func Parse(tb testing.TB, src string) (s Source, body inspector.Cursor) {
	tb.Helper()

	s = ParseFile(tb, "func _() {\n"+src+"\n}\n")

	for c := range s.Root.Preorder((*ast.FuncDecl)(nil)) {
		return s, c.ChildAt(edge.FuncDecl_Body, -1)
	}

	tb.Fatal("Can't find function")

	return s, s.Root
}

// ParseFile parses and type-checks the declarations `src` in package `test`.
func ParseFile(tb testing.TB, src string) Source {
	tb.Helper()

	const filename = "test.go"

	text := "package " + testpkg + "\n\n" + src

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, text, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	pkg, info := Check(tb, fset, f)

	root, _ := inspector.New([]*ast.File{f}).Root().FirstChild()

	return Source{Fset: fset, File: f, Src: []byte(text), Pkg: pkg, Info: info, Root: root}
}

// Check performs type checking on the provided AST file.
// It creates and returns a fully type-checked *types.Package and *types.Info.
func Check(tb testing.TB, fset *token.FileSet, f *ast.File) (*types.Package, *types.Info) {
	tb.Helper()

	info := &types.Info{
		Types:     make(map[ast.Expr]types.TypeAndValue),
		Defs:      make(map[*ast.Ident]types.Object),
		Uses:      make(map[*ast.Ident]types.Object),
		Implicits: make(map[ast.Node]types.Object),
		Scopes:    make(map[ast.Node]*types.Scope),
	}

	conf := types.Config{Importer: importer.Default()}

	pkg, err := conf.Check(testpkg, fset, []*ast.File{f}, info)
	if err != nil {
		tb.Fatalf("failed to type Check source: %v", err)
	}

	return pkg, info
}

// CurrentFile returns the [astutil.CurrentFile] of the source.
func (s Source) CurrentFile(nolint func(*ast.Comment) bool) astutil.CurrentFile {
	return astutil.NewCurrentFile(s.Fset, s.File, s.Src, nolint)
}

// Ident returns the cursor of the n-th identifier (counting from 0) named `name`.
func (s Source) Ident(tb testing.TB, name string, n int) inspector.Cursor {
	tb.Helper()

	for c := range s.Root.Preorder((*ast.Ident)(nil)) {
		if c.Node().(*ast.Ident).Name != name {
			continue
		}

		if n == 0 {
			return c
		}
		n--
	}

	tb.Fatalf("Identifier %q not found", name)

	return s.Root
}

// Offset returns the position of the first occurrence of `substr` in the file.
func (s Source) Offset(tb testing.TB, substr string) token.Pos {
	tb.Helper()

	i := strings.Index(string(s.Src), substr)
	if i < 0 {
		tb.Fatalf("Substring %q not found", substr)
	}

	return s.Fset.File(s.File.FileStart).Pos(i)
}
