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

package lsp_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"fillmore-labs.com/reassignguard/internal/lsp"
)

const src = `package m

func f() int {
	x := 1
	x = 2

	return x
}
`

func TestHandler(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/m\n\ngo 1.24\n"), 0o644))

	path := filepath.Join(dir, "m.go")
	require.NoError(t, os.WriteFile(path, []byte("package m\n"), 0o644))

	uri := "file://" + filepath.ToSlash(path)

	var published []*protocol.PublishDiagnosticsParams

	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if p, ok := params.(*protocol.PublishDiagnosticsParams); ok {
				published = append(published, p)
			}
		},
	}

	h := lsp.NewHandler("test")

	_, err = h.Initialize(ctx, &protocol.InitializeParams{})
	require.NoError(t, err)

	err = h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "go", Version: 1, Text: src},
	})
	require.NoError(t, err)

	require.Len(t, published, 1, "Expected diagnostics for opened document")
	require.Len(t, published[0].Diagnostics, 1)

	d := published[0].Diagnostics[0]
	require.Equal(t, "Reassignment of variable 'x' (RO0001)", d.Message)
	require.Equal(t, protocol.Position{Line: 4, Character: 1}, d.Range.Start)
	require.Equal(t, protocol.Position{Line: 4, Character: 2}, d.Range.End)
	require.NotNil(t, d.Severity)
	require.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)

	result, err := h.TextDocumentCodeAction(ctx, &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Range:        d.Range,
	})
	require.NoError(t, err)

	actions, ok := result.([]protocol.CodeAction)
	require.True(t, ok, "Expected code actions, got %T", result)
	require.Len(t, actions, 2)
	require.Equal(t, "Declare new variable", actions[0].Title)
	require.Equal(t, "Allow reassignment", actions[1].Title)
	require.Len(t, actions[0].Edit.Changes[uri], 3)

	result, err = h.TextDocumentCodeAction(ctx, &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Range:        protocol.Range{Start: protocol.Position{Line: 0}, End: protocol.Position{Line: 0, Character: 3}},
	})
	require.NoError(t, err)
	require.Empty(t, result)

	err = h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "package m\n\nfunc f() int {\n\tx := 1\n\n\treturn x\n}\n"}},
	})
	require.NoError(t, err)

	require.Len(t, published, 2)
	require.Empty(t, published[1].Diagnostics)

	err = h.TextDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                3,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "package m\n\nfunc f() int {\n\tx := 1\n\tx = 2\n\n\treturn x + y\n}\n"}},
	})
	require.NoError(t, err)

	require.Len(t, published, 3, "Expected diagnostics despite type errors")
	require.Len(t, published[2].Diagnostics, 1)
	require.Equal(t, "Reassignment of variable 'x' (RO0001)", published[2].Diagnostics[0].Message)

	require.NoError(t, h.TextDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	require.Len(t, published, 4)
}

const nested = `package m

func f() func() int {
	return func() int {
		x := 1
		x = 2

		return x
	}
}
`

func TestHandlerUnsavedIndent(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages with the go command")
	}

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/m\n\ngo 1.24\n"), 0o644))

	// same length as the open document, indented with spaces
	path := filepath.Join(dir, "m.go")
	require.NoError(t, os.WriteFile(path, []byte(strings.ReplaceAll(nested, "\t", " ")), 0o644))

	uri := "file://" + filepath.ToSlash(path)

	var published []*protocol.PublishDiagnosticsParams

	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			if p, ok := params.(*protocol.PublishDiagnosticsParams); ok {
				published = append(published, p)
			}
		},
	}

	h := lsp.NewHandler("test")

	err = h.TextDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "go", Version: 1, Text: nested},
	})
	require.NoError(t, err)

	require.Len(t, published, 1)
	require.Len(t, published[0].Diagnostics, 1)

	result, err := h.TextDocumentCodeAction(ctx, &protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Range:        published[0].Diagnostics[0].Range,
	})
	require.NoError(t, err)

	actions, ok := result.([]protocol.CodeAction)
	require.True(t, ok, "Expected code actions, got %T", result)
	require.Len(t, actions, 2)
	require.Equal(t, "Allow reassignment", actions[1].Title)

	edits := actions[1].Edit.Changes[uri]
	require.Len(t, edits, 1)
	require.Equal(t, "//reassignguard:allow x\n\t", edits[0].NewText)
	require.Equal(t, protocol.Position{Line: 3, Character: 1}, edits[0].Range.Start)
}
