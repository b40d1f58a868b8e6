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

// Package lsp serves reassignguard diagnostics and fixes over the Language Server Protocol.
package lsp

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"fillmore-labs.com/reassignguard/analyzer"
	"fillmore-labs.com/reassignguard/internal/report"
)

const source = "reassignguard"

var log = commonlog.GetLogger("reassignguard.lsp")

// Handler implements the LSP server handlers for reassignguard.
//
// It keeps the text of open documents and the code actions of the last analysis.
type Handler struct {
	options []analyzer.Option
	version string

	mu        sync.Mutex
	documents map[protocol.DocumentUri]*document
}

type document struct {
	path    string
	content []byte
	actions []action
}

// action is a quick fix for a published diagnostic.
type action struct {
	diagnostic protocol.Diagnostic
	title      string
	edits      []protocol.TextEdit
}

// NewHandler creates a [Handler] running the reassignguard analyzer configured by opts.
func NewHandler(version string, opts ...analyzer.Option) *Handler {
	return &Handler{
		options:   opts,
		version:   version,
		documents: make(map[protocol.DocumentUri]*document),
	}
}

// Protocol returns the [protocol.Handler] dispatching to h.
func (h *Handler) Protocol() *protocol.Handler {
	return &protocol.Handler{
		Initialize:             h.Initialize,
		Initialized:            h.Initialized,
		Shutdown:               h.Shutdown,
		SetTrace:               h.SetTrace,
		TextDocumentDidOpen:    h.TextDocumentDidOpen,
		TextDocumentDidChange:  h.TextDocumentDidChange,
		TextDocumentDidSave:    h.TextDocumentDidSave,
		TextDocumentDidClose:   h.TextDocumentDidClose,
		TextDocumentCodeAction: h.TextDocumentCodeAction,
	}
}

// Initialize advertises the server capabilities.
func (h *Handler) Initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.ClientInfo != nil {
		log.Infof("initialize from %s", params.ClientInfo.Name)
	}

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptr(true),
				Change:    ptr(protocol.TextDocumentSyncKindFull),
				Save:      ptr(true),
			},
			CodeActionProvider: &protocol.CodeActionOptions{
				CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindQuickFix},
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    source,
			Version: &h.version,
		},
	}, nil
}

// Initialized is called after the client received the capabilities.
func (h *Handler) Initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	log.Debug("initialized")

	return nil
}

// Shutdown handles the LSP shutdown request.
func (h *Handler) Shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)

	return nil
}

// SetTrace changes the trace level.
func (h *Handler) SetTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)

	return nil
}

// TextDocumentDidOpen analyzes a newly opened document.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI

	path, err := uriToPath(uri)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.documents[uri] = &document{path: path, content: []byte(params.TextDocument.Text)}
	h.mu.Unlock()

	h.publish(ctx, uri)

	return nil
}

// TextDocumentDidChange replaces the document content and analyzes it again.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	h.mu.Lock()

	doc, ok := h.documents[uri]
	if !ok {
		h.mu.Unlock()

		return fmt.Errorf("change of unknown document %s", uri)
	}

	for _, change := range params.ContentChanges {
		switch change := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			doc.content = []byte(change.Text)

		case protocol.TextDocumentContentChangeEvent:
			if change.Range == nil {
				doc.content = []byte(change.Text)

				continue
			}

			m := newMapper(doc.content)
			start, end := m.Offset(change.Range.Start), m.Offset(change.Range.End)
			doc.content = slices.Concat(doc.content[:start], []byte(change.Text), doc.content[end:])
		}
	}

	h.mu.Unlock()

	h.publish(ctx, uri)

	return nil
}

// TextDocumentDidSave analyzes a saved document.
func (h *Handler) TextDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI

	if params.Text != nil {
		h.mu.Lock()
		if doc, ok := h.documents[uri]; ok {
			doc.content = []byte(*params.Text)
		}
		h.mu.Unlock()
	}

	h.publish(ctx, uri)

	return nil
}

// TextDocumentDidClose forgets a document and clears its diagnostics.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	h.mu.Lock()
	delete(h.documents, uri)
	h.mu.Unlock()

	notify(ctx, uri, []protocol.Diagnostic{})

	return nil
}

// TextDocumentCodeAction returns the quick fixes of diagnostics within the requested range.
func (h *Handler) TextDocumentCodeAction(_ *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	uri := params.TextDocument.URI

	h.mu.Lock()
	defer h.mu.Unlock()

	doc, ok := h.documents[uri]
	if !ok {
		return nil, nil
	}

	actions := []protocol.CodeAction{}

	for _, a := range doc.actions {
		if !intersects(a.diagnostic.Range, params.Range) {
			continue
		}

		actions = append(actions, protocol.CodeAction{
			Title:       a.title,
			Kind:        ptr(protocol.CodeActionKindQuickFix),
			Diagnostics: []protocol.Diagnostic{a.diagnostic},
			Edit: &protocol.WorkspaceEdit{
				Changes: map[protocol.DocumentUri][]protocol.TextEdit{uri: a.edits},
			},
		})
	}

	return actions, nil
}

// publish analyzes the document and sends its diagnostics to the client.
func (h *Handler) publish(ctx *glsp.Context, uri protocol.DocumentUri) {
	h.mu.Lock()

	doc, ok := h.documents[uri]
	if !ok {
		h.mu.Unlock()

		return
	}

	path, content := doc.path, doc.content

	overlay := make(map[string][]byte, len(h.documents))
	for _, d := range h.documents {
		overlay[d.path] = d.content
	}

	h.mu.Unlock()

	findings, err := analyze(context.Background(), newAnalyzer(h.options, overlay), path, overlay)
	if err != nil {
		log.Warningf("can't analyze %s: %v", path, err)

		return
	}

	diagnostics, actions := convert(newMapper(content), findings)

	h.mu.Lock()
	if doc, ok := h.documents[uri]; ok && slices.Equal(doc.content, content) {
		doc.actions = actions
	}
	h.mu.Unlock()

	log.Debugf("%d diagnostics for %s", len(diagnostics), path)

	notify(ctx, uri, diagnostics)
}

// convert translates findings into LSP diagnostics and quick fixes.
func convert(m mapper, findings []finding) ([]protocol.Diagnostic, []action) {
	diagnostics := []protocol.Diagnostic{}

	var actions []action

	for _, f := range findings {
		d := protocol.Diagnostic{
			Range:    m.Range(f.Start, f.End),
			Severity: ptr(severity(f.Diagnostic.Category)),
			Code:     &protocol.IntegerOrString{Value: f.Diagnostic.Category},
			Source:   ptr(source),
			Message:  f.Diagnostic.Message,
		}

		diagnostics = append(diagnostics, d)

		for _, x := range f.Fixes {
			edits := make([]protocol.TextEdit, 0, len(x.Edits))
			for _, e := range x.Edits {
				edits = append(edits, protocol.TextEdit{Range: m.Range(e.Start, e.End), NewText: e.NewText})
			}

			actions = append(actions, action{diagnostic: d, title: x.Message, edits: edits})
		}
	}

	return diagnostics, actions
}

func severity(category string) protocol.DiagnosticSeverity {
	rule, ok := report.Lookup(category)
	if !ok {
		return protocol.DiagnosticSeverityError // internal errors
	}

	switch rule.Severity {
	case report.SeverityError:
		return protocol.DiagnosticSeverityError

	case report.SeverityWarning:
		return protocol.DiagnosticSeverityWarning

	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func notify(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// intersects reports whether two ranges overlap or touch.
func intersects(a, b protocol.Range) bool {
	return !before(a.End, b.Start) && !before(b.End, a.Start)
}

func before(a, b protocol.Position) bool {
	return a.Line < b.Line || a.Line == b.Line && a.Character < b.Character
}

func uriToPath(uri protocol.DocumentUri) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid document URI %q: %w", uri, err)
	}

	if u.Scheme != "file" {
		return "", fmt.Errorf("unsupported URI scheme %q", u.Scheme)
	}

	path := u.Path
	if runtime.GOOS == "windows" {
		path = strings.TrimPrefix(path, "/")
	}

	return filepath.Clean(filepath.FromSlash(path)), nil
}

func ptr[T any](v T) *T { return &v }
