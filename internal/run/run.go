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

// Package run executes the reassignguard analysis pipeline.
package run

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/reassignguard/internal/astutil"
	"fillmore-labs.com/reassignguard/internal/audit"
	"fillmore-labs.com/reassignguard/internal/classify"
	"fillmore-labs.com/reassignguard/internal/config"
	"fillmore-labs.com/reassignguard/internal/report"
	"fillmore-labs.com/reassignguard/internal/rewrite"
	"fillmore-labs.com/reassignguard/internal/scope"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the reassignguard analyzer's pipeline.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("reassignguard: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "ReassignGuard")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	// Loop over all files
	for f := range in.Root().Children() {
		file := f.Node().(*ast.File)

		currentFile := astutil.NewCurrentFile(p.Fset, file, r.readFile(p, file), r.parser.NoLint)
		if !currentFile.Valid() {
			astutil.InternalError(p.Report, file, "File %s without valid info", file.Name.Name)

			continue
		}

		// Skip generated files
		if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		// Skip files with nolint comment
		if currentFile.NoLintGroup(file.Doc) {
			continue
		}

		if err := r.checkFile(ctx, p, f, currentFile); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

// checkFile analyzes all top-level functions of a file.
func (r *Options) checkFile(ctx context.Context, p *analysis.Pass, f inspector.Cursor, currentFile astutil.CurrentFile) error {
	defer trace.StartRegion(ctx, "CheckFile").End()

	directives := classify.NewDirectives(currentFile, r.parser)

	c := check{
		pass:       p,
		file:       currentFile,
		collector:  classify.Collector{Info: p.TypesInfo, OutArgs: r.Behavior.Enabled(config.OutArguments)},
		classifier: classify.NewClassifier(p.TypesInfo, f, directives, r.Behavior.Enabled(config.Parameters)),
		directives: directives,
		analyzers:  r.Analyzers,
		maxTries:   r.MaxTries,
	}

	// Function declarations and function literals in package-level declarations
	for fun := range f.Preorder((*ast.FuncDecl)(nil), (*ast.FuncLit)(nil)) {
		if _, ok := fun.Node().(*ast.FuncLit); ok {
			if _, nested := scope.FindEnclosing(fun.Parent()); nested {
				continue
			}
		}

		s, _ := scope.FindEnclosing(fun)

		// Skip functions with nolint comment
		if currentFile.NoLintGroup(s.Comments(currentFile)) {
			continue
		}

		if err := c.function(ctx, s); err != nil {
			return err
		}
	}

	return nil
}

type check struct {
	pass       *analysis.Pass
	file       astutil.CurrentFile
	collector  classify.Collector
	classifier *classify.Classifier
	directives *classify.Directives
	analyzers  config.Analyzers
	maxTries   int
}

// function analyzes a top-level function and the function literals nested in it.
func (c check) function(ctx context.Context, s scope.Scope) error {
	body, ok := s.Body()
	if !ok {
		return nil
	}

	var extractor *rewrite.Extractor
	if !c.file.Generated() {
		namer := rewrite.NewNamer(c.maxTries)
		extractor = rewrite.NewExtractor(c.pass.Fset, c.pass.TypesInfo, c.pass.Pkg, c.file, namer)
	}

	reporter := report.NewReporter(c.pass.Report, c.file, extractor)

	if c.analyzers.Enabled(config.ReassignAnalyzer) {
		if err := c.reassignments(ctx, body, reporter); err != nil {
			return err
		}
	}

	if c.analyzers.Enabled(config.UnusedAnalyzer) {
		if err := c.unused(ctx, s, reporter); err != nil {
			return err
		}
	}

	return nil
}

// reassignments reports disallowed reassignments in body.
func (c check) reassignments(ctx context.Context, body inspector.Cursor, reporter *report.Reporter) error {
	defer trace.StartRegion(ctx, "Reassignments").End()

	sites, err := c.collector.Collect(ctx, body)
	if err != nil {
		return err
	}

	for _, site := range sites {
		v := c.classifier.Resolve(site)
		if v == nil {
			continue // unresolved
		}

		disallowed, err := c.classifier.Disallowed(ctx, v, site.Target())
		if err != nil {
			return err
		}

		if disallowed {
			reporter.Reassignment(ctx, site, v)
		}
	}

	return nil
}

// unused reports unnecessary permissions of s and all function literals nested in it.
func (c check) unused(ctx context.Context, s scope.Scope, reporter *report.Reporter) error {
	defer trace.StartRegion(ctx, "Unused").End()

	auditor := audit.Auditor{
		Collector:  c.collector,
		Classifier: c.classifier,
		Directives: c.directives,
	}

	for fun := range s.Cursor().Preorder((*ast.FuncDecl)(nil), (*ast.FuncLit)(nil)) {
		inner, _ := scope.FindEnclosing(fun)

		findings, err := auditor.Audit(ctx, inner)
		if err != nil {
			return err
		}

		for _, finding := range findings {
			reporter.Unnecessary(finding)
		}
	}

	return nil
}

// readFile returns the content of file, or nil when it can't be read.
// Without content, fixes indent with tabs.
func (r *Options) readFile(p *analysis.Pass, file *ast.File) []byte {
	handle := p.Fset.File(file.FileStart)
	if handle == nil {
		return nil
	}

	read := p.ReadFile
	if r.ReadFile != nil {
		read = r.ReadFile
	}

	if read == nil {
		return nil
	}

	src, err := read(handle.Name())
	if err != nil {
		return nil
	}

	return src
}
