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

package lsp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/checker"
	"golang.org/x/tools/go/packages"

	"fillmore-labs.com/reassignguard/analyzer"
)

// ErrNoPackage is returned when a document does not belong to a loadable package.
var ErrNoPackage = errors.New("no package for file")

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedTypesSizes |
	packages.NeedSyntax |
	packages.NeedTypesInfo |
	packages.NeedModule

// finding is an analyzer diagnostic located in a single file.
type finding struct {
	Diagnostic analysis.Diagnostic
	Start, End int // byte offsets
	Fixes      []fix
}

type fix struct {
	Message string
	Edits   []edit
}

type edit struct {
	Start, End int
	NewText    string
}

// newAnalyzer creates an analyzer that reads open documents from overlay and
// runs on packages with errors, skipping what can't be resolved.
func newAnalyzer(opts []analyzer.Option, overlay map[string][]byte) *analysis.Analyzer {
	readFile := func(filename string) ([]byte, error) {
		if content, ok := overlay[filename]; ok {
			return content, nil
		}

		return os.ReadFile(filename)
	}

	a := analyzer.New(append(slices.Clip(opts), analyzer.WithReadFile(readFile))...)
	a.RunDespiteErrors = true

	return a
}

// analyze runs the analyzer on the package containing path, with the unsaved contents
// of open documents taking precedence over the files on disk.
func analyze(ctx context.Context, a *analysis.Analyzer, path string, overlay map[string][]byte) ([]finding, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    loadMode,
		Dir:     filepath.Dir(path),
		Overlay: overlay,
	}

	pkgs, err := packages.Load(cfg, "file="+path)
	if err != nil {
		return nil, fmt.Errorf("can't load package of %s: %w", path, err)
	}

	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPackage, path)
	}

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			log.Debugf("package %s: %v", pkg.PkgPath, e)
		}
	}

	graph, err := checker.Analyze([]*analysis.Analyzer{a}, pkgs, nil)
	if err != nil {
		return nil, fmt.Errorf("analysis of %s failed: %w", path, err)
	}

	var findings []finding

	for _, act := range graph.Roots {
		if act.Err != nil {
			return nil, act.Err
		}

		fset := act.Package.Fset

		for _, d := range act.Diagnostics {
			start := fset.Position(d.Pos)
			if start.Filename != path {
				continue
			}

			end := start
			if d.End.IsValid() {
				end = fset.Position(d.End)
			}

			f := finding{Diagnostic: d, Start: start.Offset, End: end.Offset}

			for _, sf := range d.SuggestedFixes {
				x := fix{Message: sf.Message}

				for _, e := range sf.TextEdits {
					from := fset.Position(e.Pos).Offset

					to := from
					if e.End.IsValid() {
						to = fset.Position(e.End).Offset
					}

					x.Edits = append(x.Edits, edit{Start: from, End: to, NewText: string(e.NewText)})
				}

				f.Fixes = append(f.Fixes, x)
			}

			findings = append(findings, f)
		}
	}

	return findings, nil
}
