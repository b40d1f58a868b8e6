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

// Package report emits reassignguard diagnostics with their suggested fixes.
package report

import (
	"context"
	"errors"
	"go/token"
	"go/types"
	"runtime/trace"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/reassignguard/internal/astutil"
	"fillmore-labs.com/reassignguard/internal/audit"
	"fillmore-labs.com/reassignguard/internal/classify"
	"fillmore-labs.com/reassignguard/internal/directive"
	"fillmore-labs.com/reassignguard/internal/rewrite"
)

// Reporter emits the diagnostics of one top-level function.
type Reporter struct {
	report    func(analysis.Diagnostic)
	file      astutil.CurrentFile
	extractor *rewrite.Extractor
	perms     rewrite.Permissions
	session   *fixSession
}

// NewReporter creates a [Reporter]. A nil extractor disables suggested fixes.
func NewReporter(report func(analysis.Diagnostic), file astutil.CurrentFile, extractor *rewrite.Extractor) *Reporter {
	return &Reporter{
		report:    report,
		file:      file,
		extractor: extractor,
		perms:     rewrite.Permissions{File: file},
		session:   newFixSession(),
	}
}

// Reassignment reports the disallowed reassignment of v at site.
//
// The diagnostic carries up to two alternative fixes: [NewVariableFix] and [AddAttributeFix].
func (r *Reporter) Reassignment(ctx context.Context, site classify.WriteSite, v *types.Var) {
	target := site.Target().Node()
	if r.file.NoLintComment(target.Pos()) {
		return
	}

	defer trace.StartRegion(ctx, "ReportReassignment").End()

	diagnostic := Reassignment.Diagnostic(target, v.Name())

	if r.extractor != nil {
		diagnostic.SuggestedFixes = r.suggestedFixes(ctx, site, v)
	}

	r.report(diagnostic)
}

func (r *Reporter) suggestedFixes(ctx context.Context, site classify.WriteSite, v *types.Var) []analysis.SuggestedFix {
	var fixes []analysis.SuggestedFix

	edits, err := r.extractor.NewVariable(ctx, site)

	switch {
	case err == nil:
		if r.session.acceptEdits(edits) {
			fixes = append(fixes, analysis.SuggestedFix{Message: NewVariableFix, TextEdits: edits})
		}

	case errors.Is(err, rewrite.ErrNameExhausted):
		astutil.InternalError(r.report, site.Target().Node(), "Can't declare new variable: %v", err)

	case ctx.Err() != nil:
		return nil
	}

	ins, err := r.perms.Add(ctx, site.Target(), v.Name())
	if err == nil {
		fixes = append(fixes, analysis.SuggestedFix{Message: AddAttributeFix, TextEdits: []analysis.TextEdit{ins.Edit}})
	}

	return fixes
}

// Unnecessary reports an unnecessary permission.
func (r *Reporter) Unnecessary(finding audit.Finding) {
	if r.file.NoLintComment(finding.Permission.Pos()) {
		return
	}

	if e := finding.Entry; e != nil {
		r.report(UnnecessaryPermission.Diagnostic(entryRange{e.Pos, e.End}, e.Name))

		return
	}

	r.report(UnnecessaryDirective.Diagnostic(finding.Permission, directive.Name+":allow"))
}

// entryRange implements [analysis.Range] for a directive entry.
type entryRange struct{ pos, end token.Pos }

func (e entryRange) Pos() token.Pos { return e.pos }

func (e entryRange) End() token.Pos { return e.end }
