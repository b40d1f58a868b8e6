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

package report_test

import (
	"go/token"
	"testing"

	"golang.org/x/tools/go/analysis"

	. "fillmore-labs.com/reassignguard/internal/report"
)

type span struct{ pos, end token.Pos }

func (s span) Pos() token.Pos { return s.pos }
func (s span) End() token.Pos { return s.end }

var _ analysis.Range = span{}

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       string
		severity string
		message  string
	}{
		{"RO0001", "error", "Reassignment of variable 'x' (RO0001)"},
		{"RO3001", "info", "Unnecessary permission to reassign 'x' (RO3001)"},
		{"RO3002", "info", "Unnecessary reassignment directive 'x' (RO3002)"},
	}

	if got := len(Rules()); got != len(tests) {
		t.Fatalf("Got %d rules, want %d", got, len(tests))
	}

	for _, tt := range tests {
		r, ok := Lookup(tt.id)
		if !ok {
			t.Errorf("Rule %s not found", tt.id)

			continue
		}

		if got := r.Severity.String(); got != tt.severity {
			t.Errorf("%s severity = %s, want %s", tt.id, got, tt.severity)
		}

		d := r.Diagnostic(span{10, 12}, "x")

		if d.Message != tt.message {
			t.Errorf("%s message = %q, want %q", tt.id, d.Message, tt.message)
		}

		if d.Category != tt.id || d.Pos != 10 || d.End != 12 {
			t.Errorf("%s diagnostic = %+v", tt.id, d)
		}
	}

	if _, ok := Lookup("RO9999"); ok {
		t.Error("Expected unknown rule to be missing")
	}
}

func TestSeverityString(t *testing.T) {
	t.Parallel()

	if got, want := Severity(7).String(), "Severity(7)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
