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

package report

import (
	"fmt"

	"golang.org/x/tools/go/analysis"
)

//go:generate go tool stringer -type Severity -linecomment

// Severity is the default severity of a [Rule].
type Severity uint8

const (
	SeverityInfo    Severity = iota // info
	SeverityWarning                 // warning
	SeverityError                   // error
)

// Rule describes a diagnostic reported by reassignguard.
type Rule struct {
	// ID is the stable rule identifier, used as diagnostic category.
	ID string

	Severity Severity

	// Title is a short description of the rule.
	Title string

	// Format is the message template, taking the variable name as its sole argument.
	Format string
}

// Fix messages of the alternative rewrites for [Reassignment].
const (
	NewVariableFix  = "Declare new variable"
	AddAttributeFix = "Allow reassignment"
)

var (
	// Reassignment flags the reassignment of a variable presumed not reassignable.
	Reassignment = Rule{
		ID:       "RO0001",
		Severity: SeverityError,
		Title:    "Disallowed reassignment",
		Format:   "Reassignment of variable '%s'",
	}

	// UnnecessaryPermission flags a directive entry naming a variable that is never reassigned.
	UnnecessaryPermission = Rule{
		ID:       "RO3001",
		Severity: SeverityInfo,
		Title:    "Unnecessary permission",
		Format:   "Unnecessary permission to reassign '%s'",
	}

	// UnnecessaryDirective flags a directive without any necessary entry.
	UnnecessaryDirective = Rule{
		ID:       "RO3002",
		Severity: SeverityInfo,
		Title:    "Unnecessary directive",
		Format:   "Unnecessary reassignment directive '%s'",
	}
)

// Rules returns all rules in identifier order.
func Rules() []Rule {
	return []Rule{Reassignment, UnnecessaryPermission, UnnecessaryDirective}
}

// Lookup finds the rule with identifier id.
func Lookup(id string) (Rule, bool) {
	for _, r := range Rules() {
		if r.ID == id {
			return r, true
		}
	}

	return Rule{}, false
}

// Message formats the diagnostic message for name.
func (r Rule) Message(name string) string {
	return fmt.Sprintf(r.Format, name) + " (" + r.ID + ")"
}

// Diagnostic creates a diagnostic of this rule for name spanning rng.
func (r Rule) Diagnostic(rng analysis.Range, name string) analysis.Diagnostic {
	return analysis.Diagnostic{
		Pos:      rng.Pos(),
		End:      rng.End(),
		Category: r.ID,
		Message:  r.Message(name),
	}
}
