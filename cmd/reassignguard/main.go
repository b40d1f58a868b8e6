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

// Command reassignguard reports reassignments of variables presumed to be assigned once.
//
// Usage:
//
//	reassignguard [-flag] [package]
//	reassignguard rules
//
// The rules subcommand lists the reported diagnostics.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/tools/go/analysis/singlechecker"

	"fillmore-labs.com/reassignguard/analyzer"
	"fillmore-labs.com/reassignguard/internal/report"
)

func main() {
	if len(os.Args) == 2 && os.Args[1] == "rules" {
		if err := writeRules(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		return
	}

	singlechecker.Main(analyzer.Analyzer)
}

// writeRules prints a table of all rules.
func writeRules(w io.Writer) error {
	bold := color.New(color.Bold).SprintFunc()

	for _, r := range report.Rules() {
		if _, err := fmt.Fprintf(w, "%s  %-7s  %s\n", bold(r.ID), severityColor(r.Severity)(r.Severity), r.Title); err != nil {
			return err
		}
	}

	for _, fix := range []string{report.NewVariableFix, report.AddAttributeFix} {
		if _, err := fmt.Fprintf(w, "%s  fix: %s\n", bold(report.Reassignment.ID), fix); err != nil {
			return err
		}
	}

	return nil
}

func severityColor(s report.Severity) func(...any) string {
	switch s {
	case report.SeverityError:
		return color.New(color.FgRed).SprintFunc()

	case report.SeverityWarning:
		return color.New(color.FgYellow).SprintFunc()

	default:
		return color.New(color.FgCyan).SprintFunc()
	}
}
