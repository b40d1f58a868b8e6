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

// Package audit finds reassignment directives granting unnecessary permissions.
package audit

import (
	"context"

	"fillmore-labs.com/reassignguard/internal/classify"
	"fillmore-labs.com/reassignguard/internal/directive"
	"fillmore-labs.com/reassignguard/internal/scope"
)

// Finding is an unnecessary permission.
type Finding struct {
	Permission directive.Permission

	// Entry is the unnecessary entry, or nil when no entry of the directive is necessary.
	Entry *directive.Entry
}

// Auditor cross-checks directives against the writes in their function.
type Auditor struct {
	Collector  classify.Collector
	Classifier *classify.Classifier
	Directives *classify.Directives
}

// Audit returns the unnecessary permissions of the directives attached to s.
//
// A name is necessary when the body of s, including nested function literals, writes
// a variable of that name presumed not reassignable. A directive without any necessary
// entry results in a single finding for the whole directive.
func (a Auditor) Audit(ctx context.Context, s scope.Scope) ([]Finding, error) {
	perms := a.Directives.Of(s)
	if len(perms) == 0 {
		return nil, nil
	}

	written, err := a.written(ctx, s)
	if err != nil {
		return nil, err
	}

	var findings []Finding

	for _, perm := range perms {
		var unused []*directive.Entry

		used := false

		for i := range perm.Entries {
			e := &perm.Entries[i]
			if !e.Valid {
				continue
			}

			if _, ok := written[e.Name]; ok {
				used = true
			} else {
				unused = append(unused, e)
			}
		}

		if !used {
			findings = append(findings, Finding{Permission: perm})

			continue
		}

		for _, e := range unused {
			findings = append(findings, Finding{Permission: perm, Entry: e})
		}
	}

	return findings, nil
}

// written collects the names of written variables presumed not reassignable.
func (a Auditor) written(ctx context.Context, s scope.Scope) (map[string]struct{}, error) {
	names := make(map[string]struct{})

	body, ok := s.Body()
	if !ok {
		return names, nil
	}

	sites, err := a.Collector.Collect(ctx, body)
	if err != nil {
		return nil, err
	}

	for _, site := range sites {
		if v := a.Classifier.Resolve(site); a.Classifier.Presumed(v) {
			names[v.Name()] = struct{}{}
		}
	}

	return names, nil
}
