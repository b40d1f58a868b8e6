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

package run

import (
	"fillmore-labs.com/reassignguard/internal/config"
	"fillmore-labs.com/reassignguard/internal/directive"
	"fillmore-labs.com/reassignguard/internal/rewrite"
)

// Options represent configuration options for the reassignguard analyzer.
type Options struct {
	// Analyzers represent the Analyzers to be enabled.
	Analyzers config.Analyzers

	// Behavior holds behavioral options.
	Behavior config.Behavior

	// MaxTries limits the candidates probed when synthesizing a new variable name.
	MaxTries int

	// ReadFile overrides [analysis.Pass.ReadFile] when set.
	ReadFile func(filename string) ([]byte, error)

	// parser is owned by this analyzer instance.
	parser *directive.Parser
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Analyzers: config.DefaultAnalyzers(),
		Behavior:  config.DefaultBehavior(),
		MaxTries:  rewrite.DefaultMaxTries,
		parser:    directive.NewParser(),
	}
}
