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

package config

// AnalyzerFlags represents specific analyzers.
type AnalyzerFlags uint8

const (
	// ReassignAnalyzer enables the detection of disallowed reassignments (RO0001).
	ReassignAnalyzer AnalyzerFlags = 1 << iota

	// UnusedAnalyzer enables the detection of unnecessary reassignment permissions (RO3001, RO3002).
	UnusedAnalyzer
)

// Analyzers is the set of enabled analyzers.
type Analyzers = BitMask[AnalyzerFlags]

// DefaultAnalyzers returns the analyzers enabled by default.
func DefaultAnalyzers() Analyzers {
	return NewBitMask(ReassignAnalyzer, UnusedAnalyzer)
}

// Config represents configuration options for the analyzers.
type Config uint8

const (
	// IncludeGenerated specifies whether to include analysis of generated files.
	IncludeGenerated Config = 1 << iota

	// OutArguments specifies whether address-of call arguments (&x) count as reassignments.
	OutArguments

	// Parameters specifies whether function parameters are presumed not reassignable.
	Parameters
)

// Behavior holds the behavioral options.
type Behavior = BitMask[Config]

// DefaultBehavior returns the behavioral options enabled by default.
func DefaultBehavior() Behavior {
	return NewBitMask(OutArguments, Parameters)
}
