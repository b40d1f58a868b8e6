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

package gclplugin

import reassignguard "fillmore-labs.com/reassignguard/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// Reassign enables reporting of disallowed reassignments.
	Reassign *bool `json:"reassign,omitzero"`
	// Unused enables reporting of unnecessary reassignment permissions.
	Unused *bool `json:"unused,omitzero"`
	// OutArgs treats passing a variable's address to a call as reassignment.
	OutArgs *bool `json:"outargs,omitzero"`
	// Params presumes function parameters and receivers not reassignable.
	Params *bool `json:"params,omitzero"`
	// MaxTries limits the candidates probed for a new variable name.
	MaxTries *int `json:"max-tries,omitzero"`
}

// Options converts [Settings] into a list of [reassignguard.Option] for the reassignguard analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []reassignguard.Option {
	var opts []reassignguard.Option

	opts = appendOption(opts, s.Reassign, reassignguard.WithReassign)
	opts = appendOption(opts, s.Unused, reassignguard.WithUnused)
	opts = appendOption(opts, s.OutArgs, reassignguard.WithOutArgs)
	opts = appendOption(opts, s.Params, reassignguard.WithParams)
	opts = appendOption(opts, s.MaxTries, reassignguard.WithMaxTries)

	return opts
}

// appendOption appends a non-nil setting to a [reassignguard.Option] list.
func appendOption[T any](opts []reassignguard.Option, value *T, constructor func(T) reassignguard.Option) []reassignguard.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
