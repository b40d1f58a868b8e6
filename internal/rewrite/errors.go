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

// Package rewrite computes the suggested fixes for disallowed reassignments.
//
// All rewrites are expressed as text edits on the unmodified syntax tree. A rewrite
// either yields its complete set of edits or an error, never a partial result.
package rewrite

import "errors"

var (
	// ErrNameExhausted is returned when no unique variable name could be found.
	ErrNameExhausted = errors.New("unique name search exhausted")

	// ErrNoScope is returned when no enclosing function can carry a directive.
	ErrNoScope = errors.New("no enclosing function")

	// ErrUnspellableType is returned when a variable type can't be written in the current file.
	ErrUnspellableType = errors.New("type can't be spelled")

	// ErrNeedsDeclaration is returned when a typed declaration is required in a place that doesn't allow one.
	ErrNeedsDeclaration = errors.New("typed declaration not possible")

	// ErrEscapesScope is returned when a renamed reference would be outside of the new variable's scope.
	ErrEscapesScope = errors.New("reference outside of new variable scope")

	// ErrUnresolved is returned for writes without a resolved variable.
	ErrUnresolved = errors.New("unresolved variable")
)
