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

package rewrite

import (
	"fmt"
	"go/types"
	"strconv"
	"strings"
)

// DefaultMaxTries is the default limit of candidates probed by [Namer.Unique].
const DefaultMaxTries = 1000

// Namer synthesizes unique variable names.
//
// Names handed out are reserved for the lifetime of the Namer, so that subsequent
// rewrites of the same function see the result of earlier ones.
type Namer struct {
	maxTries int
	reserved map[string]struct{}
}

// NewNamer creates a [Namer] probing at most maxTries candidates per name.
func NewNamer(maxTries int) *Namer {
	if maxTries <= 0 {
		maxTries = DefaultMaxTries
	}

	return &Namer{
		maxTries: maxTries,
		reserved: make(map[string]struct{}),
	}
}

// Unique derives a new name from old that is not declared in scope s, any of its
// parent scopes or any nested scope, and has not been handed out before.
//
// A trailing number of old is incremented: x becomes x1, x1 becomes x2.
func (n *Namer) Unique(old string, s *types.Scope) (string, error) {
	base := strings.TrimRight(old, "0123456789")

	num, err := strconv.Atoi(old[len(base):])
	if err != nil {
		num = 0 // no or oversized suffix
	}

	for range n.maxTries {
		num++
		name := base + strconv.Itoa(num)

		if _, ok := n.reserved[name]; ok {
			continue
		}

		// Check if this name conflicts with any existing variable in the scope hierarchy
		if checkParents(s, name) || checkChildren(s, name) {
			continue
		}

		n.reserved[name] = struct{}{}

		return name, nil
	}

	return "", fmt.Errorf("%w: %s after %d tries", ErrNameExhausted, old, n.maxTries)
}

// Reserve marks name as used.
func (n *Namer) Reserve(name string) {
	n.reserved[name] = struct{}{}
}

// checkParents checks if the name is already defined in the scope or any of its parent scopes.
//
// Declarations after the position of interest are included.
func checkParents(scope *types.Scope, name string) bool {
	for parent := scope; parent != nil; parent = parent.Parent() {
		if parent.Lookup(name) != nil {
			return true
		}
	}

	return false
}

// checkChildren recursively checks if the name is defined in any of the child scopes.
func checkChildren(scope *types.Scope, name string) bool {
	for child := range scope.Children() {
		if child.Lookup(name) != nil {
			return true
		}

		if checkChildren(child, name) {
			return true
		}
	}

	return false
}
