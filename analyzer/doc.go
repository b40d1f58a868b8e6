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

// Package analyzer implements the reassignguard static analysis pass.
//
// # Overview
//
// ReassignGuard treats local variables and parameters as assigned once. Every
// later write through a bare identifier is reported (RO0001): assignments,
// assignment operations, increments, elements of multi-value assignments and
// addresses passed as call arguments. Post statements of `for` loops, named
// results, package-level variables and fields are exempt.
//
// # Permissions
//
// A directive comment allows reassignment of the named variables in a function
// and the function literals nested in it:
//
//	//reassignguard:allow i, err
//	func parse(data []byte) (err error) {
//	    i := 0
//	    ...
//	}
//
// Directives for function literals go directly above the statement containing
// the literal. Entries that are never reassigned are reported (RO3001), as are
// directives where no entry is necessary (RO3002).
//
// # Example
//
// Before:
//
//	func total(items []int) int {
//	    sum := 0
//	    sum += items[0]
//	    return sum
//	}
//
// After applying the "Declare new variable" fix:
//
//	func total(items []int) int {
//	    sum := 0
//	    sum1 := sum + items[0]
//	    return sum1
//	}
//
// The alternative "Allow reassignment" fix adds a directive to the function instead.
package analyzer
