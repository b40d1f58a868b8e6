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

package detect

import "fmt"

//reassignguard:allow i, j, k // want "Unnecessary permission to reassign 'j'" "Unnecessary permission to reassign 'k'"
func partial() {
	i := 0
	i = 1
	fmt.Println(i)
}

//reassignguard:allow a, b // want "Unnecessary reassignment directive 'reassignguard:allow'"
func none() {
	a := 1
	fmt.Println(a)
}

//reassignguard:allow // want "Unnecessary reassignment directive"
func empty() {}

//reassignguard:allow counter // want "Unnecessary reassignment directive"
func packageVar() {
	counter = 2
}

//reassignguard:allow 1x, i
func invalidEntry() {
	i := 0
	i = 1
	fmt.Println(i)
}

//reassignguard:allow err // want "Unnecessary reassignment directive"
func result() (err error) {
	err = fmt.Errorf("failed")

	return err
}

func literal() {
	//reassignguard:allow y // want "Unnecessary reassignment directive"
	f := func() int {
		y := 1

		return y
	}
	fmt.Println(f())
}
