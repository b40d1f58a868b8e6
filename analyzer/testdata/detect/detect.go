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

import (
	"encoding/json"
	"fmt"
	"strconv"
)

var counter int

type point struct{ x, y int }

func locals() {
	i := 0
	fmt.Println(i)
	i = 1 // want "Reassignment of variable 'i'"
	fmt.Println(i)
}

func compound(n int) int {
	sum := 0
	for i := 0; i < n; i += 2 {
		sum += i // want "Reassignment of variable 'sum'"
		i += 1   // want "Reassignment of variable 'i'"
	}

	return sum
}

func increments() {
	n := 0
	n++ // want "Reassignment of variable 'n'"
	n-- // want "Reassignment of variable 'n'"
	fmt.Println(n)
}

func loop(xs []int) {
	for i := 0; i < len(xs); i++ {
		fmt.Println(xs[i])
	}

	for _, x := range xs {
		x *= 2 // want "Reassignment of variable 'x'"
		fmt.Println(x)
	}
}

func parameters(s string, p point) {
	s = "x" // want "Reassignment of variable 's'"
	p.x = 1
	fmt.Println(s, p)
}

func (p *point) receiver() {
	p = &point{} // want "Reassignment of variable 'p'"
	p.y = 2
}

func (p *point) fieldAndLocal() {
	x := p.x
	p.x = 1
	x = 2 // want "Reassignment of variable 'x'"
	fmt.Println(x)
}

func namedResult() (err error) {
	err = fmt.Errorf("failed")

	return
}

func packageLevel() {
	counter = 1
	counter++
}

func indirect(xs []int, p *int, m map[string]int) {
	xs[0] = 1
	*p = 2
	m["a"] = 3
}

func tuples() (int, error) {
	a, err := strconv.Atoi("1")
	if err != nil {
		return 0, err
	}

	b, err := strconv.Atoi("2") // want "Reassignment of variable 'err'"
	if err != nil {
		return 0, err
	}

	a, b = b, a // want "Reassignment of variable 'a'" "Reassignment of variable 'b'"
	_, b = 0, a // want "Reassignment of variable 'b'"

	return a + b, nil
}

func outArgs(data []byte) error {
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil { // want "Reassignment of variable 'v'"
		return err
	}

	fmt.Println(v)

	return nil
}

func typeSwitch(x any) {
	switch v := x.(type) {
	case int:
		v = 2
		fmt.Println(v)
	}
}

func closures() {
	x := 0
	f := func() {
		x = 1 // want "Reassignment of variable 'x'"
	}
	f()
	fmt.Println(x)
}

//reassignguard:allow i
func allowed() {
	i := 0
	i = 1
	fmt.Println(i)
}

//reassignguard:allow "i", j
func quoted() {
	i, j := 0, 0
	i = 1
	j++
	fmt.Println(i, j)
}

// outerAllows has its permission inherited by nested functions.
//
//reassignguard:allow x
func outerAllows() {
	x := 0
	func() {
		x = 1
	}()
	fmt.Println(x)
}

func innerAllows() {
	x := 0
	//reassignguard:allow x
	f := func() {
		x = 1
	}
	f()
	x = 2 // want "Reassignment of variable 'x'"
	fmt.Println(x)
}

var handler = func(s string) string {
	s += "!" // want "Reassignment of variable 's'"

	return s
}

func suppressed() {
	i := 0
	i = 1 //nolint:reassignguard
	fmt.Println(i)
}

//nolint:reassignguard
func suppressedFunc() {
	i := 0
	i = 1
	fmt.Println(i)
}
