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

package fix

import (
	"encoding/json"
	"fmt"
	"strconv"
)

func simple() {
	i := 0
	fmt.Println(i)
	i = 1 // want "Reassignment of variable 'i'"
	fmt.Println(i)
}

type myErr struct{}

func (myErr) Error() string { return "my error" }

func typed() error {
	var err error
	fmt.Println(err)
	err = myErr{} // want "Reassignment of variable 'err'"

	return err
}

func compound(a, b int) int {
	sum := a
	sum *= a + b // want "Reassignment of variable 'sum'"

	return sum
}

func increment() int {
	n := 1
	n++ // want "Reassignment of variable 'n'"

	return n
}

func tuple(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}

	m, err := strconv.Atoi(s + "0") // want "Reassignment of variable 'err'"
	if err != nil {
		return 0, err
	}

	return n + m, nil
}

//reassignguard:allow a
func swap() {
	a, b := 1, 2
	fmt.Println(a, b)
	a, b = b, a // want "Reassignment of variable 'b'"
	fmt.Println(a, b)
}

func decode(data []byte) (map[string]int, error) {
	m := map[string]int{}
	fmt.Println(len(m))
	err := json.Unmarshal(data, &m) // want "Reassignment of variable 'm'"

	return m, err
}

type settings struct{ Port, Timeout int }

func defaults(data []byte) settings {
	cfg := settings{Port: 80, Timeout: 30}
	_ = json.Unmarshal(data, &cfg) // want "Reassignment of variable 'cfg'"

	return cfg
}

func twice() {
	i := 0
	fmt.Println(i)
	i = 1 // want "Reassignment of variable 'i'"
	i = 2 // want "Reassignment of variable 'i'"
	fmt.Println(i)
}

type counter struct{ n int }

func (c *counter) bump() int {
	n := c.n
	n = n + 1 // want "Reassignment of variable 'n'"
	c.n = n

	return c.n
}

func literal() func() int {
	total := 0

	return func() int {
		total += 10 // want "Reassignment of variable 'total'"

		return total
	}
}

func escape(ok bool) int {
	v := 1
	if ok {
		v = 2 // want "Reassignment of variable 'v'"
	}

	return v
}

var double = func(x int) int {
	x *= 2 // want "Reassignment of variable 'x'"

	return x
}

func collision() {
	x := 0
	x1 := 1
	fmt.Println(x, x1)
	x = 2 // want "Reassignment of variable 'x'"
	fmt.Println(x)
}
