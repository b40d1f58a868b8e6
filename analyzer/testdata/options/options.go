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

package options

import (
	"encoding/json"
	"fmt"
)

func outArgs(data []byte) {
	var v any
	_ = json.Unmarshal(data, &v)
	fmt.Println(v)
}

func parameters(s string) {
	s = "x"
	fmt.Println(s)
}

func locals() {
	i := 0
	i = 1 // want "Reassignment of variable 'i'"
	fmt.Println(i)
}

//reassignguard:allow i
func allowed() {
	i := 0
	fmt.Println(i)
}
