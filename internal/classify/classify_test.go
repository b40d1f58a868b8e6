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

package classify_test

import (
	"context"
	"go/ast"
	"testing"

	. "fillmore-labs.com/reassignguard/internal/classify"
	"fillmore-labs.com/reassignguard/internal/directive"
	"fillmore-labs.com/reassignguard/internal/testsource"
)

const src = `var pkg int

type T struct{ f int }

//reassignguard:allow y
func (r *T) m(p int, q *int) (res int) {
	x := 0
	var y int
	for i, v := range []int{1} {
		_, _ = i, v
	}
	switch z := any(p).(type) {
	case int:
		z = 1
		_ = z
	}
	t := T{}
	t.f = 1
	x, y = y, x
	x += 1
	y++
	p = 2
	r = nil
	res = 3
	pkg = 4
	*q = 5
	call := func(a *int) {}
	call(&x)
	for j := 0; j < 3; j++ {
		_ = t
	}
	return
}
`

type siteKind int

const (
	assign siteKind = iota
	compound
	incDec
	tupleElem
	outArg
)

func kindOf(s WriteSite) siteKind {
	switch s.(type) {
	case Assign:
		return assign

	case Compound:
		return compound

	case IncDec:
		return incDec

	case TupleElem:
		return tupleElem

	case OutArg:
		return outArg
	}

	return -1
}

func TestCollect(t *testing.T) {
	t.Parallel()

	type want struct {
		name string
		kind siteKind
	}

	tests := []struct {
		name    string
		outArgs bool
		want    []want
	}{
		{
			name:    "OutArgs",
			outArgs: true,
			want: []want{
				{"z", assign},
				{"x", tupleElem},
				{"y", tupleElem},
				{"x", compound},
				{"y", incDec},
				{"p", assign},
				{"r", assign},
				{"res", assign},
				{"pkg", assign},
				{"x", outArg},
			},
		},
		{
			name: "NoOutArgs",
			want: []want{
				{"z", assign},
				{"x", tupleElem},
				{"y", tupleElem},
				{"x", compound},
				{"y", incDec},
				{"p", assign},
				{"r", assign},
				{"res", assign},
				{"pkg", assign},
			},
		},
	}

	s := testsource.ParseFile(t, src)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := Collector{Info: s.Info, OutArgs: tt.outArgs}

			sites, err := c.Collect(context.Background(), s.Root)
			if err != nil {
				t.Fatalf("Collect failed: %v", err)
			}

			if len(sites) != len(tt.want) {
				t.Fatalf("Got %d sites, want %d", len(sites), len(tt.want))
			}

			for i, w := range tt.want {
				id, ok := sites[i].Target().Node().(*ast.Ident)
				if !ok || id.Name != w.name || kindOf(sites[i]) != w.kind {
					t.Errorf("Site %d = %T %v, want %q (kind %d)", i, sites[i], sites[i].Target().Node(), w.name, w.kind)
				}
			}
		})
	}
}

func TestCollectCanceled(t *testing.T) {
	t.Parallel()

	s := testsource.ParseFile(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := (Collector{Info: s.Info}).Collect(ctx, s.Root); err == nil {
		t.Error("Expected error on canceled context")
	}
}

func TestClassifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		params     bool
		presumed   map[string]bool
		disallowed map[string]bool
	}{
		{
			name:   "Params",
			params: true,
			presumed: map[string]bool{
				"z": false, "x": true, "y": true, "p": true, "r": true, "res": false, "pkg": false,
			},
			disallowed: map[string]bool{
				"z": false, "x": true, "y": false, "p": true, "r": true, "res": false, "pkg": false,
			},
		},
		{
			name: "NoParams",
			presumed: map[string]bool{
				"z": false, "x": true, "y": true, "p": false, "r": false, "res": false, "pkg": false,
			},
			disallowed: map[string]bool{
				"z": false, "x": true, "y": false, "p": false, "r": false, "res": false, "pkg": false,
			},
		},
	}

	s := testsource.ParseFile(t, src)

	sites, err := Collector{Info: s.Info, OutArgs: true}.Collect(context.Background(), s.Root)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			directives := NewDirectives(s.CurrentFile(nil), directive.NewParser())
			c := NewClassifier(s.Info, s.Root, directives, tt.params)

			for _, site := range sites {
				v := c.Resolve(site)
				if v == nil {
					t.Fatalf("Can't resolve %v", site.Target().Node())
				}

				if got, want := c.Presumed(v), tt.presumed[v.Name()]; got != want {
					t.Errorf("Presumed(%s) = %v, want %v", v.Name(), got, want)
				}

				got, err := c.Disallowed(context.Background(), v, site.Target())
				if err != nil {
					t.Fatalf("Disallowed failed: %v", err)
				}

				if want := tt.disallowed[v.Name()]; got != want {
					t.Errorf("Disallowed(%s) = %v, want %v", v.Name(), got, want)
				}
			}
		})
	}
}

func TestNestedDirectives(t *testing.T) {
	t.Parallel()

	s := testsource.ParseFile(t, `//reassignguard:allow a
func f() {
	a, b, c := 0, 0, 0

	//reassignguard:allow b
	g := func() {
		a = 1
		b = 1
		c = 1
	}
	g()

	b = 2
	_, _, _ = a, b, c
}
`)

	directives := NewDirectives(s.CurrentFile(nil), directive.NewParser())
	c := NewClassifier(s.Info, s.Root, directives, true)

	sites, err := Collector{Info: s.Info}.Collect(context.Background(), s.Root)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	want := []bool{false, false, true, true}
	if len(sites) != len(want) {
		t.Fatalf("Got %d sites, want %d", len(sites), len(want))
	}

	for i, site := range sites {
		got, err := c.Disallowed(context.Background(), c.Resolve(site), site.Target())
		if err != nil {
			t.Fatalf("Disallowed failed: %v", err)
		}

		if got != want[i] {
			t.Errorf("Site %d (%v) disallowed = %v, want %v", i, site.Target().Node(), got, want[i])
		}
	}
}

func TestBinaryOp(t *testing.T) {
	t.Parallel()

	s, body := testsource.Parse(t, "i := 1\ni <<= 2\ni &^= 1\n_ = i")

	sites, err := Collector{Info: s.Info}.Collect(context.Background(), body)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(sites) != 2 {
		t.Fatalf("Got %d sites, want 2", len(sites))
	}

	if got := sites[0].(Compound).Op().String(); got != "<<" {
		t.Errorf("Op = %s, want <<", got)
	}

	if got := sites[1].(Compound).Op().String(); got != "&^" {
		t.Errorf("Op = %s, want &^", got)
	}
}
