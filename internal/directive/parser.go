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

package directive

import (
	"go/ast"
	"go/token"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// argList is the grammar of the directive arguments following [Prefix].
type argList struct {
	Entries []*argEntry `parser:"( @@ | \",\" )*"`
}

type argEntry struct {
	Pos lexer.Position

	Quoted *string `parser:"  @String"`
	Word   *string `parser:"| @Word"`
}

// Parser recognizes reassignguard directives.
//
// A Parser holds precompiled matchers and is safe for concurrent use.
// Create one per analyzer instance with [NewParser].
type Parser struct {
	args   *participle.Parser[argList]
	nolint *regexp.Regexp
}

// NewParser builds a directive [Parser].
func NewParser() *Parser {
	def := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `"(?:\\.|[^"\\])*"|` + "`[^`]*`"},
		{Name: "Sep", Pattern: `,`},
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Word", Pattern: `[^\s,]+`},
	})

	return &Parser{
		args: participle.MustBuild[argList](
			participle.Lexer(def),
			participle.Elide("Whitespace"),
		),
		nolint: regexp.MustCompile(`^//\s*nolint:([a-zA-Z0-9,_-]+)`),
	}
}

// Parse returns the permission directive in comment c.
// The second result is false if c is not a permission directive.
func (p *Parser) Parse(c *ast.Comment) (Permission, bool) {
	rest, ok := strings.CutPrefix(c.Text, Prefix)
	if !ok || rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return Permission{}, false
	}

	// Text following a nested comment marker is an explanation
	rest, _, _ = strings.Cut(rest, "//")

	perm := Permission{Comment: c}

	list, err := p.args.ParseString("", rest)
	if err != nil {
		// Unparseable arguments grant nothing.
		return perm, true
	}

	base := c.Slash + token.Pos(len(Prefix))

	for _, a := range list.Entries {
		pos := base + token.Pos(a.Pos.Offset)

		var raw, name string

		switch {
		case a.Quoted != nil:
			raw = *a.Quoted
			name, err = strconv.Unquote(raw)
			if err != nil {
				name = raw
			}

		case a.Word != nil:
			raw, name = *a.Word, *a.Word

		default:
			continue
		}

		perm.Entries = append(perm.Entries, Entry{
			Name:  name,
			Pos:   pos,
			End:   pos + token.Pos(len(raw)),
			Valid: token.IsIdentifier(name) && name != "_",
		})
	}

	return perm, true
}

// Permissions returns all permission directives in the comment groups.
func (p *Parser) Permissions(groups ...*ast.CommentGroup) []Permission {
	var perms []Permission

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			if perm, ok := p.Parse(c); ok {
				perms = append(perms, perm)
			}
		}
	}

	return perms
}

// NoLint reports whether comment c disables reassignguard.
func (p *Parser) NoLint(c *ast.Comment) bool {
	matches := p.nolint.FindStringSubmatch(c.Text)
	if matches == nil {
		return false
	}

	// Parse comma-separated linter list
	for linter := range strings.SplitSeq(matches[1], ",") {
		if l := strings.ToLower(strings.TrimSpace(linter)); l == Name || l == "all" {
			return true
		}
	}

	return false
}
