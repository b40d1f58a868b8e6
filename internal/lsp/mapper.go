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

package lsp

import (
	"slices"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// mapper converts between byte offsets and LSP positions, which count UTF-16 code units.
type mapper struct {
	content []byte
	lines   []int // byte offsets of line starts
}

func newMapper(content []byte) mapper {
	lines := []int{0}

	for i, b := range content {
		if b == '\n' {
			lines = append(lines, i+1)
		}
	}

	return mapper{content: content, lines: lines}
}

// Position returns the LSP position of the byte offset.
func (m mapper) Position(offset int) protocol.Position {
	offset = min(max(offset, 0), len(m.content))

	line, ok := slices.BinarySearch(m.lines, offset)
	if !ok {
		line--
	}

	var char int

	for _, r := range string(m.content[m.lines[line]:offset]) {
		char += utf16.RuneLen(r)
	}

	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
}

// Offset returns the byte offset of the LSP position.
//
// Positions past the end of a line are clamped to the line end.
func (m mapper) Offset(pos protocol.Position) int {
	line := int(pos.Line)
	if line >= len(m.lines) {
		return len(m.content)
	}

	offset := m.lines[line]

	end := len(m.content)
	if line+1 < len(m.lines) {
		end = m.lines[line+1] - 1 // newline
	}

	for char := 0; offset < end && char < int(pos.Character); {
		r, size := utf8.DecodeRune(m.content[offset:])
		char += utf16.RuneLen(r)
		offset += size
	}

	return offset
}

// Range returns the LSP range of the byte offsets.
func (m mapper) Range(start, end int) protocol.Range {
	return protocol.Range{Start: m.Position(start), End: m.Position(end)}
}
