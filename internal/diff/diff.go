// Copyright 2019 CUE Authors
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

// Package diff computes a line-level edit script between an original
// document and a rewritten one, for the langserver's format operation
// (spec §6: "compute a diff against the original; emit one edit per diff
// hunk").
package diff

import (
	"strings"

	"github.com/mkmarek/squirrel-lsp/token"

	"github.com/pmezard/go-difflib/difflib"
)

// Range identifies a half-open span of whole lines: [Start.Line, End.Line).
// Column is always zero — a hunk always starts and ends at a line
// boundary, never mid-line, since the Formatter rewrites whole lines.
type Range struct {
	Start, End token.Position
}

// TextEdit replaces the lines in Range with NewText.
type TextEdit struct {
	Range   Range
	NewText string
}

// TextEdits returns one TextEdit per non-equal hunk between original and
// formatted, using difflib's SequenceMatcher opcodes over lines.
func TextEdits(original, formatted string) []TextEdit {
	a := difflib.SplitLines(original)
	b := difflib.SplitLines(formatted)

	sm := difflib.NewMatcher(a, b)
	var edits []TextEdit
	for _, op := range sm.GetOpCodes() {
		if op.Tag == 'e' {
			continue
		}
		edits = append(edits, TextEdit{
			Range: Range{
				Start: token.Position{Line: op.I1, Column: 0},
				End:   token.Position{Line: op.I2, Column: 0},
			},
			NewText: strings.Join(b[op.J1:op.J2], ""),
		})
	}
	return edits
}
