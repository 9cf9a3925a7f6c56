// Copyright 2018 The CUE Authors
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

package format

import (
	"github.com/mkmarek/squirrel-lsp/lexer"
	"github.com/mkmarek/squirrel-lsp/printer"
	"github.com/mkmarek/squirrel-lsp/token"
)

// itemKind distinguishes the three shapes the reconciler ever emits;
// Indent is resolved to spaces/tabs, Space may still be collapsed, only
// during the final serialize pass.
type itemKind int

const (
	itemText itemKind = iota
	itemIndent
	itemSpace
)

type item struct {
	kind  itemKind
	text  string
	level int
}

// reconcile implements spec §4.6 step 3: a single left-to-right merge of
// the canonical instruction stream against the original token stream.
func reconcile(canonical []printer.Instruction, original []lexer.TokenWithLocation) []item {
	var out []item
	currentIndent := 0
	ci, oi := 0, 0

	// pendingIndent defers the Indent item a Newline wants until any
	// SetIndentation instructions immediately following that Newline in
	// the canonical stream have been applied. The printer always emits a
	// block/array/table's opening Newline *before* the SetIndentation
	// that deepens the body (block, ArrayLit, TableLit all do
	// `newline(); indentLevel(1)`), so stamping the Indent level
	// synchronously with the Newline would attach the old, shallower
	// level to a body's very first line.
	pendingIndent := false

	for ci < len(canonical) || oi < len(original) {
		if ci < len(canonical) && canonical[ci].Kind == printer.SetIndentation {
			currentIndent = canonical[ci].Level
			ci++
			continue
		}

		if pendingIndent {
			out = append(out, item{kind: itemIndent, level: currentIndent})
			pendingIndent = false
		}

		var c *printer.Instruction
		if ci < len(canonical) {
			c = &canonical[ci]
		}
		var o *lexer.TokenWithLocation
		if oi < len(original) {
			o = &original[oi]
		}

		switch {
		case c != nil && o != nil && c.Tok == o.Token:
			out = append(out, item{kind: itemText, text: renderCanonical(*c)})
			if c.Tok == token.NEWLINE {
				pendingIndent = true
			}
			ci++
			oi++

		case o != nil && (o.Token == token.COMMENT || o.Token == token.MLCOMMENT):
			out = append(out, item{kind: itemSpace})
			out = append(out, item{kind: itemText, text: o.Text})
			if o.Token == token.MLCOMMENT {
				out = append(out, item{kind: itemSpace})
			}
			oi++

		case c != nil && c.Tok == token.NEWLINE && o != nil && o.Token == token.COMMA:
			out = append(out, item{kind: itemText, text: "\n"})
			pendingIndent = true
			ci++
			oi++

		case c != nil && c.Tok == token.COMMA && o != nil && o.Token == token.NEWLINE:
			out = append(out, item{kind: itemText, text: ","})
			ci++
			oi++

		case o != nil && o.Token == token.SEMI:
			// Canonical never wants a semicolon (the formatter removes
			// them); if it did, the equal-match case above would already
			// have consumed this one.
			oi++

		case o != nil && o.Token == token.NEWLINE:
			// An original newline canonical has no use for: either a
			// mid-expression line wrap the parser silently tolerated, or a
			// blank line beyond the cap the printer already applied to the
			// canonical stream. Dropping it here, rather than only in the
			// equal-match branch, is what keeps the two cursors from
			// permanently desynchronizing on a run of blank lines longer
			// than the canonical stream wants.
			oi++

		case c != nil && c.Tok == token.SPACE:
			out = append(out, item{kind: itemSpace})
			ci++

		case c != nil && c.Tok == token.DUMMY:
			ci++

		case c != nil:
			out = append(out, item{kind: itemText, text: renderCanonical(*c)})
			if c.Tok == token.NEWLINE {
				// Common case: canonical wants a statement-separator
				// newline where the original had a semicolon (already
				// dropped above) or nothing at all. It never got to
				// advance past the equal-match branch, so it still needs
				// its indent.
				pendingIndent = true
			}
			ci++

		case o != nil:
			oi++
		}
	}

	if pendingIndent {
		out = append(out, item{kind: itemIndent, level: currentIndent})
	}

	return out
}

// renderCanonical returns the literal text a canonical EmitToken
// contributes: its own Text when the printer set one (identifiers,
// literals, reformatted float spellings), otherwise the token kind's fixed
// spelling.
func renderCanonical(in printer.Instruction) string {
	if in.Text != "" {
		return in.Text
	}
	if in.Tok == token.NEWLINE {
		return "\n"
	}
	return in.Tok.String()
}
