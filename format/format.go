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

// Package format implements the two-stage reformatter (spec §4.6): it lexes
// the original source with comments and newlines intact, prints a canonical
// instruction stream from the parsed AST, then reconciles the two so that
// user comments and blank-line groupings survive an otherwise fully
// re-derived layout.
package format

import (
	"errors"
	"strings"

	"github.com/mkmarek/squirrel-lsp/lexer"
	"github.com/mkmarek/squirrel-lsp/parser"
	"github.com/mkmarek/squirrel-lsp/printer"
	"github.com/mkmarek/squirrel-lsp/token"
)

// Options configures the final serialization step (spec §6).
type Options struct {
	InsertSpaces       bool
	TabSize            int
	InsertFinalNewline bool
	TrimFinalNewlines  bool
}

// DefaultOptions indents with two spaces per level, for callers that don't
// care about editor settings.
var DefaultOptions = Options{InsertSpaces: true, TabSize: 2}

// ErrParseFailed is returned when src fails to parse; the formatter refuses
// to act on a broken tree (spec §7).
var ErrParseFailed = errors.New("format: refusing to format source with parse errors")

// Format reconciles src's original token stream with the canonical one the
// Printer derives from its parsed AST, and returns the formatted text.
func Format(src []byte, opts Options) (string, error) {
	stmts, errs := parser.Parse(src)
	if errs.Err() != nil {
		return "", ErrParseFailed
	}

	original := lexOriginal(src)
	canonical := printer.Print(stmts)

	merged := reconcile(canonical, original)
	return serialize(merged, opts), nil
}

// lexOriginal lexes src with comments surfaced and strips SPACE/TAB: the
// canonical stream fully determines inter-token spacing, so the only
// original tokens the reconciler needs are the ones spec §4.6 step 3
// actually matches against (real tokens, Newline and Comment/MLComment);
// the trailing EOF is not kept.
func lexOriginal(src []byte) []lexer.TokenWithLocation {
	l := lexer.New(src, 0)
	var out []lexer.TokenWithLocation
	for {
		tok := l.Next()
		if tok.Token == token.EOF {
			break
		}
		if tok.Token == token.SPACE || tok.Token == token.TAB {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// serialize walks merged items, applying the post-pass (collapse adjacent
// spaces, drop a space right after an indent) and the final-newline editor
// options (spec §4.6 steps 4-5).
func serialize(items []item, opts Options) string {
	var sb strings.Builder
	prevIndent := false
	prevSpace := false
	for _, it := range items {
		switch it.kind {
		case itemIndent:
			if opts.InsertSpaces {
				sb.WriteString(strings.Repeat(" ", it.level*max(opts.TabSize, 1)))
			} else {
				sb.WriteString(strings.Repeat("\t", it.level))
			}
			prevIndent = true
			prevSpace = false
		case itemSpace:
			if prevIndent || prevSpace {
				continue
			}
			sb.WriteByte(' ')
			prevSpace = true
			prevIndent = false
		case itemText:
			sb.WriteString(it.text)
			prevIndent = false
			prevSpace = false
		}
	}

	out := sb.String()
	if opts.TrimFinalNewlines {
		out = strings.TrimRight(out, "\n")
	}
	if opts.InsertFinalNewline && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
