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

// Package langserver implements the editor-protocol-facing operations
// spec §6 names (onDocumentChange, gotoDeclaration/gotoDefinition,
// format). The actual transport, document cache and file I/O are the
// external editor front end's job (spec §5, §12 Non-goals); this package
// takes already-read document text as a parameter rather than reading
// uri itself, and returns plain values the transport layer serializes.
package langserver

import (
	"github.com/mkmarek/squirrel-lsp/diagnostics"
	"github.com/mkmarek/squirrel-lsp/format"
	"github.com/mkmarek/squirrel-lsp/internal/diff"
	"github.com/mkmarek/squirrel-lsp/parser"
	"github.com/mkmarek/squirrel-lsp/scope"
	"github.com/mkmarek/squirrel-lsp/token"
)

// OnDocumentChange parses text and returns its diagnostics (spec §6): a
// single error diagnostic if parsing fails, otherwise the scope table's
// lint findings. version is accepted for interface symmetry with an
// editor's change-notification shape but does not affect the result —
// this core has no persisted per-document state (spec §6: "Persisted
// state: none") to reconcile it against.
func OnDocumentChange(uri, text string, version int) []diagnostics.Diagnostic {
	_, _ = uri, version
	stmts, errs := parser.Parse([]byte(text))
	if errs.Err() != nil {
		return errs.Diagnostics()[:1]
	}
	table := scope.Build(stmts)
	return table.ValidateVariables()
}

// Range is a half-open [From, To) source span, returned by the
// declaration/definition lookups.
type Range struct {
	From, To token.Position
}

// GotoDeclaration finds the variable usage at position in text and
// resolves it to its declaring span. It returns ok == false if parsing
// fails, no usage sits at position, or the usage never resolved (spec
// §6: "On any failure of the chain, return 'not found'").
func GotoDeclaration(uri, text string, position token.Position) (Range, bool) {
	_ = uri
	stmts, errs := parser.Parse([]byte(text))
	if errs.Err() != nil {
		return Range{}, false
	}
	table := scope.Build(stmts)
	usage := table.FindVariableUsageByLocation(position.Line, position.Column)
	if usage == nil || usage.Declaration == nil {
		return Range{}, false
	}
	decl := table.GetDeclaration(usage.Declaration)
	if decl == nil {
		return Range{}, false
	}
	return Range{From: decl.From, To: decl.To}, true
}

// GotoDefinition is the same lookup as GotoDeclaration: Squirrel has no
// separate forward-declaration form, so a use's declaration site and its
// definition site always coincide.
func GotoDefinition(uri, text string, position token.Position) (Range, bool) {
	return GotoDeclaration(uri, text, position)
}

// Format runs the Formatter over text and returns one TextEdit per diff
// hunk against the original (spec §6).
func Format(uri, text string, opts format.Options) ([]diff.TextEdit, error) {
	_ = uri
	formatted, err := format.Format([]byte(text), opts)
	if err != nil {
		return nil, err
	}
	return diff.TextEdits(text, formatted), nil
}
