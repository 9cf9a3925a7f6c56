package scope

import (
	"fmt"
	"strings"

	"github.com/mkmarek/squirrel-lsp/diagnostics"
)

// FindVariableUsageByLocation returns the usage whose span covers line/col,
// or nil if none does. Spans are assumed single-line — a usage that spans
// multiple lines (which none do, identifiers are never multi-line) would
// never match past its first line. This mirrors the original scope
// table's location lookup, quirks included (spec §9).
func (t *Table) FindVariableUsageByLocation(line, col int) *VariableUsage {
	for _, s := range t.Scopes {
		for _, u := range s.Usages {
			if u.From.Line == line && u.From.Column <= col && u.To.Line == line && u.To.Column >= col {
				return u
			}
		}
	}
	return nil
}

// FindVariableDeclarationByLocation returns the declaration whose span
// covers line/col, or nil if none does (same single-line caveat as
// FindVariableUsageByLocation).
func (t *Table) FindVariableDeclarationByLocation(line, col int) *VariableDeclaration {
	for _, s := range t.Scopes {
		for _, d := range s.Declarations {
			if d.From.Line == line && d.From.Column <= col && d.To.Line == line && d.To.Column >= col {
				return d
			}
		}
	}
	return nil
}

// FindVariableUsages returns every usage of name reachable from scope:
// scope's own usages plus, recursively, every descendant scope's. It does
// not filter by whether the usage actually resolved to this declaration —
// a shadowing inner declaration of the same name still counts, matching
// the original's name-only search.
func (t *Table) FindVariableUsages(name string, scope int) []*VariableUsage {
	var usages []*VariableUsage
	s := t.Scopes[scope]
	for _, u := range s.Usages {
		if u.Name == name {
			usages = append(usages, u)
		}
	}
	for _, child := range s.Children {
		usages = append(usages, t.FindVariableUsages(name, child)...)
	}
	return usages
}

// FindVariableDeclaration resolves name starting the outward search at
// scope, returning nil if no enclosing scope declares it.
func (t *Table) FindVariableDeclaration(name string, scope int) *DeclarationRef {
	return t.resolve(scope, name)
}

// ValidateVariables reports every local/const declaration with no reachable
// usage (as an unused-variable warning, skipping names starting with "_")
// and every usage that never resolved to a declaration (as an error).
// Function and ClassMember declarations are intentionally exempt from the
// unused check — a method or field with no caller in this file may still
// be part of the module's public surface.
func (t *Table) ValidateVariables() []diagnostics.Diagnostic {
	var diags []diagnostics.Diagnostic

	for _, s := range t.Scopes {
		for _, d := range s.Declarations {
			if d.Kind != Local && d.Kind != Const {
				continue
			}
			if strings.HasPrefix(d.Name, "_") {
				continue
			}
			if len(t.FindVariableUsages(d.Name, d.Scope)) == 0 {
				diags = append(diags, diagnostics.Diagnostic{
					Severity: diagnostics.Warning,
					From:     d.From,
					To:       d.To,
					Message:  fmt.Sprintf("Unused variable '%s'", d.Name),
				})
			}
		}

		for _, u := range s.Usages {
			if u.Declaration == nil {
				diags = append(diags, diagnostics.Diagnostic{
					Severity: diagnostics.Error,
					From:     u.From,
					To:       u.To,
					Message:  fmt.Sprintf("Variable '%s' is not declared", u.Name),
				})
			}
		}
	}

	return diags
}
