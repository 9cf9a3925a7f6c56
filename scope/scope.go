// Package scope builds a flat, index-addressed table of lexical scopes
// over a parsed program (spec §3, §4.4): every block-like construct opens
// a scope, every declaration records where a name came from, and every
// identifier use is resolved (or left dangling) against that table. The
// shape mirrors cue/ast/astutil's resolver in spirit — a chain of scopes
// searched outward on lookup — but trades astutil's pointer-linked scope
// objects for indices, since callers (the langserver's goto-declaration/
// goto-definition handlers) need to address a specific declaration by (scope, sequence)
// pair rather than hold onto a *Scope across edits.
package scope

import (
	"github.com/mkmarek/squirrel-lsp/ast"
	"github.com/mkmarek/squirrel-lsp/token"
)

// DeclKind is the closed set of declaration variants (spec §4.4).
type DeclKind int

const (
	Local DeclKind = iota
	Const
	Function
	ClassMember
)

func (k DeclKind) String() string {
	switch k {
	case Local:
		return "local"
	case Const:
		return "const"
	case Function:
		return "function"
	case ClassMember:
		return "class member"
	}
	return "unknown"
}

// RefKind distinguishes an ordinary variable reference from the two
// sentinel receiver keywords, which never have a VariableDeclaration of
// their own (spec §4.4).
type RefKind int

const (
	RefVariable RefKind = iota
	RefThis
	RefBase
)

// DeclarationRef identifies where a name resolved to. For RefVariable,
// Scope/Seq address VariableDeclaration's home scope and its index within
// that scope's Declarations slice.
type DeclarationRef struct {
	Kind  RefKind
	Scope int
	Seq   int
}

// VariableDeclaration records one name binding: a local/const initializer,
// a function or method name, a parameter, a class field, or a table entry.
type VariableDeclaration struct {
	SequenceNumber int
	Kind           DeclKind
	Name           string
	Value          ast.Expr // nil when the declaration has no initializer
	Scope          int
	From, To       token.Position
}

// VariableUsage records one place a name was read: either a plain
// identifier, or one of the this/base receiver keywords. Declaration is
// nil when the name could not be resolved in any enclosing scope.
type VariableUsage struct {
	Name        string
	Declaration *DeclarationRef
	From, To    token.Position
}

// Scope is one lexical scope: the root (index 0, Parent -1) plus one per
// block/loop/function/class/table-literal/catch-clause (spec §4.4).
type Scope struct {
	Parent       int
	Children     []int
	Declarations []*VariableDeclaration
	Usages       []*VariableUsage
}

// Table is the full set of scopes produced by Build, indexed by position.
type Table struct {
	Scopes []*Scope
}

func newTable() *Table {
	return &Table{Scopes: []*Scope{{Parent: -1}}}
}

func (t *Table) newScope(parent int) int {
	idx := len(t.Scopes)
	t.Scopes = append(t.Scopes, &Scope{Parent: parent})
	t.Scopes[parent].Children = append(t.Scopes[parent].Children, idx)
	return idx
}

func (t *Table) declare(scope int, kind DeclKind, name string, value ast.Expr, from, to token.Position) *VariableDeclaration {
	s := t.Scopes[scope]
	d := &VariableDeclaration{
		SequenceNumber: len(s.Declarations),
		Kind:           kind,
		Name:           name,
		Value:          value,
		Scope:          scope,
		From:           from,
		To:             to,
	}
	s.Declarations = append(s.Declarations, d)
	return d
}

func (t *Table) use(scope int, name string, from, to token.Position) *VariableUsage {
	u := &VariableUsage{Name: name, From: from, To: to, Declaration: t.resolve(scope, name)}
	t.Scopes[scope].Usages = append(t.Scopes[scope].Usages, u)
	return u
}

// resolve walks the parent chain starting at scope, returning the first
// name match found (earliest declaration within the winning scope, per
// the original's forward scan — a later re-declaration of the same name
// in one scope does not shadow the earlier one for lookup purposes).
func (t *Table) resolve(scope int, name string) *DeclarationRef {
	for cur := scope; cur != -1; cur = t.Scopes[cur].Parent {
		for _, d := range t.Scopes[cur].Declarations {
			if d.Name == name {
				return &DeclarationRef{Kind: RefVariable, Scope: d.Scope, Seq: d.SequenceNumber}
			}
		}
	}
	return nil
}

// GetDeclaration dereferences a DeclarationRef into its VariableDeclaration.
// It returns nil for the This/Base sentinels, which have no declaration.
func (t *Table) GetDeclaration(ref *DeclarationRef) *VariableDeclaration {
	if ref == nil || ref.Kind != RefVariable {
		return nil
	}
	return t.Scopes[ref.Scope].Declarations[ref.Seq]
}
