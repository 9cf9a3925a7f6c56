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

// Package ast declares the types used to represent a Squirrel syntax tree.
package ast

import "github.com/mkmarek/squirrel-lsp/token"

// A Node represents any node in the abstract syntax tree. Every node
// carries a From/To span bracketing its source extent (spec §3 invariant
// 1): From is the position of the first character belonging to the node,
// To the position of the first character immediately after it.
type Node interface {
	Pos() token.Position
	End() token.Position
}

// Span is embedded by every concrete node to supply Pos()/End().
type Span struct {
	From, To token.Position
}

func (s Span) Pos() token.Position { return s.From }
func (s Span) End() token.Position { return s.To }

// A Stmt is implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// An Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// A ClassMember is implemented by the three forms a class body entry can
// take (spec §3: Field | Method | Constructor).
type ClassMember interface {
	Node
	classMemberNode()
}

// A TableEntry is implemented by the three forms a table literal entry
// can take (spec §3: Field | FieldWithComputedKey | Method).
type TableEntry interface {
	Node
	tableEntryNode()
}

// ----------------------------------------------------------------------------
// Statements

// Statements is an ordered sequence of statements with its own span
// (the span need not equal the union of children when it represents an
// empty block, e.g. `{}`).
type Statements struct {
	Span
	List []Stmt
}

// Block is `{ ... }` used as a statement.
type Block struct {
	Span
	Body *Statements
}

func (*Block) stmtNode() {}

// If is `if (cond) then [else else_]`. Else is nil when absent.
type If struct {
	Span
	Cond Expr
	Then Stmt
	Else Stmt
}

func (*If) stmtNode() {}

// While is `while (cond) body`.
type While struct {
	Span
	Cond Expr
	Body Stmt
}

func (*While) stmtNode() {}

// DoWhile is `do body while (cond)`.
type DoWhile struct {
	Span
	Body Stmt
	Cond Expr
}

func (*DoWhile) stmtNode() {}

// Case is one `case expr: statements` arm of a Switch.
type Case struct {
	Span
	Value Expr
	Body  *Statements
}

// Switch is `switch (tag) { case ... default: ... }`. Default is nil when
// the switch has no default clause.
type Switch struct {
	Span
	Tag     Expr
	Cases   []*Case
	Default *Statements
}

func (*Switch) stmtNode() {}

// For is `for (init; cond; post) body`. Init, Cond and Post are nil when
// the corresponding clause is omitted.
type For struct {
	Span
	Init Stmt
	Cond Expr
	Post Expr
	Body Stmt
}

func (*For) stmtNode() {}

// ForEach is `foreach (key, value in source) body`. Key is nil when the
// `key,` form is omitted.
type ForEach struct {
	Span
	Key    *Ident
	Value  *Ident
	Source Expr
	Body   Stmt
}

func (*ForEach) stmtNode() {}

// TryCatch is `try try_ catch (ident) catch_`.
type TryCatch struct {
	Span
	Try   Stmt
	Ident *Ident
	Catch Stmt
}

func (*TryCatch) stmtNode() {}

// BreakStmt is `break`.
type BreakStmt struct{ Span }

func (*BreakStmt) stmtNode() {}

// ContinueStmt is `continue`.
type ContinueStmt struct{ Span }

func (*ContinueStmt) stmtNode() {}

// Return is `return [value]`. Value is nil for a bare `return`.
type Return struct {
	Span
	Value Expr
}

func (*Return) stmtNode() {}

// Yield is `yield [value]`. Value is nil for a bare `yield`.
type Yield struct {
	Span
	Value Expr
}

func (*Yield) stmtNode() {}

// Throw is `throw value`.
type Throw struct {
	Span
	Value Expr
}

func (*Throw) stmtNode() {}

// ExpressionStmt is an expression used in statement position.
type ExpressionStmt struct {
	Span
	X Expr
}

func (*ExpressionStmt) stmtNode() {}

// Const is `const NAME = value`.
type Const struct {
	Span
	Name  *Ident
	Value Expr
}

func (*Const) stmtNode() {}

// Initialization is one comma-separated entry of a Local statement.
// Value is nil when the initializer is omitted (`local a`).
type Initialization struct {
	Name  *Ident
	Value Expr
}

// Local is `local a [= x][, b [= y]]...`.
type Local struct {
	Span
	Inits []*Initialization
}

func (*Local) stmtNode() {}

// FunctionDecl is shared by the FunctionDecl statement, the method/
// constructor forms of ClassMember, and the FunctionExpr expression. Name
// is nil for an anonymous function expression. Each entry of Params is
// either an *Ident or a *BinaryExpr (NEWSLOT-free assignment form) giving
// a default value, per spec §4.2's parameter-list ambiguity policy.
type FunctionDecl struct {
	Span
	Name     Expr
	Params   []Expr
	Body     Stmt
	IsStatic bool
}

func (*FunctionDecl) stmtNode() {}

// ClassDefinition is shared by the Class statement and the ClassExpr
// (anonymous class) expression. Name is nil for an anonymous class.
type ClassDefinition struct {
	Span
	Name    Expr
	Extends Expr
	Members []ClassMember
}

// Class is `class NAME [extends base] { members }`.
type Class struct {
	Span
	Def *ClassDefinition
}

func (*Class) stmtNode() {}

// EnumMember is one `NAME [= value]` entry of an Enum.
type EnumMember struct {
	Span
	Name  *Ident
	Value Expr
}

// Enum is `enum NAME { members }`.
type Enum struct {
	Span
	Name    *Ident
	Members []*EnumMember
}

func (*Enum) stmtNode() {}

// CommentStmt represents a standalone comment occupying statement
// position. The parser (which always lexes with SkipComments) never
// produces one; the type exists so the Walker's "comments as statements
// are not dispatched" guarantee (spec §4.3d) has a concrete node to apply
// to.
type CommentStmt struct {
	Span
	Text string
}

func (*CommentStmt) stmtNode() {}

// ----------------------------------------------------------------------------
// Expressions

// Ident is an identifier reference or declaration name.
type Ident struct {
	Span
	Name string
}

func (*Ident) exprNode() {}

// This is the `this` primary expression.
type This struct{ Span }

func (*This) exprNode() {}

// Base is the `base` primary expression.
type Base struct{ Span }

func (*Base) exprNode() {}

// LineMacro is the `__LINE__` primary expression.
type LineMacro struct{ Span }

func (*LineMacro) exprNode() {}

// FileMacro is the `__FILE__` primary expression.
type FileMacro struct{ Span }

func (*FileMacro) exprNode() {}

// UnaryExpr is a prefix unary expression: ! ~ - typeof ++ --.
type UnaryExpr struct {
	Span
	Op token.Token
	X  Expr
}

func (*UnaryExpr) exprNode() {}

// PostfixUnaryExpr is a postfix ++ / --.
type PostfixUnaryExpr struct {
	Span
	Op token.Token
	X  Expr
}

func (*PostfixUnaryExpr) exprNode() {}

// BinaryExpr is `X Op Y` at any of the binary precedence levels,
// including assignment and new-slot (<-).
type BinaryExpr struct {
	Span
	X     Expr
	Op    token.Token
	OpPos token.Position
	Y     Expr
}

func (*BinaryExpr) exprNode() {}

// TernaryExpr is `cond ? then : else`.
type TernaryExpr struct {
	Span
	Cond Expr
	Then Expr
	Else Expr
}

func (*TernaryExpr) exprNode() {}

// Spread is the `...` marker used in parameter lists and call arguments.
type Spread struct{ Span }

func (*Spread) exprNode() {}

// StringLit is a `"..."` literal. Value is the literal payload exactly as
// lexed (escaped quotes intact, not decoded further — spec §4.1).
type StringLit struct {
	Span
	Value string
}

func (*StringLit) exprNode() {}

// MultiLineStringLit is an `@"..."` literal.
type MultiLineStringLit struct {
	Span
	Value string
}

func (*MultiLineStringLit) exprNode() {}

// IntLit is an integer literal (decimal, hex, octal, or a character
// literal's byte value).
type IntLit struct {
	Span
	Value int64
}

func (*IntLit) exprNode() {}

// FloatLit is a floating-point literal.
type FloatLit struct {
	Span
	Value float64
}

func (*FloatLit) exprNode() {}

// NullLit is the `null` literal.
type NullLit struct{ Span }

func (*NullLit) exprNode() {}

// BoolLit is `true` or `false`.
type BoolLit struct {
	Span
	Value bool
}

func (*BoolLit) exprNode() {}

// Grouping is a parenthesized expression `(x)`. X is nil for an empty
// grouping `()` (only ever produced when paired with a call target).
type Grouping struct {
	Span
	X Expr
}

func (*Grouping) exprNode() {}

// ArrayLit is `[elt, elt, ...]`.
type ArrayLit struct {
	Span
	Elts []Expr
}

func (*ArrayLit) exprNode() {}

// ArrayAccess is `x[index]`.
type ArrayAccess struct {
	Span
	X     Expr
	Index Expr
}

func (*ArrayAccess) exprNode() {}

// FieldEntry is a table/class `ident = value` entry.
type FieldEntry struct {
	Span
	Name  *Ident
	Value Expr
}

func (*FieldEntry) tableEntryNode() {}

// FieldMember is the class-body counterpart of FieldEntry: a class `ident =
// value` member, optionally `static`. Kept distinct from FieldEntry so
// ClassMember carries IsStatic without widening TableEntry.
type FieldMember struct {
	Span
	Name     *Ident
	Value    Expr
	IsStatic bool
}

func (*FieldMember) classMemberNode() {}

// ComputedFieldEntry is a table `[keyExpr] = value` entry.
type ComputedFieldEntry struct {
	Span
	Key   Expr
	Value Expr
}

func (*ComputedFieldEntry) tableEntryNode() {}

// MethodEntry is a table `function name(params) body` entry.
type MethodEntry struct {
	Span
	Func *FunctionDecl
}

func (*MethodEntry) tableEntryNode() {}

// MethodMember is a class `function name(params) body` member.
type MethodMember struct {
	Span
	Func *FunctionDecl
}

func (*MethodMember) classMemberNode() {}

// ConstructorMember is a class `constructor(params) body` member.
type ConstructorMember struct {
	Span
	Func *FunctionDecl
}

func (*ConstructorMember) classMemberNode() {}

// TableLit is `{ entry, entry, ... }` used in expression position.
type TableLit struct {
	Span
	Entries []TableEntry
}

func (*TableLit) exprNode() {}

// MemberAccess is `x.sel`.
type MemberAccess struct {
	Span
	X   Expr
	Sel *Ident
}

func (*MemberAccess) exprNode() {}

// ScopeResolution is `scope::name` or, when Scope is nil, the leading
// `::name` root-scope form.
type ScopeResolution struct {
	Span
	Scope Expr
	Name  *Ident
}

func (*ScopeResolution) exprNode() {}

// FunctionCall is `fun(args...)`.
type FunctionCall struct {
	Span
	Fun  Expr
	Args []Expr
}

func (*FunctionCall) exprNode() {}

// CloneExpr is `clone x`.
type CloneExpr struct {
	Span
	X Expr
}

func (*CloneExpr) exprNode() {}

// ResumeExpr is `resume x`.
type ResumeExpr struct {
	Span
	X Expr
}

func (*ResumeExpr) exprNode() {}

// DeleteExpr is `delete x`.
type DeleteExpr struct {
	Span
	X Expr
}

func (*DeleteExpr) exprNode() {}

// ClassExpr is an anonymous `class [extends base] { members }` used in
// expression position.
type ClassExpr struct {
	Span
	Def *ClassDefinition
}

func (*ClassExpr) exprNode() {}

// FunctionExpr is an anonymous `function(params) body` used in expression
// position.
type FunctionExpr struct {
	Span
	Decl *FunctionDecl
}

func (*FunctionExpr) exprNode() {}
