// Package printer implements the pure AST-to-instruction-stream pass
// (spec §4.5): Print walks a parsed program and produces a canonical
// sequence of Instructions describing exactly which tokens (including
// SPACE and NEWLINE) to emit and when the indentation level changes. It performs no
// I/O and builds no strings for whitespace — that is the Formatter's job
// (package format), which reconciles this canonical stream against the
// original source's token stream to recover comments.
package printer

import (
	"math"
	"strconv"

	"github.com/mkmarek/squirrel-lsp/ast"
	"github.com/mkmarek/squirrel-lsp/token"
)

// InstructionKind distinguishes the two instruction variants.
type InstructionKind int

const (
	EmitToken InstructionKind = iota
	SetIndentation
)

// Instruction is either "emit this token" (with optional literal Text for
// tokens whose spelling isn't fixed — identifiers and literals) or "the
// current indentation level is now Level".
type Instruction struct {
	Kind  InstructionKind
	Tok   token.Token
	Text  string
	Level int
}

// Print walks prog and returns its canonical instruction stream.
func Print(prog *ast.Statements) []Instruction {
	p := &printer{}
	p.stmtList(prog)
	return p.out
}

type printer struct {
	out    []Instruction
	indent int
}

func (p *printer) emit(tok token.Token) {
	p.out = append(p.out, Instruction{Kind: EmitToken, Tok: tok})
}

func (p *printer) emitText(tok token.Token, text string) {
	p.out = append(p.out, Instruction{Kind: EmitToken, Tok: tok, Text: text})
}

func (p *printer) space()   { p.emit(token.SPACE) }
func (p *printer) newline() { p.emit(token.NEWLINE) }
func (p *printer) dummy()   { p.emit(token.DUMMY) }

// ellipsis prints "..." as three PERIOD tokens, matching §4.1's note that
// the lexer recognizes it via matches_tokens lookahead rather than as a
// single dedicated token kind.
func (p *printer) ellipsis() {
	p.emit(token.PERIOD)
	p.emit(token.PERIOD)
	p.emit(token.PERIOD)
}

func (p *printer) indentLevel(delta int) {
	p.indent += delta
	p.out = append(p.out, Instruction{Kind: SetIndentation, Level: p.indent})
}

func (p *printer) ident(name string) { p.emitText(token.IDENT, name) }

// stmtList prints every statement in list, separating consecutive ones by
// one or two newlines depending on the source line gap between them
// (spec §4.5: at most one blank line is preserved).
func (p *printer) stmtList(list *ast.Statements) {
	if list == nil {
		return
	}
	for i, s := range list.List {
		if i > 0 {
			delta := s.Pos().Line - list.List[i-1].End().Line
			if delta < 1 {
				delta = 1
			}
			if delta > 2 {
				delta = 2
			}
			for n := 0; n < delta; n++ {
				p.newline()
			}
		}
		p.stmt(s)
	}
}

// block prints a brace-delimited statement list, emitting a Dummy token
// in place of a body when it is empty so the Formatter can tell an
// intentionally-empty block from "nothing was printed here".
func (p *printer) block(list *ast.Statements) {
	p.emit(token.LBRACE)
	if list == nil || len(list.List) == 0 {
		p.dummy()
	} else {
		p.newline()
		p.indentLevel(1)
		p.stmtList(list)
		p.newline()
		p.indentLevel(-1)
	}
	p.emit(token.RBRACE)
}

// compoundOrIndented prints a statement that follows a control-flow
// header (if/while/for/...): a Block body is space-joined onto the
// header, any other body-less statement is newline-indented.
func (p *printer) compoundOrIndented(s ast.Stmt) {
	if b, ok := s.(*ast.Block); ok {
		p.space()
		p.block(b.Body)
		return
	}
	p.newline()
	p.indentLevel(1)
	p.stmt(s)
	p.indentLevel(-1)
}

func (p *printer) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.Block:
		p.block(n.Body)

	case *ast.If:
		p.emit(token.IF)
		p.space()
		p.emit(token.LPAREN)
		p.expr(n.Cond)
		p.emit(token.RPAREN)
		p.compoundOrIndented(n.Then)
		if n.Else != nil {
			p.space()
			p.emit(token.ELSE)
			p.compoundOrIndented(n.Else)
		}

	case *ast.While:
		p.emit(token.WHILE)
		p.space()
		p.emit(token.LPAREN)
		p.expr(n.Cond)
		p.emit(token.RPAREN)
		p.compoundOrIndented(n.Body)

	case *ast.DoWhile:
		p.emit(token.DO)
		p.compoundOrIndented(n.Body)
		p.space()
		p.emit(token.WHILE)
		p.space()
		p.emit(token.LPAREN)
		p.expr(n.Cond)
		p.emit(token.RPAREN)

	case *ast.Switch:
		p.emit(token.SWITCH)
		p.space()
		p.emit(token.LPAREN)
		p.expr(n.Tag)
		p.emit(token.RPAREN)
		p.space()
		p.emit(token.LBRACE)
		p.newline()
		p.indentLevel(1)
		for _, c := range n.Cases {
			p.emit(token.CASE)
			p.space()
			p.expr(c.Value)
			p.emit(token.COLON)
			p.newline()
			p.indentLevel(1)
			p.stmtList(c.Body)
			p.indentLevel(-1)
			p.newline()
		}
		if n.Default != nil {
			p.emit(token.DEFAULT)
			p.emit(token.COLON)
			p.newline()
			p.indentLevel(1)
			p.stmtList(n.Default)
			p.indentLevel(-1)
			p.newline()
		}
		p.indentLevel(-1)
		p.emit(token.RBRACE)

	case *ast.For:
		p.emit(token.FOR)
		p.space()
		p.emit(token.LPAREN)
		p.forInit(n.Init)
		p.emit(token.SEMI)
		p.space()
		if n.Cond != nil {
			p.expr(n.Cond)
		}
		p.emit(token.SEMI)
		p.space()
		if n.Post != nil {
			p.expr(n.Post)
		}
		p.emit(token.RPAREN)
		p.compoundOrIndented(n.Body)

	case *ast.ForEach:
		p.emit(token.FOREACH)
		p.space()
		p.emit(token.LPAREN)
		if n.Key != nil {
			p.ident(n.Key.Name)
			p.emit(token.COMMA)
			p.space()
		}
		if n.Value != nil {
			p.ident(n.Value.Name)
		}
		p.space()
		p.emit(token.IN)
		p.space()
		p.expr(n.Source)
		p.emit(token.RPAREN)
		p.compoundOrIndented(n.Body)

	case *ast.TryCatch:
		p.emit(token.TRY)
		p.compoundOrIndented(n.Try)
		p.space()
		p.emit(token.CATCH)
		p.space()
		p.emit(token.LPAREN)
		if n.Ident != nil {
			p.ident(n.Ident.Name)
		}
		p.emit(token.RPAREN)
		p.compoundOrIndented(n.Catch)

	case *ast.BreakStmt:
		p.emit(token.BREAK)

	case *ast.ContinueStmt:
		p.emit(token.CONTINUE)

	case *ast.Return:
		p.emit(token.RETURN)
		if n.Value != nil {
			p.space()
			p.expr(n.Value)
		}

	case *ast.Yield:
		p.emit(token.YIELD)
		if n.Value != nil {
			p.space()
			p.expr(n.Value)
		}

	case *ast.Throw:
		p.emit(token.THROW)
		p.space()
		p.expr(n.Value)

	case *ast.ExpressionStmt:
		if n.X != nil {
			p.expr(n.X)
		}

	case *ast.Const:
		p.emit(token.CONST)
		p.space()
		p.ident(n.Name.Name)
		p.space()
		p.emit(token.ASSIGN)
		p.space()
		p.expr(n.Value)

	case *ast.Local:
		p.localInits(n)

	case *ast.FunctionDecl:
		p.functionDecl(n)

	case *ast.Class:
		p.classDef(n.Def)

	case *ast.Enum:
		p.enum(n)

	case *ast.CommentStmt:
		// Comments never reach the printer: the parser that produced this
		// tree ran with skip_comments = true (spec §4.6 step 2).
	}
}

func (p *printer) forInit(s ast.Stmt) {
	switch n := s.(type) {
	case nil:
	case *ast.Local:
		p.localInits(n)
	case *ast.ExpressionStmt:
		if n.X != nil {
			p.expr(n.X)
		}
	}
}

func (p *printer) localInits(n *ast.Local) {
	p.emit(token.LOCAL)
	p.space()
	for i, init := range n.Inits {
		if i > 0 {
			p.emit(token.COMMA)
			p.space()
		}
		p.ident(init.Name.Name)
		if init.Value != nil {
			p.space()
			p.emit(token.ASSIGN)
			p.space()
			p.expr(init.Value)
		}
	}
}

// funcName prints a function/class name, which is either a plain
// identifier or a ::-qualified scoped name (spec §4.2).
func (p *printer) funcName(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident:
		p.ident(n.Name)
	case *ast.ScopeResolution:
		p.scopeResolution(n)
	}
}

func (p *printer) functionDecl(n *ast.FunctionDecl) {
	if n.IsStatic {
		p.emit(token.STATIC)
		p.space()
	}
	p.emit(token.FUNCTION)
	p.space()
	if n.Name != nil {
		p.funcName(n.Name)
	}
	p.emit(token.LPAREN)
	p.paramList(n.Params)
	p.emit(token.RPAREN)
	p.compoundOrIndented(n.Body)
}

func (p *printer) paramList(params []ast.Expr) {
	for i, param := range params {
		if i > 0 {
			p.emit(token.COMMA)
			p.space()
		}
		p.expr(param)
	}
}

func (p *printer) classDef(def *ast.ClassDefinition) {
	p.emit(token.CLASS)
	if def.Name != nil {
		p.space()
		p.funcName(def.Name)
	}
	if def.Extends != nil {
		p.space()
		p.emit(token.EXTENDS)
		p.space()
		p.expr(def.Extends)
	}
	p.space()
	p.emit(token.LBRACE)
	if len(def.Members) == 0 {
		p.dummy()
	} else {
		p.newline()
		p.indentLevel(1)
		for i, m := range def.Members {
			if i > 0 {
				p.newline()
			}
			p.classMember(m)
		}
		p.newline()
		p.indentLevel(-1)
	}
	p.emit(token.RBRACE)
}

func (p *printer) classMember(m ast.ClassMember) {
	switch mm := m.(type) {
	case *ast.FieldMember:
		if mm.IsStatic {
			p.emit(token.STATIC)
			p.space()
		}
		p.ident(mm.Name.Name)
		p.space()
		p.emit(token.ASSIGN)
		p.space()
		p.expr(mm.Value)

	case *ast.MethodMember:
		p.functionDecl(mm.Func)

	case *ast.ConstructorMember:
		p.emit(token.CONSTRUCTOR)
		p.emit(token.LPAREN)
		p.paramList(mm.Func.Params)
		p.emit(token.RPAREN)
		p.compoundOrIndented(mm.Func.Body)
	}
}

func (p *printer) enum(n *ast.Enum) {
	p.emit(token.ENUM)
	p.space()
	p.ident(n.Name.Name)
	p.space()
	p.emit(token.LBRACE)
	if len(n.Members) == 0 {
		p.dummy()
	} else {
		p.newline()
		p.indentLevel(1)
		for i, m := range n.Members {
			if i > 0 {
				p.emit(token.COMMA)
				p.newline()
			}
			p.ident(m.Name.Name)
			if m.Value != nil {
				p.space()
				p.emit(token.ASSIGN)
				p.space()
				p.expr(m.Value)
			}
		}
		p.newline()
		p.indentLevel(-1)
	}
	p.emit(token.RBRACE)
}

func (p *printer) expr(x ast.Expr) {
	if x == nil {
		return
	}
	switch n := x.(type) {
	case *ast.Ident:
		p.ident(n.Name)

	case *ast.This:
		p.emit(token.THIS)

	case *ast.Base:
		p.emit(token.BASE)

	case *ast.LineMacro:
		p.emit(token.LINE_MACRO)

	case *ast.FileMacro:
		p.emit(token.FILE_MACRO)

	case *ast.UnaryExpr:
		p.emit(n.Op)
		if n.Op == token.TYPEOF {
			p.space()
		}
		p.expr(n.X)

	case *ast.PostfixUnaryExpr:
		p.expr(n.X)
		p.emit(n.Op)

	case *ast.BinaryExpr:
		p.expr(n.X)
		if n.Op == token.COMMA {
			p.emit(token.COMMA)
			p.space()
		} else {
			p.space()
			p.emit(n.Op)
			p.space()
		}
		p.expr(n.Y)

	case *ast.TernaryExpr:
		p.expr(n.Cond)
		p.space()
		p.emit(token.QUESTION)
		p.space()
		p.expr(n.Then)
		p.space()
		p.emit(token.COLON)
		p.space()
		p.expr(n.Else)

	case *ast.Spread:
		p.ellipsis()

	case *ast.StringLit:
		p.emitText(token.STRING, `"`+n.Value+`"`)

	case *ast.MultiLineStringLit:
		p.emitText(token.MLSTRING, `@"`+n.Value+`"`)

	case *ast.IntLit:
		p.emitText(token.INT, strconv.FormatInt(n.Value, 10))

	case *ast.FloatLit:
		p.emitText(token.FLOAT, formatFloat(n.Value))

	case *ast.NullLit:
		p.emit(token.NULL)

	case *ast.BoolLit:
		if n.Value {
			p.emit(token.TRUE)
		} else {
			p.emit(token.FALSE)
		}

	case *ast.Grouping:
		p.emit(token.LPAREN)
		if n.X != nil {
			p.expr(n.X)
		}
		p.emit(token.RPAREN)

	case *ast.ArrayLit:
		p.emit(token.LBRACK)
		if len(n.Elts) > 0 {
			p.newline()
			p.indentLevel(1)
			for i, e := range n.Elts {
				if i > 0 {
					p.emit(token.COMMA)
					p.newline()
				}
				p.expr(e)
			}
			p.newline()
			p.indentLevel(-1)
		}
		p.emit(token.RBRACK)

	case *ast.ArrayAccess:
		p.expr(n.X)
		p.emit(token.LBRACK)
		p.expr(n.Index)
		p.emit(token.RBRACK)

	case *ast.TableLit:
		p.emit(token.LBRACE)
		if len(n.Entries) == 0 {
			p.dummy()
		} else {
			p.newline()
			p.indentLevel(1)
			for i, e := range n.Entries {
				if i > 0 {
					p.newline()
				}
				p.tableEntry(e)
			}
			p.newline()
			p.indentLevel(-1)
		}
		p.emit(token.RBRACE)

	case *ast.MemberAccess:
		p.expr(n.X)
		p.emit(token.PERIOD)
		p.ident(n.Sel.Name)

	case *ast.ScopeResolution:
		p.scopeResolution(n)

	case *ast.FunctionCall:
		p.expr(n.Fun)
		p.emit(token.LPAREN)
		for i, a := range n.Args {
			if i > 0 {
				p.emit(token.COMMA)
				p.space()
			}
			p.expr(a)
		}
		p.emit(token.RPAREN)

	case *ast.CloneExpr:
		p.emit(token.CLONE)
		p.space()
		p.expr(n.X)

	case *ast.ResumeExpr:
		p.emit(token.RESUME)
		p.space()
		p.expr(n.X)

	case *ast.DeleteExpr:
		p.emit(token.DELETE)
		p.space()
		p.expr(n.X)

	case *ast.ClassExpr:
		p.classDef(n.Def)

	case *ast.FunctionExpr:
		p.functionDecl(n.Decl)
	}
}

func (p *printer) scopeResolution(n *ast.ScopeResolution) {
	if n.Scope != nil {
		p.expr(n.Scope)
	}
	p.emit(token.DCOLON)
	if n.Name != nil {
		p.ident(n.Name.Name)
	}
}

func (p *printer) tableEntry(e ast.TableEntry) {
	switch en := e.(type) {
	case *ast.FieldEntry:
		p.ident(en.Name.Name)
		p.space()
		p.emit(token.ASSIGN)
		p.space()
		p.expr(en.Value)

	case *ast.ComputedFieldEntry:
		p.emit(token.LBRACK)
		p.expr(en.Key)
		p.emit(token.RBRACK)
		p.space()
		p.emit(token.ASSIGN)
		p.space()
		p.expr(en.Value)

	case *ast.MethodEntry:
		p.functionDecl(en.Func)
	}
}

// formatFloat renders v so that an integral float keeps a trailing ".0"
// (spec §4.5) rather than printing as e.g. "3" like a bare integer would.
func formatFloat(v float64) string {
	if !math.IsInf(v, 0) && !math.IsNaN(v) && v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
