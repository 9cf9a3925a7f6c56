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

// Package parser implements a recursive-descent parser for Squirrel source
// text, producing an *ast.Statements.
package parser

import (
	"github.com/mkmarek/squirrel-lsp/ast"
	"github.com/mkmarek/squirrel-lsp/lexer"
	"github.com/mkmarek/squirrel-lsp/parseerr"
	"github.com/mkmarek/squirrel-lsp/token"
)

// parser holds the parser's state while consuming one source text. It
// reports at most one error (the first encountered) and, once reported,
// keeps making forward progress through the remaining input without
// attempting any further error recovery or synchronization; the resulting
// tree past that point is best-effort and callers must treat a non-empty
// Errors list as "parse failed", discarding the tree.
type parser struct {
	lex *lexer.Lexer
	tok lexer.TokenWithLocation

	errors parseerr.List
}

// Parse parses src as a complete Squirrel program (spec §4.2 Entry).
func Parse(src []byte) (*ast.Statements, parseerr.List) {
	p := newParser(src)
	stmts := p.parseProgram()
	p.promotePendingLexError()
	return stmts, p.errors
}

// ParseExpr parses src as a single standalone expression, consuming any
// trailing whitespace. It exists for tests and tools that evaluate
// expression fragments in isolation.
func ParseExpr(src []byte) (ast.Expr, parseerr.List) {
	p := newParser(src)
	x := p.parseExpression()
	p.skipSeparators()
	if p.tok.Token != token.EOF {
		p.errorf(parseerr.UnexpectedToken, p.tok.From, p.tok.To, "unexpected %s after expression", p.tok.Token)
	}
	p.promotePendingLexError()
	return x, p.errors
}

// promotePendingLexError surfaces a lexer error that the parser's own
// expect()/errorf() calls never stumbled into — e.g. an unterminated string
// that still scans to a single STRING token followed by EOF, never
// triggering a token mismatch. Without this, such an error would otherwise
// be silently dropped since the lexer's Errors are normally only consulted
// lazily from within errorf.
func (p *parser) promotePendingLexError() {
	if len(p.errors) > 0 {
		return
	}
	if lexErr := p.firstLexError(); lexErr != nil {
		p.errors.AddNewf(promoteLexKind(lexErr.Kind), lexErr.From, lexErr.To, "%s", lexErr.Msg)
	}
}

func newParser(src []byte) *parser {
	p := &parser{lex: lexer.New(src, lexer.SkipComments)}
	p.advance()
	return p
}

// advance fetches the next non-whitespace token from the lexer into p.tok.
// NEWLINE is preserved (it is a meaningful statement separator); SPACE and
// TAB never reach the parser.
func (p *parser) advance() {
	for {
		t := p.lex.Next()
		if t.Token == token.SPACE || t.Token == token.TAB {
			continue
		}
		p.tok = t
		return
	}
}

// snapshot/restore implement the value-copy backtracking of spec §9: save a
// lexer clone and the current lookahead token, then restore both to undo a
// speculative parse.
type snapshot struct {
	lex *lexer.Lexer
	tok lexer.TokenWithLocation
}

func (p *parser) snapshot() snapshot {
	return snapshot{lex: p.lex.Clone(), tok: p.tok}
}

func (p *parser) restore(s snapshot) {
	p.lex = s.lex
	p.tok = s.tok
}

// errorf records a new parse error at the given span. Only the first error
// is kept (spec §4.2: "reports the first error and stops"); the lexer's own
// Errors, discovered lazily as tokens are scanned, take priority over a
// parser-level error found at the same token because they explain *why*
// the token looked wrong in the first place.
func (p *parser) errorf(kind parseerr.Kind, from, to token.Position, format string, args ...interface{}) {
	if len(p.errors) > 0 {
		return
	}
	if lexErr := p.firstLexError(); lexErr != nil {
		p.errors.AddNewf(promoteLexKind(lexErr.Kind), lexErr.From, lexErr.To, "%s", lexErr.Msg)
		return
	}
	p.errors.AddNewf(kind, from, to, format, args...)
}

func (p *parser) firstLexError() *lexer.Error {
	if len(p.lex.Errors) == 0 {
		return nil
	}
	return p.lex.Errors[0]
}

// promoteLexKind maps a lexer-level error into the parser's error
// vocabulary (spec §7): lex errors bubble up and are reported as parse
// errors, never surfaced as a separate error type.
func promoteLexKind(k lexer.ErrorKind) parseerr.Kind {
	switch k {
	case lexer.UnterminatedString:
		return parseerr.UnterminatedString
	case lexer.InvalidKeyword:
		return parseerr.InvalidKeyword
	default:
		return parseerr.UnexpectedToken
	}
}

// expect consumes the current token if it has kind tok, recording an error
// otherwise. It always advances, matched or not, so the parser keeps making
// forward progress through malformed input (mirrors the teacher's
// parser.expect).
func (p *parser) expect(tok token.Token) token.Position {
	pos := p.tok.From
	if p.tok.Token != tok {
		p.errorf(parseerr.ExpectedTokenGot, p.tok.From, p.tok.To, "expected %s, got %s", tok, p.tok.Token)
	}
	p.advance()
	return pos
}

func (p *parser) expectOneOf(toks ...token.Token) token.Position {
	pos := p.tok.From
	for _, t := range toks {
		if p.tok.Token == t {
			p.advance()
			return pos
		}
	}
	p.errorf(parseerr.ExpectedOneOfGot, p.tok.From, p.tok.To, "expected one of %v, got %s", toks, p.tok.Token)
	p.advance()
	return pos
}

// skipSeparators consumes any run of NEWLINE/SEMI tokens and reports how
// many were consumed.
func (p *parser) skipSeparators() int {
	n := 0
	for p.tok.Token == token.NEWLINE || p.tok.Token == token.SEMI {
		p.advance()
		n++
	}
	return n
}

// skipEntrySeparators is the Tables/Class/Enum body variant: a run of
// COMMA/NEWLINE tokens separates entries (spec §4.2: "Entries are separated
// by `,` or Newline; trailing separator allowed").
func (p *parser) skipEntrySeparators() int {
	n := 0
	for p.tok.Token == token.COMMA || p.tok.Token == token.NEWLINE {
		p.advance()
		n++
	}
	return n
}

// ----------------------------------------------------------------------------
// Program / statement lists

// parseProgram implements the Entry production: skip leading separators,
// parse a Statements, expect EOF.
func (p *parser) parseProgram() *ast.Statements {
	p.skipSeparators()
	stmts := p.parseStatementsUntil(token.EOF)
	p.expect(token.EOF)
	return stmts
}

// parseStatementsUntil parses statements until the current token is one of
// stop, recording an error if two consecutive statements in the same block
// are not separated by at least one `;`/Newline (spec §4.2, §8 scenario 5).
func (p *parser) parseStatementsUntil(stop ...token.Token) *ast.Statements {
	p.skipSeparators()
	from := p.tok.From
	to := from
	var list []ast.Stmt
	for !p.atAny(stop...) && p.tok.Token != token.EOF {
		s := p.parseStatement()
		list = append(list, s)
		to = s.End()
		n := p.skipSeparators()
		if n == 0 && !p.atAny(stop...) && p.tok.Token != token.EOF && !endsInBrace(s) {
			p.errorf(parseerr.ExpectedTokenGot, p.tok.From, p.tok.To, "Expected ; or newline after a statement")
		}
	}
	return &ast.Statements{Span: span(from, to), List: list}
}

func (p *parser) atAny(toks ...token.Token) bool {
	for _, t := range toks {
		if p.tok.Token == t {
			return true
		}
	}
	return false
}

// endsInBrace reports whether s's textual form ends in a `}` closing a
// block body, in which case the statement separator before the next
// statement may be omitted.
func endsInBrace(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.Block:
		return true
	case *ast.If:
		if n.Else != nil {
			return endsInBrace(n.Else)
		}
		return endsInBrace(n.Then)
	case *ast.While:
		return endsInBrace(n.Body)
	case *ast.For:
		return endsInBrace(n.Body)
	case *ast.ForEach:
		return endsInBrace(n.Body)
	case *ast.Switch:
		return true
	case *ast.TryCatch:
		return endsInBrace(n.Catch)
	case *ast.FunctionDecl:
		return endsInBrace(n.Body)
	case *ast.Class:
		return true
	case *ast.Enum:
		return true
	}
	return false
}

// ----------------------------------------------------------------------------
// Statements

// parseStatement dispatches on the current lead token (spec §4.2's
// statement dispatch table).
func (p *parser) parseStatement() ast.Stmt {
	switch p.tok.Token {
	case token.LBRACE:
		return p.parseBlock()
	case token.DO:
		return p.parseDoWhile()
	case token.WHILE:
		return p.parseWhile()
	case token.IF:
		return p.parseIf()
	case token.LOCAL:
		return p.parseLocal()
	case token.FOREACH:
		return p.parseForEach()
	case token.SWITCH:
		return p.parseSwitch()
	case token.FOR:
		return p.parseFor()
	case token.BREAK:
		from := p.tok.From
		to := p.tok.To
		p.advance()
		return &ast.BreakStmt{span(from, to)}
	case token.CONTINUE:
		from := p.tok.From
		to := p.tok.To
		p.advance()
		return &ast.ContinueStmt{span(from, to)}
	case token.RETURN:
		return p.parseReturnOrYield(true)
	case token.YIELD:
		return p.parseReturnOrYield(false)
	case token.FUNCTION:
		return p.parseFunctionDeclStmt(false)
	case token.CLASS:
		return p.parseClassStmt()
	case token.TRY:
		return p.parseTryCatch()
	case token.THROW:
		from := p.tok.From
		p.advance()
		v := p.parseExpression()
		return &ast.Throw{span(from, v.End()), v}
	case token.CONST:
		return p.parseConst()
	case token.ENUM:
		return p.parseEnum()
	default:
		from := p.tok.From
		x := p.parseExpression()
		return &ast.ExpressionStmt{span(from, x.End()), x}
	}
}

func span(from, to token.Position) ast.Span {
	return ast.Span{From: from, To: to}
}

func (p *parser) parseBlock() *ast.Block {
	from := p.tok.From
	p.expect(token.LBRACE)
	body := p.parseStatementsUntil(token.RBRACE)
	to := p.tok.To
	p.expect(token.RBRACE)
	return &ast.Block{span(from, to), body}
}

func (p *parser) parseDoWhile() ast.Stmt {
	from := p.tok.From
	p.advance() // 'do'
	body := p.parseStatement()
	p.skipSeparators()
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	to := p.tok.To
	p.expect(token.RPAREN)
	return &ast.DoWhile{span(from, to), body, cond}
}

func (p *parser) parseWhile() ast.Stmt {
	from := p.tok.From
	p.advance() // 'while'
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.While{span(from, body.End()), cond, body}
}

// parseIf implements the If-else production including the speculative
// save/restore needed to tolerate a statement separator between the `if`
// body and `else` (spec §4.2, §9 design note 3).
func (p *parser) parseIf() ast.Stmt {
	from := p.tok.From
	p.advance() // 'if'
	p.expect(token.LPAREN)
	cond := p.parseExpression()
	p.expect(token.RPAREN)
	then := p.parseStatement()

	var elseStmt ast.Stmt
	save := p.snapshot()
	p.skipSeparators()
	if p.tok.Token == token.ELSE {
		p.advance()
		elseStmt = p.parseStatement()
	} else {
		p.restore(save)
	}

	to := then.End()
	if elseStmt != nil {
		to = elseStmt.End()
	}
	return &ast.If{span(from, to), cond, then, elseStmt}
}

func (p *parser) parseSwitch() ast.Stmt {
	from := p.tok.From
	p.advance() // 'switch'
	p.expect(token.LPAREN)
	tag := p.parseExpression()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	p.skipSeparators()

	var cases []*ast.Case
	for p.tok.Token == token.CASE {
		cfrom := p.tok.From
		p.advance()
		val := p.parseExpression()
		p.expect(token.COLON)
		body := p.parseStatementsUntil(token.CASE, token.DEFAULT, token.RBRACE)
		cases = append(cases, &ast.Case{Span: span(cfrom, body.End()), Value: val, Body: body})
		p.skipSeparators()
	}

	var def *ast.Statements
	if p.tok.Token == token.DEFAULT {
		p.advance()
		p.expect(token.COLON)
		def = p.parseStatementsUntil(token.RBRACE)
		p.skipSeparators()
	}

	to := p.tok.To
	p.expect(token.RBRACE)
	return &ast.Switch{span(from, to), tag, cases, def}
}

func (p *parser) parseFor() ast.Stmt {
	from := p.tok.From
	p.advance() // 'for'
	p.expect(token.LPAREN)

	var init ast.Stmt
	if p.tok.Token != token.SEMI {
		init = p.parseForClauseInit()
	}
	p.expect(token.SEMI)

	var cond ast.Expr
	if p.tok.Token != token.SEMI {
		cond = p.parseExpression()
	}
	p.expect(token.SEMI)

	var post ast.Expr
	if p.tok.Token != token.RPAREN {
		post = p.parseExpression()
	}
	p.expect(token.RPAREN)

	body := p.parseStatement()
	return &ast.For{span(from, body.End()), init, cond, post, body}
}

// parseForClauseInit parses the `for (init; ...)` initializer, which is
// either a Local declaration or a bare expression, without consuming the
// statement separator (the enclosing `for` uses an explicit `;`, not the
// ordinary statement-separator rule).
func (p *parser) parseForClauseInit() ast.Stmt {
	if p.tok.Token == token.LOCAL {
		return p.parseLocal()
	}
	from := p.tok.From
	x := p.parseExpression()
	return &ast.ExpressionStmt{span(from, x.End()), x}
}

func (p *parser) parseForEach() ast.Stmt {
	from := p.tok.From
	p.advance() // 'foreach'
	p.expect(token.LPAREN)
	first := p.parseIdentNode()
	var key, value *ast.Ident
	if p.tok.Token == token.COMMA {
		p.advance()
		key = first
		value = p.parseIdentNode()
	} else {
		value = first
	}
	p.expect(token.IN)
	source := p.parseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.ForEach{span(from, body.End()), key, value, source, body}
}

func (p *parser) parseTryCatch() ast.Stmt {
	from := p.tok.From
	p.advance() // 'try'
	try := p.parseStatement()
	p.skipSeparators()
	p.expect(token.CATCH)
	p.expect(token.LPAREN)
	ident := p.parseIdentNode()
	p.expect(token.RPAREN)
	catch := p.parseStatement()
	return &ast.TryCatch{span(from, catch.End()), try, ident, catch}
}

func (p *parser) parseReturnOrYield(isReturn bool) ast.Stmt {
	from := p.tok.From
	to := p.tok.To
	p.advance()
	var value ast.Expr
	if !p.atStatementEnd() {
		value = p.parseExpression()
		to = value.End()
	}
	if isReturn {
		return &ast.Return{span(from, to), value}
	}
	return &ast.Yield{span(from, to), value}
}

// atStatementEnd reports whether the current token could only occur at the
// end of a `return`/`yield` statement, meaning no expression follows.
func (p *parser) atStatementEnd() bool {
	switch p.tok.Token {
	case token.SEMI, token.NEWLINE, token.RBRACE, token.EOF:
		return true
	}
	return false
}

func (p *parser) parseConst() ast.Stmt {
	from := p.tok.From
	p.advance() // 'const'
	name := p.parseIdentNode()
	p.expect(token.ASSIGN)
	val := p.parseExpression()
	return &ast.Const{span(from, val.End()), name, val}
}

func (p *parser) parseLocal() *ast.Local {
	from := p.tok.From
	p.advance() // 'local'
	var inits []*ast.Initialization
	for {
		name := p.parseIdentNode()
		var val ast.Expr
		if p.tok.Token == token.ASSIGN {
			p.advance()
			val = p.parseAssignExpr()
		}
		inits = append(inits, &ast.Initialization{Name: name, Value: val})
		if p.tok.Token == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	last := inits[len(inits)-1]
	to := last.Name.End()
	if last.Value != nil {
		to = last.Value.End()
	}
	return &ast.Local{span(from, to), inits}
}

func (p *parser) parseEnum() ast.Stmt {
	from := p.tok.From
	p.advance() // 'enum'
	name := p.parseIdentNode()
	p.expect(token.LBRACE)
	p.skipEntrySeparators()

	var members []*ast.EnumMember
	for p.tok.Token != token.RBRACE && p.tok.Token != token.EOF {
		mfrom := p.tok.From
		mname := p.parseIdentNode()
		var val ast.Expr
		to := mname.End()
		if p.tok.Token == token.ASSIGN {
			p.advance()
			val = p.parseAssignExpr()
			to = val.End()
		}
		members = append(members, &ast.EnumMember{span(mfrom, to), mname, val})
		if p.skipEntrySeparators() == 0 {
			break
		}
	}

	to := p.tok.To
	p.expect(token.RBRACE)
	return &ast.Enum{span(from, to), name, members}
}

// ----------------------------------------------------------------------------
// Functions, classes

// parseFunctionName parses a function declaration's name, allowing the
// `A::b` scope-qualified form in addition to a plain identifier.
func (p *parser) parseFunctionName() ast.Expr {
	ident := p.parseIdentNode()
	var x ast.Expr = ident
	for p.tok.Token == token.DCOLON {
		p.advance()
		name := p.parseIdentNode()
		x = &ast.ScopeResolution{span(x.Pos(), name.End()), x, name}
	}
	return x
}

func (p *parser) parseFunctionDeclStmt(isStatic bool) ast.Stmt {
	return p.parseFunctionDecl(isStatic, true)
}

// parseFunctionDecl parses `function [name](params) body`. nameRequired is
// false only for the anonymous function-expression form.
func (p *parser) parseFunctionDecl(isStatic, nameRequired bool) *ast.FunctionDecl {
	from := p.tok.From
	p.advance() // 'function'
	var name ast.Expr
	if nameRequired || p.tok.Token == token.IDENT {
		name = p.parseFunctionName()
	}
	p.expect(token.LPAREN)
	params := p.parseParamList()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return &ast.FunctionDecl{span(from, body.End()), name, params, body, isStatic}
}

// parseParamList parses a function/method parameter list: each entry is
// either an identifier, `identifier = default_expr` (parsed as a
// BinaryExpr per spec §4.2's parameter-list ambiguity policy), or the `...`
// spread marker.
func (p *parser) parseParamList() []ast.Expr {
	var params []ast.Expr
	for p.tok.Token != token.RPAREN && p.tok.Token != token.EOF {
		if p.tok.Token == token.PERIOD && p.lex.MatchesTokens([]token.Token{token.PERIOD, token.PERIOD}) {
			from := p.tok.From
			p.advance()
			p.advance()
			to := p.tok.To
			p.advance()
			params = append(params, &ast.Spread{span(from, to)})
		} else {
			name := p.parseIdentNode()
			var param ast.Expr = name
			if p.tok.Token == token.ASSIGN {
				opPos := p.tok.From
				p.advance()
				def := p.parseAssignExpr()
				param = &ast.BinaryExpr{span(name.Pos(), def.End()), name, token.ASSIGN, opPos, def}
			}
			params = append(params, param)
		}
		if p.tok.Token == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	return params
}

func (p *parser) parseClassStmt() ast.Stmt {
	from := p.tok.From
	def := p.parseClassDefinition(true)
	return &ast.Class{span(from, def.End()), def}
}

// parseClassDefinition parses `class [name] [extends base] { members }`,
// shared by the Class statement and the anonymous ClassExpr.
func (p *parser) parseClassDefinition(nameRequired bool) *ast.ClassDefinition {
	from := p.tok.From
	p.advance() // 'class'
	var name ast.Expr
	if nameRequired || p.tok.Token == token.IDENT {
		name = p.parseFunctionName()
	}
	var extends ast.Expr
	if p.tok.Token == token.EXTENDS {
		p.advance()
		extends = p.parseExpression()
	}

	p.expect(token.LBRACE)
	p.skipEntrySeparators()

	var members []ast.ClassMember
	for p.tok.Token != token.RBRACE && p.tok.Token != token.EOF {
		isStatic := false
		if p.tok.Token == token.STATIC {
			isStatic = true
			p.advance()
		}
		switch p.tok.Token {
		case token.CONSTRUCTOR:
			cfrom := p.tok.From
			p.advance()
			p.expect(token.LPAREN)
			params := p.parseParamList()
			p.expect(token.RPAREN)
			body := p.parseStatement()
			fn := &ast.FunctionDecl{span(cfrom, body.End()), nil, params, body, isStatic}
			members = append(members, &ast.ConstructorMember{span(cfrom, body.End()), fn})
		case token.FUNCTION:
			fn := p.parseFunctionDecl(isStatic, true)
			members = append(members, &ast.MethodMember{span(fn.Pos(), fn.End()), fn})
		default:
			nfrom := p.tok.From
			fieldName := p.parseIdentNode()
			p.expect(token.ASSIGN)
			val := p.parseAssignExpr()
			members = append(members, &ast.FieldMember{span(nfrom, val.End()), fieldName, val, isStatic})
		}
		if p.skipEntrySeparators() == 0 {
			break
		}
	}

	to := p.tok.To
	p.expect(token.RBRACE)
	return &ast.ClassDefinition{span(from, to), name, extends, members}
}

// ----------------------------------------------------------------------------
// Expressions
//
// The grammar, from loosest to tightest binding: ternary wraps the
// binary-operator stack (levels 0..10, precedence-climbing with
// right-associative recursion at the comma and assignment levels), which
// bottoms out at the prefix-unary layer (level 11), then clone/resume/
// delete, postfix ++/--, the access chain, scope resolution, and finally
// the primary literal/grouping layer.

// parseExpression is the full grammar entry point, including the level-0
// comma operator. It is used only where a bare `,` cannot also be a
// structural list separator: statement-expressions, return/throw/yield
// values, and if/while/switch/for condition clauses.
func (p *parser) parseExpression() ast.Expr {
	return p.parseTernary(0)
}

// parseAssignExpr starts the binary stack at level 1 (assignment),
// excluding the comma operator. It is used everywhere a bare `,` is a
// structural separator instead: array elements, call arguments, parameter
// defaults, local initializers, and table/class/enum entry values. Without
// this split, `f(a, b)` would parse as a single comma-expression argument
// instead of two.
func (p *parser) parseAssignExpr() ast.Expr {
	return p.parseTernary(1)
}

func (p *parser) parseTernary(level int) ast.Expr {
	cond := p.parseBinary(level)
	if p.tok.Token != token.QUESTION {
		return cond
	}
	p.advance()
	then := p.parseAssignExpr()
	p.expect(token.COLON)
	els := p.parseAssignExpr()
	return &ast.TernaryExpr{span(cond.Pos(), els.End()), cond, then, els}
}

// parseBinary implements one level of the 0..10 precedence table.
// Comma (0) and assignment (1) are right-associative: the right-hand
// operand recurses into the same level. Every other level is
// left-associative: the right-hand operand recurses into level+1 and the
// result feeds back as the new left operand in a loop.
func (p *parser) parseBinary(level int) ast.Expr {
	if level > 10 {
		return p.parseUnary()
	}
	left := p.parseBinary(level + 1)
	// Non-operator tokens also report precedence 0, so level 0 only
	// accepts an actual comma.
	for p.tok.Token.Precedence() == level && (level != 0 || p.tok.Token == token.COMMA) {
		op := p.tok.Token
		opPos := p.tok.From
		p.advance()
		if level <= 1 {
			right := p.parseBinary(level)
			return &ast.BinaryExpr{span(left.Pos(), right.End()), left, op, opPos, right}
		}
		right := p.parseBinary(level + 1)
		left = &ast.BinaryExpr{span(left.Pos(), right.End()), left, op, opPos, right}
	}
	return left
}

// parseUnary is precedence level 11: a right-recursive prefix layer for
// ! ~ - typeof ++ --.
func (p *parser) parseUnary() ast.Expr {
	switch p.tok.Token {
	case token.NOT, token.NEG, token.SUB, token.TYPEOF, token.INC, token.DEC:
		op := p.tok.Token
		from := p.tok.From
		p.advance()
		x := p.parseUnary()
		return &ast.UnaryExpr{span(from, x.End()), op, x}
	}
	return p.parseCloneResumeDelete()
}

func (p *parser) parseCloneResumeDelete() ast.Expr {
	switch p.tok.Token {
	case token.CLONE:
		from := p.tok.From
		p.advance()
		x := p.parseCloneResumeDelete()
		return &ast.CloneExpr{span(from, x.End()), x}
	case token.RESUME:
		from := p.tok.From
		p.advance()
		x := p.parseCloneResumeDelete()
		return &ast.ResumeExpr{span(from, x.End()), x}
	case token.DELETE:
		from := p.tok.From
		p.advance()
		x := p.parseCloneResumeDelete()
		return &ast.DeleteExpr{span(from, x.End()), x}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() ast.Expr {
	x := p.parseAccessChain()
	if p.tok.Token == token.INC || p.tok.Token == token.DEC {
		op := p.tok.Token
		to := p.tok.To
		p.advance()
		return &ast.PostfixUnaryExpr{span(x.Pos(), to), op, x}
	}
	return x
}

// parseAccessChain iterates `.ident` / `(args)` / `[expr]` continuations
// over a scope-resolution-or-primary operand, left-associating (spec
// §4.2's "Access chain").
func (p *parser) parseAccessChain() ast.Expr {
	x := p.parseScopeResolution()
	for {
		switch p.tok.Token {
		case token.PERIOD:
			p.advance()
			sel := p.parseIdentNode() // `constructor` as RHS is treated as an identifier
			x = &ast.MemberAccess{span(x.Pos(), sel.End()), x, sel}
		case token.LPAREN:
			p.advance()
			args := p.parseArgList()
			to := p.tok.To
			p.expect(token.RPAREN)
			x = &ast.FunctionCall{span(x.Pos(), to), x, args}
		case token.LBRACK:
			p.advance()
			idx := p.parseExpression()
			to := p.tok.To
			p.expect(token.RBRACK)
			x = &ast.ArrayAccess{span(x.Pos(), to), x, idx}
		default:
			return x
		}
	}
}

func (p *parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	for p.tok.Token != token.RPAREN && p.tok.Token != token.EOF {
		if p.tok.Token == token.PERIOD && p.lex.MatchesTokens([]token.Token{token.PERIOD, token.PERIOD}) {
			from := p.tok.From
			p.advance()
			p.advance()
			to := p.tok.To
			p.advance()
			args = append(args, &ast.Spread{span(from, to)})
		} else {
			args = append(args, p.parseAssignExpr())
		}
		if p.tok.Token == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	return args
}

// parseScopeResolution handles the leading `::name` root-scope form and
// trailing `scope::name` chains around a primary operand.
func (p *parser) parseScopeResolution() ast.Expr {
	var x ast.Expr
	if p.tok.Token == token.DCOLON {
		from := p.tok.From
		p.advance()
		name := p.parseIdentNode()
		x = &ast.ScopeResolution{span(from, name.End()), nil, name}
	} else {
		x = p.parsePrimary()
	}
	for p.tok.Token == token.DCOLON {
		p.advance()
		name := p.parseIdentNode()
		x = &ast.ScopeResolution{span(x.Pos(), name.End()), x, name}
	}
	return x
}

func (p *parser) parsePrimary() ast.Expr {
	from := p.tok.From
	switch p.tok.Token {
	case token.STRING:
		v := p.tok.Text
		to := p.tok.To
		p.advance()
		return &ast.StringLit{span(from, to), v}
	case token.MLSTRING:
		v := p.tok.Text
		to := p.tok.To
		p.advance()
		return &ast.MultiLineStringLit{span(from, to), v}
	case token.INT:
		v := p.tok.IntValue
		to := p.tok.To
		p.advance()
		return &ast.IntLit{span(from, to), v}
	case token.FLOAT:
		v := p.tok.FloatValue
		to := p.tok.To
		p.advance()
		return &ast.FloatLit{span(from, to), v}
	case token.NULL:
		to := p.tok.To
		p.advance()
		return &ast.NullLit{span(from, to)}
	case token.TRUE, token.FALSE:
		v := p.tok.Token == token.TRUE
		to := p.tok.To
		p.advance()
		return &ast.BoolLit{span(from, to), v}
	case token.THIS:
		to := p.tok.To
		p.advance()
		return &ast.This{span(from, to)}
	case token.BASE:
		to := p.tok.To
		p.advance()
		return &ast.Base{span(from, to)}
	case token.LINE_MACRO:
		to := p.tok.To
		p.advance()
		return &ast.LineMacro{span(from, to)}
	case token.FILE_MACRO:
		to := p.tok.To
		p.advance()
		return &ast.FileMacro{span(from, to)}
	case token.IDENT, token.RAWCALL:
		return p.parseIdentNode()
	case token.LBRACK:
		return p.parseArrayLit()
	case token.LBRACE:
		return p.parseTableLit()
	case token.LPAREN:
		p.advance()
		if p.tok.Token == token.RPAREN {
			to := p.tok.To
			p.advance()
			return &ast.Grouping{span(from, to), nil}
		}
		x := p.parseExpression()
		to := p.tok.To
		p.expect(token.RPAREN)
		return &ast.Grouping{span(from, to), x}
	case token.CLASS:
		def := p.parseClassDefinition(false)
		return &ast.ClassExpr{span(from, def.End()), def}
	case token.FUNCTION:
		decl := p.parseFunctionDecl(false, false)
		return &ast.FunctionExpr{span(from, decl.End()), decl}
	}

	p.errorf(parseerr.ExpectedExpression, p.tok.From, p.tok.To, "expected expression, got %s", p.tok.Token)
	to := p.tok.To
	p.advance() // forward progress through the unexpected token
	return &ast.Ident{span(from, to), ""}
}

func (p *parser) parseArrayLit() ast.Expr {
	from := p.tok.From
	p.advance() // '['
	var elts []ast.Expr
	for p.tok.Token != token.RBRACK && p.tok.Token != token.EOF {
		if p.tok.Token == token.PERIOD && p.lex.MatchesTokens([]token.Token{token.PERIOD, token.PERIOD}) {
			sfrom := p.tok.From
			p.advance()
			p.advance()
			to := p.tok.To
			p.advance()
			elts = append(elts, &ast.Spread{span(sfrom, to)})
		} else {
			elts = append(elts, p.parseAssignExpr())
		}
		if p.tok.Token == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	to := p.tok.To
	p.expect(token.RBRACK)
	return &ast.ArrayLit{span(from, to), elts}
}

func (p *parser) parseTableLit() ast.Expr {
	from := p.tok.From
	p.advance() // '{'
	p.skipEntrySeparators()

	var entries []ast.TableEntry
	for p.tok.Token != token.RBRACE && p.tok.Token != token.EOF {
		switch p.tok.Token {
		case token.FUNCTION:
			fn := p.parseFunctionDecl(false, true)
			entries = append(entries, &ast.MethodEntry{span(fn.Pos(), fn.End()), fn})
		case token.LBRACK:
			kfrom := p.tok.From
			p.advance()
			key := p.parseExpression()
			p.expect(token.RBRACK)
			p.expect(token.ASSIGN)
			val := p.parseAssignExpr()
			entries = append(entries, &ast.ComputedFieldEntry{span(kfrom, val.End()), key, val})
		default:
			name := p.parseIdentNode()
			p.expect(token.ASSIGN)
			val := p.parseAssignExpr()
			entries = append(entries, &ast.FieldEntry{span(name.Pos(), val.End()), name, val})
		}
		if p.skipEntrySeparators() == 0 {
			break
		}
	}

	to := p.tok.To
	p.expect(token.RBRACE)
	return &ast.TableLit{span(from, to), entries}
}

// parseIdentNode consumes an identifier, recording ExpectedIdentifier and
// producing an empty-named placeholder (without consuming the offending
// token if it is structurally significant) when the current token is not
// one.
func (p *parser) parseIdentNode() *ast.Ident {
	from := p.tok.From
	to := p.tok.To
	if p.tok.Token == token.IDENT || p.tok.Token == token.RAWCALL || p.tok.Token == token.CONSTRUCTOR {
		name := p.tok.Text
		if p.tok.Token == token.RAWCALL {
			name = "rawcall"
		}
		if p.tok.Token == token.CONSTRUCTOR {
			name = "constructor"
		}
		p.advance()
		return &ast.Ident{span(from, to), name}
	}
	p.errorf(parseerr.ExpectedIdentifier, from, to, "expected identifier, got %s", p.tok.Token)
	p.advance()
	return &ast.Ident{span(from, to), ""}
}
