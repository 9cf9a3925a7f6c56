package scope

import (
	"github.com/mkmarek/squirrel-lsp/ast"
	"github.com/mkmarek/squirrel-lsp/token"
)

// Build walks prog and returns the scope table for it (spec §4.4). It
// never fails: a best-effort tree from the parser (one produced alongside
// parse errors) still yields a table, just one whose usages may resolve
// to fewer declarations than a clean parse would.
func Build(prog *ast.Statements) *Table {
	b := &builder{table: newTable(), scope: 0}
	b.buildStmtList(prog)
	return b.table
}

type builder struct {
	table *Table
	scope int
}

// push opens a new scope as a child of the current one, makes it current,
// and returns the scope to restore on pop.
func (b *builder) push() int {
	saved := b.scope
	b.scope = b.table.newScope(b.scope)
	return saved
}

func (b *builder) pop(saved int) {
	b.scope = saved
}

func (b *builder) buildStmtList(list *ast.Statements) {
	if list == nil {
		return
	}
	for _, s := range list.List {
		b.buildStmt(s)
	}
}

func (b *builder) buildStmt(s ast.Stmt) {
	if s == nil {
		return
	}
	switch n := s.(type) {
	case *ast.Block:
		saved := b.push()
		b.buildStmtList(n.Body)
		b.pop(saved)

	case *ast.If:
		saved := b.push()
		b.buildExpr(n.Cond)
		b.buildStmt(n.Then)
		if n.Else != nil {
			b.buildStmt(n.Else)
		}
		b.pop(saved)

	case *ast.While:
		saved := b.push()
		b.buildExpr(n.Cond)
		b.buildStmt(n.Body)
		b.pop(saved)

	case *ast.DoWhile:
		saved := b.push()
		b.buildStmt(n.Body)
		b.buildExpr(n.Cond)
		b.pop(saved)

	case *ast.Switch:
		saved := b.push()
		b.buildExpr(n.Tag)
		for _, c := range n.Cases {
			b.buildExpr(c.Value)
			b.buildStmtList(c.Body)
		}
		if n.Default != nil {
			b.buildStmtList(n.Default)
		}
		b.pop(saved)

	case *ast.For:
		saved := b.push()
		if n.Init != nil {
			b.buildStmt(n.Init)
		}
		if n.Cond != nil {
			b.buildExpr(n.Cond)
		}
		if n.Post != nil {
			b.buildExpr(n.Post)
		}
		b.buildStmt(n.Body)
		b.pop(saved)

	case *ast.ForEach:
		saved := b.push()
		if n.Key != nil {
			b.table.declare(b.scope, Local, n.Key.Name, nil, n.Key.Pos(), n.Key.End())
		}
		if n.Value != nil {
			b.table.declare(b.scope, Local, n.Value.Name, nil, n.Value.Pos(), n.Value.End())
		}
		b.buildExpr(n.Source)
		b.buildStmt(n.Body)
		b.pop(saved)

	case *ast.TryCatch:
		b.buildStmt(n.Try)
		saved := b.push()
		if n.Ident != nil {
			b.table.declare(b.scope, Local, n.Ident.Name, nil, n.Ident.Pos(), n.Ident.End())
		}
		b.buildStmt(n.Catch)
		b.pop(saved)

	case *ast.BreakStmt, *ast.ContinueStmt:
		// leaves

	case *ast.Return:
		b.buildExpr(n.Value)

	case *ast.Yield:
		b.buildExpr(n.Value)

	case *ast.Throw:
		b.buildExpr(n.Value)

	case *ast.ExpressionStmt:
		b.buildExpr(n.X)

	case *ast.Const:
		b.table.declare(b.scope, Const, n.Name.Name, n.Value, n.Name.Pos(), n.Name.End())
		b.buildExpr(n.Value)

	case *ast.Local:
		for _, init := range n.Inits {
			from, to := init.Name.Pos(), init.Name.End()
			if init.Value != nil {
				to = init.Value.End()
			}
			b.table.declare(b.scope, Local, init.Name.Name, init.Value, from, to)
			b.buildExpr(init.Value)
		}

	case *ast.FunctionDecl:
		b.buildFunctionDecl(n, Function, true)

	case *ast.Class:
		b.buildClassDefinition(n.Def)

	case *ast.Enum:
		saved := b.push()
		for _, m := range n.Members {
			b.buildExpr(m.Value)
		}
		b.pop(saved)

	case *ast.CommentStmt:
		// not a lexical construct
	}
}

// buildFunctionDecl declares fn's own name (if declareName and the name is
// a plain identifier — a scoped name like A::b is never bound as a local
// declaration) in the CURRENT scope, then opens the function's own scope,
// declares its parameters there, and walks the body inside it.
func (b *builder) buildFunctionDecl(fn *ast.FunctionDecl, kind DeclKind, declareName bool) {
	if declareName {
		if id, ok := fn.Name.(*ast.Ident); ok {
			b.table.declare(b.scope, kind, id.Name, nil, fn.Pos(), fn.End())
		}
	}
	saved := b.push()
	for _, p := range fn.Params {
		b.declareParam(p)
	}
	for _, p := range fn.Params {
		b.buildExpr(p)
	}
	b.buildStmt(fn.Body)
	b.pop(saved)
}

// declareParam handles both plain identifier parameters and the
// `ident = default` form, which the parser represents as a BinaryExpr
// whose X is the parameter name and Y the default-value expression.
func (b *builder) declareParam(p ast.Expr) {
	switch pn := p.(type) {
	case *ast.Ident:
		b.table.declare(b.scope, Local, pn.Name, nil, pn.Pos(), pn.End())
	case *ast.BinaryExpr:
		if id, ok := pn.X.(*ast.Ident); ok {
			b.table.declare(b.scope, Local, id.Name, pn.Y, pn.Pos(), pn.End())
		}
	}
}

// buildClassDefinition declares the class's own name in the enclosing
// scope, then opens the class scope and walks the members in order:
// fields are declared as ClassMember, methods are declared as ClassMember
// through the generic function path, and the constructor's body is walked
// through that path without declaring a name (spec §4.4).
func (b *builder) buildClassDefinition(def *ast.ClassDefinition) {
	if id, ok := def.Name.(*ast.Ident); ok {
		b.table.declare(b.scope, Local, id.Name, nil, def.Pos(), def.End())
	}
	b.buildExpr(def.Extends)

	saved := b.push()
	for _, m := range def.Members {
		switch mm := m.(type) {
		case *ast.FieldMember:
			from, to := mm.Name.Pos(), mm.Name.End()
			if mm.Value != nil {
				to = mm.Value.End()
			}
			b.table.declare(b.scope, ClassMember, mm.Name.Name, mm.Value, from, to)
			b.buildExpr(mm.Value)
		case *ast.MethodMember:
			b.buildFunctionDecl(mm.Func, ClassMember, true)
		case *ast.ConstructorMember:
			b.buildFunctionDecl(mm.Func, ClassMember, false)
		}
	}
	b.pop(saved)
}

func (b *builder) buildTableLit(n *ast.TableLit) {
	saved := b.push()
	for _, e := range n.Entries {
		switch en := e.(type) {
		case *ast.FieldEntry:
			from, to := en.Name.Pos(), en.Name.End()
			if en.Value != nil {
				to = en.Value.End()
			}
			b.table.declare(b.scope, ClassMember, en.Name.Name, en.Value, from, to)
			b.buildExpr(en.Value)
		case *ast.ComputedFieldEntry:
			b.buildExpr(en.Key)
			b.buildExpr(en.Value)
		case *ast.MethodEntry:
			b.buildFunctionDecl(en.Func, ClassMember, true)
		}
	}
	b.pop(saved)
}

func (b *builder) buildExpr(x ast.Expr) {
	if x == nil {
		return
	}
	switch n := x.(type) {
	case *ast.Ident:
		b.table.use(b.scope, n.Name, n.Pos(), n.End())

	case *ast.This:
		b.useSentinel(RefThis, "this", n.Pos(), n.End())

	case *ast.Base:
		b.useSentinel(RefBase, "base", n.Pos(), n.End())

	case *ast.LineMacro, *ast.FileMacro,
		*ast.StringLit, *ast.MultiLineStringLit, *ast.IntLit, *ast.FloatLit, *ast.NullLit, *ast.BoolLit,
		*ast.Spread:
		// leaves

	case *ast.UnaryExpr:
		b.buildExpr(n.X)

	case *ast.PostfixUnaryExpr:
		b.buildExpr(n.X)

	case *ast.BinaryExpr:
		b.buildExpr(n.X)
		b.buildExpr(n.Y)

	case *ast.TernaryExpr:
		b.buildExpr(n.Cond)
		b.buildExpr(n.Then)
		b.buildExpr(n.Else)

	case *ast.Grouping:
		b.buildExpr(n.X)

	case *ast.ArrayLit:
		for _, e := range n.Elts {
			b.buildExpr(e)
		}

	case *ast.ArrayAccess:
		b.buildExpr(n.X)
		b.buildExpr(n.Index)

	case *ast.TableLit:
		b.buildTableLit(n)

	case *ast.MemberAccess:
		// Sel names a property, not a variable; only the base is a use.
		b.buildExpr(n.X)

	case *ast.ScopeResolution:
		// Neither the scope qualifier nor the name resolves through the
		// local scope chain — ::A::b always refers to the root table.

	case *ast.FunctionCall:
		b.buildExpr(n.Fun)
		for _, a := range n.Args {
			b.buildExpr(a)
		}

	case *ast.CloneExpr:
		b.buildExpr(n.X)

	case *ast.ResumeExpr:
		b.buildExpr(n.X)

	case *ast.DeleteExpr:
		b.buildExpr(n.X)

	case *ast.ClassExpr:
		b.buildClassDefinition(n.Def)

	case *ast.FunctionExpr:
		b.buildFunctionDecl(n.Decl, Function, true)
	}
}

func (b *builder) useSentinel(kind RefKind, name string, from, to token.Position) {
	u := &VariableUsage{Name: name, Declaration: &DeclarationRef{Kind: kind}, From: from, To: to}
	s := b.table.Scopes[b.scope]
	s.Usages = append(s.Usages, u)
}
