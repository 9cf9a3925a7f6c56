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

package ast

import "fmt"

// Visit is the sentinel an enter callback returns to control traversal.
type Visit int

const (
	// Continue proceeds to the node's children (if entering) or to the
	// next sibling (if there are no children left to visit).
	Continue Visit = iota
	// Break aborts the entire walk immediately; no further Enter or
	// Leave calls occur, including the Leave of the current node and
	// any of its ancestors.
	Break
)

// Visitor holds the enter/leave capability passed to Walk. Both fields
// may be nil, in which case they behave as a callback that always
// returns Continue and does nothing, respectively — callers that only
// care about a few node kinds type-switch inside Enter and fall through
// for the rest.
type Visitor struct {
	Enter func(Node) Visit
	Leave func(Node)
}

// CatchClause is a synthetic node (not a Stmt, not reachable via normal
// AST fields) that Walk constructs on the fly to give the catch clause of
// a TryCatch its own enter/leave pair wrapping the caught identifier and
// the catch body (spec §4.3c).
type CatchClause struct {
	Span
	Ident *Ident
	Body  Stmt
}

// Walk traverses the AST rooted at node in depth-first order, calling
// v.Enter before visiting a node's children and v.Leave after all of its
// children (and any of its own synthetic sub-nodes) have been visited.
// Children are visited in source order. Comment-as-statement nodes
// (*CommentStmt) are skipped entirely: neither Enter nor Leave is called
// for them, and they have no children. Walk returns Break if the walk was
// aborted early, Continue otherwise.
func Walk(v Visitor, node Node) Visit {
	if node == nil {
		return Continue
	}
	if _, isComment := node.(*CommentStmt); isComment {
		return Continue
	}

	enter := v.Enter
	if enter == nil {
		enter = func(Node) Visit { return Continue }
	}
	leave := v.Leave
	if leave == nil {
		leave = func(Node) {}
	}

	if enter(node) == Break {
		return Break
	}

	if walkChildren(v, node) == Break {
		return Break
	}

	leave(node)
	return Continue
}

func walkChildren(v Visitor, node Node) Visit {
	switch n := node.(type) {
	case *Statements:
		for _, s := range n.List {
			if Walk(v, s) == Break {
				return Break
			}
		}

	case *Block:
		return Walk(v, n.Body)

	case *If:
		if Walk(v, n.Cond) == Break {
			return Break
		}
		if Walk(v, n.Then) == Break {
			return Break
		}
		if n.Else != nil {
			return Walk(v, n.Else)
		}

	case *While:
		if Walk(v, n.Cond) == Break {
			return Break
		}
		return Walk(v, n.Body)

	case *DoWhile:
		if Walk(v, n.Body) == Break {
			return Break
		}
		return Walk(v, n.Cond)

	case *Switch:
		if Walk(v, n.Tag) == Break {
			return Break
		}
		for _, c := range n.Cases {
			if Walk(v, c.Value) == Break {
				return Break
			}
			if Walk(v, c.Body) == Break {
				return Break
			}
		}
		if n.Default != nil {
			return Walk(v, n.Default)
		}

	case *For:
		if n.Init != nil && Walk(v, n.Init) == Break {
			return Break
		}
		if n.Cond != nil && Walk(v, n.Cond) == Break {
			return Break
		}
		if n.Post != nil && Walk(v, n.Post) == Break {
			return Break
		}
		return Walk(v, n.Body)

	case *ForEach:
		if n.Key != nil && Walk(v, n.Key) == Break {
			return Break
		}
		if Walk(v, n.Value) == Break {
			return Break
		}
		if Walk(v, n.Source) == Break {
			return Break
		}
		return Walk(v, n.Body)

	case *TryCatch:
		if Walk(v, n.Try) == Break {
			return Break
		}
		catch := &CatchClause{Span: Span{n.Ident.Pos(), n.Catch.End()}, Ident: n.Ident, Body: n.Catch}
		return Walk(v, catch)

	case *CatchClause:
		if Walk(v, n.Ident) == Break {
			return Break
		}
		return Walk(v, n.Body)

	case *BreakStmt, *ContinueStmt:
		// leaves

	case *Return:
		if n.Value != nil {
			return Walk(v, n.Value)
		}

	case *Yield:
		if n.Value != nil {
			return Walk(v, n.Value)
		}

	case *Throw:
		return Walk(v, n.Value)

	case *ExpressionStmt:
		if n.X != nil {
			return Walk(v, n.X)
		}

	case *Const:
		if Walk(v, n.Name) == Break {
			return Break
		}
		return Walk(v, n.Value)

	case *Local:
		for _, init := range n.Inits {
			if Walk(v, init.Name) == Break {
				return Break
			}
			if init.Value != nil {
				if Walk(v, init.Value) == Break {
					return Break
				}
			}
		}

	case *FunctionDecl:
		if n.Name != nil {
			if Walk(v, n.Name) == Break {
				return Break
			}
		}
		for _, p := range n.Params {
			if Walk(v, p) == Break {
				return Break
			}
		}
		return Walk(v, n.Body)

	case *Class:
		return walkClassDefinition(v, n.Def)

	case *Enum:
		if Walk(v, n.Name) == Break {
			return Break
		}
		for _, m := range n.Members {
			if m.Value != nil {
				if Walk(v, m.Value) == Break {
					return Break
				}
			}
		}

	case *CommentStmt:
		// unreachable: filtered in Walk before walkChildren is called.

	// Expressions
	case *Ident, *This, *Base, *LineMacro, *FileMacro,
		*StringLit, *MultiLineStringLit, *IntLit, *FloatLit, *NullLit, *BoolLit,
		*Spread:
		// leaves

	case *UnaryExpr:
		return Walk(v, n.X)

	case *PostfixUnaryExpr:
		return Walk(v, n.X)

	case *BinaryExpr:
		if Walk(v, n.X) == Break {
			return Break
		}
		return Walk(v, n.Y)

	case *TernaryExpr:
		if Walk(v, n.Cond) == Break {
			return Break
		}
		if Walk(v, n.Then) == Break {
			return Break
		}
		return Walk(v, n.Else)

	case *Grouping:
		if n.X != nil {
			return Walk(v, n.X)
		}

	case *ArrayLit:
		for _, e := range n.Elts {
			if Walk(v, e) == Break {
				return Break
			}
		}

	case *ArrayAccess:
		if Walk(v, n.X) == Break {
			return Break
		}
		return Walk(v, n.Index)

	case *TableLit:
		for _, entry := range n.Entries {
			if Walk(v, entry) == Break {
				return Break
			}
		}

	case *FieldEntry:
		if Walk(v, n.Name) == Break {
			return Break
		}
		return Walk(v, n.Value)

	case *FieldMember:
		if Walk(v, n.Name) == Break {
			return Break
		}
		return Walk(v, n.Value)

	case *ComputedFieldEntry:
		if Walk(v, n.Key) == Break {
			return Break
		}
		return Walk(v, n.Value)

	case *MethodEntry:
		return Walk(v, n.Func)

	case *MethodMember:
		return Walk(v, n.Func)

	case *ConstructorMember:
		return Walk(v, n.Func)

	case *MemberAccess:
		if Walk(v, n.X) == Break {
			return Break
		}
		return Walk(v, n.Sel)

	case *ScopeResolution:
		if n.Scope != nil {
			if Walk(v, n.Scope) == Break {
				return Break
			}
		}
		return Walk(v, n.Name)

	case *FunctionCall:
		if Walk(v, n.Fun) == Break {
			return Break
		}
		for _, a := range n.Args {
			if Walk(v, a) == Break {
				return Break
			}
		}

	case *CloneExpr:
		return Walk(v, n.X)

	case *ResumeExpr:
		return Walk(v, n.X)

	case *DeleteExpr:
		return Walk(v, n.X)

	case *ClassExpr:
		return walkClassDefinition(v, n.Def)

	case *FunctionExpr:
		return Walk(v, n.Decl)

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}
	return Continue
}

func walkClassDefinition(v Visitor, def *ClassDefinition) Visit {
	if def.Name != nil {
		if Walk(v, def.Name) == Break {
			return Break
		}
	}
	if def.Extends != nil {
		if Walk(v, def.Extends) == Break {
			return Break
		}
	}
	for _, m := range def.Members {
		if Walk(v, m) == Break {
			return Break
		}
	}
	return Continue
}
