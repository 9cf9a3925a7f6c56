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

import (
	"fmt"
	"reflect"
	"testing"
)

func kind(n Node) string {
	return reflect.TypeOf(n).Elem().Name()
}

func TestWalkOrder(t *testing.T) {
	// if (a) { b; } else { c; }
	ifStmt := &If{
		Cond: &Ident{Name: "a"},
		Then: &Block{Body: &Statements{List: []Stmt{&ExpressionStmt{X: &Ident{Name: "b"}}}}},
		Else: &Block{Body: &Statements{List: []Stmt{&ExpressionStmt{X: &Ident{Name: "c"}}}}},
	}

	var trace []string
	Walk(Visitor{
		Enter: func(n Node) Visit {
			trace = append(trace, "enter:"+kind(n))
			return Continue
		},
		Leave: func(n Node) {
			trace = append(trace, "leave:"+kind(n))
		},
	}, ifStmt)

	want := []string{
		"enter:If",
		"enter:Ident", "leave:Ident", // a
		"enter:Block",
		"enter:Statements",
		"enter:ExpressionStmt",
		"enter:Ident", "leave:Ident", // b
		"leave:ExpressionStmt",
		"leave:Statements",
		"leave:Block",
		"enter:Block",
		"enter:Statements",
		"enter:ExpressionStmt",
		"enter:Ident", "leave:Ident", // c
		"leave:ExpressionStmt",
		"leave:Statements",
		"leave:Block",
		"leave:If",
	}
	if fmt.Sprint(trace) != fmt.Sprint(want) {
		t.Errorf("trace = %v; want %v", trace, want)
	}
}

func TestWalkBreakShortCircuits(t *testing.T) {
	stmts := &Statements{List: []Stmt{
		&ExpressionStmt{X: &Ident{Name: "a"}},
		&ExpressionStmt{X: &Ident{Name: "b"}},
	}}

	var entered []string
	result := Walk(Visitor{
		Enter: func(n Node) Visit {
			if id, ok := n.(*Ident); ok {
				entered = append(entered, id.Name)
				if id.Name == "a" {
					return Break
				}
			}
			return Continue
		},
	}, stmts)

	if result != Break {
		t.Fatalf("Walk result = %v; want Break", result)
	}
	if len(entered) != 1 || entered[0] != "a" {
		t.Errorf("entered = %v; want [a]", entered)
	}
}

func TestWalkTryCatchSyntheticClause(t *testing.T) {
	tc := &TryCatch{
		Try:   &ExpressionStmt{X: &Ident{Name: "t"}},
		Ident: &Ident{Name: "e"},
		Catch: &ExpressionStmt{X: &Ident{Name: "c"}},
	}

	var kinds []string
	Walk(Visitor{
		Enter: func(n Node) Visit {
			kinds = append(kinds, kind(n))
			return Continue
		},
	}, tc)

	want := []string{"TryCatch", "ExpressionStmt", "Ident", "CatchClause", "Ident", "ExpressionStmt", "Ident"}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Errorf("kinds = %v; want %v", kinds, want)
	}
}

func TestWalkSkipsCommentStmt(t *testing.T) {
	stmts := &Statements{List: []Stmt{
		&CommentStmt{Text: "# hi"},
		&ExpressionStmt{X: &Ident{Name: "a"}},
	}}

	var visited int
	Walk(Visitor{Enter: func(n Node) Visit { visited++; return Continue }}, stmts)

	// Statements + ExpressionStmt + Ident == 3; CommentStmt never dispatched.
	if visited != 3 {
		t.Errorf("visited = %d; want 3", visited)
	}
}

func TestWalkNilCallbacksDefaultToContinue(t *testing.T) {
	stmts := &Statements{List: []Stmt{&ExpressionStmt{X: &Ident{Name: "a"}}}}
	if got := Walk(Visitor{}, stmts); got != Continue {
		t.Errorf("Walk with zero Visitor = %v; want Continue", got)
	}
}
