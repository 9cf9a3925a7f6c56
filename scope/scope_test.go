package scope

import (
	"testing"

	"github.com/mkmarek/squirrel-lsp/parser"
)

func buildSrc(t *testing.T, src string) *Table {
	t.Helper()
	stmts, errs := parser.Parse([]byte(src))
	if errs.Err() != nil {
		t.Fatalf("parse(%q): %v", src, errs.Err())
	}
	return Build(stmts)
}

// Scenario 1 (spec §8): single scope, two declarations, two resolved uses,
// zero diagnostics.
func TestSingleScope(t *testing.T) {
	table := buildSrc(t, "local a = 1; local b = 2; a + b;")

	if len(table.Scopes) != 1 {
		t.Fatalf("len(Scopes) = %d; want 1", len(table.Scopes))
	}
	root := table.Scopes[0]
	if len(root.Declarations) != 2 {
		t.Fatalf("len(Declarations) = %d; want 2", len(root.Declarations))
	}
	for _, u := range root.Usages {
		if u.Declaration == nil {
			t.Errorf("usage %q did not resolve", u.Name)
		}
	}
	if diags := table.ValidateVariables(); len(diags) != 0 {
		t.Errorf("ValidateVariables() = %v; want none", diags)
	}
}

// Scenario 2: nested block shadowing. The outer use of b never resolves.
func TestNestedBlockShadowing(t *testing.T) {
	src := "local a = 1;\n{\n  local b = 2;\n  a + b;\n}\na + b;\n"
	table := buildSrc(t, src)

	if len(table.Scopes) != 2 {
		t.Fatalf("len(Scopes) = %d; want 2", len(table.Scopes))
	}

	diags := table.ValidateVariables()
	if len(diags) != 1 {
		t.Fatalf("ValidateVariables() = %v; want exactly 1 diagnostic", diags)
	}
	if diags[0].Message != "Variable 'b' is not declared" {
		t.Errorf("diag message = %q; want \"Variable 'b' is not declared\"", diags[0].Message)
	}
}

// Scenario 3: foreach declares both loop variables and both are used.
func TestForEachDeclaresKeyAndValue(t *testing.T) {
	table := buildSrc(t, "foreach (i, v in [1,2,3]) { ::print(i, v); }")

	var names []string
	for _, s := range table.Scopes {
		for _, d := range s.Declarations {
			names = append(names, d.Name)
		}
	}
	if len(names) != 2 || names[0] != "i" || names[1] != "v" {
		t.Fatalf("declared names = %v; want [i v]", names)
	}
	if diags := table.ValidateVariables(); len(diags) != 0 {
		t.Errorf("ValidateVariables() = %v; want none", diags)
	}
}

// Scenario 4: a method calling a sibling method by bare name resolves to
// that method's ClassMember declaration in the class's own scope.
func TestClassImplicitThisMethodCall(t *testing.T) {
	src := `class Foo {
  function bar() { return 123; }
  function stuff() { return bar(); }
}
local foo = Foo();
foo.stuff();
`
	table := buildSrc(t, src)

	if diags := table.ValidateVariables(); len(diags) != 0 {
		t.Fatalf("ValidateVariables() = %v; want none", diags)
	}

	var barDecl *VariableDeclaration
	var classScope int = -1
	for i, s := range table.Scopes {
		for _, d := range s.Declarations {
			if d.Name == "bar" {
				barDecl = d
				classScope = i
			}
		}
	}
	if barDecl == nil {
		t.Fatal("no declaration named bar")
	}
	if barDecl.Kind != ClassMember {
		t.Errorf("bar declaration kind = %v; want ClassMember", barDecl.Kind)
	}

	var barUsage *VariableUsage
	for _, s := range table.Scopes {
		for _, u := range s.Usages {
			if u.Name == "bar" {
				barUsage = u
			}
		}
	}
	if barUsage == nil {
		t.Fatal("no usage named bar")
	}
	if barUsage.Declaration == nil || barUsage.Declaration.Kind != RefVariable {
		t.Fatalf("bar usage did not resolve to a variable: %+v", barUsage.Declaration)
	}
	if barUsage.Declaration.Scope != classScope {
		t.Errorf("bar usage resolved to scope %d; want %d (Foo's scope)", barUsage.Declaration.Scope, classScope)
	}
}

// Scenario 5 belongs to the parser (spec §8.5); parser_test.go already
// covers it directly.

func TestUnusedVariableWarnsUnlessUnderscorePrefixed(t *testing.T) {
	table := buildSrc(t, "local unused = 1; local _ignored = 2;")

	diags := table.ValidateVariables()
	if len(diags) != 1 {
		t.Fatalf("ValidateVariables() = %v; want exactly 1 diagnostic", diags)
	}
	if diags[0].Message != "Unused variable 'unused'" {
		t.Errorf("diag message = %q", diags[0].Message)
	}
}

func TestThisAndBaseResolveWithoutDeclaration(t *testing.T) {
	table := buildSrc(t, "class Foo extends Bar { function m() { return this.x + base.y; } }")

	var sawThis, sawBase bool
	for _, s := range table.Scopes {
		for _, u := range s.Usages {
			switch u.Name {
			case "this":
				sawThis = true
				if u.Declaration == nil || u.Declaration.Kind != RefThis {
					t.Errorf("this usage Declaration = %+v; want RefThis", u.Declaration)
				}
			case "base":
				sawBase = true
				if u.Declaration == nil || u.Declaration.Kind != RefBase {
					t.Errorf("base usage Declaration = %+v; want RefBase", u.Declaration)
				}
			}
		}
	}
	if !sawThis || !sawBase {
		t.Fatalf("sawThis=%v sawBase=%v; want both true", sawThis, sawBase)
	}
}

func TestParamDefaultValueUsageResolvesOuterScope(t *testing.T) {
	table := buildSrc(t, "local dflt = 5; function f(a, b = dflt) { return a + b; }")

	diags := table.ValidateVariables()
	if len(diags) != 0 {
		t.Fatalf("ValidateVariables() = %v; want none", diags)
	}
}

func TestFindVariableDeclarationByLocation(t *testing.T) {
	table := buildSrc(t, "local a = 1;\na;\n")

	decl := table.FindVariableDeclarationByLocation(0, 6)
	if decl == nil || decl.Name != "a" {
		t.Fatalf("FindVariableDeclarationByLocation(0,6) = %v; want declaration 'a'", decl)
	}
}

func TestFindVariableUsageByLocation(t *testing.T) {
	table := buildSrc(t, "local a = 1;\na;\n")

	usage := table.FindVariableUsageByLocation(1, 0)
	if usage == nil || usage.Name != "a" {
		t.Fatalf("FindVariableUsageByLocation(1,0) = %v; want usage 'a'", usage)
	}
}
