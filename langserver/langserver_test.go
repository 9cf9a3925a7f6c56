package langserver

import (
	"testing"

	"github.com/mkmarek/squirrel-lsp/format"
	"github.com/mkmarek/squirrel-lsp/token"
)

func TestOnDocumentChangeCleanSource(t *testing.T) {
	diags := OnDocumentChange("file:///a.nut", "local a = 1; a;", 1)
	if len(diags) != 0 {
		t.Fatalf("OnDocumentChange(clean) = %v; want none", diags)
	}
}

func TestOnDocumentChangeParseError(t *testing.T) {
	diags := OnDocumentChange("file:///a.nut", "local a = ;", 1)
	if len(diags) != 1 {
		t.Fatalf("OnDocumentChange(broken) = %v; want exactly one diagnostic", diags)
	}
}

func TestOnDocumentChangeLintFinding(t *testing.T) {
	diags := OnDocumentChange("file:///a.nut", "local unused = 1;", 1)
	if len(diags) != 1 {
		t.Fatalf("OnDocumentChange(unused) = %v; want exactly one diagnostic", diags)
	}
}

func TestGotoDeclarationResolves(t *testing.T) {
	text := "local a = 1;\na;\n"
	rng, ok := GotoDeclaration("file:///a.nut", text, token.Position{Line: 1, Column: 0})
	if !ok {
		t.Fatal("GotoDeclaration: want ok=true")
	}
	if rng.From.Line != 0 {
		t.Fatalf("GotoDeclaration range = %+v; want declaration on line 0", rng)
	}
}

func TestGotoDeclarationNotFound(t *testing.T) {
	if _, ok := GotoDeclaration("file:///a.nut", "local a = 1;\na;\n", token.Position{Line: 50, Column: 0}); ok {
		t.Fatal("GotoDeclaration at an empty position: want ok=false")
	}
}

func TestGotoDeclarationParseFailure(t *testing.T) {
	if _, ok := GotoDeclaration("file:///a.nut", "local a = ;", token.Position{Line: 0, Column: 6}); ok {
		t.Fatal("GotoDeclaration over broken source: want ok=false")
	}
}

func TestFormatReturnsEdits(t *testing.T) {
	edits, err := Format("file:///a.nut", "local a=1;\n", format.DefaultOptions)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(edits) == 0 {
		t.Fatal("Format: want at least one edit for reformatted source")
	}
}

func TestFormatParseFailure(t *testing.T) {
	if _, err := Format("file:///a.nut", "local a = ;", format.DefaultOptions); err == nil {
		t.Fatal("Format over broken source: want an error")
	}
}
