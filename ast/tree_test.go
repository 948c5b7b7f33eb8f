package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pngdsl/pngc/ast"
)

// buildSimpleFrameTree hand-builds the tree a parser would produce for
// "#frame main { perform=[] }" without going through the lexer/parser, so
// this test exercises only the Tree builder primitives themselves.
func buildSimpleFrameTree() *ast.Tree {
	toks := &ast.Tokens{Source: []byte(`#frame main { perform=[] }`)}
	kwTok := toks.Add(ast.MacroKeyword, 0)  // "#frame"
	toks.Add(ast.Identifier, 7)             // "main"
	toks.Add(ast.Punct, 12)                 // "{"
	nameTok := toks.Add(ast.Identifier, 14) // "perform"
	toks.Add(ast.Punct, 21)                 // "="
	openBracket := toks.Add(ast.Punct, 22)  // "["
	toks.Add(ast.Punct, 23)                 // "]"
	toks.Add(ast.Punct, 25)                 // "}"
	toks.Add(ast.EOF, 26)

	tree := ast.NewTree(toks)

	arr := tree.AddNode(ast.TagArray, openBracket, ast.Data{})
	start, end := tree.AddExtra(nil)
	tree.Data[arr] = ast.Data{Lhs: start, Rhs: end}

	prop := tree.AddNode(ast.TagProperty, nameTok, ast.Data{Lhs: uint32(arr)})
	propStart, propEnd := tree.AddExtra([]uint32{uint32(prop)})
	obj := tree.AddNode(ast.TagObject, nameTok, ast.Data{Lhs: propStart, Rhs: propEnd})

	frame := tree.AddNode(ast.TagMacroFrame, kwTok, ast.Data{Lhs: uint32(obj)})
	tree.SetRootDecls([]ast.NodeIndex{frame})

	return tree
}

func TestTreeStructuralEquivalenceAcrossRebuilds(t *testing.T) {
	a := buildSimpleFrameTree()
	b := buildSimpleFrameTree()

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("two builds of the same tree diverged (-want +got):\n%s", diff)
	}

	decls := a.RootDecls()
	if len(decls) != 1 {
		t.Fatalf("expected 1 root decl, got %d", len(decls))
	}
	if diff := cmp.Diff("main", a.Tokens.Text(a.MainTokens[decls[0]]+1)); diff != "" {
		t.Fatalf("decl name mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeObjectPropertiesRoundTrip(t *testing.T) {
	tree := buildSimpleFrameTree()
	decls := tree.RootDecls()
	body := tree.DeclBody(decls[0])
	props := tree.ObjectProperties(body)

	want := []string{"perform"}
	var got []string
	for _, p := range props {
		got = append(got, tree.PropertyName(p))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("property names mismatch (-want +got):\n%s", diff)
	}
}
