// Package parser consumes a token stream and builds the attributed AST
// described in spec §3/§4.3: a sequence of top-level macro declarations,
// each with a name and a brace-delimited set of properties.
package parser

import (
	"fmt"

	"github.com/pngdsl/pngc/ast"
)

// Parser holds a token stream and the Tree under construction.
type Parser struct {
	toks *ast.Tokens
	tree *ast.Tree
	pos  ast.TokenIndex
}

// Parse builds an attributed AST from an already-lexed token stream.
// It returns a *Error (and a possibly-partial Tree) on the first syntax
// error encountered.
func Parse(toks *ast.Tokens) (*ast.Tree, error) {
	p := &Parser{toks: toks, tree: ast.NewTree(toks)}

	var decls []ast.NodeIndex
	for p.kind() != ast.EOF {
		n, err := p.parseDecl()
		if err != nil {
			return p.tree, err
		}
		decls = append(decls, n)
	}
	p.tree.SetRootDecls(decls)
	return p.tree, nil
}

func (p *Parser) kind() ast.Kind  { return p.toks.Kinds[p.pos] }
func (p *Parser) text() string    { return p.toks.Text(p.pos) }
func (p *Parser) index() ast.TokenIndex { return p.pos }

func (p *Parser) posHere() ast.Pos {
	return ast.PosFor(p.toks.Source, int(p.toks.Starts[p.pos]))
}

func (p *Parser) errorf(format string, args ...any) *Error {
	return &Error{Pos: p.posHere(), Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) advance() ast.TokenIndex {
	idx := p.pos
	if p.kind() != ast.EOF {
		p.pos++
	}
	return idx
}

// expectPunct consumes the current token if it is a Punct token with the
// given text, otherwise returns a syntax error.
func (p *Parser) expectPunct(text string) (ast.TokenIndex, error) {
	if p.kind() != ast.Punct || p.text() != text {
		return 0, p.errorf("expected %q, found %q", text, p.text())
	}
	return p.advance(), nil
}

func (p *Parser) expectIdentifier() (ast.TokenIndex, error) {
	if p.kind() != ast.Identifier {
		return 0, p.errorf("expected identifier, found %q", p.text())
	}
	return p.advance(), nil
}

func (p *Parser) parseDecl() (ast.NodeIndex, error) {
	if p.kind() != ast.MacroKeyword {
		return 0, p.errorf("expected macro declaration, found %q", p.text())
	}
	kwTok := p.advance()
	word := p.toks.Text(kwTok)[1:] // strip leading '#'
	tag, ok := macroKeywords[word]
	if !ok {
		return 0, &Error{Pos: ast.PosFor(p.toks.Source, int(p.toks.Starts[kwTok])), Message: "unknown macro keyword: #" + word}
	}

	if tag == ast.TagMacroDefine {
		return p.parseDefine(kwTok)
	}

	if _, err := p.expectIdentifier(); err != nil {
		return 0, err
	}
	if _, err := p.expectPunct("{"); err != nil {
		return 0, err
	}
	obj, err := p.parseObjectBody()
	if err != nil {
		return 0, err
	}
	if _, err := p.expectPunct("}"); err != nil {
		return 0, err
	}
	return p.tree.AddNode(tag, kwTok, ast.Data{Lhs: uint32(obj)}), nil
}

// parseDefine parses "#define NAME=literal".
func (p *Parser) parseDefine(kwTok ast.TokenIndex) (ast.NodeIndex, error) {
	if _, err := p.expectIdentifier(); err != nil {
		return 0, err
	}
	if _, err := p.expectPunct("="); err != nil {
		return 0, err
	}
	val, err := p.parseLiteral()
	if err != nil {
		return 0, err
	}
	return p.tree.AddNode(ast.TagMacroDefine, kwTok, ast.Data{Lhs: uint32(val)}), nil
}

// parseLiteral parses a number, string, or boolean value; used only by
// #define, which (per spec §4.3) is restricted to literal values.
func (p *Parser) parseLiteral() (ast.NodeIndex, error) {
	switch p.kind() {
	case ast.Number:
		tok := p.advance()
		return p.tree.AddNode(ast.TagNumberValue, tok, ast.Data{}), nil
	case ast.String:
		tok := p.advance()
		return p.tree.AddNode(ast.TagStringValue, tok, ast.Data{}), nil
	case ast.Identifier:
		if text := p.text(); text == "true" || text == "false" {
			tok := p.advance()
			return p.tree.AddNode(ast.TagBooleanValue, tok, ast.Data{}), nil
		}
		return 0, p.errorf("expected a literal value, found %q", p.text())
	default:
		return 0, p.errorf("expected a literal value, found %q", p.text())
	}
}

// parseObjectBody parses a sequence of "name=value" properties up to (but
// not consuming) the closing '}'.
func (p *Parser) parseObjectBody() (ast.NodeIndex, error) {
	openTok := p.index()
	var props []ast.NodeIndex
	for !(p.kind() == ast.Punct && p.text() == "}") {
		if p.kind() == ast.EOF {
			return 0, p.errorf("unclosed '{'")
		}
		prop, err := p.parseProperty()
		if err != nil {
			return 0, err
		}
		props = append(props, prop)
	}
	raw := make([]uint32, len(props))
	for i, n := range props {
		raw[i] = uint32(n)
	}
	start, end := p.tree.AddExtra(raw)
	return p.tree.AddNode(ast.TagObject, openTok, ast.Data{Lhs: start, Rhs: end}), nil
}

func (p *Parser) parseProperty() (ast.NodeIndex, error) {
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return 0, err
	}
	if _, err := p.expectPunct("="); err != nil {
		return 0, err
	}
	val, err := p.parseValue()
	if err != nil {
		return 0, err
	}
	return p.tree.AddNode(ast.TagProperty, nameTok, ast.Data{Lhs: uint32(val)}), nil
}

// parseValue parses one property/array-element value: an identifier (bare
// name), a "$ns.name" reference, a number, string, or boolean literal, a
// builtin/uniform-access dotted path, an array, or a nested object.
func (p *Parser) parseValue() (ast.NodeIndex, error) {
	switch p.kind() {
	case ast.Identifier:
		if text := p.text(); text == "true" || text == "false" {
			tok := p.advance()
			return p.tree.AddNode(ast.TagBooleanValue, tok, ast.Data{}), nil
		}
		tok := p.advance()
		return p.tree.AddNode(ast.TagIdentifier, tok, ast.Data{}), nil
	case ast.ReferenceSign:
		return p.parseReference()
	case ast.Number:
		tok := p.advance()
		return p.tree.AddNode(ast.TagNumberValue, tok, ast.Data{}), nil
	case ast.String:
		tok := p.advance()
		return p.tree.AddNode(ast.TagStringValue, tok, ast.Data{}), nil
	case ast.Builtin:
		tok := p.advance()
		return p.tree.AddNode(ast.TagBuiltinRef, tok, ast.Data{}), nil
	case ast.UniformAccess:
		tok := p.advance()
		return p.tree.AddNode(ast.TagUniformAccess, tok, ast.Data{}), nil
	case ast.Punct:
		switch p.text() {
		case "[":
			return p.parseArray()
		case "{":
			return p.parseObject()
		}
	}
	return 0, p.errorf("unexpected token %q in value position", p.text())
}

func (p *Parser) parseReference() (ast.NodeIndex, error) {
	sigil := p.advance() // '$'
	nsTok, err := p.expectIdentifier()
	if err != nil {
		return 0, err
	}
	if _, err := p.expectPunct("."); err != nil {
		return 0, err
	}
	nameTok, err := p.expectIdentifier()
	if err != nil {
		return 0, err
	}
	return p.tree.AddNode(ast.TagReference, sigil, ast.Data{Lhs: uint32(nsTok), Rhs: uint32(nameTok)}), nil
}

func (p *Parser) parseObject() (ast.NodeIndex, error) {
	if _, err := p.expectPunct("{"); err != nil {
		return 0, err
	}
	obj, err := p.parseObjectBody()
	if err != nil {
		return 0, err
	}
	if _, err := p.expectPunct("}"); err != nil {
		return 0, err
	}
	return obj, nil
}

// parseArray parses "[v ...]" or "[v, ...]": elements separated by spaces
// or commas, uniformly (spec §4.3); a comma after an element is simply
// skipped if present.
func (p *Parser) parseArray() (ast.NodeIndex, error) {
	openTok, err := p.expectPunct("[")
	if err != nil {
		return 0, err
	}
	var elems []ast.NodeIndex
	for !(p.kind() == ast.Punct && p.text() == "]") {
		if p.kind() == ast.EOF {
			return 0, p.errorf("unclosed '['")
		}
		val, err := p.parseValue()
		if err != nil {
			return 0, err
		}
		elems = append(elems, val)
		if p.kind() == ast.Punct && p.text() == "," {
			p.advance()
		}
	}
	if _, err := p.expectPunct("]"); err != nil {
		return 0, err
	}
	raw := make([]uint32, len(elems))
	for i, n := range elems {
		raw[i] = uint32(n)
	}
	start, end := p.tree.AddExtra(raw)
	return p.tree.AddNode(ast.TagArray, openTok, ast.Data{Lhs: start, Rhs: end}), nil
}
