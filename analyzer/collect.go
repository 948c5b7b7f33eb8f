package analyzer

import (
	"github.com/pngdsl/pngc/ast"
	"github.com/pngdsl/pngc/reporter"
)

// collectDeclarations is Pass 1: it iterates the top-level declarations,
// derives each one's namespace from its tag, and inserts it into that
// namespace's symbol table, reporting a duplicate_definition error for
// every name that collides within the same namespace (spec §4.4 Pass 1,
// §8 P6).
func collectDeclarations(tree *ast.Tree) (*Symbols, []reporter.AnalysisError) {
	symbols := &Symbols{}
	var errs []reporter.AnalysisError

	for _, decl := range tree.RootDecls() {
		tag := tree.Tags[decl]
		ns, ok := namespaceForTag(tag)
		if !ok {
			continue // invariant violation territory; unreachable from the parser's fixed tag set
		}
		name := tree.DeclName(decl)
		info := &SymbolInfo{DeclNode: decl}
		if !symbols.Table(ns).Insert(name, info) {
			errs = append(errs, reporter.AnalysisError{
				Kind:    reporter.DuplicateDefinition,
				Node:    decl,
				Pos:     tree.Pos(decl),
				Message: "duplicate definition of " + ns.String() + " \"" + name + "\"",
			})
		}
	}

	return symbols, errs
}
