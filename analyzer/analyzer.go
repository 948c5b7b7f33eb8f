// Package analyzer implements the multi-pass semantic analysis described
// in spec §4.4: declaration collection, reference resolution, shader
// import-cycle detection, and content-addressed shader deduplication.
package analyzer

import (
	"github.com/pngdsl/pngc/ast"
	"github.com/pngdsl/pngc/reporter"
)

// Result is the (possibly partial, on error) product of Analyze: the
// populated symbol tables and the deduplicated shader fragments, plus the
// accumulated list of semantic errors. Analysis never aborts on a single
// error (spec §4.4 "Failure semantics"); a non-empty Errors means the
// driver must not proceed to emission (spec §4.5 step 3).
type Result struct {
	Symbols   *Symbols
	Fragments []ShaderFragment
	Errors    []reporter.AnalysisError
}

// Analyze runs all four passes over tree in order, per spec §4.4.
// Precondition: tree's root node is at index 0 (ast.RootIndex), which
// ast.NewTree/parser.Parse always guarantee.
func Analyze(tree *ast.Tree) *Result {
	if tree.Tags[ast.RootIndex] != ast.TagRoot {
		panic("pngc/analyzer: tree root invariant violated: node 0 is not TagRoot")
	}

	result := &Result{}

	symbols, errs := collectDeclarations(tree)
	result.Symbols = symbols
	result.Errors = append(result.Errors, errs...)

	result.Errors = append(result.Errors, resolveReferences(tree, symbols)...)

	graph := buildShaderDependencyGraph(tree, symbols)
	result.Errors = append(result.Errors, detectCycles(tree, symbols, graph)...)

	fragments, dedupErrs := dedupShaders(tree, symbols)
	result.Fragments = fragments
	result.Errors = append(result.Errors, dedupErrs...)

	return result
}
