package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pngdsl/pngc/analyzer"
	"github.com/pngdsl/pngc/ast"
	"github.com/pngdsl/pngc/lexer"
	"github.com/pngdsl/pngc/parser"
	"github.com/pngdsl/pngc/reporter"
)

func mustAnalyze(t *testing.T, src string) *analyzer.Result {
	t.Helper()
	toks := lexer.Lex([]byte(src))
	tree, err := parser.Parse(toks)
	require.NoError(t, err)
	return analyzer.Analyze(tree)
}

func TestAnalyzeEmptySourceHasNoErrors(t *testing.T) {
	result := mustAnalyze(t, "")
	require.Empty(t, result.Errors)
	require.Empty(t, result.Fragments)
}

func TestAnalyzeSimpleFrameHasNoErrors(t *testing.T) {
	result := mustAnalyze(t, `#frame main { perform=[] }`)
	require.Empty(t, result.Errors)
	require.True(t, result.Symbols.Has(analyzer.NamespaceFrame))
}

func TestAnalyzeUndefinedReference(t *testing.T) {
	result := mustAnalyze(t, `#frame main { perform=[$renderPass.missing] }`)
	require.Len(t, result.Errors, 1)
	require.Equal(t, reporter.UndefinedReference, result.Errors[0].Kind)
}

func TestAnalyzeDuplicateDefinition(t *testing.T) {
	result := mustAnalyze(t, `
#buffer a { size=4 }
#buffer a { size=8 }
`)
	require.Len(t, result.Errors, 1)
	require.Equal(t, reporter.DuplicateDefinition, result.Errors[0].Kind)

	table := result.Symbols.Table(analyzer.NamespaceBuffer)
	require.Equal(t, 1, table.Len())
}

func TestAnalyzeCircularDependency(t *testing.T) {
	result := mustAnalyze(t, `
#wgsl a { imports=[$wgsl.b] value="fn a(){}" }
#wgsl b { imports=[$wgsl.a] value="fn b(){}" }
`)
	var kinds []reporter.AnalysisErrorKind
	for _, e := range result.Errors {
		kinds = append(kinds, e.Kind)
	}
	require.Contains(t, kinds, reporter.CircularDependency)
}

func TestAnalyzeSharedShaderValueDedupesToSameDataID(t *testing.T) {
	result := mustAnalyze(t, `
#wgsl a { value="fn f(){}" }
#wgsl b { value="fn f(){}" }
`)
	require.Empty(t, result.Errors)

	infoA, ok := result.Symbols.Lookup(analyzer.NamespaceShader, "a")
	require.True(t, ok)
	infoB, ok := result.Symbols.Lookup(analyzer.NamespaceShader, "b")
	require.True(t, ok)

	require.True(t, infoA.HasDataID)
	require.True(t, infoB.HasDataID)
	require.Equal(t, infoA.DataID, infoB.DataID)

	// Distinct content still gets a distinct data_id.
	result2 := mustAnalyze(t, `
#wgsl a { value="fn f(){}" }
#wgsl b { value="fn g(){}" }
`)
	require.Empty(t, result2.Errors)
	infoA2, _ := result2.Symbols.Lookup(analyzer.NamespaceShader, "a")
	infoB2, _ := result2.Symbols.Lookup(analyzer.NamespaceShader, "b")
	require.NotEqual(t, infoA2.DataID, infoB2.DataID)
}

func TestAnalyzeBareNameResolvesAgainstContextualNamespace(t *testing.T) {
	result := mustAnalyze(t, `
#wgsl code { value="fn f(){}" }
#shaderModule mod { module=code }
`)
	require.Empty(t, result.Errors)
}

func TestAnalyzeBareNameUndefinedAcrossAllCandidates(t *testing.T) {
	result := mustAnalyze(t, `#shaderModule mod { module=nope }`)
	require.Len(t, result.Errors, 1)
	require.Equal(t, reporter.UndefinedReference, result.Errors[0].Kind)
}

func TestAnalyzeUnknownReferenceNamespace(t *testing.T) {
	result := mustAnalyze(t, `#frame main { perform=[$bogus.x] }`)
	require.Len(t, result.Errors, 1)
	require.Equal(t, reporter.InvalidReferenceNamespace, result.Errors[0].Kind)
}

func TestAnalyzeShaderMissingValueProperty(t *testing.T) {
	result := mustAnalyze(t, `#wgsl a { imports=[] }`)
	require.Len(t, result.Errors, 1)
	require.Equal(t, reporter.MissingRequiredProperty, result.Errors[0].Kind)
}

func TestAnalyzePanicsOnNonRootZeroTree(t *testing.T) {
	tree := &ast.Tree{Tags: []ast.Tag{ast.TagMacroFrame}}
	require.Panics(t, func() { analyzer.Analyze(tree) })
}
