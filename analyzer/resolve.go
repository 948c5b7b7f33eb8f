package analyzer

import (
	"github.com/pngdsl/pngc/ast"
	"github.com/pngdsl/pngc/reporter"
)

// propertyContext lists, in preference order, the namespaces a bare-name
// value is checked against when it appears as the value of a property with
// this name (spec §4.4 Pass 2 / §4.3 "bare name resolution"). Candidates
// are tried in order; the first namespace that contains the name wins.
// Property names with no entry here fall back to a single-namespace guess
// via namespaceByName (see contextFor), and if that also fails to produce
// a candidate, the bare name cannot be validated and is reported as
// invalid_reference_namespace.
var propertyContext = map[string][]Namespace{
	"module":          {NamespaceShaderModule, NamespaceShader},
	"code":            {NamespaceShader},
	"layout":          {NamespacePipelineLayout, NamespaceBindGroupLayout},
	"pipelineLayout":  {NamespacePipelineLayout},
	"bindGroupLayout": {NamespaceBindGroupLayout},
	"bindGroup":       {NamespaceBindGroup},
	"bindGroups":      {NamespaceBindGroup},
	"buffer":          {NamespaceBuffer},
	"texture":         {NamespaceTexture},
	"sampler":         {NamespaceSampler},
	"pipeline":        {NamespaceRenderPipeline, NamespaceComputePipeline},
}

func contextFor(propertyName string) []Namespace {
	if cands, ok := propertyContext[propertyName]; ok {
		return cands
	}
	if ns, ok := namespaceByName[propertyName]; ok {
		return []Namespace{ns}
	}
	return nil
}

// resolveReferences is Pass 2: it walks every declaration's body, resolving
// "$ns.name" references against the fixed namespace map and bare
// identifiers against their property's contextual namespace candidates.
func resolveReferences(tree *ast.Tree, symbols *Symbols) []reporter.AnalysisError {
	var errs []reporter.AnalysisError
	report := func(e reporter.AnalysisError) { errs = append(errs, e) }

	for _, decl := range tree.RootDecls() {
		tag := tree.Tags[decl]
		if tag == ast.TagMacroDefine {
			continue // literal-only; nothing to resolve
		}
		body := tree.DeclBody(decl)
		walkObjectProperties(tree, symbols, body, report)
	}
	return errs
}

func walkObjectProperties(tree *ast.Tree, symbols *Symbols, obj ast.NodeIndex, report func(reporter.AnalysisError)) {
	for _, prop := range tree.ObjectProperties(obj) {
		name := tree.PropertyName(prop)
		val := tree.PropertyValue(prop)
		walkValue(tree, symbols, val, contextFor(name), report)
	}
}

func walkValue(tree *ast.Tree, symbols *Symbols, node ast.NodeIndex, context []Namespace, report func(reporter.AnalysisError)) {
	switch tree.Tags[node] {
	case ast.TagReference:
		resolveExplicitReference(tree, symbols, node, report)
	case ast.TagIdentifier:
		resolveBareName(tree, symbols, node, context, report)
	case ast.TagObject:
		walkObjectProperties(tree, symbols, node, report)
	case ast.TagArray:
		for _, elem := range tree.ArrayElements(node) {
			walkValue(tree, symbols, elem, context, report)
		}
	default:
		// Number/String/Boolean/BuiltinRef/UniformAccess: nothing to
		// resolve.
	}
}

func resolveExplicitReference(tree *ast.Tree, symbols *Symbols, node ast.NodeIndex, report func(reporter.AnalysisError)) {
	nsTok, nameTok := tree.ReferenceTokens(node)
	nsText := tree.Tokens.Text(nsTok)
	ns, ok := LookupNamespace(nsText)
	if !ok {
		report(reporter.AnalysisError{
			Kind: reporter.InvalidReferenceNamespace, Node: node, Pos: tree.Pos(node),
			Message: "unknown reference namespace: " + nsText,
		})
		return
	}
	name := tree.Tokens.Text(nameTok)
	if _, found := symbols.Lookup(ns, name); !found {
		report(reporter.AnalysisError{
			Kind: reporter.UndefinedReference, Node: node, Pos: tree.Pos(node),
			Message: "undefined reference: $" + nsText + "." + name,
		})
	}
}

func resolveBareName(tree *ast.Tree, symbols *Symbols, node ast.NodeIndex, context []Namespace, report func(reporter.AnalysisError)) {
	name := tree.Tokens.Text(tree.MainTokens[node])
	if len(context) == 0 {
		report(reporter.AnalysisError{
			Kind: reporter.InvalidReferenceNamespace, Node: node, Pos: tree.Pos(node),
			Message: "cannot infer a namespace for bare name: " + name,
		})
		return
	}
	for _, ns := range context {
		if _, found := symbols.Lookup(ns, name); found {
			return
		}
	}
	report(reporter.AnalysisError{
		Kind: reporter.UndefinedReference, Node: node, Pos: tree.Pos(node),
		Message: "undefined reference: " + name,
	})
}
