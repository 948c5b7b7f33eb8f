package analyzer

import (
	"github.com/pngdsl/pngc/ast"
	"github.com/pngdsl/pngc/reporter"
)

// maxDFSIterations bounds the cycle-detection traversal launched from a
// single root. Exceeding it is an invariant violation (spec §4.4 Pass 3,
// §7 class 3): it can only happen if an earlier invariant (a finite,
// well-formed dependency graph) has already been broken, so it is a panic,
// never a reported AnalysisError.
const maxDFSIterations = 1024

type visitState byte

const (
	unseen visitState = iota
	visiting
	visited
)

// frame is one level of the explicit DFS stack: the shader name being
// explored and the index of the next dependency edge to follow out of it.
// Representing the stack this way (rather than via recursion) is what
// lets the traversal survive arbitrarily deep or pathological import
// graphs without overflowing the call stack (spec §9 "Iterative DFS").
type frame struct {
	name        string
	nextDepIdx  int
}

// buildShaderDependencyGraph populates the shader-import adjacency list by
// reading each shader macro's "imports" property: if its value is an array
// of references, the referenced names (not their namespaces) become edges
// (spec §4.4 Pass 3).
func buildShaderDependencyGraph(tree *ast.Tree, symbols *Symbols) map[string][]string {
	graph := map[string][]string{}
	symbols.Table(NamespaceShader).Range(func(name string, info *SymbolInfo) bool {
		graph[name] = shaderImports(tree, info.DeclNode)
		return true
	})
	return graph
}

func shaderImports(tree *ast.Tree, decl ast.NodeIndex) []string {
	body := tree.DeclBody(decl)
	for _, prop := range tree.ObjectProperties(body) {
		if tree.PropertyName(prop) != "imports" {
			continue
		}
		val := tree.PropertyValue(prop)
		if tree.Tags[val] != ast.TagArray {
			return nil
		}
		var names []string
		for _, elem := range tree.ArrayElements(val) {
			if tree.Tags[elem] != ast.TagReference {
				continue
			}
			_, nameTok := tree.ReferenceTokens(elem)
			names = append(names, tree.Tokens.Text(nameTok))
		}
		return names
	}
	return nil
}

// detectCycles is Pass 3: an iterative, explicit-stack depth-first search
// over the shader-import graph. Every shader name is visited at most once
// to completion; a cycle is reported (not panicked on) the moment an edge
// reaches a node already on the current path, and the traversal continues
// so it can report every cycle reachable from every root (spec §4.4 Pass
// 3).
func detectCycles(tree *ast.Tree, symbols *Symbols, graph map[string][]string) []reporter.AnalysisError {
	var errs []reporter.AnalysisError
	state := map[string]visitState{}

	table := symbols.Table(NamespaceShader)
	table.Range(func(root string, _ *SymbolInfo) bool {
		if state[root] != unseen {
			return true
		}
		runDFS(tree, symbols, graph, state, root, &errs)
		return true
	})

	return errs
}

func runDFS(tree *ast.Tree, symbols *Symbols, graph map[string][]string, state map[string]visitState, root string, errs *[]reporter.AnalysisError) {
	stack := []frame{{name: root}}
	state[root] = visiting

	iterations := 0
	for len(stack) > 0 {
		iterations++
		if iterations > maxDFSIterations {
			panic("pngc/analyzer: shader-import DFS exceeded iteration bound; a prior invariant must already be broken")
		}

		top := &stack[len(stack)-1]
		deps := graph[top.name]
		if top.nextDepIdx < len(deps) {
			dep := deps[top.nextDepIdx]
			top.nextDepIdx++

			switch state[dep] {
			case unseen:
				state[dep] = visiting
				stack = append(stack, frame{name: dep})
			case visiting:
				*errs = append(*errs, circularDependencyError(tree, symbols, dep))
			case visited:
				// already fully explored elsewhere; no new edge issue
			}
			continue
		}

		state[top.name] = visited
		stack = stack[:len(stack)-1]
	}
}

func circularDependencyError(tree *ast.Tree, symbols *Symbols, name string) reporter.AnalysisError {
	info, _ := symbols.Lookup(NamespaceShader, name)
	node := ast.RootIndex
	if info != nil {
		node = info.DeclNode
	}
	return reporter.AnalysisError{
		Kind:    reporter.CircularDependency,
		Node:    node,
		Pos:     tree.Pos(node),
		Message: "circular dependency involving shader \"" + name + "\"",
	}
}
