package analyzer

import (
	"github.com/tidwall/btree"

	"github.com/pngdsl/pngc/ast"
)

// SymbolInfo is what the symbol table records for one declared name (spec
// §3).
type SymbolInfo struct {
	DeclNode ast.NodeIndex
	// DataID is set by Pass 4 for shader (wgsl) declarations; it is the
	// zero value (and HasDataID is false) for every other namespace and
	// for shader declarations before Pass 4 runs.
	DataID    uint16
	HasDataID bool
	// Dependencies is reserved: see spec §9 Open Question (a). This core
	// never populates it; it exists so a future pass (or a caller walking
	// Symbols directly) has a documented place to put it.
	Dependencies []string
}

// SymbolTable maps declared names to SymbolInfo within a single namespace.
// It is backed by a btree.Map rather than a plain Go map so that iterating
// a namespace's declarations (Pass 4's dedup walk, and diagnostics that
// enumerate symbols) visits them in a deterministic, name-sorted order —
// required for compile determinism (spec §8 P8) independent of Go's
// randomized map iteration order.
type SymbolTable struct {
	tree btree.Map[string, *SymbolInfo]
}

// Get looks up name, reporting whether it was found.
func (t *SymbolTable) Get(name string) (*SymbolInfo, bool) {
	return t.tree.Get(name)
}

// Insert inserts name -> info if name is not already present, reporting
// whether the insertion happened (false means name was already defined;
// the existing entry is left untouched, per spec §4.4 Pass 1's
// don't-overwrite rule).
func (t *SymbolTable) Insert(name string, info *SymbolInfo) bool {
	if _, exists := t.tree.Get(name); exists {
		return false
	}
	t.tree.Set(name, info)
	return true
}

// Len reports the number of distinct names in the table.
func (t *SymbolTable) Len() int { return t.tree.Len() }

// Range calls fn for every (name, info) pair in ascending name order.
func (t *SymbolTable) Range(fn func(name string, info *SymbolInfo) bool) {
	t.tree.Scan(fn)
}

// Symbols is the full set of per-namespace symbol tables for one
// compilation.
type Symbols struct {
	tables [namespaceCount]SymbolTable
}

// Table returns the symbol table for ns.
func (s *Symbols) Table(ns Namespace) *SymbolTable {
	return &s.tables[ns]
}

// Has reports whether ns has any declarations at all.
func (s *Symbols) Has(ns Namespace) bool {
	return s.tables[ns].Len() > 0
}

// Lookup finds name within ns.
func (s *Symbols) Lookup(ns Namespace, name string) (*SymbolInfo, bool) {
	return s.tables[ns].Get(name)
}
