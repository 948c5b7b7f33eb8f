package analyzer

import (
	"github.com/cespare/xxhash/v2"

	"github.com/pngdsl/pngc/ast"
	"github.com/pngdsl/pngc/internal/arena"
	"github.com/pngdsl/pngc/reporter"
)

// ShaderFragment is a deduplicated shader, identified by a 64-bit content
// hash over its raw value bytes (spec §3, §4.4 Pass 4).
type ShaderFragment struct {
	Name        string
	ContentHash uint64
	DataID      uint16
	// Dependencies is reserved; see spec §9 Open Question (a) and
	// SymbolInfo.Dependencies.
	Dependencies []string
}

// pool is the arena-backed, content-addressed store of deduplicated
// shader fragments: one arena slot per distinct content hash, with
// data_id equal to the slot's (zero-based) arena index. Reusing the
// teacher's index-over-pointer arena here means a data_id is always a
// small, stable integer rather than a pointer, which is exactly the
// property Pass 4 needs (spec §3 "Data ID").
type pool struct {
	arena   arena.Arena[ShaderFragment]
	byHash  map[uint64]arena.Pointer[ShaderFragment]
	nextID  uint16
}

func newPool() *pool {
	return &pool{byHash: map[uint64]arena.Pointer[ShaderFragment]{}}
}

// idFor returns the data_id for a content hash, assigning a new
// monotonically increasing id on first occurrence and reusing it on every
// subsequent occurrence (spec §4.4 Pass 4, §8 P5).
func (p *pool) idFor(hash uint64, name string) uint16 {
	if ptr, ok := p.byHash[hash]; ok {
		return ptr.In(&p.arena).DataID
	}
	id := p.nextID
	p.nextID++
	ptr := p.arena.New(ShaderFragment{Name: name, ContentHash: hash, DataID: id})
	p.byHash[hash] = ptr
	return id
}

// dedupShaders is Pass 4: for each shader macro, extract its "value"
// string literal's raw bytes, hash them, and assign a deduplicated
// data_id, writing it back into the shader's SymbolInfo (spec §4.4 Pass
// 4).
func dedupShaders(tree *ast.Tree, symbols *Symbols) ([]ShaderFragment, []reporter.AnalysisError) {
	var errs []reporter.AnalysisError
	var fragments []ShaderFragment
	p := newPool()

	table := symbols.Table(NamespaceShader)
	table.Range(func(name string, info *SymbolInfo) bool {
		raw, ok, err := shaderValueBytes(tree, info.DeclNode)
		if err != nil {
			errs = append(errs, *err)
			return true
		}
		if !ok {
			errs = append(errs, reporter.AnalysisError{
				Kind:    reporter.MissingRequiredProperty,
				Node:    info.DeclNode,
				Pos:     tree.Pos(info.DeclNode),
				Message: "shader \"" + name + "\" is missing its \"value\" property",
			})
			return true
		}

		hash := xxhash.Sum64(raw)
		id := p.idFor(hash, name)
		info.DataID = id
		info.HasDataID = true
		fragments = append(fragments, ShaderFragment{Name: name, ContentHash: hash, DataID: id})
		return true
	})

	return fragments, errs
}

// shaderValueBytes extracts the raw (quote-stripped) bytes of a shader
// macro's "value" property, which must be a string literal.
func shaderValueBytes(tree *ast.Tree, decl ast.NodeIndex) (raw []byte, found bool, typeErr *reporter.AnalysisError) {
	body := tree.DeclBody(decl)
	for _, prop := range tree.ObjectProperties(body) {
		if tree.PropertyName(prop) != "value" {
			continue
		}
		val := tree.PropertyValue(prop)
		if tree.Tags[val] != ast.TagStringValue {
			return nil, true, &reporter.AnalysisError{
				Kind:    reporter.TypeMismatch,
				Node:    val,
				Pos:     tree.Pos(val),
				Message: "shader \"value\" must be a string literal",
			}
		}
		text := tree.Tokens.Text(tree.MainTokens[val])
		return stripQuotes([]byte(text)), true, nil
	}
	return nil, false, nil
}

func stripQuotes(s []byte) []byte {
	if len(s) >= 2 && s[0] == '"' {
		end := len(s)
		if s[end-1] == '"' {
			end--
		}
		return s[1:end]
	}
	return s
}
