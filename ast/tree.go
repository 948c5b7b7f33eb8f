package ast

// NodeIndex identifies a node by its position in a Tree's parallel arrays.
// The zero NodeIndex is always the root node.
type NodeIndex uint32

// RootIndex is the index of the root node, always present at index 0.
const RootIndex NodeIndex = 0

// Tag identifies what kind of node a given index names, and therefore how
// to interpret its Data.
type Tag uint8

const (
	// Root has no corresponding value; it is the single per-tree sentinel.
	TagRoot Tag = iota

	// Macro declarations. MainToken is the "#<kind>" keyword token;
	// MainToken+1 is the declaration's name token. Data.Lhs points at the
	// declaration's body (an Object node); Data.Rhs is unused except where
	// noted below.
	TagMacroWGSL
	TagMacroBuffer
	TagMacroTexture
	TagMacroSampler
	TagMacroBindGroup
	TagMacroBindGroupLayout
	TagMacroPipelineLayout
	TagMacroRenderPipeline
	TagMacroComputePipeline
	TagMacroRenderPass
	TagMacroComputePass
	TagMacroFrame
	TagMacroShaderModule
	TagMacroData
	// MacroDefine: MainToken is the "#define" keyword; MainToken+1 is the
	// name token. Data.Lhs is the value node (a leaf: number/string/bool).
	TagMacroDefine

	// Object: Data is an ExtraRange over property node indices.
	TagObject
	// Array: Data is an ExtraRange over element node indices.
	TagArray
	// Property: MainToken names the property. Data.Lhs is the value node.
	TagProperty

	// Identifier leaf (a bare-name value; contextual namespace is resolved
	// by the analyzer from the enclosing Property). MainToken is the name.
	TagIdentifier
	// NumberValue leaf. MainToken is the number token.
	TagNumberValue
	// StringValue leaf. MainToken is the string token (quotes included).
	TagStringValue
	// BooleanValue leaf. MainToken is the "true"/"false" token.
	TagBooleanValue

	// Reference: "$ns.name". MainToken is the "$" sign. Data.Lhs/Data.Rhs
	// are the namespace and name token indices (as uint32), via
	// NodeAndNode-style packing of two TokenIndex values.
	TagReference
	// BuiltinRef: "canvas.width" and similar. MainToken is the first token
	// of the dotted path.
	TagBuiltinRef
	// UniformAccess: "name.field". MainToken is the base identifier token.
	TagUniformAccess
)

// Data is the per-node payload. Its two words are reinterpreted according
// to the node's Tag, mirroring a tagged union without an explicit Go sum
// type: ExtraRange() for container nodes, AsNode() for single-child nodes,
// AsNodeAndNode() for two-child nodes, AsTokenPair() for reference nodes.
type Data struct {
	Lhs uint32
	Rhs uint32
}

// ExtraRange interprets Data as a half-open [start, end) slice into the
// tree's ExtraData pool.
func (d Data) ExtraRange() (start, end uint32) { return d.Lhs, d.Rhs }

// AsNode interprets Data.Lhs as a single child NodeIndex.
func (d Data) AsNode() NodeIndex { return NodeIndex(d.Lhs) }

// AsNodeAndNode interprets Data as a pair of child NodeIndex values.
func (d Data) AsNodeAndNode() (NodeIndex, NodeIndex) { return NodeIndex(d.Lhs), NodeIndex(d.Rhs) }

// AsTokenPair interprets Data as a pair of TokenIndex values (used by
// Reference nodes to store their namespace and name tokens).
func (d Data) AsTokenPair() (TokenIndex, TokenIndex) { return TokenIndex(d.Lhs), TokenIndex(d.Rhs) }

// Tree is the attributed AST: parallel arrays indexed by NodeIndex, plus a
// shared pool that ExtraRange data slices into. Node 0 is always TagRoot;
// its Data.ExtraRange lists the indices of top-level declarations.
type Tree struct {
	Tokens *Tokens

	Tags       []Tag
	MainTokens []TokenIndex
	Data       []Data

	// ExtraData is the shared index pool that container nodes (Root,
	// Object, Array) slice into via Data.ExtraRange.
	ExtraData []uint32
}

// NewTree allocates a Tree with its root node already in place at index 0.
func NewTree(tokens *Tokens) *Tree {
	t := &Tree{Tokens: tokens}
	t.Tags = append(t.Tags, TagRoot)
	t.MainTokens = append(t.MainTokens, 0)
	t.Data = append(t.Data, Data{})
	return t
}

// AddNode appends a node and returns its index.
func (t *Tree) AddNode(tag Tag, main TokenIndex, data Data) NodeIndex {
	idx := NodeIndex(len(t.Tags))
	t.Tags = append(t.Tags, tag)
	t.MainTokens = append(t.MainTokens, main)
	t.Data = append(t.Data, data)
	return idx
}

// AddExtra appends indices to the shared extra-data pool and returns the
// [start, end) range they occupy, suitable for storing as a Data value's
// Lhs/Rhs pair.
func (t *Tree) AddExtra(indices []uint32) (start, end uint32) {
	start = uint32(len(t.ExtraData))
	t.ExtraData = append(t.ExtraData, indices...)
	end = uint32(len(t.ExtraData))
	return start, end
}

// SetRootDecls finalizes node 0's Data to point at the given top-level
// declaration indices in ExtraData.
func (t *Tree) SetRootDecls(decls []NodeIndex) {
	raw := make([]uint32, len(decls))
	for i, d := range decls {
		raw[i] = uint32(d)
	}
	start, end := t.AddExtra(raw)
	t.Data[RootIndex] = Data{Lhs: start, Rhs: end}
}

// RootDecls returns the top-level declaration indices.
func (t *Tree) RootDecls() []NodeIndex {
	start, end := t.Data[RootIndex].ExtraRange()
	return t.extraAsNodes(start, end)
}

// Extra returns the raw extra-data slice for a [start, end) range.
func (t *Tree) Extra(start, end uint32) []uint32 {
	return t.ExtraData[start:end]
}

func (t *Tree) extraAsNodes(start, end uint32) []NodeIndex {
	raw := t.ExtraData[start:end]
	out := make([]NodeIndex, len(raw))
	for i, v := range raw {
		out[i] = NodeIndex(v)
	}
	return out
}

// ObjectProperties returns the property-node indices of an Object node.
func (t *Tree) ObjectProperties(n NodeIndex) []NodeIndex {
	start, end := t.Data[n].ExtraRange()
	return t.extraAsNodes(start, end)
}

// ArrayElements returns the element-node indices of an Array node.
func (t *Tree) ArrayElements(n NodeIndex) []NodeIndex {
	start, end := t.Data[n].ExtraRange()
	return t.extraAsNodes(start, end)
}

// PropertyName returns the name of a Property node.
func (t *Tree) PropertyName(n NodeIndex) string {
	return t.Tokens.Text(t.MainTokens[n])
}

// PropertyValue returns the value-node index of a Property node.
func (t *Tree) PropertyValue(n NodeIndex) NodeIndex {
	return t.Data[n].AsNode()
}

// DeclName returns the declared name of a macro declaration node: the
// token immediately after the "#<kind>" keyword.
func (t *Tree) DeclName(n NodeIndex) string {
	return t.Tokens.Text(t.MainTokens[n] + 1)
}

// DeclBody returns the Object node holding a macro declaration's
// properties. MacroDefine has no body and panics if called on one; use
// DefineValue instead.
func (t *Tree) DeclBody(n NodeIndex) NodeIndex {
	if t.Tags[n] == TagMacroDefine {
		panic("pngc/ast: DeclBody called on a MacroDefine node; use DefineValue")
	}
	return t.Data[n].AsNode()
}

// DefineValue returns the literal value node of a MacroDefine declaration.
func (t *Tree) DefineValue(n NodeIndex) NodeIndex {
	return t.Data[n].AsNode()
}

// ReferenceTokens returns the namespace and name token indices of a
// Reference node.
func (t *Tree) ReferenceTokens(n NodeIndex) (namespace, name TokenIndex) {
	return t.Data[n].AsTokenPair()
}

// Pos returns the human-readable source position of a node's main token.
func (t *Tree) Pos(n NodeIndex) Pos {
	return PosFor(t.Tokens.Source, int(t.Tokens.Starts[t.MainTokens[n]]))
}

// IsMacroDecl reports whether tag is one of the macro declaration tags.
func (tag Tag) IsMacroDecl() bool {
	return tag >= TagMacroWGSL && tag <= TagMacroDefine
}
