package analyzer

import "github.com/pngdsl/pngc/ast"

// Namespace is the closed enumeration of declaration kinds a symbol can
// belong to, per spec §3. Uniqueness of a name is enforced per namespace;
// the same name may occur in distinct namespaces without conflict.
type Namespace int

const (
	NamespaceShader Namespace = iota
	NamespaceBuffer
	NamespaceTexture
	NamespaceSampler
	NamespaceBindGroup
	NamespaceBindGroupLayout
	NamespacePipelineLayout
	NamespaceRenderPipeline
	NamespaceComputePipeline
	NamespaceRenderPass
	NamespaceComputePass
	NamespaceFrame
	NamespaceShaderModule
	NamespaceData
	NamespaceDefine

	namespaceCount
)

func (n Namespace) String() string {
	switch n {
	case NamespaceShader:
		return "wgsl"
	case NamespaceBuffer:
		return "buffer"
	case NamespaceTexture:
		return "texture"
	case NamespaceSampler:
		return "sampler"
	case NamespaceBindGroup:
		return "bindGroup"
	case NamespaceBindGroupLayout:
		return "bindGroupLayout"
	case NamespacePipelineLayout:
		return "pipelineLayout"
	case NamespaceRenderPipeline:
		return "renderPipeline"
	case NamespaceComputePipeline:
		return "computePipeline"
	case NamespaceRenderPass:
		return "renderPass"
	case NamespaceComputePass:
		return "computePass"
	case NamespaceFrame:
		return "frame"
	case NamespaceShaderModule:
		return "shaderModule"
	case NamespaceData:
		return "data"
	case NamespaceDefine:
		return "define"
	default:
		return "invalid"
	}
}

// namespaceByName is the fixed string -> Namespace map used to resolve
// "$ns.name" references and bare-name contextual namespaces (spec §4.4
// Pass 2). It includes the "pipeline" -> render_pipeline and "pass" ->
// render_pass aliases and, per spec §9 Open Question (b), deliberately no
// aliases for the compute variants: this is mirrored exactly as spec.md
// instructs, not extended by analogy.
var namespaceByName = map[string]Namespace{
	"wgsl":            NamespaceShader,
	"buffer":          NamespaceBuffer,
	"texture":         NamespaceTexture,
	"sampler":         NamespaceSampler,
	"bindGroup":       NamespaceBindGroup,
	"bindGroupLayout": NamespaceBindGroupLayout,
	"pipelineLayout":  NamespacePipelineLayout,
	"renderPipeline":  NamespaceRenderPipeline,
	"computePipeline": NamespaceComputePipeline,
	"renderPass":      NamespaceRenderPass,
	"computePass":     NamespaceComputePass,
	"frame":           NamespaceFrame,
	"shaderModule":    NamespaceShaderModule,
	"data":            NamespaceData,
	"define":          NamespaceDefine,
	"pipeline":        NamespaceRenderPipeline,
	"pass":            NamespaceRenderPass,
}

// LookupNamespace resolves a namespace string (as it appears after "$" in
// a reference) to a Namespace, honoring the pipeline/pass aliases.
func LookupNamespace(name string) (Namespace, bool) {
	ns, ok := namespaceByName[name]
	return ns, ok
}

// namespaceForTag derives the declaration namespace of a macro node from
// its AST tag (spec §4.4 Pass 1).
func namespaceForTag(tag ast.Tag) (Namespace, bool) {
	switch tag {
	case ast.TagMacroWGSL:
		return NamespaceShader, true
	case ast.TagMacroBuffer:
		return NamespaceBuffer, true
	case ast.TagMacroTexture:
		return NamespaceTexture, true
	case ast.TagMacroSampler:
		return NamespaceSampler, true
	case ast.TagMacroBindGroup:
		return NamespaceBindGroup, true
	case ast.TagMacroBindGroupLayout:
		return NamespaceBindGroupLayout, true
	case ast.TagMacroPipelineLayout:
		return NamespacePipelineLayout, true
	case ast.TagMacroRenderPipeline:
		return NamespaceRenderPipeline, true
	case ast.TagMacroComputePipeline:
		return NamespaceComputePipeline, true
	case ast.TagMacroRenderPass:
		return NamespaceRenderPass, true
	case ast.TagMacroComputePass:
		return NamespaceComputePass, true
	case ast.TagMacroFrame:
		return NamespaceFrame, true
	case ast.TagMacroShaderModule:
		return NamespaceShaderModule, true
	case ast.TagMacroData:
		return NamespaceData, true
	case ast.TagMacroDefine:
		return NamespaceDefine, true
	default:
		return 0, false
	}
}
