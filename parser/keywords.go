package parser

import "github.com/pngdsl/pngc/ast"

// macroKeywords maps a "#<word>" macro keyword's word (without the leading
// "#") to the AST tag for its declaration, per spec §3/§4.3.
var macroKeywords = map[string]ast.Tag{
	"wgsl":              ast.TagMacroWGSL,
	"buffer":            ast.TagMacroBuffer,
	"texture":           ast.TagMacroTexture,
	"sampler":           ast.TagMacroSampler,
	"bindGroup":         ast.TagMacroBindGroup,
	"bindGroupLayout":   ast.TagMacroBindGroupLayout,
	"pipelineLayout":    ast.TagMacroPipelineLayout,
	"renderPipeline":    ast.TagMacroRenderPipeline,
	"computePipeline":   ast.TagMacroComputePipeline,
	"renderPass":        ast.TagMacroRenderPass,
	"computePass":       ast.TagMacroComputePass,
	"frame":             ast.TagMacroFrame,
	"shaderModule":      ast.TagMacroShaderModule,
	"data":              ast.TagMacroData,
	"define":            ast.TagMacroDefine,
}
