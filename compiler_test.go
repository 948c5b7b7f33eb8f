package pngc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pngdsl/pngc"
	"github.com/pngdsl/pngc/analyzer"
	"github.com/pngdsl/pngc/ast"
	"github.com/pngdsl/pngc/reporter"
)

// fakeEmitter stubs the binary-layout concerns spec.md leaves to an
// external collaborator; it only needs to satisfy the PNGB-prefix
// post-condition the driver checks.
type fakeEmitter struct {
	err       error
	malformed bool
}

func (e *fakeEmitter) Emit(tree *ast.Tree, result *analyzer.Result, opts pngc.EmitOptions) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.malformed {
		return []byte("bad"), nil
	}
	return []byte("PNGB\x00\x00\x00\x00"), nil
}

func TestCompileEmptySourceSucceeds(t *testing.T) {
	c := &pngc.Compiler{Emitter: &fakeEmitter{}}
	result, err := c.Compile([]byte(""), pngc.CompileOptions{})
	require.NoError(t, err)
	require.Equal(t, "PNGB", string(result.Bytecode[:4]))
}

func TestCompileSimpleFrameSucceeds(t *testing.T) {
	c := &pngc.Compiler{Emitter: &fakeEmitter{}}
	result, err := c.Compile([]byte(`#frame main { perform=[] }`), pngc.CompileOptions{})
	require.NoError(t, err)
	require.Equal(t, "PNGB", string(result.Bytecode[:4]))
}

func TestCompileUndefinedReferenceSurfacesAsAnalysisErrors(t *testing.T) {
	c := &pngc.Compiler{Emitter: &fakeEmitter{}}
	_, err := c.Compile([]byte(`#frame main { perform=[$renderPass.missing] }`), pngc.CompileOptions{})
	require.Error(t, err)

	var analysisErrs *reporter.AnalysisErrors
	require.True(t, errors.As(err, &analysisErrs))
	require.Len(t, analysisErrs.Errors, 1)
	require.Equal(t, reporter.UndefinedReference, analysisErrs.Errors[0].Kind)
}

func TestCompileDuplicateDefinitionSurfacesAsAnalysisErrors(t *testing.T) {
	c := &pngc.Compiler{Emitter: &fakeEmitter{}}
	_, err := c.Compile([]byte(`
#buffer a { size=4 }
#buffer a { size=8 }
`), pngc.CompileOptions{})
	require.Error(t, err)

	var analysisErrs *reporter.AnalysisErrors
	require.True(t, errors.As(err, &analysisErrs))
	require.Equal(t, reporter.DuplicateDefinition, analysisErrs.Errors[0].Kind)
}

func TestCompileCircularDependencySurfacesAsAnalysisErrors(t *testing.T) {
	c := &pngc.Compiler{Emitter: &fakeEmitter{}}
	_, err := c.Compile([]byte(`
#wgsl a { imports=[$wgsl.b] value="fn a(){}" }
#wgsl b { imports=[$wgsl.a] value="fn b(){}" }
`), pngc.CompileOptions{})
	require.Error(t, err)

	var analysisErrs *reporter.AnalysisErrors
	require.True(t, errors.As(err, &analysisErrs))

	var kinds []reporter.AnalysisErrorKind
	for _, e := range analysisErrs.Errors {
		kinds = append(kinds, e.Kind)
	}
	require.Contains(t, kinds, reporter.CircularDependency)
}

func TestCompileParseErrorAbortsBeforeAnalysis(t *testing.T) {
	c := &pngc.Compiler{Emitter: &fakeEmitter{}}
	_, err := c.Compile([]byte(`#frame main { perform=[]`), pngc.CompileOptions{})
	require.Error(t, err)

	var analysisErrs *reporter.AnalysisErrors
	require.False(t, errors.As(err, &analysisErrs), "a syntax error must not be mistaken for an analysis error")
}

func TestCompileRequiresEmitter(t *testing.T) {
	c := &pngc.Compiler{}
	_, err := c.Compile([]byte(`#frame main { perform=[] }`), pngc.CompileOptions{})
	require.Error(t, err)
	require.ErrorIs(t, err, pngc.ErrEmit)
}

func TestCompileWrapsEmitterError(t *testing.T) {
	c := &pngc.Compiler{Emitter: &fakeEmitter{err: errors.New("disk full")}}
	_, err := c.Compile([]byte(`#frame main { perform=[] }`), pngc.CompileOptions{})
	require.Error(t, err)
	require.ErrorIs(t, err, pngc.ErrEmit)
}

func TestCompilePanicsOnMalformedEmitterOutput(t *testing.T) {
	c := &pngc.Compiler{Emitter: &fakeEmitter{malformed: true}}
	require.Panics(t, func() {
		_, _ = c.Compile([]byte(`#frame main { perform=[] }`), pngc.CompileOptions{})
	})
}

func TestCompileWithImportResolutionRequiresLoader(t *testing.T) {
	c := &pngc.Compiler{Emitter: &fakeEmitter{}}
	_, err := c.Compile([]byte(`#frame main { perform=[] }`), pngc.CompileOptions{BaseDir: "."})
	require.Error(t, err)
	require.ErrorIs(t, err, pngc.ErrFileRead)
}

func TestCompileRoutesParseErrorsThroughReporter(t *testing.T) {
	var seen []reporter.ErrorWithPos
	rep := reporter.NewReporter(func(err reporter.ErrorWithPos) error {
		seen = append(seen, err)
		return err
	}, nil)
	c := &pngc.Compiler{Emitter: &fakeEmitter{}, Reporter: rep}
	_, err := c.Compile([]byte(`#frame main { perform=[]`), pngc.CompileOptions{})
	require.Error(t, err)
	require.Len(t, seen, 1, "the Reporter must see every fatal per-stage error")
}

func TestCompileWithImportResolutionInlinesImportedFile(t *testing.T) {
	loader := mapLoader{
		"shared.pngdsl": "#buffer shared { size=4 }\n",
	}
	c := &pngc.Compiler{Emitter: &fakeEmitter{}, Loader: loader}
	result, err := c.Compile([]byte(`#import "shared.pngdsl"
#frame main { perform=[] }
`), pngc.CompileOptions{BaseDir: "."})
	require.NoError(t, err)
	require.Equal(t, "PNGB", string(result.Bytecode[:4]))
}

func TestCompileDetectPluginsOnCleanRenderPipeline(t *testing.T) {
	c := &pngc.Compiler{Emitter: &fakeEmitter{}}
	result, err := c.Compile([]byte(`
#wgsl code { value="fn f(){}" }
#shaderModule mod { module=code }
#renderPipeline p { vertex={ module=mod } }
#frame main { perform=[] }
`), pngc.CompileOptions{DetectPlugins: true})
	require.NoError(t, err)
	require.True(t, result.Plugins.Render)
	require.True(t, result.Plugins.Animation)
	require.False(t, result.Plugins.Compute)
}
