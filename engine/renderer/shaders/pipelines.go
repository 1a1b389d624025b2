package shaders

import (
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

const (
	PipelineVertexColour = "builtin.vertex_colour"
	PipelineChecker      = "builtin.checker"
	PipelineTextured     = "builtin.textured"
	PipelinePalette      = "builtin.palette"
	PipelineLit          = "builtin.lit"
	PipelineDepth        = "builtin.depth"
)

// NewVertexColourPipeline draws both faces with interpolated vertex colours.
func NewVertexColourPipeline() *metadata.PipelineState {
	return metadata.NewPipelineState(PipelineVertexColour, TransformVS, VertexColourPS)
}

func NewCheckerPipeline() *metadata.PipelineState {
	return metadata.NewPipelineState(PipelineChecker, TransformVS, CheckerPS)
}

func NewTexturedPipeline() *metadata.PipelineState {
	return metadata.NewPipelineState(PipelineTextured, TransformVS, TexturedPS)
}

// NewPalettePipeline expects geometry already in clip space, such as a full
// screen quad.
func NewPalettePipeline() *metadata.PipelineState {
	p := metadata.NewPipelineState(PipelinePalette, PassthroughVS, PalettePS)
	p.DepthStencilState.DepthFunc = metadata.ComparisonLessEqual
	return p
}

// NewLitPipeline culls back faces of clockwise-wound geometry.
func NewLitPipeline() *metadata.PipelineState {
	p := metadata.NewPipelineState(PipelineLit, TransformVS, LambertPS)
	p.RasterizerState = metadata.RasterizerDesc{
		CullMode:              metadata.CullModeBack,
		FrontCounterClockwise: false,
	}
	return p
}

func NewDepthPipeline() *metadata.PipelineState {
	p := metadata.NewPipelineState(PipelineDepth, TransformVS, DepthPS)
	p.RasterizerState.CullMode = metadata.CullModeBack
	return p
}

// NewPipeline builds a built-in pipeline by name.
func NewPipeline(name string) (*metadata.PipelineState, bool) {
	switch name {
	case PipelineVertexColour:
		return NewVertexColourPipeline(), true
	case PipelineChecker:
		return NewCheckerPipeline(), true
	case PipelineTextured:
		return NewTexturedPipeline(), true
	case PipelinePalette:
		return NewPalettePipeline(), true
	case PipelineLit:
		return NewLitPipeline(), true
	case PipelineDepth:
		return NewDepthPipeline(), true
	}
	return nil, false
}
