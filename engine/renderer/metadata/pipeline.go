package metadata

import "github.com/spaghettifunk/softraster/engine/math"

/** @brief Which triangle facing is discarded before rasterization. */
type CullMode int

const (
	CullModeNone CullMode = iota
	CullModeFront
	CullModeBack
)

/** @brief Depth comparison functions. The incoming value is on the left. */
type ComparisonFunc int

const (
	ComparisonNever ComparisonFunc = iota
	ComparisonLess
	ComparisonEqual
	ComparisonLessEqual
	ComparisonGreater
	ComparisonNotEqual
	ComparisonGreaterEqual
	ComparisonAlways
)

// Compare reports whether src passes against the stored dst value.
func (f ComparisonFunc) Compare(src, dst float32) bool {
	switch f {
	case ComparisonNever:
		return false
	case ComparisonLess:
		return src < dst
	case ComparisonEqual:
		return src == dst
	case ComparisonLessEqual:
		return src <= dst
	case ComparisonGreater:
		return src > dst
	case ComparisonNotEqual:
		return src != dst
	case ComparisonGreaterEqual:
		return src >= dst
	case ComparisonAlways:
		return true
	}
	return false
}

type RasterizerDesc struct {
	CullMode CullMode
	// FrontCounterClockwise marks counter-clockwise triangles (in NDC) as front facing.
	FrontCounterClockwise bool
}

type DepthStencilDesc struct {
	DepthEnable bool
	DepthFunc   ComparisonFunc
}

// VertexShader transforms one input vertex into clip space.
type VertexShader interface {
	ShadeVertex(in *math.Vertex3D, cb *ConstantBuffers) ShadedVertex
}

// VertexShaderFunc adapts a function to VertexShader.
type VertexShaderFunc func(in *math.Vertex3D, cb *ConstantBuffers) ShadedVertex

func (f VertexShaderFunc) ShadeVertex(in *math.Vertex3D, cb *ConstantBuffers) ShadedVertex {
	return f(in, cb)
}

// PixelShader computes the colour of one covered pixel. Implementations are
// called concurrently and must not mutate shared state.
type PixelShader interface {
	ShadePixel(in *ShadedVertex, cb *ConstantBuffers, textures *ShaderResources, samplers *Samplers) Color
}

// PixelShaderFunc adapts a function to PixelShader.
type PixelShaderFunc func(in *ShadedVertex, cb *ConstantBuffers, textures *ShaderResources, samplers *Samplers) Color

func (f PixelShaderFunc) ShadePixel(in *ShadedVertex, cb *ConstantBuffers, textures *ShaderResources, samplers *Samplers) Color {
	return f(in, cb, textures, samplers)
}

// MultiTargetPixelShader is implemented by pixel shaders that also write the
// bound auxiliary colour targets. The primary colour is still the return value.
type MultiTargetPixelShader interface {
	PixelShader
	ShadePixelTargets(in *ShadedVertex, cb *ConstantBuffers, textures *ShaderResources, samplers *Samplers, out *[MaxAuxiliaryTargets]Color) Color
}

/**
 * @brief Everything a draw needs besides the bound resources. The context
 * keeps a reference for the duration of the draw.
 */
type PipelineState struct {
	Name              string
	VS                VertexShader
	PS                PixelShader
	RasterizerState   RasterizerDesc
	DepthStencilState DepthStencilDesc
}

// NewPipelineState returns a pipeline without culling and with a less-than
// depth test enabled.
func NewPipelineState(name string, vs VertexShader, ps PixelShader) *PipelineState {
	return &PipelineState{
		Name: name,
		VS:   vs,
		PS:   ps,
		RasterizerState: RasterizerDesc{
			CullMode: CullModeNone,
		},
		DepthStencilState: DepthStencilDesc{
			DepthEnable: true,
			DepthFunc:   ComparisonLess,
		},
	}
}
