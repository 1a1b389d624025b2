package shaders

import (
	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

// TransformVS moves a vertex from object space to clip space through the
// object's model matrix and the scene's view projection.
var TransformVS = metadata.VertexShaderFunc(func(in *math.Vertex3D, cb *metadata.ConstantBuffers) metadata.ShadedVertex {
	s, o := scene(cb), object(cb)

	world := in.Position.ToVec4(1).MulMat4(o.Model)
	return metadata.ShadedVertex{
		Position:   world.MulMat4(s.ViewProjection),
		Normal:     in.Normal.ToVec4(0).MulMat4(o.Model).ToVec3().Normalized(),
		PositionWS: world.ToVec3(),
		Texcoord:   in.Texcoord,
		Colour:     in.Colour,
		Tangent:    in.Tangent.ToVec4(0).MulMat4(o.Model).ToVec3(),
		Bitangent:  in.Bitangent.ToVec4(0).MulMat4(o.Model).ToVec3(),
	}
})

// PassthroughVS treats the vertex position as clip space with w = 1.
var PassthroughVS = metadata.VertexShaderFunc(func(in *math.Vertex3D, cb *metadata.ConstantBuffers) metadata.ShadedVertex {
	return metadata.ShadedVertex{
		Position:   in.Position.ToVec4(1),
		Normal:     in.Normal,
		PositionWS: in.Position,
		Texcoord:   in.Texcoord,
		Colour:     in.Colour,
		Tangent:    in.Tangent,
		Bitangent:  in.Bitangent,
	}
})
