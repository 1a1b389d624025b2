package metadata

import "github.com/spaghettifunk/softraster/engine/math"

// ShadedVertex is the output of the vertex stage and the input of the pixel
// stage. Every field except Position is interpolated across the triangle.
type ShadedVertex struct {
	// Position is in clip space after the vertex stage. The pixel stage
	// receives (x+0.5, y+0.5, depth, clip w) in screen space.
	Position   math.Vec4
	Normal     math.Vec3
	PositionWS math.Vec3
	Texcoord   math.Vec2
	Colour     math.Vec4
	Tangent    math.Vec3
	Bitangent  math.Vec3
}

// ShadedVertexComponents is the number of float components in a ShadedVertex.
const ShadedVertexComponents = 4 + 3 + 3 + 2 + 4 + 3 + 3

// Lerp sets v to a + (b-a)*t for every field.
func (v *ShadedVertex) Lerp(a, b *ShadedVertex, t float32) {
	v.Position = a.Position.Lerp(b.Position, t)
	v.Normal = a.Normal.Lerp(b.Normal, t)
	v.PositionWS = a.PositionWS.Lerp(b.PositionWS, t)
	v.Texcoord = a.Texcoord.Lerp(b.Texcoord, t)
	v.Colour = a.Colour.Lerp(b.Colour, t)
	v.Tangent = a.Tangent.Lerp(b.Tangent, t)
	v.Bitangent = a.Bitangent.Lerp(b.Bitangent, t)
}

// Blend sets v to a*wa + b*wb + c*wc for every field.
func (v *ShadedVertex) Blend(a, b, c *ShadedVertex, wa, wb, wc float32) {
	v.Position = math.BlendVec4(a.Position, b.Position, c.Position, wa, wb, wc)
	v.Normal = math.BlendVec3(a.Normal, b.Normal, c.Normal, wa, wb, wc)
	v.PositionWS = math.BlendVec3(a.PositionWS, b.PositionWS, c.PositionWS, wa, wb, wc)
	v.Texcoord = math.BlendVec2(a.Texcoord, b.Texcoord, c.Texcoord, wa, wb, wc)
	v.Colour = math.BlendVec4(a.Colour, b.Colour, c.Colour, wa, wb, wc)
	v.Tangent = math.BlendVec3(a.Tangent, b.Tangent, c.Tangent, wa, wb, wc)
	v.Bitangent = math.BlendVec3(a.Bitangent, b.Bitangent, c.Bitangent, wa, wb, wc)
}

// Components returns the fields flattened in declaration order.
func (v *ShadedVertex) Components() [ShadedVertexComponents]float32 {
	return [ShadedVertexComponents]float32{
		v.Position.X, v.Position.Y, v.Position.Z, v.Position.W,
		v.Normal.X, v.Normal.Y, v.Normal.Z,
		v.PositionWS.X, v.PositionWS.Y, v.PositionWS.Z,
		v.Texcoord.X, v.Texcoord.Y,
		v.Colour.X, v.Colour.Y, v.Colour.Z, v.Colour.W,
		v.Tangent.X, v.Tangent.Y, v.Tangent.Z,
		v.Bitangent.X, v.Bitangent.Y, v.Bitangent.Z,
	}
}
