package shaders

import (
	"github.com/chewxy/math32"
	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

const (
	checkerScale     = 10
	highlightRadius  = 48
	highlightOpacity = 0.6
)

// VertexColourPS returns the interpolated vertex colour.
var VertexColourPS = metadata.PixelShaderFunc(func(in *metadata.ShadedVertex, cb *metadata.ConstantBuffers, textures *metadata.ShaderResources, samplers *metadata.Samplers) metadata.Color {
	return in.Colour.Mul(object(cb).Tint)
})

// CheckerPS alternates between the vertex colour and a dark grey on a 10x10
// grid in uv space.
var CheckerPS = metadata.PixelShaderFunc(func(in *metadata.ShadedVertex, cb *metadata.ConstantBuffers, textures *metadata.ShaderResources, samplers *metadata.Samplers) metadata.Color {
	cell := int(math32.Floor(in.Texcoord.X*checkerScale)) + int(math32.Floor(in.Texcoord.Y*checkerScale))
	if cell%2 == 0 {
		return in.Colour.Mul(object(cb).Tint)
	}
	return math.NewVec4(0.1, 0.1, 0.1, 1)
})

// albedo samples texture slot 0 with sampler slot 0, or falls back to the
// vertex colour when either slot is empty. The material's diffuse colour
// modulates both.
func albedo(in *metadata.ShadedVertex, cb *metadata.ConstantBuffers, textures *metadata.ShaderResources, samplers *metadata.Samplers) metadata.Color {
	c := in.Colour.Mul(object(cb).Tint).Mul(diffuse(cb))
	if textures[0] == nil || samplers[0] == nil {
		return c
	}
	return textures[0].SampleLevel(samplers[0], in.Texcoord, 0).Mul(c)
}

// TexturedPS modulates texture slot 0 by the vertex and material colours.
var TexturedPS = metadata.PixelShaderFunc(albedo)

// PalettePS paints a time-varying cosine palette over the screen and
// brightens a disc around the cursor.
var PalettePS = metadata.PixelShaderFunc(func(in *metadata.ShadedVertex, cb *metadata.ConstantBuffers, textures *metadata.ShaderResources, samplers *metadata.Samplers) metadata.Color {
	s := scene(cb)
	res := s.Resolution
	if res.X <= 0 || res.Y <= 0 {
		res = math.NewVec2(1, 1)
	}
	uv := math.NewVec2(in.Position.X/res.X, in.Position.Y/res.Y)

	c := math.NewVec3(
		0.5+0.5*math32.Cos(s.Time+uv.X),
		0.5+0.5*math32.Cos(s.Time+uv.Y+2),
		0.5+0.5*math32.Cos(s.Time+uv.X+4),
	)

	d := math.NewVec2(in.Position.X, in.Position.Y).Sub(s.Mouse).Length()
	glow := math.Smoothstep(highlightRadius, 0, d) * highlightOpacity
	c = c.AddScalar(glow)

	return math.NewVec4(c.X, c.Y, c.Z, 1).Saturate()
})

// LambertPS lights the albedo with one directional light and an ambient term.
var LambertPS = metadata.PixelShaderFunc(func(in *metadata.ShadedVertex, cb *metadata.ConstantBuffers, textures *metadata.ShaderResources, samplers *metadata.Samplers) metadata.Color {
	s := scene(cb)
	base := albedo(in, cb, textures, samplers)

	n := in.Normal.Normalized()
	l := s.LightDirection.Negate().Normalized()
	diffuse := math.Max(n.Dot(l), 0)

	light := s.AmbientColour.Add(s.LightColour.MulScalar(diffuse))
	lit := base.Mul(light)
	lit.W = base.W
	return lit.Saturate()
})

// DepthPS visualizes the fragment depth as grey.
var DepthPS = metadata.PixelShaderFunc(func(in *metadata.ShadedVertex, cb *metadata.ConstantBuffers, textures *metadata.ShaderResources, samplers *metadata.Samplers) metadata.Color {
	d := 1 - in.Position.Z
	return math.NewVec4(d, d, d, 1)
})
