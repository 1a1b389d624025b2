package metadata

import (
	"testing"

	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/stretchr/testify/assert"
)

func TestComparisonFuncs(t *testing.T) {
	cases := []struct {
		fn                  ComparisonFunc
		less, equal, higher bool
	}{
		{ComparisonNever, false, false, false},
		{ComparisonLess, true, false, false},
		{ComparisonEqual, false, true, false},
		{ComparisonLessEqual, true, true, false},
		{ComparisonGreater, false, false, true},
		{ComparisonNotEqual, true, false, true},
		{ComparisonGreaterEqual, false, true, true},
		{ComparisonAlways, true, true, true},
	}
	for _, c := range cases {
		assert.Equal(t, c.less, c.fn.Compare(0.3, 0.5), "func %d less", c.fn)
		assert.Equal(t, c.equal, c.fn.Compare(0.5, 0.5), "func %d equal", c.fn)
		assert.Equal(t, c.higher, c.fn.Compare(0.7, 0.5), "func %d higher", c.fn)
	}
}

func TestShaderFuncAdapters(t *testing.T) {
	var vs VertexShader = VertexShaderFunc(func(in *math.Vertex3D, cb *ConstantBuffers) ShadedVertex {
		return ShadedVertex{Position: in.Position.ToVec4(1)}
	})
	out := vs.ShadeVertex(&math.Vertex3D{Position: math.NewVec3(1, 2, 3)}, &ConstantBuffers{})
	assert.Equal(t, math.NewVec4(1, 2, 3, 1), out.Position)

	var ps PixelShader = PixelShaderFunc(func(in *ShadedVertex, cb *ConstantBuffers, tex *ShaderResources, s *Samplers) Color {
		return cb[0].(Color)
	})
	cb := ConstantBuffers{math.NewVec4(1, 0, 0, 1)}
	assert.Equal(t, math.NewVec4(1, 0, 0, 1), ps.ShadePixel(&ShadedVertex{}, &cb, &ShaderResources{}, &Samplers{}))
}

func TestViewportToScreen(t *testing.T) {
	vp := NewViewport(200, 100)

	topLeft := vp.ToScreen(math.NewVec3(-1, 1, 0))
	assert.Equal(t, math.NewVec3(0, 0, 0), topLeft)

	bottomRight := vp.ToScreen(math.NewVec3(1, -1, 1))
	assert.Equal(t, math.NewVec3(200, 100, 1), bottomRight)

	vp.MinDepth, vp.MaxDepth = 0.5, 1.0
	assert.InDelta(t, 0.75, vp.ToScreen(math.NewVec3(0, 0, 0.5)).Z, 1e-6)
}
