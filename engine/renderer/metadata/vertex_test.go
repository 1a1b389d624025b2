package metadata

import (
	"testing"

	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/stretchr/testify/assert"
)

func filledVertex(f float32) ShadedVertex {
	return ShadedVertex{
		Position:   math.NewVec4(f, f, f, f),
		Normal:     math.NewVec3Splat(f),
		PositionWS: math.NewVec3Splat(f),
		Texcoord:   math.NewVec2(f, f),
		Colour:     math.NewVec4(f, f, f, f),
		Tangent:    math.NewVec3Splat(f),
		Bitangent:  math.NewVec3Splat(f),
	}
}

func TestShadedVertexBlendCoversEveryField(t *testing.T) {
	a, b, c := filledVertex(1), filledVertex(2), filledVertex(4)

	var out ShadedVertex
	out.Blend(&a, &b, &c, 0.5, 0.25, 0.25)
	for i, v := range out.Components() {
		assert.InDelta(t, 2.0, v, 1e-6, "component %d", i)
	}
}

func TestShadedVertexLerpCoversEveryField(t *testing.T) {
	a, b := filledVertex(0), filledVertex(10)

	var out ShadedVertex
	out.Lerp(&a, &b, 0.3)
	for i, v := range out.Components() {
		assert.InDelta(t, 3.0, v, 1e-5, "component %d", i)
	}
}
