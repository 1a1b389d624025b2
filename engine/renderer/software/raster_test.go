package software

import (
	"testing"

	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarycentricCoverage(t *testing.T) {
	a := math.NewVec2(0, 0)
	b := math.NewVec2(10, 0)
	c := math.NewVec2(0, 10)

	alpha, beta, gamma, ok := barycentric(a, b, c, math.NewVec2(1.5, 1.5))
	require.True(t, ok)
	assert.InDelta(t, 1, alpha+beta+gamma, 1e-6)
	assert.True(t, covers(alpha, beta, gamma))

	alpha, beta, gamma, ok = barycentric(a, b, c, math.NewVec2(9.5, 9.5))
	require.True(t, ok)
	assert.False(t, covers(alpha, beta, gamma))
}

func TestBarycentricAtVertices(t *testing.T) {
	a := math.NewVec2(2, 1)
	b := math.NewVec2(8, 3)
	c := math.NewVec2(4, 9)

	alpha, beta, gamma, ok := barycentric(a, b, c, a)
	require.True(t, ok)
	assert.InDelta(t, 1, alpha, 1e-6)
	assert.InDelta(t, 0, beta, 1e-6)
	assert.InDelta(t, 0, gamma, 1e-6)

	alpha, beta, gamma, _ = barycentric(a, b, c, c)
	assert.InDelta(t, 0, alpha, 1e-6)
	assert.InDelta(t, 0, beta, 1e-6)
	assert.InDelta(t, 1, gamma, 1e-6)
}

func TestBarycentricZeroArea(t *testing.T) {
	_, _, _, ok := barycentric(math.NewVec2(0, 0), math.NewVec2(1, 1), math.NewVec2(2, 2), math.NewVec2(1, 1))
	assert.False(t, ok)
}

func TestPerspectiveWeights(t *testing.T) {
	third := float32(1.0 / 3.0)
	bary := [3]float32{third, third, third}
	uv := [3]math.Vec2{math.NewVec2(0, 0), math.NewVec2(1, 0), math.NewVec2(0, 1)}
	naive := math.NewVec2(third, third)

	interpolate := func(w [3]float32) math.Vec2 {
		return math.BlendVec2(uv[0], uv[1], uv[2], w[0], w[1], w[2])
	}

	// equal w is the plain barycentric average
	w, clipW := perspectiveWeights(bary, [3]float32{0.5, 0.5, 0.5})
	assert.True(t, interpolate(w).Compare(naive, 1e-6))
	assert.InDelta(t, 2, clipW, 1e-5)

	// differing w pulls the result towards the nearer vertex
	w, _ = perspectiveWeights(bary, [3]float32{1, 0.5, 0.25})
	got := interpolate(w)
	assert.False(t, got.Compare(naive, 1e-3))
	assert.InDelta(t, 0.5/1.75, got.X, 1e-6)
	assert.InDelta(t, 0.25/1.75, got.Y, 1e-6)
	assert.InDelta(t, 1, w[0]+w[1]+w[2], 1e-6)
}

func TestBackFaceClassification(t *testing.T) {
	ccw := [3]math.Vec3{
		math.NewVec3(-1, -1, 0.5),
		math.NewVec3(1, -1, 0.5),
		math.NewVec3(-1, 1, 0.5),
	}
	cw := [3]math.Vec3{ccw[0], ccw[2], ccw[1]}

	assert.False(t, isBackFace(&ccw, true))
	assert.True(t, isBackFace(&cw, true))
	assert.True(t, isBackFace(&ccw, false))
	assert.False(t, isBackFace(&cw, false))

	assert.False(t, culled(metadata.CullModeNone, true))
	assert.True(t, culled(metadata.CullModeBack, true))
	assert.False(t, culled(metadata.CullModeBack, false))
	assert.True(t, culled(metadata.CullModeFront, false))
}

func TestBoundingRectClampsToTarget(t *testing.T) {
	s := [3]screenVertex{
		{Position: math.NewVec3(-5, 2.5, 0)},
		{Position: math.NewVec3(3.2, -1, 0)},
		{Position: math.NewVec3(20, 7.1, 0)},
	}
	r := boundingRect(&s, 16, 8)
	assert.Equal(t, pixelRect{minX: 0, minY: 0, maxX: 15, maxY: 7}, r)

	off := [3]screenVertex{
		{Position: math.NewVec3(-5, -5, 0)},
		{Position: math.NewVec3(-3, -5, 0)},
		{Position: math.NewVec3(-5, -3, 0)},
	}
	assert.True(t, boundingRect(&off, 16, 8).empty())
}
