package systems

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// every generated face must be wound so that cross(v1-v0, v2-v0) points
// along the outward normal
func assertOutwardWinding(t *testing.T, g *metadata.Geometry) {
	t.Helper()
	for i := 0; i+2 < len(g.Indices); i += 3 {
		v0 := g.Vertices[g.Indices[i]]
		v1 := g.Vertices[g.Indices[i+1]]
		v2 := g.Vertices[g.Indices[i+2]]
		n := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position))
		assert.Greater(t, n.Dot(v0.Normal), float32(0), "triangle %d", i/3)
	}
}

func TestGenerateCube(t *testing.T) {
	g := GenerateCube(2, 4, 6, 1, 1, "box")
	require.Len(t, g.Vertices, 24)
	require.Len(t, g.Indices, 36)
	require.Len(t, g.SubMeshes, 1)
	assert.Equal(t, uint32(36), g.SubMeshes[0].IndexCount)

	assert.InDelta(t, -1, g.Extents.Min.X, 1e-6)
	assert.InDelta(t, 1, g.Extents.Max.X, 1e-6)
	assert.InDelta(t, -2, g.Extents.Min.Y, 1e-6)
	assert.InDelta(t, 2, g.Extents.Max.Y, 1e-6)
	assert.InDelta(t, -3, g.Extents.Min.Z, 1e-6)
	assert.InDelta(t, 3, g.Extents.Max.Z, 1e-6)
	assert.True(t, g.Center.Compare(math.NewVec3Zero(), 1e-6))

	assertOutwardWinding(t, g)
	for _, v := range g.Vertices {
		assert.InDelta(t, 1, v.Tangent.Length(), 1e-4)
	}
}

func TestGenerateCubeDefaultsZeroSizes(t *testing.T) {
	g := GenerateCube(0, 0, 0, 0, 0, "")
	assert.Equal(t, DefaultGeometryName, g.Name)
	assert.InDelta(t, 0.5, g.Extents.Max.X, 1e-6)
	assert.InDelta(t, 0.5, g.Extents.Max.Y, 1e-6)
	assert.InDelta(t, 0.5, g.Extents.Max.Z, 1e-6)
}

func TestGeneratePlane(t *testing.T) {
	g := GeneratePlane(4, 2, 2, 3, 1, 1, "floor")
	require.Len(t, g.Vertices, 2*3*4)
	require.Len(t, g.Indices, 2*3*6)
	assertOutwardWinding(t, g)

	assert.InDelta(t, -2, g.Extents.Min.X, 1e-6)
	assert.InDelta(t, 1, g.Extents.Max.Y, 1e-6)
	for _, v := range g.Vertices {
		assert.Equal(t, float32(0), v.Position.Z)
		assert.GreaterOrEqual(t, v.Texcoord.Y, float32(0))
		assert.LessOrEqual(t, v.Texcoord.Y, float32(1))
	}
	// the top-left corner maps to the first texture row
	for _, v := range g.Vertices {
		if v.Position.X == -2 && v.Position.Y == 1 {
			assert.InDelta(t, 0, v.Texcoord.X, 1e-6)
			assert.InDelta(t, 0, v.Texcoord.Y, 1e-6)
		}
	}
}

func TestGenerateFullScreenQuad(t *testing.T) {
	g := GenerateFullScreenQuad("quad", 0.1)
	require.Len(t, g.Vertices, 4)
	for _, v := range g.Vertices {
		assert.InDelta(t, 0.1, v.Position.Z, 1e-6)
		assert.InDelta(t, 1, math32.Abs(v.Position.X), 1e-6)
		assert.InDelta(t, 1, math32.Abs(v.Position.Y), 1e-6)
	}
}

func TestGenerateTriangle(t *testing.T) {
	g := GenerateTriangle("tri")
	require.Len(t, g.Vertices, 3)
	assert.Equal(t, []uint32{0, 1, 2}, g.Indices)
	assert.Equal(t, math.NewVec4(1, 0, 0, 1), g.Vertices[0].Colour)
	assertOutwardWinding(t, g)
}

func TestGeometrySystemReferenceCounting(t *testing.T) {
	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: 2})
	require.NoError(t, err)
	require.NotNil(t, gs.DefaultGeometry)
	require.NotNil(t, gs.Default2DGeometry)

	cube, err := gs.Register(GenerateCube(1, 1, 1, 1, 1, "cube"), true)
	require.NoError(t, err)
	again, err := gs.Acquire("cube")
	require.NoError(t, err)
	assert.Same(t, cube, again)

	_, err = gs.Register(GenerateTriangle("tri"), false)
	require.NoError(t, err)
	_, err = gs.Register(GenerateTriangle("tri2"), false)
	assert.Error(t, err)

	gs.Release(cube)
	assert.Equal(t, 2, gs.Count())
	gs.Release(cube)
	assert.Equal(t, 1, gs.Count())

	_, err = gs.Acquire("cube")
	assert.Error(t, err)

	_, err = NewGeometrySystem(&GeometrySystemConfig{})
	assert.Error(t, err)
}
