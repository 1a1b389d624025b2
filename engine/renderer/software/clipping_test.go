package software

import (
	"testing"

	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clipVertex(x, y, z, w float32) metadata.ShadedVertex {
	return metadata.ShadedVertex{
		Position: math.NewVec4(x, y, z, w),
		Texcoord: math.NewVec2(x, y),
		Colour:   math.NewVec4(1, 1, 1, 1),
	}
}

func TestClipTriangleInsideIsUnchanged(t *testing.T) {
	tri := [3]metadata.ShadedVertex{
		clipVertex(-0.5, -0.5, 0.5, 1),
		clipVertex(0.5, -0.5, 0.5, 1),
		clipVertex(0, 0.5, 0.5, 1),
	}
	var poly clipPolygon
	clipTriangle(&tri, &poly)

	require.Equal(t, 3, poly.count)
	for i := range tri {
		assert.True(t, poly.vertices[i].Position.Compare(tri[i].Position, 1e-6), "vertex %d", i)
		assert.Equal(t, tri[i].Texcoord, poly.vertices[i].Texcoord)
	}
}

func TestClipTriangleBehindNearIsEmpty(t *testing.T) {
	tri := [3]metadata.ShadedVertex{
		clipVertex(-0.5, -0.5, -0.5, -1),
		clipVertex(0.5, -0.5, -0.5, -2),
		clipVertex(0, 0.5, -0.5, 1e-7),
	}
	var poly clipPolygon
	clipTriangle(&tri, &poly)
	assert.Equal(t, 0, poly.count)
}

func TestClipAgainstSatisfiedPlaneIsNoop(t *testing.T) {
	var in, out clipPolygon
	for _, v := range []metadata.ShadedVertex{
		clipVertex(-0.5, -0.5, 0.2, 1),
		clipVertex(0.5, -0.5, 0.4, 1),
		clipVertex(0.5, 0.5, 0.6, 1),
		clipVertex(-0.5, 0.5, 0.8, 1),
	} {
		v := v
		in.push(&v)
	}

	for plane := clipPlane(0); plane < numClipPlanes; plane++ {
		clipAgainstPlane(&in, &out, plane)
		require.Equal(t, in.count, out.count, "plane %d", plane)
		for i := 0; i < in.count; i++ {
			assert.Equal(t, in.vertices[i].Position, out.vertices[i].Position, "plane %d vertex %d", plane, i)
		}
	}
}

func TestClipTrianglePartiallyOutside(t *testing.T) {
	// one corner pokes out through x = w
	tri := [3]metadata.ShadedVertex{
		clipVertex(-0.5, -0.5, 0.5, 1),
		clipVertex(2, -0.5, 0.5, 1),
		clipVertex(-0.5, 0.5, 0.5, 1),
	}
	var poly clipPolygon
	clipTriangle(&tri, &poly)

	require.Equal(t, 4, poly.count)
	for i := 0; i < poly.count; i++ {
		p := poly.vertices[i].Position
		assert.LessOrEqual(t, p.X, p.W+1e-6)
		// attributes follow the position along the cut edge
		assert.InDelta(t, p.X, poly.vertices[i].Texcoord.X, 1e-5)
		assert.InDelta(t, p.Y, poly.vertices[i].Texcoord.Y, 1e-5)
	}
}

func TestClipTriangleCrossingNearPlane(t *testing.T) {
	tri := [3]metadata.ShadedVertex{
		clipVertex(0, 0, -1, 1),
		clipVertex(0.5, 0, 0.5, 1),
		clipVertex(0, 0.5, 0.5, 1),
	}
	var poly clipPolygon
	clipTriangle(&tri, &poly)

	require.Equal(t, 4, poly.count)
	for i := 0; i < poly.count; i++ {
		assert.GreaterOrEqual(t, poly.vertices[i].Position.Z, float32(clipEpsilon)-1e-6)
	}
}

func TestClipPlaneDistances(t *testing.T) {
	p := math.NewVec4(0.25, -0.5, 0.75, 1)
	assert.InDelta(t, 1-clipEpsilon, clipPlaneW.distance(p), 1e-7)
	assert.InDelta(t, 0.75, clipPlanePosX.distance(p), 1e-7)
	assert.InDelta(t, 1.25, clipPlaneNegX.distance(p), 1e-7)
	assert.InDelta(t, 1.5, clipPlanePosY.distance(p), 1e-7)
	assert.InDelta(t, 0.5, clipPlaneNegY.distance(p), 1e-7)
	assert.InDelta(t, 0.25, clipPlaneFar.distance(p), 1e-7)
	assert.InDelta(t, 0.75-clipEpsilon, clipPlaneNear.distance(p), 1e-7)
}
