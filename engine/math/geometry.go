package math

import "github.com/chewxy/math32"

// GeometryGenerateNormals assigns a flat face normal to every vertex of each
// triangle. Shared vertices keep the normal of the last face that touched them.
func GeometryGenerateNormals(vertices []Vertex3D, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)
		normal := edge1.Cross(edge2).Normalized()

		vertices[i0].Normal = normal
		vertices[i1].Normal = normal
		vertices[i2].Normal = normal
	}
}

// GeometryGenerateTangents derives per-face tangents and bitangents from the
// texture coordinate gradients. Faces with degenerate uv mapping are skipped.
func GeometryGenerateTangents(vertices []Vertex3D, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)

		deltaU1 := vertices[i1].Texcoord.X - vertices[i0].Texcoord.X
		deltaV1 := vertices[i1].Texcoord.Y - vertices[i0].Texcoord.Y
		deltaU2 := vertices[i2].Texcoord.X - vertices[i0].Texcoord.X
		deltaV2 := vertices[i2].Texcoord.Y - vertices[i0].Texcoord.Y

		dividend := deltaU1*deltaV2 - deltaU2*deltaV1
		if math32.Abs(dividend) < K_FLOAT_EPSILON {
			continue
		}
		fc := 1.0 / dividend

		tangent := edge1.MulScalar(deltaV2).Sub(edge2.MulScalar(deltaV1)).MulScalar(fc).Normalized()
		bitangent := edge2.MulScalar(deltaU1).Sub(edge1.MulScalar(deltaU2)).MulScalar(fc).Normalized()

		for _, idx := range [3]uint32{i0, i1, i2} {
			vertices[idx].Tangent = tangent
			vertices[idx].Bitangent = bitangent
		}
	}
}

// NewExtents3DEmpty returns inverted extents ready to accumulate points.
func NewExtents3DEmpty() Extents3D {
	return Extents3D{
		Min: NewVec3Splat(K_INFINITY),
		Max: NewVec3Splat(-K_INFINITY),
	}
}

// Include grows the extents to contain p.
func (e *Extents3D) Include(p Vec3) {
	e.Min = e.Min.Min(p)
	e.Max = e.Max.Max(p)
}

func (e Extents3D) Center() Vec3 {
	return e.Min.Add(e.Max).MulScalar(0.5)
}

// Radius is the radius of the sphere enclosing the box.
func (e Extents3D) Radius() float32 {
	return e.Max.Sub(e.Min).Length() * 0.5
}

// GeometryCalculateExtents returns the bounding box of the vertex positions.
func GeometryCalculateExtents(vertices []Vertex3D) Extents3D {
	e := NewExtents3DEmpty()
	for i := range vertices {
		e.Include(vertices[i].Position)
	}
	return e
}
