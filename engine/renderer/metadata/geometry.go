package metadata

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/softraster/engine/math"
)

/**
 * @brief A named range of a geometry's index buffer drawn with one material.
 */
type SubMesh struct {
	Name string
	/** @brief First index of the range. */
	StartIndex uint32
	/** @brief Added to every index of the range before the vertex fetch. */
	BaseVertex uint32
	/** @brief Number of indices, a multiple of three. */
	IndexCount uint32
	/** @brief Optional material bound before the range is drawn. */
	Material *Material
}

/**
 * @brief Represents actual geometry in the world: a flat vertex array, a flat
 * index array and the sub-mesh ranges that partition it.
 */
type Geometry struct {
	/** @brief The geometry identifier. */
	ID uint32
	/** @brief The geometry name. */
	Name string
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	Vertices   []math.Vertex3D
	Indices    []uint32
	SubMeshes  []SubMesh
	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
}

// NewGeometry creates a geometry with a single sub-mesh covering all indices.
func NewGeometry(name string, vertices []math.Vertex3D, indices []uint32, material *Material) *Geometry {
	if name == "" {
		name = uuid.NewString()
	}
	g := &Geometry{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	g.SubMeshes = []SubMesh{{
		Name:       name,
		IndexCount: uint32(len(indices)),
		Material:   material,
	}}
	g.UpdateExtents()
	return g
}

// UpdateExtents recomputes the bounding box and center from the vertices.
func (g *Geometry) UpdateExtents() {
	g.Extents = math.GeometryCalculateExtents(g.Vertices)
	g.Center = g.Extents.Center()
	g.Generation++
}

// Radius is the radius of the sphere enclosing the geometry.
func (g *Geometry) Radius() float32 {
	return g.Extents.Radius()
}

/**
 * @brief A material, the set of textures and samplers bound for a sub-mesh.
 */
type Material struct {
	Name          string
	DiffuseColour math.Vec4
	Textures      ShaderResources
	Samplers      Samplers
}

// NewMaterial binds diffuse to texture slot 0 and sampler to sampler slot 0.
func NewMaterial(name string, diffuse *Texture, sampler *SamplerState) *Material {
	m := &Material{
		Name:          name,
		DiffuseColour: math.NewVec4One(),
	}
	m.Textures[0] = diffuse
	m.Samplers[0] = sampler
	return m
}
