package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

const (
	DefaultGeometryName   = "default"
	Default2DGeometryName = "default_2d"

	// Just in front of the far plane so it passes a depth test against a
	// cleared buffer and stays behind everything else.
	fullScreenQuadDepth float32 = 0.999
)

type geometryReference struct {
	geometry       *metadata.Geometry
	referenceCount uint64
	autoRelease    bool
}

type GeometrySystemConfig struct {
	/** @brief The maximum number of geometries that can be registered at once. */
	MaxGeometryCount uint32
}

type GeometrySystem struct {
	Config            *GeometrySystemConfig
	DefaultGeometry   *metadata.Geometry
	Default2DGeometry *metadata.Geometry

	mu         sync.Mutex
	nextID     uint32
	registered map[string]*geometryReference
}

/**
 * @brief Creates the geometry system along with its default geometries: a
 * unit cube and a 2x2 full screen quad at the back of the depth range.
 * @param config The configuration for this system.
 */
func NewGeometrySystem(config *GeometrySystemConfig) (*GeometrySystem, error) {
	if config.MaxGeometryCount == 0 {
		err := fmt.Errorf("func NewGeometrySystem - config.MaxGeometryCount must be > 0")
		core.LogWarn(err.Error())
		return nil, err
	}
	gs := &GeometrySystem{
		Config:     config,
		registered: make(map[string]*geometryReference),
	}
	gs.DefaultGeometry = GenerateCube(1, 1, 1, 1, 1, DefaultGeometryName)
	gs.Default2DGeometry = GenerateFullScreenQuad(Default2DGeometryName, fullScreenQuadDepth)
	return gs, nil
}

/**
 * @brief Registers the geometry and acquires a reference to it. Registering a
 * name that already exists acquires the existing geometry instead.
 * @param geometry The geometry to register.
 * @param autoRelease Indicates if the geometry is dropped when its reference count reaches 0.
 */
func (gs *GeometrySystem) Register(geometry *metadata.Geometry, autoRelease bool) (*metadata.Geometry, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if ref, ok := gs.registered[geometry.Name]; ok {
		ref.referenceCount++
		return ref.geometry, nil
	}
	if uint32(len(gs.registered)) >= gs.Config.MaxGeometryCount {
		err := fmt.Errorf("unable to obtain free slot for geometry %s. Adjust configuration to allow more space", geometry.Name)
		core.LogError(err.Error())
		return nil, err
	}
	geometry.ID = gs.nextID
	gs.nextID++
	gs.registered[geometry.Name] = &geometryReference{
		geometry:       geometry,
		referenceCount: 1,
		autoRelease:    autoRelease,
	}
	return geometry, nil
}

// Acquire returns a registered geometry by name and bumps its reference count.
func (gs *GeometrySystem) Acquire(name string) (*metadata.Geometry, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	ref, ok := gs.registered[name]
	if !ok {
		err := fmt.Errorf("geometry %s is not registered", name)
		core.LogError(err.Error())
		return nil, err
	}
	ref.referenceCount++
	return ref.geometry, nil
}

/**
 * @brief Releases a reference to the provided geometry.
 * @param geometry The geometry to be released.
 */
func (gs *GeometrySystem) Release(geometry *metadata.Geometry) {
	if geometry == nil {
		core.LogWarn("GeometrySystem.Release cannot release nil geometry. Nothing was done.")
		return
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()

	ref, ok := gs.registered[geometry.Name]
	if !ok || ref.geometry != geometry {
		core.LogWarn("geometry %s is not registered. Nothing was done.", geometry.Name)
		return
	}
	if ref.referenceCount > 0 {
		ref.referenceCount--
	}
	if ref.referenceCount == 0 && ref.autoRelease {
		delete(gs.registered, geometry.Name)
	}
}

// Count returns the number of registered geometries.
func (gs *GeometrySystem) Count() int {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return len(gs.registered)
}

func (gs *GeometrySystem) Shutdown() {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.registered = make(map[string]*geometryReference)
}

/**
 * @brief Generates a plane in the xy plane facing -z, centered on the origin.
 * Faces are wound clockwise when seen from the front.
 *
 * @param width The overall width of the plane. Must be non-zero.
 * @param height The overall height of the plane. Must be non-zero.
 * @param xSegmentCount The number of segments along the x-axis in the plane. Must be non-zero.
 * @param ySegmentCount The number of segments along the y-axis in the plane. Must be non-zero.
 * @param tileX The number of times the texture should tile across the plane on the x-axis. Must be non-zero.
 * @param tileY The number of times the texture should tile across the plane on the y-axis. Must be non-zero.
 * @param name The name of the generated geometry.
 */
func GeneratePlane(width, height float32, xSegmentCount, ySegmentCount uint32, tileX, tileY float32, name string) *metadata.Geometry {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if xSegmentCount < 1 {
		core.LogWarn("xSegmentCount must be a positive number. Defaulting to one.")
		xSegmentCount = 1
	}
	if ySegmentCount < 1 {
		core.LogWarn("ySegmentCount must be a positive number. Defaulting to one.")
		ySegmentCount = 1
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	vertices := make([]math.Vertex3D, xSegmentCount*ySegmentCount*4)
	indices := make([]uint32, xSegmentCount*ySegmentCount*6)

	segWidth := width / float32(xSegmentCount)
	segHeight := height / float32(ySegmentCount)
	halfWidth := width * 0.5
	halfHeight := height * 0.5
	normal := math.NewVec3(0, 0, -1)
	for y := uint32(0); y < ySegmentCount; y++ {
		for x := uint32(0); x < xSegmentCount; x++ {
			minX := (float32(x) * segWidth) - halfWidth
			minY := (float32(y) * segHeight) - halfHeight
			maxX := minX + segWidth
			maxY := minY + segHeight
			minU := (float32(x) / float32(xSegmentCount)) * tileX
			maxU := (float32(x+1) / float32(xSegmentCount)) * tileX
			// texture rows run top to bottom
			minV := (1 - float32(y+1)/float32(ySegmentCount)) * tileY
			maxV := (1 - float32(y)/float32(ySegmentCount)) * tileY

			vOffset := ((y * xSegmentCount) + x) * 4
			vertices[vOffset+0] = newVertex(math.NewVec3(minX, minY, 0), normal, math.NewVec2(minU, maxV))
			vertices[vOffset+1] = newVertex(math.NewVec3(maxX, maxY, 0), normal, math.NewVec2(maxU, minV))
			vertices[vOffset+2] = newVertex(math.NewVec3(minX, maxY, 0), normal, math.NewVec2(minU, minV))
			vertices[vOffset+3] = newVertex(math.NewVec3(maxX, minY, 0), normal, math.NewVec2(maxU, maxV))

			iOffset := ((y * xSegmentCount) + x) * 6
			indices[iOffset+0] = vOffset + 0
			indices[iOffset+1] = vOffset + 2
			indices[iOffset+2] = vOffset + 1
			indices[iOffset+3] = vOffset + 0
			indices[iOffset+4] = vOffset + 1
			indices[iOffset+5] = vOffset + 3
		}
	}
	math.GeometryGenerateTangents(vertices, indices)

	if len(name) == 0 {
		name = DefaultGeometryName
	}
	return metadata.NewGeometry(name, vertices, indices, nil)
}

// GenerateFullScreenQuad builds a 2x2 plane covering the whole clip space at
// the given depth, meant for vertex shaders that pass positions through.
func GenerateFullScreenQuad(name string, depth float32) *metadata.Geometry {
	g := GeneratePlane(2, 2, 1, 1, 1, 1, name)
	for i := range g.Vertices {
		g.Vertices[i].Position.Z = depth
	}
	g.UpdateExtents()
	return g
}

// GenerateTriangle builds a single triangle with red, green and blue corners.
func GenerateTriangle(name string) *metadata.Geometry {
	normal := math.NewVec3(0, 0, -1)
	vertices := []math.Vertex3D{
		newVertex(math.NewVec3(-0.5, 0, 0), normal, math.NewVec2(0, 1)),
		newVertex(math.NewVec3(0, 0.5, 0), normal, math.NewVec2(0.5, 0)),
		newVertex(math.NewVec3(0.5, 0, 0), normal, math.NewVec2(1, 1)),
	}
	vertices[0].Colour = math.NewVec4(1, 0, 0, 1)
	vertices[1].Colour = math.NewVec4(0, 1, 0, 1)
	vertices[2].Colour = math.NewVec4(0, 0, 1, 1)
	indices := []uint32{0, 1, 2}
	math.GeometryGenerateTangents(vertices, indices)
	return metadata.NewGeometry(name, vertices, indices, nil)
}

type cubeFace struct {
	normal math.Vec3
	up     math.Vec3
}

var cubeFaces = [6]cubeFace{
	{normal: math.NewVec3(0, 0, -1), up: math.NewVec3(0, 1, 0)},  // front
	{normal: math.NewVec3(0, 0, 1), up: math.NewVec3(0, 1, 0)},   // back
	{normal: math.NewVec3(-1, 0, 0), up: math.NewVec3(0, 1, 0)},  // left
	{normal: math.NewVec3(1, 0, 0), up: math.NewVec3(0, 1, 0)},   // right
	{normal: math.NewVec3(0, 1, 0), up: math.NewVec3(0, 0, 1)},   // top
	{normal: math.NewVec3(0, -1, 0), up: math.NewVec3(0, 0, -1)}, // bottom
}

/**
 * @brief Generates a cube centered on the origin with 4 vertices and 6
 * indices per side. Every face is wound clockwise seen from outside.
 *
 * @param width The width of the cube along x. Must be non-zero.
 * @param height The height of the cube along y. Must be non-zero.
 * @param depth The depth of the cube along z. Must be non-zero.
 * @param tileX The number of times the texture should tile across each face horizontally.
 * @param tileY The number of times the texture should tile across each face vertically.
 * @param name The name of the generated geometry.
 */
func GenerateCube(width, height, depth, tileX, tileY float32, name string) *metadata.Geometry {
	if width == 0 {
		core.LogWarn("Width must be nonzero. Defaulting to one.")
		width = 1.0
	}
	if height == 0 {
		core.LogWarn("Height must be nonzero. Defaulting to one.")
		height = 1.0
	}
	if depth == 0 {
		core.LogWarn("Depth must be nonzero. Defaulting to one.")
		depth = 1
	}
	if tileX == 0 {
		core.LogWarn("tileX must be nonzero. Defaulting to one.")
		tileX = 1.0
	}
	if tileY == 0 {
		core.LogWarn("tileY must be nonzero. Defaulting to one.")
		tileY = 1.0
	}

	size := math.NewVec3(width, height, depth)
	vertices := make([]math.Vertex3D, 0, 4*6)
	indices := make([]uint32, 0, 6*6)
	for _, face := range cubeFaces {
		// right as seen by a viewer looking at the face from outside
		right := face.up.Cross(face.normal.Negate())
		center := face.normal.MulScalar(0.5)

		corner := func(su, sv float32) math.Vec3 {
			p := center.Add(right.MulScalar(su * 0.5)).Add(face.up.MulScalar(sv * 0.5))
			return p.Mul(size)
		}

		base := uint32(len(vertices))
		vertices = append(vertices,
			newVertex(corner(-1, -1), face.normal, math.NewVec2(0, tileY)),
			newVertex(corner(-1, 1), face.normal, math.NewVec2(0, 0)),
			newVertex(corner(1, 1), face.normal, math.NewVec2(tileX, 0)),
			newVertex(corner(1, -1), face.normal, math.NewVec2(tileX, tileY)),
		)
		indices = append(indices, base+0, base+1, base+2, base+0, base+2, base+3)
	}
	math.GeometryGenerateTangents(vertices, indices)

	if len(name) == 0 {
		name = DefaultGeometryName
	}
	return metadata.NewGeometry(name, vertices, indices, nil)
}

func newVertex(position, normal math.Vec3, texcoord math.Vec2) math.Vertex3D {
	return math.Vertex3D{
		Position: position,
		Normal:   normal,
		Texcoord: texcoord,
		Colour:   math.NewVec4One(),
	}
}
