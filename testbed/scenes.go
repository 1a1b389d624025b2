package testbed

import (
	"fmt"

	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/renderer/components"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
	"github.com/spaghettifunk/softraster/engine/renderer/shaders"
	"github.com/spaghettifunk/softraster/engine/systems"
)

const (
	SceneTriangle = "triangle"
	SceneCube     = "cube"
	SceneBoard    = "board"
	SceneQuad     = "quad"
	SceneLit      = "lit"
	SceneDepth    = "depth"

	boardTextureName = "board"
	crateTextureName = "crate"
)

// SceneNames lists the scenes in the order of their number keys.
var SceneNames = []string{SceneTriangle, SceneCube, SceneBoard, SceneQuad, SceneLit, SceneDepth}

// scene is one geometry drawn with one pipeline. Spin turns the object
// around the y axis, in radians per second. Zero clip planes keep the camera
// defaults.
type scene struct {
	name     string
	geometry *metadata.Geometry
	pipeline *metadata.PipelineState
	spin     float32
	near     float32
	far      float32
	textures []string
}

func (g *TestGame) buildScene(name string) (*scene, error) {
	gs := g.SystemManager.GeometrySystem
	ts := g.SystemManager.TextureSystem

	s := &scene{name: name}
	switch name {
	case SceneTriangle:
		s.geometry = systems.GenerateTriangle("testbed_triangle")
		s.pipeline = shaders.NewVertexColourPipeline()
	case SceneCube:
		s.geometry = systems.GenerateCube(1, 1, 1, 1, 1, "testbed_cube")
		s.pipeline = shaders.NewCheckerPipeline()
		s.spin = 0.5
	case SceneBoard:
		s.geometry = systems.GeneratePlane(2, 2, 4, 4, 2, 2, "testbed_board")
		s.pipeline = shaders.NewTexturedPipeline()
		tex, err := ts.Acquire(boardTextureName, true)
		if err != nil {
			return nil, err
		}
		s.textures = append(s.textures, boardTextureName)
		s.geometry.SubMeshes[0].Material = metadata.NewMaterial("board", tex, metadata.NewLinearSampler(metadata.AddressModeWrap))
	case SceneQuad:
		s.geometry = gs.Default2DGeometry
		s.pipeline = shaders.NewPalettePipeline()
	case SceneLit:
		s.geometry = systems.GenerateCube(1, 1, 1, 1, 1, "testbed_lit_cube")
		s.pipeline = shaders.NewLitPipeline()
		s.spin = 0.35
		tex, err := ts.Acquire(crateTextureName, true)
		if err != nil {
			return nil, err
		}
		s.textures = append(s.textures, crateTextureName)
		s.geometry.SubMeshes[0].Material = metadata.NewMaterial("crate", tex, metadata.NewLinearSampler(metadata.AddressModeClamp))
	case SceneDepth:
		s.geometry = systems.GenerateCube(1, 1, 1, 1, 1, "testbed_depth_cube")
		s.pipeline = shaders.NewDepthPipeline()
		s.spin = 0.5
		// tight planes spread the grey ramp over the cube
		s.near, s.far = 0.5, 5
	default:
		return nil, fmt.Errorf("unknown scene '%s'", name)
	}

	if s.geometry != gs.Default2DGeometry {
		geometry, err := gs.Register(s.geometry, true)
		if err != nil {
			return nil, err
		}
		s.geometry = geometry
	}
	core.LogDebug("scene '%s' ready (%d vertices, %d indices)", name, len(s.geometry.Vertices), len(s.geometry.Indices))
	return s, nil
}

func (g *TestGame) releaseScene(s *scene) {
	if s == nil {
		return
	}
	if s.geometry != g.SystemManager.GeometrySystem.Default2DGeometry {
		g.SystemManager.GeometrySystem.Release(s.geometry)
	}
	for _, name := range s.textures {
		g.SystemManager.TextureSystem.Release(name)
	}
}

func (s *scene) clipPlanes() (float32, float32) {
	if s.near <= 0 || s.far <= s.near {
		return components.DefaultNear, components.DefaultFar
	}
	return s.near, s.far
}
