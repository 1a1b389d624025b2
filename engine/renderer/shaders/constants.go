package shaders

import (
	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

// Constant buffer slots the built-in shaders read.
const (
	SceneSlot  = 0
	ObjectSlot = 1
)

/**
 * @brief Per-frame values shared by every draw.
 */
type SceneConstants struct {
	View           math.Mat4
	Projection     math.Mat4
	ViewProjection math.Mat4
	CameraPosition math.Vec3
	/** @brief Seconds since the application started. */
	Time float32
	/** @brief Render target size in pixels. */
	Resolution math.Vec2
	/** @brief Cursor position in pixels, origin at the top left. */
	Mouse math.Vec2
	/** @brief Direction the light travels in, world space. */
	LightDirection math.Vec3
	LightColour    math.Vec4
	AmbientColour  math.Vec4
}

// NewSceneConstants returns identity transforms and a white light shining
// down and away from the viewer.
func NewSceneConstants() *SceneConstants {
	return &SceneConstants{
		View:           math.NewMat4Identity(),
		Projection:     math.NewMat4Identity(),
		ViewProjection: math.NewMat4Identity(),
		LightDirection: math.NewVec3(-0.4, -0.8, 0.5).Normalized(),
		LightColour:    math.NewVec4One(),
		AmbientColour:  math.NewVec4(0.15, 0.15, 0.15, 1),
	}
}

/**
 * @brief Per-object values.
 */
type ObjectConstants struct {
	Model math.Mat4
	/** @brief Multiplied into the shaded colour. */
	Tint math.Vec4
}

func NewObjectConstants(model math.Mat4) *ObjectConstants {
	return &ObjectConstants{
		Model: model,
		Tint:  math.NewVec4One(),
	}
}

var (
	defaultScene  = NewSceneConstants()
	defaultObject = NewObjectConstants(math.NewMat4Identity())
)

func scene(cb *metadata.ConstantBuffers) *SceneConstants {
	if s, ok := cb[SceneSlot].(*SceneConstants); ok && s != nil {
		return s
	}
	return defaultScene
}

func object(cb *metadata.ConstantBuffers) *ObjectConstants {
	if o, ok := cb[ObjectSlot].(*ObjectConstants); ok && o != nil {
		return o
	}
	return defaultObject
}

// diffuse is the bound material's diffuse colour, white without a material.
func diffuse(cb *metadata.ConstantBuffers) math.Vec4 {
	if m, ok := cb[metadata.MaterialConstantSlot].(*metadata.Material); ok && m != nil {
		return m.DiffuseColour
	}
	return math.NewVec4One()
}

// Bind stores the scene and object constants in their slots.
func Bind(cb *metadata.ConstantBuffers, s *SceneConstants, o *ObjectConstants) {
	cb[SceneSlot] = s
	cb[ObjectSlot] = o
}
