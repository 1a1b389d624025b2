package metadata

import "github.com/spaghettifunk/softraster/engine/math"

/**
 * @brief Maps normalized device coordinates to render target pixels.
 */
type Viewport struct {
	TopLeftX float32
	TopLeftY float32
	Width    float32
	Height   float32
	MinDepth float32
	MaxDepth float32
}

// NewViewport covers a width x height target with the full [0, 1] depth range.
func NewViewport(width, height uint32) Viewport {
	return Viewport{
		Width:    float32(width),
		Height:   float32(height),
		MinDepth: 0,
		MaxDepth: 1,
	}
}

// ToScreen maps an NDC position to screen space. NDC y=+1 is the top row and
// NDC z in [0, 1] spans [MinDepth, MaxDepth].
func (vp *Viewport) ToScreen(ndc math.Vec3) math.Vec3 {
	return math.Vec3{
		X: (ndc.X+1.0)*0.5*vp.Width + vp.TopLeftX,
		Y: (1.0-ndc.Y)*0.5*vp.Height + vp.TopLeftY,
		Z: vp.MinDepth + ndc.Z*(vp.MaxDepth-vp.MinDepth),
	}
}
