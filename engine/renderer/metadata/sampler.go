package metadata

import (
	"github.com/chewxy/math32"
	"github.com/spaghettifunk/softraster/engine/math"
)

/** @brief Represents supported texture filtering modes. */
type TextureFilter int

const (
	/** @brief Bilinear minification and magnification, single mip level. */
	FilterMinMagLinearMipPoint TextureFilter = iota
)

/** @brief How texture coordinates outside [0, 1] are resolved. */
type AddressMode int

const (
	/** @brief Tile the texture. */
	AddressModeWrap AddressMode = iota
	/** @brief Tile the texture, flipping every other repetition. */
	AddressModeMirror
	/** @brief Clamp to the edge texels. */
	AddressModeClamp
	/** @brief Outside [0, 1] the sampler returns its border colour. */
	AddressModeBorder
	/** @brief Mirror once around zero, then clamp. */
	AddressModeMirrorOnce
)

func (m AddressMode) String() string {
	switch m {
	case AddressModeWrap:
		return "wrap"
	case AddressModeMirror:
		return "mirror"
	case AddressModeClamp:
		return "clamp"
	case AddressModeBorder:
		return "border"
	case AddressModeMirrorOnce:
		return "mirror_once"
	}
	return "unknown"
}

/**
 * @brief Describes how a texture is read. Sampler states are plain values
 * referenced by slot at draw time.
 */
type SamplerState struct {
	Filter      TextureFilter
	AddressU    AddressMode
	AddressV    AddressMode
	BorderColor Color
}

// NewLinearSampler returns a bilinear sampler using mode on both axes.
func NewLinearSampler(mode AddressMode) *SamplerState {
	return &SamplerState{
		Filter:   FilterMinMagLinearMipPoint,
		AddressU: mode,
		AddressV: mode,
	}
}

// Resolve maps a texture coordinate into [0, 1]. The second result is false
// when border addressing puts the coordinate out of range.
func (m AddressMode) Resolve(coord float32) (float32, bool) {
	switch m {
	case AddressModeWrap:
		f := math32.Mod(coord, 1.0)
		if f < 0 {
			f += 1.0
		}
		return f, true
	case AddressModeMirror:
		f := math32.Mod(coord, 2.0)
		if f < 0 {
			f += 2.0
		}
		if f > 1.0 {
			f = 2.0 - f
		}
		return f, true
	case AddressModeClamp:
		return math.Saturate(coord), true
	case AddressModeBorder:
		if coord < 0 || coord > 1 {
			return 0, false
		}
		return coord, true
	case AddressModeMirrorOnce:
		return math.Saturate(math32.Abs(coord)), true
	}
	return coord, true
}

// texel resolves an integer texel index against a texture dimension. It is
// used for the filter taps that step one texel past an edge.
func (m AddressMode) texel(i, size int) int {
	switch m {
	case AddressModeWrap:
		i %= size
		if i < 0 {
			i += size
		}
		return i
	case AddressModeMirror:
		period := 2 * size
		i %= period
		if i < 0 {
			i += period
		}
		if i >= size {
			i = period - 1 - i
		}
		return i
	case AddressModeMirrorOnce:
		if i < 0 {
			i = -i - 1
		}
	}
	return math.Clamp(i, 0, size-1)
}

/**
 * @brief Samples the texture with bilinear filtering. Texel centres sit at
 * half-integer coordinates. level is accepted for interface parity and
 * ignored since textures carry a single mip level.
 *
 * @param s The sampler state to use.
 * @param uv The texture coordinate.
 * @param level The mip level.
 * @return The filtered colour.
 */
func (t *Texture) SampleLevel(s *SamplerState, uv math.Vec2, level uint32) Color {
	_ = level

	u, okU := s.AddressU.Resolve(uv.X)
	v, okV := s.AddressV.Resolve(uv.Y)
	if !okU || !okV {
		return s.BorderColor
	}

	w := int(t.Width)
	h := int(t.Height)

	px := u*float32(w) - 0.5
	py := v*float32(h) - 0.5
	fx := math32.Floor(px)
	fy := math32.Floor(py)
	alpha := px - fx
	beta := py - fy

	x0 := s.AddressU.texel(int(fx), w)
	x1 := s.AddressU.texel(int(fx)+1, w)
	y0 := s.AddressV.texel(int(fy), h)
	y1 := s.AddressV.texel(int(fy)+1, h)

	top := t.Color(x0, y0).Lerp(t.Color(x1, y0), alpha)
	bottom := t.Color(x0, y1).Lerp(t.Color(x1, y1), alpha)
	return top.Lerp(bottom, beta)
}
