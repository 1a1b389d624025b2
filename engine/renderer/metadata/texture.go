package metadata

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/math"
)

type TextureFlag uint8

const (
	/** @brief Indicates if the texture has transparency. */
	TextureFlagHasTransparency TextureFlag = 0x1
	/** @brief Indicates the texture was generated in code rather than loaded. */
	TextureFlagIsGenerated TextureFlag = 0x2
)

/**
 * @brief Represents a decoded texture. Pixels are stored row-major, top row
 * first, ChannelCount bytes per pixel.
 */
type Texture struct {
	/** @brief The unique texture identifier. */
	ID uint32
	/** @brief The texture Name. */
	Name string
	/** @brief The texture Width. */
	Width uint32
	/** @brief The texture Height. */
	Height uint32
	/** @brief The number of channels in the texture, 1 to 4. */
	ChannelCount uint8
	/** @brief Holds various Flags for this texture. */
	Flags TextureFlag
	/** @brief The texture Generation. Incremented every time the data is reloaded. */
	Generation uint32
	/** @brief The raw texture data (pixels). */
	Data []uint8
}

// NewTexture allocates a zeroed texture. An empty name is replaced by a
// generated one.
func NewTexture(name string, width, height uint32, channels uint8) (*Texture, error) {
	return NewTextureFromPixels(name, width, height, channels, make([]uint8, int(width)*int(height)*int(channels)))
}

// NewTextureFromPixels wraps pixels without copying them.
func NewTextureFromPixels(name string, width, height uint32, channels uint8, pixels []uint8) (*Texture, error) {
	if width == 0 || height == 0 {
		core.LogError("texture '%s' has invalid size %dx%d", name, width, height)
		return nil, core.ErrInvalidDimensions
	}
	if channels == 0 || channels > 4 {
		return nil, fmt.Errorf("texture '%s': %w: %d", name, ErrInvalidChannelCount, channels)
	}
	if want := int(width) * int(height) * int(channels); len(pixels) != want {
		return nil, fmt.Errorf("texture '%s': %w: got %d bytes, want %d", name, ErrPixelDataSize, len(pixels), want)
	}
	if name == "" {
		name = uuid.NewString()
	}
	t := &Texture{
		Name:         name,
		Width:        width,
		Height:       height,
		ChannelCount: channels,
		Data:         pixels,
	}
	if channels == 4 {
		for i := 3; i < len(pixels); i += 4 {
			if pixels[i] < 255 {
				t.Flags |= TextureFlagHasTransparency
				break
			}
		}
	}
	return t, nil
}

// NewCheckerboardTexture generates a size x size RGBA texture of alternating
// cells of cellSize pixels.
func NewCheckerboardTexture(name string, size, cellSize uint32, a, b Color) (*Texture, error) {
	t, err := NewTexture(name, size, size, 4)
	if err != nil {
		return nil, err
	}
	if cellSize == 0 {
		cellSize = 1
	}
	for y := uint32(0); y < size; y++ {
		for x := uint32(0); x < size; x++ {
			if ((x/cellSize)+(y/cellSize))%2 == 0 {
				t.SetColor(int(x), int(y), a)
			} else {
				t.SetColor(int(x), int(y), b)
			}
		}
	}
	t.Flags |= TextureFlagIsGenerated
	return t, nil
}

func (t *Texture) offset(x, y int) int {
	if debugChecks && (x < 0 || y < 0 || x >= int(t.Width) || y >= int(t.Height)) {
		panic(fmt.Sprintf("texture '%s': pixel (%d,%d) out of range %dx%d", t.Name, x, y, t.Width, t.Height))
	}
	return (y*int(t.Width) + x) * int(t.ChannelCount)
}

// RawValue returns the pixel as RGBA bytes. Grey textures replicate their
// first channel and missing alpha reads as 255.
func (t *Texture) RawValue(x, y int) [4]uint8 {
	i := t.offset(x, y)
	d := t.Data
	switch t.ChannelCount {
	case 1:
		return [4]uint8{d[i], d[i], d[i], 255}
	case 2:
		return [4]uint8{d[i], d[i], d[i], d[i+1]}
	case 3:
		return [4]uint8{d[i], d[i+1], d[i+2], 255}
	default:
		return [4]uint8{d[i], d[i+1], d[i+2], d[i+3]}
	}
}

// SetRawValue stores as many channels of v as the texture holds.
func (t *Texture) SetRawValue(x, y int, v [4]uint8) {
	i := t.offset(x, y)
	switch t.ChannelCount {
	case 1:
		t.Data[i] = v[0]
	case 2:
		t.Data[i] = v[0]
		t.Data[i+1] = v[3]
	default:
		copy(t.Data[i:i+int(t.ChannelCount)], v[:t.ChannelCount])
	}
}

// Color returns the pixel normalized to [0, 1].
func (t *Texture) Color(x, y int) Color {
	raw := t.RawValue(x, y)
	return math.NewVec4(
		float32(raw[0])/255.0,
		float32(raw[1])/255.0,
		float32(raw[2])/255.0,
		float32(raw[3])/255.0,
	)
}

// SetColor clamps c to [0, 1] and stores it scaled by 255.
func (t *Texture) SetColor(x, y int, c Color) {
	c = c.Saturate()
	t.SetRawValue(x, y, [4]uint8{
		unorm8(c.X),
		unorm8(c.Y),
		unorm8(c.Z),
		unorm8(c.W),
	})
}

// FlipVertical swaps rows so the bottom row becomes the first.
func (t *Texture) FlipVertical() {
	stride := int(t.Width) * int(t.ChannelCount)
	tmp := make([]uint8, stride)
	for top, bottom := 0, int(t.Height)-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := t.Data[top*stride : (top+1)*stride]
		b := t.Data[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// Replace takes over the pixels of other and bumps the generation. The name
// and id are kept so bound references stay valid.
func (t *Texture) Replace(other *Texture) {
	t.Width = other.Width
	t.Height = other.Height
	t.ChannelCount = other.ChannelCount
	t.Flags = other.Flags
	t.Data = other.Data
	t.Generation++
}

func unorm8(f float32) uint8 {
	return uint8(f*255.0 + 0.5)
}
