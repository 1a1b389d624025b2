package buffer

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/math"
)

// Element is the storage type of a pixel buffer channel.
type Element interface {
	~uint8 | ~float32
}

// ChannelOrder tells SetColor and Color how colour components are laid out.
type ChannelOrder int

const (
	OrderRGBA ChannelOrder = iota
	OrderBGRA
)

/**
 * @brief A 2D array of pixels with a fixed channel count, stored row-major.
 * Byte buffers scale normalized colours by 255; float buffers store them as is.
 */
type PixelBuffer[T Element] struct {
	width    int
	height   int
	channels int
	order    ChannelOrder
	scale    float32
	owned    bool
	data     []T
}

// NewPixelBuffer allocates a zero-initialized buffer.
func NewPixelBuffer[T Element](width, height, channels int, order ChannelOrder) (*PixelBuffer[T], error) {
	if err := validate(width, height, channels); err != nil {
		return nil, err
	}
	p := newHeader[T](width, height, channels, order)
	p.data = make([]T, width*height*channels)
	p.owned = true
	return p, nil
}

// WrapPixelBuffer creates a view over externally owned memory. data must
// hold exactly width*height*channels elements.
func WrapPixelBuffer[T Element](width, height, channels int, order ChannelOrder, data []T) (*PixelBuffer[T], error) {
	if err := validate(width, height, channels); err != nil {
		return nil, err
	}
	if want := width * height * channels; len(data) != want {
		core.LogError("wrapped pixel memory has %d elements, want %d", len(data), want)
		return nil, fmt.Errorf("%w: got %d, want %d", ErrWrappedSize, len(data), want)
	}
	p := newHeader[T](width, height, channels, order)
	p.data = data
	return p, nil
}

func validate(width, height, channels int) error {
	if width <= 0 || height <= 0 {
		core.LogError("pixel buffer has invalid size %dx%d", width, height)
		return fmt.Errorf("%w: %dx%d", core.ErrInvalidDimensions, width, height)
	}
	if channels <= 0 || channels > 4 {
		core.LogError("pixel buffer has invalid channel count %d", channels)
		return fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	return nil
}

func newHeader[T Element](width, height, channels int, order ChannelOrder) *PixelBuffer[T] {
	var zero T
	scale := float32(1.0)
	if _, ok := any(zero).(uint8); ok {
		scale = 255.0
	}
	return &PixelBuffer[T]{
		width:    width,
		height:   height,
		channels: channels,
		order:    order,
		scale:    scale,
	}
}

func (p *PixelBuffer[T]) Width() int { return p.width }

func (p *PixelBuffer[T]) Height() int { return p.height }

func (p *PixelBuffer[T]) Channels() int { return p.channels }

func (p *PixelBuffer[T]) Order() ChannelOrder { return p.order }

// Owned is false for buffers wrapping external memory.
func (p *PixelBuffer[T]) Owned() bool { return p.owned }

// Data exposes the backing storage.
func (p *PixelBuffer[T]) Data() []T { return p.data }

func (p *PixelBuffer[T]) Size() int { return len(p.data) }

// RowStride is the number of elements in one row.
func (p *PixelBuffer[T]) RowStride() int { return p.width * p.channels }

// Row returns the elements of row y.
func (p *PixelBuffer[T]) Row(y int) []T {
	return p.data[y*p.RowStride() : (y+1)*p.RowStride()]
}

func (p *PixelBuffer[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < p.width && y < p.height
}

func (p *PixelBuffer[T]) offset(x, y int) int {
	p.check(x, y)
	return (y*p.width + x) * p.channels
}

func (p *PixelBuffer[T]) check(x, y int) {
	if debugChecks && !p.InBounds(x, y) {
		panic(fmt.Sprintf("pixel (%d,%d) out of range %dx%d", x, y, p.width, p.height))
	}
}

// Value returns channel 0 of the pixel at (x, y).
func (p *PixelBuffer[T]) Value(x, y int) T {
	return p.data[p.offset(x, y)]
}

// SetValue stores v in channel 0 of the pixel at (x, y).
func (p *PixelBuffer[T]) SetValue(x, y int, v T) {
	p.data[p.offset(x, y)] = v
}

func (p *PixelBuffer[T]) toElement(f float32) T {
	f = math.Saturate(f)
	if p.scale != 1.0 {
		return T(f*p.scale + 0.5)
	}
	return T(f)
}

func (p *PixelBuffer[T]) fromElement(v T) float32 {
	return float32(v) / p.scale
}

// SetColorRGB stores c with red in channel 0. Components are clamped to [0, 1].
func (p *PixelBuffer[T]) SetColorRGB(x, y int, c math.Vec4) {
	i := p.offset(x, y)
	p.writeColor(i, c.X, c.Y, c.Z, c.W)
}

// SetColorBGR stores c with blue in channel 0. Components are clamped to [0, 1].
func (p *PixelBuffer[T]) SetColorBGR(x, y int, c math.Vec4) {
	i := p.offset(x, y)
	p.writeColor(i, c.Z, c.Y, c.X, c.W)
}

func (p *PixelBuffer[T]) writeColor(i int, c0, c1, c2, c3 float32) {
	d := p.data[i : i+p.channels]
	switch p.channels {
	case 4:
		d[3] = p.toElement(c3)
		fallthrough
	case 3:
		d[2] = p.toElement(c2)
		fallthrough
	case 2:
		d[1] = p.toElement(c1)
		fallthrough
	default:
		d[0] = p.toElement(c0)
	}
}

// SetColor stores c following the buffer's channel order.
func (p *PixelBuffer[T]) SetColor(x, y int, c math.Vec4) {
	if p.order == OrderBGRA {
		p.SetColorBGR(x, y, c)
		return
	}
	p.SetColorRGB(x, y, c)
}

// Color reads the pixel back as a normalized RGBA colour following the
// buffer's channel order. Missing channels read as 0, missing alpha as 1.
func (p *PixelBuffer[T]) Color(x, y int) math.Vec4 {
	i := p.offset(x, y)
	var ch [4]float32
	ch[3] = 1.0
	for c := 0; c < p.channels; c++ {
		ch[c] = p.fromElement(p.data[i+c])
	}
	if p.order == OrderBGRA {
		return math.NewVec4(ch[2], ch[1], ch[0], ch[3])
	}
	return math.NewVec4(ch[0], ch[1], ch[2], ch[3])
}

// Clear fills every pixel with c. Rows are filled in parallel with no
// ordering between them.
func (p *PixelBuffer[T]) Clear(c math.Vec4) {
	var px [4]T
	if p.order == OrderBGRA {
		c = math.NewVec4(c.Z, c.Y, c.X, c.W)
	}
	px[0], px[1], px[2], px[3] = p.toElement(c.X), p.toElement(c.Y), p.toElement(c.Z), p.toElement(c.W)
	p.fill(px[:p.channels])
}

// ClearValue stores v in channel 0 of every pixel. Other channels are left
// untouched.
func (p *PixelBuffer[T]) ClearValue(v T) {
	p.parallelRows(func(y int) {
		row := p.Row(y)
		for i := 0; i < len(row); i += p.channels {
			row[i] = v
		}
	})
}

func (p *PixelBuffer[T]) fill(px []T) {
	p.parallelRows(func(y int) {
		row := p.Row(y)
		// seed the first pixel and double the filled span
		n := copy(row, px)
		for n < len(row) {
			n += copy(row[n:], row[:n])
		}
	})
}

// parallelRows runs fn for every row, splitting rows in bands across CPUs.
func (p *PixelBuffer[T]) parallelRows(fn func(y int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > p.height {
		workers = p.height
	}
	band := (p.height + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < p.height; start += band {
		start, end := start, min(start+band, p.height)
		g.Go(func() error {
			for y := start; y < end; y++ {
				fn(y)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// CopyFrom copies the pixels of src, which must have the same shape.
func (p *PixelBuffer[T]) CopyFrom(src *PixelBuffer[T]) error {
	if src.width != p.width || src.height != p.height || src.channels != p.channels {
		return fmt.Errorf("%w: %dx%dx%d into %dx%dx%d", ErrShapeMismatch,
			src.width, src.height, src.channels, p.width, p.height, p.channels)
	}
	copy(p.data, src.data)
	return nil
}
