package buffer

import (
	"fmt"
	"image"
	"image/color"
)

// Image adapts a 4-channel byte buffer to draw.Image so the standard image
// tooling (font drawing, encoders) can read and write it in place.
type Image struct {
	fb *PixelBuffer[uint8]
}

func NewImage(fb *PixelBuffer[uint8]) (*Image, error) {
	if fb.Channels() != 4 {
		return nil, fmt.Errorf("%w: image view needs 4 channels, got %d", ErrInvalidChannels, fb.Channels())
	}
	return &Image{fb: fb}, nil
}

func (im *Image) ColorModel() color.Model {
	return color.RGBAModel
}

func (im *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.fb.Width(), im.fb.Height())
}

func (im *Image) At(x, y int) color.Color {
	if !im.fb.InBounds(x, y) {
		return color.RGBA{}
	}
	i := im.fb.offset(x, y)
	d := im.fb.data[i : i+4]
	if im.fb.order == OrderBGRA {
		return color.RGBA{R: d[2], G: d[1], B: d[0], A: d[3]}
	}
	return color.RGBA{R: d[0], G: d[1], B: d[2], A: d[3]}
}

func (im *Image) Set(x, y int, c color.Color) {
	if !im.fb.InBounds(x, y) {
		return
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	i := im.fb.offset(x, y)
	d := im.fb.data[i : i+4]
	if im.fb.order == OrderBGRA {
		d[0], d[1], d[2], d[3] = rgba.B, rgba.G, rgba.R, rgba.A
		return
	}
	d[0], d[1], d[2], d[3] = rgba.R, rgba.G, rgba.B, rgba.A
}

// CopyToRGBA converts a 4-channel byte buffer into dst, which must have the
// same size. Alpha is forced opaque.
func CopyToRGBA(fb *PixelBuffer[uint8], dst *image.RGBA) error {
	b := dst.Bounds()
	if fb.Channels() != 4 || b.Dx() != fb.Width() || b.Dy() != fb.Height() {
		return fmt.Errorf("%w: %dx%d buffer into %dx%d image", ErrShapeMismatch, fb.Width(), fb.Height(), b.Dx(), b.Dy())
	}
	fb.parallelRows(func(y int) {
		src := fb.Row(y)
		row := dst.Pix[y*dst.Stride : y*dst.Stride+fb.Width()*4]
		for i := 0; i < len(src); i += 4 {
			if fb.order == OrderBGRA {
				row[i], row[i+1], row[i+2] = src[i+2], src[i+1], src[i]
			} else {
				row[i], row[i+1], row[i+2] = src[i], src[i+1], src[i+2]
			}
			row[i+3] = 0xFF
		}
	})
	return nil
}
