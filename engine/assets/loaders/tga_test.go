package loaders

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tgaFile(imageType, depth, descriptor byte, width, height int, pixels ...byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(width), byte(width>>8)
	hdr[14], hdr[15] = byte(height), byte(height>>8)
	hdr[16] = depth
	hdr[17] = descriptor
	return append(hdr, pixels...)
}

var (
	red   = color.NRGBA{R: 0xff, A: 0xff}
	green = color.NRGBA{G: 0xff, A: 0xff}
	blue  = color.NRGBA{B: 0xff, A: 0xff}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func TestDecodeTGABottomUp(t *testing.T) {
	data := tgaFile(tgaTrueColor, 24, 0, 2, 2,
		// bottom row first, blue green red order
		0xff, 0x00, 0x00, 0xff, 0xff, 0xff,
		0x00, 0x00, 0xff, 0x00, 0xff, 0x00,
	)
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "tga", format)

	assert.Equal(t, red, img.At(0, 0))
	assert.Equal(t, green, img.At(1, 0))
	assert.Equal(t, blue, img.At(0, 1))
	assert.Equal(t, white, img.At(1, 1))
}

func TestDecodeTGARunLength(t *testing.T) {
	data := tgaFile(tgaTrueColorRLE, 32, tgaTopToBottom, 3, 1,
		0x81, 0x00, 0x00, 0xff, 0x80, // two half transparent red pixels
		0x00, 0x00, 0xff, 0x00, 0xff, // one literal green pixel
	)
	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	half := color.NRGBA{R: 0xff, A: 0x80}
	assert.Equal(t, half, img.At(0, 0))
	assert.Equal(t, half, img.At(1, 0))
	assert.Equal(t, green, img.At(2, 0))
}

func TestDecodeTGAGreyRightToLeft(t *testing.T) {
	data := tgaFile(tgaGray, 8, tgaTopToBottom|tgaRightToLeft, 2, 1, 0x10, 0x20)
	img, err := decodeTGA(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, color.Gray{Y: 0x20}, img.At(0, 0))
	assert.Equal(t, color.Gray{Y: 0x10}, img.At(1, 0))

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "tga", format)
	assert.Equal(t, 2, cfg.Width)
	assert.Equal(t, color.GrayModel, cfg.ColorModel)
}

func TestDecodeTGARejectsBadInput(t *testing.T) {
	_, err := decodeTGA(bytes.NewReader(tgaFile(tgaTrueColor, 16, 0, 1, 1, 0, 0)))
	assert.ErrorIs(t, err, ErrUnsupportedTGA)

	// run longer than the image
	_, err = decodeTGA(bytes.NewReader(tgaFile(tgaGrayRLE, 8, 0, 2, 1, 0x82, 0x00)))
	assert.ErrorIs(t, err, ErrUnsupportedTGA)

	// truncated pixel data
	_, err = decodeTGA(bytes.NewReader(tgaFile(tgaTrueColor, 24, 0, 2, 1, 0x00)))
	assert.Error(t, err)
}

func TestImageLoaderLoadsTGA(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tile.tga")
	data := tgaFile(tgaTrueColor, 24, tgaTopToBottom, 1, 1, 0x00, 0xff, 0x00)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	il := &ImageLoader{}
	res, err := il.Load(path, metadata.ResourceTypeImage, nil)
	require.NoError(t, err)
	assert.Equal(t, "tga", res.Name)

	img, ok := res.Data.(*metadata.ImageResourceData)
	require.True(t, ok)
	assert.Equal(t, uint32(1), img.Width)
	assert.Equal(t, []uint8{0x00, 0xff, 0x00, 0xff}, img.Pixels)
	assert.False(t, img.HasTransparency)
}
