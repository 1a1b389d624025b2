package loaders

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

type ImageLoader struct{}

/**
 * @brief Decodes png, jpeg, gif, bmp, tiff, webp or tga files into RGBA8 pixels.
 * @param params Optional *metadata.ImageResourceParams.
 */
func (il *ImageLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	flip := false
	if p, ok := params.(*metadata.ImageResourceParams); ok && p != nil {
		flip = p.FlipY
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	data := DecodeRGBA(img, flip)
	return &metadata.Resource{
		Name:     format,
		FullPath: path,
		Type:     metadata.ResourceTypeImage,
		DataSize: uint64(info.Size()),
		Data:     data,
	}, nil
}

func (il *ImageLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	return nil
}

// DecodeRGBA converts any decoded image to tightly packed RGBA8 pixels.
func DecodeRGBA(img image.Image, flipY bool) *metadata.ImageResourceData {
	b := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	width, height := b.Dx(), b.Dy()
	stride := width * 4
	pixels := make([]uint8, stride*height)
	for y := 0; y < height; y++ {
		srcY := y
		if flipY {
			srcY = height - 1 - y
		}
		copy(pixels[y*stride:(y+1)*stride], rgba.Pix[srcY*rgba.Stride:srcY*rgba.Stride+stride])
	}

	transparent := false
	for i := 3; i < len(pixels); i += 4 {
		if pixels[i] < 255 {
			transparent = true
			break
		}
	}

	return &metadata.ImageResourceData{
		ChannelCount:    4,
		Width:           uint32(width),
		Height:          uint32(height),
		Pixels:          pixels,
		HasTransparency: transparent,
	}
}
