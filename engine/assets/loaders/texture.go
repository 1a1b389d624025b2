package loaders

import (
	"path/filepath"
	"strings"

	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

type TextureLoader struct {
	images ImageLoader
}

// Load decodes the image at path into a *metadata.Texture named after the
// file without its extension.
func (tl *TextureLoader) Load(path string, assetType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	res, err := tl.images.Load(path, metadata.ResourceTypeImage, params)
	if err != nil {
		return nil, err
	}
	img := res.Data.(*metadata.ImageResourceData)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	texture, err := metadata.NewTextureFromPixels(name, img.Width, img.Height, img.ChannelCount, img.Pixels)
	if err != nil {
		return nil, err
	}
	if img.HasTransparency {
		texture.Flags |= metadata.TextureFlagHasTransparency
	}

	res.Name = name
	res.Type = metadata.ResourceTypeTexture
	res.Data = texture
	return res, nil
}

func (tl *TextureLoader) Unload(res *metadata.Resource) error {
	res.Data = nil
	return nil
}
