package metadata

/** @brief Pre-defined resource types. */
type ResourceType int

const (
	ResourceTypeNone ResourceType = iota
	/** @brief Image resource type, decoded pixels. */
	ResourceTypeImage
	/** @brief Texture resource type, an image turned into a Texture. */
	ResourceTypeTexture
	/** @brief Configuration file resource type. */
	ResourceTypeConfig
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeImage:
		return "image"
	case ResourceTypeTexture:
		return "texture"
	case ResourceTypeConfig:
		return "config"
	}
	return "none"
}

/**
 * @brief A generic structure for a resource loaded from disk. Data holds the
 * loader specific payload.
 */
type Resource struct {
	Name     string
	FullPath string
	Type     ResourceType
	/** @brief The size of the file on disk in bytes. */
	DataSize uint64
	Data     interface{}
}

/**
 * @brief Parameters used when loading an image.
 */
type ImageResourceParams struct {
	/** @brief Indicates if the image should be flipped on the y-axis when loaded. */
	FlipY bool
}

/**
 * @brief Decoded RGBA8 pixels, top row first.
 */
type ImageResourceData struct {
	ChannelCount uint8
	Width        uint32
	Height       uint32
	Pixels       []uint8
	/** @brief Set when any pixel has alpha below 255. */
	HasTransparency bool
}
