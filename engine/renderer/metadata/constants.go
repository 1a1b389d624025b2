package metadata

import "github.com/spaghettifunk/softraster/engine/math"

const (
	/** @brief Number of constant buffer slots bindable on a graphics context. */
	MaxConstantBufferSlots = 10
	/** @brief Number of texture (shader resource) slots. */
	MaxShaderResourceSlots = 10
	/** @brief Number of sampler slots. */
	MaxSamplerSlots = 10
	/** @brief Number of colour targets bindable next to the primary one. */
	MaxAuxiliaryTargets = 8
	/** @brief Constant buffer slot holding the *Material of the sub-mesh being drawn. */
	MaterialConstantSlot = MaxConstantBufferSlots - 1
)

/** @brief The default texture name. */
const DEFAULT_TEXTURE_NAME string = "default"

/** @brief A normalized RGBA colour. */
type Color = math.Vec4

// ConstantBuffers are opaque per-draw values handed to both shader stages.
// Shaders type-assert the slots they expect.
type ConstantBuffers [MaxConstantBufferSlots]interface{}

// ShaderResources are the textures visible to the pixel stage.
type ShaderResources [MaxShaderResourceSlots]*Texture

// Samplers are the sampler states visible to the pixel stage.
type Samplers [MaxSamplerSlots]*SamplerState
