package buffer

// FrameBuffer is a 4-channel byte target in BGRA order, the layout expected
// by presentation surfaces.
type FrameBuffer = PixelBuffer[uint8]

// ColorBuffer is a 4-channel float target in RGBA order.
type ColorBuffer = PixelBuffer[float32]

// DepthBuffer is a 1-channel float target.
type DepthBuffer = PixelBuffer[float32]

// StencilBuffer is a 1-channel byte target. No pipeline stage reads it.
type StencilBuffer = PixelBuffer[uint8]

func NewFrameBuffer(width, height int) (*FrameBuffer, error) {
	return NewPixelBuffer[uint8](width, height, 4, OrderBGRA)
}

// WrapFrameBuffer renders straight into memory owned by the presentation layer.
func WrapFrameBuffer(width, height int, memory []uint8) (*FrameBuffer, error) {
	return WrapPixelBuffer(width, height, 4, OrderBGRA, memory)
}

func NewColorBuffer(width, height int) (*ColorBuffer, error) {
	return NewPixelBuffer[float32](width, height, 4, OrderRGBA)
}

func NewDepthBuffer(width, height int) (*DepthBuffer, error) {
	return NewPixelBuffer[float32](width, height, 1, OrderRGBA)
}

func NewStencilBuffer(width, height int) (*StencilBuffer, error) {
	return NewPixelBuffer[uint8](width, height, 1, OrderRGBA)
}
