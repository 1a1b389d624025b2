package software

import "errors"

var (
	ErrNoPipelineState   = errors.New("no pipeline state bound")
	ErrIncompleteShaders = errors.New("pipeline state is missing a vertex or pixel shader")
	ErrNoRenderTarget    = errors.New("no render target bound")
	ErrNoVertexBuffer    = errors.New("no vertex buffer bound")
	ErrNoIndexBuffer     = errors.New("no index buffer bound")
	ErrIndexOutOfRange   = errors.New("index range exceeds the bound index buffer")
	ErrVertexOutOfRange  = errors.New("index references a vertex outside the bound vertex buffer")
	ErrInvalidViewport   = errors.New("viewport has no area")
	ErrDepthBufferSize   = errors.New("depth buffer is smaller than the render target")
	ErrInvalidSlot       = errors.New("slot index out of range")
	ErrTooManyTargets    = errors.New("too many auxiliary render targets")
)
