package software

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/math"
	"github.com/spaghettifunk/softraster/engine/renderer/buffer"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

// rowLockStripes is the number of mutexes guarding render target rows while
// faces are rasterized in parallel. Row y is guarded by stripe y%rowLockStripes.
const rowLockStripes = 64

// RenderTarget is a colour surface the pipeline writes into. Both
// buffer.FrameBuffer and buffer.ColorBuffer satisfy it. Draws and clears go
// through the target's own channel order, so a FrameBuffer ends up BGRA.
type RenderTarget interface {
	Width() int
	Height() int
	// SetColor writes c in the target's own channel order.
	SetColor(x, y int, c math.Vec4)
	Clear(c math.Vec4)
}

// Dispatcher runs fn(i) for every i in [0, count) and returns when all calls
// completed. Calls may run concurrently.
type Dispatcher interface {
	ParallelFor(count int, fn func(i int))
}

/**
 * @brief The state a draw call reads: render targets, vertex and index
 * buffers, constant buffers, texture and sampler slots, pipeline state and
 * viewport. The context does not own anything bound to it; bindings must
 * stay valid until the draw using them returns.
 *
 * Binding and drawing must happen on one goroutine. A draw fans its faces
 * out through the Dispatcher when one is set.
 */
type GraphicsContext struct {
	renderTarget  RenderTarget
	auxTargets    [metadata.MaxAuxiliaryTargets]RenderTarget
	depthBuffer   *buffer.DepthBuffer
	stencilBuffer *buffer.StencilBuffer

	vertexBuffer []math.Vertex3D
	indexBuffer  []uint32

	constantBuffers metadata.ConstantBuffers
	shaderResources metadata.ShaderResources
	samplers        metadata.Samplers

	pipeline *metadata.PipelineState
	viewport metadata.Viewport

	dispatcher Dispatcher
	rowLocks   [rowLockStripes]sync.Mutex
}

func NewGraphicsContext() *GraphicsContext {
	return &GraphicsContext{}
}

/**
 * @brief Binds the primary colour target, the depth buffer and up to
 * MaxAuxiliaryTargets auxiliary colour targets. A nil depth buffer disables
 * depth testing.
 */
func (gc *GraphicsContext) SetRenderTargets(primary RenderTarget, depth *buffer.DepthBuffer, aux ...RenderTarget) error {
	if len(aux) > metadata.MaxAuxiliaryTargets {
		err := fmt.Errorf("%w: %d bound, at most %d allowed", ErrTooManyTargets, len(aux), metadata.MaxAuxiliaryTargets)
		core.LogError(err.Error())
		return err
	}
	gc.renderTarget = primary
	gc.depthBuffer = depth
	gc.auxTargets = [metadata.MaxAuxiliaryTargets]RenderTarget{}
	copy(gc.auxTargets[:], aux)
	return nil
}

// SetStencilBuffer binds a stencil target. It is cleared with the others but
// never tested.
func (gc *GraphicsContext) SetStencilBuffer(sb *buffer.StencilBuffer) {
	gc.stencilBuffer = sb
}

func (gc *GraphicsContext) SetVertexBuffer(vertices []math.Vertex3D) {
	gc.vertexBuffer = vertices
}

func (gc *GraphicsContext) SetIndexBuffer(indices []uint32) {
	gc.indexBuffer = indices
}

func (gc *GraphicsContext) SetConstantBuffer(slot int, cb interface{}) error {
	if slot < 0 || slot >= metadata.MaxConstantBufferSlots {
		return slotError("constant buffer", slot)
	}
	gc.constantBuffers[slot] = cb
	return nil
}

func (gc *GraphicsContext) SetShaderResource(slot int, texture *metadata.Texture) error {
	if slot < 0 || slot >= metadata.MaxShaderResourceSlots {
		return slotError("shader resource", slot)
	}
	gc.shaderResources[slot] = texture
	return nil
}

func (gc *GraphicsContext) SetSampler(slot int, sampler *metadata.SamplerState) error {
	if slot < 0 || slot >= metadata.MaxSamplerSlots {
		return slotError("sampler", slot)
	}
	gc.samplers[slot] = sampler
	return nil
}

func (gc *GraphicsContext) SetPipelineState(pipeline *metadata.PipelineState) {
	gc.pipeline = pipeline
}

func (gc *GraphicsContext) SetViewport(vp metadata.Viewport) {
	gc.viewport = vp
}

func (gc *GraphicsContext) Viewport() metadata.Viewport {
	return gc.viewport
}

// SetDispatcher sets where faces are rasterized. nil draws on the calling
// goroutine.
func (gc *GraphicsContext) SetDispatcher(d Dispatcher) {
	gc.dispatcher = d
}

// ClearState unbinds everything except the dispatcher.
func (gc *GraphicsContext) ClearState() {
	gc.renderTarget = nil
	gc.auxTargets = [metadata.MaxAuxiliaryTargets]RenderTarget{}
	gc.depthBuffer = nil
	gc.stencilBuffer = nil
	gc.vertexBuffer = nil
	gc.indexBuffer = nil
	gc.constantBuffers = metadata.ConstantBuffers{}
	gc.shaderResources = metadata.ShaderResources{}
	gc.samplers = metadata.Samplers{}
	gc.pipeline = nil
	gc.viewport = metadata.Viewport{}
}

// ClearColor fills every pixel of target with c.
func (gc *GraphicsContext) ClearColor(target RenderTarget, c metadata.Color) {
	if target == nil {
		return
	}
	target.Clear(c)
}

// ClearDepth fills the depth buffer with value.
func (gc *GraphicsContext) ClearDepth(db *buffer.DepthBuffer, value float32) {
	if db == nil {
		return
	}
	db.ClearValue(value)
}

func (gc *GraphicsContext) ClearStencil(sb *buffer.StencilBuffer, value uint8) {
	if sb == nil {
		return
	}
	sb.ClearValue(value)
}

func slotError(kind string, slot int) error {
	err := fmt.Errorf("%w: %s slot %d", ErrInvalidSlot, kind, slot)
	core.LogError(err.Error())
	return err
}
