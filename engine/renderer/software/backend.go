package software

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/softraster/engine/core"
	"github.com/spaghettifunk/softraster/engine/renderer"
	"github.com/spaghettifunk/softraster/engine/renderer/buffer"
	"github.com/spaghettifunk/softraster/engine/renderer/metadata"
)

var _ renderer.RendererBackend = (*Backend)(nil)

/**
 * @brief Renderer backend rasterizing on the CPU into a BGRA frame buffer.
 * It owns the frame, depth and stencil buffers; a resize allocates new ones
 * and swaps them in at the start of the next frame.
 */
type Backend struct {
	context    *GraphicsContext
	dispatcher Dispatcher

	mu            sync.Mutex
	frame         *buffer.FrameBuffer
	depth         *buffer.DepthBuffer
	stencil       *buffer.StencilBuffer
	pendingWidth  uint32
	pendingHeight uint32
	resizePending bool

	FrameNumber uint64
}

// NewBackend creates a backend drawing faces through dispatcher, or on the
// calling goroutine when dispatcher is nil.
func NewBackend(dispatcher Dispatcher) *Backend {
	gc := NewGraphicsContext()
	gc.SetDispatcher(dispatcher)
	return &Backend{
		context:    gc,
		dispatcher: dispatcher,
	}
}

func (b *Backend) Initialize(appName string, appWidth, appHeight uint32) error {
	if err := b.createTargets(appWidth, appHeight); err != nil {
		return err
	}
	core.LogInfo("software renderer for %s initialized at %dx%d (multithreaded: %t)", appName, appWidth, appHeight, b.IsMultithreaded())
	return nil
}

func (b *Backend) createTargets(width, height uint32) error {
	frame, err := buffer.NewFrameBuffer(int(width), int(height))
	if err != nil {
		return fmt.Errorf("failed to create frame buffer: %w", err)
	}
	depth, err := buffer.NewDepthBuffer(int(width), int(height))
	if err != nil {
		return fmt.Errorf("failed to create depth buffer: %w", err)
	}
	stencil, err := buffer.NewStencilBuffer(int(width), int(height))
	if err != nil {
		return fmt.Errorf("failed to create stencil buffer: %w", err)
	}

	b.mu.Lock()
	b.frame, b.depth, b.stencil = frame, depth, stencil
	b.mu.Unlock()
	return nil
}

func (b *Backend) Shutdown() error {
	b.context.ClearState()
	b.mu.Lock()
	b.frame, b.depth, b.stencil = nil, nil, nil
	b.mu.Unlock()
	return nil
}

// Resized records the new size. Targets are replaced when the next frame begins.
func (b *Backend) Resized(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("resize to %dx%d: %w", width, height, core.ErrInvalidDimensions)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pendingWidth, b.pendingHeight = width, height
	b.resizePending = true
	return nil
}

func (b *Backend) BeginFrame(packet *metadata.RenderPacket) error {
	b.mu.Lock()
	pending, w, h := b.resizePending, b.pendingWidth, b.pendingHeight
	b.resizePending = false
	b.mu.Unlock()

	if pending {
		if err := b.createTargets(w, h); err != nil {
			core.LogError(err.Error())
			return err
		}
		core.LogDebug("software renderer resized to %dx%d", w, h)
	}

	b.mu.Lock()
	frame, depth, stencil := b.frame, b.depth, b.stencil
	b.mu.Unlock()
	if frame == nil {
		return core.ErrNotInitialized
	}

	gc := b.context
	if err := gc.SetRenderTargets(frame, depth); err != nil {
		return err
	}
	gc.SetStencilBuffer(stencil)
	gc.SetViewport(metadata.NewViewport(uint32(frame.Width()), uint32(frame.Height())))

	gc.ClearColor(frame, packet.ClearColor)
	gc.ClearDepth(depth, packet.ClearDepth)
	gc.ClearStencil(stencil, 0)
	return nil
}

/**
 * @brief Binds the geometry's buffers, pipeline and constants, then draws
 * each sub-mesh with its material textures and samplers bound.
 */
func (b *Backend) DrawGeometry(data *metadata.GeometryRenderData) error {
	if data.Geometry == nil {
		return nil
	}
	gc := b.context
	gc.SetPipelineState(data.Pipeline)
	gc.SetVertexBuffer(data.Geometry.Vertices)
	gc.SetIndexBuffer(data.Geometry.Indices)
	for slot, cb := range data.ConstantBuffers {
		if err := gc.SetConstantBuffer(slot, cb); err != nil {
			return err
		}
	}

	var errs []error
	for i := range data.Geometry.SubMeshes {
		sm := &data.Geometry.SubMeshes[i]
		var textures metadata.ShaderResources
		var samplers metadata.Samplers
		// a sub-mesh without a material falls back to the geometry's own slot
		material := data.ConstantBuffers[metadata.MaterialConstantSlot]
		if sm.Material != nil {
			textures, samplers = sm.Material.Textures, sm.Material.Samplers
			material = sm.Material
		}
		_ = gc.SetConstantBuffer(metadata.MaterialConstantSlot, material)
		for slot := range textures {
			_ = gc.SetShaderResource(slot, textures[slot])
		}
		for slot := range samplers {
			_ = gc.SetSampler(slot, samplers[slot])
		}
		if err := gc.DrawIndexed(sm.IndexCount, sm.StartIndex, sm.BaseVertex); err != nil {
			errs = append(errs, fmt.Errorf("geometry %s sub-mesh %s: %w", data.Geometry.Name, sm.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (b *Backend) EndFrame(packet *metadata.RenderPacket) error {
	b.FrameNumber++
	return nil
}

func (b *Backend) FrameBuffer() *buffer.FrameBuffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame
}

// DepthBuffer exposes the depth target of the current frame.
func (b *Backend) DepthBuffer() *buffer.DepthBuffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.depth
}

func (b *Backend) IsMultithreaded() bool {
	return b.dispatcher != nil
}
